package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <panel> <content-id>",
	Short: "Show the stored values of a panel",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := lookupPanel(args[0])
		if err != nil {
			return err
		}
		values, err := p.Values(cmd.Context(), args[1])
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(values)
		}

		for _, field := range p.Fields() {
			value, ok := values[field.Name]
			if !ok {
				fmt.Fprintf(stdout(), "%-20s (default) %s\n", field.Name, field.Default)
				continue
			}
			fmt.Fprintf(stdout(), "%-20s %v\n", field.Name, value)
		}
		return nil
	},
}
