package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var renderOutput string

var renderCmd = &cobra.Command{
	Use:   "render <panel> <content-id>",
	Short: "Render a panel's HTML for a content item",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := lookupPanel(args[0])
		if err != nil {
			return err
		}

		out := stdout()
		if renderOutput != "" {
			file, err := os.Create(renderOutput)
			if err != nil {
				return fmt.Errorf("create output: %w", err)
			}
			defer file.Close()
			out = file
		}

		if err := p.Display(cmd.Context(), out, args[1]); err != nil {
			return err
		}
		if renderOutput != "" {
			fmt.Fprintf(os.Stderr, "Panel written to %s\n", renderOutput)
		}
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "output file (stdout if empty)")
}
