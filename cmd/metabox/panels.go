package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var panelsCmd = &cobra.Command{
	Use:   "panels",
	Short: "List the panels in the definition file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		panels := gen.Panels()
		if jsonOutput {
			rows := make([]map[string]any, 0, len(panels))
			for _, p := range panels {
				cfg := p.Config()
				rows = append(rows, map[string]any{
					"id":        cfg.ID,
					"meta_name": p.MetaName(),
					"title":     cfg.Title,
					"screens":   cfg.Screens,
					"context":   cfg.Context,
					"priority":  cfg.Priority,
					"mode":      cfg.Mode,
					"fields":    len(p.Fields()),
				})
			}
			return printJSON(rows)
		}

		for _, p := range panels {
			cfg := p.Config()
			fmt.Fprintf(stdout(), "%-20s %-24s %-10s %-8s %d fields  [%s]\n",
				cfg.ID, cfg.Title, cfg.Context, cfg.Mode, len(p.Fields()), strings.Join(cfg.Screens, ","))
		}
		return nil
	},
}
