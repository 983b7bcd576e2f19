package main

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-metabox/pkg/panel"
	"github.com/goliatone/go-metabox/pkg/payload"
	"github.com/goliatone/go-metabox/pkg/prompt"
)

var createMode bool

var editCmd = &cobra.Command{
	Use:   "edit <panel> [content-id]",
	Short: "Edit a panel interactively and save the answers",
	Long:  "Edit a panel interactively. Without a content ID a new item is created with a generated ID.",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := lookupPanel(args[0])
		if err != nil {
			return err
		}

		var contentID string
		if len(args) == 2 {
			contentID = args[1]
		} else {
			if contentID, err = newContentID(); err != nil {
				return err
			}
			createMode = true
			logger.Debug("generated content id", "content_id", contentID)
		}

		stored, err := p.Values(cmd.Context(), contentID)
		if err != nil {
			return err
		}
		values, err := prompt.New().Collect(cmd.Context(), p.Config(), p.Fields(), stored)
		if err != nil {
			return err
		}
		return save(cmd, contentID, values)
	},
}

var setCmd = &cobra.Command{
	Use:   "set <panel> <content-id> <field=value>...",
	Short: "Submit field values without prompting",
	Long: "Submit field values as a form post would. Fields not listed are submitted empty, " +
		"so unchecked checkboxes and cleared values are deleted. Repeat a field to submit several " +
		"values to a multiple select.",
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := lookupPanel(args[0])
		if err != nil {
			return err
		}

		values := url.Values{}
		values.Set(p.SubmittedName(), "1")
		for _, pair := range args[2:] {
			name, value, ok := strings.Cut(pair, "=")
			if !ok {
				return fmt.Errorf("expected field=value, got %q", pair)
			}
			field, ok := findField(p, name)
			if !ok {
				return fmt.Errorf("panel %q has no field %q", args[0], name)
			}
			values.Add(p.Config().TransmittedName(field), value)
		}
		return save(cmd, args[1], values)
	},
}

func init() {
	for _, cmd := range []*cobra.Command{editCmd, setCmd} {
		cmd.Flags().BoolVar(&createMode, "new", false, "treat the content item as newly created")
	}
}

func save(cmd *cobra.Command, contentID string, values url.Values) error {
	err := registrar.Save(cmd.Context(), panel.SaveRequest{
		ContentID: contentID,
		Update:    !createMode,
		Payload:   payload.Form(values),
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout(), "Saved %s\n", contentID)
	return nil
}
