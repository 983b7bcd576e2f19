package main

import (
	"encoding/json"
	"fmt"

	nanoid "github.com/matoous/go-nanoid/v2"

	"github.com/goliatone/go-metabox/pkg/model"
	"github.com/goliatone/go-metabox/pkg/panel"
)

func printJSON(v any) error {
	enc := json.NewEncoder(stdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func findField(p *panel.Panel, name string) (model.Field, bool) {
	for _, field := range p.Fields() {
		if field.Name == name {
			return field, true
		}
	}
	return model.Field{}, false
}

const idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

func newContentID() (string, error) {
	id, err := nanoid.Generate(idAlphabet, 12)
	if err != nil {
		return "", fmt.Errorf("generate content id: %w", err)
	}
	return id, nil
}
