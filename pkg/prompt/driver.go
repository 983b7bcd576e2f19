package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/goliatone/go-metabox/pkg/model"
)

// Question is one field turned into a prompt.
type Question struct {
	Message string
	Help    string
	// Default pre-fills text answers.
	Default string
	// Checked is the current state of a checkbox.
	Checked bool
	// Options and Selected drive select prompts. Selected holds option keys.
	Options  model.Options
	Selected []string
}

// Driver asks questions in the terminal. Select answers are option keys,
// never labels, so the collector does not depend on how options are shown.
type Driver interface {
	Heading(ctx context.Context, title string) error
	Text(ctx context.Context, q Question) (string, error)
	TextArea(ctx context.Context, q Question) (string, error)
	Checkbox(ctx context.Context, q Question) (bool, error)
	Choose(ctx context.Context, q Question) (string, error)
	ChooseMany(ctx context.Context, q Question) ([]string, error)
}

// SurveyDriver prompts with survey on stdin/stdout.
type SurveyDriver struct {
	in  terminal.FileReader
	out terminal.FileWriter
	err io.Writer
}

// NewSurveyDriver returns the interactive terminal driver.
func NewSurveyDriver() *SurveyDriver {
	return &SurveyDriver{in: os.Stdin, out: os.Stdout, err: os.Stderr}
}

func (d *SurveyDriver) ask(ctx context.Context, p survey.Prompt, response any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := survey.AskOne(p, response, survey.WithStdio(d.in, d.out, d.err))
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}

// Heading prints a section title.
func (d *SurveyDriver) Heading(ctx context.Context, title string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(d.out, "\n== %s ==\n", title)
	return err
}

func (d *SurveyDriver) Text(ctx context.Context, q Question) (string, error) {
	var answer string
	err := d.ask(ctx, &survey.Input{Message: q.Message, Help: q.Help, Default: q.Default}, &answer)
	return answer, err
}

func (d *SurveyDriver) TextArea(ctx context.Context, q Question) (string, error) {
	var answer string
	err := d.ask(ctx, &survey.Multiline{Message: q.Message, Help: q.Help, Default: q.Default}, &answer)
	return answer, err
}

func (d *SurveyDriver) Checkbox(ctx context.Context, q Question) (bool, error) {
	var answer bool
	err := d.ask(ctx, &survey.Confirm{Message: q.Message, Help: q.Help, Default: q.Checked}, &answer)
	return answer, err
}

func (d *SurveyDriver) Choose(ctx context.Context, q Question) (string, error) {
	labels := optionLabels(q.Options)
	p := &survey.Select{Message: q.Message, Help: q.Help, Options: labels}
	if idx := keyIndex(q.Options, q.Selected); len(idx) > 0 {
		p.Default = labels[idx[0]]
	}

	var answer survey.OptionAnswer
	if err := d.ask(ctx, p, &answer); err != nil {
		return "", err
	}
	return q.Options[answer.Index].Key, nil
}

func (d *SurveyDriver) ChooseMany(ctx context.Context, q Question) ([]string, error) {
	p := &survey.MultiSelect{Message: q.Message, Help: q.Help, Options: optionLabels(q.Options)}
	if idx := keyIndex(q.Options, q.Selected); len(idx) > 0 {
		p.Default = idx
	}

	var answers []survey.OptionAnswer
	if err := d.ask(ctx, p, &answers); err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(answers))
	for _, answer := range answers {
		keys = append(keys, q.Options[answer.Index].Key)
	}
	return keys, nil
}

// optionLabels falls back to the key for unlabelled options. survey matches
// answers by label, so duplicate labels get the key appended.
func optionLabels(options model.Options) []string {
	labels := make([]string, len(options))
	seen := make(map[string]bool, len(options))
	for i, option := range options {
		label := option.Label
		if label == "" {
			label = option.Key
		}
		if seen[label] {
			label = fmt.Sprintf("%s (%s)", label, option.Key)
		}
		seen[label] = true
		labels[i] = label
	}
	return labels
}

func keyIndex(options model.Options, keys []string) []int {
	var out []int
	for i, option := range options {
		for _, key := range keys {
			if key == option.Key {
				out = append(out, i)
				break
			}
		}
	}
	return out
}
