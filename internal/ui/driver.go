// Package ui holds the terminal side of the app: prompts, tables and colours.
package ui

import (
	"context"
	"errors"
	"sync"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// ErrAborted signals the user aborted input (e.g., Ctrl+C).
var ErrAborted = errors.New("ui: aborted")

// InputConfig configures a text or password prompt.
type InputConfig struct {
	Message   string
	Default   string
	Help      string
	Validator func(string) error
}

// ConfirmConfig configures a yes/no prompt.
type ConfirmConfig struct {
	Message string
	Default bool
}

// SelectConfig configures a single-choice prompt.
type SelectConfig struct {
	Message      string
	Options      []string
	DefaultIndex int
	PageSize     int
}

// PromptDriver abstracts the terminal so screens can be driven by tests.
type PromptDriver interface {
	Input(ctx context.Context, cfg InputConfig) (string, error)
	Password(ctx context.Context, cfg InputConfig) (string, error)
	Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error)
	Select(ctx context.Context, cfg SelectConfig) (int, error)
}

type surveyDriver struct{}

// NewSurveyDriver returns a PromptDriver backed by survey on stdin/stdout.
func NewSurveyDriver() PromptDriver {
	return &surveyDriver{}
}

func (d *surveyDriver) Input(ctx context.Context, cfg InputConfig) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var out string
	prompt := &survey.Input{Message: cfg.Message, Help: cfg.Help, Default: cfg.Default}
	if err := survey.AskOne(prompt, &out, validatorOpts(cfg.Validator)...); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func (d *surveyDriver) Password(ctx context.Context, cfg InputConfig) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var out string
	prompt := &survey.Password{Message: cfg.Message, Help: cfg.Help}
	if err := survey.AskOne(prompt, &out, validatorOpts(cfg.Validator)...); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func (d *surveyDriver) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var out bool
	prompt := &survey.Confirm{Message: cfg.Message, Default: cfg.Default}
	if err := survey.AskOne(prompt, &out); err != nil {
		return false, translateSurveyErr(err)
	}
	return out, nil
}

func (d *surveyDriver) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	var out string
	prompt := &survey.Select{Message: cfg.Message, Options: cfg.Options}
	if cfg.PageSize > 0 {
		prompt.PageSize = cfg.PageSize
	}
	if cfg.DefaultIndex >= 0 && cfg.DefaultIndex < len(cfg.Options) {
		prompt.Default = cfg.Options[cfg.DefaultIndex]
	}
	if err := survey.AskOne(prompt, &out); err != nil {
		return 0, translateSurveyErr(err)
	}
	return indexOf(cfg.Options, out), nil
}

// validatorOpts wraps a string validator for survey, which hands answers
// over as interface{}.
func validatorOpts(fn func(string) error) []survey.AskOpt {
	if fn == nil {
		return nil
	}
	return []survey.AskOpt{survey.WithValidator(func(ans interface{}) error {
		s, _ := ans.(string)
		return fn(s)
	})}
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}

func indexOf(options []string, value string) int {
	for i, option := range options {
		if option == value {
			return i
		}
	}
	return -1
}

// Answer is one scripted reply. Exactly one field is read, depending on the
// prompt kind that consumes it.
type Answer struct {
	Text   string
	Choice int
	Yes    bool
	Err    error
}

// ScriptedDriver replays canned answers in order. It records every prompt
// message it was asked. Running out of answers returns ErrAborted.
type ScriptedDriver struct {
	mu      sync.Mutex
	answers []Answer
	Asked   []string
}

// NewScriptedDriver returns a driver that replies with answers in order.
func NewScriptedDriver(answers ...Answer) *ScriptedDriver {
	return &ScriptedDriver{answers: answers}
}

func (d *ScriptedDriver) next(message string) (Answer, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Asked = append(d.Asked, message)
	if len(d.answers) == 0 {
		return Answer{}, ErrAborted
	}
	a := d.answers[0]
	d.answers = d.answers[1:]
	return a, a.Err
}

func (d *ScriptedDriver) Input(ctx context.Context, cfg InputConfig) (string, error) {
	a, err := d.next(cfg.Message)
	if err != nil {
		return "", err
	}
	if cfg.Validator != nil {
		if err := cfg.Validator(a.Text); err != nil {
			return "", err
		}
	}
	return a.Text, nil
}

func (d *ScriptedDriver) Password(ctx context.Context, cfg InputConfig) (string, error) {
	return d.Input(ctx, cfg)
}

func (d *ScriptedDriver) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	a, err := d.next(cfg.Message)
	return a.Yes, err
}

func (d *ScriptedDriver) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	a, err := d.next(cfg.Message)
	if err != nil {
		return 0, err
	}
	if a.Choice < 0 || a.Choice >= len(cfg.Options) {
		return -1, nil
	}
	return a.Choice, nil
}

var (
	_ PromptDriver = (*surveyDriver)(nil)
	_ PromptDriver = (*ScriptedDriver)(nil)
)
