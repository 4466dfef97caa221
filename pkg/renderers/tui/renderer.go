package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-hafriyat/pkg/controller"
	"github.com/goliatone/go-hafriyat/pkg/model"
	"github.com/goliatone/go-hafriyat/pkg/render"
)

// Renderer implements render.Renderer for terminal sessions. It prompts for
// every contact form field, drives the same controller the page uses and
// returns the delivered submission.
type Renderer struct {
	driver       PromptDriver
	outputFormat OutputFormat
	theme        Theme
	submitter    controller.Submitter
	logger       *zap.Logger
	maxAttempts  int
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		driver:       newSurveyDriver(),
		outputFormat: OutputFormatJSON,
		theme:        DefaultTheme,
		logger:       zap.NewNop(),
		maxAttempts:  DefaultMaxAttempts,
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	if r.driver == nil {
		r.driver = newSurveyDriver()
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Render prompts for each field in form order. An answer counts as a blur:
// the controller validates it and an invalid answer is printed and asked
// again. Once every field is valid the form is submitted and Render waits
// for the outcome.
func (r *Renderer) Render(ctx context.Context, page render.Page, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	var (
		printMu  sync.Mutex
		printErr error
	)
	notify := func(kind messageKind, text string) {
		if err := r.driver.Info(ctx, r.prefix(kind)+text); err != nil {
			printMu.Lock()
			if printErr == nil {
				printErr = err
			}
			printMu.Unlock()
		}
	}

	form := page.Form
	state := newState(form, opts.Values, notify)

	next := r.submitter
	if next == nil {
		next = controller.NewSimulatedSubmitter(page.Runtime.SubmitDelay(), nil)
	}
	rec := &recordingSubmitter{next: next}

	c := controller.New(
		controller.WithFormID(state.form.id),
		controller.WithDialogID(state.dialogID),
		controller.WithSubmitter(rec),
		controller.WithLogger(r.logger),
		controller.WithContext(ctx),
	)
	if err := c.Init(state); err != nil {
		return nil, fmt.Errorf("tui: %w", err)
	}

	for _, field := range form.Fields {
		if err := r.promptField(ctx, state, field); err != nil {
			return nil, err
		}
	}

	send, err := r.driver.Confirm(ctx, ConfirmConfig{
		Message: state.form.submit.Label() + "?",
		Default: true,
	})
	if err != nil {
		return nil, err
	}
	if !send {
		return nil, ErrAborted
	}

	state.submit()
	c.Wait()

	printMu.Lock()
	err = printErr
	printMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("tui: print: %w", err)
	}

	if c.State() != model.StateIdleAfterSuccess {
		return nil, fmt.Errorf("%w: %s", ErrSubmitFailed, state.FormError())
	}
	return r.serialize(form, rec.last())
}

func (r *Renderer) promptField(ctx context.Context, state *State, field model.Field) error {
	message := displayLabel(field)
	if field.Required {
		message += " *"
	}
	current := state.Values()[field.Name]

	for attempt := 0; attempt < r.maxAttempts; attempt++ {
		var (
			answer string
			err    error
		)
		if field.Type == model.FieldTypeTextarea {
			answer, err = r.driver.TextArea(ctx, TextAreaConfig{
				Message: message,
				Default: current,
			})
		} else {
			answer, err = r.driver.Input(ctx, InputConfig{
				Message:     message,
				Default:     current,
				Placeholder: field.Placeholder,
			})
		}
		if err != nil {
			return err
		}
		if state.answer(field.Name, answer) == "" {
			return nil
		}
		current = answer
	}
	return fmt.Errorf("%w: %s", ErrTooManyAttempts, field.Name)
}

func (r *Renderer) prefix(kind messageKind) string {
	var p string
	switch kind {
	case messageError:
		p = r.theme.ErrorPrefix
	case messageSuccess:
		p = r.theme.SuccessPrefix
	default:
		p = r.theme.InfoPrefix
	}
	if p == "" {
		return ""
	}
	return p + " "
}

func (r *Renderer) serialize(form model.FormModel, sub controller.Submission) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		values := url.Values{}
		for name, value := range sub.Values {
			values.Set(name, value)
		}
		return []byte(values.Encode()), nil
	case OutputFormatPrettyText:
		var b strings.Builder
		for _, field := range form.Fields {
			fmt.Fprintf(&b, "%s: %s\n", displayLabel(field), sub.Values[field.Name])
		}
		return []byte(b.String()), nil
	default:
		return json.MarshalIndent(sub, "", "  ")
	}
}

func displayLabel(field model.Field) string {
	if field.Label != "" {
		return field.Label
	}
	return model.FieldLabel(field.Name)
}

// recordingSubmitter keeps the last submission handed to next.
type recordingSubmitter struct {
	next controller.Submitter

	mu  sync.Mutex
	sub controller.Submission
}

func (r *recordingSubmitter) Submit(ctx context.Context, sub controller.Submission, done func(error)) {
	r.mu.Lock()
	r.sub = sub
	r.mu.Unlock()
	r.next.Submit(ctx, sub, done)
}

func (r *recordingSubmitter) last() controller.Submission {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sub
}
