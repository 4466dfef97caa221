// Package controller implements the contact form validation and submission
// controller. It gates submission on field-level validity, gives immediate
// per-field feedback on blur and input, and runs a submission through a
// Submitter while the submit control is disabled.
package controller

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/goliatone/go-hafriyat/pkg/model"
	"github.com/goliatone/go-hafriyat/pkg/validation"
)

// ErrFormNotFound is returned by Init when the surface has no designated form.
var ErrFormNotFound = errors.New("controller: contact form not found")

// SubmitFailedMessage is shown at form level when a submitter reports an
// error.
const SubmitFailedMessage = "Mesajınız gönderilemedi. Lütfen tekrar deneyiniz."

const tracerName = "github.com/goliatone/go-hafriyat/pkg/controller"

// Option configures a Controller.
type Option func(*Controller)

// WithFormID overrides the identifier of the designated form.
func WithFormID(id string) Option {
	return func(c *Controller) {
		if id != "" {
			c.formID = id
		}
	}
}

// WithDialogID overrides the identifier of the success dialog.
func WithDialogID(id string) Option {
	return func(c *Controller) {
		if id != "" {
			c.dialogID = id
		}
	}
}

// WithSubmitter replaces the simulated submitter.
func WithSubmitter(submitter Submitter) Option {
	return func(c *Controller) {
		if submitter != nil {
			c.submitter = submitter
		}
	}
}

// WithLogger sets the logger used for the init warning and submit outcomes.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTracer sets the tracer used for submission spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *Controller) {
		if tracer != nil {
			c.tracer = tracer
		}
	}
}

// WithContext sets the context handed to the submitter.
func WithContext(ctx context.Context) Option {
	return func(c *Controller) {
		if ctx != nil {
			c.ctx = ctx
		}
	}
}

// WithNow overrides the timestamp source for submissions.
func WithNow(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// Controller owns the submit lifecycle of a single form. Handlers may be
// invoked from any goroutine; state changes are serialised.
type Controller struct {
	mu sync.Mutex

	formID    string
	dialogID  string
	submitter Submitter
	logger    *zap.Logger
	tracer    trace.Tracer
	ctx       context.Context
	now       func() time.Time

	surface Surface
	form    FormView
	fields  []FieldView
	state   model.SubmissionState

	inflight sync.WaitGroup
}

// New constructs a Controller with the simulated submitter and the default
// form and dialog identifiers.
func New(options ...Option) *Controller {
	c := &Controller{
		formID:   model.DefaultFormID,
		dialogID: model.DefaultSuccessDialogID,
		logger:   zap.NewNop(),
		ctx:      context.Background(),
		now:      time.Now,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	if c.submitter == nil {
		c.submitter = NewSimulatedSubmitter(DefaultSubmitDelay, nil)
	}
	if c.tracer == nil {
		c.tracer = otel.Tracer(tracerName)
	}
	return c
}

// Init locates the designated form and registers the submit handler plus a
// blur and an input handler on every field. A missing form is logged and
// reported as ErrFormNotFound; nothing is registered in that case.
func (c *Controller) Init(surface Surface) error {
	form, ok := surface.Form(c.formID)
	if !ok {
		c.logger.Warn("İletişim formu bulunamadı", zap.String("form_id", c.formID))
		return ErrFormNotFound
	}

	c.mu.Lock()
	c.surface = surface
	c.form = form
	c.fields = form.Fields()
	c.state = model.StateIdle
	fields := c.fields
	c.mu.Unlock()

	form.OnSubmit(c.HandleSubmit)
	for _, field := range fields {
		field := field
		field.OnBlur(func() { c.ValidateField(field) })
		field.OnInput(func() { c.ClearFieldError(field) })
	}
	return nil
}

// State reports the current submission state.
func (c *Controller) State() model.SubmissionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// ValidateField checks a single field and updates its annotation: exactly one
// FieldError when invalid, none when valid.
func (c *Controller) ValidateField(field FieldView) bool {
	return annotate(field, validation.ValidateValue(field.Name(), field.Value(), field.Required()))
}

func annotate(field FieldView, verdict validation.Verdict) bool {
	if !verdict.Valid() {
		field.ShowError(verdict.Message)
		return false
	}
	field.ClearError()
	return true
}

// ClearFieldError removes the annotation of a field being edited.
func (c *Controller) ClearFieldError(field FieldView) {
	field.ClearError()
}

// ValidateForm validates every required field and reports whether all pass.
// Optional fields are skipped.
func (c *Controller) ValidateForm() bool {
	c.mu.Lock()
	fields := c.fields
	c.mu.Unlock()
	return c.validateRequired(fields).Valid
}

// validateRequired runs validation.ValidateForm over the field views and
// annotates every required field with its verdict.
func (c *Controller) validateRequired(fields []FieldView) validation.Result {
	form := model.FormModel{ID: c.formID, Fields: make([]model.Field, 0, len(fields))}
	values := make(map[string]string, len(fields))
	for _, field := range fields {
		form.Fields = append(form.Fields, model.Field{Name: field.Name(), Required: field.Required()})
		values[field.Name()] = field.Value()
	}

	result := validation.ValidateForm(form, values)
	next := 0
	for _, field := range fields {
		if !field.Required() {
			continue
		}
		annotate(field, result.Verdicts[next])
		next++
	}
	return result
}

// HandleSubmit is the form submit handler. It suppresses the default
// navigation, validates, and on success hands the values to the submitter
// with the submit control disabled until completion. Submits arriving while a
// submission is in flight are ignored.
func (c *Controller) HandleSubmit(event Event) {
	if event != nil {
		event.PreventDefault()
	}

	c.mu.Lock()
	if c.form == nil || c.state == model.StateSubmitting {
		c.mu.Unlock()
		return
	}
	form := c.form
	fields := c.fields

	if result := c.validateRequired(fields); !result.Valid {
		c.mu.Unlock()
		c.logger.Debug("contact form invalid", zap.Int("errors", len(result.Errors())))
		return
	}

	if messenger, ok := form.(FormMessenger); ok {
		messenger.ClearFormError()
	}

	submit := form.Submit()
	originalLabel := submit.Label()
	submit.SetLabel(model.SendingLabel)
	submit.SetDisabled(true)
	c.state = model.StateSubmitting

	sub := Submission{
		ID:          uuid.NewString(),
		FormID:      c.formID,
		Values:      collectValues(fields),
		SubmittedAt: c.now(),
	}
	ctx, span := c.tracer.Start(c.ctx, "contact.submit", trace.WithAttributes(
		attribute.String("submission.id", sub.ID),
		attribute.String("form.id", sub.FormID),
	))
	c.inflight.Add(1)
	c.mu.Unlock()

	var once sync.Once
	c.submitter.Submit(ctx, sub, func(err error) {
		once.Do(func() {
			defer c.inflight.Done()
			c.complete(sub, originalLabel, err, span)
		})
	})
}

func (c *Controller) complete(sub Submission, originalLabel string, err error, span trace.Span) {
	defer span.End()

	c.mu.Lock()
	defer c.mu.Unlock()

	submit := c.form.Submit()

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.logger.Warn("contact submission failed", zap.String("submission_id", sub.ID), zap.Error(err))

		submit.SetLabel(originalLabel)
		submit.SetDisabled(false)
		c.state = model.StateIdle
		if messenger, ok := c.form.(FormMessenger); ok {
			messenger.ShowFormError(SubmitFailedMessage)
		}
		return
	}

	if dialog, ok := c.surface.Dialog(c.dialogID); ok {
		dialog.Show()
	} else {
		c.logger.Warn("success dialog not found", zap.String("dialog_id", c.dialogID))
	}

	for _, field := range c.fields {
		field.SetValue("")
	}
	submit.SetLabel(originalLabel)
	submit.SetDisabled(false)
	for _, field := range c.fields {
		field.ClearError()
	}
	c.state = model.StateIdleAfterSuccess

	span.SetAttributes(attribute.String("submission.outcome", "success"))
	c.logger.Info("contact submission completed", zap.String("submission_id", sub.ID))
}

// Wait blocks until every in-flight submission has completed.
func (c *Controller) Wait() {
	c.inflight.Wait()
}

func collectValues(fields []FieldView) map[string]string {
	values := make(map[string]string, len(fields))
	for _, field := range fields {
		if name := field.Name(); name != "" {
			values[name] = field.Value()
		}
	}
	return values
}
