// Package formdef builds the contact form model from an OpenAPI 3 document.
// The request body schema of the configured operation supplies the fields;
// x-label, x-placeholder, x-input and x-order extensions refine them.
package formdef

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-hafriyat/pkg/model"
)

// DefaultOperationID is the operation describing the contact form.
const DefaultOperationID = "submitContact"

//go:embed contact.openapi.yaml
var defaultDocument []byte

// DefaultDocument returns a copy of the embedded contact form definition.
func DefaultDocument() []byte {
	return append([]byte(nil), defaultDocument...)
}

var (
	// ErrOperationNotFound is returned when the document lacks the operation.
	ErrOperationNotFound = errors.New("formdef: operation not found")
	// ErrNoRequestSchema is returned when the operation has no usable request
	// body schema.
	ErrNoRequestSchema = errors.New("formdef: operation has no request body schema")
)

const (
	extLabel         = "x-label"
	extPlaceholder   = "x-placeholder"
	extInput         = "x-input"
	extOrder         = "x-order"
	extFormID        = "x-form-id"
	extSuccessDialog = "x-success-dialog"
	extSubmitLabel   = "x-submit-label"
)

var requestMediaTypes = []string{
	"application/x-www-form-urlencoded",
	"multipart/form-data",
	"application/json",
}

// Options configures Load.
type Options struct {
	OperationID string
	Decorators  []model.Decorator
}

// Option mutates Options.
type Option func(*Options)

// WithOperationID selects a different operation.
func WithOperationID(id string) Option {
	return func(o *Options) {
		if id != "" {
			o.OperationID = id
		}
	}
}

// WithDecorators appends decorators applied after the model is built.
func WithDecorators(decorators ...model.Decorator) Option {
	return func(o *Options) {
		o.Decorators = append(o.Decorators, decorators...)
	}
}

// LoadDefault builds the form from the embedded definition.
func LoadDefault(ctx context.Context, options ...Option) (model.FormModel, error) {
	return Parse(ctx, defaultDocument, options...)
}

// LoadFile reads a definition from disk. An empty path uses the embedded
// definition.
func LoadFile(ctx context.Context, path string, options ...Option) (model.FormModel, error) {
	if strings.TrimSpace(path) == "" {
		return LoadDefault(ctx, options...)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return model.FormModel{}, fmt.Errorf("formdef: read %s: %w", path, err)
	}
	return Parse(ctx, raw, options...)
}

// LoadFS reads a definition from fsys.
func LoadFS(ctx context.Context, fsys fs.FS, name string, options ...Option) (model.FormModel, error) {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return model.FormModel{}, fmt.Errorf("formdef: read %s: %w", name, err)
	}
	return Parse(ctx, raw, options...)
}

// Parse loads raw as an OpenAPI document and converts the selected
// operation into a form model.
func Parse(ctx context.Context, raw []byte, options ...Option) (model.FormModel, error) {
	if err := ctx.Err(); err != nil {
		return model.FormModel{}, err
	}
	if len(raw) == 0 {
		return model.FormModel{}, errors.New("formdef: document payload is empty")
	}

	opts := Options{OperationID: DefaultOperationID}
	for _, opt := range options {
		if opt != nil {
			opt(&opts)
		}
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return model.FormModel{}, fmt.Errorf("formdef: load document: %w", err)
	}

	method, path, op := findOperation(doc, opts.OperationID)
	if op == nil {
		return model.FormModel{}, fmt.Errorf("%w: %s", ErrOperationNotFound, opts.OperationID)
	}

	schema := requestSchema(op.RequestBody)
	if schema == nil || len(schema.Properties) == 0 {
		return model.FormModel{}, fmt.Errorf("%w: %s", ErrNoRequestSchema, opts.OperationID)
	}

	form := model.FormModel{
		ID:              stringExtension(op.Extensions, extFormID, model.DefaultFormID),
		OperationID:     opts.OperationID,
		Action:          path,
		Method:          method,
		Summary:         op.Summary,
		SubmitLabel:     stringExtension(op.Extensions, extSubmitLabel, model.DefaultSubmitLabel),
		SuccessDialogID: stringExtension(op.Extensions, extSuccessDialog, model.DefaultSuccessDialogID),
		Fields:          buildFields(schema),
	}

	for _, decorator := range opts.Decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(&form); err != nil {
			return model.FormModel{}, fmt.Errorf("formdef: decorate: %w", err)
		}
	}
	return form, nil
}

func findOperation(doc *openapi3.T, operationID string) (string, string, *openapi3.Operation) {
	if doc.Paths == nil {
		return "", "", nil
	}
	paths := doc.Paths.Map()
	keys := make([]string, 0, len(paths))
	for path := range paths {
		keys = append(keys, path)
	}
	sort.Strings(keys)

	for _, path := range keys {
		item := paths[path]
		if item == nil {
			continue
		}
		for method, op := range item.Operations() {
			if op != nil && op.OperationID == operationID {
				return strings.ToUpper(method), path, op
			}
		}
	}
	return "", "", nil
}

func requestSchema(body *openapi3.RequestBodyRef) *openapi3.Schema {
	if body == nil || body.Value == nil {
		return nil
	}
	for _, mediaType := range requestMediaTypes {
		if mt, ok := body.Value.Content[mediaType]; ok && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func buildFields(schema *openapi3.Schema) []model.Field {
	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	fields := make([]model.Field, 0, len(schema.Properties))
	for name, ref := range schema.Properties {
		if ref == nil || ref.Value == nil {
			continue
		}
		prop := ref.Value
		field := model.Field{
			Name:        name,
			Type:        fieldType(prop),
			Required:    required[name],
			Label:       stringExtension(prop.Extensions, extLabel, ""),
			Placeholder: stringExtension(prop.Extensions, extPlaceholder, ""),
			Order:       intExtension(prop.Extensions, extOrder),
		}
		if prop.Description != "" {
			field.Metadata = map[string]string{"description": prop.Description}
		}
		fields = append(fields, field)
	}

	sort.SliceStable(fields, func(i, j int) bool {
		if fields[i].Order != fields[j].Order {
			return fields[i].Order < fields[j].Order
		}
		return fields[i].Name < fields[j].Name
	})
	return fields
}

func fieldType(schema *openapi3.Schema) model.FieldType {
	switch stringExtension(schema.Extensions, extInput, "") {
	case "textarea":
		return model.FieldTypeTextarea
	case "tel":
		return model.FieldTypeTel
	case "email":
		return model.FieldTypeEmail
	}
	if schema.Format == "email" {
		return model.FieldTypeEmail
	}
	return model.FieldTypeText
}

func stringExtension(ext map[string]any, key, fallback string) string {
	if value, ok := ext[key].(string); ok && strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func intExtension(ext map[string]any, key string) int {
	switch value := ext[key].(type) {
	case int:
		return value
	case int64:
		return int(value)
	case float64:
		return int(value)
	case json.Number:
		if n, err := value.Int64(); err == nil {
			return int(n)
		}
	case string:
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return 0
}
