package formdef

import (
	"fmt"

	"github.com/goliatone/go-hafriyat/pkg/model"
)

// DefaultLabels fills empty field labels from the built-in label table.
func DefaultLabels() model.Decorator {
	return model.DecoratorFunc(func(form *model.FormModel) error {
		for i := range form.Fields {
			if form.Fields[i].Label == "" {
				form.Fields[i].Label = model.FieldLabel(form.Fields[i].Name)
			}
		}
		return nil
	})
}

// Optional clears the required flag of the named fields. Unknown names are
// an error so configuration typos surface early.
func Optional(names ...string) model.Decorator {
	return model.DecoratorFunc(func(form *model.FormModel) error {
		for _, name := range names {
			found := false
			for i := range form.Fields {
				if form.Fields[i].Name == name {
					form.Fields[i].Required = false
					found = true
				}
			}
			if !found {
				return fmt.Errorf("optional field %q not defined", name)
			}
		}
		return nil
	})
}

// SubmitLabel overrides the submit control label.
func SubmitLabel(label string) model.Decorator {
	return model.DecoratorFunc(func(form *model.FormModel) error {
		if label != "" {
			form.SubmitLabel = label
		}
		return nil
	})
}
