// Package validate bridges an external JSON Schema validator to the field
// tree: it validates a value against the same schema document the tree was
// compiled from and converts the findings into pointer-addressed FieldErrors
// that SetErrors can route. The core itself never validates data.
package validate

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	jsonforms "github.com/zhibinjin/jsonforms"
)

// Validator wraps one compiled schema document.
type Validator struct {
	schema *jsonschema.Schema
}

// Compile prepares a draft-4 validator for the given schema document. The
// jsonforms extension keywords are unknown to the validator and ignored.
func Compile(doc []byte) (*Validator, error) {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft4
	const url = "inline://schema.json"
	if err := c.AddResource(url, bytes.NewReader(doc)); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}
	s, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}
	return &Validator{schema: s}, nil
}

// Validate checks a JSON value. It returns the findings, nil when the value
// is valid. A non-validation failure is returned as the error.
func (v *Validator) Validate(value any) (jsonforms.FieldErrors, error) {
	err := v.schema.Validate(value)
	if err == nil {
		return nil, nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return nil, fmt.Errorf("validate: %w", err)
	}
	return flatten(ve, nil), nil
}

// Apply validates the form's current value and routes the findings onto the
// tree, replacing previously routed messages. The findings are returned so
// callers can also render a combined banner.
func (v *Validator) Apply(form *jsonforms.Form) (jsonforms.FieldErrors, error) {
	value, err := form.Value(jsonforms.GetOpt{})
	if err != nil {
		return nil, err
	}
	findings, err := v.Validate(value)
	if err != nil {
		return nil, err
	}
	form.ClearErrors()
	if len(findings) == 0 {
		return nil, nil
	}
	if err := form.SetErrors(findings); err != nil {
		return findings, err
	}
	return findings, nil
}

// flatten walks the validation error tree and keeps the leaf causes, which
// carry the most specific instance locations.
func flatten(ve *jsonschema.ValidationError, out jsonforms.FieldErrors) jsonforms.FieldErrors {
	if len(ve.Causes) == 0 {
		return append(out, jsonforms.FieldError{
			Pointer: ve.InstanceLocation,
			Message: ve.Message,
		})
	}
	for _, cause := range ve.Causes {
		out = flatten(cause, out)
	}
	return out
}
