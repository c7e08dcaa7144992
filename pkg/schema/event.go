package schema

import (
	"bytes"
	_ "embed"
	stderrors "errors"

	"github.com/arthur-debert/fimwatch/pkg/errors"
	"github.com/arthur-debert/fimwatch/pkg/logging"
	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed event.schema.json
var eventSchema []byte

const eventSchemaURL = "event.schema.json"

// EventValidator checks decoded agent events against the embedded envelope
// schema
type EventValidator struct {
	schema *jsonschema.Schema
	logger zerolog.Logger
}

// NewEventValidator compiles the embedded schema
func NewEventValidator() (*EventValidator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(eventSchemaURL, bytes.NewReader(eventSchema)); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to add event schema")
	}
	schema, err := compiler.Compile(eventSchemaURL)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to compile event schema")
	}
	return &EventValidator{
		schema: schema,
		logger: logging.GetLogger("schema"),
	}, nil
}

// Validate returns an ErrSchemaInvalid error when event does not conform.
// The innermost failing location is reported in the "location" detail.
func (v *EventValidator) Validate(event map[string]interface{}) error {
	err := v.schema.Validate(event)
	if err == nil {
		return nil
	}

	fimErr := errors.Wrap(err, errors.ErrSchemaInvalid, "event does not match schema")
	var ve *jsonschema.ValidationError
	if stderrors.As(err, &ve) {
		leaf := deepest(ve)
		fimErr.WithDetail("location", leaf.InstanceLocation).
			WithDetail("rule", leaf.Message)
	}
	v.logger.Debug().Err(err).Msg("Event rejected")
	return fimErr
}

func deepest(ve *jsonschema.ValidationError) *jsonschema.ValidationError {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return ve
}
