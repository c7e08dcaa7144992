package fixtures

import (
	"unicode/utf8"

	"github.com/arthur-debert/fimwatch/pkg/errors"
)

// Content is what gets written to a regular file. Binary content is written
// verbatim; text content must be valid UTF-8.
type Content struct {
	Data   []byte
	Binary bool
}

// Text returns text content
func Text(s string) Content {
	return Content{Data: []byte(s)}
}

// Bytes returns binary content
func Bytes(b []byte) Content {
	return Content{Data: b, Binary: true}
}

func (c Content) validate() error {
	if !c.Binary && !utf8.Valid(c.Data) {
		return errors.New(errors.ErrInvalidInput, "text content is not valid UTF-8, mark it binary")
	}
	return nil
}
