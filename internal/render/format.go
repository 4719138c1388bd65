// Package render turns a frozen snapshot into text. Strategy selection and
// all format validation happen before a connection is ever opened.
package render

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Mode selects the output strategy.
type Mode int

const (
	ModeHuman Mode = iota
	ModeJSON
	ModeTSV
	ModeCustom
)

// Field is one custom-format field code.
type Field byte

const (
	FieldTitle      Field = 't'
	FieldAppID      Field = 'a'
	FieldIdentifier Field = 'i'
	FieldActivated  Field = 'A'
	FieldFullscreen Field = 'f'
	FieldMinimized  Field = 'm'
	FieldMaximized  Field = 'M'
)

// CustomFormat is a parsed custom format string: one ASCII delimiter
// followed by the field codes to print, in order.
type CustomFormat struct {
	Delim  byte
	Fields []Field
}

var (
	ErrEmptyFormat      = errors.New("custom format is empty")
	ErrNonASCIIDelim    = errors.New("custom format delimiter must be an ASCII character")
	ErrNoFields         = errors.New("custom format lists no fields")
	errUnknownFieldCode = errors.New("unknown field code")
)

// ParseCustomFormat validates a custom format string in full. Any defect is
// a fatal configuration error, raised before anything talks to the server.
func ParseCustomFormat(s string) (CustomFormat, error) {
	if s == "" {
		return CustomFormat{}, ErrEmptyFormat
	}
	if s[0] >= utf8.RuneSelf {
		return CustomFormat{}, ErrNonASCIIDelim
	}
	f := CustomFormat{Delim: s[0]}
	codes := s[1:]
	if codes == "" {
		return CustomFormat{}, ErrNoFields
	}
	for i := 0; i < len(codes); i++ {
		switch c := Field(codes[i]); c {
		case FieldTitle, FieldAppID, FieldIdentifier,
			FieldActivated, FieldFullscreen, FieldMinimized, FieldMaximized:
			f.Fields = append(f.Fields, c)
		default:
			return CustomFormat{}, fmt.Errorf("%w: %q", errUnknownFieldCode, codes[i])
		}
	}
	return f, nil
}
