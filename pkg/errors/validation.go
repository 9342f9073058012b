package errors

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxInputBytes is the largest grid text accepted by ValidateInput.
const MaxInputBytes = 1 << 20

// ValidateInput validates raw grid text before it reaches the parser.
// It rejects inputs that could never describe a grid. Unknown characters,
// control characters included, are left to the parser, which reports them
// with their row and column.
//
// Validation rules:
//   - Input cannot be empty or whitespace only
//   - Maximum size of MaxInputBytes
//   - Must be valid UTF-8
func ValidateInput(data []byte) error {
	if len(strings.TrimSpace(string(data))) == 0 {
		return New(ErrCodeInvalidInput, "input cannot be empty")
	}

	if len(data) > MaxInputBytes {
		return New(ErrCodeInvalidInput, "input too large: %d bytes (max %d)", len(data), MaxInputBytes)
	}

	if !utf8.Valid(data) {
		return New(ErrCodeInvalidInput, "input is not valid UTF-8")
	}

	return nil
}

// ValidatePath validates an input file path given on the command line.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "path contains invalid characters")
		}
	}

	return nil
}
