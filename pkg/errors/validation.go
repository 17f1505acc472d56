package errors

import (
	"math"
	"path/filepath"
	"strings"
	"unicode"
)

// ValidateFinite rejects NaN and infinite values.
func ValidateFinite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidInput, "%s must be a finite number", field)
	}
	return nil
}

// ValidateNonNegative rejects negative, NaN and infinite values.
func ValidateNonNegative(field string, v float64) error {
	if err := ValidateFinite(field, v); err != nil {
		return err
	}
	if v < 0 {
		return New(ErrCodeInvalidInput, "%s must not be negative, got %g", field, v)
	}
	return nil
}

// ValidateLineNumber checks that line is a 1-based line inside a document
// of count lines.
func ValidateLineNumber(field string, line, count int) error {
	if line < 1 || line > count {
		return New(ErrCodeInvalidScenario, "%s %d outside document of %d lines", field, line, count)
	}
	return nil
}

// ValidateRange checks that [start, end) is a well-formed finite range.
func ValidateRange(field string, start, end float64) error {
	if err := ValidateFinite(field+" start", start); err != nil {
		return err
	}
	if err := ValidateFinite(field+" end", end); err != nil {
		return err
	}
	if end < start {
		return New(ErrCodeInvalidInput, "%s end (%g) is before start (%g)", field, end, start)
	}
	return nil
}

// ScenarioFormat is the encoding of a scenario file.
type ScenarioFormat string

const (
	FormatTOML ScenarioFormat = "toml"
	FormatJSON ScenarioFormat = "json"
)

// ValidateScenarioFilename checks a scenario file name and returns its format
// based on the extension.
//
// Validation rules:
//   - Name cannot be empty
//   - No null bytes or control characters
//   - Extension must be .toml or .json
func ValidateScenarioFilename(filename string) (ScenarioFormat, error) {
	if filename == "" {
		return "", New(ErrCodeInvalidInput, "scenario filename cannot be empty")
	}

	for _, r := range filename {
		if unicode.IsControl(r) {
			return "", New(ErrCodeInvalidInput, "scenario filename contains invalid control characters")
		}
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", New(ErrCodeInvalidFormat, "unsupported scenario format %q (want .toml or .json)", filepath.Ext(filename))
	}
}
