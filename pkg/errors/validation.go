package errors

import (
	"math"
	"strings"
	"unicode"
)

// maxIDLength bounds record identifiers read from dataset files.
const maxIDLength = 128

// ValidateViewport rejects dimensions that would make every derived scale
// meaningless (NaN or negative radii, inverted lanes).
func ValidateViewport(width, height float64) error {
	if math.IsNaN(width) || math.IsInf(width, 0) || width <= 0 {
		return New(ErrCodeInvalidViewport, "viewport width must be positive, got %v", width)
	}
	if math.IsNaN(height) || math.IsInf(height, 0) || height <= 0 {
		return New(ErrCodeInvalidViewport, "viewport height must be positive, got %v", height)
	}
	return nil
}

// ValidateID validates a record identifier. kind names the record type in
// the error message ("expense", "category").
//
// The validation rules are intentionally conservative:
//   - No empty ids
//   - No control characters
//   - No surrounding whitespace
//   - Maximum length of 128 characters
func ValidateID(kind, id string) error {
	if id == "" {
		return New(ErrCodeInvalidDataset, "%s id cannot be empty", kind)
	}
	if len(id) > maxIDLength {
		return New(ErrCodeInvalidDataset, "%s id too long (max %d characters)", kind, maxIDLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidDataset, "%s id %q contains control characters", kind, id)
		}
	}
	if strings.TrimSpace(id) != id {
		return New(ErrCodeInvalidDataset, "%s id %q has surrounding whitespace", kind, id)
	}
	return nil
}
