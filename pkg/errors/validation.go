package errors

import (
	"unicode"
	"unicode/utf8"
)

// MaxNameLength bounds node, edge, plug and box names accepted from documents.
const MaxNameLength = 256

// ValidateName validates an externally supplied name (from a graph document or
// a command line flag). The kind is used in the message, e.g. "node" or "edge".
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - Valid UTF-8 only
//   - No control characters (including null bytes and newlines)
//   - Maximum length of MaxNameLength bytes
//
// Names created programmatically through the graph API are not validated;
// this only guards the import boundary.
func ValidateName(kind, name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "%s name cannot be empty", kind)
	}

	if len(name) > MaxNameLength {
		return New(ErrCodeInvalidName, "%s name too long (max %d characters)", kind, MaxNameLength)
	}

	if !utf8.ValidString(name) {
		return New(ErrCodeInvalidName, "%s name is not valid UTF-8", kind)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "%s name contains invalid control characters", kind)
		}
	}

	return nil
}
