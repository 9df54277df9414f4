package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateIdentifier validates a device, circuit, or panel identifier.
//
// The validation rules are intentionally conservative:
//   - No empty identifiers
//   - No control characters
//   - Maximum length of 64 characters
//
// Identifiers appear in reports, cache keys, and DOT output, so anything
// that could break those surfaces is rejected at the boundary.
func ValidateIdentifier(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "identifier cannot be empty")
	}

	if len(id) > 64 {
		return New(ErrCodeInvalidInput, "identifier too long (max 64 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "identifier contains invalid control characters")
		}
	}

	if strings.ContainsAny(id, "\"\\\x00") {
		return New(ErrCodeInvalidInput, "identifier contains invalid characters: %q", id)
	}

	return nil
}

// modelNameRegex matches valid catalog model numbers (e.g. "SD-355", "P2R").
var modelNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._/-]*$`)

// ValidateModelName validates a catalog model identifier.
func ValidateModelName(model string) error {
	if err := ValidateIdentifier(model); err != nil {
		return err
	}

	if !modelNameRegex.MatchString(model) {
		return New(ErrCodeInvalidCatalog, "invalid model name: %q", model)
	}

	return nil
}

// ValidatePath validates a catalog or project file path for safety.
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

// ValidateWireDistance validates a per-device wire run length in feet.
// The voltage-drop calculator assumes non-negative distances; that caller
// contract is enforced here, at the input boundary, rather than inside the
// calculation loop.
func ValidateWireDistance(feet float64) error {
	if feet < 0 {
		return New(ErrCodeInvalidDistance, "wire distance cannot be negative: %g ft", feet)
	}
	const maxRunFeet = 100000
	if feet > maxRunFeet {
		return New(ErrCodeInvalidDistance, "wire distance unreasonably large: %g ft", feet)
	}
	return nil
}
