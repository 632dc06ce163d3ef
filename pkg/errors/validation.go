package errors

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxRequestRunes is the longest user request text accepted for a card.
// Longer requests would dominate the card layout; the web UI enforces the
// same limit client-side.
const MaxRequestRunes = 140

// ValidateSignID validates a sign identifier for safety and correctness.
// Sign IDs are used in cache keys and file paths, so the rules are
// intentionally conservative:
//   - No empty IDs
//   - No control characters or null bytes
//   - No path traversal sequences
//   - Maximum length of 64 characters
func ValidateSignID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidSign, "sign id cannot be empty")
	}

	if len(id) > 64 {
		return New(ErrCodeInvalidSign, "sign id too long (max 64 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidSign, "sign id contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(id, pattern) {
			return New(ErrCodeInvalidSign, "sign id contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateUserRequest validates the free-text request printed on a card.
// Newlines are allowed (they start new wrapped paragraphs); other control
// characters are rejected. An empty request is valid; the card reserves
// the block either way.
func ValidateUserRequest(text string) error {
	if utf8.RuneCountInString(text) > MaxRequestRunes {
		return New(ErrCodeInvalidRequest, "request text too long (max %d characters)", MaxRequestRunes)
	}

	for _, r := range text {
		if unicode.IsControl(r) && r != '\n' {
			return New(ErrCodeInvalidRequest, "request text contains invalid control characters")
		}
	}

	return nil
}
