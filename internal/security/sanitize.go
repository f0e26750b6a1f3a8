package security

import (
	"fmt"
	"regexp"
	"strings"
)

// MaxMessageLength bounds notification message and title fields.
const MaxMessageLength = 500

var (
	scriptTagRe = regexp.MustCompile(`(?i)<\s*/?\s*script[^>]*>`)
	// Shell metacharacters that must never reach a child-process
	// invocation. Square brackets stay: emotion tags depend on them.
	shellMetaRe = regexp.MustCompile("[;|&$`(){}<>\\\\]")
	markupRe    = regexp.MustCompile("[*_`~]{1,3}")
	headingRe   = regexp.MustCompile(`(?m)^#{1,6}\s*`)
)

// ValidateLength rejects over-length fields outright, before any
// rewriting happens.
func ValidateLength(field, value string) error {
	if len(value) > MaxMessageLength {
		return fmt.Errorf("Invalid %s: exceeds %d characters", field, MaxMessageLength)
	}
	return nil
}

// Sanitize strips content that would be dangerous when the message is
// interpolated into shell or audio-player invocations downstream:
// script-tag openers, path traversal sequences, shell metacharacters
// and markdown markup. The result is trimmed and truncated. This is not
// general-purpose HTML sanitization.
func Sanitize(message string) string {
	message = scriptTagRe.ReplaceAllString(message, "")
	message = strings.ReplaceAll(message, "..", "")
	message = shellMetaRe.ReplaceAllString(message, "")
	message = headingRe.ReplaceAllString(message, "")
	message = markupRe.ReplaceAllString(message, "")
	message = strings.TrimSpace(message)
	if len(message) > MaxMessageLength {
		message = message[:MaxMessageLength]
	}
	return message
}

// SanitizeMessage validates and sanitizes a message field. An empty
// result after sanitization is a rejection: there is nothing left worth
// speaking.
func SanitizeMessage(message string) (string, error) {
	if err := ValidateLength("message", message); err != nil {
		return "", err
	}
	clean := Sanitize(message)
	if clean == "" {
		return "", fmt.Errorf("Invalid message: empty after sanitization")
	}
	return clean, nil
}
