package common

import (
	"strings"
)

const maxContentLength = 4000

// ValidateContent gates a send or edit before any transport call. Whitespace
// only counts as empty.
func ValidateContent(content string) error {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return ErrEmptyContent
	}
	if len(content) > maxContentLength {
		return ErrContentTooLong
	}
	return nil
}
