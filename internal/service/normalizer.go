package service

import (
	"regexp"
	"strings"

	"github.com/vanshika/airnet/internal/domain"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// normalizeCode trims surrounding whitespace from user-supplied airport codes.
// Case is preserved: codes are matched exactly.
func normalizeCode(code string) domain.AirportCode {
	return domain.AirportCode(strings.TrimSpace(code))
}

// sanitizeString collapses whitespace and trims the result.
func sanitizeString(value string) string {
	value = whitespaceRegex.ReplaceAllString(value, " ")
	return strings.TrimSpace(value)
}
