package extract

import (
	"regexp"
	"strings"

	"github.com/lakeviewhq/frontdesk/internal/elevenlabs"
)

var (
	// Conservative shape check: local@domain.tld with a TLD of at least
	// two letters. Deliberately stricter than RFC 5322.
	emailExact = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

	// Loose scan pattern for email-like tokens inside free text.
	emailSearch = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
)

// ValidateEmail reports whether s is a syntactically plausible address.
// An empty string is never valid.
func ValidateEmail(s string) bool {
	return s != "" && emailExact.MatchString(s)
}

// CustomerEmail derives the customer's address for a conversation, or ""
// when none can be found. The explicit client-data field wins over anything
// mentioned in the transcript; whichever source matches is lowercased.
func CustomerEmail(conv *elevenlabs.Conversation) string {
	if conv == nil {
		return ""
	}
	if e := conv.InitiationClientData.Email; ValidateEmail(e) {
		return strings.ToLower(e)
	}
	for _, entry := range conv.Transcript {
		if m := emailSearch.FindString(entry.Message); m != "" && ValidateEmail(m) {
			return strings.ToLower(m)
		}
	}
	return ""
}
