package validation

import (
	"regexp"
	"strings"
)

// emailRegex is a format sanity check only, not RFC 5322. It accepts anything
// shaped like x@y.z, including plenty of malformed addresses. That looseness
// is an accepted product decision: the confirmation email bouncing is the
// lead's problem, losing a lead over a strict regex is ours.
var emailRegex = regexp.MustCompile(`.+@.+\..+`)

// Name reports whether the lead entered at least two characters of name
// after trimming surrounding whitespace.
func Name(name string) bool {
	return len(strings.TrimSpace(name)) >= 2
}

// Email reports whether the address passes the loose x@y.z shape check.
func Email(email string) bool {
	return emailRegex.MatchString(email)
}

// Phone reports whether the number has at least 7 characters after trimming.
func Phone(phone string) bool {
	return len(strings.TrimSpace(phone)) >= 7
}

// Lead combines the three field predicates; all must hold.
func Lead(name, email, phone string) bool {
	return Name(name) && Email(email) && Phone(phone)
}
