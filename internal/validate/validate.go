package validate

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reID    = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
)

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 100 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// ID validates a simple resource identifier (product/category/cart/address ids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// Qty parses a positive line-item quantity. Clamped to 50 to avoid abuse.
func Qty(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, false
	}
	if n > 50 {
		return 0, false
	}
	return n, true
}

// AddressField enforces the non-blank, minimum length 5 rule shared by every
// address field.
func AddressField(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 5 || len(s) > 100 {
		return "", false
	}
	return s, true
}

// Name validates a displayable name (user, category, product).
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 100 {
		return "", false
	}
	return s, true
}

// Password enforces length plus one of each character class.
func Password(s string) bool {
	l := len(s)
	if l < 8 || l > 64 {
		return false
	}
	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range s {
		switch {
		case 'a' <= r && r <= 'z':
			hasLower = true
		case 'A' <= r && r <= 'Z':
			hasUpper = true
		case '0' <= r && r <= '9':
			hasDigit = true
		default:
			hasSymbol = true
		}
	}
	return hasLower && hasUpper && hasDigit && hasSymbol
}

// Page parses pageNumber/pageSize query values with sane defaults
// (zero-based page, 10 per page, max 100).
func Page(pageNumber, pageSize string) (int, int) {
	page := 0
	if n, err := strconv.Atoi(strings.TrimSpace(pageNumber)); err == nil && n >= 0 {
		page = n
	}
	size := 10
	if n, err := strconv.Atoi(strings.TrimSpace(pageSize)); err == nil && n >= 1 && n <= 100 {
		size = n
	}
	return page, size
}

// SortOrder normalizes to "asc" or "desc".
func SortOrder(s string) string {
	if strings.EqualFold(strings.TrimSpace(s), "desc") {
		return "desc"
	}
	return "asc"
}
