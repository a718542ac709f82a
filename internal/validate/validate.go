package validate

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reName  = regexp.MustCompile(`^[A-Za-z0-9 _.'\-]{1,50}$`)
)

// Name validates a user name: trimmed, non-empty, sane character set.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reName.MatchString(s)
}

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 50 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// Password enforces a simple length window; bcrypt caps input at 72 bytes.
func Password(s string) bool {
	return len(s) >= 6 && len(s) <= 72
}

// TaskName validates a task title with a reasonable max length.
func TaskName(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && len(s) <= 100
}

// DueDate parses a calendar date and normalizes it to YYYY-MM-DD.
func DueDate(s string) (string, bool) {
	s = strings.TrimSpace(s)
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return "", false
	}
	return t.Format("2006-01-02"), true
}

// Priority parses a 1..10 priority, defaulting to 1 on junk input.
func Priority(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	if n > 10 {
		return 10
	}
	return n
}
