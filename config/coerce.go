package config

import (
	"strconv"
	"strings"
)

// AsInteger is a best-effort parse of raw as a base-10 integer. Empty,
// blank and non-numeric input yield ok == false; it never fails harder
// than that. Callers decide what "no value" means for them.
func AsInteger(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}
