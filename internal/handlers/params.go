package handlers

import (
	"net/http"
	"strconv"
	"strings"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// pagination parses page/limit query parameters. Absent or malformed values
// fall back to the defaults; limit is capped so a single request cannot pull
// an unbounded listing.
func pagination(r *http.Request) (page, limit int) {
	page = defaultPage
	limit = defaultLimit

	if raw := r.URL.Query().Get("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			page = n
		}
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}

// pathID extracts a non-empty path value. The second return is false when the
// segment is missing or blank.
func pathID(r *http.Request, name string) (string, bool) {
	value := strings.TrimSpace(r.PathValue(name))
	return value, value != ""
}
