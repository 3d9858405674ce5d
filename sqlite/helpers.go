package sqlite

import (
	"fmt"
	"strings"
	"time"
)

// formatRFC3339 formats t for storage. Timestamps are stored in UTC so that
// they sort lexically.
func formatRFC3339(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// parseRFC3339 parses a stored timestamp, naming the column on failure.
func parseRFC3339(value, fieldName string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	return t, nil
}

// appendPagination adds LIMIT and OFFSET for positive values.
func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	if limit > 0 {
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}
