package content

import (
	"errors"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

var errEmptyDate = errors.New("empty date")

// dateLayouts are the formats observed in authored front-matter. The
// comma form shows up in older entries; it is accepted but callers
// should surface it as a data-quality warning (see NormalizeDate).
var dateLayouts = []string{
	"2006-01-02",
	"2006, 01, 02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// NormalizeDate converts an on-disk date string into the canonical
// in-memory representation: a UTC time.Time. This is the only place
// in the repository that knows about source date formats; everything
// downstream compares time.Time values.
//
// legacy is true when the value used the comma-separated form.
func NormalizeDate(value string) (t time.Time, legacy bool, err error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, false, &DateParseError{Value: value, Err: errEmptyDate}
	}

	for _, layout := range dateLayouts {
		parsed, parseErr := time.Parse(layout, trimmed)
		if parseErr != nil {
			continue
		}

		return parsed.UTC(), layout == "2006, 01, 02", nil
	}

	// Last resort for formats we have not seen yet.
	parsed, parseErr := dateparse.ParseStrict(trimmed)
	if parseErr != nil {
		return time.Time{}, false, &DateParseError{Value: value, Err: parseErr}
	}

	return parsed.UTC(), false, nil
}
