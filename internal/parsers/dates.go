package parsers

import (
	"regexp"
	"time"
)

// isoLayout is the output form for normalised timestamps, matching
// ISO-8601 without a zone offset.
const isoLayout = "2006-01-02T15:04:05"

// weekdayPrefix strips an optional leading weekday name, as Kindle
// writes "Added on Monday, January 1, 2024 ...".
var weekdayPrefix = regexp.MustCompile(`^(Monday|Tuesday|Wednesday|Thursday|Friday|Saturday|Sunday),?\s*`)

// dateLayouts are tried in order; the first layout that parses wins.
var dateLayouts = []string{
	"January 2, 2006 3:04:05 PM", // January 1, 2024 12:00:00 PM
	"January 2, 2006",            // January 1, 2024
	"1/2/2006 3:04:05 PM",        // 1/1/2024 12:00:00 PM
	"1/2/2006",                   // 1/1/2024
	"2006-01-02 15:04:05",        // 2024-01-01 12:00:00
	"2006-01-02",                 // 2024-01-01
}

// NormalizeDate converts a source date string to ISO-8601 on a
// best-effort basis. Unrecognised formats are passed through
// unchanged; a lossy value beats losing the record.
func NormalizeDate(raw string) string {
	stripped := weekdayPrefix.ReplaceAllString(raw, "")
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, stripped); err == nil {
			return t.Format(isoLayout)
		}
	}
	return raw
}
