package goquery

import (
	"regexp"
	"strings"
)

// Label and stop-marker patterns for the info block. Matching is
// case-insensitive; stop markers intentionally overlap across fields
// ("Original" terminates both the company and languages spans, and also
// prefixes the "Original Size" label), so spans must always end at the
// earliest stop occurrence.
var (
	reGenresLabel       = regexp.MustCompile(`(?i)genres?[/\s]*tags?:`)
	reCompanyLabel      = regexp.MustCompile(`(?i)compan(?:y|ies):`)
	reLanguagesLabel    = regexp.MustCompile(`(?i)languages?:`)
	reOriginalSizeLabel = regexp.MustCompile(`(?i)original size:`)
	reRepackSizeLabel   = regexp.MustCompile(`(?i)repack size:`)

	reOriginalStop = regexp.MustCompile(`(?i)original`)
	reRepackStop   = regexp.MustCompile(`(?i)repack`)
	reThisGameStop = regexp.MustCompile(`(?i)this game`)
	reDownloadStop = regexp.MustCompile(`(?i)download`)

	reWhitespace = regexp.MustCompile(`\s+`)
)

// fieldSpec ties one labeled field to the markers that terminate its span.
// Keeping the stop-boundary policy in this table makes it testable in
// isolation and keeps the five extractions from drifting apart.
type fieldSpec struct {
	label *regexp.Regexp
	stops []*regexp.Regexp
}

// infoFields is the ordered extraction table for the info block. All fields
// run independently against the same working string; order only documents
// that later stop sets reference earlier labels.
var infoFields = map[string]fieldSpec{
	"genresTags": {
		label: reGenresLabel,
		stops: []*regexp.Regexp{reCompanyLabel, reLanguagesLabel},
	},
	"company": {
		label: reCompanyLabel,
		stops: []*regexp.Regexp{reLanguagesLabel, reOriginalStop, reRepackStop},
	},
	"languages": {
		label: reLanguagesLabel,
		stops: []*regexp.Regexp{reOriginalStop, reRepackStop, reThisGameStop},
	},
	"originalSize": {
		label: reOriginalSizeLabel,
		stops: []*regexp.Regexp{reRepackStop},
	},
	"repackSize": {
		label: reRepackSizeLabel,
		stops: []*regexp.Regexp{reDownloadStop},
	},
}

// captureSpan returns the text between the first occurrence of the field's
// label and the earliest following stop marker (or end of string), with
// whitespace runs collapsed to single spaces and the result trimmed.
// Returns "" when the label is absent.
func captureSpan(text string, spec fieldSpec) string {
	loc := spec.label.FindStringIndex(text)
	if loc == nil {
		return ""
	}
	rest := text[loc[1]:]

	end := len(rest)
	for _, stop := range spec.stops {
		if sloc := stop.FindStringIndex(rest); sloc != nil && sloc[0] < end {
			end = sloc[0]
		}
	}

	return strings.TrimSpace(reWhitespace.ReplaceAllString(rest[:end], " "))
}

// captureInfoField extracts one named field from the info block text.
func captureInfoField(text, field string) string {
	spec, ok := infoFields[field]
	if !ok {
		return ""
	}
	return captureSpan(text, spec)
}
