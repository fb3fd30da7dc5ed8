// Package title turns raw upload filenames into human-readable movie
// titles of the form "Title (Year) Language".
package title

import (
	"fmt"
	"regexp"
	"strings"
)

// The cleanup runs as an ordered pipeline. Order is load-bearing: release
// tags must be stripped before the year is extracted, otherwise a tag
// sitting next to the year ends up inside the captured title.
var (
	bracketGroups = regexp.MustCompile(`\[.*?\]`)
	leadingJunk   = regexp.MustCompile(`^[@\W_]+`)
	nonASCII      = regexp.MustCompile(`[^\x00-\x7F]+`)
	separatorRuns = regexp.MustCompile(`[_\s]+`)
	multiSpace    = regexp.MustCompile(`\s+`)
	dotRuns       = regexp.MustCompile(`[.\s]+`)

	// Known quality/codec/source/container markers. A denylist, not a
	// grammar: anything not listed passes through untouched.
	releaseTags = regexp.MustCompile(`(?i)(HDRip|10bit|x264|AAC\d*|MB|AMZN|WEB-DL|WEBRip|HEVC|x265|ESub|HQ|\.mkv|\.mp4|\.avi|\.mov|BluRay|DVDRip|720p|1080p|540p|SD|HD|CAM|DVDScr|R5|TS|Rip|BRRip|AC3|DualAudio|6CH|v\d+)(\W|$)`)

	// Anchored title/year/language extractor. The year is mandatory, the
	// language optional and limited to the fixed vocabulary.
	titleYearLang = regexp.MustCompile(`(?i)^(.*?)[\s_]*\(?(\d{4})\)?[\s_]*(Malayalam|Tamil|Hindi|Telugu|English)?`)
)

const trimCutset = " -._"

// Normalize cleans a raw upload filename into a display name. It is a
// total function: the worst case is the trimmed input.
func Normalize(raw string) string {
	s := bracketGroups.ReplaceAllString(raw, "")
	s = leadingJunk.ReplaceAllString(s, "")
	s = nonASCII.ReplaceAllString(s, "")
	s = strings.TrimSpace(separatorRuns.ReplaceAllString(s, " "))
	s = strings.TrimSpace(releaseTags.ReplaceAllString(s, " "))

	m := titleYearLang.FindStringSubmatch(s)
	if m == nil {
		return strings.Trim(s, trimCutset)
	}
	// Release names separate words with dots as often as spaces; the
	// captured title folds both into single spaces.
	name := dotRuns.ReplaceAllString(strings.Trim(m[1], trimCutset), " ")
	out := strings.TrimSpace(fmt.Sprintf("%s (%s) %s", name, m[2], m[3]))
	return multiSpace.ReplaceAllString(out, " ")
}
