// Package ingest is the gatekeeper in front of the file registry: it validates
// candidate uploads against the current preferences, admits accepted files in
// one batch and derives their metadata in the background.
package ingest

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/dharsanguruparan/PaperProbe/internal/model"
)

// WordsPerMinute is the reading speed behind Metadata.ReadingTime.
const WordsPerMinute = 200

// Candidate is what validation needs to know about a file.
type Candidate struct {
	Name string
	Size int64
	Type string
}

// Validate returns one message per violated rule; an empty result means the
// file is accepted. Size and format are checked independently so a file can
// fail both.
func Validate(c Candidate, prefs model.Preferences) []string {
	var violations []string
	if c.Size > prefs.MaxFileSize {
		violations = append(violations, fmt.Sprintf(
			"File size (%.2fMB) exceeds maximum allowed size (%.2fMB)",
			float64(c.Size)/1024/1024, float64(prefs.MaxFileSize)/1024/1024))
	}
	ext := Extension(c.Name)
	if !allowed(ext, prefs.AllowedFormats) {
		violations = append(violations, fmt.Sprintf(
			"File format %s is not supported. Allowed formats: %s",
			ext, strings.Join(prefs.AllowedFormats, ", ")))
	}
	return violations
}

// Extension returns the lower-cased text after the final "." prefixed with a
// dot. A name without any dot yields the whole name, so "README" becomes
// ".readme" and is rejected unless explicitly allowed.
func Extension(name string) string {
	ext := name
	if i := strings.LastIndex(name, "."); i >= 0 {
		ext = name[i+1:]
	}
	return "." + strings.ToLower(ext)
}

func allowed(ext string, formats []string) bool {
	for _, f := range formats {
		if strings.EqualFold(f, ext) {
			return true
		}
	}
	return false
}

// ExtractMetadata computes text statistics over raw content. Binary formats
// (PDF, DOCX, RTF) are measured over their undecoded stream. Characters are
// counted in UTF-16 code units, so a character outside the Basic
// Multilingual Plane (most emoji) counts twice.
func ExtractMetadata(content []byte, size int64, mimeType string) model.Metadata {
	text := string(content)
	words := len(strings.Fields(text))
	return model.Metadata{
		WordCount:      words,
		CharacterCount: len(utf16.Encode([]rune(text))),
		LineCount:      strings.Count(text, "\n") + 1,
		ReadingTime:    int(math.Ceil(float64(words) / WordsPerMinute)),
		Size:           size,
		SizeFormatted:  FormatSize(size),
		Type:           mimeType,
	}
}

var sizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// FormatSize renders a byte count with binary units and up to two decimals,
// e.g. "0 Bytes", "1.5 KB", "10 MB".
func FormatSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}
	v, i := float64(bytes), 0
	for v >= 1024 && i < len(sizeUnits)-1 {
		v /= 1024
		i++
	}
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64) + " " + sizeUnits[i]
}
