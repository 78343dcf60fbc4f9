package model

import (
	"errors"
	"fmt"
)

// Preferences are process-wide user settings persisted between runs.
type Preferences struct {
	AutoAnalyze        bool     `json:"autoAnalyze"`
	ShowDetectionHints bool     `json:"showDetectionHints"`
	SaveHistory        bool     `json:"saveHistory"`
	MaxFileSize        int64    `json:"maxFileSize"`
	AllowedFormats     []string `json:"allowedFormats"`
}

// DefaultMaxFileSize is 10 MiB.
const DefaultMaxFileSize int64 = 10 << 20

// DefaultPreferences returns a fresh copy of the defaults so callers may keep
// or modify it without affecting anyone else.
func DefaultPreferences() Preferences {
	return Preferences{
		AutoAnalyze:        true,
		ShowDetectionHints: true,
		SaveHistory:        true,
		MaxFileSize:        DefaultMaxFileSize,
		AllowedFormats:     []string{".txt", ".pdf", ".docx", ".rtf"},
	}
}

// PreferencesPatch is a partial update. Nil fields are left untouched.
type PreferencesPatch struct {
	AutoAnalyze        *bool    `json:"autoAnalyze,omitempty"`
	ShowDetectionHints *bool    `json:"showDetectionHints,omitempty"`
	SaveHistory        *bool    `json:"saveHistory,omitempty"`
	MaxFileSize        *int64   `json:"maxFileSize,omitempty"`
	AllowedFormats     []string `json:"allowedFormats,omitempty"`
}

// Merge applies a shallow merge of patch over p and returns the result.
func (p Preferences) Merge(patch PreferencesPatch) Preferences {
	out := p
	if patch.AutoAnalyze != nil {
		out.AutoAnalyze = *patch.AutoAnalyze
	}
	if patch.ShowDetectionHints != nil {
		out.ShowDetectionHints = *patch.ShowDetectionHints
	}
	if patch.SaveHistory != nil {
		out.SaveHistory = *patch.SaveHistory
	}
	if patch.MaxFileSize != nil {
		out.MaxFileSize = *patch.MaxFileSize
	}
	if patch.AllowedFormats != nil {
		out.AllowedFormats = append([]string(nil), patch.AllowedFormats...)
	}
	return out
}

// IsEmpty reports whether the patch changes nothing.
func (patch PreferencesPatch) IsEmpty() bool {
	return patch.AutoAnalyze == nil && patch.ShowDetectionHints == nil &&
		patch.SaveHistory == nil && patch.MaxFileSize == nil && patch.AllowedFormats == nil
}

// Tab is one of the two top-level views.
type Tab string

const (
	TabGenerator Tab = "generator"
	TabDetector  Tab = "detector"
)

// ErrInvalidTab is returned by ParseTab for unknown values.
var ErrInvalidTab = errors.New("invalid tab")

// Valid reports whether t is a known tab.
func (t Tab) Valid() bool {
	return t == TabGenerator || t == TabDetector
}

// ParseTab converts user input into a Tab.
func ParseTab(s string) (Tab, error) {
	t := Tab(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidTab, s)
	}
	return t, nil
}
