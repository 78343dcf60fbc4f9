// Package model contains simple struct definitions shared across packages.
package model

import (
	"fmt"
	"time"
)

// FileStatus describes the analysis lifecycle of an uploaded document. A
// named string type keeps statuses from being confused with arbitrary text.
type FileStatus string

const (
	StatusUploaded   FileStatus = "uploaded"
	StatusProcessing FileStatus = "processing"
	StatusCompleted  FileStatus = "completed"
	StatusError      FileStatus = "error"
)

// IsTerminal reports whether no further transition is defined for the status.
func (s FileStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusError
}

// FileRecord holds everything known about an uploaded file. Metadata and
// Analysis are pointers so "not yet known" is distinct from a zero value.
type FileRecord struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Size       int64           `json:"size"`
	Type       string          `json:"type"`
	Status     FileStatus      `json:"status"`
	Progress   float64         `json:"progress"`
	Metadata   *Metadata       `json:"metadata,omitempty"`
	Analysis   *AnalysisResult `json:"analysisResult,omitempty"`
	UploadedAt time.Time       `json:"uploadedAt"`
	// Message explains an error status.
	Message string `json:"message,omitempty"`
}

// Metadata is derived from the raw content of a file after upload.
type Metadata struct {
	WordCount      int    `json:"wordCount"`
	CharacterCount int    `json:"characterCount"`
	LineCount      int    `json:"lineCount"`
	ReadingTime    int    `json:"readingTime"`
	Size           int64  `json:"size"`
	SizeFormatted  string `json:"sizeFormatted"`
	Type           string `json:"type"`
}

// FileID builds a registry identifier. seq must come from a monotonic
// counter; the name only makes the id readable.
func FileID(name string, seq uint64) string {
	return fmt.Sprintf("%s-%d", name, seq)
}
