// Package state holds the application state store: an immutable Snapshot, the
// commands that transition it, a pure reducer and a Store that serializes
// dispatches and fans out committed changes to listeners.
package state

import (
	"github.com/dharsanguruparan/PaperProbe/internal/model"
)

// HistoryLimit bounds the generation history.
const HistoryLimit = 10

// Snapshot is the complete state at one instant. It is treated as immutable:
// the reducer always builds new slices instead of writing into existing ones,
// so a Snapshot handed to a reader never changes underneath it. Readers must
// not modify the slices or pointed-to values either.
type Snapshot struct {
	DarkMode  bool      `json:"darkMode"`
	ActiveTab model.Tab `json:"activeTab"`

	GeneratedPaper *model.GeneratedPaper  `json:"generatedPaper,omitempty"`
	IsGenerating   bool                   `json:"isGenerating"`
	History        []model.GeneratedPaper `json:"generationHistory"`

	// Files is the single indexed collection of uploads in insertion order.
	Files       []model.FileRecord `json:"files"`
	IsAnalyzing bool               `json:"isAnalyzing"`

	Notifications []model.Notification `json:"notifications"`
	IsLoading     bool                 `json:"isLoading"`
	Errors        []model.ErrorRecord  `json:"errors"`

	Preferences model.Preferences `json:"preferences"`

	NotificationSeq int64 `json:"notificationSeq"`
	ErrorSeq        int64 `json:"errorSeq"`
}

// Initial returns the default snapshot.
func Initial() Snapshot {
	return Snapshot{
		ActiveTab:   model.TabGenerator,
		Preferences: model.DefaultPreferences(),
	}
}

// File returns the record with the given id.
func (s Snapshot) File(id string) (model.FileRecord, bool) {
	if i := indexOf(s.Files, id); i >= 0 {
		return s.Files[i], true
	}
	return model.FileRecord{}, false
}

// UploadedFiles lists every file in the registry regardless of status.
func (s Snapshot) UploadedFiles() []model.FileRecord {
	return append([]model.FileRecord(nil), s.Files...)
}

// ProcessingFiles lists files currently being analyzed.
func (s Snapshot) ProcessingFiles() []model.FileRecord {
	return s.filesWithStatus(model.StatusProcessing)
}

// CompletedFiles lists files whose analysis finished.
func (s Snapshot) CompletedFiles() []model.FileRecord {
	return s.filesWithStatus(model.StatusCompleted)
}

// AnalysisResults lists the current result of every analyzed file.
func (s Snapshot) AnalysisResults() []model.AnalysisResult {
	var out []model.AnalysisResult
	for _, f := range s.Files {
		if f.Analysis != nil {
			out = append(out, *f.Analysis)
		}
	}
	return out
}

// UploadProgress maps file ids to their progress percentage.
func (s Snapshot) UploadProgress() map[string]float64 {
	out := make(map[string]float64, len(s.Files))
	for _, f := range s.Files {
		if f.Progress > 0 {
			out[f.ID] = f.Progress
		}
	}
	return out
}

// PendingAnalysis lists files eligible for batch analysis: still uploaded
// and without a result.
func (s Snapshot) PendingAnalysis() []model.FileRecord {
	var out []model.FileRecord
	for _, f := range s.Files {
		if f.Status == model.StatusUploaded && f.Analysis == nil {
			out = append(out, f)
		}
	}
	return out
}

func (s Snapshot) filesWithStatus(status model.FileStatus) []model.FileRecord {
	var out []model.FileRecord
	for _, f := range s.Files {
		if f.Status == status {
			out = append(out, f)
		}
	}
	return out
}

func indexOf(files []model.FileRecord, id string) int {
	for i := range files {
		if files[i].ID == id {
			return i
		}
	}
	return -1
}
