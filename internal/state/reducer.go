package state

import (
	"math"
	"time"

	"github.com/dharsanguruparan/PaperProbe/internal/model"
)

// Reduce applies cmd to s and returns the next snapshot. It is a pure
// function of its inputs: at is the commit time used for every timestamp the
// command assigns. Unknown or invalid commands return s unchanged.
func Reduce(s Snapshot, cmd Command, at time.Time) Snapshot {
	next, _ := reduce(s, cmd, at)
	return next
}

// reduce additionally reports whether anything changed so the Store can skip
// notifying listeners for no-ops. s is a copy, so assigning its fields is
// safe as long as slices are replaced rather than written into.
func reduce(s Snapshot, cmd Command, at time.Time) (Snapshot, bool) {
	switch c := cmd.(type) {
	case ToggleDarkMode:
		s.DarkMode = !s.DarkMode
		return s, true

	case SetTheme:
		if s.DarkMode == c.Dark {
			return s, false
		}
		s.DarkMode = c.Dark
		return s, true

	case SetActiveTab:
		if !c.Tab.Valid() || s.ActiveTab == c.Tab {
			return s, false
		}
		s.ActiveTab = c.Tab
		return s, true

	case SetLoading:
		if s.IsLoading == c.Loading {
			return s, false
		}
		s.IsLoading = c.Loading
		return s, true

	case StartGeneration:
		s.IsGenerating = true
		s.Errors = nil
		return s, true

	case CompleteGeneration:
		if !s.IsGenerating {
			return s, false
		}
		s.IsGenerating = false
		return s, true

	case SetGeneratedPaper:
		paper := c.Paper
		s.GeneratedPaper = &paper
		s.IsGenerating = false
		return s, true

	case AddToHistory:
		keep := len(s.History)
		if keep > HistoryLimit-1 {
			keep = HistoryLimit - 1
		}
		history := make([]model.GeneratedPaper, 0, keep+1)
		history = append(history, c.Paper)
		history = append(history, s.History[:keep]...)
		s.History = history
		return s, true

	case AddFiles:
		return addFiles(s, c, at)

	case RemoveFile:
		i := indexOf(s.Files, c.ID)
		if i < 0 {
			return s, false
		}
		files := make([]model.FileRecord, 0, len(s.Files)-1)
		files = append(files, s.Files[:i]...)
		files = append(files, s.Files[i+1:]...)
		s.Files = files
		return s, true

	case ClearFiles:
		if len(s.Files) == 0 {
			return s, false
		}
		s.Files = nil
		return s, true

	case StartFileProcessing:
		return updateFile(s, c.ID, func(f *model.FileRecord) bool {
			if f.Status != model.StatusUploaded {
				return false
			}
			f.Status = model.StatusProcessing
			return true
		})

	case UpdateFileProgress:
		if c.Progress == nil && c.Metadata == nil {
			return s, false
		}
		return updateFile(s, c.ID, func(f *model.FileRecord) bool {
			if c.Progress != nil {
				f.Progress = clampPercent(*c.Progress)
			}
			if c.Metadata != nil {
				md := *c.Metadata
				f.Metadata = &md
			}
			return true
		})

	case CompleteFileProcessing:
		return updateFile(s, c.ID, func(f *model.FileRecord) bool {
			switch c.Status {
			case "", model.StatusCompleted:
				if f.Status != model.StatusProcessing {
					return false
				}
				f.Status = model.StatusCompleted
				f.Progress = 100
			case model.StatusError:
				if f.Status.IsTerminal() {
					return false
				}
				f.Status = model.StatusError
				f.Message = c.Message
			default:
				return false
			}
			return true
		})

	case SetAnalysisResult:
		result := c.Result
		result.SuspiciousElements = append([]string(nil), c.Result.SuspiciousElements...)
		result.Recommendations = append([]string(nil), c.Result.Recommendations...)
		return updateFile(s, result.FileID, func(f *model.FileRecord) bool {
			f.Analysis = &result
			return true
		})

	case StartAnalysis:
		if s.IsAnalyzing {
			return s, false
		}
		s.IsAnalyzing = true
		return s, true

	case CompleteAnalysis:
		if !s.IsAnalyzing {
			return s, false
		}
		s.IsAnalyzing = false
		return s, true

	case AddNotification:
		kind := c.Kind
		if kind == "" {
			kind = model.NotifyInfo
		}
		s.NotificationSeq++
		notes := make([]model.Notification, 0, len(s.Notifications)+1)
		notes = append(notes, s.Notifications...)
		notes = append(notes, model.Notification{
			ID:        s.NotificationSeq,
			Kind:      kind,
			Title:     c.Title,
			Message:   c.Message,
			CreatedAt: at,
		})
		s.Notifications = notes
		return s, true

	case RemoveNotification:
		notes := make([]model.Notification, 0, len(s.Notifications))
		for _, n := range s.Notifications {
			if n.ID != c.ID {
				notes = append(notes, n)
			}
		}
		if len(notes) == len(s.Notifications) {
			return s, false
		}
		s.Notifications = notes
		return s, true

	case ClearNotifications:
		if len(s.Notifications) == 0 {
			return s, false
		}
		s.Notifications = nil
		return s, true

	case AddError:
		s.ErrorSeq++
		errs := make([]model.ErrorRecord, 0, len(s.Errors)+1)
		errs = append(errs, s.Errors...)
		errs = append(errs, model.ErrorRecord{
			ID:        s.ErrorSeq,
			Source:    c.Source,
			Message:   c.Message,
			CreatedAt: at,
		})
		s.Errors = errs
		return s, true

	case ClearErrors:
		if len(s.Errors) == 0 {
			return s, false
		}
		s.Errors = nil
		return s, true

	case UpdatePreferences:
		if c.Patch.IsEmpty() {
			return s, false
		}
		s.Preferences = s.Preferences.Merge(c.Patch)
		return s, true

	case ResetPreferences:
		s.Preferences = model.DefaultPreferences()
		return s, true

	default:
		return s, false
	}
}

func addFiles(s Snapshot, c AddFiles, at time.Time) (Snapshot, bool) {
	if len(c.Files) == 0 {
		return s, false
	}
	seen := make(map[string]struct{}, len(s.Files)+len(c.Files))
	for _, f := range s.Files {
		seen[f.ID] = struct{}{}
	}
	files := make([]model.FileRecord, 0, len(s.Files)+len(c.Files))
	files = append(files, s.Files...)
	for _, f := range c.Files {
		if f.ID == "" {
			return s, false
		}
		if _, dup := seen[f.ID]; dup {
			return s, false
		}
		seen[f.ID] = struct{}{}
		files = append(files, model.FileRecord{
			ID:         f.ID,
			Name:       f.Name,
			Size:       f.Size,
			Type:       f.Type,
			Status:     model.StatusUploaded,
			UploadedAt: at,
		})
	}
	s.Files = files
	return s, true
}

// updateFile copies the file slice and applies mutate to the copy of the
// matching record. A missing id or a false return leaves s untouched.
func updateFile(s Snapshot, id string, mutate func(*model.FileRecord) bool) (Snapshot, bool) {
	i := indexOf(s.Files, id)
	if i < 0 {
		return s, false
	}
	rec := s.Files[i]
	if !mutate(&rec) {
		return s, false
	}
	files := make([]model.FileRecord, len(s.Files))
	copy(files, s.Files)
	files[i] = rec
	s.Files = files
	return s, true
}

func clampPercent(p float64) float64 {
	switch {
	case math.IsNaN(p), p < 0:
		return 0
	case p > 100:
		return 100
	default:
		return p
	}
}
