package state

import (
	"github.com/dharsanguruparan/PaperProbe/internal/model"
)

// Command is a named request to transition the snapshot. Any type satisfying
// the interface may be dispatched; kinds the reducer does not know are
// ignored.
type Command interface {
	CommandName() string
}

type (
	// SetActiveTab switches the visible tab. Unknown tabs are rejected.
	SetActiveTab struct{ Tab model.Tab }
	ToggleDarkMode struct{}
	SetTheme       struct{ Dark bool }
	SetLoading     struct{ Loading bool }

	// StartGeneration marks generation in progress and clears errors.
	StartGeneration    struct{}
	CompleteGeneration struct{}
	SetGeneratedPaper  struct{ Paper model.GeneratedPaper }
	AddToHistory       struct{ Paper model.GeneratedPaper }

	// AddFiles admits a batch of validated files. IDs are assigned by the
	// caller; a batch containing an empty or already used id is rejected as
	// a whole.
	AddFiles struct{ Files []model.FileRecord }
	// RemoveFile drops a file and its analysis result.
	RemoveFile struct{ ID string }
	ClearFiles struct{}
	// StartFileProcessing moves an uploaded file to processing.
	StartFileProcessing struct{ ID string }
	// UpdateFileProgress merges progress and/or metadata into a file.
	UpdateFileProgress struct {
		ID       string
		Progress *float64
		Metadata *model.Metadata
	}
	// CompleteFileProcessing moves a file to a terminal status. Status
	// defaults to completed; StatusError records Message as the reason.
	CompleteFileProcessing struct {
		ID      string
		Status  model.FileStatus
		Message string
	}
	// SetAnalysisResult replaces the result held by the owning file.
	SetAnalysisResult struct{ Result model.AnalysisResult }
	StartAnalysis     struct{}
	CompleteAnalysis  struct{}

	AddNotification struct {
		Kind    model.NotificationKind
		Title   string
		Message string
	}
	RemoveNotification struct{ ID int64 }
	ClearNotifications struct{}

	AddError struct {
		Source  string
		Message string
	}
	ClearErrors struct{}

	UpdatePreferences struct{ Patch model.PreferencesPatch }
	ResetPreferences  struct{}
)

func (SetActiveTab) CommandName() string           { return "SET_ACTIVE_TAB" }
func (ToggleDarkMode) CommandName() string         { return "TOGGLE_DARK_MODE" }
func (SetTheme) CommandName() string               { return "SET_THEME" }
func (SetLoading) CommandName() string             { return "SET_LOADING" }
func (StartGeneration) CommandName() string        { return "START_GENERATION" }
func (CompleteGeneration) CommandName() string     { return "COMPLETE_GENERATION" }
func (SetGeneratedPaper) CommandName() string      { return "SET_GENERATED_PAPER" }
func (AddToHistory) CommandName() string           { return "ADD_TO_GENERATION_HISTORY" }
func (AddFiles) CommandName() string               { return "ADD_FILES" }
func (RemoveFile) CommandName() string             { return "REMOVE_FILE" }
func (ClearFiles) CommandName() string             { return "CLEAR_FILES" }
func (StartFileProcessing) CommandName() string    { return "START_FILE_PROCESSING" }
func (UpdateFileProgress) CommandName() string     { return "UPDATE_FILE_PROGRESS" }
func (CompleteFileProcessing) CommandName() string { return "COMPLETE_FILE_PROCESSING" }
func (SetAnalysisResult) CommandName() string      { return "SET_ANALYSIS_RESULT" }
func (StartAnalysis) CommandName() string          { return "START_ANALYSIS" }
func (CompleteAnalysis) CommandName() string       { return "COMPLETE_ANALYSIS" }
func (AddNotification) CommandName() string        { return "ADD_NOTIFICATION" }
func (RemoveNotification) CommandName() string     { return "REMOVE_NOTIFICATION" }
func (ClearNotifications) CommandName() string     { return "CLEAR_NOTIFICATIONS" }
func (AddError) CommandName() string               { return "ADD_ERROR" }
func (ClearErrors) CommandName() string            { return "CLEAR_ERRORS" }
func (UpdatePreferences) CommandName() string      { return "UPDATE_PREFERENCES" }
func (ResetPreferences) CommandName() string       { return "RESET_PREFERENCES" }

// Progress is a convenience for building UpdateFileProgress payloads.
func Progress(p float64) *float64 { return &p }
