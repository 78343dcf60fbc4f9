package model

import "time"

// NotificationKind is the severity of a user-facing message.
type NotificationKind string

const (
	NotifyInfo    NotificationKind = "info"
	NotifySuccess NotificationKind = "success"
	NotifyWarning NotificationKind = "warning"
	NotifyError   NotificationKind = "error"
)

// Notification is a transient message. IDs are assigned by the state store
// and are unique for the life of the process.
type Notification struct {
	ID        int64            `json:"id"`
	Kind      NotificationKind `json:"type"`
	Title     string           `json:"title,omitempty"`
	Message   string           `json:"message"`
	CreatedAt time.Time        `json:"timestamp"`
}

// ErrorRecord is an internal error kept in the snapshot until cleared.
type ErrorRecord struct {
	ID        int64     `json:"id"`
	Source    string    `json:"source,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"timestamp"`
}
