package models

import "time"

// DeliveryStatus is the per-task result of a reminder run.
type DeliveryStatus string

const (
	DeliverySent    DeliveryStatus = "sent"
	DeliverySkipped DeliveryStatus = "skipped_no_recipient"
	DeliveryFailed  DeliveryStatus = "failed"
)

// DeliveryOutcome records what happened to a single candidate task during a
// reminder run. Never persisted; lives only in the run response.
type DeliveryOutcome struct {
	TaskID string         `json:"taskId"`
	Email  string         `json:"email,omitempty"`
	Status DeliveryStatus `json:"status"`
	Error  string         `json:"error,omitempty"`
}

// ReminderRun is the aggregate summary of one dispatcher pass.
type ReminderRun struct {
	TasksProcessed int               `json:"tasksProcessed"`
	Outcomes       []DeliveryOutcome `json:"emailResults"`
}

// TaskWithOwner is a reminder candidate: a due task joined with its owner's
// profile fields needed to address the notification.
type TaskWithOwner struct {
	ID         string
	Title      string
	DueDate    time.Time
	UserID     string
	OwnerEmail *string
	OwnerName  *string
}
