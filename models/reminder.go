package models

import "time"

type ReminderStatus string

const (
	ReminderPending ReminderStatus = "pending"
	// ReminderProcessing marks a reminder claimed by a running dispatch cycle.
	ReminderProcessing ReminderStatus = "processing"
	ReminderSent       ReminderStatus = "sent"
	ReminderFailed     ReminderStatus = "failed"
)

// ReminderFailureKind classifies why a reminder ended up FAILED.
type ReminderFailureKind string

const (
	FailureNotFound        ReminderFailureKind = "not_found"
	FailureDelivery        ReminderFailureKind = "delivery_failure"
	FailureProcessingError ReminderFailureKind = "processing_error"
)

// ReminderFailure is the structured reason persisted on a FAILED reminder.
type ReminderFailure struct {
	Kind    ReminderFailureKind
	Message string
}

func (f ReminderFailure) Error() string {
	return string(f.Kind) + ": " + f.Message
}

// Reminder is a scheduled intent to email a user about a task deadline.
type Reminder struct {
	ID              string              `bson:"id" json:"id"`
	TaskID          string              `bson:"taskId" json:"taskId"`
	UserID          string              `bson:"userId" json:"userId"`
	ScheduledAt     time.Time           `bson:"scheduledAt" json:"scheduledAt"`
	Status          ReminderStatus      `bson:"status" json:"status"`
	ReminderMinutes *int                `bson:"reminderMinutes,omitempty" json:"reminderMinutes,omitempty"`
	ErrorKind       ReminderFailureKind `bson:"errorKind,omitempty" json:"errorKind,omitempty"`
	ErrorMessage    string              `bson:"errorMessage,omitempty" json:"errorMessage,omitempty"`
	SentAt          *time.Time          `bson:"sentAt,omitempty" json:"sentAt,omitempty"`
	ClaimedAt       *time.Time          `bson:"claimedAt,omitempty" json:"claimedAt,omitempty"`
	CreatedAt       time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// DueReminder is a due reminder joined with its task and user.
// Task or User is nil when the reference no longer resolves.
type DueReminder struct {
	Reminder Reminder
	Task     *Task
	User     *User
}
