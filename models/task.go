package models

import "time"

// Task is a user-owned unit of work with a deadline.
type Task struct {
	ID              string    `bson:"id" json:"id"`
	UserID          string    `bson:"userId" json:"userId"`
	Title           string    `bson:"title" json:"title"`
	Description     string    `bson:"description" json:"description"`
	Deadline        time.Time `bson:"deadline" json:"deadline"`
	ReminderMinutes *int      `bson:"reminderMinutes,omitempty" json:"reminderMinutes,omitempty"`
	IsCompleted     bool      `bson:"isCompleted" json:"isCompleted"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updatedAt" json:"updatedAt"`
}

// CreateTaskInput is the payload accepted when creating a task.
type CreateTaskInput struct {
	Title           string    `json:"title" binding:"required"`
	Description     string    `json:"description"`
	Deadline        time.Time `json:"deadline"`
	ReminderMinutes *int      `json:"reminderMinutes" binding:"omitempty,min=0"`
}

// UpdateTaskInput carries a partial update; nil fields are left untouched.
type UpdateTaskInput struct {
	Title           *string    `json:"title"`
	Description     *string    `json:"description"`
	Deadline        *time.Time `json:"deadline"`
	IsCompleted     *bool      `json:"isCompleted"`
	ReminderMinutes *int       `json:"reminderMinutes" binding:"omitempty,min=0"`
}

// TaskFilter narrows task listings.
type TaskFilter struct {
	IsCompleted *bool
}
