package task

import (
	"strings"
	"time"
	"unicode/utf8"

	"taskly/utils"

	"github.com/google/uuid"
)

const (
	minTitleLen       = 3
	maxTitleLen       = 200
	maxDescriptionLen = 1000
)

func validateTaskID(taskID string) error {
	if _, err := uuid.Parse(taskID); err != nil {
		return utils.NewValidationError("Invalid task ID")
	}
	return nil
}

func normalizeTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", utils.NewValidationError("Task title is required")
	}
	if n := utf8.RuneCountInString(title); n < minTitleLen || n > maxTitleLen {
		return "", utils.NewValidationError("Title must be between 3 and 200 characters")
	}
	return title, nil
}

func normalizeDescription(description string) (string, error) {
	description = strings.TrimSpace(description)
	if utf8.RuneCountInString(description) > maxDescriptionLen {
		return "", utils.NewValidationError("Description cannot exceed 1000 characters")
	}
	return description, nil
}

func validateDeadline(deadline, now time.Time) error {
	if deadline.IsZero() {
		return utils.NewValidationError("Deadline is required")
	}
	if !deadline.After(now) {
		return utils.NewValidationError("Deadline must be in the future")
	}
	return nil
}

// sameDeadline compares at the millisecond precision the store keeps.
func sameDeadline(a, b time.Time) bool {
	return a.Truncate(time.Millisecond).Equal(b.Truncate(time.Millisecond))
}

func validateReminderMinutes(minutes *int) error {
	if minutes != nil && *minutes < 0 {
		return utils.NewValidationError("reminderMinutes must be zero or greater")
	}
	return nil
}
