package reminder

import "time"

// CreationOffset is the offset used when a task is created. A positive
// reminderMinutes wins; zero or absent falls back to the configured default.
func CreationOffset(reminderMinutes *int, fallback time.Duration) time.Duration {
	if reminderMinutes != nil && *reminderMinutes > 0 {
		return time.Duration(*reminderMinutes) * time.Minute
	}
	return fallback
}

// RescheduleOffset is the offset used when a deadline changes. An explicit
// reminderMinutes wins even when it is zero, which disables the reminder.
func RescheduleOffset(reminderMinutes *int, fallback time.Duration) time.Duration {
	if reminderMinutes != nil {
		return time.Duration(*reminderMinutes) * time.Minute
	}
	return fallback
}

// ScheduledAt is the instant a reminder fires for deadline and offset.
func ScheduledAt(deadline time.Time, offset time.Duration) time.Time {
	return deadline.Add(-offset)
}
