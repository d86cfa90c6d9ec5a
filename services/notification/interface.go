package notification

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// EmailSender delivers a single HTML email. It reports success as a boolean;
// failures are logged by the implementation.
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, htmlBody string) bool
}

// ReminderEmail carries what a task reminder email needs to render.
type ReminderEmail struct {
	UserEmail       string
	UserName        string
	TaskTitle       string
	TaskDescription string
	Deadline        time.Time
}

// NotificationService defines methods for notifying users about their tasks.
type NotificationService interface {
	SendTaskReminder(ctx context.Context, email ReminderEmail) bool
}

// DefaultNotificationService renders reminder emails and hands them to an EmailSender.
type DefaultNotificationService struct {
	sender      EmailSender
	frontendURL string
	appName     string
	logger      *zap.Logger
}

func NewDefaultNotificationService(sender EmailSender, frontendURL, appName string, logger *zap.Logger) (*DefaultNotificationService, error) {
	if sender == nil {
		return nil, fmt.Errorf("notification service initialization error: email sender is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultNotificationService{
		sender:      sender,
		frontendURL: strings.TrimRight(frontendURL, "/"),
		appName:     appName,
		logger:      logger,
	}, nil
}

// ReminderSubject is the subject line used for task reminders.
func ReminderSubject(taskTitle string) string {
	return "⏰ Reminder: " + taskTitle
}

// SendTaskReminder renders the reminder template and sends it.
func (s *DefaultNotificationService) SendTaskReminder(ctx context.Context, email ReminderEmail) bool {
	data := reminderTemplateData{
		UserName:        email.UserName,
		TaskTitle:       email.TaskTitle,
		TaskDescription: email.TaskDescription,
		Deadline:        FormatDeadline(email.Deadline),
		DashboardURL:    s.frontendURL + "/dashboard",
		AppName:         s.appName,
		Year:            time.Now().Year(),
	}

	var body bytes.Buffer
	if err := reminderTemplate.Execute(&body, data); err != nil {
		s.logger.Error("[Notification] ❌ Failed to render reminder email",
			zap.String("to", email.UserEmail), zap.Error(err))
		return false
	}

	return s.sender.SendEmail(ctx, email.UserEmail, ReminderSubject(email.TaskTitle), body.String())
}
