package notification

import (
	"html/template"
	"time"
)

type reminderTemplateData struct {
	UserName        string
	TaskTitle       string
	TaskDescription string
	Deadline        string
	DashboardURL    string
	AppName         string
	Year            int
}

// FormatDeadline renders a deadline like "Monday, January 2, 2006 at 03:04 PM UTC".
func FormatDeadline(t time.Time) string {
	return t.Format("Monday, January 2, 2006 at 03:04 PM MST")
}

var reminderTemplate = template.Must(template.New("reminder").Parse(`<!DOCTYPE html>
<html>
  <head>
    <style>
      body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
      .container { max-width: 600px; margin: 0 auto; padding: 20px; }
      .header { background-color: #4F46E5; color: white; padding: 20px; text-align: center; border-radius: 8px 8px 0 0; }
      .content { background-color: #f9fafb; padding: 30px; border: 1px solid #e5e7eb; }
      .task-info { background-color: white; padding: 20px; border-radius: 8px; margin: 20px 0; border-left: 4px solid #4F46E5; }
      .deadline { color: #DC2626; font-weight: bold; font-size: 18px; }
      .footer { text-align: center; padding: 20px; color: #6b7280; font-size: 14px; }
      .btn { display: inline-block; padding: 12px 24px; background-color: #4F46E5; color: white; text-decoration: none; border-radius: 6px; margin-top: 20px; }
    </style>
  </head>
  <body>
    <div class="container">
      <div class="header"><h1>⏰ Task Reminder</h1></div>
      <div class="content">
        <p>Hi {{.UserName}},</p>
        <p>This is a friendly reminder about your upcoming task:</p>
        <div class="task-info">
          <h2 style="margin-top: 0; color: #4F46E5;">{{.TaskTitle}}</h2>
          {{- if .TaskDescription}}
          <p style="color: #6b7280;">{{.TaskDescription}}</p>
          {{- end}}
          <p class="deadline">📅 Deadline: {{.Deadline}}</p>
        </div>
        <p>Don't forget to complete this task before the deadline!</p>
        <div style="text-align: center;">
          <a href="{{.DashboardURL}}" class="btn">View Task</a>
        </div>
      </div>
      <div class="footer">
        <p>You're receiving this email because you set a reminder for this task.</p>
        <p>&copy; {{.Year}} {{.AppName}}. All rights reserved.</p>
      </div>
    </div>
  </body>
</html>
`))
