package notification

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// SentEmail represents an email that was recorded by MockEmailSender.
type SentEmail struct {
	To      string
	Subject string
	HTML    string
	SentAt  time.Time
}

// MockEmailSender implements EmailSender for development and tests.
type MockEmailSender struct {
	mu     sync.Mutex
	sent   []SentEmail
	fail   bool
	logger *zap.Logger
}

func NewMockEmailSender(logger *zap.Logger) *MockEmailSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MockEmailSender{logger: logger}
}

func (m *MockEmailSender) SendEmail(_ context.Context, to, subject, htmlBody string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.fail {
		m.logger.Warn("[MockEmail] ❌ Simulated delivery failure", zap.String("to", to))
		return false
	}
	m.sent = append(m.sent, SentEmail{To: to, Subject: subject, HTML: htmlBody, SentAt: time.Now()})
	m.logger.Info("[MockEmail] 📧 Email recorded", zap.String("to", to), zap.String("subject", subject))
	return true
}

// SetFail toggles simulated delivery failure.
func (m *MockEmailSender) SetFail(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fail = fail
}

// Sent returns a copy of the recorded emails.
func (m *MockEmailSender) Sent() []SentEmail {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SentEmail, len(m.sent))
	copy(out, m.sent)
	return out
}
