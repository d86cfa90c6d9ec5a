package notification

import (
	"taskly/config"

	"go.uber.org/zap"
)

// NewSenderFromConfig returns the mock sender when EMAIL_TESTING_MODE is set,
// otherwise an SMTP sender built from cfg.
func NewSenderFromConfig(cfg config.Config, logger *zap.Logger) EmailSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.EmailTestingMode {
		logger.Info("[Notification] 📭 Using mock email sender", zap.String("env", cfg.Env))
		return NewMockEmailSender(logger)
	}
	return NewSMTPEmailSender(SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.EmailFrom,
		FromName: cfg.EmailFromName,
		Timeout:  cfg.SMTPTimeout,
	}, logger)
}
