package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "*/15 * * * *", cfg.ReminderCronSpec)

	r := cfg.Reminders()
	assert.Equal(t, 24*time.Hour, r.CreationOffset)
	assert.Equal(t, 60*time.Minute, r.RescheduleOffset)
	assert.Equal(t, 1, r.Concurrency)
	assert.Equal(t, 10*time.Minute, r.ClaimTimeout)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("REMINDER_HOURS_BEFORE", "2")
	t.Setenv("REMINDER_MINUTES_BEFORE", "15")
	t.Setenv("REMINDER_DISPATCH_CONCURRENCY", "4")
	t.Setenv("SMTP_TIMEOUT", "5s")

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	r := cfg.Reminders()
	assert.Equal(t, 2*time.Hour, r.CreationOffset)
	assert.Equal(t, 15*time.Minute, r.RescheduleOffset)
	assert.Equal(t, 4, r.Concurrency)
	assert.Equal(t, 5*time.Second, cfg.SMTPTimeout)
}

func TestRemindersClampsConcurrency(t *testing.T) {
	cfg := Config{ReminderDispatchConcurrency: -3}
	assert.Equal(t, 1, cfg.Reminders().Concurrency)
}
