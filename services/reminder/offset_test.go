package reminder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCreationOffset(t *testing.T) {
	fallback := 24 * time.Hour
	tests := []struct {
		name    string
		minutes *int
		want    time.Duration
	}{
		{"absent uses fallback", nil, fallback},
		{"zero uses fallback", intPtr(0), fallback},
		{"positive minutes win", intPtr(30), 30 * time.Minute},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CreationOffset(tt.minutes, fallback))
		})
	}
}

func TestRescheduleOffset(t *testing.T) {
	fallback := 60 * time.Minute
	tests := []struct {
		name    string
		minutes *int
		want    time.Duration
	}{
		{"absent uses fallback", nil, fallback},
		{"explicit zero disables", intPtr(0), 0},
		{"explicit minutes win", intPtr(15), 15 * time.Minute},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RescheduleOffset(tt.minutes, fallback))
		})
	}
}

func TestScheduledAt(t *testing.T) {
	deadline := baseTime.Add(2 * time.Hour)
	assert.Equal(t, baseTime.Add(90*time.Minute), ScheduledAt(deadline, 30*time.Minute))
}
