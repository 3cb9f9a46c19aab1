package config

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadStudents_defaults(t *testing.T) {
	t.Setenv("QUEUE_REGION", "us-east-1")
	t.Setenv("QUEUE_URL", "https://sqs.us-east-1.amazonaws.com/000000000000/students")

	cfg, err := LoadStudents()
	require.NoError(t, err)

	assert.Equal(t, "3001", cfg.Port)
	assert.Equal(t, 5, cfg.MaxMessages)
	assert.Equal(t, 10*time.Second, cfg.WaitTime)
	assert.Equal(t, 30*time.Second, cfg.VisibilityTimeout)
	assert.Equal(t, 5*time.Second, cfg.PollInterval)
	assert.True(t, cfg.AckMalformed)
	assert.Equal(t, logrus.InfoLevel, cfg.Level())
}

func TestLoadStudents_missing_queue_settings(t *testing.T) {
	t.Setenv("QUEUE_REGION", "")
	t.Setenv("QUEUE_URL", "")

	testCases := []struct {
		Name   string
		Region string
		URL    string
	}{
		{Name: "missing_region", URL: "memory://students"},
		{Name: "missing_url", Region: "us-east-1"},
		{Name: "missing_both"},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			t.Setenv("QUEUE_REGION", tc.Region)
			t.Setenv("QUEUE_URL", tc.URL)

			_, err := LoadStudents()
			assert.Error(t, err)
		})
	}
}

func TestLoadStudents_rejects_oversized_batch(t *testing.T) {
	t.Setenv("QUEUE_REGION", "us-east-1")
	t.Setenv("QUEUE_URL", "memory://students")
	t.Setenv("QUEUE_MAX_MESSAGES", "50")

	_, err := LoadStudents()
	assert.Error(t, err)
}

func TestLoadOrders(t *testing.T) {
	t.Setenv("PORT", "4100")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadOrders()
	require.NoError(t, err)

	assert.Equal(t, "4100", cfg.Port)
	assert.Equal(t, logrus.DebugLevel, cfg.Level())
}
