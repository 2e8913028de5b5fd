package logging_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emblem/internal/logging"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		level string
		want  log.Level
	}{
		{"debug", log.DebugLevel},
		{"info", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"warning", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"DEBUG", log.DebugLevel},
		{"bogus", log.WarnLevel},
		{"", log.WarnLevel},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger := logging.New(tt.level)
			require.NotNil(t, logger)
			assert.Equal(t, tt.want, logger.GetLevel())
		})
	}
}

func TestValidLevel(t *testing.T) {
	assert.True(t, logging.ValidLevel("Info"))
	assert.False(t, logging.ValidLevel("trace"))
}

func TestSetDefaultAndLevel(t *testing.T) {
	original := logging.Default()
	defer logging.SetDefault(original)

	var buf bytes.Buffer
	logging.SetDefault(logging.NewWithWriter(&buf, "error"))
	logging.Default().Info("hidden")
	assert.Empty(t, buf.String())

	logging.SetLevel("debug")
	logging.Default().Debug("parsed", logging.FieldPath, "a.em")
	assert.Contains(t, buf.String(), "parsed")
	assert.Contains(t, buf.String(), "path=a.em")
}

func TestContext(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, "info")

	ctx := logging.WithLogger(context.Background(), logger)
	assert.Same(t, logger, logging.FromContext(ctx))
	assert.Same(t, logging.Default(), logging.FromContext(context.Background()))
}
