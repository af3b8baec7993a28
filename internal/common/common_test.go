package common

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserError(t *testing.T) {
	err := ValidationError("transaction ID is required")

	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, "transaction ID is required", UserMessage(err))
	assert.Equal(t, "transaction ID is required: validation failed", err.Error())

	wrapped := fmt.Errorf("fetch deposits: %w", err)
	assert.Equal(t, "transaction ID is required", UserMessage(wrapped))
	assert.Equal(t, "plain", UserMessage(errors.New("plain")))
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name    string
		cfg     LogConfig
		wantErr bool
		want    string
	}{
		{name: "json", cfg: LogConfig{Level: "info", Format: "json"}, want: `"msg":"hello"`},
		{name: "console", cfg: LogConfig{Level: "debug", Format: "console"}, want: "msg=hello"},
		{name: "bad level", cfg: LogConfig{Level: "loud"}, wantErr: true},
		{name: "bad format", cfg: LogConfig{Format: "xml"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger, err := NewLogger(tt.cfg, &buf)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			logger.Info("hello")
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestNewLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "paydesk.log")
	var buf bytes.Buffer

	logger, err := NewLogger(LogConfig{File: path, MaxSizeMB: 1}, &buf)
	require.NoError(t, err)
	logger.Info("to file")

	assert.Empty(t, buf.String())
	assert.FileExists(t, path)
}
