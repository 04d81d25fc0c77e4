package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"cadastro/internal/config"
	"cadastro/internal/logger"
)

func TestNewWithOutput_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := logger.NewWithOutput(config.LoggingConfig{Level: "debug", Format: "json"}, &buf)

	require.Equal(t, logrus.DebugLevel, l.GetLevel())

	l.WithField("client_id", "abc").Info("client created")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "client created", entry["msg"])
	require.Equal(t, "abc", entry["client_id"])
}

func TestNewWithOutput_UnknownLevel(t *testing.T) {
	var buf bytes.Buffer
	l := logger.NewWithOutput(config.LoggingConfig{Level: "chatty"}, &buf)
	require.Equal(t, logrus.InfoLevel, l.GetLevel())

	l.Debug("hidden")
	require.Zero(t, buf.Len())
}
