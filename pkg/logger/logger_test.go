package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew_Levels(t *testing.T) {
	t.Parallel()

	log, err := New("debug")
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.DebugLevel))

	log, err = New("")
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, log.Core().Enabled(zapcore.InfoLevel))

	_, err = New("loud")
	require.Error(t, err)
}

func TestNamed_NilBase(t *testing.T) {
	t.Parallel()

	log := Named(nil, "svc")
	require.NotNil(t, log)
	log.Info("discarded")
}

func TestMust_Panics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		_, err := New("loud")
		Must(nil, err)
	})
}
