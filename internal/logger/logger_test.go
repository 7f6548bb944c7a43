package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeConsoleOnlySucceeds(t *testing.T) {
	err := Initialize("debug", "")
	require.NoError(t, err)
	assert.NotNil(t, Log)
	require.NoError(t, Close())
}

func TestWithRequestIDKey(t *testing.T) {
	f := WithRequestID("abc-123")
	assert.Equal(t, "request_id", f.Key)
	assert.Equal(t, "abc-123", f.String)
}

func TestWithComponentKey(t *testing.T) {
	f := WithComponent("functional")
	assert.Equal(t, "component", f.Key)
	assert.Equal(t, "functional", f.String)
}

func TestWithChordCountKey(t *testing.T) {
	f := WithChordCount(4)
	assert.Equal(t, "chord_count", f.Key)
	assert.Equal(t, int64(4), f.Integer)
}

func TestWithConfidenceKey(t *testing.T) {
	f := WithConfidence(0.85)
	assert.Equal(t, "confidence", f.Key)
}
