package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDurationEnv(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"10", 10 * time.Second},
		{"10s", 10 * time.Second},
		{"5m", 5 * time.Minute},
		{`"30s"`, 30 * time.Second},
		{" '2' ", 2 * time.Second},
	}
	for _, tt := range tests {
		got, err := ParseDurationEnv(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseDurationEnv("")
	assert.Error(t, err)
	_, err = ParseDurationEnv("soon")
	assert.Error(t, err)
}

func TestParseRedisURL(t *testing.T) {
	addr, pass, db, err := ParseRedisURL("rediss://user:pw@host:6380/4")
	require.NoError(t, err)
	assert.Equal(t, "host:6380", addr)
	assert.Equal(t, "pw", pass)
	assert.Equal(t, 4, db)

	_, _, _, err = ParseRedisURL("http://host:6379")
	assert.Error(t, err)
	_, _, _, err = ParseRedisURL("redis:///0")
	assert.Error(t, err)
	_, _, _, err = ParseRedisURL("redis://host:6379/x")
	assert.Error(t, err)
}

func TestParseID(t *testing.T) {
	id, ok := ParseID("42")
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)

	for _, raw := range []string{"", "0", "-3", "abc", "1.5", "99999999999999999999"} {
		_, ok := ParseID(raw)
		assert.False(t, ok, raw)
	}
}
