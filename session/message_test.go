package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatUnlock(t *testing.T) {
	msg := FormatUnlock(Tint{R: 0.4, G: 0.2, B: 1})
	assert.Equal(t, "UNLOCK 0.400 0.200 1.000", string(msg))
}

func TestParseUnlockRoundTrip(t *testing.T) {
	tint := Tint{R: 0.123, G: 0.984, B: 0.5}
	got, ok := ParseUnlock(FormatUnlock(tint))
	require.True(t, ok)
	assert.InDelta(t, tint.R, got.R, 1e-9)
	assert.InDelta(t, tint.G, got.G, 1e-9)
	assert.InDelta(t, tint.B, got.B, 1e-9)
}

func TestParseUnlockMarkerAnywhereInBuffer(t *testing.T) {
	got, ok := ParseUnlock([]byte("noise\x00UNLOCK 0.400 0.200 1.000"))
	require.True(t, ok)
	assert.InDelta(t, 0.4, got.R, 1e-9)
	assert.InDelta(t, 0.2, got.G, 1e-9)
	assert.InDelta(t, 1.0, got.B, 1e-9)
}

func TestParseUnlockMalformedTintFallsBack(t *testing.T) {
	for _, payload := range []string{
		"UNLOCK",
		"UNLOCK banana",
		"UNLOCK 0.4 0.2",
		"UNLOCK 0.4 zero 1.0",
	} {
		got, ok := ParseUnlock([]byte(payload))
		assert.True(t, ok, payload)
		assert.Equal(t, DefaultTint, got, payload)
	}
}

func TestParseUnlockNoMarker(t *testing.T) {
	_, ok := ParseUnlock([]byte("hello"))
	assert.False(t, ok)

	// The known fragility: a split delivery never matches in either
	// fragment, so the unlock is silently missed.
	_, ok = ParseUnlock([]byte("UNL"))
	assert.False(t, ok)
	_, ok = ParseUnlock([]byte("OCK 0.400 0.200 1.000"))
	assert.False(t, ok)
}
