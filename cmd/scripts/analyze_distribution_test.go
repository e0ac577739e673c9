package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalysisInstantParsesInNowsZone(t *testing.T) {
	zone := time.FixedZone("UTC+5", 5*3600)
	now := time.Date(2026, 3, 20, 10, 0, 0, 0, zone)

	at, err := analysisInstant("2026-03-14", now)
	require.NoError(t, err)

	// A completed day is analyzed at its final second, in now's zone, so
	// the day window matches the zone win timestamps were recorded in
	assert.Equal(t, time.Date(2026, 3, 14, 23, 59, 59, 0, zone), at)
	assert.Equal(t, zone.String(), at.Location().String())
}

func TestAnalysisInstantCapsCurrentDay(t *testing.T) {
	zone := time.FixedZone("UTC+5", 5*3600)
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, zone)

	at, err := analysisInstant("2026-03-14", now)
	require.NoError(t, err)
	assert.Equal(t, now, at)
}

func TestAnalysisInstantRejectsMalformedDate(t *testing.T) {
	_, err := analysisInstant("14-03-2026", time.Now())
	assert.Error(t, err)
}
