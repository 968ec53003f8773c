package streamclient

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hhmm string) time.Time {
	t, _ := time.Parse("15:04", hhmm)
	return t
}

func TestDefaultPreferencesAllowKnownCategories(t *testing.T) {
	m := NewPreferenceManager(t.TempDir(), "alice")

	assert.True(t, m.Allow("tag", at("12:00")))
	assert.True(t, m.Allow("profile_added", at("12:00")))
	// Unknown categories default to allowed.
	assert.True(t, m.Allow("something_new", at("12:00")))
}

func TestDisabledCategoryIsSilenced(t *testing.T) {
	m := NewPreferenceManager(t.TempDir(), "alice")
	p := m.Get()
	p.Categories["status_change"] = CategoryPref{Enabled: false, Priority: "low"}
	require.NoError(t, m.Update(p))

	assert.False(t, m.Allow("status_change", at("12:00")))
	assert.True(t, m.Allow("tag", at("12:00")))
}

func TestQuietHoursSameDayWindow(t *testing.T) {
	m := NewPreferenceManager(t.TempDir(), "alice")
	p := m.Get()
	p.QuietStart, p.QuietEnd = "09:00", "17:00"
	require.NoError(t, m.Update(p))

	assert.False(t, m.Allow("tag", at("12:00")))
	assert.True(t, m.Allow("tag", at("08:59")))
	assert.True(t, m.Allow("tag", at("17:00"))) // end is exclusive
}

func TestQuietHoursCrossMidnight(t *testing.T) {
	m := NewPreferenceManager(t.TempDir(), "alice")
	p := m.Get()
	p.QuietStart, p.QuietEnd = "22:00", "07:00"
	require.NoError(t, m.Update(p))

	assert.False(t, m.Allow("tag", at("23:30")))
	assert.False(t, m.Allow("tag", at("03:00")))
	assert.True(t, m.Allow("tag", at("12:00")))
	assert.True(t, m.Allow("tag", at("07:00")))
}

func TestMalformedQuietWindowDisablesQuietHours(t *testing.T) {
	m := NewPreferenceManager(t.TempDir(), "alice")
	p := m.Get()
	p.QuietStart, p.QuietEnd = "25:99", "07:00"
	require.NoError(t, m.Update(p))

	assert.True(t, m.Allow("tag", at("23:30")))
}

func TestPreferencesPersistAcrossRestart(t *testing.T) {
	dir := t.TempDir()
	m := NewPreferenceManager(dir, "alice")
	p := m.Get()
	p.BatchEnabled = true
	p.QuietStart, p.QuietEnd = "22:00", "07:00"
	require.NoError(t, m.Update(p))

	reloaded := NewPreferenceManager(dir, "alice")
	assert.True(t, reloaded.Batching())
	assert.Equal(t, "22:00", reloaded.Get().QuietStart)

	// A different user is unaffected.
	other := NewPreferenceManager(dir, "bob")
	assert.False(t, other.Batching())
}

func TestBatchEnqueueAndDrain(t *testing.T) {
	m := NewPreferenceManager(t.TempDir(), "alice")
	m.Enqueue(StoredNotification{ID: "1"})
	m.Enqueue(StoredNotification{ID: "2"})

	got := m.DrainBatch()
	require.Len(t, got, 2)
	assert.Empty(t, m.DrainBatch())
}
