package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/federico588/biblioteca-tui/models"
)

// newTestCenter returns a center with a controllable clock.
func newTestCenter(start time.Time) (*Center, *time.Time) {
	now := start
	c := NewCenter()
	c.now = func() time.Time { return now }
	return c, &now
}

func TestCenter_SeverityHelpers(t *testing.T) {
	c, _ := newTestCenter(time.Now())

	c.Success("saved")
	c.Error("failed")
	c.Info("loading")
	c.Warning("no access")

	active := c.Active()
	require.Len(t, active, 4)
	assert.Equal(t, models.SeveritySuccess, active[0].Severity)
	assert.Equal(t, models.SeverityError, active[1].Severity)
	assert.Equal(t, models.SeverityInfo, active[2].Severity)
	assert.Equal(t, models.SeverityWarning, active[3].Severity)
	assert.Equal(t, "saved", active[0].Message)
}

func TestCenter_ExpiryPerSeverity(t *testing.T) {
	start := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	c, now := newTestCenter(start)

	c.Success("success ttl 3s")
	c.Warning("warning ttl 4s")
	c.Error("error ttl 5s")

	*now = start.Add(3500 * time.Millisecond)
	active := c.Active()
	require.Len(t, active, 2, "the success toast expires first")
	assert.Equal(t, "warning ttl 4s", active[0].Message)

	*now = start.Add(4500 * time.Millisecond)
	active = c.Active()
	require.Len(t, active, 1, "errors linger longest")
	assert.Equal(t, "error ttl 5s", active[0].Message)

	*now = start.Add(6 * time.Second)
	assert.Empty(t, c.Active())
}

func TestCenter_ExpiredEntriesDropped(t *testing.T) {
	start := time.Now()
	c, now := newTestCenter(start)

	c.Info("first")
	*now = start.Add(time.Minute)
	assert.Empty(t, c.Active())

	// The expired entry is gone even if the clock were to rewind.
	*now = start
	assert.Empty(t, c.Active())
}

func TestCenter_Remove(t *testing.T) {
	c, _ := newTestCenter(time.Now())

	id := c.Error("dismiss me")
	c.Success("keep me")

	c.Remove(id)

	active := c.Active()
	require.Len(t, active, 1)
	assert.Equal(t, "keep me", active[0].Message)

	// Unknown ids are ignored.
	c.Remove("nope")
	assert.Len(t, c.Active(), 1)
}

func TestCenter_PushCustomTTL(t *testing.T) {
	start := time.Now()
	c, now := newTestCenter(start)

	id := c.Push("sticky", models.SeverityInfo, time.Hour)
	assert.NotEmpty(t, id)

	*now = start.Add(30 * time.Minute)
	require.Len(t, c.Active(), 1)

	*now = start.Add(2 * time.Hour)
	assert.Empty(t, c.Active())
}
