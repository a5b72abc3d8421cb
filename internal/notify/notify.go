// Package notify keeps the queue of transient toast notifications shown in
// the footer of the TUI. Each notification carries a severity and expires on
// its own timer; expiry is driven by the caller asking for the active set.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/federico588/biblioteca-tui/models"
)

// Display time per severity. Errors linger longest so they can be read.
const (
	ttlSuccess = 3 * time.Second
	ttlError   = 5 * time.Second
	ttlInfo    = 3 * time.Second
	ttlWarning = 4 * time.Second
)

type entry struct {
	notification models.Notification
	expiresAt    time.Time
}

// Center is the in-memory notification queue. Safe for concurrent use; the
// adapter's error hook pushes from command goroutines while the TUI reads
// from the render loop.
type Center struct {
	mu      sync.Mutex
	entries []entry
	now     func() time.Time
}

func NewCenter() *Center {
	return &Center{now: time.Now}
}

// Push adds a notification with an explicit severity and TTL and returns its
// id. The id can be used to dismiss it early with [Center.Remove].
func (c *Center) Push(message string, severity models.Severity, ttl time.Duration) string {
	n := models.Notification{
		ID:       uuid.NewString(),
		Message:  message,
		Severity: severity,
		TTL:      ttl,
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = append(c.entries, entry{
		notification: n,
		expiresAt:    c.now().Add(ttl),
	})
	return n.ID
}

func (c *Center) Success(message string) string {
	return c.Push(message, models.SeveritySuccess, ttlSuccess)
}

func (c *Center) Error(message string) string {
	return c.Push(message, models.SeverityError, ttlError)
}

func (c *Center) Info(message string) string {
	return c.Push(message, models.SeverityInfo, ttlInfo)
}

func (c *Center) Warning(message string) string {
	return c.Push(message, models.SeverityWarning, ttlWarning)
}

// Remove dismisses the notification with the given id. Unknown ids are
// ignored.
func (c *Center) Remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, e := range c.entries {
		if e.notification.ID == id {
			c.entries = append(c.entries[:i], c.entries[i+1:]...)
			return
		}
	}
}

// Active returns the notifications that have not yet expired, oldest first,
// dropping expired ones as a side effect.
func (c *Center) Active() []models.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	kept := c.entries[:0]
	var active []models.Notification
	for _, e := range c.entries {
		if e.expiresAt.After(now) {
			kept = append(kept, e)
			active = append(active, e.notification)
		}
	}
	c.entries = kept
	return active
}
