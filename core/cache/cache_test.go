package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCache_PutGet(t *testing.T) {
	c := New()

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Put("k", "v", 5*time.Minute)
	v, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestCache_Expiration(t *testing.T) {
	c := New()
	c.Put("k", 42, 10*time.Millisecond)

	v, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, 42, v)

	time.Sleep(20 * time.Millisecond)

	_, ok = c.Get("k")
	assert.False(t, ok)
}

func TestCache_ZeroTTLNeverExpires(t *testing.T) {
	c := New()
	c.Put("k", "v", 0)

	time.Sleep(10 * time.Millisecond)

	_, ok := c.Get("k")
	assert.True(t, ok)
}

func TestCache_Invalidate(t *testing.T) {
	c := New()
	c.Put("k", "v", time.Minute)
	c.Invalidate("k")

	_, ok := c.Get("k")
	assert.False(t, ok)
}
