package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNilCacheIsPassThrough(t *testing.T) {
	var c *Cache
	ctx := context.Background()

	var dest []string
	assert.False(t, c.GetJSON(ctx, ListingPrefix+"all", &dest))
	assert.Nil(t, dest)

	// Must not panic.
	c.SetJSON(ctx, ListingPrefix+"all", []string{"a"})
	c.DeletePrefix(ctx, ListingPrefix)
}

func TestNewWithoutAddr(t *testing.T) {
	c := New("", 30*time.Second)
	assert.Nil(t, c)
}

func TestNewUnreachable(t *testing.T) {
	// Nothing listens here; New degrades to a nil cache instead of failing.
	c := New("127.0.0.1:1", 30*time.Second)
	assert.Nil(t, c)
}
