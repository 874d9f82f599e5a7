package cache

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmreyes/jpegexif"
)

func TestCachePutAndGet(t *testing.T) {
	c := New(0)
	meta := &jpegexif.RawMetadata{}
	c.Put("a.jpg", meta)

	got, ok := c.Get("a.jpg")
	require.True(t, ok)
	assert.Same(t, meta, got)

	_, ok = c.Get("missing.jpg")
	assert.False(t, ok)
}

func TestCacheReplaceDoesNotReorderFIFO(t *testing.T) {
	c := New(2)
	a := &jpegexif.RawMetadata{}
	b := &jpegexif.RawMetadata{}
	c.Put("a.jpg", a)
	c.Put("b.jpg", b)

	replacement := &jpegexif.RawMetadata{}
	c.Put("a.jpg", replacement)

	// a.jpg is still the oldest insertion despite being updated, so adding
	// a third entry must evict it, not b.jpg.
	c.Put("c.jpg", &jpegexif.RawMetadata{})

	_, ok := c.Get("a.jpg")
	assert.False(t, ok, "a.jpg should have been evicted as the oldest entry")
	_, ok = c.Get("b.jpg")
	assert.True(t, ok)
	_, ok = c.Get("c.jpg")
	assert.True(t, ok)
}

func TestCacheEvictsOldestOverCapacity(t *testing.T) {
	c := New(2)
	c.Put("a.jpg", &jpegexif.RawMetadata{})
	c.Put("b.jpg", &jpegexif.RawMetadata{})
	c.Put("c.jpg", &jpegexif.RawMetadata{})

	assert.Equal(t, 2, c.Len())
	_, ok := c.Get("a.jpg")
	assert.False(t, ok)
	_, ok = c.Get("b.jpg")
	assert.True(t, ok)
	_, ok = c.Get("c.jpg")
	assert.True(t, ok)
}

func TestCacheUnboundedCapacityNeverEvicts(t *testing.T) {
	c := New(0)
	for i := 0; i < 50; i++ {
		c.Put(string(rune('a'+i%26))+".jpg", &jpegexif.RawMetadata{})
	}
	assert.LessOrEqual(t, 26, c.Len())
}

func TestCacheEvict(t *testing.T) {
	c := New(0)
	c.Put("a.jpg", &jpegexif.RawMetadata{})
	c.Evict("a.jpg")

	_, ok := c.Get("a.jpg")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())

	// Evicting a path that was never present is a no-op, not an error.
	c.Evict("never-there.jpg")
}

func TestCacheGetOrLoadCachesOnMiss(t *testing.T) {
	c := New(0)
	calls := 0
	load := func(path string) (*jpegexif.RawMetadata, error) {
		calls++
		return &jpegexif.RawMetadata{}, nil
	}

	first, err := c.GetOrLoad("a.jpg", load)
	require.NoError(t, err)
	second, err := c.GetOrLoad("a.jpg", load)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, calls, "load must run only once; the second call should hit the cache")
}

func TestCacheGetOrLoadPropagatesLoadError(t *testing.T) {
	c := New(0)
	wantErr := errors.New("boom")
	_, err := c.GetOrLoad("a.jpg", func(string) (*jpegexif.RawMetadata, error) {
		return nil, wantErr
	})
	require.ErrorIs(t, err, wantErr)
	assert.Equal(t, 0, c.Len(), "a failed load must not populate the cache")
}
