package scenegraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackerAccumulatesBits(t *testing.T) {
	ct := NewChangeTracker()
	ct.MarkDirty("/a", DirtyPoints)
	ct.MarkDirty("/a", DirtyTransform)

	id, bits, ok := ct.Next()
	require.True(t, ok)
	assert.Equal(t, "/a", id)
	assert.Equal(t, DirtyPoints|DirtyTransform, bits)

	_, _, ok = ct.Next()
	assert.False(t, ok)
}

func TestTrackerPreservesFirstMarkedOrder(t *testing.T) {
	ct := NewChangeTracker()
	ct.MarkDirty("/a", DirtyPoints)
	ct.MarkDirty("/b", DirtyTopology)
	ct.MarkDirty("/a", DirtyVisibility)

	id, _, ok := ct.Next()
	require.True(t, ok)
	assert.Equal(t, "/a", id)

	id, _, ok = ct.Next()
	require.True(t, ok)
	assert.Equal(t, "/b", id)
}

func TestTrackerIgnoresCleanMarks(t *testing.T) {
	ct := NewChangeTracker()
	ct.MarkDirty("/a", Clean)

	assert.Zero(t, ct.PendingCount())
	_, _, ok := ct.Next()
	assert.False(t, ok)
}
