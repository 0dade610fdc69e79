package containers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRingQueueFIFO(t *testing.T) {
	rq := NewRingQueue[string](3)

	require.NoError(t, rq.Enqueue("a"))
	require.NoError(t, rq.Enqueue("b"))

	v, err := rq.Dequeue()
	require.NoError(t, err)
	assert.Equal(t, "a", v)

	v, err = rq.Peek()
	require.NoError(t, err)
	assert.Equal(t, "b", v)
	assert.Equal(t, 1, rq.Len())
}

func TestRingQueueWrapsAround(t *testing.T) {
	rq := NewRingQueue[int](2)

	require.NoError(t, rq.Enqueue(1))
	require.NoError(t, rq.Enqueue(2))
	assert.Error(t, rq.Enqueue(3))

	v, err := rq.Dequeue()
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	require.NoError(t, rq.Enqueue(3))
	v, _ = rq.Dequeue()
	assert.Equal(t, 2, v)
	v, _ = rq.Dequeue()
	assert.Equal(t, 3, v)

	_, err = rq.Dequeue()
	assert.Error(t, err)
}
