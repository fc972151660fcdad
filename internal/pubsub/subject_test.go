package pubsub

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func copyInts(v []int) []int {
	return append([]int(nil), v...)
}

func TestSubjectReplaysLatest(t *testing.T) {
	s := NewSubject([]int{1}, copyInts)
	s.Publish([]int{1, 2})

	var got []int
	s.Subscribe(func(v []int) { got = v })
	assert.Equal(t, []int{1, 2}, got)
}

func TestSubjectBroadcastInOrder(t *testing.T) {
	s := NewSubject(0, nil)
	var calls []string

	s.Subscribe(func(v int) { calls = append(calls, "a") })
	s.Subscribe(func(v int) { calls = append(calls, "b") })
	calls = nil

	s.Publish(7)
	assert.Equal(t, []string{"a", "b"}, calls)
	assert.Equal(t, 7, s.Value())
}

func TestSubjectUnsubscribe(t *testing.T) {
	s := NewSubject(0, nil)
	count := 0
	unsubscribe := s.Subscribe(func(v int) { count++ })
	require.Equal(t, 1, count)
	require.Equal(t, 1, s.Len())

	unsubscribe()
	s.Publish(1)
	assert.Equal(t, 1, count)
	assert.Equal(t, 0, s.Len())
}

func TestSubjectReadersGetCopies(t *testing.T) {
	s := NewSubject([]int{1, 2, 3}, copyInts)

	var first, second []int
	s.Subscribe(func(v []int) { first = v })
	s.Subscribe(func(v []int) { second = v })

	first[0] = 100
	assert.Equal(t, 1, second[0])
	assert.Equal(t, 1, s.Value()[0])

	published := []int{4, 5}
	s.Publish(published)
	published[0] = 99
	assert.Equal(t, []int{4, 5}, s.Value())
}

func TestSubjectNilHandler(t *testing.T) {
	s := NewSubject(0, nil)
	unsubscribe := s.Subscribe(nil)
	unsubscribe()
	assert.Equal(t, 0, s.Len())
}
