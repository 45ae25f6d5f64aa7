package lifo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPushPopOrder(t *testing.T) {
	var s Stack[int]
	s.Push(1)
	s.Push(2)
	s.Push(3)
	assert.Equal(t, 3, s.Len())

	for _, want := range []int{3, 2, 1} {
		got, ok := s.Pop()
		assert.True(t, ok)
		assert.Equal(t, want, got)
	}
	assert.True(t, s.IsEmpty())
}

func TestPopEmpty(t *testing.T) {
	var s Stack[string]
	got, ok := s.Pop()
	assert.False(t, ok)
	assert.Equal(t, "", got)
}

func TestPeek(t *testing.T) {
	var s Stack[int]
	_, ok := s.Peek()
	assert.False(t, ok)

	s.Push(7)
	got, ok := s.Peek()
	assert.True(t, ok)
	assert.Equal(t, 7, got)
	assert.Equal(t, 1, s.Len())
}
