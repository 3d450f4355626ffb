package shmqueue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusStringCoversEveryValue(t *testing.T) {
	for s := Completed; s <= DelegateFailed; s++ {
		assert.NotEqual(t, "Unknown", s.String(), "status %d has no String() case", int(s))
	}
	assert.Equal(t, "Unknown", Status(999).String())
}

func TestIsRollback(t *testing.T) {
	assert.True(t, isRollback(Cancelled))
	assert.True(t, isRollback(DelegateFailed))
	assert.False(t, isRollback(Completed))
	assert.False(t, isRollback(QueueIsEmpty))
}
