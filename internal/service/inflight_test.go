package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInflightGuard(t *testing.T) {
	guard := newInflightGuard()

	assert.True(t, guard.begin("turno:1"))
	// Same target while outstanding is rejected.
	assert.False(t, guard.begin("turno:1"))
	// Unrelated targets are not serialized.
	assert.True(t, guard.begin("turno:2"))

	guard.end("turno:1")
	assert.True(t, guard.begin("turno:1"))
}
