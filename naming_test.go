package shmqueue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScopeString(t *testing.T) {
	assert.Equal(t, "local", Local.String())
	assert.Equal(t, "global", Global.String())
}

func TestPrimitivePathIncludesScopeNameAndSuffix(t *testing.T) {
	path := primitivePath(Local, "orders", suffixExclusiveAccess)
	assert.Contains(t, path, "local")
	assert.Contains(t, path, "orders")
	assert.Contains(t, path, suffixExclusiveAccess)
}

func TestAllPrimitivePathsAreDistinct(t *testing.T) {
	paths := allPrimitivePaths(Local, "orders")
	seen := map[string]bool{}
	for _, p := range paths {
		assert.False(t, seen[p], "duplicate path %s", p)
		seen[p] = true
	}
	assert.Len(t, paths, 7)
}
