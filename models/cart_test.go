package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCartItems(t *testing.T) {
	items := map[string]int{"a": 2, "b": 0, "c": -1}

	normalized := NormalizeCartItems(items)

	assert.Equal(t, map[string]int{"a": 2}, normalized)
	// Input is not mutated.
	assert.Equal(t, map[string]int{"a": 2, "b": 0, "c": -1}, items)
}

func TestNormalizeCartItemsZeroEqualsRemoval(t *testing.T) {
	withZero := NormalizeCartItems(map[string]int{"a": 1, "b": 0})
	withoutEntry := NormalizeCartItems(map[string]int{"a": 1})
	assert.Equal(t, withoutEntry, withZero)
}

func TestMergeCartItems(t *testing.T) {
	server := map[string]int{"a": 1, "b": 2}
	local := map[string]int{"b": 5, "c": 1}

	merged := MergeCartItems(server, local)

	// Server copy is the base, local entries override on conflict.
	assert.Equal(t, map[string]int{"a": 1, "b": 5, "c": 1}, merged)
}

func TestMergeCartItemsLocalZeroRemoves(t *testing.T) {
	merged := MergeCartItems(map[string]int{"a": 1}, map[string]int{"a": 0})
	assert.Equal(t, map[string]int{}, merged)
}

func TestMergeCartItemsEmptyLocalKeepsServer(t *testing.T) {
	merged := MergeCartItems(map[string]int{"a": 3}, nil)
	assert.Equal(t, map[string]int{"a": 3}, merged)
}
