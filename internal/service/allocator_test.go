package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/waitron/waitron/internal/models"
)

func tablesWithCapacities(caps ...int) []models.Table {
	tables := make([]models.Table, len(caps))
	for i, c := range caps {
		tables[i] = models.Table{ID: uint(i + 1), Capacity: c}
	}
	return tables
}

func capacities(tables []models.Table) []int {
	caps := make([]int, len(tables))
	for i, t := range tables {
		caps[i] = t.Capacity
	}
	return caps
}

func TestAllocateTables_PrefersSmallestSingleFit(t *testing.T) {
	free := tablesWithCapacities(2, 4, 6)

	selected, ok := allocateTables(free, 3)

	assert.True(t, ok)
	assert.Equal(t, []int{4}, capacities(selected))
}

func TestAllocateTables_ExactSingleFit(t *testing.T) {
	free := tablesWithCapacities(6, 2, 4)

	selected, ok := allocateTables(free, 4)

	assert.True(t, ok)
	assert.Equal(t, []int{4}, capacities(selected))
}

func TestAllocateTables_CombinesSmallestFirst(t *testing.T) {
	// No single table fits 7; accumulate ascending until covered.
	free := tablesWithCapacities(6, 2, 4)

	selected, ok := allocateTables(free, 7)

	assert.True(t, ok)
	assert.Equal(t, []int{2, 4, 6}, capacities(selected))
}

func TestAllocateTables_CombinedExactFit(t *testing.T) {
	free := tablesWithCapacities(2, 4)

	selected, ok := allocateTables(free, 6)

	assert.True(t, ok)
	assert.Equal(t, []int{2, 4}, capacities(selected))
}

func TestAllocateTables_InsufficientCapacity(t *testing.T) {
	free := tablesWithCapacities(2, 4, 6)

	selected, ok := allocateTables(free, 13)

	assert.False(t, ok)
	assert.Nil(t, selected)
}

func TestAllocateTables_EmptyInventory(t *testing.T) {
	selected, ok := allocateTables(nil, 2)

	assert.False(t, ok)
	assert.Nil(t, selected)
}

func TestAllocateTables_StableTieBreak(t *testing.T) {
	// Equal capacities keep inventory order: table 1 wins the single-fit.
	free := []models.Table{
		{ID: 1, Capacity: 4},
		{ID: 2, Capacity: 4},
	}

	selected, ok := allocateTables(free, 4)

	assert.True(t, ok)
	assert.Len(t, selected, 1)
	assert.Equal(t, uint(1), selected[0].ID)
}

func TestExcludeTables(t *testing.T) {
	inventory := []models.Table{
		{ID: 1, Capacity: 2},
		{ID: 2, Capacity: 4},
		{ID: 3, Capacity: 6},
	}

	free := excludeTables(inventory, []uint{2})

	assert.Equal(t, []int{2, 6}, capacities(free))
}

func TestExcludeTables_NothingCommitted(t *testing.T) {
	inventory := tablesWithCapacities(2, 4)

	free := excludeTables(inventory, nil)

	assert.Len(t, free, 2)
}
