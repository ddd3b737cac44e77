package service

import (
	"sort"

	"github.com/waitron/waitron/internal/models"
)

// allocateTables selects a covering set of tables for a party.
//
// Smallest-first heuristic: if any single table seats the whole party, the
// smallest such table wins, keeping larger tables free for larger parties.
// Otherwise tables are accumulated in ascending capacity order until the
// running total covers the party. Not a bin-packing optimum, but deterministic:
// the sort is stable, so equal capacities keep inventory order.
//
// Returns false when even the full free inventory cannot cover the party.
func allocateTables(free []models.Table, partySize int) ([]models.Table, bool) {
	sorted := make([]models.Table, len(free))
	copy(sorted, free)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Capacity < sorted[j].Capacity
	})

	// Best single fit.
	for _, t := range sorted {
		if t.Capacity >= partySize {
			return []models.Table{t}, true
		}
	}

	var selected []models.Table
	total := 0
	for _, t := range sorted {
		if total >= partySize {
			break
		}
		selected = append(selected, t)
		total += t.Capacity
	}
	if total < partySize {
		return nil, false
	}
	return selected, true
}

// excludeTables filters out tables whose id is in committed.
func excludeTables(inventory []models.Table, committed []uint) []models.Table {
	busy := make(map[uint]struct{}, len(committed))
	for _, id := range committed {
		busy[id] = struct{}{}
	}
	free := make([]models.Table, 0, len(inventory))
	for _, t := range inventory {
		if _, ok := busy[t.ID]; !ok {
			free = append(free, t)
		}
	}
	return free
}
