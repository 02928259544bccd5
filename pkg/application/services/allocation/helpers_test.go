package allocation

import (
	"iter"
	"slices"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/orderdesk/pkg/domain/entities"
)

func sampleCandidates() []entities.ProductCandidate {
	return []entities.ProductCandidate{
		{ID: 1, Name: "Shield", ProductType: "Armor", Price: decimal.NewFromInt(10), Stock: 5},
		{ID: 2, Name: "Hammer", ProductType: "Weapon", Price: decimal.NewFromInt(20), Stock: 3},
		{ID: 3, Name: "Belt", ProductType: "Armor", Price: decimal.RequireFromString("7.5"), Stock: 10},
	}
}

func loadedAllocator(t *testing.T, candidates []entities.ProductCandidate) *Allocator {
	t.Helper()
	a := NewAllocator()
	require.NoError(t, a.Initialize(candidates))
	return a
}

func ids(seq iter.Seq[entities.ProductCandidate]) []entities.ProductID {
	var result []entities.ProductID
	for candidate := range seq {
		result = append(result, candidate.ID)
	}
	return result
}

func remaining(t *testing.T, a *Allocator, position int) []entities.ProductID {
	t.Helper()
	seq, err := a.RemainingChoices(position)
	require.NoError(t, err)
	return ids(seq)
}

// assertExclusive checks that no product is held twice and every line's
// remaining choices exclude other lines' products and include its own.
func assertExclusive(t *testing.T, a *Allocator) {
	t.Helper()
	held := make(map[entities.ProductID]int)
	for position, view := range a.Lines() {
		if !view.Selected {
			continue
		}
		other, dup := held[view.ProductID]
		require.Falsef(t, dup, "product %d held by lines %d and %d", view.ProductID, other, position)
		held[view.ProductID] = position

		owner, ok := a.Owner(view.ProductID)
		require.True(t, ok)
		require.Equal(t, position, owner)
	}
	require.Equal(t, len(held), a.Ownership().Size())

	for position, view := range a.Lines() {
		choices := remaining(t, a, position)
		for productID, owner := range held {
			if owner == position {
				require.Contains(t, choices, productID)
			} else {
				require.NotContains(t, choices, productID)
			}
		}
		if view.Selected {
			require.True(t, slices.Contains(choices, view.ProductID))
		}
	}
}
