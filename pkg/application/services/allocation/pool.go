package allocation

import (
	"fmt"
	"iter"

	"github.com/vsinha/orderdesk/pkg/domain/entities"
)

// Pool is the read model of products eligible for the order being composed.
// Remaining choices are derived from it and the ownership map on every read.
type Pool struct {
	candidates []entities.ProductCandidate
	index      map[entities.ProductID]int
	owners     Ownership
	loaded     bool
}

// NewPool creates an empty, unloaded pool backed by the given ownership map
func NewPool(owners Ownership) *Pool {
	return &Pool{
		index:  make(map[entities.ProductID]int),
		owners: owners,
	}
}

// Load replaces the pool contents. It is rejected once any line holds a selection.
func (p *Pool) Load(candidates []entities.ProductCandidate) error {
	if p.owners.Size() > 0 {
		return fmt.Errorf("%w: cannot reload pool while %d product(s) are selected", ErrInvalidState, p.owners.Size())
	}

	loaded := make([]entities.ProductCandidate, 0, len(candidates))
	index := make(map[entities.ProductID]int, len(candidates))
	for i, candidate := range candidates {
		if err := candidate.Validate(); err != nil {
			return fmt.Errorf("candidate %d: %w", i, err)
		}
		if _, exists := index[candidate.ID]; exists {
			return fmt.Errorf("candidate %d: duplicate product id %d", i, candidate.ID)
		}
		index[candidate.ID] = len(loaded)
		loaded = append(loaded, candidate)
	}

	p.candidates = loaded
	p.index = index
	p.loaded = true
	return nil
}

// Loaded reports whether Load has completed
func (p *Pool) Loaded() bool {
	return p.loaded
}

// Get returns the candidate with the given id
func (p *Pool) Get(id entities.ProductID) (entities.ProductCandidate, error) {
	if !p.loaded {
		return entities.ProductCandidate{}, ErrNotLoaded
	}
	i, exists := p.index[id]
	if !exists {
		return entities.ProductCandidate{}, fmt.Errorf("%w: product %d", ErrNotFound, id)
	}
	return p.candidates[i], nil
}

// Len returns the number of candidates
func (p *Pool) Len() int {
	return len(p.candidates)
}

// All yields every candidate in load order
func (p *Pool) All() iter.Seq[entities.ProductCandidate] {
	return func(yield func(entities.ProductCandidate) bool) {
		for _, candidate := range p.candidates {
			if !yield(candidate) {
				return
			}
		}
	}
}

// RemainingFor yields the candidates the line may pick: everything not held by
// another line, in load order. The sequence is evaluated lazily on each range.
func (p *Pool) RemainingFor(line LineID) iter.Seq[entities.ProductCandidate] {
	return func(yield func(entities.ProductCandidate) bool) {
		for _, candidate := range p.candidates {
			if owner, held := p.owners.Owner(candidate.ID); held && owner != line {
				continue
			}
			if !yield(candidate) {
				return
			}
		}
	}
}
