package records

import (
	"go.uber.org/zap"

	"examdesk/internal/docstore"
	"examdesk/internal/schema"
)

// Candidates manages the candidates collection, keyed by IDCard.
type Candidates struct {
	store *docstore.Store
	log   *zap.Logger
}

// NewCandidates creates a candidate manager.
func NewCandidates(store *docstore.Store, log *zap.Logger) *Candidates {
	if log == nil {
		log = zap.NewNop()
	}

	return &Candidates{store: store, log: log}
}

// All returns every candidate. Read failures degrade to an empty slice.
func (c *Candidates) All() []schema.Candidate {
	candidates, err := docstore.Read[schema.Candidate](c.store, schema.KindCandidates)
	if err != nil {
		c.log.Warn("reading candidates, proceeding with empty collection", zap.Error(err))
	}

	return candidates
}

// Add appends a candidate. Returns false without writing when the IDCard is
// already present.
func (c *Candidates) Add(candidate schema.Candidate) (bool, error) {
	candidates := c.All()

	for _, existing := range candidates {
		if existing.IDCard == candidate.IDCard {
			return false, nil
		}
	}

	candidates = append(candidates, candidate)

	return true, docstore.Write(c.store, schema.KindCandidates, candidates)
}

// AddBatch appends every candidate whose IDCard is not already present, in
// one rewrite. Returns the number added.
func (c *Candidates) AddBatch(batch []schema.Candidate) (int, error) {
	candidates := c.All()

	existing := make(map[string]bool, len(candidates))
	for _, candidate := range candidates {
		existing[candidate.IDCard] = true
	}

	added := 0

	for _, candidate := range batch {
		if existing[candidate.IDCard] {
			continue
		}

		existing[candidate.IDCard] = true
		candidates = append(candidates, candidate)
		added++
	}

	return added, docstore.Write(c.store, schema.KindCandidates, candidates)
}

// Delete removes the candidate with the given IDCard. Returns false when
// the IDCard is unknown.
func (c *Candidates) Delete(idCard string) (bool, error) {
	candidates := c.All()

	remaining := make([]schema.Candidate, 0, len(candidates))

	for _, candidate := range candidates {
		if candidate.IDCard != idCard {
			remaining = append(remaining, candidate)
		}
	}

	if len(remaining) == len(candidates) {
		return false, nil
	}

	return true, docstore.Write(c.store, schema.KindCandidates, remaining)
}

// Clear removes every candidate.
func (c *Candidates) Clear() error {
	return docstore.Write(c.store, schema.KindCandidates, []schema.Candidate{})
}
