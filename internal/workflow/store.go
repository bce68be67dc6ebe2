package workflow

import (
	"fmt"

	"github.com/alexanderramin/evaluador/internal/domain"
)

// Store is the keyed score store over an evaluation's criteria answers.
// Each write replaces the single entry for that criterion.
type Store struct {
	set domain.CriteriaSet
}

func NewStore(set domain.CriteriaSet) *Store {
	return &Store{set: set}
}

// Get returns the entry for id, or its default when none was written.
func (s *Store) Get(id int) domain.CriterionEvaluation {
	if ce, ok := s.set[id]; ok {
		return ce
	}
	return domain.NewCriterionEvaluation(id)
}

// SetScore stores score for the criterion. The score must be one of the
// values the criterion enumerates.
func (s *Store) SetScore(id, score int) error {
	c, ok := domain.CriterionByID(id)
	if !ok {
		return fmt.Errorf("criterion %d: %w", id, ErrUnknownCriterion)
	}
	if !c.Allows(score) {
		return &InvalidScoreError{CriteriaID: id, Score: score, Allowed: c.AllowedScores()}
	}
	ce := s.Get(id)
	ce.Score = score
	s.set[id] = ce
	return nil
}

// SetJustification stores text verbatim. Blank text is accepted here and
// rejected later by step validation.
func (s *Store) SetJustification(id int, text string) error {
	if _, ok := domain.CriterionByID(id); !ok {
		return fmt.Errorf("criterion %d: %w", id, ErrUnknownCriterion)
	}
	ce := s.Get(id)
	ce.Justification = text
	s.set[id] = ce
	return nil
}

func (s *Store) Len() int { return len(s.set) }
