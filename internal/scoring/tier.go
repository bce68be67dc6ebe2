package scoring

import (
	"github.com/alexanderramin/evaluador/internal/domain"
)

// Tier thresholds on the total score. Totals at or below NacienteMax are
// Naciente; at or above InspiradoraMin are Inspiradora.
const (
	NacienteMax    = 45
	InspiradoraMin = 80
)

// TotalScore sums the scores of the set. NotApplicable contributes zero.
func TotalScore(cs domain.CriteriaSet) int {
	total := 0
	for _, ce := range cs {
		if ce.Score == domain.NotApplicable {
			continue
		}
		total += ce.Score
	}
	return total
}

// ResolveTier maps a total score to its tier.
func ResolveTier(total int) domain.Tier {
	switch {
	case total <= NacienteMax:
		return domain.TierNaciente
	case total >= InspiradoraMin:
		return domain.TierInspiradora
	default:
		return domain.TierCreciente
	}
}

// Line is one criterion's contribution in a summary.
type Line struct {
	CriteriaID    int
	Name          string
	Score         int
	MaxScore      int
	NotApplicable bool
	Justification string
	Answered      bool
}

// Summary is the final-concept view of an evaluation's answers.
type Summary struct {
	Lines    []Line
	Total    int
	MaxTotal int
	Tier     domain.Tier
	Missing  []int
}

// Summarize builds a per-criterion breakdown in catalog order. Criteria
// without an entry show their zero default.
func Summarize(cs domain.CriteriaSet) Summary {
	s := Summary{MaxTotal: domain.MaxTotalScore()}
	for _, c := range domain.Catalog() {
		ce, ok := cs[c.ID]
		if !ok {
			ce = domain.NewCriterionEvaluation(c.ID)
		}
		s.Lines = append(s.Lines, Line{
			CriteriaID:    c.ID,
			Name:          c.Name,
			Score:         ce.Score,
			MaxScore:      c.MaxScore(),
			NotApplicable: ce.Score == domain.NotApplicable,
			Justification: ce.Justification,
			Answered:      ce.Answered(),
		})
	}
	s.Total = TotalScore(cs)
	s.Tier = ResolveTier(s.Total)
	s.Missing = cs.Missing()
	return s
}
