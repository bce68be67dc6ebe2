package scoring

import (
	"testing"

	"github.com/alexanderramin/evaluador/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setWithScores(scores map[int]int) domain.CriteriaSet {
	cs := domain.CriteriaSet{}
	for id, s := range scores {
		ce := domain.NewCriterionEvaluation(id)
		ce.Score = s
		cs[id] = ce
	}
	return cs
}

func TestResolveTier_Boundaries(t *testing.T) {
	cases := []struct {
		total int
		want  domain.Tier
	}{
		{0, domain.TierNaciente},
		{45, domain.TierNaciente},
		{46, domain.TierCreciente},
		{79, domain.TierCreciente},
		{80, domain.TierInspiradora},
		{100, domain.TierInspiradora},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ResolveTier(tc.total), "total %d", tc.total)
	}
}

func TestTotalScore_NotApplicableCountsZero(t *testing.T) {
	cs := setWithScores(map[int]int{1: -1, 4: -1, 7: -1, 8: -1, 9: -1})
	assert.Equal(t, 0, TotalScore(cs))
	assert.Equal(t, domain.TierNaciente, ResolveTier(TotalScore(cs)))
}

func TestTotalScore_Mixed(t *testing.T) {
	cs := setWithScores(map[int]int{1: 10, 2: 10, 3: 15, 4: -1, 5: 10})
	assert.Equal(t, 45, TotalScore(cs))
}

func TestTotalScore_MaxIsInspiradora(t *testing.T) {
	scores := map[int]int{}
	for _, c := range domain.Catalog() {
		scores[c.ID] = c.MaxScore()
	}
	total := TotalScore(setWithScores(scores))
	assert.Equal(t, 100, total)
	assert.Equal(t, domain.TierInspiradora, ResolveTier(total))
}

func TestSummarize_FillsDefaultsInCatalogOrder(t *testing.T) {
	cs := setWithScores(map[int]int{3: 12, 4: -1})
	s := Summarize(cs)

	require.Len(t, s.Lines, domain.CriterionCount)
	assert.Equal(t, 1, s.Lines[0].CriteriaID)
	assert.Equal(t, 12, s.Lines[2].Score)
	assert.True(t, s.Lines[3].NotApplicable)
	assert.Equal(t, 12, s.Total)
	assert.Equal(t, 100, s.MaxTotal)
	assert.Equal(t, domain.TierNaciente, s.Tier)
	assert.Len(t, s.Missing, domain.CriterionCount)
}
