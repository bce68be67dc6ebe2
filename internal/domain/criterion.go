package domain

// NotApplicable is the score an evaluator picks when a criterion does not
// apply to the experience. It contributes zero to the total.
const NotApplicable = -1

// JustificationHint is the suggested maximum length shown next to the
// justification field. It is a display hint only; nothing enforces it.
const JustificationHint = 50

// Band is one qualitative group of scores offered for a criterion. Bands are
// ordered from least to most developed.
type Band struct {
	Scores []int
}

// Criterion is a static catalog entry describing one scorable dimension.
type Criterion struct {
	ID   int
	Name string
	Code string
	// FieldKey is the suffix used for field-keyed validation messages,
	// e.g. "Pertinencia" yields "descriptionContributionPertinencia".
	FieldKey              string
	Bands                 []Band
	RequiresJustification bool
}

// AllowedScores returns every score the criterion accepts, band by band, in
// the order they are presented.
func (c Criterion) AllowedScores() []int {
	var out []int
	for _, b := range c.Bands {
		out = append(out, b.Scores...)
	}
	return out
}

// Allows reports whether score is one of the explicitly enumerated values.
func (c Criterion) Allows(score int) bool {
	for _, b := range c.Bands {
		for _, s := range b.Scores {
			if s == score {
				return true
			}
		}
	}
	return false
}

// BandOf returns the zero-based band index holding score, or -1.
func (c Criterion) BandOf(score int) int {
	for i, b := range c.Bands {
		for _, s := range b.Scores {
			if s == score {
				return i
			}
		}
	}
	return -1
}

// MaxScore is the highest score the criterion can contribute.
func (c Criterion) MaxScore() int {
	max := 0
	for _, s := range c.AllowedScores() {
		if s > max {
			max = s
		}
	}
	return max
}

// ErrorKey is the key under which a missing justification is reported.
func (c Criterion) ErrorKey() string {
	return "descriptionContribution" + c.FieldKey
}

func scoreRange(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}

// catalog holds the nine criteria in presentation order. The bands mirror
// the radio groups of the evaluation form exactly; scores outside them are
// never valid even when they fall inside the numeric range.
var catalog = []Criterion{
	{
		ID: 1, Name: "Pertinencia", Code: "PER", FieldKey: "Pertinencia",
		Bands: []Band{
			{Scores: []int{0, 1, 2, NotApplicable}},
			{Scores: scoreRange(3, 5)},
			{Scores: scoreRange(6, 10)},
		},
		RequiresJustification: true,
	},
	{
		ID: 2, Name: "Fundamentación", Code: "FUN", FieldKey: "Foundation",
		Bands: []Band{
			{Scores: scoreRange(0, 2)},
			{Scores: scoreRange(3, 5)},
			{Scores: scoreRange(6, 10)},
		},
		RequiresJustification: true,
	},
	{
		ID: 3, Name: "Innovación", Code: "INN", FieldKey: "Innovation",
		Bands: []Band{
			{Scores: scoreRange(0, 5)},
			{Scores: scoreRange(6, 10)},
			{Scores: scoreRange(11, 15)},
		},
		RequiresJustification: true,
	},
	{
		ID: 4, Name: "Resultados", Code: "RES", FieldKey: "Resultados",
		Bands: []Band{
			{Scores: append(scoreRange(0, 5), NotApplicable)},
			{Scores: scoreRange(11, 15)},
		},
		RequiresJustification: true,
	},
	{
		ID: 5, Name: "Empoderamiento", Code: "EMP", FieldKey: "Empowerment",
		Bands: []Band{
			{Scores: scoreRange(0, 2)},
			{Scores: scoreRange(6, 10)},
		},
		RequiresJustification: true,
	},
	{
		ID: 6, Name: "Seguimiento y Valoración", Code: "SEG", FieldKey: "Monitoring",
		Bands: []Band{
			{Scores: scoreRange(0, 2)},
			{Scores: scoreRange(6, 10)},
		},
		RequiresJustification: true,
	},
	{
		ID: 7, Name: "Transformación", Code: "TRA", FieldKey: "Transformation",
		Bands: []Band{
			{Scores: []int{0, 1, 2, NotApplicable}},
			{Scores: scoreRange(6, 10)},
		},
		RequiresJustification: true,
	},
	{
		ID: 8, Name: "Sostenibilidad", Code: "SOS", FieldKey: "Sustainability",
		Bands: []Band{
			{Scores: []int{0, 1, 2, NotApplicable}},
			{Scores: scoreRange(6, 10)},
		},
		RequiresJustification: true,
	},
	{
		ID: 9, Name: "Transferencia", Code: "TRF", FieldKey: "Transfer",
		Bands: []Band{
			{Scores: []int{0, 1, 2, NotApplicable}},
			{Scores: scoreRange(6, 10)},
		},
		RequiresJustification: true,
	},
}

// CriterionCount is the number of criteria every evaluation must cover.
const CriterionCount = 9

// Catalog returns a copy of the nine criteria in catalog order.
func Catalog() []Criterion {
	out := make([]Criterion, len(catalog))
	for i, c := range catalog {
		bands := make([]Band, len(c.Bands))
		for j, b := range c.Bands {
			bands[j] = Band{Scores: append([]int(nil), b.Scores...)}
		}
		c.Bands = bands
		out[i] = c
	}
	return out
}

// CriterionByID looks up a criterion by its identifier.
func CriterionByID(id int) (Criterion, bool) {
	for _, c := range catalog {
		if c.ID == id {
			return c, true
		}
	}
	return Criterion{}, false
}

// MaxTotalScore is the sum of every criterion's maximum score.
func MaxTotalScore() int {
	total := 0
	for _, c := range catalog {
		total += c.MaxScore()
	}
	return total
}
