package domain

// Tier is the qualitative outcome derived from an evaluation's total score.
type Tier string

const (
	TierNaciente    Tier = "Naciente"
	TierCreciente   Tier = "Creciente"
	TierInspiradora Tier = "Inspiradora"
)

// ValidTiers is the canonical set of accepted tier strings.
var ValidTiers = map[Tier]bool{
	TierNaciente: true, TierCreciente: true, TierInspiradora: true,
}

// TierFromStateID maps the self-reported maturity (1, 2, 3) to a tier.
// Unknown ids return "".
func TierFromStateID(stateID int) Tier {
	switch stateID {
	case 1:
		return TierNaciente
	case 2:
		return TierCreciente
	case 3:
		return TierInspiradora
	default:
		return ""
	}
}

// StateIDFromTier is the inverse of TierFromStateID.
func StateIDFromTier(t Tier) int {
	switch t {
	case TierNaciente:
		return 1
	case TierCreciente:
		return 2
	case TierInspiradora:
		return 3
	default:
		return 0
	}
}

// EnumOption is one selectable value for an evaluator field.
type EnumOption struct {
	ID          int
	DisplayText string
}

// Enum names understood by the helper endpoint.
const (
	EnumAccompanimentRole = "AccompanimentRole"
	EnumTypeEvaluation    = "TypeEvaluation"
)

// DefaultAccompanimentRoles is used when the role list cannot be fetched.
var DefaultAccompanimentRoles = []EnumOption{
	{ID: 1, DisplayText: "Acompañante"},
	{ID: 2, DisplayText: "Evaluador"},
	{ID: 3, DisplayText: "Par académico"},
}

// DefaultEvaluationTypes is used when the evaluation type list cannot be fetched.
var DefaultEvaluationTypes = []EnumOption{
	{ID: 1, DisplayText: "Interna"},
	{ID: 2, DisplayText: "Externa"},
}

// DefaultEnumOptions returns a copy of the built-in options for name.
func DefaultEnumOptions(name string) ([]EnumOption, bool) {
	switch name {
	case EnumAccompanimentRole:
		return append([]EnumOption(nil), DefaultAccompanimentRoles...), true
	case EnumTypeEvaluation:
		return append([]EnumOption(nil), DefaultEvaluationTypes...), true
	default:
		return nil, false
	}
}
