package contract

import "github.com/alexanderramin/evaluador/internal/domain"

type InstitutionDTO struct {
	ID   int    `json:"id,omitempty"`
	Name string `json:"name"`
}

// ExperienceDTO is the subset of GET /api/Experience/List items the
// evaluator needs.
type ExperienceDTO struct {
	ID                int            `json:"id"`
	NameExperiences   string         `json:"nameExperiences"`
	Code              string         `json:"code"`
	StateID           int            `json:"stateId"`
	ThematicLineIDs   []int          `json:"thematicLineIds"`
	ThematicLineNames []string       `json:"thematicLineNames,omitempty"`
	Institution       InstitutionDTO `json:"institution"`
}

func (d ExperienceDTO) ToDomain() domain.Experience {
	return domain.Experience{
		ID:                d.ID,
		Name:              d.NameExperiences,
		Code:              d.Code,
		Institution:       domain.Institution{ID: d.Institution.ID, Name: d.Institution.Name},
		ThematicLineIDs:   append([]int(nil), d.ThematicLineIDs...),
		ThematicLineNames: append([]string(nil), d.ThematicLineNames...),
		StateID:           d.StateID,
	}
}

type EnumItem struct {
	ID          int    `json:"id"`
	DisplayText string `json:"displayText"`
}

// EnumResponse is the envelope returned by GET /api/Helper/{name}.
type EnumResponse struct {
	Data    []EnumItem `json:"data"`
	Success bool       `json:"success"`
	Message string     `json:"message"`
}

func (r EnumResponse) Options() []domain.EnumOption {
	out := make([]domain.EnumOption, 0, len(r.Data))
	for _, it := range r.Data {
		out = append(out, domain.EnumOption{ID: it.ID, DisplayText: it.DisplayText})
	}
	return out
}
