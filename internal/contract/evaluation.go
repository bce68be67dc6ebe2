package contract

import (
	"time"

	"github.com/alexanderramin/evaluador/internal/domain"
)

// CriteriaEvaluation is the wire form of one criterion answer.
type CriteriaEvaluation struct {
	Score                   int     `json:"score"`
	DescriptionContribution string  `json:"descriptionContribution"`
	EvaluationID            int     `json:"evaluationId"`
	CriteriaID              int     `json:"criteriaId"`
	ID                      int     `json:"id"`
	State                   bool    `json:"state"`
	CreatedAt               *string `json:"createdAt"`
	DeletedAt               *string `json:"deletedAt"`
}

// EvaluationRequest is the body of POST /api/Evaluation/create.
type EvaluationRequest struct {
	EvaluationID        int                  `json:"evaluationId"`
	TypeEvaluation      string               `json:"typeEvaluation" validate:"notblank"`
	AccompanimentRole   string               `json:"accompanimentRole" validate:"notblank"`
	Comments            string               `json:"comments" validate:"notblank"`
	EvaluationResult    string               `json:"evaluationResult" validate:"omitempty,oneof=Naciente Creciente Inspiradora"`
	ExperienceID        int                  `json:"experienceId" validate:"gt=0"`
	ExperienceName      string               `json:"experienceName" validate:"notblank"`
	StateID             int                  `json:"stateId" validate:"gte=0,lte=3"`
	InstitutionName     string               `json:"institutionName" validate:"notblank"`
	CriteriaEvaluations []CriteriaEvaluation `json:"criteriaEvaluations"`
	ThematicLineNames   []string             `json:"thematicLineNames"`
	UserID              int                  `json:"userId" validate:"gt=0"`
}

// EvaluationResponse is the collaborator's reply to a create request.
// Only evaluationResult is guaranteed; the rest is read when present.
type EvaluationResponse struct {
	EvaluationID     int    `json:"evaluationId"`
	EvaluationResult string `json:"evaluationResult"`
	TotalScore       *int   `json:"totalScore,omitempty"`
	Message          string `json:"message,omitempty"`
}

var auditLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999999", "2006-01-02T15:04:05"}

func formatAudit(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}

func parseAudit(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	for _, layout := range auditLayouts {
		if t, err := time.Parse(layout, *s); err == nil {
			return &t
		}
	}
	return nil
}

// NewEvaluationRequest renders an evaluation in wire form. Criteria are
// emitted in catalog order.
func NewEvaluationRequest(ev *domain.Evaluation) EvaluationRequest {
	req := EvaluationRequest{
		EvaluationID:        ev.EvaluationID,
		TypeEvaluation:      ev.TypeEvaluation,
		AccompanimentRole:   ev.AccompanimentRole,
		Comments:            ev.Comments,
		EvaluationResult:    string(ev.EvaluationResult),
		ExperienceID:        ev.ExperienceID,
		ExperienceName:      ev.ExperienceName,
		StateID:             ev.StateID,
		InstitutionName:     ev.InstitutionName,
		CriteriaEvaluations: []CriteriaEvaluation{},
		ThematicLineNames:   []string{},
		UserID:              ev.EvaluatorUserID,
	}
	if len(ev.ThematicLineNames) > 0 {
		req.ThematicLineNames = append(req.ThematicLineNames, ev.ThematicLineNames...)
	}
	for _, ce := range ev.CriteriaEvaluations.Sorted() {
		req.CriteriaEvaluations = append(req.CriteriaEvaluations, CriteriaEvaluation{
			Score:                   ce.Score,
			DescriptionContribution: ce.Justification,
			EvaluationID:            ce.EvaluationID,
			CriteriaID:              ce.CriteriaID,
			ID:                      ce.ID,
			State:                   ce.State,
			CreatedAt:               formatAudit(ce.CreatedAt),
			DeletedAt:               formatAudit(ce.DeletedAt),
		})
	}
	return req
}

// ToDomain converts a wire evaluation back into the domain model. A repeated
// criteria id keeps the last entry.
func (r EvaluationRequest) ToDomain() *domain.Evaluation {
	ev := domain.NewEvaluation()
	ev.EvaluationID = r.EvaluationID
	ev.TypeEvaluation = r.TypeEvaluation
	ev.AccompanimentRole = r.AccompanimentRole
	ev.Comments = r.Comments
	ev.EvaluationResult = domain.Tier(r.EvaluationResult)
	ev.ExperienceID = r.ExperienceID
	ev.ExperienceName = r.ExperienceName
	ev.StateID = r.StateID
	ev.InstitutionName = r.InstitutionName
	ev.ThematicLineNames = append([]string(nil), r.ThematicLineNames...)
	ev.EvaluatorUserID = r.UserID
	for _, c := range r.CriteriaEvaluations {
		ev.CriteriaEvaluations[c.CriteriaID] = domain.CriterionEvaluation{
			ID:            c.ID,
			CriteriaID:    c.CriteriaID,
			EvaluationID:  c.EvaluationID,
			Score:         c.Score,
			Justification: c.DescriptionContribution,
			State:         c.State,
			CreatedAt:     parseAudit(c.CreatedAt),
			DeletedAt:     parseAudit(c.DeletedAt),
		}
	}
	return ev
}
