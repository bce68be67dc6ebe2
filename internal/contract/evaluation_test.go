package contract

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/evaluador/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvaluationRequest_WireFieldNames(t *testing.T) {
	ev := domain.NewEvaluation()
	ev.ExperienceID = 4
	ev.EvaluatorUserID = 12
	ev.TypeEvaluation = "Interna"
	ce := domain.NewCriterionEvaluation(1)
	ce.Score = 7
	ce.Justification = "Responde al contexto"
	ev.CriteriaEvaluations[1] = ce

	raw, err := json.Marshal(NewEvaluationRequest(ev))
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.Equal(t, float64(12), m["userId"])
	assert.Equal(t, float64(4), m["experienceId"])
	assert.Equal(t, []any{}, m["thematicLineNames"])

	crits := m["criteriaEvaluations"].([]any)
	require.Len(t, crits, 1)
	first := crits[0].(map[string]any)
	assert.Equal(t, "Responde al contexto", first["descriptionContribution"])
	assert.Equal(t, float64(1), first["criteriaId"])
	assert.Equal(t, true, first["state"])
	assert.Nil(t, first["createdAt"])
}

func TestNewEvaluationRequest_CatalogOrder(t *testing.T) {
	ev := domain.NewEvaluation()
	for _, id := range []int{9, 3, 1} {
		ev.CriteriaEvaluations[id] = domain.NewCriterionEvaluation(id)
	}
	req := NewEvaluationRequest(ev)
	var ids []int
	for _, c := range req.CriteriaEvaluations {
		ids = append(ids, c.CriteriaID)
	}
	assert.Equal(t, []int{1, 3, 9}, ids)
}

func TestEvaluationRequest_ToDomain_KeepsAuditFields(t *testing.T) {
	created := "2024-05-01T10:00:00"
	req := EvaluationRequest{
		ExperienceID: 2,
		UserID:       5,
		CriteriaEvaluations: []CriteriaEvaluation{
			{CriteriaID: 2, Score: 4, DescriptionContribution: "a", State: true, CreatedAt: &created},
			{CriteriaID: 2, Score: 5, DescriptionContribution: "b", State: true},
		},
	}
	ev := req.ToDomain()
	require.Len(t, ev.CriteriaEvaluations, 1)
	assert.Equal(t, 5, ev.CriteriaEvaluations[2].Score)
	assert.Equal(t, 5, ev.EvaluatorUserID)

	req.CriteriaEvaluations = req.CriteriaEvaluations[:1]
	ev = req.ToDomain()
	require.NotNil(t, ev.CriteriaEvaluations[2].CreatedAt)
	assert.Equal(t, time.May, ev.CriteriaEvaluations[2].CreatedAt.Month())
}

func TestExperienceDTO_Decode(t *testing.T) {
	body := `[{"id":3,"nameExperiences":"Huerta","code":"EXP-3","stateId":2,
		"thematicLineIds":[1,4],"institution":{"name":"IE Central"}}]`
	var list []ExperienceDTO
	require.NoError(t, json.Unmarshal([]byte(body), &list))
	require.Len(t, list, 1)

	exp := list[0].ToDomain()
	assert.Equal(t, "Huerta", exp.Name)
	assert.Equal(t, "IE Central", exp.Institution.Name)
	assert.Equal(t, []string{"1", "4"}, exp.ThematicLineLabels())
}

func TestEnumResponse_Options(t *testing.T) {
	body := `{"data":[{"id":1,"displayText":"Interna"}],"success":true,"message":""}`
	var resp EnumResponse
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	assert.Equal(t, []domain.EnumOption{{ID: 1, DisplayText: "Interna"}}, resp.Options())
}

func TestSubmitError_ErrorString(t *testing.T) {
	cause := errors.New("connection refused")
	err := &SubmitError{Code: SubmitErrUnavailable, Message: "backend unreachable", Err: cause}
	assert.Equal(t, "UNAVAILABLE: backend unreachable", err.Error())
	assert.ErrorIs(t, err, cause)
}
