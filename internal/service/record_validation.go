package service

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/evaluador/internal/contract"
	"github.com/alexanderramin/evaluador/internal/domain"
	"github.com/alexanderramin/evaluador/internal/validation"
	"github.com/alexanderramin/evaluador/internal/workflow"
	"github.com/go-playground/validator/v10"
)

const (
	tagCatalogCriterion = "catalog_criterion"
	tagCatalogScore     = "catalog_score"
)

func init() {
	validation.RegisterCustomTranslation(tagCatalogCriterion, "{0} no corresponde a un criterio del catálogo")
	validation.RegisterCustomTranslation(tagCatalogScore, "puntaje no permitido para el criterio {1}")

	validation.RegisterFieldMessage(workflow.FieldAccompanimentRole, workflow.MsgAccompanimentRole)
	validation.RegisterFieldMessage(workflow.FieldTypeEvaluation, workflow.MsgTypeEvaluation)
	validation.RegisterFieldMessage(workflow.FieldComments, workflow.MsgComments)
	validation.RegisterFieldMessage(workflow.FieldExperienceName, workflow.MsgExperienceName)
	validation.RegisterFieldMessage(workflow.FieldInstitutionName, workflow.MsgInstitutionName)
	for _, c := range domain.Catalog() {
		validation.RegisterFieldMessage(c.ErrorKey(), workflow.MsgJustification)
	}

	validation.Validate.RegisterStructValidation(validateCriteria, contract.EvaluationRequest{})
}

// validateCriteria checks the criteria list against the catalog: every
// criterion answered with a non-blank justification and an allowed score.
func validateCriteria(sl validator.StructLevel) {
	req := sl.Current().Interface().(contract.EvaluationRequest)

	seen := make(map[int]bool, len(req.CriteriaEvaluations))
	for i, ce := range req.CriteriaEvaluations {
		c, ok := domain.CriterionByID(ce.CriteriaID)
		if !ok {
			sl.ReportError(ce.CriteriaID, fmt.Sprintf("criteriaEvaluations[%d].criteriaId", i), "CriteriaID", tagCatalogCriterion, "")
			continue
		}
		seen[c.ID] = true
		if !c.Allows(ce.Score) {
			sl.ReportError(ce.Score, fmt.Sprintf("criteriaEvaluations[%d].score", i), "Score", tagCatalogScore, c.Name)
		}
		if strings.TrimSpace(ce.DescriptionContribution) == "" {
			sl.ReportError(ce.DescriptionContribution, c.ErrorKey(), "DescriptionContribution", validation.NotBlankTag, "")
		}
	}
	for _, c := range domain.Catalog() {
		if !seen[c.ID] {
			sl.ReportError("", c.ErrorKey(), "DescriptionContribution", validation.NotBlankTag, "")
		}
	}
}

// validateRecord returns per-field messages for a request that cannot be
// stored, or nil when it is valid.
func validateRecord(req contract.EvaluationRequest) map[string]string {
	if err := validation.Validate.Struct(req); err != nil {
		if fields := validation.FieldErrors(err); len(fields) > 0 {
			return fields
		}
		return map[string]string{"": err.Error()}
	}
	return nil
}
