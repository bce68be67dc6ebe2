package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/alexanderramin/evaluador/internal/contract"
	"github.com/alexanderramin/evaluador/internal/domain"
	"github.com/alexanderramin/evaluador/internal/workflow"
)

// loadAnswers reads an answers file. The format is the same JSON body the
// REST collaborator accepts.
func loadAnswers(path string) (contract.EvaluationRequest, error) {
	var req contract.EvaluationRequest
	data, err := os.ReadFile(path)
	if err != nil {
		return req, fmt.Errorf("reading answers file: %w", err)
	}
	if err := json.Unmarshal(data, &req); err != nil {
		return req, fmt.Errorf("parsing answers file: %w", err)
	}
	return req, nil
}

// lookupExperience finds id among the listed experiences. A zero id or an
// id with no match yields nil, and the workflow opens without prefill. A
// failing source is an error.
func lookupExperience(ctx context.Context, app *App, id int) (*domain.Experience, error) {
	if id <= 0 || app.Experiences == nil {
		return nil, nil
	}
	list, err := app.Experiences.ListExperiences(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing experiences: %w", err)
	}
	x, ok := domain.FindExperience(id, list)
	if !ok {
		return nil, nil
	}
	return &x, nil
}

// applyAnswers drives wf from its current step to the final one, filling
// each step from req before advancing. Values in req override prefilled
// experience fields when non-empty.
func applyAnswers(wf *workflow.Workflow, req contract.EvaluationRequest) error {
	if req.ExperienceID > 0 {
		if err := wf.AssignExperience(req.ExperienceID); err != nil {
			return err
		}
	}
	if len(req.ThematicLineNames) > 0 {
		if err := wf.SetThematicLines(req.ThematicLineNames); err != nil {
			return err
		}
	}

	answers := make(map[int]contract.CriteriaEvaluation, len(req.CriteriaEvaluations))
	for _, ce := range req.CriteriaEvaluations {
		answers[ce.CriteriaID] = ce
	}

	for wf.State().ActiveStep < workflow.LastStep {
		step := wf.CurrentStep()
		ev := wf.Evaluation()
		var err error
		switch step.Kind {
		case workflow.StepEvaluator:
			err = wf.SetEvaluator(req.AccompanimentRole, req.TypeEvaluation, req.Comments)
		case workflow.StepExperienceInfo:
			stateID := ev.StateID
			if req.StateID > 0 {
				stateID = req.StateID
			}
			err = wf.SetExperienceInfo(
				domain.FirstNonBlank(req.ExperienceName, ev.ExperienceName),
				domain.FirstNonBlank(req.InstitutionName, ev.InstitutionName),
				stateID,
			)
		case workflow.StepCriterion:
			if a, ok := answers[step.CriteriaID]; ok {
				if err = wf.SetScore(step.CriteriaID, a.Score); err == nil {
					err = wf.SetJustification(step.CriteriaID, a.DescriptionContribution)
				}
			}
		}
		if err != nil {
			return fmt.Errorf("%s: %w", step.Title, err)
		}
		if err := wf.Next(); err != nil {
			return err
		}
	}
	return nil
}
