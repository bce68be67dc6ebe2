package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/evaluador/internal/app"
	"github.com/alexanderramin/evaluador/internal/domain"
	"github.com/alexanderramin/evaluador/internal/scoring"
)

// FormatBands renders a criterion's allowed scores band by band, collapsing
// consecutive runs: "0–2, No aplica | 3–5 | 6–10".
func FormatBands(c domain.Criterion) string {
	parts := make([]string, 0, len(c.Bands))
	for _, b := range c.Bands {
		parts = append(parts, formatScoreRun(b.Scores))
	}
	return strings.Join(parts, " | ")
}

func formatScoreRun(scores []int) string {
	var out []string
	na := false
	for i := 0; i < len(scores); {
		if scores[i] == domain.NotApplicable {
			na = true
			i++
			continue
		}
		j := i
		for j+1 < len(scores) && scores[j+1] == scores[j]+1 {
			j++
		}
		if j > i {
			out = append(out, fmt.Sprintf("%d–%d", scores[i], scores[j]))
		} else {
			out = append(out, strconv.Itoa(scores[i]))
		}
		i = j + 1
	}
	if na {
		out = append(out, "No aplica")
	}
	return strings.Join(out, ", ")
}

// FormatCatalog lists the nine criteria with their bands and maximum.
func FormatCatalog(catalog []domain.Criterion) string {
	var b strings.Builder
	b.WriteString(Header("Criterios de evaluación"))
	b.WriteString("\n\n")
	for _, c := range catalog {
		fmt.Fprintf(&b, "%s %s %s\n", StyleHeader.Render(fmt.Sprintf("%d.", c.ID)), Bold(c.Name), Dim(fmt.Sprintf("(%s, máx %d)", c.Code, c.MaxScore())))
		if desc := domain.CriterionDescription(c.ID); desc != "" {
			fmt.Fprintf(&b, "   %s\n", Dim(desc))
		}
		fmt.Fprintf(&b, "   Puntajes: %s\n\n", FormatBands(c))
	}
	fmt.Fprintf(&b, "%s %d\n", Dim("Puntaje máximo total:"), domain.MaxTotalScore())
	return b.String()
}

// FormatTierReference renders the tier thresholds.
func FormatTierReference() string {
	var b strings.Builder
	for _, line := range domain.TierReference {
		b.WriteString("  " + Dim(line) + "\n")
	}
	return b.String()
}

// FormatTierPreview renders the tier a total score resolves to.
func FormatTierPreview(total int) string {
	tier := scoring.ResolveTier(total)
	return fmt.Sprintf("%s %d / %d  %s\n\n%s", Dim("Total:"), total, domain.MaxTotalScore(), TierIndicator(tier), FormatTierReference())
}

// FormatSummary renders the final concept: per-criterion table, total,
// tier and threshold reference.
func FormatSummary(s scoring.Summary) string {
	rows := make([][]string, 0, len(s.Lines))
	for _, l := range s.Lines {
		just := Truncate(l.Justification, 40)
		if !l.Answered {
			just = StyleRed.Render("pendiente")
		}
		rows = append(rows, []string{
			strconv.Itoa(l.CriteriaID),
			l.Name,
			ScoreLabel(l.Score),
			strconv.Itoa(l.MaxScore),
			just,
		})
	}

	var b strings.Builder
	b.WriteString(RenderTable([]string{"#", "CRITERIO", "PUNTAJE", "MÁX", "APORTES"}, rows, 0, 2, 3))
	fmt.Fprintf(&b, "\n%s %s\n", Dim("Total:"), Bold(fmt.Sprintf("%d / %d", s.Total, s.MaxTotal)))
	fmt.Fprintf(&b, "%s %s\n", Dim("Resultado:"), TierIndicator(s.Tier))
	if len(s.Missing) > 0 {
		ids := make([]string, len(s.Missing))
		for i, id := range s.Missing {
			ids[i] = strconv.Itoa(id)
		}
		fmt.Fprintf(&b, "%s %s\n", StyleRed.Render("Criterios sin aportes:"), strings.Join(ids, ", "))
	}
	b.WriteString("\n" + FormatTierReference())
	return b.String()
}

// FormatEvaluation renders a stored evaluation in full.
func FormatEvaluation(ev *domain.Evaluation) string {
	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("Evaluación #%d", ev.EvaluationID)))
	b.WriteString("\n")
	fields := [][2]string{
		{"Experiencia", fmt.Sprintf("%s (#%d)", ev.ExperienceName, ev.ExperienceID)},
		{"Institución", ev.InstitutionName},
		{"Líneas temáticas", strings.Join(ev.ThematicLineNames, ", ")},
		{"Evaluador", strconv.Itoa(ev.EvaluatorUserID)},
		{"Rol", ev.AccompanimentRole},
		{"Tipo", ev.TypeEvaluation},
		{"Comentarios", ev.Comments},
		{"Estado declarado", string(domain.TierFromStateID(ev.StateID))},
	}
	for _, f := range fields {
		v := f[1]
		if strings.TrimSpace(v) == "" {
			v = "--"
		}
		fmt.Fprintf(&b, "%s %s\n", Dim(f[0]+":"), v)
	}
	b.WriteString("\n")
	sum := scoring.Summarize(ev.CriteriaEvaluations)
	b.WriteString(FormatSummary(sum))
	if ev.EvaluationResult != "" && ev.EvaluationResult != sum.Tier {
		fmt.Fprintf(&b, "\n%s %s\n", StyleYellow.Render("Resultado registrado:"), TierIndicator(ev.EvaluationResult))
	}
	return b.String()
}

// FormatExperienceList renders experiences as a table.
func FormatExperienceList(list []domain.Experience) string {
	rows := make([][]string, 0, len(list))
	for _, x := range list {
		rows = append(rows, []string{
			strconv.Itoa(x.ID),
			x.Code,
			Truncate(x.Name, 40),
			Truncate(x.Institution.Name, 30),
			strings.Join(x.ThematicLineLabels(), ", "),
			TierIndicator(domain.TierFromStateID(x.StateID)),
		})
	}
	return RenderTable([]string{"ID", "CÓDIGO", "EXPERIENCIA", "INSTITUCIÓN", "LÍNEAS", "ESTADO"}, rows, 0)
}

// FormatEvaluationList renders stored evaluation summaries as a table.
func FormatEvaluationList(list []app.EvaluationSummary, now time.Time) string {
	rows := make([][]string, 0, len(list))
	for _, s := range list {
		rows = append(rows, []string{
			strconv.Itoa(s.EvaluationID),
			Truncate(s.ExperienceName, 40),
			strconv.Itoa(s.EvaluatorUserID),
			strconv.Itoa(s.TotalScore),
			TierIndicator(s.EvaluationResult),
			HumanDate(s.CreatedAt.Local(), now),
		})
	}
	return RenderTable([]string{"ID", "EXPERIENCIA", "EVALUADOR", "TOTAL", "RESULTADO", "FECHA"}, rows, 0, 3)
}

// FormatSubmitResult renders the collaborator's answer to a submission.
func FormatSubmitResult(res *app.SubmitResult) string {
	var b strings.Builder
	b.WriteString(Success("Evaluación guardada"))
	if res.EvaluationID > 0 {
		b.WriteString(Dim(fmt.Sprintf(" #%d", res.EvaluationID)))
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s\n", Dim("Resultado:"), TierIndicator(res.EvaluationResult))
	if res.TotalReported {
		fmt.Fprintf(&b, "%s %d / %d\n", Dim("Total:"), res.TotalScore, domain.MaxTotalScore())
	}
	if res.Reference != "" {
		fmt.Fprintf(&b, "%s %s\n", Dim("Referencia:"), res.Reference)
	}
	return b.String()
}
