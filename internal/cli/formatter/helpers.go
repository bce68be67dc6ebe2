package formatter

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/evaluador/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// HumanDate renders a timestamp as a short local date, "hoy" or "ayer".
func HumanDate(t, now time.Time) string {
	if t.IsZero() {
		return "--"
	}
	y1, m1, d1 := now.Date()
	y2, m2, d2 := t.Date()
	if y1 == y2 && m1 == m2 && d1 == d2 {
		return "hoy " + t.Format("15:04")
	}
	y3, m3, d3 := now.AddDate(0, 0, -1).Date()
	if y2 == y3 && m2 == m3 && d2 == d3 {
		return "ayer " + t.Format("15:04")
	}
	return t.Format("2006-01-02")
}

// Truncate shortens s to at most n visible runes, ending with "…".
func Truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}

// ScoreLabel renders a criterion score, spelling out "No aplica" for the
// not-applicable value.
func ScoreLabel(score int) string {
	if score == domain.NotApplicable {
		return "No aplica"
	}
	return fmt.Sprintf("%d", score)
}

// FormatFieldErrors lists field messages sorted by field key.
func FormatFieldErrors(fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		label := k
		if label == "" {
			label = "registro"
		}
		fmt.Fprintf(&b, "  %s %s %s\n", StyleRed.Render("•"), Dim(label+":"), fields[k])
	}
	return b.String()
}
