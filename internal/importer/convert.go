package importer

import (
	"strings"

	"github.com/alexanderramin/evaluador/internal/domain"
)

// Convert transforms a validated ImportSchema into domain experiences.
// Call ValidateImportSchema first; Convert assumes the schema is valid.
func Convert(schema *ImportSchema) []*domain.Experience {
	out := make([]*domain.Experience, 0, len(schema.Experiences))
	for _, x := range schema.Experiences {
		exp := &domain.Experience{
			ID:          x.ID,
			Name:        strings.TrimSpace(x.Name),
			Code:        strings.TrimSpace(x.Code),
			Institution: domain.Institution{Name: strings.TrimSpace(x.Institution)},
			StateID:     x.StateID,
		}
		named := len(x.ThematicLines) > 0
		for _, l := range x.ThematicLines {
			exp.ThematicLineIDs = append(exp.ThematicLineIDs, l.ID)
			exp.ThematicLineNames = append(exp.ThematicLineNames, l.Name)
			if l.Name == "" {
				named = false
			}
		}
		if !named {
			exp.ThematicLineNames = nil
		}
		out = append(out, exp)
	}
	return out
}
