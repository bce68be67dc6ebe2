package importer

import (
	"fmt"
	"sort"

	"github.com/alexanderramin/evaluador/internal/validation"
)

// ValidateImportSchema checks the schema before conversion and returns
// every problem found.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	fields := validation.FieldErrors(validation.Validate.Struct(schema))
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		errs = append(errs, fmt.Errorf("%s: %s", k, fields[k]))
	}

	seen := make(map[int]bool)
	for i, x := range schema.Experiences {
		if x.ID == 0 {
			continue
		}
		if seen[x.ID] {
			errs = append(errs, fmt.Errorf("experiences[%d].id: duplicate id %d", i, x.ID))
		}
		seen[x.ID] = true

		lines := make(map[int]bool)
		for j, l := range x.ThematicLines {
			if lines[l.ID] {
				errs = append(errs, fmt.Errorf("experiences[%d].thematic_lines[%d].id: duplicate id %d", i, j, l.ID))
			}
			lines[l.ID] = true
		}
	}
	return errs
}
