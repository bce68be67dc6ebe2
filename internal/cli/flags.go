package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/pflag"
)

// addExperienceFlag registers --experience/-e bound to target.
func addExperienceFlag(fs *pflag.FlagSet, target *int, usage string) {
	fs.IntVarP(target, "experience", "e", 0, usage)
}

// parseID parses a positive integer id argument.
func parseID(kind, arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id %q", kind, arg)
	}
	return id, nil
}
