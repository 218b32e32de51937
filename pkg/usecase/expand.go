package usecase

import (
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/hiroq/pipet/pkg/domain"
)

// expandStrict substitutes $VAR and ${VAR} references using the step's
// own env entries first, then the process environment. A reference to a
// variable that is set nowhere is fatal, the same contract as `set -u`.
func expandStrict(s string, stepEnv []string) (string, error) {
	var missing []string

	expanded := os.Expand(s, func(name string) string {
		// os.Expand hands "$$" to the mapper as the name "$";
		// keep it as an escape for a literal dollar sign.
		if name == "$" {
			return "$"
		}
		for _, entry := range stepEnv {
			if key, value, ok := strings.Cut(entry, "="); ok && key == name {
				return value
			}
		}
		if value, ok := os.LookupEnv(name); ok {
			return value
		}
		missing = append(missing, name)
		return ""
	})

	if len(missing) > 0 {
		return "", domain.ErrUnsetVariable.Wrap(
			goerr.New("variable(s) not set: " + strings.Join(missing, ", ")))
	}
	return expanded, nil
}

// expandStrictAll expands every element of argv.
func expandStrictAll(args []string, stepEnv []string) ([]string, error) {
	expanded := make([]string, len(args))
	for i, arg := range args {
		v, err := expandStrict(arg, stepEnv)
		if err != nil {
			return nil, err
		}
		expanded[i] = v
	}
	return expanded, nil
}
