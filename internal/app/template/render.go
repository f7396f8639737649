package template

import (
	"fmt"
	"strings"

	"github.com/aalvaropc/blanks/internal/domain"
)

// RenderString replaces {{VAR}} placeholders with vars values.
// It returns an error if a variable is missing or a placeholder is malformed.
func RenderString(input string, vars domain.Vars) (string, error) {
	if input == "" {
		return "", nil
	}

	var out strings.Builder
	rest := input
	for {
		start := strings.Index(rest, "{{")
		if start == -1 {
			out.WriteString(rest)
			return out.String(), nil
		}

		out.WriteString(rest[:start])
		rest = rest[start+2:]

		end := strings.Index(rest, "}}")
		if end == -1 {
			return "", renderErr(fmt.Errorf("unclosed template expression: %w", domain.ErrInvalidConfig))
		}

		key := strings.TrimSpace(rest[:end])
		if key == "" {
			return "", renderErr(fmt.Errorf("empty template expression: %w", domain.ErrInvalidConfig))
		}

		value, ok := domain.Get(vars, key)
		if !ok {
			return "", renderErr(fmt.Errorf("missing variable %q: %w", key, domain.ErrInvalidConfig))
		}

		out.WriteString(value)
		rest = rest[end+2:]
	}
}

func renderErr(err error) error {
	return &domain.OpError{
		Op:   "template.render",
		Kind: domain.KindInvalidConfig,
		Err:  err,
	}
}
