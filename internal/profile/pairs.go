package profile

import (
	"fmt"
	"strings"
)

// Pairs maps stat names (or hero names) to their values.
type Pairs = Ordered[Value]

// ExtractPairs reads text as alternating name and value lines and coerces each
// value. Blank text yields no pairs.
func ExtractPairs(text string, coerce Coercer) (Pairs, error) {
	if strings.TrimSpace(text) == "" {
		return Pairs{}, nil
	}
	return pairLines(strings.Split(text, "\n"), coerce)
}

func pairLines(lines []string, coerce Coercer) (Pairs, error) {
	var pairs Pairs
	if len(lines)%2 != 0 {
		return pairs, fmt.Errorf(
			"%w: %d lines cannot be paired, %q has no value",
			ErrStructuralParse, len(lines), lines[len(lines)-1],
		)
	}
	for i := 0; i < len(lines); i += 2 {
		if strings.TrimSpace(lines[i]) == "" {
			return Pairs{}, fmt.Errorf("%w: line %d is an empty name", ErrStructuralParse, i+1)
		}
		value, err := coerce(lines[i+1])
		if err != nil {
			return Pairs{}, fmt.Errorf("value of %q: %w", lines[i], err)
		}
		pairs.Set(lines[i], value)
	}
	return pairs, nil
}
