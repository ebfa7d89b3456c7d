package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/goap/pkg/domain"
)

const (
	StartLabel = "START"
	GoalLabel  = "END"
)

// ParseState reads a state from the command line. Both a JSON object
// ({"Money": 10}) and a comma separated list (Money=10,Rested) are accepted;
// a bare key means 1. An empty string is the empty state.
func ParseState(name, raw string) (domain.State, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return domain.NewState(name, nil), nil
	}

	if strings.HasPrefix(raw, "{") {
		var fields map[string]any
		if err := json.Unmarshal([]byte(raw), &fields); err != nil {
			return domain.State{}, err
		}
		s, err := domain.StateFromMap(fields)
		if err != nil {
			return domain.State{}, err
		}
		if s.Name() == "" {
			s = s.Rename(name)
		}
		return s, nil
	}

	values := make(map[string]float64)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, hasValue := strings.Cut(part, "=")
		key = strings.TrimSpace(key)
		if key == "" {
			return domain.State{}, fmt.Errorf("missing key in %q", part)
		}
		if !hasValue {
			values[key] = 1
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return domain.State{}, fmt.Errorf("value of %q: %w", key, err)
		}
		values[key] = v
	}
	return domain.NewState(name, values), nil
}
