package catalogue

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"github.com/aretw0/goap/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// record is the readable form of an entry.
type record struct {
	Cost          any            `mapstructure:"cost"`
	Preconditions map[string]any `mapstructure:"preconditions"`
	Effects       map[string]any `mapstructure:"effects"`
}

// DecodeJSON parses a catalogue document. Each entry is either a triple
// [cost, preconditions, effects] or a record with the same three fields.
func DecodeJSON(data []byte) (domain.Catalogue, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse catalogue json: %w", err)
	}
	return decode(raw)
}

// DecodeYAML parses the YAML rendition of the same document shapes.
func DecodeYAML(data []byte) (domain.Catalogue, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse catalogue yaml: %w", err)
	}
	return decode(raw)
}

// EncodeJSON writes the catalogue in the triple format, states carrying their markers.
func EncodeJSON(c domain.Catalogue) ([]byte, error) {
	out := make(map[string][3]any, len(c))
	for key, a := range c {
		out[key] = [3]any{a.Cost, a.Preconditions, a.Effects}
	}
	return json.MarshalIndent(out, "", "    ")
}

func decode(raw map[string]any) (domain.Catalogue, error) {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	c := make(domain.Catalogue, len(raw))
	for _, key := range keys {
		a, err := decodeEntry(key, raw[key])
		if err != nil {
			return nil, err
		}
		c[key] = a
	}
	return c, nil
}

func decodeEntry(key string, v any) (domain.Action, error) {
	switch entry := v.(type) {
	case []any:
		if len(entry) != 3 {
			return domain.Action{}, &domain.MalformedEntryError{
				Action: key,
				Reason: fmt.Sprintf("expected [cost, preconditions, effects], got %d items", len(entry)),
			}
		}
		return buildAction(key, entry[0], entry[1], entry[2])
	case map[string]any:
		var rec record
		if err := mapstructure.Decode(entry, &rec); err != nil {
			return domain.Action{}, &domain.MalformedEntryError{Action: key, Reason: "invalid record", Err: err}
		}
		var pre, eff any
		if rec.Preconditions != nil {
			pre = rec.Preconditions
		}
		if rec.Effects != nil {
			eff = rec.Effects
		}
		return buildAction(key, rec.Cost, pre, eff)
	default:
		return domain.Action{}, &domain.MalformedEntryError{Action: key, Reason: fmt.Sprintf("unsupported entry type %T", v)}
	}
}

func buildAction(key string, cost, pre, eff any) (domain.Action, error) {
	if cost == nil {
		return domain.Action{}, &domain.MalformedEntryError{Action: key, Field: "cost", Reason: "missing"}
	}
	c, err := domain.ToFloat(cost)
	if err != nil {
		return domain.Action{}, &domain.MalformedEntryError{Action: key, Field: "cost", Reason: err.Error(), Err: err}
	}
	if math.IsNaN(c) || c < 0 {
		return domain.Action{}, &domain.MalformedEntryError{Action: key, Field: "cost", Reason: fmt.Sprintf("invalid cost %g", c)}
	}

	preconditions, err := decodeState(key, "preconditions", pre)
	if err != nil {
		return domain.Action{}, err
	}
	effects, err := decodeState(key, "effects", eff)
	if err != nil {
		return domain.Action{}, err
	}

	return domain.Action{Key: key, Cost: c, Preconditions: preconditions, Effects: effects}, nil
}

func decodeState(key, field string, v any) (domain.State, error) {
	m, ok := v.(map[string]any)
	if !ok {
		reason := "missing"
		if v != nil {
			reason = fmt.Sprintf("expected a mapping, got %T", v)
		}
		return domain.State{}, &domain.MalformedEntryError{Action: key, Field: field, Reason: reason}
	}
	s, err := domain.StateFromMap(m)
	if err != nil {
		return domain.State{}, &domain.MalformedEntryError{Action: key, Field: field, Reason: err.Error(), Err: err}
	}
	return s, nil
}
