// Package types contains common types used across the application
package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Distance identifies one of the supported race lengths.
type Distance string

// Supported distances.
const (
	Distance75K Distance = "75k"
	Distance55K Distance = "55k"
)

// ErrUnsupportedDistance is returned for any distance outside the closed set.
var ErrUnsupportedDistance = errors.New("unsupported distance")

// Distances lists the supported distances in display order.
func Distances() []Distance {
	return []Distance{Distance75K, Distance55K}
}

// ParseDistance validates s against the supported distances.
func ParseDistance(s string) (Distance, error) {
	switch d := Distance(s); d {
	case Distance75K, Distance55K:
		return d, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedDistance, s)
}

func (d Distance) String() string { return string(d) }

// Gender is the stored gender code of a runner ("M" or "F").
type Gender string

// Known gender codes.
const (
	Male   Gender = "M"
	Female Gender = "F"
)

// noneSentinel marks an absent optional value in the source documents.
const noneSentinel = "None"

// Optional holds a string that may be absent.
type Optional struct {
	Value string
	Valid bool
}

// Some returns a present Optional.
func Some(v string) Optional { return Optional{Value: v, Valid: true} }

// None returns an absent Optional.
func None() Optional { return Optional{} }

// Get returns the value and whether it is present.
func (o Optional) Get() (string, bool) { return o.Value, o.Valid }

// Or returns the value when present, fallback otherwise.
func (o Optional) Or(fallback string) string {
	if o.Valid {
		return o.Value
	}
	return fallback
}

// MarshalJSON encodes absence as the "None" sentinel.
func (o Optional) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return json.Marshal(noneSentinel)
	}
	return json.Marshal(o.Value)
}

// UnmarshalJSON treats null, "" and "None" as absent.
func (o *Optional) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*o = None()
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" || s == noneSentinel {
		*o = None()
		return nil
	}
	*o = Some(s)
	return nil
}

// Details carries everything known about a runner besides the name.
type Details struct {
	Bib         string   `json:"bib"`
	Age         int      `json:"age"`
	Nationality string   `json:"nationality"`
	Gender      Gender   `json:"gender"`
	Club        Optional `json:"club"`
	PI          float64  `json:"pi"`
	Flag        Optional `json:"flag"`
	Profile     Optional `json:"profile"`
}

// Runner is one race participant.
type Runner struct {
	Name string
	Details
}

// MarshalJSON encodes the runner as a [name, details] pair.
func (r Runner) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{r.Name, r.Details})
}

// UnmarshalJSON decodes a [name, details] pair.
func (r *Runner) UnmarshalJSON(b []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(b, &pair); err != nil {
		return fmt.Errorf("runner must be a [name, details] pair: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("runner pair has %d elements, want 2", len(pair))
	}
	var out Runner
	if err := json.Unmarshal(pair[0], &out.Name); err != nil {
		return fmt.Errorf("runner name: %w", err)
	}
	if err := json.Unmarshal(pair[1], &out.Details); err != nil {
		return fmt.Errorf("runner %q details: %w", out.Name, err)
	}
	*r = out
	return nil
}

// Dataset is the ordered list of runners for one distance. Treat it as
// read-only; derived views are always fresh slices.
type Dataset []Runner

// Facets are the filter values derived from a dataset.
type Facets struct {
	Nationalities []string `json:"nationalities"`
	Categories    []string `json:"categories"`
}

// Entry is a runner as shown on a results page.
type Entry struct {
	Rank     int    `json:"rank"`
	Category string `json:"category"`
	Runner   Runner `json:"runner"`
}
