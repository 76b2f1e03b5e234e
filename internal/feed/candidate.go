// Pollenboard - Generative Media Studio and Community Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollenboard

package feed

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// The upstream payload is untrusted and its field types drift between
// revisions (seeds as strings, flags as 0/1). The loose types below decode
// whatever they are given without failing the whole record; a value of the
// wrong shape is simply reported as absent.

// LooseString is a string field that may be missing or mistyped.
type LooseString struct {
	Value string
	Valid bool
}

// UnmarshalJSON accepts JSON strings and numbers.
func (s *LooseString) UnmarshalJSON(data []byte) error {
	*s = LooseString{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = LooseString{Value: str, Valid: true}
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err == nil {
		*s = LooseString{Value: num.String(), Valid: true}
	}
	return nil
}

// LooseInt is an integer field that may be a number or a numeric string.
type LooseInt struct {
	Value int64
	Valid bool
}

// UnmarshalJSON accepts integers, floats (truncated) and numeric strings.
func (n *LooseInt) UnmarshalJSON(data []byte) error {
	*n = LooseInt{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	raw := string(data)
	if data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return nil
		}
		raw = strings.TrimSpace(str)
	}
	if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
		*n = LooseInt{Value: v, Valid: true}
		return nil
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) &&
		f <= math.MaxInt64 && f >= math.MinInt64 {
		*n = LooseInt{Value: int64(f), Valid: true}
	}
	return nil
}

// LooseBool is a flag that may be a bool, a 0/1 number or a "true"/"false" string.
// Present is set for any non-null value, including ones that did not parse.
type LooseBool struct {
	Value   bool
	Valid   bool
	Present bool
}

// UnmarshalJSON accepts booleans, numbers and boolean strings.
func (b *LooseBool) UnmarshalJSON(data []byte) error {
	*b = LooseBool{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	b.Present = true
	raw := string(data)
	if data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return nil
		}
		raw = str
	}
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1":
		b.Value, b.Valid = true, true
	case "false", "0", "":
		b.Value, b.Valid = false, true
	default:
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			b.Value, b.Valid = f != 0, true
		}
	}
	return nil
}

// Set reports whether the flag is raised. A present value that is not a
// recognized false, such as "yes" or an object, counts as raised.
func (b LooseBool) Set() bool {
	return b.Value || (b.Present && !b.Valid)
}

// LooseTimings is a timingInfo list whose malformed entries are dropped.
type LooseTimings []TimingStep

// UnmarshalJSON keeps every element that carries a step name.
func (lt *LooseTimings) UnmarshalJSON(data []byte) error {
	*lt = nil
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	steps := make([]TimingStep, 0, len(raw))
	for _, elem := range raw {
		var entry struct {
			Step      LooseString `json:"step"`
			Timestamp LooseInt    `json:"timestamp"`
		}
		if err := json.Unmarshal(elem, &entry); err != nil || !entry.Step.Valid {
			continue
		}
		steps = append(steps, TimingStep{Step: entry.Step.Value, Timestamp: entry.Timestamp.Value})
	}
	*lt = steps
	return nil
}

// Candidate is an unvalidated record as received from the upstream feed.
// Unknown fields are ignored. Normalize turns it into a Record.
type Candidate struct {
	Width          LooseInt     `json:"width"`
	Height         LooseInt     `json:"height"`
	Seed           LooseInt     `json:"seed"`
	Model          LooseString  `json:"model"`
	Enhance        LooseBool    `json:"enhance"`
	NoLogo         LooseBool    `json:"nologo"`
	NegativePrompt LooseString  `json:"negative_prompt"`
	Quality        LooseString  `json:"quality"`
	ImageURL       LooseString  `json:"imageURL"`
	ThumbnailURL   LooseString  `json:"thumbnailURL"`
	Prompt         LooseString  `json:"prompt"`
	IsChild        LooseBool    `json:"isChild"`
	IsMature       LooseBool    `json:"isMature"`
	NSFW           LooseBool    `json:"nsfw"`
	Private        LooseBool    `json:"private"`
	NoFeed         LooseBool    `json:"nofeed"`
	Maturity       *Maturity    `json:"maturity"`
	Status         LooseString  `json:"status"`
	TimingInfo     LooseTimings `json:"timingInfo"`
}

// Maturity is the nested maturity block some upstream revisions send.
type Maturity struct {
	IsChild  LooseBool `json:"isChild"`
	IsMature LooseBool `json:"isMature"`
	NSFW     LooseBool `json:"nsfw"`
}

// UnmarshalJSON ignores a maturity value that is not an object.
func (m *Maturity) UnmarshalJSON(data []byte) error {
	type plain Maturity
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		*m = Maturity{}
		return nil
	}
	*m = Maturity(p)
	return nil
}

// DecodeCandidate parses one upstream payload. Only payloads that are not a
// JSON object at all are rejected.
func DecodeCandidate(data []byte) (Candidate, error) {
	var c Candidate
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return c, fmt.Errorf("%w: payload is not a JSON object", ErrMalformedRecord)
	}
	if err := json.Unmarshal(trimmed, &c); err != nil {
		return Candidate{}, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	return c, nil
}

// DecodeCandidates parses a JSON array of payloads, skipping elements that
// are not objects. The returned count is the number of skipped elements.
func DecodeCandidates(data []byte) ([]Candidate, int, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, 0, fmt.Errorf("decode feed array: %w", err)
	}
	out := make([]Candidate, 0, len(raw))
	skipped := 0
	for _, elem := range raw {
		c, err := DecodeCandidate(elem)
		if err != nil {
			skipped++
			continue
		}
		out = append(out, c)
	}
	return out, skipped, nil
}
