// Pollenboard - Generative Media Studio and Community Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollenboard

package feed

import (
	"fmt"
	"strings"
)

// SourceMode selects where the records of a page come from.
type SourceMode int

const (
	// ModeMock serves synthesized records only.
	ModeMock SourceMode = iota
	// ModeJSONPoll fetches one JSON array from the upstream feed.
	ModeJSONPoll
	// ModeEventStream collects records from the upstream event stream.
	ModeEventStream
)

// String returns the configuration name of the mode.
func (m SourceMode) String() string {
	switch m {
	case ModeMock:
		return "mock"
	case ModeJSONPoll:
		return "json"
	case ModeEventStream:
		return "stream"
	default:
		return "unknown"
	}
}

// ParseSourceMode converts a configuration value into a SourceMode.
func ParseSourceMode(s string) (SourceMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mock", "":
		return ModeMock, nil
	case "json", "jsonpoll", "poll":
		return ModeJSONPoll, nil
	case "stream", "sse", "eventstream":
		return ModeEventStream, nil
	default:
		return ModeMock, fmt.Errorf("unknown feed mode %q (expected mock, json or stream)", s)
	}
}

// TimingStep is one entry of a record's generation timeline.
type TimingStep struct {
	Step      string `json:"step"`
	Timestamp int64  `json:"timestamp"`
}

// Record is one displayable generated-image event.
//
// Records are built by Normalize or by the mock generator and are not
// modified afterwards.
type Record struct {
	Width          int          `json:"width"`
	Height         int          `json:"height"`
	Seed           int64        `json:"seed"`
	Model          string       `json:"model"`
	Enhance        bool         `json:"enhance"`
	NoLogo         bool         `json:"nologo"`
	NegativePrompt string       `json:"negative_prompt"`
	Quality        string       `json:"quality,omitempty"`
	ImageURL       string       `json:"imageURL"`
	ThumbnailURL   string       `json:"thumbnailURL,omitempty"`
	Prompt         string       `json:"prompt"`
	IsChild        bool         `json:"isChild"`
	IsMature       bool         `json:"isMature"`
	NSFW           bool         `json:"nsfw"`
	Status         string       `json:"status"`
	TimingInfo     []TimingStep `json:"timingInfo"`
}

// Page is the response envelope for one feed request.
type Page struct {
	Items     []Record `json:"items"`
	Timestamp string   `json:"timestamp"`
	Page      int      `json:"page"`
	HasMore   bool     `json:"hasMore"`

	// Source is the producer that supplied Items. It is reported in a
	// response header, not in the body.
	Source SourceMode `json:"-"`
}

// Request holds the parameters of one page request.
type Request struct {
	Page    int
	Limit   int
	Refresh bool
}
