// Pollenboard - Generative Media Studio and Community Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollenboard

package feed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/pollenboard/internal/logging"
	"github.com/tomtom215/pollenboard/internal/metrics"
)

// TimestampLayout is the page timestamp format: RFC 3339 in UTC with
// millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Fallback reasons reported by the feed_fallbacks_total metric.
const (
	FallbackUnavailable = "unavailable"
	FallbackEmpty       = "empty"
)

// Upstream is the subset of UpstreamClient the aggregator needs.
type Upstream interface {
	FetchJSON(ctx context.Context, budget time.Duration) ([]Candidate, error)
	Stream(ctx context.Context, budget time.Duration) (<-chan Candidate, error)
}

// Options tunes page assembly.
type Options struct {
	Mode SourceMode

	// Overfetch multiplies the limit to get the collection target. 2 or 3.
	Overfetch int

	// OffsetMultiplier spaces mock seeds between pages.
	OffsetMultiplier int

	// PageCeiling is the first page that reports hasMore=false.
	PageCeiling int

	// DefaultLimit replaces a missing or non-positive limit.
	DefaultLimit int

	JSONBudget         time.Duration
	StreamBudget       time.Duration
	FirstRecordTimeout time.Duration
}

// DefaultOptions returns the production tuning.
func DefaultOptions() Options {
	return Options{
		Mode:               ModeMock,
		Overfetch:          2,
		OffsetMultiplier:   10000,
		PageCeiling:        10,
		DefaultLimit:       10,
		JSONBudget:         3 * time.Second,
		StreamBudget:       5 * time.Second,
		FirstRecordTimeout: 3 * time.Second,
	}
}

// Aggregator turns a page request into a page of displayable records. It
// keeps no state between requests.
type Aggregator struct {
	opts     Options
	upstream Upstream
	mock     *MockGenerator
	now      func() time.Time
}

// NewAggregator creates an Aggregator. upstream may be nil when the mode is
// ModeMock; in the other modes a nil upstream behaves as unavailable.
func NewAggregator(opts Options, upstream Upstream, mock *MockGenerator) *Aggregator {
	def := DefaultOptions()
	if opts.Overfetch < 2 {
		opts.Overfetch = def.Overfetch
	}
	if opts.Overfetch > 3 {
		opts.Overfetch = 3
	}
	if opts.OffsetMultiplier <= 0 {
		opts.OffsetMultiplier = def.OffsetMultiplier
	}
	if opts.PageCeiling <= 0 {
		opts.PageCeiling = def.PageCeiling
	}
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = def.DefaultLimit
	}
	if opts.JSONBudget <= 0 {
		opts.JSONBudget = def.JSONBudget
	}
	if opts.StreamBudget <= 0 {
		opts.StreamBudget = def.StreamBudget
	}
	if opts.FirstRecordTimeout <= 0 {
		opts.FirstRecordTimeout = def.FirstRecordTimeout
	}
	if mock == nil {
		mock = NewMockGenerator()
	}
	return &Aggregator{
		opts:     opts,
		upstream: upstream,
		mock:     mock,
		now:      time.Now,
	}
}

// Mode returns the configured source mode.
func (a *Aggregator) Mode() SourceMode {
	return a.opts.Mode
}

// Options returns the effective options after defaulting.
func (a *Aggregator) Options() Options {
	return a.opts
}

// BuildPage assembles one page.
//
// Upstream failures never surface: an unavailable upstream or one that yields
// nothing displayable is replaced by mock records. The returned error is only
// set for unexpected failures.
func (a *Aggregator) BuildPage(ctx context.Context, req Request) (Page, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 {
		req.Limit = a.opts.DefaultLimit
	}
	target := req.Limit * a.opts.Overfetch
	log := logging.Ctx(ctx)

	var (
		items  []Record
		source = a.opts.Mode
		err    error
	)
	switch a.opts.Mode {
	case ModeJSONPoll:
		items, err = a.collectJSON(ctx, target)
	case ModeEventStream:
		items, err = a.collectStream(ctx, target)
	default:
		source = ModeMock
		items = a.mockPage(req)
	}

	if source != ModeMock {
		switch {
		case errors.Is(err, ErrUpstreamUnavailable):
			log.Debug().Err(err).Str("mode", a.opts.Mode.String()).Msg("Upstream unavailable, serving mock records")
			metrics.RecordFallback(FallbackUnavailable)
			source, items = ModeMock, a.mockPage(req)
		case err != nil:
			return Page{}, fmt.Errorf("collect %s feed: %w", a.opts.Mode, err)
		case len(items) == 0:
			log.Debug().Str("mode", a.opts.Mode.String()).Msg("Upstream returned nothing displayable, serving mock records")
			metrics.RecordFallback(FallbackEmpty)
			source, items = ModeMock, a.mockPage(req)
		}
	}

	if ceiling := req.Limit * 2; len(items) > ceiling {
		items = items[:ceiling]
	}
	if items == nil {
		items = []Record{}
	}

	metrics.RecordFeedPage(source.String(), a.opts.Mode.String(), len(items))
	return Page{
		Items:     items,
		Timestamp: a.now().UTC().Format(TimestampLayout),
		Page:      req.Page,
		HasMore:   req.Page < a.opts.PageCeiling,
		Source:    source,
	}, nil
}

// MockBatch returns count filtered mock records for callers outside the
// page flow, such as the live relay fallback.
func (a *Aggregator) MockBatch(count int, variant bool) []Record {
	return filterRecords(a.mock.Generate(count, 0, variant))
}

func (a *Aggregator) mockPage(req Request) []Record {
	offset := (req.Page - 1) * req.Limit * a.opts.OffsetMultiplier
	return filterRecords(a.mock.Generate(req.Limit*a.opts.Overfetch, offset, req.Refresh))
}

func (a *Aggregator) collectJSON(ctx context.Context, target int) ([]Record, error) {
	if a.upstream == nil {
		return nil, fmt.Errorf("%w: no upstream configured", ErrUpstreamUnavailable)
	}
	candidates, err := a.upstream.FetchJSON(ctx, a.opts.JSONBudget)
	if err != nil {
		return nil, err
	}
	dedupe := NewDeduper(len(candidates))
	items := make([]Record, 0, target)
	for _, cand := range candidates {
		if len(items) >= target {
			break
		}
		if rec, ok := AcceptCandidate(cand, dedupe); ok {
			items = append(items, rec)
		}
	}
	return items, nil
}

// collectStream reads from the event stream until target records are
// collected, the stream closes, or no record arrives within the first-record
// timeout.
func (a *Aggregator) collectStream(ctx context.Context, target int) ([]Record, error) {
	if a.upstream == nil {
		return nil, fmt.Errorf("%w: no upstream configured", ErrUpstreamUnavailable)
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	stream, err := a.upstream.Stream(ctx, a.opts.StreamBudget)
	if err != nil {
		return nil, err
	}

	firstRecord := time.NewTimer(a.opts.FirstRecordTimeout)
	defer firstRecord.Stop()
	firstC := firstRecord.C

	dedupe := NewDeduper(target * 2)
	items := make([]Record, 0, target)
	for len(items) < target {
		select {
		case cand, ok := <-stream:
			if !ok {
				return items, nil
			}
			firstC = nil
			if rec, ok := AcceptCandidate(cand, dedupe); ok {
				items = append(items, rec)
			}
		case <-firstC:
			return nil, fmt.Errorf("%w: no record within %s", ErrUpstreamUnavailable, a.opts.FirstRecordTimeout)
		}
	}
	return items, nil
}

// AcceptCandidate normalizes cand and checks it against dedupe, counting
// the reason for every rejected record.
func AcceptCandidate(cand Candidate, dedupe *Deduper) (Record, bool) {
	rec, err := Normalize(cand)
	if err != nil {
		metrics.RecordDroppedRecord(RejectReason(err))
		return Record{}, false
	}
	if !dedupe.Add(rec) {
		metrics.RecordDroppedRecord("duplicate")
		return Record{}, false
	}
	return rec, true
}

func filterRecords(records []Record) []Record {
	out := records[:0]
	for _, r := range records {
		rec, err := Filter(r)
		if err != nil {
			metrics.RecordDroppedRecord(RejectReason(err))
			continue
		}
		out = append(out, rec)
	}
	return out
}
