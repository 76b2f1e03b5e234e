// Pollenboard - Generative Media Studio and Community Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollenboard

/*
Package feed assembles pages of the public generated-image feed.

A page is built by the Aggregator from one of three sources:

  - ModeMock: records synthesized by MockGenerator
  - ModeJSONPoll: one JSON array fetched by UpstreamClient.FetchJSON
  - ModeEventStream: records collected from UpstreamClient.Stream until the
    target count, the stream budget or the first-record timeout

Every upstream candidate passes through Normalize, which rejects anything
without an image URL or prompt and anything flagged nsfw, child, mature,
private or nofeed. An unavailable upstream, or one that yields nothing
displayable, is silently replaced by mock records, so callers always get a
page.

Upstream payloads are decoded into Candidate values built from loose field
types. A field of the wrong JSON type is treated as absent instead of failing
the whole record.

Usage:

	client := feed.NewUpstreamClient(feed.UpstreamConfig{})
	agg := feed.NewAggregator(feed.Options{Mode: feed.ModeEventStream}, client, nil)
	page, err := agg.BuildPage(ctx, feed.Request{Page: 1, Limit: 10})

Thread Safety:

UpstreamClient, MockGenerator and Aggregator are safe for concurrent use.
Deduper and EventDecoder belong to a single goroutine.
*/
package feed
