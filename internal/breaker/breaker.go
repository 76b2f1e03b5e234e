// Pollenboard - Generative Media Studio and Community Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollenboard

// Package breaker wraps sony/gobreaker with Prometheus instrumentation and
// structured logging so every upstream integration reports breaker state the
// same way.
package breaker

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/pollenboard/internal/logging"
	"github.com/tomtom215/pollenboard/internal/metrics"
)

// Settings configures a Breaker.
type Settings struct {
	// Name labels metrics and log lines.
	Name string

	// MaxRequests is the number of probes allowed while half-open.
	// Default: 3
	MaxRequests uint32

	// Interval resets the closed-state counts. Default: 1m
	Interval time.Duration

	// Timeout is how long the breaker stays open before probing. Default: 2m
	Timeout time.Duration

	// MinRequests is the sample size required before the breaker may trip.
	// Default: 10
	MinRequests uint32

	// FailureRatio trips the breaker once reached. Default: 0.6
	FailureRatio float64
}

// DefaultSettings returns the breaker tuning used for upstream HTTP APIs:
// opens after a 60% failure rate over at least 10 requests, probes again
// after 2 minutes.
func DefaultSettings(name string) Settings {
	return Settings{
		Name:         name,
		MaxRequests:  3,
		Interval:     time.Minute,
		Timeout:      2 * time.Minute,
		MinRequests:  10,
		FailureRatio: 0.6,
	}
}

// Breaker guards calls that return a T.
//
// The breaker uses real time for its interval and timeout; tests exercise it
// through request counts rather than waiting out the timeout.
type Breaker[T any] struct {
	cb   *gobreaker.CircuitBreaker[T]
	name string
}

// New creates a Breaker. Zero-valued settings fall back to DefaultSettings.
func New[T any](s Settings) *Breaker[T] {
	def := DefaultSettings(s.Name)
	if s.MaxRequests == 0 {
		s.MaxRequests = def.MaxRequests
	}
	if s.Interval == 0 {
		s.Interval = def.Interval
	}
	if s.Timeout == 0 {
		s.Timeout = def.Timeout
	}
	if s.MinRequests == 0 {
		s.MinRequests = def.MinRequests
	}
	if s.FailureRatio == 0 {
		s.FailureRatio = def.FailureRatio
	}

	metrics.CircuitBreakerState.WithLabelValues(s.Name).Set(0)
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(s.Name).Set(0)

	log := logging.WithComponent("breaker")

	cb := gobreaker.NewCircuitBreaker[T](gobreaker.Settings{
		Name:        s.Name,
		MaxRequests: s.MaxRequests,
		Interval:    s.Interval,
		Timeout:     s.Timeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < s.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= s.FailureRatio
			if shouldTrip {
				log.Warn().
					Str("name", s.Name).
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("Opening circuit")
			}
			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := StateString(from)
			toStr := StateString(to)

			log.Info().Str("name", name).Str("from", fromStr).Str("to", toStr).Msg("Circuit state transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},

		// A caller giving up is not a fault of the remote side.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})

	return &Breaker[T]{cb: cb, name: s.Name}
}

// Name returns the breaker name.
func (b *Breaker[T]) Name() string {
	return b.name
}

// State returns the current state as "closed", "half-open" or "open".
func (b *Breaker[T]) State() string {
	return StateString(b.cb.State())
}

// Execute runs fn under breaker protection and records the outcome.
func (b *Breaker[T]) Execute(fn func() (T, error)) (T, error) {
	result, err := b.cb.Execute(fn)
	if err != nil {
		if IsRejection(err) {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
			return result, err
		}
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
		counts := b.cb.Counts()
		metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(float64(counts.ConsecutiveFailures))
		return result, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(0)
	return result, nil
}

// IsRejection reports whether err came from the breaker itself rather than
// the protected call.
func IsRejection(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

// StateString converts a breaker state for logging.
func StateString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
