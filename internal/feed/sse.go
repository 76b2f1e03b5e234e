// Pollenboard - Generative Media Studio and Community Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollenboard

package feed

import (
	"bytes"
	"errors"
	"io"
)

// MaxEventSize bounds the bytes buffered for a single event.
const MaxEventSize = 1 << 20

// ErrEventTooLarge is returned when an event exceeds MaxEventSize without a
// terminating blank line.
var ErrEventTooLarge = errors.New("event stream record exceeds size limit")

// EventDecoder splits a text/event-stream body into event payloads.
//
// Reads may end anywhere, including inside a line or a delimiter; bytes are
// held until a blank line completes the event. The payload of an event is its
// data lines joined with "\n". Comments and other fields are ignored, as are
// events with no data.
type EventDecoder struct {
	r   io.Reader
	buf []byte
	eof bool
	err error
}

// NewEventDecoder wraps r.
func NewEventDecoder(r io.Reader) *EventDecoder {
	return &EventDecoder{r: r, buf: make([]byte, 0, 4096)}
}

// Next returns the payload of the next event. It returns io.EOF after the
// last event; an unterminated trailing event is delivered before that.
func (d *EventDecoder) Next() ([]byte, error) {
	for {
		if payload, ok := d.takeEvent(); ok {
			if payload == nil {
				continue
			}
			return payload, nil
		}
		if d.eof {
			if len(bytes.TrimSpace(d.buf)) > 0 {
				payload := dataPayload(d.buf)
				d.buf = d.buf[:0]
				if payload != nil {
					return payload, nil
				}
			}
			if d.err != nil {
				return nil, d.err
			}
			return nil, io.EOF
		}
		if len(d.buf) > MaxEventSize {
			return nil, ErrEventTooLarge
		}
		d.fill()
	}
}

func (d *EventDecoder) fill() {
	chunk := make([]byte, 4096)
	n, err := d.r.Read(chunk)
	if n > 0 {
		d.buf = append(d.buf, chunk[:n]...)
		d.normalizeLineEndings()
	}
	if err != nil {
		d.eof = true
		if !errors.Is(err, io.EOF) {
			d.err = err
		}
	}
}

// normalizeLineEndings rewrites CRLF and lone CR to LF. A CR at the very end
// of the buffer is kept until the next read shows whether an LF follows.
func (d *EventDecoder) normalizeLineEndings() {
	if bytes.IndexByte(d.buf, '\r') < 0 {
		return
	}
	out := d.buf[:0]
	for i := 0; i < len(d.buf); i++ {
		c := d.buf[i]
		if c != '\r' {
			out = append(out, c)
			continue
		}
		if i+1 == len(d.buf) && !d.eof {
			out = append(out, c)
			continue
		}
		if i+1 < len(d.buf) && d.buf[i+1] == '\n' {
			continue
		}
		out = append(out, '\n')
	}
	d.buf = out
}

// takeEvent removes one complete event from the buffer. It returns ok=false
// when no delimiter is buffered yet and a nil payload for events without data.
func (d *EventDecoder) takeEvent() ([]byte, bool) {
	idx := bytes.Index(d.buf, []byte("\n\n"))
	if idx < 0 {
		return nil, false
	}
	block := d.buf[:idx]
	payload := dataPayload(block)
	rest := d.buf[idx+2:]
	d.buf = append(d.buf[:0], rest...)
	return payload, true
}

func dataPayload(block []byte) []byte {
	var out []byte
	found := false
	for _, line := range bytes.Split(block, []byte("\n")) {
		line = bytes.TrimSuffix(line, []byte("\r"))
		if len(line) == 0 || line[0] == ':' {
			continue
		}
		field, value, _ := bytes.Cut(line, []byte(":"))
		if !bytes.Equal(field, []byte("data")) {
			continue
		}
		value = bytes.TrimPrefix(value, []byte(" "))
		if found {
			out = append(out, '\n')
		}
		out = append(out, value...)
		found = true
	}
	if !found {
		return nil
	}
	if out == nil {
		out = []byte{}
	}
	return out
}
