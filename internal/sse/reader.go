package sse

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
)

// Decoder accumulates assistant text across calls to Feed.
// It is not safe for concurrent use.
type Decoder struct {
	buf       []byte
	state     State
	content   strings.Builder
	malformed int
}

// Feed decodes a chunk and returns the events it produced. After the stream
// has terminated, Feed ignores further input.
func (d *Decoder) Feed(chunk []byte) []Event {
	if d.state == StateTerminal {
		return nil
	}
	rest, events, state := Step(d.buf, chunk)
	d.buf, d.state = rest, state
	for _, ev := range events {
		if ev.Kind == EventDelta {
			d.content.WriteString(ev.Text)
		}
	}
	return events
}

// Flush finishes the stream. It makes one last pass over buffered lines,
// including a trailing line without a newline. Lines that still fail to
// parse are dropped and counted by Malformed.
func (d *Decoder) Flush() []Event {
	if d.state == StateTerminal || len(d.buf) == 0 {
		d.buf = nil
		return nil
	}
	pending := d.buf
	d.buf = nil
	if !bytes.HasSuffix(pending, []byte{'\n'}) {
		pending = append(pending, '\n')
	}

	var out []Event
	for len(pending) > 0 {
		rest, events, state := Step(nil, pending)
		out = append(out, events...)
		for _, ev := range events {
			if ev.Kind == EventDelta {
				d.content.WriteString(ev.Text)
			}
		}
		if state == StateTerminal {
			d.state = StateTerminal
			return out
		}
		if len(rest) == 0 {
			break
		}
		// The head line is malformed; drop it and continue.
		idx := bytes.IndexByte(rest, '\n')
		d.malformed++
		pending = rest[idx+1:]
	}
	return out
}

// Content returns the text accumulated so far.
func (d *Decoder) Content() string { return d.content.String() }

// Done reports whether the [DONE] sentinel was seen.
func (d *Decoder) Done() bool { return d.state == StateTerminal }

// State returns the decoder state after the last Feed.
func (d *Decoder) State() State { return d.state }

// Malformed returns how many lines Flush had to drop.
func (d *Decoder) Malformed() int { return d.malformed }

const readChunkSize = 4096

// Read decodes r until [DONE], EOF or ctx cancellation. onDelta, when not
// nil, receives the full accumulated text after each delta. The accumulated
// text is returned even when an error stops the stream early.
func Read(ctx context.Context, r io.Reader, onDelta func(full string)) (string, error) {
	var dec Decoder
	buf := make([]byte, readChunkSize)
	for {
		if err := ctx.Err(); err != nil {
			return dec.Content(), err
		}
		n, err := r.Read(buf)
		if n > 0 {
			base := dec.Content()
			notify(base, dec.Feed(buf[:n]), onDelta)
			if dec.Done() {
				return dec.Content(), nil
			}
		}
		if errors.Is(err, io.EOF) {
			base := dec.Content()
			notify(base, dec.Flush(), onDelta)
			return dec.Content(), nil
		}
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return dec.Content(), ctxErr
			}
			return dec.Content(), err
		}
	}
}

func notify(base string, events []Event, onDelta func(string)) {
	if onDelta == nil {
		return
	}
	full := base
	for _, ev := range events {
		if ev.Kind == EventDelta {
			full += ev.Text
			onDelta(full)
		}
	}
}
