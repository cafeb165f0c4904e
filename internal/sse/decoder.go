// Package sse decodes the OpenAI-style server-sent event stream produced by
// chat completion endpoints into incremental text deltas.
package sse

import (
	"bytes"
	"encoding/json"
)

// State is the position of the decoder between two calls to Step.
type State int

const (
	// StateAwaitingBytes means no complete line is buffered.
	StateAwaitingBytes State = iota
	// StateHaveLine means at least one complete line is buffered.
	StateHaveLine
	// StateTerminal means the [DONE] sentinel was seen. Nothing else is parsed.
	StateTerminal
)

func (s State) String() string {
	switch s {
	case StateAwaitingBytes:
		return "awaiting-bytes"
	case StateHaveLine:
		return "have-line"
	case StateTerminal:
		return "terminal"
	default:
		return "unknown"
	}
}

// EventKind distinguishes decoder output.
type EventKind int

const (
	// EventDelta carries a fragment of assistant text.
	EventDelta EventKind = iota
	// EventDone marks the [DONE] sentinel.
	EventDone
)

// Event is one unit of decoder output.
type Event struct {
	Kind EventKind
	Text string
}

const (
	dataPrefix   = "data: "
	doneSentinel = "[DONE]"
)

type chunkPayload struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

// Step appends chunk to buf and consumes every complete line it can.
//
// A data line whose JSON cannot be parsed is put back at the front of the
// returned buffer, newline included, and processing stops for this call; the
// line is retried on the next Step. After [DONE] the state is StateTerminal
// and the remaining bytes are returned untouched.
//
// Step never retains or mutates buf or chunk.
func Step(buf, chunk []byte) (rest []byte, events []Event, state State) {
	pending := make([]byte, 0, len(buf)+len(chunk))
	pending = append(pending, buf...)
	pending = append(pending, chunk...)

	for {
		idx := bytes.IndexByte(pending, '\n')
		if idx < 0 {
			return pending, events, StateAwaitingBytes
		}
		line := pending[:idx]
		after := pending[idx+1:]
		line = bytes.TrimSuffix(line, []byte{'\r'})

		ev, outcome := parseLine(line)
		switch outcome {
		case lineSkipped:
			pending = after
		case lineEvent:
			events = append(events, ev)
			pending = after
		case lineDone:
			events = append(events, Event{Kind: EventDone})
			return after, events, StateTerminal
		case lineMalformed:
			// Keep the whole line, newline included, for the next attempt.
			return pending, events, StateAwaitingBytes
		}
	}
}

type lineOutcome int

const (
	lineSkipped lineOutcome = iota
	lineEvent
	lineDone
	lineMalformed
)

func parseLine(line []byte) (Event, lineOutcome) {
	if len(line) == 0 || line[0] == ':' {
		return Event{}, lineSkipped
	}
	if !bytes.HasPrefix(line, []byte(dataPrefix)) {
		return Event{}, lineSkipped
	}
	payload := bytes.TrimSpace(line[len(dataPrefix):])
	if string(payload) == doneSentinel {
		return Event{}, lineDone
	}

	var p chunkPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return Event{}, lineMalformed
	}
	if len(p.Choices) == 0 || p.Choices[0].Delta.Content == "" {
		return Event{}, lineSkipped
	}
	return Event{Kind: EventDelta, Text: p.Choices[0].Delta.Content}, lineEvent
}
