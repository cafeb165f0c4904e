package sse

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deltaLine(text string) string {
	return `data: {"choices":[{"delta":{"content":"` + text + `"}}]}` + "\n"
}

func TestStepSingleLine(t *testing.T) {
	rest, events, state := Step(nil, []byte(deltaLine("Hi")))
	assert.Empty(t, rest)
	assert.Equal(t, StateAwaitingBytes, state)
	require.Len(t, events, 1)
	assert.Equal(t, Event{Kind: EventDelta, Text: "Hi"}, events[0])
}

func TestStepSkipsCommentsBlankAndForeignLines(t *testing.T) {
	input := ": keep-alive\n\r\n\nevent: message\nid: 7\n" + deltaLine("ok")
	rest, events, _ := Step(nil, []byte(input))
	assert.Empty(t, rest)
	require.Len(t, events, 1)
	assert.Equal(t, "ok", events[0].Text)
}

func TestStepStripsCarriageReturn(t *testing.T) {
	line := strings.TrimSuffix(deltaLine("crlf"), "\n") + "\r\n"
	_, events, _ := Step(nil, []byte(line))
	require.Len(t, events, 1)
	assert.Equal(t, "crlf", events[0].Text)
}

func TestStepKeepsPartialLine(t *testing.T) {
	full := deltaLine("Hello")
	rest, events, state := Step(nil, []byte(full[:10]))
	assert.Empty(t, events)
	assert.Equal(t, StateAwaitingBytes, state)
	assert.Equal(t, full[:10], string(rest))

	rest, events, _ = Step(rest, []byte(full[10:]))
	assert.Empty(t, rest)
	require.Len(t, events, 1)
	assert.Equal(t, "Hello", events[0].Text)
}

func TestStepIgnoresEmptyDeltas(t *testing.T) {
	input := `data: {"choices":[{"delta":{"role":"assistant"}}]}` + "\n" + `data: {"choices":[]}` + "\n"
	rest, events, _ := Step(nil, []byte(input))
	assert.Empty(t, rest)
	assert.Empty(t, events)
}

func TestStepDoneIsTerminal(t *testing.T) {
	input := deltaLine("A") + "data: [DONE]\n" + deltaLine("B")
	rest, events, state := Step(nil, []byte(input))
	assert.Equal(t, StateTerminal, state)
	require.Len(t, events, 2)
	assert.Equal(t, "A", events[0].Text)
	assert.Equal(t, EventDone, events[1].Kind)
	assert.Equal(t, deltaLine("B"), string(rest))
}

func TestStepPushesBackMalformedLine(t *testing.T) {
	bad := "data: {\"choices\":[{\"delta\"\n"
	input := deltaLine("A") + bad + deltaLine("B")
	rest, events, state := Step(nil, []byte(input))

	require.Len(t, events, 1)
	assert.Equal(t, "A", events[0].Text)
	assert.Equal(t, StateAwaitingBytes, state)
	assert.Equal(t, bad+deltaLine("B"), string(rest), "malformed line must stay at the front of the buffer")
}

func TestStepDoesNotMutateInputs(t *testing.T) {
	buf := []byte("data: {\"choices\":[{\"delta\":{\"content\":\"x")
	orig := string(buf)
	_, _, _ = Step(buf, []byte("\"}}]}\n"))
	assert.Equal(t, orig, string(buf))
}

func TestDecoderSplitChunksMatchSingleChunk(t *testing.T) {
	stream := deltaLine("Hel") + ": ping\n" + deltaLine("lo, ") + deltaLine("wörld") + "data: [DONE]\n"

	var whole Decoder
	whole.Feed([]byte(stream))

	for size := 1; size <= len(stream); size++ {
		var split Decoder
		for i := 0; i < len(stream); i += size {
			end := i + size
			if end > len(stream) {
				end = len(stream)
			}
			split.Feed([]byte(stream[i:end]))
		}
		require.Equal(t, whole.Content(), split.Content(), "chunk size %d", size)
		assert.True(t, split.Done())
	}
	assert.Equal(t, "Hello, wörld", whole.Content())
}

func TestDecoderIgnoresInputAfterDone(t *testing.T) {
	var d Decoder
	d.Feed([]byte(deltaLine("A") + "data: [DONE]\n"))
	assert.Nil(t, d.Feed([]byte(deltaLine("B"))))
	assert.Equal(t, "A", d.Content())
	assert.Equal(t, StateTerminal, d.State())
}

func TestDecoderFlush(t *testing.T) {
	t.Run("trailing line without newline", func(t *testing.T) {
		var d Decoder
		d.Feed([]byte(strings.TrimSuffix(deltaLine("tail"), "\n")))
		assert.Equal(t, "", d.Content())
		events := d.Flush()
		require.Len(t, events, 1)
		assert.Equal(t, "tail", d.Content())
		assert.Zero(t, d.Malformed())
	})

	t.Run("malformed lines are counted", func(t *testing.T) {
		var d Decoder
		d.Feed([]byte(deltaLine("A") + "data: {oops\n" + deltaLine("B")))
		assert.Equal(t, "A", d.Content())
		d.Flush()
		assert.Equal(t, "AB", d.Content())
		assert.Equal(t, 1, d.Malformed())
	})
}

type chunkReader struct {
	chunks []string
	err    error
}

func (r *chunkReader) Read(p []byte) (int, error) {
	if len(r.chunks) == 0 {
		if r.err != nil {
			return 0, r.err
		}
		return 0, io.EOF
	}
	n := copy(p, r.chunks[0])
	if n < len(r.chunks[0]) {
		r.chunks[0] = r.chunks[0][n:]
	} else {
		r.chunks = r.chunks[1:]
	}
	return n, nil
}

func TestReadReportsFullTextAfterEachDelta(t *testing.T) {
	r := &chunkReader{chunks: []string{deltaLine("Eat "), deltaLine("more") + deltaLine(" greens"), "data: [DONE]\n"}}
	var updates []string
	text, err := Read(context.Background(), r, func(full string) { updates = append(updates, full) })
	require.NoError(t, err)
	assert.Equal(t, "Eat more greens", text)
	assert.Equal(t, []string{"Eat ", "Eat more", "Eat more greens"}, updates)
}

func TestReadStopsAtDone(t *testing.T) {
	r := &chunkReader{chunks: []string{deltaLine("x") + "data: [DONE]\n", deltaLine("ignored")}}
	text, err := Read(context.Background(), r, nil)
	require.NoError(t, err)
	assert.Equal(t, "x", text)
	assert.Len(t, r.chunks, 1)
}

func TestReadReturnsPartialTextOnError(t *testing.T) {
	boom := errors.New("connection reset")
	r := &chunkReader{chunks: []string{deltaLine("partial")}, err: boom}
	text, err := Read(context.Background(), r, nil)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "partial", text)
}

func TestReadHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	text, err := Read(ctx, &chunkReader{chunks: []string{deltaLine("never")}}, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, text)
}
