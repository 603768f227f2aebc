package pos

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (f *fakeClock) now() time.Time {
	return f.t
}

func (f *fakeClock) advance(d time.Duration) {
	f.t = f.t.Add(d)
}

func TestScanBuffer_RapidStreamBuildsOneToken(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	buf := newScanBufferWithClock(200*time.Millisecond, clock.now)

	for _, r := range "6221001" {
		_, done := buf.Push(r)
		assert.False(t, done)
		clock.advance(10 * time.Millisecond)
	}

	token, done := buf.Flush()
	require.True(t, done)
	assert.Equal(t, "6221001", token)
}

func TestScanBuffer_GapClosesToken(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	buf := newScanBufferWithClock(200*time.Millisecond, clock.now)

	for _, r := range "62210" {
		buf.Push(r)
		clock.advance(10 * time.Millisecond)
	}

	// Human pause, then typing resumes: the scanned token flushes complete
	clock.advance(time.Second)
	token, done := buf.Push('x')

	require.True(t, done)
	assert.Equal(t, "62210", token)

	// The new character starts the next token
	token, done = buf.Flush()
	require.True(t, done)
	assert.Equal(t, "x", token)
}

func TestScanBuffer_HumanTypingYieldsShortTokens(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	buf := newScanBufferWithClock(200*time.Millisecond, clock.now)

	// Each keystroke arrives a second apart; every completed token is a
	// single character, too short for the interpreter to treat as a scan.
	var tokens []string
	for _, r := range "abc" {
		if token, done := buf.Push(r); done {
			tokens = append(tokens, token)
		}
		clock.advance(time.Second)
	}

	require.Len(t, tokens, 2)
	for _, token := range tokens {
		assert.Less(t, len(token), minScanLength)
	}
}

func TestScanBuffer_FlushEmpty(t *testing.T) {
	buf := NewScanBuffer(200 * time.Millisecond)

	_, done := buf.Flush()
	assert.False(t, done)
}
