package pos

import (
	"strings"
	"time"
)

// ScanBuffer separates scanner keyboard-wedge input from human typing.
// Characters arriving within the window accumulate into one token; a gap
// longer than the window closes the token. Human-speed keystrokes therefore
// flush one character at a time, which the interpreter's minimum-length rule
// discards.
type ScanBuffer struct {
	window time.Duration
	now    func() time.Time
	last   time.Time
	buf    strings.Builder
}

func NewScanBuffer(window time.Duration) *ScanBuffer {
	return newScanBufferWithClock(window, time.Now)
}

func newScanBufferWithClock(window time.Duration, now func() time.Time) *ScanBuffer {
	return &ScanBuffer{window: window, now: now}
}

// Push appends a character. If the gap since the previous character exceeds
// the window, the buffered token is returned completed and the new character
// starts the next one.
func (b *ScanBuffer) Push(r rune) (token string, done bool) {
	t := b.now()
	if b.buf.Len() > 0 && t.Sub(b.last) > b.window {
		token = b.buf.String()
		done = true
		b.buf.Reset()
	}
	b.buf.WriteRune(r)
	b.last = t
	return token, done
}

// Flush closes and returns the pending token, if any.
func (b *ScanBuffer) Flush() (token string, done bool) {
	if b.buf.Len() == 0 {
		return "", false
	}
	token = b.buf.String()
	b.buf.Reset()
	return token, true
}
