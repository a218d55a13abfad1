package runner

import (
	"strings"
	"time"
)

// StampLayout is the capture-time prefix written in front of every console line.
const StampLayout = "[15:04:05] "

// SplitLines splits text after each line terminator (\n, \r\n or \r),
// keeping the terminators. A trailing segment without a terminator is
// returned as-is. Empty input yields no segments.
func SplitLines(text string) []string {
	var segments []string
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			segments = append(segments, text[start:i+1])
			start = i + 1
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			segments = append(segments, text[start:i+1])
			start = i + 1
		}
	}
	if start < len(text) {
		segments = append(segments, text[start:])
	}
	return segments
}

// StampChunk prefixes every line of a freshly read output chunk with the
// capture time. Line boundaries are preserved exactly.
func StampChunk(text string, at time.Time) string {
	stamp := at.Format(StampLayout)
	var b strings.Builder
	for _, seg := range SplitLines(text) {
		b.WriteString(stamp)
		b.WriteString(seg)
	}
	return b.String()
}

// StampMessage formats a status message for the console: every line gets
// the time prefix and the lines are joined with "\n". An empty message
// produces a single bare stamp.
func StampMessage(text string, at time.Time) string {
	stamp := at.Format(StampLayout)
	segs := SplitLines(text)
	if len(segs) == 0 {
		return stamp
	}
	lines := make([]string, len(segs))
	for i, seg := range segs {
		lines[i] = stamp + strings.TrimRight(seg, "\r\n")
	}
	return strings.Join(lines, "\n")
}

// Stamper stamps the consecutive chunks of one output stream. A "\r\n"
// split across two reads stays a single terminator instead of producing a
// stamped line holding only "\n".
type Stamper struct {
	pendingCR bool
}

// Stamp is StampChunk for the next chunk of the stream.
func (s *Stamper) Stamp(text string, at time.Time) string {
	var lead string
	if s.pendingCR && strings.HasPrefix(text, "\n") {
		lead, text = "\n", text[1:]
	}
	s.pendingCR = strings.HasSuffix(text, "\r")
	return lead + StampChunk(text, at)
}
