package tui

import (
	"regexp"
	"strings"
)

// keywordClass identifies a group of console keywords drawn in one colour.
type keywordClass int

const (
	keywordNone keywordClass = iota - 1
	keywordError
	keywordWarning
	keywordSuccess
	keywordInfo
	keywordFailure
	keywordClasses
)

// keywordRules are applied in order; a later match recolours an earlier one.
var keywordRules = []struct {
	class keywordClass
	re    *regexp.Regexp
}{
	{keywordError, regexp.MustCompile(`(?i)\bERROR\b`)},
	{keywordWarning, regexp.MustCompile(`(?i)\bWARNING\b`)},
	{keywordSuccess, regexp.MustCompile(`(?i)\bSUCCESS\b|\bDONE\b`)},
	{keywordInfo, regexp.MustCompile(`(?i)\bINFO\b`)},
	{keywordFailure, regexp.MustCompile(`(?i)Traceback|Exception|Failed`)},
}

// span is a highlighted byte range of a line.
type span struct {
	start, end int
	class      keywordClass
}

// keywordSpans returns the highlighted ranges of line, in order and
// non-overlapping.
func keywordSpans(line string) []span {
	classes := make([]keywordClass, len(line))
	for i := range classes {
		classes[i] = keywordNone
	}
	found := false
	for _, rule := range keywordRules {
		for _, m := range rule.re.FindAllStringIndex(line, -1) {
			for i := m[0]; i < m[1]; i++ {
				classes[i] = rule.class
			}
			found = true
		}
	}
	if !found {
		return nil
	}

	var spans []span
	for i := 0; i < len(classes); {
		j := i
		for j < len(classes) && classes[j] == classes[i] {
			j++
		}
		if classes[i] != keywordNone {
			spans = append(spans, span{start: i, end: j, class: classes[i]})
		}
		i = j
	}
	return spans
}

// normalizeNewlines turns "\r\n" and lone "\r" into "\n" so that terminal
// output renders as separate lines in the viewport.
func normalizeNewlines(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

// highlight renders console text with keyword colours from theme.
func highlight(text string, theme Theme) string {
	lines := strings.Split(normalizeNewlines(text), "\n")
	for i, line := range lines {
		spans := keywordSpans(line)
		if spans == nil {
			continue
		}
		var b strings.Builder
		last := 0
		for _, s := range spans {
			b.WriteString(line[last:s.start])
			b.WriteString(theme.Keywords[s.class].Render(line[s.start:s.end]))
			last = s.end
		}
		b.WriteString(line[last:])
		lines[i] = b.String()
	}
	return strings.Join(lines, "\n")
}
