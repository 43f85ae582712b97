package plan

import (
	"fmt"
	"regexp"
	"strings"
)

// Action letters. Proceed and Skip are per-file; First and Cancel steer the
// whole batch during review.
const (
	ActionProceed = "y"
	ActionSkip    = "n"
	ActionFirst   = "f"
	ActionCancel  = "c"
)

// Task is one proposed file operation. Source is relative to the card root,
// Dest relative to the destination root. Comment is advisory and never
// carries semantics.
type Task struct {
	Action  string
	Source  string
	Dest    string
	Comment string
}

// Line grammar: ACTION SRC DEST [COMMENT], single-space separated. A field
// containing whitespace (or a quote) is wrapped in double quotes with
// embedded quotes and backslashes backslash-escaped. The comment is the
// greedy remainder.
var (
	linePattern       = regexp.MustCompile(`^(\w+) ("(?:[^"\\]|\\.)*"|[^\s"]+) ("(?:[^"\\]|\\.)*"|[^\s"]+)(?: (.*))?$`)
	quotedFieldRegexp = regexp.MustCompile(`^"(?:[^"\\]|\\.)*"$`)
	whitespaceRegexp  = regexp.MustCompile(`\s`)
)

// FormatLine renders a task in the review-line grammar.
func FormatLine(t Task) string {
	var b strings.Builder
	b.WriteString(quoteField(t.Action))
	b.WriteByte(' ')
	b.WriteString(quoteField(t.Source))
	b.WriteByte(' ')
	b.WriteString(quoteField(t.Dest))
	if t.Comment != "" {
		b.WriteByte(' ')
		b.WriteString(quoteField(t.Comment))
	}
	return b.String()
}

// ParseLine parses one review line back into a task.
func ParseLine(line string) (Task, error) {
	m := linePattern.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return Task{}, fmt.Errorf("invalid line: %q", line)
	}
	task := Task{
		Action: m[1],
		Source: unquoteField(m[2]),
		Dest:   unquoteField(m[3]),
	}
	if comment := m[4]; comment != "" {
		if quotedFieldRegexp.MatchString(comment) {
			comment = unquoteField(comment)
		}
		task.Comment = comment
	}
	return task, nil
}

func quoteField(field string) string {
	if !whitespaceRegexp.MatchString(field) && !strings.Contains(field, `"`) {
		return field
	}
	escaped := strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(field)
	return `"` + escaped + `"`
}

func unquoteField(field string) string {
	if len(field) < 2 || !strings.HasPrefix(field, `"`) || !strings.HasSuffix(field, `"`) {
		return field
	}
	inner := field[1 : len(field)-1]
	var b strings.Builder
	b.Grow(len(inner))
	escaped := false
	for _, r := range inner {
		if escaped {
			b.WriteRune(r)
			escaped = false
			continue
		}
		if r == '\\' {
			escaped = true
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
