package plan

import (
	"testing"
)

func TestLineRoundTrip(t *testing.T) {
	cases := []Task{
		{Action: "y", Source: "IMG_0001.CR2", Dest: "2023-05-01/IMG_0001.CR2"},
		{Action: "n", Source: "IMG_0001.CR2", Dest: "2023-05-01/IMG_0001.CR2", Comment: "in 2023-05-01"},
		{Action: "y", Source: "My Photos/IMG 1.jpg", Dest: "2023-05-01/IMG 1.jpg"},
		{Action: "y", Source: `odd"name.jpg`, Dest: "2023-05-01/odd\"name.jpg"},
		{Action: "f", Source: "a.jpg", Dest: "d/a.jpg", Comment: `said "keep this"`},
		{Action: "c", Source: "a.jpg", Dest: "d/a.jpg", Comment: "size: 123, time: 2023-05-01T10:00:00"},
		{Action: "y", Source: "back\\slash.jpg", Dest: "d/back\\slash.jpg"},
	}

	for _, want := range cases {
		line := FormatLine(want)
		got, err := ParseLine(line)
		if err != nil {
			t.Errorf("ParseLine(%q) failed: %v", line, err)
			continue
		}
		if got != want {
			t.Errorf("round trip mismatch:\n line %q\n got  %+v\n want %+v", line, got, want)
		}
	}
}

func TestFormatLinePlainFields(t *testing.T) {
	line := FormatLine(Task{Action: "y", Source: "IMG_0001.CR2", Dest: "2023-05-01/IMG_0001.CR2"})
	if line != "y IMG_0001.CR2 2023-05-01/IMG_0001.CR2" {
		t.Errorf("unexpected line %q", line)
	}
}

func TestParseLineBareComment(t *testing.T) {
	got, err := ParseLine("n IMG_0001.CR2 2023-05-01/IMG_0001.CR2 in 2023-05-01")
	if err != nil {
		t.Fatalf("ParseLine failed: %v", err)
	}
	if got.Comment != "in 2023-05-01" {
		t.Errorf("comment = %q", got.Comment)
	}
}

func TestParseLineQuotedFields(t *testing.T) {
	got, err := ParseLine(`y "My Photos/IMG 1.jpg" "2023-05-01/IMG 1.jpg"`)
	if err != nil {
		t.Fatalf("ParseLine failed: %v", err)
	}
	if got.Source != "My Photos/IMG 1.jpg" || got.Dest != "2023-05-01/IMG 1.jpg" {
		t.Errorf("unexpected task %+v", got)
	}
}

func TestParseLineInvalid(t *testing.T) {
	for _, line := range []string{
		"",
		"y",
		"y onlyone",
		`y "unterminated src.jpg`,
	} {
		if _, err := ParseLine(line); err == nil {
			t.Errorf("expected parse error for %q", line)
		}
	}
}
