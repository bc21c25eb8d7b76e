package task

import "testing"

func TestHasTag(t *testing.T) {
	t.Parallel()

	record := Task{Tags: []string{"bug", "auth"}}

	if !record.HasTag("auth") {
		t.Error("expected auth to match")
	}

	if record.HasTag("Auth") {
		t.Error("tag matching is case-sensitive")
	}

	var untagged Task
	if untagged.HasTag("bug") {
		t.Error("expected no match on an untagged task")
	}
}

func TestSummary(t *testing.T) {
	t.Parallel()

	record := Task{ID: 7, Title: "Fix login bug", Status: StatusInProgress, Priority: 5}

	got := record.Summary()
	want := "ID: 7 | Title: Fix login bug | Status: in-progress | Priority: 5"

	if got != want {
		t.Errorf("Summary()=%q, want=%q", got, want)
	}
}

func TestMatchesText(t *testing.T) {
	t.Parallel()

	record := Task{Title: "Refactor parser", Description: "Split the tokenizer"}

	cases := []struct {
		text string
		want bool
	}{
		{"parser", true},
		{"PARSER", true},
		{"tokenizer", true},
		{"Split the", true},
		{"compiler", false},
		{"", true},
	}

	for _, tc := range cases {
		if got := record.MatchesText(tc.text); got != tc.want {
			t.Errorf("MatchesText(%q)=%v, want=%v", tc.text, got, tc.want)
		}
	}
}
