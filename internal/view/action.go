package view

// ActionKind names a recorded view-transforming operation. The set is closed:
// the durable session file only ever contains these values, and unknown values
// found on disk are skipped so newer tools can extend the vocabulary.
type ActionKind string

// Recorded action kinds.
const (
	ActionLoad         ActionKind = "load"
	ActionFilter       ActionKind = "filter"
	ActionSort         ActionKind = "sort"
	ActionResetFilters ActionKind = "reset-filters"
	ActionFindByTag    ActionKind = "find-by-tag"
)

// Action is one recorded view transformation. Payload is the raw expression
// as the user typed it, not the parsed spec: replay re-parses it, so the
// durable format stays independent of the spec types.
type Action struct {
	Kind    ActionKind `json:"type"`
	Payload string     `json:"payload"`
}

// IsKnownActionKind reports whether kind is part of the recorded vocabulary.
func IsKnownActionKind(kind ActionKind) bool {
	switch kind {
	case ActionLoad, ActionFilter, ActionSort, ActionResetFilters, ActionFindByTag:
		return true
	default:
		return false
	}
}
