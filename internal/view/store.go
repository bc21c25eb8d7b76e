package view

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"taskproc/internal/task"
)

// Store owns the canonical record set and the current view derived from it.
//
// The canonical store is replaced wholesale on Load and never mutated by view
// operations. The view is an ordered slice of references into the canonical
// store; filters narrow it in place, sorts reorder it in place. Secondary
// indices (status, tag) are rebuilt on Load and kept as caches only.
//
// Not safe for concurrent use; each CLI invocation is single-threaded.
type Store struct {
	tasks map[int]*task.Task
	ids   []int // canonical iteration order (ascending id)
	view  []*task.Task

	statusIndex map[string][]*task.Task
	tagIndex    map[string][]*task.Task
}

// NewStore returns an empty store with no records loaded.
func NewStore() *Store {
	return &Store{
		tasks:       make(map[int]*task.Task),
		statusIndex: make(map[string][]*task.Task),
		tagIndex:    make(map[string][]*task.Task),
	}
}

// Load replaces the canonical store with tasks, rebuilds the view to contain
// every record in ascending id order, and rebuilds the secondary indices.
// Any prior filter or sort effect is discarded. Duplicate ids keep the last
// occurrence.
func (s *Store) Load(tasks []task.Task) {
	s.tasks = make(map[int]*task.Task, len(tasks))

	for i := range tasks {
		record := tasks[i]
		s.tasks[record.ID] = &record
	}

	s.ids = make([]int, 0, len(s.tasks))
	for id := range s.tasks {
		s.ids = append(s.ids, id)
	}

	sort.Ints(s.ids)

	s.ResetView()
	s.rebuildIndices()
}

// ResetView reinitializes the view to all canonical records in id order.
// The canonical store is untouched.
func (s *Store) ResetView() {
	s.view = make([]*task.Task, 0, len(s.ids))
	for _, id := range s.ids {
		s.view = append(s.view, s.tasks[id])
	}
}

// ApplyFilter removes every view entry that does not satisfy spec. Filtering
// is cumulative: repeated calls progressively narrow the view, and surviving
// records keep their relative order.
func (s *Store) ApplyFilter(spec FilterSpec) {
	predicate := makePredicate(spec)
	s.narrow(predicate)
}

// ApplySort reorders the view in place. The sort is stable: records with
// equal keys keep their prior relative order.
func (s *Store) ApplySort(spec SortSpec) {
	less := makeLess(spec)
	sort.SliceStable(s.view, func(i, j int) bool {
		return less(s.view[i], s.view[j])
	})
}

// FilterByTag narrows the view to records whose tag list contains tag.
func (s *Store) FilterByTag(tag string) {
	s.narrow(func(t *task.Task) bool {
		return t.HasTag(tag)
	})
}

// FilterNoTags narrows the view to records with no tags at all.
func (s *Store) FilterNoTags() {
	s.narrow(func(t *task.Task) bool {
		return len(t.Tags) == 0
	})
}

// SearchText narrows the view to records whose title or description contains
// text as a case-insensitive substring.
func (s *Store) SearchText(text string) {
	s.narrow(func(t *task.Task) bool {
		return t.MatchesText(text)
	})
}

// ReplayHistory resets the view and re-applies actions in order, re-parsing
// each payload. Load actions are historical markers and are skipped (the
// session coordinator handles file loading). An action whose payload fails
// to parse is skipped with a diagnostic on warn; replay never aborts.
func (s *Store) ReplayHistory(actions []Action, warn io.Writer) {
	s.ResetView()

	for _, action := range actions {
		switch action.Kind {
		case ActionFilter:
			spec, err := ParseFilter(action.Payload)
			if err != nil {
				fprintf(warn, "replay: skipping filter %q: %v\n", action.Payload, err)

				continue
			}

			s.ApplyFilter(spec)
		case ActionSort:
			spec, warning, err := ParseSort(action.Payload)
			if err != nil {
				fprintf(warn, "replay: skipping sort %q: %v\n", action.Payload, err)

				continue
			}

			if warning != "" {
				fprintf(warn, "replay: sort %q: %s\n", action.Payload, warning)
			}

			s.ApplySort(spec)
		case ActionFindByTag:
			s.FilterByTag(action.Payload)
		case ActionResetFilters:
			s.ResetView()
		case ActionLoad:
			// Historical marker only.
		default:
			fprintf(warn, "replay: skipping unknown action %q\n", action.Kind)
		}
	}
}

// View returns the current view. The slice and the records it references are
// shared; callers must not mutate them. References stay valid until the next
// Load.
func (s *Store) View() []*task.Task {
	return s.view
}

// TotalCount returns the canonical record count, ignoring filters.
func (s *Store) TotalCount() int {
	return len(s.tasks)
}

// ViewCount returns the number of records in the current view.
func (s *Store) ViewCount() int {
	return len(s.view)
}

// Get returns the canonical record with the given id, or nil if absent.
func (s *Store) Get(id int) *task.Task {
	return s.tasks[id]
}

// Empty reports whether no records are loaded.
func (s *Store) Empty() bool {
	return len(s.tasks) == 0
}

// TasksByStatus returns the index entry for status (cache, id order).
func (s *Store) TasksByStatus(status string) []*task.Task {
	return s.statusIndex[status]
}

// TasksByTag returns the index entry for tag (cache, id order).
func (s *Store) TasksByTag(tag string) []*task.Task {
	return s.tagIndex[tag]
}

// narrow keeps only view entries satisfying keep, preserving order.
func (s *Store) narrow(keep func(*task.Task) bool) {
	filtered := s.view[:0]

	for _, record := range s.view {
		if keep(record) {
			filtered = append(filtered, record)
		}
	}

	s.view = filtered
}

func (s *Store) rebuildIndices() {
	s.statusIndex = make(map[string][]*task.Task)
	s.tagIndex = make(map[string][]*task.Task)

	for _, id := range s.ids {
		record := s.tasks[id]
		s.statusIndex[record.Status] = append(s.statusIndex[record.Status], record)

		for _, tag := range record.Tags {
			s.tagIndex[tag] = append(s.tagIndex[tag], record)
		}
	}
}

// makePredicate builds the match function for a parsed filter. ParseFilter
// already rejected unsupported field/operator combinations and non-numeric
// values for numeric fields, so the zero results here only cover payloads
// replayed from an older state file.
func makePredicate(spec FilterSpec) func(*task.Task) bool {
	switch spec.Field {
	case FieldID:
		target, err := strconv.Atoi(spec.Value)
		if err != nil {
			return matchNothing
		}

		return func(t *task.Task) bool { return compareInt(t.ID, target, spec.Op) }
	case FieldPriority:
		target, err := strconv.Atoi(spec.Value)
		if err != nil {
			return matchNothing
		}

		return func(t *task.Task) bool { return compareInt(t.Priority, target, spec.Op) }
	case FieldTitle:
		return func(t *task.Task) bool { return compareString(t.Title, spec.Value, spec.Op) }
	case FieldStatus:
		return func(t *task.Task) bool { return compareString(t.Status, spec.Value, spec.Op) }
	case FieldCreatedDate:
		return func(t *task.Task) bool { return compareString(t.CreatedDate, spec.Value, spec.Op) }
	case FieldDueDate:
		// Records without a due date never match, whatever the operator.
		return func(t *task.Task) bool {
			return t.DueDate != "" && compareString(t.DueDate, spec.Value, spec.Op)
		}
	case FieldAssignee:
		return func(t *task.Task) bool {
			return t.Assignee != "" && compareString(t.Assignee, spec.Value, spec.Op)
		}
	case FieldDescription:
		return func(t *task.Task) bool {
			return t.Description != "" && compareString(t.Description, spec.Value, spec.Op)
		}
	default:
		return matchNothing
	}
}

func matchNothing(*task.Task) bool { return false }

func compareInt(have, want int, op FilterOp) bool {
	switch op {
	case OpEqual:
		return have == want
	case OpNotEqual:
		return have != want
	case OpGreater:
		return have > want
	case OpGreaterOrEqual:
		return have >= want
	case OpLess:
		return have < want
	case OpLessOrEqual:
		return have <= want
	default:
		return false
	}
}

// compareString uses byte-wise lexical order, which is the correct ordering
// for ISO-8601 date strings.
func compareString(have, want string, op FilterOp) bool {
	switch op {
	case OpEqual:
		return have == want
	case OpNotEqual:
		return have != want
	case OpGreater:
		return have > want
	case OpGreaterOrEqual:
		return have >= want
	case OpLess:
		return have < want
	case OpLessOrEqual:
		return have <= want
	default:
		return false
	}
}

// makeLess builds the comparator for a sort spec. Records missing an optional
// key (due_date) sort after all dated records in either direction; equal keys
// rely on sort stability for their relative order.
func makeLess(spec SortSpec) func(a, b *task.Task) bool {
	desc := spec.Direction == Descending

	switch spec.Field {
	case FieldPriority:
		return func(a, b *task.Task) bool { return lessInt(a.Priority, b.Priority, desc) }
	case FieldTitle:
		return func(a, b *task.Task) bool { return lessString(a.Title, b.Title, desc) }
	case FieldStatus:
		return func(a, b *task.Task) bool { return lessString(a.Status, b.Status, desc) }
	case FieldCreatedDate:
		return func(a, b *task.Task) bool { return lessString(a.CreatedDate, b.CreatedDate, desc) }
	case FieldDueDate:
		return func(a, b *task.Task) bool {
			if a.DueDate == "" || b.DueDate == "" {
				// Missing-last in both directions.
				return b.DueDate == "" && a.DueDate != ""
			}

			return lessString(a.DueDate, b.DueDate, desc)
		}
	default:
		return func(a, b *task.Task) bool { return lessInt(a.ID, b.ID, desc) }
	}
}

func lessInt(a, b int, desc bool) bool {
	if desc {
		return a > b
	}

	return a < b
}

func lessString(a, b string, desc bool) bool {
	if desc {
		return a > b
	}

	return a < b
}

func fprintf(w io.Writer, format string, a ...any) {
	if w != nil {
		_, _ = fmt.Fprintf(w, format, a...)
	}
}
