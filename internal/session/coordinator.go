package session

import (
	"fmt"
	"io"

	"taskproc/internal/reader"
	"taskproc/internal/task"
	"taskproc/internal/view"
)

// Coordinator wires the readers, the view store, and the ledger into one
// session. On Restore it rebuilds the previous invocation's view by
// re-reading the recorded source file and replaying the recorded actions; on
// each view-transforming command it applies the change and appends it to the
// ledger.
type Coordinator struct {
	store   *view.Store
	ledger  *Ledger
	readers []reader.Reader
	warn    io.Writer
}

// NewCoordinator creates a session over ledger using the given readers.
// Non-fatal diagnostics are written to warn (may be nil).
func NewCoordinator(readers []reader.Reader, ledger *Ledger, warn io.Writer) *Coordinator {
	return &Coordinator{
		store:   view.NewStore(),
		ledger:  ledger,
		readers: readers,
		warn:    warn,
	}
}

// Store exposes the view store for read commands.
func (c *Coordinator) Store() *view.Store {
	return c.store
}

// Source returns the session's source file path, "" if none.
func (c *Coordinator) Source() string {
	return c.ledger.Source()
}

// History returns the recorded actions.
func (c *Coordinator) History() []view.Action {
	return c.ledger.History()
}

// Restore reconstructs the previous session: load the ledger, re-read the
// recorded source file, and replay the recorded actions on top. Every failure
// degrades to an empty session with a warning; startup never fails here.
func (c *Coordinator) Restore() {
	found, err := c.ledger.Load()
	if err != nil {
		c.warnf("unable to read session state: %v", err)

		return
	}

	if !found {
		return
	}

	tasks, err := c.readTasks(c.ledger.Source())
	if err != nil {
		c.warnf("unable to restore session from %s: %v", c.ledger.Source(), err)

		return
	}

	c.store.Load(tasks)
	c.store.ReplayHistory(c.ledger.History(), c.warn)
}

// LoadFromFile parses path with the first capable reader and installs the
// result as the new canonical data. On any failure (unsupported format, read
// error, zero records) the prior in-memory and durable state are untouched.
// On success the ledger records path with an empty history and persists.
func (c *Coordinator) LoadFromFile(path string) error {
	tasks, err := c.readTasks(path)
	if err != nil {
		return err
	}

	c.store.Load(tasks)
	c.ledger.SetSource(path)

	if err := c.ledger.Persist(); err != nil {
		return err
	}

	return nil
}

// Reload re-reads the current source file from disk, refreshing the raw data
// without replaying history. If no source is known in memory it first tries
// to recover one from the durable ledger.
func (c *Coordinator) Reload() error {
	if c.ledger.Source() == "" {
		_, err := c.ledger.Load()
		if err != nil {
			return err
		}
	}

	if c.ledger.Source() == "" {
		return task.ErrNoSourceFile
	}

	return c.LoadFromFile(c.ledger.Source())
}

// ApplyFilter parses text as a filter expression, narrows the view, and
// records the action. A parse failure leaves all state unchanged. A persist
// failure is reported as a warning; the in-memory narrowing stands.
func (c *Coordinator) ApplyFilter(text string) error {
	spec, err := view.ParseFilter(text)
	if err != nil {
		return fmt.Errorf("invalid filter expression: %w", err)
	}

	c.store.ApplyFilter(spec)
	c.record(view.Action{Kind: view.ActionFilter, Payload: text})

	return nil
}

// ApplySort parses text as a sort expression, reorders the view, and records
// the action. Same failure semantics as ApplyFilter.
func (c *Coordinator) ApplySort(text string) error {
	spec, warning, err := view.ParseSort(text)
	if err != nil {
		return fmt.Errorf("invalid sort expression: %w", err)
	}

	if warning != "" {
		c.warnf("sort %q: %s", text, warning)
	}

	c.store.ApplySort(spec)
	c.record(view.Action{Kind: view.ActionSort, Payload: text})

	return nil
}

// FindByTag narrows the view to records carrying tag and records the action.
func (c *Coordinator) FindByTag(tag string) {
	c.store.FilterByTag(tag)
	c.record(view.Action{Kind: view.ActionFindByTag, Payload: tag})
}

// FindNoTags narrows the view to untagged records. The ledger vocabulary has
// no kind for it, so the narrowing is not recorded.
func (c *Coordinator) FindNoTags() {
	c.store.FilterNoTags()
}

// Search narrows the view by case-insensitive title/description substring.
// Not part of the recorded vocabulary; in-memory only.
func (c *Coordinator) Search(text string) {
	c.store.SearchText(text)
}

// ResetView clears the recorded history (and its persisted copy, when a
// source is set) and resets the view to all records.
func (c *Coordinator) ResetView() {
	c.ledger.ClearHistory()

	if c.ledger.Source() != "" {
		if err := c.ledger.Persist(); err != nil {
			c.warnf("failed to persist session state: %v", err)
		}
	}

	c.store.ResetView()
}

// Clear removes the durable session file and empties the in-memory session.
func (c *Coordinator) Clear() error {
	if err := c.ledger.Clear(); err != nil {
		return err
	}

	c.store.Load(nil)

	return nil
}

// readTasks selects a reader by capability probe and parses path. Per-row
// skip diagnostics surface as warnings; an empty result is an error so a bad
// file never silently wipes a session.
func (c *Coordinator) readTasks(path string) ([]task.Task, error) {
	r := reader.Select(c.readers, path)
	if r == nil {
		return nil, fmt.Errorf("%w: %s", task.ErrUnsupportedFormat, path)
	}

	tasks, skips, err := r.ReadTasks(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	for _, skip := range skips {
		c.warnf("%s: %s", path, skip)
	}

	if len(tasks) == 0 {
		return nil, fmt.Errorf("%w: %s", task.ErrNoTasksFound, path)
	}

	return tasks, nil
}

// record appends the action and persists the ledger. Persist failures after
// a successful in-memory change are warnings, not errors: the view already
// moved, only cross-invocation continuity degrades.
func (c *Coordinator) record(action view.Action) {
	c.ledger.PushAction(action)

	if err := c.ledger.Persist(); err != nil {
		c.warnf("failed to persist session state: %v", err)
	}
}

func (c *Coordinator) warnf(format string, a ...any) {
	if c.warn != nil {
		_, _ = fmt.Fprintf(c.warn, "warning: "+format+"\n", a...)
	}
}
