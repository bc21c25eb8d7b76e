// Package session persists the view-transformation history that makes each
// CLI invocation behave like a continuation of the previous one.
package session

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"

	"taskproc/internal/view"
)

// LedgerFileName is the durable session file, created inside the configured
// state directory.
const LedgerFileName = ".taskproc.storage"

// Ledger errors.
var (
	ErrNoSourcePath    = errors.New("no source path set")
	ErrLedgerMalformed = errors.New("malformed session state file")
)

// Ledger is the durable record of {source file path, ordered view actions}.
//
// Mutations only touch memory; Persist writes the whole state to the state
// file via a temp file and atomic rename, so a crash mid-write never corrupts
// the previously committed state. There is no locking against concurrent
// processes; last writer wins.
type Ledger struct {
	dir     string
	source  string
	history []view.Action
}

// ledgerFile is the durable JSON shape.
type ledgerFile struct {
	Filepath string        `json:"filepath"`
	History  []view.Action `json:"history"`
}

// NewLedger returns a ledger persisting to dir/.taskproc.storage. Nothing is
// read from disk until Load.
func NewLedger(dir string) *Ledger {
	return &Ledger{dir: dir}
}

// Path returns the durable file location.
func (l *Ledger) Path() string {
	return filepath.Join(l.dir, LedgerFileName)
}

// SetSource records the source file path and clears the action history: a new
// load invalidates any narrowing recorded against the previous data.
func (l *Ledger) SetSource(path string) {
	l.source = path
	l.history = nil
}

// Source returns the recorded source file path, "" if none.
func (l *Ledger) Source() string {
	return l.source
}

// PushAction appends action to the in-memory history. It does not persist.
func (l *Ledger) PushAction(action view.Action) {
	l.history = append(l.history, action)
}

// History returns the recorded actions in append order.
func (l *Ledger) History() []view.Action {
	return l.history
}

// ClearHistory empties the in-memory history, keeping the source path.
func (l *Ledger) ClearHistory() {
	l.history = nil
}

// Persist writes the current {source, history} to the state file atomically.
// It fails if no source path is set or on I/O failure; the previously
// committed file content is unchanged on failure.
func (l *Ledger) Persist() error {
	if l.source == "" {
		return ErrNoSourcePath
	}

	record := ledgerFile{Filepath: l.source, History: l.history}
	if record.History == nil {
		record.History = []view.Action{}
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session state: %w", err)
	}

	writeErr := atomic.WriteFile(l.Path(), bytes.NewReader(data))
	if writeErr != nil {
		return fmt.Errorf("write session state: %w", writeErr)
	}

	return nil
}

// Load reads the state file if present, restoring {source, history} into
// memory. It returns whether a prior state was found. A missing file is not
// an error; malformed content or a missing filepath field is.
//
// History entries with an unknown action type are skipped so files written by
// newer versions still load.
func (l *Ledger) Load() (bool, error) {
	data, err := os.ReadFile(l.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}

		return false, fmt.Errorf("read session state: %w", err)
	}

	var record ledgerFile

	unmarshalErr := json.Unmarshal(data, &record)
	if unmarshalErr != nil {
		return false, fmt.Errorf("%w: %w", ErrLedgerMalformed, unmarshalErr)
	}

	if record.Filepath == "" {
		return false, fmt.Errorf("%w: missing filepath", ErrLedgerMalformed)
	}

	history := make([]view.Action, 0, len(record.History))

	for _, action := range record.History {
		if view.IsKnownActionKind(action.Kind) {
			history = append(history, action)
		}
	}

	l.source = record.Filepath
	l.history = history

	return true, nil
}

// Clear deletes the state file (ignoring "already absent") and empties the
// in-memory source path and history.
func (l *Ledger) Clear() error {
	err := os.Remove(l.Path())
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session state: %w", err)
	}

	l.source = ""
	l.history = nil

	return nil
}
