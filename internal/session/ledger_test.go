package session_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"taskproc/internal/session"
	"taskproc/internal/view"
)

func Test_Ledger_RoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	ledger := session.NewLedger(dir)
	ledger.SetSource("/data/tasks.csv")
	ledger.PushAction(view.Action{Kind: view.ActionFilter, Payload: "priority>=3"})
	ledger.PushAction(view.Action{Kind: view.ActionSort, Payload: "due_date desc"})

	require.NoError(t, ledger.Persist())

	reloaded := session.NewLedger(dir)
	found, err := reloaded.Load()
	require.NoError(t, err)
	require.True(t, found, "persisted state should be found")

	require.Equal(t, "/data/tasks.csv", reloaded.Source())
	require.Equal(t, ledger.History(), reloaded.History())
}

func Test_Ledger_Load_Returns_False_When_File_Absent(t *testing.T) {
	t.Parallel()

	ledger := session.NewLedger(t.TempDir())

	found, err := ledger.Load()
	require.NoError(t, err)
	require.False(t, found)
}

func Test_Ledger_Persist_Requires_Source(t *testing.T) {
	t.Parallel()

	ledger := session.NewLedger(t.TempDir())

	err := ledger.Persist()
	require.ErrorIs(t, err, session.ErrNoSourcePath)
	require.NoFileExists(t, ledger.Path())
}

func Test_Ledger_SetSource_Clears_History(t *testing.T) {
	t.Parallel()

	ledger := session.NewLedger(t.TempDir())
	ledger.SetSource("a.csv")
	ledger.PushAction(view.Action{Kind: view.ActionFilter, Payload: "status=todo"})

	ledger.SetSource("b.csv")

	require.Equal(t, "b.csv", ledger.Source())
	require.Empty(t, ledger.History(), "new source invalidates prior history")
}

func Test_Ledger_Clear_Removes_File_And_Memory(t *testing.T) {
	t.Parallel()

	ledger := session.NewLedger(t.TempDir())
	ledger.SetSource("tasks.json")
	ledger.PushAction(view.Action{Kind: view.ActionFindByTag, Payload: "urgent"})
	require.NoError(t, ledger.Persist())
	require.FileExists(t, ledger.Path())

	require.NoError(t, ledger.Clear())

	require.NoFileExists(t, ledger.Path())
	require.Empty(t, ledger.Source())
	require.Empty(t, ledger.History())

	// Clearing again is fine: "already absent" is not an error.
	require.NoError(t, ledger.Clear())
}

func Test_Ledger_Load_Rejects_Malformed_Content(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, session.LedgerFileName)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	ledger := session.NewLedger(dir)

	_, err := ledger.Load()
	require.ErrorIs(t, err, session.ErrLedgerMalformed)
}

func Test_Ledger_Load_Rejects_Missing_Filepath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, session.LedgerFileName)
	require.NoError(t, os.WriteFile(path, []byte(`{"history":[]}`), 0o600))

	ledger := session.NewLedger(dir)

	_, err := ledger.Load()
	require.ErrorIs(t, err, session.ErrLedgerMalformed)
}

func Test_Ledger_Load_Skips_Unknown_Action_Types(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	content := `{
  "filepath": "tasks.csv",
  "history": [
    {"type": "filter", "payload": "priority>=3"},
    {"type": "teleport", "payload": "moon"},
    {"type": "sort", "payload": "id desc"}
  ]
}`
	path := filepath.Join(dir, session.LedgerFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	ledger := session.NewLedger(dir)

	found, err := ledger.Load()
	require.NoError(t, err)
	require.True(t, found)

	require.Equal(t, []view.Action{
		{Kind: view.ActionFilter, Payload: "priority>=3"},
		{Kind: view.ActionSort, Payload: "id desc"},
	}, ledger.History())
}

func Test_Ledger_Persist_Writes_Documented_Format(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	ledger := session.NewLedger(dir)
	ledger.SetSource("tasks.csv")
	ledger.PushAction(view.Action{Kind: view.ActionFilter, Payload: "status=todo"})
	require.NoError(t, ledger.Persist())

	data, err := os.ReadFile(ledger.Path())
	require.NoError(t, err)

	var raw struct {
		Filepath string `json:"filepath"`
		History  []struct {
			Type    string `json:"type"`
			Payload string `json:"payload"`
		} `json:"history"`
	}
	require.NoError(t, json.Unmarshal(data, &raw))

	require.Equal(t, "tasks.csv", raw.Filepath)
	require.Len(t, raw.History, 1)
	require.Equal(t, "filter", raw.History[0].Type)
	require.Equal(t, "status=todo", raw.History[0].Payload)
}

func Test_Ledger_Persist_With_Empty_History_Writes_Empty_Array(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	ledger := session.NewLedger(dir)
	ledger.SetSource("tasks.csv")
	require.NoError(t, ledger.Persist())

	reloaded := session.NewLedger(dir)
	found, err := reloaded.Load()
	require.NoError(t, err)
	require.True(t, found)
	require.Empty(t, reloaded.History())
}
