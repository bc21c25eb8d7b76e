package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"taskproc/internal/cli"
)

const fixtureCSV = `id,title,status,priority,created_date,description,assignee,due_date,tags
1,Write docs,todo,1,2025-01-01,,,,docs
2,Fix login bug,in-progress,5,2025-01-02,,alice,2025-02-01,"bug,auth"
3,Refactor parser,todo,3,2025-01-03,Split the tokenizer,,,
4,Ship release,done,5,2025-01-04,,,2025-01-20,release
`

func Test_No_Args_Prints_Usage(t *testing.T) {
	t.Parallel()

	var outBuf, errBuf bytes.Buffer

	code := cli.Run(nil, &outBuf, &errBuf, []string{"taskproc"}, nil)

	if code != 0 {
		t.Errorf("exitCode=%d, want=0", code)
	}

	if !strings.Contains(outBuf.String(), "Usage: taskproc") {
		t.Errorf("expected usage text, got: %s", outBuf.String())
	}
}

func Test_Help_Flag(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	stdout := c.MustRun("--help")
	if !strings.Contains(stdout, "Commands:") {
		t.Errorf("expected command listing, got: %s", stdout)
	}
}

func Test_Invalid_Global_Flag(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	stderr := c.MustFail("--invalid-flag", "list")
	if !strings.Contains(stderr, "unknown flag") {
		t.Errorf("stderr=%q, want mention of unknown flag", stderr)
	}
}

func Test_Unknown_Command(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	stderr := c.MustFail("frobnicate")
	if !strings.Contains(stderr, "unknown command: frobnicate") {
		t.Errorf("stderr=%q, want mention of the unknown command", stderr)
	}
}

func Test_Load_And_List(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	path := c.WriteFile("tasks.csv", fixtureCSV)

	stdout := c.MustRun("load", path)
	if !strings.Contains(stdout, "Loaded 4 tasks") {
		t.Errorf("stdout=%q, want load confirmation", stdout)
	}

	stdout = c.MustRun("list")

	for _, title := range []string{"Write docs", "Fix login bug", "Refactor parser", "Ship release"} {
		if !strings.Contains(stdout, title) {
			t.Errorf("list output missing %q:\n%s", title, stdout)
		}
	}
}

func Test_Load_Rejects_Unsupported_And_Missing_Files(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	path := c.WriteFile("tasks.csv", fixtureCSV)
	c.MustRun("load", path)

	stderr := c.MustFail("load", "tasks.yaml")
	if !strings.Contains(stderr, "unsupported") {
		t.Errorf("stderr=%q, want unsupported-format error", stderr)
	}

	c.MustFail("load", "absent.csv")

	// Failed loads keep the previous session intact.
	stdout := c.MustRun("status")
	if !strings.Contains(stdout, "4 total") {
		t.Errorf("status=%q, want the original 4 tasks", stdout)
	}
}

func Test_Filter_Sort_Continue_Across_Invocations(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	path := c.WriteFile("tasks.csv", fixtureCSV)
	c.MustRun("load", path)

	stdout := c.MustRun("filter", "priority>=3")
	if !strings.Contains(stdout, "3 of 4 tasks in view") {
		t.Errorf("stdout=%q, want narrowed count", stdout)
	}

	// A separate invocation narrows the already-narrowed view.
	stdout = c.MustRun("filter", "status=todo")
	if !strings.Contains(stdout, "1 of 4 tasks in view") {
		t.Errorf("stdout=%q, want cumulative narrowing", stdout)
	}

	c.MustRun("sort", "priority", "desc")

	stdout = c.MustRun("list")
	if strings.Contains(stdout, "Write docs") || !strings.Contains(stdout, "Refactor parser") {
		t.Errorf("unexpected view after replay:\n%s", stdout)
	}
}

func Test_Filter_Expression_Errors(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	path := c.WriteFile("tasks.csv", fixtureCSV)
	c.MustRun("load", path)

	cases := []struct {
		args []string
		want string
	}{
		{[]string{"filter", "nonsense"}, "no valid operator"},
		{[]string{"filter", "flavor=sweet"}, "unknown field"},
		{[]string{"filter", "title>a"}, "operator"},
		{[]string{"filter", "priority=high"}, "numeric"},
		{[]string{"sort", "flavor"}, "unknown field"},
	}

	for _, tc := range cases {
		stderr := c.MustFail(tc.args...)
		if !strings.Contains(stderr, tc.want) {
			t.Errorf("%v: stderr=%q, want mention of %q", tc.args, stderr, tc.want)
		}
	}
}

func Test_Narrowing_Requires_A_Session(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	for _, args := range [][]string{
		{"filter", "priority>=3"},
		{"sort", "priority"},
		{"tag", "docs"},
		{"search", "docs"},
	} {
		stderr := c.MustFail(args...)
		if !strings.Contains(stderr, "no source file") {
			t.Errorf("%v: stderr=%q, want no-source error", args, stderr)
		}
	}
}

func Test_Tag_Narrowing(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	path := c.WriteFile("tasks.csv", fixtureCSV)
	c.MustRun("load", path)

	stdout := c.MustRun("tag", "bug")
	if !strings.Contains(stdout, "1 of 4 tasks in view") {
		t.Errorf("stdout=%q, want one tagged task", stdout)
	}

	// Recorded: the narrowed view survives into the next invocation.
	stdout = c.MustRun("list")
	if !strings.Contains(stdout, "Fix login bug") || strings.Contains(stdout, "Write docs") {
		t.Errorf("unexpected view:\n%s", stdout)
	}

	c.MustRun("reset")

	// --none is this-invocation only.
	stdout = c.MustRun("tag", "--none")
	if !strings.Contains(stdout, "1 of 4 tasks in view") {
		t.Errorf("stdout=%q, want one untagged task", stdout)
	}

	stdout = c.MustRun("list")
	if !strings.Contains(stdout, "Write docs") {
		t.Errorf("expected the full view back, got:\n%s", stdout)
	}
}

func Test_Search_Is_Not_Recorded(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	path := c.WriteFile("tasks.csv", fixtureCSV)
	c.MustRun("load", path)

	stdout := c.MustRun("search", "tokenizer")
	if !strings.Contains(stdout, "Refactor parser") {
		t.Errorf("stdout=%q, want the matching summary line", stdout)
	}

	stdout = c.MustRun("list")
	if !strings.Contains(stdout, "Ship release") {
		t.Errorf("expected the full view back, got:\n%s", stdout)
	}
}

func Test_Reset_Clears_Recorded_Actions(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	path := c.WriteFile("tasks.csv", fixtureCSV)
	c.MustRun("load", path)
	c.MustRun("filter", "priority>=3")

	stdout := c.MustRun("reset")
	if !strings.Contains(stdout, "View reset: 4 tasks") {
		t.Errorf("stdout=%q, want full view", stdout)
	}

	stdout = c.MustRun("status")
	if strings.Contains(stdout, "Recorded actions") {
		t.Errorf("expected no recorded actions, got:\n%s", stdout)
	}
}

func Test_Clear_Removes_The_Session(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	path := c.WriteFile("tasks.csv", fixtureCSV)
	c.MustRun("load", path)

	stdout := c.MustRun("clear")
	if !strings.Contains(stdout, "Session cleared") {
		t.Errorf("stdout=%q", stdout)
	}

	stdout = c.MustRun("status")
	if !strings.Contains(stdout, "No session") {
		t.Errorf("stdout=%q, want empty-session message", stdout)
	}
}

func Test_Reload_Picks_Up_File_Changes(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	path := c.WriteFile("tasks.csv", fixtureCSV)
	c.MustRun("load", path)
	c.MustRun("filter", "priority>=3")

	c.WriteFile("tasks.csv", fixtureCSV+"5,New task,todo,2,2025-01-05,,,,\n")

	stdout := c.MustRun("reload")
	if !strings.Contains(stdout, "Reloaded 5 tasks") {
		t.Errorf("stdout=%q, want refreshed count", stdout)
	}

	// Reload is a fresh load: recorded filters are gone.
	stdout = c.MustRun("list")
	if !strings.Contains(stdout, "New task") || !strings.Contains(stdout, "Write docs") {
		t.Errorf("expected the full refreshed view, got:\n%s", stdout)
	}
}

func Test_Status_Summary(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	path := c.WriteFile("tasks.csv", fixtureCSV)
	c.MustRun("load", path)
	c.MustRun("filter", "priority>=3")

	stdout := c.MustRun("status")

	for _, want := range []string{
		"Source: " + path,
		"Tasks: 3 in view of 4 total",
		"Status: 1 todo, 1 in-progress, 1 done, 0 other",
		"Average priority:",
		"Overdue:",
		"Recorded actions: 1",
		"filter priority>=3",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("status output missing %q:\n%s", want, stdout)
		}
	}
}

func Test_Show_Detail(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	path := c.WriteFile("tasks.csv", fixtureCSV)
	c.MustRun("load", path)

	// Show resolves by id in the canonical store, so a narrowed view does
	// not hide tasks.
	c.MustRun("filter", "status=done")

	stdout := c.MustRun("show", "2")

	for _, want := range []string{"Fix login bug", "in-progress", "alice", "2025-02-01", "bug, auth"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("show output missing %q:\n%s", want, stdout)
		}
	}

	stderr := c.MustFail("show", "99")
	if !strings.Contains(stderr, "not found") {
		t.Errorf("stderr=%q, want not-found error", stderr)
	}

	stderr = c.MustFail("show", "abc")
	if !strings.Contains(stderr, "invalid id") {
		t.Errorf("stderr=%q, want invalid-id error", stderr)
	}
}

func Test_List_JSON_Format(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	path := c.WriteFile("tasks.csv", fixtureCSV)
	c.MustRun("load", path)

	stdout, stderr, code := c.Run("list", "--format", "json")
	if code != 0 {
		t.Fatalf("exitCode=%d, stderr=%s", code, stderr)
	}

	var records []map[string]any
	if err := json.Unmarshal([]byte(stdout), &records); err != nil {
		t.Fatalf("output is not valid json: %v\n%s", err, stdout)
	}

	if len(records) != 4 {
		t.Errorf("len(records)=%d, want=4", len(records))
	}
}

func Test_List_CSV_Format_Round_Trips(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	path := c.WriteFile("tasks.csv", fixtureCSV)
	c.MustRun("load", path)
	c.MustRun("filter", "priority>=3")

	stdout := c.MustRun("list", "--format", "csv")

	// The csv output is itself a loadable source file.
	narrowed := c.WriteFile("narrowed.csv", stdout+"\n")

	out := c.MustRun("load", narrowed)
	if !strings.Contains(out, "Loaded 3 tasks") {
		t.Errorf("stdout=%q, want the narrowed set reloaded", out)
	}
}

func Test_List_Limit_And_Offset(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	path := c.WriteFile("tasks.csv", fixtureCSV)
	c.MustRun("load", path)

	stdout := c.MustRun("list", "--limit", "2")
	if strings.Contains(stdout, "Refactor parser") {
		t.Errorf("limit ignored:\n%s", stdout)
	}

	stdout = c.MustRun("list", "--offset", "3")
	if !strings.Contains(stdout, "Ship release") || strings.Contains(stdout, "Write docs") {
		t.Errorf("offset ignored:\n%s", stdout)
	}

	// Offset past the end yields an empty view, not an error.
	c.MustRun("list", "--offset", "10")

	c.MustFail("list", "--limit", "-1")
	c.MustFail("list", "--format", "xml")
}

func Test_Skipped_Rows_Warn_On_Stderr(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	path := c.WriteFile("tasks.csv",
		"id,title,status,priority,created_date,description,assignee,due_date,tags\n"+
			"1,Kept,todo,1,,,,,\n"+
			"0,Dropped,todo,1,,,,,\n")

	stdout, stderr, code := c.Run("load", path)
	if code != 0 {
		t.Fatalf("exitCode=%d, stderr=%s", code, stderr)
	}

	if !strings.Contains(stdout, "Loaded 1 tasks") {
		t.Errorf("stdout=%q", stdout)
	}

	if !strings.Contains(stderr, "warning:") || !strings.Contains(stderr, "invalid id") {
		t.Errorf("stderr=%q, want a skip warning", stderr)
	}
}

func Test_Missing_Source_Degrades_To_Empty_Session(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	path := c.WriteFile("tasks.csv", fixtureCSV)
	c.MustRun("load", path)

	// Source file disappears between invocations.
	c.WriteFile("tasks.csv", "")

	stdout, stderr, code := c.Run("list")
	if code != 0 {
		t.Fatalf("exitCode=%d, stderr=%s", code, stderr)
	}

	if !strings.Contains(stderr, "warning: unable to restore session") {
		t.Errorf("stderr=%q, want a restore warning", stderr)
	}

	if !strings.Contains(stdout, "No tasks in view") {
		t.Errorf("stdout=%q, want an empty view", stdout)
	}
}

func Test_State_Dir_Flag_Isolates_Sessions(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	path := c.WriteFile("tasks.csv", fixtureCSV)

	stateA := filepath.Join(c.Dir, "state-a")
	stateB := filepath.Join(c.Dir, "state-b")

	for _, dir := range []string{stateA, stateB} {
		if err := os.Mkdir(dir, 0o700); err != nil {
			t.Fatal(err)
		}
	}

	c.MustRun("--state-dir", stateA, "load", path)
	c.MustRun("--state-dir", stateA, "filter", "priority>=3")

	c.MustRun("--state-dir", stateB, "load", path)

	stdout := c.MustRun("--state-dir", stateB, "status")
	if !strings.Contains(stdout, "4 in view of 4 total") {
		t.Errorf("session B saw session A's filters:\n%s", stdout)
	}

	stdout = c.MustRun("--state-dir", stateA, "status")
	if !strings.Contains(stdout, "3 in view of 4 total") {
		t.Errorf("session A lost its filters:\n%s", stdout)
	}
}

func Test_JSON_Source_File(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	path := c.WriteFile("tasks.json", `[
		{"id": 1, "title": "Write docs", "status": "todo", "tags": ["docs"]},
		{"id": 2, "title": "Fix login bug", "status": "in-progress", "priority": 5}
	]`)

	stdout := c.MustRun("load", path)
	if !strings.Contains(stdout, "Loaded 2 tasks") {
		t.Errorf("stdout=%q", stdout)
	}

	stdout = c.MustRun("list")
	if !strings.Contains(stdout, "Fix login bug") {
		t.Errorf("list output:\n%s", stdout)
	}
}
