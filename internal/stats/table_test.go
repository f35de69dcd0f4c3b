package stats

import (
	"strings"
	"testing"
)

func TestTableAlignsHistoryColumns(t *testing.T) {
	tbl := newTable(
		column{title: "Status"},
		column{title: "Typos", numeric: true},
		column{title: "Effective", numeric: true},
	)
	tbl.add("completed", "3", "98.4")
	tbl.add("cancelled", "12", "7.0")

	got := tbl.lines()
	want := []string{
		"Status     Typos  Effective",
		"---------  -----  ---------",
		"completed      3       98.4",
		"cancelled     12        7.0",
	}
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Fatalf("unexpected table:\n%s\nwant:\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
}

func TestTableTrimsTrailingPadding(t *testing.T) {
	tbl := newTable(column{title: "Backend"}, column{title: "Error"})
	tbl.add("terminal", "")
	tbl.add("virtual", "boom", "ignored")

	got := tbl.lines()
	if got[2] != "terminal" {
		t.Fatalf("unexpected row line: %q", got[2])
	}
	if got[3] != "virtual   boom" {
		t.Fatalf("unexpected row line: %q", got[3])
	}
}

func TestTableCountsWideCells(t *testing.T) {
	tbl := newTable(column{title: "A"}, column{title: "B"})
	tbl.add("日本", "x")

	got := tbl.lines()
	if got[0] != "A     B" {
		t.Fatalf("unexpected header line: %q", got[0])
	}
	if got[1] != "----  -" {
		t.Fatalf("unexpected rule line: %q", got[1])
	}
	if got[2] != "日本  x" {
		t.Fatalf("unexpected row line: %q", got[2])
	}
}
