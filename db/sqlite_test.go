package db

import (
	"path/filepath"
	"testing"

	"pranaam/naam"
)

func setupDB(t *testing.T) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	if err := InitDB(path); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	t.Cleanup(func() { Close() })
}

func TestSaveAndQueryResults(t *testing.T) {
	setupDB(t)

	table := &naam.ResultTable{Records: []naam.PredictionRecord{
		{Name: "Shah Rukh Khan", PredLabel: naam.LabelMuslim, PredProbMuslim: 93.7},
		{Name: "Amitabh Bachchan", PredLabel: naam.LabelNotMuslim, PredProbMuslim: 4.2},
	}}
	if err := SaveResults("eng", table); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	entries, err := QueryRecent(10)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}

	// newest first
	if entries[0].Name != "Amitabh Bachchan" || entries[1].Name != "Shah Rukh Khan" {
		t.Errorf("unexpected order: %+v", entries)
	}
	if entries[1].PredLabel != naam.LabelMuslim || entries[1].PredProbMuslim != 93.7 {
		t.Errorf("row mismatch: %+v", entries[1])
	}
	if entries[0].Lang != "eng" {
		t.Errorf("lang = %q", entries[0].Lang)
	}
}

func TestSaveEmptyTableIsNoop(t *testing.T) {
	setupDB(t)

	if err := SaveResults("eng", &naam.ResultTable{}); err != nil {
		t.Fatalf("empty table save failed: %v", err)
	}
	entries, err := QueryRecent(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("got %d entries, want 0", len(entries))
	}
}

func TestSaveWithoutInit(t *testing.T) {
	Close()
	if err := SaveResults("eng", &naam.ResultTable{Records: []naam.PredictionRecord{{Name: "x"}}}); err == nil {
		t.Fatal("expected error without InitDB")
	}
}
