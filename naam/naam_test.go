package naam

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func newTestNaam(t *testing.T) (*Naam, *fakeResolver) {
	t.Helper()
	resolver := newFakeResolver(t)
	n, err := New(WithResolver(resolver))
	if err != nil {
		t.Fatal(err)
	}
	return n, resolver
}

func TestPredRelRowsMatchInput(t *testing.T) {
	n, _ := newTestNaam(t)

	names := []string{"  Shah Rukh Khan ", "Amitabh Bachchan", "Shah Rukh Khan"}
	table, err := n.PredRel(context.Background(), names, "eng", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if table.Len() != len(names) {
		t.Fatalf("got %d rows for %d names", table.Len(), len(names))
	}
	for i, rec := range table.Records {
		// the echoed name keeps its original whitespace
		if rec.Name != names[i] {
			t.Errorf("row %d echoes %q, want %q", i, rec.Name, names[i])
		}
		if rec.PredLabel != LabelMuslim && rec.PredLabel != LabelNotMuslim {
			t.Errorf("row %d has label %q", i, rec.PredLabel)
		}
		if rec.PredProbMuslim < 0 || rec.PredProbMuslim > 100 {
			t.Errorf("row %d probability %v outside [0,100]", i, rec.PredProbMuslim)
		}
	}
}

func TestPredRelSingleStringEqualsSlice(t *testing.T) {
	n, _ := newTestNaam(t)
	ctx := context.Background()

	fromString, err := n.PredRel(ctx, "Shah Rukh Khan", "eng", false)
	if err != nil {
		t.Fatal(err)
	}
	fromSlice, err := n.PredRel(ctx, []string{"Shah Rukh Khan"}, "eng", false)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(fromString.Records, fromSlice.Records) {
		t.Errorf("string and length-1 slice disagree:\n%+v\n%+v", fromString.Records, fromSlice.Records)
	}
}

func TestPredRelSeriesInput(t *testing.T) {
	n, _ := newTestNaam(t)

	table, err := n.PredRel(context.Background(), Series{"anita", "khan"}, "eng", false)
	if err != nil {
		t.Fatal(err)
	}
	if table.Len() != 2 {
		t.Fatalf("got %d rows, want 2", table.Len())
	}
}

func TestPredRelDeterministic(t *testing.T) {
	n, _ := newTestNaam(t)
	ctx := context.Background()

	first, err := n.PredRel(ctx, []string{"Shah Rukh Khan", "Amitabh Bachchan"}, "eng", false)
	if err != nil {
		t.Fatal(err)
	}
	second, err := n.PredRel(ctx, []string{"Shah Rukh Khan", "Amitabh Bachchan"}, "eng", false)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first.Records, second.Records) {
		t.Errorf("repeated call changed results:\n%+v\n%+v", first.Records, second.Records)
	}
}

func TestPredRelInvalidLanguageNoModelAccess(t *testing.T) {
	n, resolver := newTestNaam(t)

	_, err := n.PredRel(context.Background(), []string{"X"}, "fr", false)
	if !errors.Is(err, ErrInvalidLanguage) {
		t.Fatalf("got %v, want ErrInvalidLanguage", err)
	}
	if resolver.calls != 0 {
		t.Errorf("invalid language still resolved a model: %d calls", resolver.calls)
	}
}

func TestPredRelInvalidInputType(t *testing.T) {
	n, _ := newTestNaam(t)

	if _, err := n.PredRel(context.Background(), 42, "eng", false); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("got %v, want ErrInvalidInput", err)
	}
	if _, err := n.PredRel(context.Background(), nil, "eng", false); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("got %v, want ErrInvalidInput", err)
	}
}

func TestPredRelEmptySlice(t *testing.T) {
	n, resolver := newTestNaam(t)

	table, err := n.PredRel(context.Background(), []string{}, "eng", false)
	if err != nil {
		t.Fatalf("empty input must not fail: %v", err)
	}
	if table.Len() != 0 {
		t.Fatalf("got %d rows, want 0", table.Len())
	}
	if resolver.calls != 0 {
		t.Errorf("empty input resolved a model: %d calls", resolver.calls)
	}
}

func TestPredRelEmptyStringIsARow(t *testing.T) {
	n, _ := newTestNaam(t)

	table, err := n.PredRel(context.Background(), "", "eng", false)
	if err != nil {
		t.Fatalf("empty name must be scored, not rejected: %v", err)
	}
	if table.Len() != 1 {
		t.Fatalf("got %d rows, want 1", table.Len())
	}
	if table.Records[0].Name != "" {
		t.Errorf("echoed name %q, want empty string", table.Records[0].Name)
	}
}

func TestPredRelHindi(t *testing.T) {
	n, _ := newTestNaam(t)

	table, err := n.PredRel(context.Background(), []string{"शाह रुख", "अमिताभ"}, "hin", false)
	if err != nil {
		t.Fatal(err)
	}
	if table.Len() != 2 {
		t.Fatalf("got %d rows, want 2", table.Len())
	}
}
