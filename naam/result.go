package naam

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"
)

// Labels assigned by the binary classifier.
const (
	LabelMuslim    = "muslim"
	LabelNotMuslim = "not-muslim"
)

// decisionThreshold is the fixed cutoff: raw probability at or above it is
// labeled muslim. Callers wanting a different cutoff post-process
// PredProbMuslim themselves.
const decisionThreshold = 0.5

// Columns lists the result table columns in their fixed order.
var Columns = []string{"name", "pred_label", "pred_prob_muslim"}

// PredictionRecord is one row of the result: the verbatim input name, the
// predicted label, and the muslim probability as a percentage in [0,100].
type PredictionRecord struct {
	Name           string
	PredLabel      string
	PredProbMuslim float64
}

// ResultTable is an ordered set of prediction records. Row i always
// corresponds to input name i.
type ResultTable struct {
	Records []PredictionRecord
}

// Len returns the number of rows.
func (t *ResultTable) Len() int {
	return len(t.Records)
}

// FormatResults assembles names and raw probabilities into a result table.
// Probabilities become percentages rounded to one decimal; the label is
// muslim for raw probability >= 0.5.
func FormatResults(names []string, raw []float64) (*ResultTable, error) {
	if len(names) != len(raw) {
		return nil, fmt.Errorf("got %d probabilities for %d names", len(raw), len(names))
	}

	records := make([]PredictionRecord, len(names))
	for i, name := range names {
		label := LabelNotMuslim
		if raw[i] >= decisionThreshold {
			label = LabelMuslim
		}
		records[i] = PredictionRecord{
			Name:           name,
			PredLabel:      label,
			PredProbMuslim: math.Round(raw[i]*1000) / 10,
		}
	}
	return &ResultTable{Records: records}, nil
}

// String renders the table as aligned text, one row per record.
func (t *ResultTable) String() string {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(Columns, "\t"))
	for _, rec := range t.Records {
		fmt.Fprintf(w, "%s\t%s\t%s\n", rec.Name, rec.PredLabel, formatProb(rec.PredProbMuslim))
	}
	w.Flush()
	return sb.String()
}

// WriteCSV writes the table with a header row.
func (t *ResultTable) WriteCSV(out io.Writer) error {
	w := csv.NewWriter(out)
	if err := w.Write(Columns); err != nil {
		return err
	}
	for _, rec := range t.Records {
		if err := w.Write([]string{rec.Name, rec.PredLabel, formatProb(rec.PredProbMuslim)}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// ReadCSV parses a table previously written by WriteCSV.
func ReadCSV(in io.Reader) (*ResultTable, error) {
	r := csv.NewReader(in)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("missing header row")
	}
	if strings.Join(rows[0], ",") != strings.Join(Columns, ",") {
		return nil, fmt.Errorf("unexpected header %v", rows[0])
	}

	records := make([]PredictionRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		prob, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return nil, fmt.Errorf("parsing probability %q: %w", row[2], err)
		}
		records = append(records, PredictionRecord{Name: row[0], PredLabel: row[1], PredProbMuslim: prob})
	}
	return &ResultTable{Records: records}, nil
}

func formatProb(p float64) string {
	return strconv.FormatFloat(p, 'f', 1, 64)
}
