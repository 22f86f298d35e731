package finance

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"

	"github.com/matzehuels/spendgraph/pkg/errors"
)

var week = time.Date(2015, 6, 7, 0, 0, 0, 0, time.UTC) // a Sunday

func sampleDataset() *Dataset {
	return &Dataset{
		Week: week,
		Categories: []Category{
			{ID: "food", Name: "Food"},
			{ID: "fun", Name: "Fun"},
		},
		Expenses: []Expense{
			{ID: "e1", Name: "Lunch", Amount: decimal.RequireFromString("12.50"), Timestamp: week.Add(36 * time.Hour), Categories: []string{"food"}},
			{ID: "e2", Name: "Cinema", Amount: decimal.RequireFromString("20"), Timestamp: week.Add(60 * time.Hour), Categories: []string{"fun", "food"}},
			{ID: "e3", Name: "Old", Amount: decimal.RequireFromString("3"), Timestamp: week.Add(-time.Hour), Categories: []string{"fun"}},
			{ID: "e4", Name: "Next week", Amount: decimal.RequireFromString("4"), Timestamp: week.AddDate(0, 0, 7)},
		},
	}
}

func TestExpensesForWeek(t *testing.T) {
	d := sampleDataset()
	var got []string
	for _, e := range d.ExpensesForWeek() {
		got = append(got, e.ID)
	}
	if diff := cmp.Diff([]string{"e1", "e2"}, got); diff != "" {
		t.Errorf("ExpensesForWeek() mismatch (-want +got):\n%s", diff)
	}
}

func TestAddExpenseToCategory(t *testing.T) {
	d := sampleDataset()
	before := d.Expenses[0].Categories

	changed, err := d.AddExpenseToCategory("e1", "fun")
	if err != nil {
		t.Fatalf("AddExpenseToCategory: %v", err)
	}
	if !changed {
		t.Error("first add: changed = false, want true")
	}
	if diff := cmp.Diff([]string{"food", "fun"}, d.Expenses[0].Categories); diff != "" {
		t.Errorf("categories mismatch (-want +got):\n%s", diff)
	}
	if len(before) != 1 {
		t.Errorf("previous slice was modified: %v", before)
	}

	changed, err = d.AddExpenseToCategory("e1", "fun")
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if changed {
		t.Error("second add: changed = true, want false")
	}
}

func TestAddExpenseToCategoryNotFound(t *testing.T) {
	tests := []struct {
		name     string
		expense  string
		category string
		code     errors.Code
	}{
		{"unknown expense", "nope", "food", errors.ErrCodeExpenseNotFound},
		{"unknown category", "e1", "nope", errors.ErrCodeCategoryNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sampleDataset().AddExpenseToCategory(tt.expense, tt.category)
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestCategoryDetail(t *testing.T) {
	d := sampleDataset()

	det, err := d.CategoryDetail("food")
	if err != nil {
		t.Fatalf("CategoryDetail: %v", err)
	}
	if !det.Total.Equal(decimal.RequireFromString("32.5")) {
		t.Errorf("Total = %s, want 32.5", det.Total)
	}
	if len(det.Rows) != 2 || det.Rows[0].Name != "Lunch" || det.Rows[1].Name != "Cinema" {
		t.Errorf("Rows = %+v", det.Rows)
	}

	// Detail spans every expense, not only the dataset week.
	det, err = d.CategoryDetail("fun")
	if err != nil {
		t.Fatalf("CategoryDetail: %v", err)
	}
	if !det.Total.Equal(decimal.NewFromInt(23)) {
		t.Errorf("fun Total = %s, want 23", det.Total)
	}

	if _, err := d.CategoryDetail("missing"); !errors.Is(err, errors.ErrCodeCategoryNotFound) {
		t.Errorf("missing category err = %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Dataset)
		wantErr bool
	}{
		{"valid", func(*Dataset) {}, false},
		{"empty collections", func(d *Dataset) { d.Categories, d.Expenses = nil, nil }, false},
		{"dangling membership allowed", func(d *Dataset) { d.Expenses[0].Categories = []string{"ghost"} }, false},
		{"category selection", func(d *Dataset) { d.Selection = &Selection{Type: SelectCategory, ID: "food"} }, false},

		{"missing week", func(d *Dataset) { d.Week = time.Time{} }, true},
		{"week on a Monday", func(d *Dataset) { d.Week = week.AddDate(0, 0, 1) }, true},
		{"empty category id", func(d *Dataset) { d.Categories[0].ID = "" }, true},
		{"duplicate category", func(d *Dataset) { d.Categories[1].ID = "food" }, true},
		{"duplicate expense", func(d *Dataset) { d.Expenses[1].ID = "e1" }, true},
		{"negative amount", func(d *Dataset) { d.Expenses[0].Amount = decimal.NewFromInt(-1) }, true},
		{"missing timestamp", func(d *Dataset) { d.Expenses[0].Timestamp = time.Time{} }, true},
		{"bad selection", func(d *Dataset) { d.Selection = &Selection{Type: "link", ID: "x"} }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := sampleDataset()
			tt.mutate(d)
			err := d.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidDataset) {
				t.Errorf("Validate() code = %s, want %s", errors.GetCode(err), errors.ErrCodeInvalidDataset)
			}
		})
	}
}

func TestDatasetFileRoundTrip(t *testing.T) {
	d := sampleDataset()
	d.Selection = &Selection{Type: SelectExpense, ID: "e2"}
	path := filepath.Join(t.TempDir(), "week.json")

	if err := WriteDatasetFile(d, path); err != nil {
		t.Fatalf("WriteDatasetFile: %v", err)
	}
	got, err := ReadDatasetFile(path)
	if err != nil {
		t.Fatalf("ReadDatasetFile: %v", err)
	}
	if diff := cmp.Diff(d, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestReadDatasetErrors(t *testing.T) {
	if _, err := ReadDataset(strings.NewReader("{not json")); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("malformed JSON: err = %v", err)
	}
	if _, err := ReadDataset(bytes.NewReader([]byte(`{"categories":[]}`))); !errors.Is(err, errors.ErrCodeInvalidDataset) {
		t.Errorf("missing week: err = %v", err)
	}
	if _, err := ReadDatasetFile(filepath.Join(t.TempDir(), "absent.json")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("absent file: err = %v", err)
	}
}

func TestReadDatasetNumericAmount(t *testing.T) {
	in := `{"week":"2015-06-07T00:00:00Z","expenses":[{"id":"a","name":"A","amount":9.99,"timestamp":"2015-06-08T00:00:00Z"}]}`
	d, err := ReadDataset(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadDataset: %v", err)
	}
	if !d.Expenses[0].Amount.Equal(decimal.RequireFromString("9.99")) {
		t.Errorf("Amount = %s, want 9.99", d.Expenses[0].Amount)
	}
}
