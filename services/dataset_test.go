package services

import (
	"testing"

	"sales-dashboard/models"
)

func TestDatasetBounds(t *testing.T) {
	ds := sampleDataset()
	b := ds.Bounds()
	if !b.Start.Equal(day("2014-01-05")) || !b.End.Equal(day("2014-03-25")) {
		t.Errorf("bounds: got %v..%v", b.Start, b.End)
	}
	if got := ds.MaxDelay(); got != 6 {
		t.Errorf("max delay: got %d, want 6", got)
	}
}

func TestEmptyDataset(t *testing.T) {
	ds := NewDataset(nil, nil)
	if !ds.Bounds().Empty() {
		t.Errorf("bounds of empty dataset: got %v, want empty", ds.Bounds())
	}
	if ds.Len() != 0 || ds.MaxDelay() != 0 {
		t.Errorf("got len %d max delay %d, want 0 0", ds.Len(), ds.MaxDelay())
	}
	if got := (Filter{}).Apply(ds); len(got) != 0 {
		t.Errorf("filtered rows: got %d, want 0", len(got))
	}
}

func TestDatasetColumns(t *testing.T) {
	all := sampleDataset()
	if !all.HasColumn(models.ColShipMode) {
		t.Error("nil column list should report every column present")
	}

	ds := NewDataset(sampleRows(), []models.Column{models.ColOrderID, models.ColOrderDate, models.ColSales})
	if ds.HasColumn(models.ColCategory) {
		t.Error("HasColumn(Category): got true, want false")
	}
	if !ds.HasColumn(models.ColOrderMonth) {
		t.Error("order month should follow from order date")
	}
	if got := ds.DistinctValues(models.ColCategory); got != nil {
		t.Errorf("distinct values of a missing column: got %v", got)
	}
}

func TestDistinctValues(t *testing.T) {
	got := sampleDataset().DistinctValues(models.ColSegment)
	want := []string{"Consumer", "Corporate", "Home Office"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("value %d: got %q, want %q", i, got[i], want[i])
		}
	}
}
