package services

import (
	"testing"

	"sales-dashboard/models"
)

func orderIDs(rows []models.TransactionRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.OrderID
	}
	return out
}

func TestEmptyFacetSetAllowsAll(t *testing.T) {
	ds := sampleDataset()
	unconstrained := Filter{}.Apply(ds)
	empty := NewFilter(day("2014-01-01"), day("2014-12-31")).
		With(models.ColSegment).
		With(models.ColRegion, []string{}...).
		Apply(ds)

	if len(unconstrained) != ds.Len() {
		t.Fatalf("zero Filter: got %d rows, want %d", len(unconstrained), ds.Len())
	}
	if len(empty) != len(unconstrained) {
		t.Errorf("empty facet sets: got %d rows, want %d", len(empty), len(unconstrained))
	}
}

func TestFacetsCombineWithAnd(t *testing.T) {
	ds := sampleDataset()
	rows := Filter{}.
		With(models.ColSegment, "Consumer").
		With(models.ColCategory, "Technology", "Office Supplies").
		Apply(ds)

	got := orderIDs(rows)
	want := []string{"O1", "O3"}
	if len(got) != len(want) {
		t.Fatalf("rows: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestDateIntervalInclusive(t *testing.T) {
	ds := sampleDataset()
	rows := NewFilter(day("2014-02-11"), day("2014-03-12")).Apply(ds)
	got := orderIDs(rows)
	if len(got) != 3 || got[0] != "O2" || got[2] != "O4" {
		t.Errorf("rows: got %v, want [O2 O3 O4]", got)
	}
}

func TestInvertedIntervalMatchesNothing(t *testing.T) {
	ds := sampleDataset()
	rows := NewFilter(day("2014-03-01"), day("2014-02-01")).Apply(ds)
	if len(rows) != 0 {
		t.Errorf("inverted interval: got %d rows, want 0", len(rows))
	}
}

func TestFacetOnMissingColumnIsSkipped(t *testing.T) {
	cols := []models.Column{models.ColOrderID, models.ColOrderDate, models.ColSales, models.ColSegment}
	ds := NewDataset(sampleRows(), cols)

	rows := Filter{}.With(models.ColShipMode, "Teleport").Apply(ds)
	if len(rows) != ds.Len() {
		t.Errorf("missing column facet: got %d rows, want %d", len(rows), ds.Len())
	}
}

func TestFilterCopiesAreIndependent(t *testing.T) {
	base := Filter{}.With(models.ColSegment, "Consumer")
	derived := base.Without(models.ColSegment).With(models.ColRegion, "West")

	if len(base.Selected(models.ColSegment)) != 1 || base.Selected(models.ColRegion) != nil {
		t.Errorf("base filter mutated: %+v", base.Facets)
	}
	if derived.Selected(models.ColSegment) != nil {
		t.Errorf("derived filter kept segment: %+v", derived.Facets)
	}
}

func TestApplyDoesNotMutateDataset(t *testing.T) {
	ds := sampleDataset()
	rows := Filter{}.Apply(ds)
	rows[0].OrderID = "changed"
	if ds.Rows()[0].OrderID != "O1" {
		t.Error("mutating a filtered row changed the dataset")
	}
}
