package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sales-dashboard/models"
)

const sampleCSV = "\ufeffRow ID,Order ID,Order Date,Ship Date,Ship Mode,Customer ID,Customer Name,Segment,Country,City,State,Postal Code,Region,Product ID,Category,Sub-Category,Product Name,Sales\n" +
	"1,CA-2017-152156,08/11/2017,11/11/2017,Second Class,CG-12520,Claire Gute,Consumer,United States,Henderson,Kentucky,42420,South,FUR-BO-10001798,Furniture,Bookcases,\"Bush Somerset Collection Bookcase\",261.96\n" +
	",,,,,,,,,,,,,,,,,\n" +
	"2,CA-2017-138688,12/06/2017,16/06/2017,Second Class,DV-13045,Darrin Van Huff,Corporate,United States,Los Angeles,California,90036,West,OFF-LA-10000240,Office Supplies,Labels,\"Self-Adhesive Address Labels, Typewriters\",14.62\n"

func TestParseCSV(t *testing.T) {
	ds, err := ParseCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if len(ds.Rows) != 2 {
		t.Fatalf("rows: got %d, want 2 (blank row skipped)", len(ds.Rows))
	}
	if len(ds.Columns) != 18 {
		t.Errorf("columns: got %d, want 18", len(ds.Columns))
	}
	if !ds.HasColumn(models.ColRowID) {
		t.Error("BOM-prefixed Row ID header was not recognised")
	}

	r := ds.Rows[1]
	if r.OrderID != "CA-2017-138688" || r.OrderDate != "12/06/2017" || r.SubCategory != "Labels" {
		t.Errorf("unexpected row: %+v", r)
	}
	if r.ProductName != "Self-Adhesive Address Labels, Typewriters" {
		t.Errorf("quoted field: got %q", r.ProductName)
	}
	if r.Sales != "14.62" {
		t.Errorf("Sales: got %q, want %q", r.Sales, "14.62")
	}
}

func TestParseCSVOptionalColumnMissing(t *testing.T) {
	data := "order_id,order date,SALES,segment\nA,01/01/2015,10,Consumer\n"
	ds, err := ParseCSV(strings.NewReader(data))
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if ds.HasColumn(models.ColShipMode) {
		t.Error("Ship Mode should be reported as absent")
	}
	if ds.Rows[0].Segment != "Consumer" {
		t.Errorf("Segment: got %q", ds.Rows[0].Segment)
	}
}

func TestParseCSVErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"empty", "", "csv: empty file"},
		{"no sales", "Order ID,Order Date\nA,01/01/2015\n", `missing required column "Sales"`},
	}
	for _, tt := range tests {
		_, err := ParseCSV(strings.NewReader(tt.data))
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%s: got %v, want error containing %q", tt.name, err, tt.want)
		}
	}
}

func TestCSVReaderOpenError(t *testing.T) {
	_, err := NewCSVReader(filepath.Join(t.TempDir(), "missing.csv")).ReadAll()
	if err == nil || !strings.Contains(err.Error(), "csv: open") {
		t.Fatalf("expected open error, got %v", err)
	}
}

func TestCSVReaderReadAll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "train.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0644); err != nil {
		t.Fatal(err)
	}
	ds, err := NewCSVReader(path).ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(ds.Rows) != 2 {
		t.Errorf("rows: got %d, want 2", len(ds.Rows))
	}
}
