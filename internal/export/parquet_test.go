package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/woodruff-gallery/cataloggen/internal/seatable"
)

func TestFlatten(t *testing.T) {
	rows := []seatable.Row{
		{
			"_id":    "r1",
			"Title":  "Piece A",
			"Medium": "Woodcut",
			"Price":  float64(1200),
			"Image":  []any{"https://example.com/a.jpg"},
		},
		{
			"_id":   "r2",
			"Title": "Piece B",
		},
	}

	records := Flatten(rows, "Image")
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if records[0].Title != "Piece A" || records[0].Price != "1200" {
		t.Errorf("Unexpected first record: %+v", records[0])
	}
	if records[0].ImageURL != "https://example.com/a.jpg" {
		t.Errorf("Expected image URL, got %q", records[0].ImageURL)
	}
	if records[1].ImageURL != "" {
		t.Errorf("Expected empty image URL for record without image, got %q", records[1].ImageURL)
	}
}

func TestWriteRoundTrip(t *testing.T) {
	records := []Record{
		{RowID: "r1", Title: "Piece A", Medium: "Woodcut", Price: "1200"},
		{RowID: "r2", Title: "Piece B"},
	}

	path := filepath.Join(t.TempDir(), "rows.parquet")
	if err := Write(path, records); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	if pf.NumRows() != 2 {
		t.Fatalf("Expected 2 rows, got %d", pf.NumRows())
	}

	reader := parquet.NewGenericReader[Record](pf)
	defer reader.Close()

	out := make([]Record, 2)
	n, _ := reader.Read(out)
	if n != 2 {
		t.Fatalf("Expected to read 2 records, read %d", n)
	}
	if out[0].Title != "Piece A" || out[1].Title != "Piece B" {
		t.Errorf("Round trip mismatch: %+v", out)
	}
}
