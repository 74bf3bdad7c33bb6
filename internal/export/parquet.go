package export

import (
	"fmt"
	"os"

	"github.com/parquet-go/parquet-go"
	"github.com/woodruff-gallery/cataloggen/internal/seatable"
)

// Record is one flattened view row for archival.
type Record struct {
	RowID              string `parquet:"row_id"`
	Inventory          string `parquet:"inventory"`
	Title              string `parquet:"title"`
	Series             string `parquet:"series"`
	Year               string `parquet:"year"`
	Edition            string `parquet:"edition"`
	ImageSize          string `parquet:"image_size"`
	PaperSize          string `parquet:"paper_size"`
	FrameSize          string `parquet:"frame_size"`
	EditionDescription string `parquet:"edition_description"`
	Medium             string `parquet:"medium"`
	Price              string `parquet:"price"`
	ImageURL           string `parquet:"image_url"`
}

// Flatten projects view rows into export records, in row order.
// imageColumn names the table's image column.
func Flatten(rows []seatable.Row, imageColumn string) []Record {
	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, Record{
			RowID:              row.ID(),
			Inventory:          row.Text(seatable.ColInventory),
			Title:              row.Text(seatable.ColTitle),
			Series:             row.Text(seatable.ColSeries),
			Year:               row.Text(seatable.ColYear),
			Edition:            row.Text(seatable.ColEdition),
			ImageSize:          row.Text(seatable.ColImageSize),
			PaperSize:          row.Text(seatable.ColPaperSize),
			FrameSize:          row.Text(seatable.ColFrameSize),
			EditionDescription: row.Text(seatable.ColEditionDescription),
			Medium:             row.Text(seatable.ColMedium),
			Price:              row.Text(seatable.ColPrice),
			ImageURL:           row.FirstImage(imageColumn),
		})
	}
	return records
}

// Write stores records as a Parquet file.
func Write(path string, records []Record) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create parquet file: %w", err)
	}

	writer := parquet.NewGenericWriter[Record](file)
	if _, err := writer.Write(records); err != nil {
		file.Close()
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		file.Close()
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return file.Close()
}
