package render

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/woodruff-gallery/cataloggen/internal/config"
	"github.com/woodruff-gallery/cataloggen/internal/seatable"
)

// Prefill field identifiers of the purchase-info Google Form.
const (
	formTitleField = "entry.370646706"
	formImageField = "entry.673557102"
)

// Entry is one catalog card: a record's textual fields plus its resolved
// local image path. Empty fields render as nothing.
type Entry struct {
	ImagePath          string
	Inventory          string
	Title              string
	Series             string
	Year               string
	Edition            string
	ImageSize          string
	PaperSize          string
	FrameSize          string
	EditionDescription string
	Medium             string
	Price              string
	InquiryURL         template.URL
	PurchaseURL        template.URL
}

// page is the data handed to the HTML template.
type page struct {
	PageTitle   string
	HeaderLogo  string
	HeaderTitle string
	Entries     []Entry
}

// BuildEntries projects rows and their resolved image paths into renderable
// entries, in row order. imagePaths must be indexed like rows; an empty path
// means the record renders without an image.
func BuildEntries(cfg *config.Catalog, rows []seatable.Row, imagePaths []string) []Entry {
	entries := make([]Entry, 0, len(rows))
	for i, row := range rows {
		entry := Entry{
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
		}
		if entry.Title == "" {
			entry.Title = "Untitled"
		}
		if i < len(imagePaths) {
			entry.ImagePath = imagePaths[i]
		}
		if cfg.InquiryEmail != "" {
			entry.InquiryURL = template.URL(inquiryMailto(cfg.InquiryEmail, entry))
		}
		if cfg.IncludePurchaseButton && cfg.PurchaseFormURL != "" && entry.ImagePath != "" {
			entry.PurchaseURL = template.URL(purchaseLink(cfg, entry))
		}
		entries = append(entries, entry)
	}
	return entries
}

// Render produces the complete HTML document for one catalog.
func Render(cfg *config.Catalog, entries []Entry) ([]byte, error) {
	var buf bytes.Buffer
	err := pageTemplate.Execute(&buf, page{
		PageTitle:   cfg.PageTitle,
		HeaderLogo:  cfg.HeaderLogo,
		HeaderTitle: cfg.HeaderTitle,
		Entries:     entries,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render catalog: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteAtomic writes the document via a temp file and rename, so the
// previous catalog stays intact if the run dies mid-write.
func WriteAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".catalog-*")
	if err != nil {
		return fmt.Errorf("failed to create temp output: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to chmod output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close output: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move output into place: %w", err)
	}
	return nil
}

// inquiryMailto assembles the mailto link for one entry, listing only the
// fields the entry actually has.
func inquiryMailto(email string, e Entry) string {
	var body strings.Builder
	body.WriteString("I'm interested in the following artwork:\n\n")
	body.WriteString("Title: " + e.Title + "\n")
	if e.Inventory != "" {
		body.WriteString("Inventory: " + e.Inventory + "\n")
	}
	if e.Series != "" {
		body.WriteString("Series: " + e.Series + "\n")
	}
	if e.Year != "" {
		body.WriteString("Year: " + e.Year + "\n")
	}
	if e.Edition != "" {
		body.WriteString("Edition: " + e.Edition + "\n")
	}
	if e.ImageSize != "" {
		body.WriteString("Image Size: " + e.ImageSize + "\"\n")
	}
	if e.PaperSize != "" {
		body.WriteString("Paper Size: " + e.PaperSize + "\"\n")
	}
	if e.FrameSize != "" {
		body.WriteString("Frame Size: " + e.FrameSize + "\"\n")
	}
	if e.EditionDescription != "" {
		body.WriteString("\nDetails: " + e.EditionDescription + "\n")
	}
	if e.Medium != "" {
		body.WriteString("Medium: " + e.Medium + "\n")
	}
	if e.Price != "" {
		body.WriteString("\nPrice: $" + e.Price + "\n")
	}

	subject := "Inquiry: " + e.Title
	if e.Inventory != "" {
		subject += " (" + e.Inventory + ")"
	}

	return "mailto:" + email + "?subject=" + escapeQuery(subject) + "&body=" + escapeQuery(body.String())
}

// purchaseLink builds the prefilled purchase-info form URL for one entry.
func purchaseLink(cfg *config.Catalog, e Entry) string {
	imageURL := e.ImagePath
	if cfg.PublicBaseURL != "" {
		imageURL = strings.TrimRight(cfg.PublicBaseURL, "/") + "/" + e.ImagePath
	}
	return cfg.PurchaseFormURL +
		"?" + formTitleField + "=" + escapeQuery(e.Title) +
		"&" + formImageField + "=" + escapeQuery(imageURL)
}

// escapeQuery percent-encodes a query value, with spaces as %20 rather than
// '+' so mailto bodies survive every client.
func escapeQuery(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
