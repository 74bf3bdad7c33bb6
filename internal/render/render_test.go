package render

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/woodruff-gallery/cataloggen/internal/config"
	"github.com/woodruff-gallery/cataloggen/internal/seatable"
)

func testCatalog() *config.Catalog {
	return &config.Catalog{
		ViewName:    "Available Works",
		OutputFile:  "available.html",
		HeaderLogo:  "logo.png",
		HeaderTitle: "title.png",
		PageTitle:   "Available Works",
	}
}

func parse(t *testing.T, html []byte) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		t.Fatalf("failed to parse rendered HTML: %v", err)
	}
	return doc
}

func TestRenderHeaderAndTitle(t *testing.T) {
	html, err := Render(testCatalog(), nil)
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	doc := parse(t, html)

	if got := doc.Find("title").Text(); got != "Available Works" {
		t.Errorf("Expected page title 'Available Works', got %q", got)
	}
	if src, _ := doc.Find(".header img.logo").Attr("src"); src != "logo.png" {
		t.Errorf("Expected header logo 'logo.png', got %q", src)
	}
	if src, _ := doc.Find(".header img.title").Attr("src"); src != "title.png" {
		t.Errorf("Expected header title image 'title.png', got %q", src)
	}
}

func TestRenderEntriesInOrder(t *testing.T) {
	rows := []seatable.Row{
		{"Title": "Piece A", "Price": float64(1200)},
		{"Title": "Piece B", "Series": "Harbor"},
		{"Title": "Piece C"},
	}
	paths := []string{"images/aaa.jpg", "images/bbb.jpg", "images/ccc.jpg"}

	entries := BuildEntries(testCatalog(), rows, paths)
	html, err := Render(testCatalog(), entries)
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	doc := parse(t, html)

	var titles []string
	doc.Find(".artwork-card .artwork-title").Each(func(_ int, s *goquery.Selection) {
		titles = append(titles, s.Text())
	})
	want := []string{"Piece A", "Piece B", "Piece C"}
	if len(titles) != len(want) {
		t.Fatalf("Expected %d cards, got %d", len(want), len(titles))
	}
	for i := range want {
		if titles[i] != want[i] {
			t.Errorf("Card %d: expected %q, got %q", i, want[i], titles[i])
		}
	}

	if src, _ := doc.Find(".artwork-card").First().Find(".artwork-image img").Attr("src"); src != "images/aaa.jpg" {
		t.Errorf("Expected first card image 'images/aaa.jpg', got %q", src)
	}
	if got := doc.Find(".artwork-card").First().Find(".price").Text(); got != "$1200" {
		t.Errorf("Expected price '$1200', got %q", got)
	}
}

func TestRenderEntryWithoutImage(t *testing.T) {
	rows := []seatable.Row{
		{"Title": "No Image Piece"},
	}
	entries := BuildEntries(testCatalog(), rows, []string{""})
	html, err := Render(testCatalog(), entries)
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	doc := parse(t, html)

	if doc.Find(".artwork-card").Length() != 1 {
		t.Fatal("Expected the card to render even without an image")
	}
	if doc.Find(".artwork-card .artwork-image").Length() != 0 {
		t.Error("Expected no image block for an entry without an image")
	}
}

func TestRenderMissingFieldsRenderEmpty(t *testing.T) {
	rows := []seatable.Row{{}}
	entries := BuildEntries(testCatalog(), rows, []string{""})
	html, err := Render(testCatalog(), entries)
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	doc := parse(t, html)

	card := doc.Find(".artwork-card")
	if card.Length() != 1 {
		t.Fatal("Expected one card")
	}
	if got := card.Find(".artwork-title").Text(); got != "Untitled" {
		t.Errorf("Expected fallback title 'Untitled', got %q", got)
	}
	if card.Find(".artwork-meta div").Length() != 0 {
		t.Error("Expected no meta rows for an empty record")
	}
}

func TestRenderEscapesFieldValues(t *testing.T) {
	rows := []seatable.Row{
		{"Title": `<script>alert("x")</script>`},
	}
	entries := BuildEntries(testCatalog(), rows, []string{""})
	html, err := Render(testCatalog(), entries)
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if strings.Contains(string(html), "<script>alert") {
		t.Error("Field values must be HTML-escaped")
	}
}

func TestBuildEntriesInquiryLink(t *testing.T) {
	cfg := testCatalog()
	cfg.InquiryEmail = "studio@example.com"

	rows := []seatable.Row{
		{"Title": "Piece A", "Inventory": "INV-7", "Price": float64(900)},
	}
	entries := BuildEntries(cfg, rows, []string{"images/a.jpg"})

	link := string(entries[0].InquiryURL)
	if !strings.HasPrefix(link, "mailto:studio@example.com?") {
		t.Fatalf("Expected mailto link, got %q", link)
	}
	if !strings.Contains(link, "subject=Inquiry%3A%20Piece%20A%20%28INV-7%29") {
		t.Errorf("Expected encoded subject with inventory, got %q", link)
	}
	if strings.Contains(link, "+") {
		t.Errorf("Spaces must encode as %%20, got %q", link)
	}
}

func TestBuildEntriesPurchaseLink(t *testing.T) {
	cfg := testCatalog()
	cfg.IncludePurchaseButton = true
	cfg.PurchaseFormURL = "https://forms.example.com/viewform"
	cfg.PublicBaseURL = "https://gallery.example.com/art/"

	rows := []seatable.Row{
		{"Title": "Piece A"},
		{"Title": "Piece B"},
	}
	entries := BuildEntries(cfg, rows, []string{"images/a.jpg", ""})

	link := string(entries[0].PurchaseURL)
	if !strings.HasPrefix(link, "https://forms.example.com/viewform?") {
		t.Fatalf("Expected purchase form link, got %q", link)
	}
	if !strings.Contains(link, "https%3A%2F%2Fgallery.example.com%2Fart%2Fimages%2Fa.jpg") {
		t.Errorf("Expected public image URL prefilled, got %q", link)
	}
	if entries[1].PurchaseURL != "" {
		t.Error("Entry without an image must not get a purchase link")
	}
}

func TestWriteAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "catalog.html")

	if err := WriteAtomic(path, []byte("first")); err != nil {
		t.Fatalf("WriteAtomic returned error: %v", err)
	}
	if err := WriteAtomic(path, []byte("second")); err != nil {
		t.Fatalf("WriteAtomic returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "second" {
		t.Errorf("Expected full overwrite, got %q", data)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected only the output file, found %d entries", len(entries))
	}
}

func TestRenderDeterministic(t *testing.T) {
	rows := []seatable.Row{
		{"Title": "Piece A", "Medium": "Woodcut"},
		{"Title": "Piece B"},
	}
	entries := BuildEntries(testCatalog(), rows, []string{"images/a.jpg", "images/b.jpg"})

	first, err := Render(testCatalog(), entries)
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	second, err := Render(testCatalog(), entries)
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("Rendering the same input twice must be byte-identical")
	}
}
