package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/woodruff-gallery/cataloggen/internal/config"
	"github.com/woodruff-gallery/cataloggen/internal/images"
	"github.com/woodruff-gallery/cataloggen/internal/render"
	"github.com/woodruff-gallery/cataloggen/internal/seatable"
)

// Generator runs one catalog generation: fetch the view's rows, materialize
// their images into the shared store, render the HTML page. Stages are
// strictly sequential; any stage failure aborts the run, except per-record
// image failures, which only drop that record's image.
type Generator struct {
	Settings    *config.Settings
	Catalog     *config.Catalog
	Concurrency int
}

// New creates a generator for one catalog config.
func New(settings *config.Settings, cat *config.Catalog) *Generator {
	return &Generator{
		Settings:    settings,
		Catalog:     cat,
		Concurrency: 1,
	}
}

// Run executes the full pipeline and reports what it did.
func (g *Generator) Run(ctx context.Context) (*Report, error) {
	started := time.Now()

	slog.Info("Generating catalog",
		"view", g.Catalog.ViewName,
		"output", g.Catalog.OutputFile,
		"table", g.Settings.TableName)

	client := seatable.NewClient(g.Settings.ServerURL, g.Settings.APIToken)

	table, imageColumn, rows, err := FetchRows(ctx, client, g.Settings.TableName, g.Catalog.ViewName)
	if err != nil {
		return nil, err
	}
	slog.Info("Fetched rows", "table", table.Name, "view", g.Catalog.ViewName, "count", len(rows))

	refs := make([]string, len(rows))
	for i, row := range rows {
		refs[i] = row.FirstImage(imageColumn.Name)
	}

	imagesDir := filepath.Join(g.Settings.OutputDir, "images")
	materializer := images.NewMaterializer(imagesDir, client)
	results := materializer.MaterializeAll(ctx, refs, g.Concurrency)

	report := &Report{
		View:       g.Catalog.ViewName,
		OutputFile: g.Catalog.OutputFile,
		Rows:       len(rows),
		Timestamp:  started.UTC().Format(time.RFC3339),
	}

	paths := make([]string, len(rows))
	for i, result := range results {
		switch {
		case refs[i] == "":
			slog.Warn("Record has no image", "row", rowLabel(rows[i], i))
			report.ImagesSkipped++
		case result.Err != nil:
			slog.Warn("Skipping record image", "row", rowLabel(rows[i], i), "error", result.Err)
			report.ImagesSkipped++
		case result.Cached:
			paths[i] = result.Path
			report.ImagesCached++
		default:
			paths[i] = result.Path
			report.ImagesDownloaded++
		}
	}

	entries := render.BuildEntries(g.Catalog, rows, paths)
	html, err := render.Render(g.Catalog, entries)
	if err != nil {
		return nil, err
	}

	outputPath := filepath.Join(g.Settings.OutputDir, g.Catalog.OutputFile)
	if err := render.WriteAtomic(outputPath, html); err != nil {
		return nil, fmt.Errorf("failed to write catalog %s: %w", outputPath, err)
	}

	report.Duration = time.Since(started).Round(time.Millisecond).String()
	slog.Info("Catalog generated",
		"output", outputPath,
		"rows", report.Rows,
		"downloaded", report.ImagesDownloaded,
		"cached", report.ImagesCached,
		"skipped", report.ImagesSkipped)

	return report, nil
}

// FetchRows authenticates, locates the configured table and its image
// column, and fetches all rows of the view in view order.
func FetchRows(ctx context.Context, client *seatable.Client, tableName, viewName string) (*seatable.Table, *seatable.Column, []seatable.Row, error) {
	base, err := client.Auth(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	slog.Debug("Authenticated", "base", base.UUID)

	meta, err := base.Metadata(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	table, err := meta.Table(tableName)
	if err != nil {
		return nil, nil, nil, err
	}

	imageColumn, err := table.ImageColumn()
	if err != nil {
		return nil, nil, nil, err
	}
	slog.Debug("Using image column", "column", imageColumn.Name)

	rows, err := base.Rows(ctx, table, viewName)
	if err != nil {
		return nil, nil, nil, err
	}

	return table, imageColumn, rows, nil
}

func rowLabel(row seatable.Row, index int) string {
	if title := row.Text(seatable.ColTitle); title != "" {
		return title
	}
	if id := row.ID(); id != "" {
		return id
	}
	return fmt.Sprintf("#%d", index+1)
}
