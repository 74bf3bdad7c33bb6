package seatable

import "strconv"

// Column names used by the catalog renderer and exporter. These match the
// "Works & Exhibits" table; rows are keyed by column name after fetching.
const (
	ColInventory          = "Inventory"
	ColTitle              = "Title"
	ColSeries             = "Series"
	ColYear               = "Year"
	ColEdition            = "Edition"
	ColImageSize          = "Image Size"
	ColPaperSize          = "Paper Size"
	ColFrameSize          = "Frame Size"
	ColEditionDescription = "Edition Description"
	ColMedium             = "Medium"
	ColPrice              = "Price"
)

// Row is one record from a view, keyed by column name.
type Row map[string]any

// Text returns the value of a field rendered as a string. Missing fields
// and unsupported types come back empty.
func (r Row) Text(field string) string {
	switch v := r[field].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// FirstImage returns the first entry of an image field. SeaTable image
// columns hold a list of URLs; a plain string is accepted too.
func (r Row) FirstImage(field string) string {
	switch v := r[field].(type) {
	case string:
		return v
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

// ID returns the row's internal identifier, when present.
func (r Row) ID() string {
	if s, ok := r["_id"].(string); ok {
		return s
	}
	return ""
}
