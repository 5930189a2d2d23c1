// Package search flattens the content library into the records the
// client-side search collaborator consumes.
package search

import (
	"encoding/json"
	"html"
	"os"
	"path/filepath"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/pkg/errors"

	"github.com/Rizky28eka/portfolio/internal/content"
)

// Record is one searchable document: a non-draft entry flattened to
// plain text.
type Record struct {
	Title      string   `json:"title"`
	Summary    string   `json:"summary"`
	Tags       []string `json:"tags,omitempty"`
	Date       string   `json:"date"`
	Collection string   `json:"collection"`
	Permalink  string   `json:"permalink"`
}

// IndexFile is the output file name, relative to the output dir.
const IndexFile = "search-index.json"

var stripPolicy = bluemonday.StrictPolicy()

// stripMarkup reduces a summary to plain text: any markup an author
// smuggled into front-matter is removed, entities decoded.
func stripMarkup(s string) string {
	return strings.TrimSpace(html.UnescapeString(stripPolicy.Sanitize(s)))
}

// BuildIndex flattens every published entry across all collections.
// Record order follows site order per collection, date descending
// within each, matching the listing pages.
func BuildIndex(lib *content.Library) []Record {
	var records []Record

	for _, col := range lib.All() {
		for _, entry := range col.Published() {
			records = append(records, Record{
				Title:      stripMarkup(entry.Title),
				Summary:    stripMarkup(entry.Summary),
				Tags:       entry.Tags,
				Date:       entry.Published.Format("2006-01-02"),
				Collection: col.Name,
				Permalink:  entry.Permalink,
			})
		}
	}

	return records
}

// WriteIndex writes the records as JSON into dir.
func WriteIndex(dir string, records []Record) error {
	data, err := json.Marshal(records)
	if err != nil {
		return errors.Wrap(err, "failed to marshal search index")
	}

	path := filepath.Join(dir, IndexFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "failed to write search index: %s", path)
	}

	return nil
}
