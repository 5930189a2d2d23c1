package content

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Collection is an ordered, validated view over one content
// directory. Entries are sorted by publish date descending; equal
// dates keep the enumeration (lexical file name) order.
type Collection struct {
	Name string

	entries   []*Entry // all entries, drafts included
	published []*Entry
	tags      map[string][]*Entry
}

// Load enumerates <root>/<name>/*.md, validates every entry, and
// builds the sorted views. A malformed entry lands in the report and
// does not stop its siblings from loading; callers must treat a
// non-empty report as a failed build.
func Load(root, name string) (*Collection, *Report) {
	col := &Collection{Name: name}
	report := &Report{}

	dir := filepath.Join(root, name)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		// A site without, say, an education section is fine.
		col.index()
		return col, report
	}

	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".md") {
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}

		data, readErr := os.ReadFile(path)
		if readErr != nil {
			report.Add(rel, "file", errors.Wrap(readErr, "failed to read entry"))
			return nil
		}

		entry, violations := decode(name, rel, data)
		if len(violations) > 0 {
			report.Violations = append(report.Violations, violations...)
			return nil
		}

		col.entries = append(col.entries, entry)

		return nil
	})
	if walkErr != nil {
		report.Add(dir, "file", errors.Wrap(walkErr, "failed to walk collection"))
	}

	// WalkDir visits lexically, so this stable sort makes the
	// equal-date tie-break the authored file order.
	sort.SliceStable(col.entries, func(i, j int) bool {
		return col.entries[i].Published.After(col.entries[j].Published)
	})

	col.index()

	return col, report
}

// index builds the published view and the tag index. Tag lookups are
// exact, case-sensitive matches over published entries only.
func (c *Collection) index() {
	c.published = []*Entry{}
	c.tags = make(map[string][]*Entry)

	for _, entry := range c.entries {
		if entry.Draft {
			continue
		}

		c.published = append(c.published, entry)

		for _, tag := range entry.Tags {
			c.tags[tag] = append(c.tags[tag], entry)
		}
	}
}

// All returns every entry, drafts included, date descending. Only the
// explicitly gated preview mode should consume this.
func (c *Collection) All() []*Entry {
	return c.entries
}

// Published returns the public entries, date descending. Drafts are
// never included.
func (c *Collection) Published() []*Entry {
	return c.published
}

// ByTag returns the published entries carrying tag, preserving the
// published order.
func (c *Collection) ByTag(tag string) []*Entry {
	return c.tags[tag]
}

// Tags returns every tag seen on published entries, sorted.
func (c *Collection) Tags() []string {
	tags := make([]string, 0, len(c.tags))
	for tag := range c.tags {
		tags = append(tags, tag)
	}

	sort.Strings(tags)

	return tags
}

// Len returns the number of entries, drafts included.
func (c *Collection) Len() int { return len(c.entries) }

// Library bundles all content collections for one build.
type Library struct {
	Blog      *Collection
	Projects  *Collection
	Work      *Collection
	Education *Collection
}

// LoadLibrary loads every collection under root and merges their
// reports, so one pass surfaces every authoring problem on the site.
func LoadLibrary(root string) (*Library, *Report) {
	report := &Report{}
	lib := &Library{}

	for _, name := range Collections {
		col, colReport := Load(root, name)
		report.Merge(colReport)

		switch name {
		case CollectionBlog:
			lib.Blog = col
		case CollectionProjects:
			lib.Projects = col
		case CollectionWork:
			lib.Work = col
		case CollectionEducation:
			lib.Education = col
		}
	}

	return lib, report
}

// Collection returns the named collection, nil for unknown names.
func (l *Library) Collection(name string) *Collection {
	switch name {
	case CollectionBlog:
		return l.Blog
	case CollectionProjects:
		return l.Projects
	case CollectionWork:
		return l.Work
	case CollectionEducation:
		return l.Education
	default:
		return nil
	}
}

// All returns the collections in site order.
func (l *Library) All() []*Collection {
	return []*Collection{l.Blog, l.Projects, l.Work, l.Education}
}
