// Package content implements the typed content model: front-matter
// schemas per collection, date normalization, and the collection
// loader that produces sorted, draft-filtered, tag-indexed views for
// page assembly.
package content

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/gosimple/slug"
	yaml "gopkg.in/yaml.v2"
)

// Collection names. Every entry belongs to exactly one.
const (
	CollectionBlog      = "blog"
	CollectionProjects  = "projects"
	CollectionWork      = "work"
	CollectionEducation = "education"
)

// Collections lists all collection names in site order.
var Collections = []string{
	CollectionBlog,
	CollectionProjects,
	CollectionWork,
	CollectionEducation,
}

var errRequiredField = errors.New("required field is empty")

// Meta is the front-matter base shared by every collection.
type Meta struct {
	Title   string   `yaml:"title"`
	Summary string   `yaml:"summary"`
	Date    string   `yaml:"date"`
	Draft   bool     `yaml:"draft,omitempty"`
	Tags    []string `yaml:"tags,omitempty"`
}

// BlogMeta holds blog-only optional fields.
type BlogMeta struct {
	Difficulty string `yaml:"difficulty,omitempty"`
	Category   string `yaml:"category,omitempty"`
}

// ProjectMeta holds project-only optional fields.
type ProjectMeta struct {
	DemoURL string `yaml:"demoUrl,omitempty"`
	RepoURL string `yaml:"repoUrl,omitempty"`
}

// WorkMeta holds work-history optional fields.
type WorkMeta struct {
	Company      string   `yaml:"company,omitempty"`
	Role         string   `yaml:"role,omitempty"`
	Location     string   `yaml:"location,omitempty"`
	DateStart    string   `yaml:"dateStart,omitempty"`
	DateEnd      string   `yaml:"dateEnd,omitempty"`
	Technologies []string `yaml:"technologies,omitempty"`
}

// Entry is one validated content entry. Instances are created by the
// loader and never mutated afterward.
type Entry struct {
	Collection string
	File       string
	Slug       string
	Permalink  string

	Meta
	Blog    *BlogMeta
	Project *ProjectMeta
	Work    *WorkMeta

	// Published is Meta.Date normalized to UTC; the ordering key.
	Published time.Time
	// LegacyDate marks the comma-separated source date format so the
	// loader can flag it as a data-quality issue.
	LegacyDate bool

	// Body is the raw markdown payload, opaque to this package.
	Body []byte
}

// Per-collection front-matter shapes. The inline base keeps the
// required fields identical across collections.
type blogFront struct {
	Meta     `yaml:",inline"`
	BlogMeta `yaml:",inline"`
}

type projectFront struct {
	Meta        `yaml:",inline"`
	ProjectMeta `yaml:",inline"`
}

type workFront struct {
	Meta     `yaml:",inline"`
	WorkMeta `yaml:",inline"`
}

type educationFront struct {
	Meta `yaml:",inline"`
}

// HasTag reports whether the entry carries tag, exact string match.
func (e *Entry) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}

	return false
}

// Frontmatter re-marshals the typed metadata as YAML. Feeding the
// result back through decode yields an identical entry, which keeps
// validation idempotent.
func (e *Entry) Frontmatter() ([]byte, error) {
	var doc any

	switch e.Collection {
	case CollectionBlog:
		front := blogFront{Meta: e.Meta}
		if e.Blog != nil {
			front.BlogMeta = *e.Blog
		}
		doc = front
	case CollectionProjects:
		front := projectFront{Meta: e.Meta}
		if e.Project != nil {
			front.ProjectMeta = *e.Project
		}
		doc = front
	case CollectionWork:
		front := workFront{Meta: e.Meta}
		if e.Work != nil {
			front.WorkMeta = *e.Work
		}
		doc = front
	case CollectionEducation:
		doc = educationFront{Meta: e.Meta}
	default:
		return nil, fmt.Errorf("unknown collection %q", e.Collection)
	}

	return yaml.Marshal(doc)
}

// String renders the entry back to its source form: a YAML
// front-matter block followed by the markdown body.
func (e *Entry) String() string {
	fm, err := e.Frontmatter()
	if err != nil {
		return ""
	}

	return fmt.Sprintf("---\n%s---\n\n%s\n", fm, e.Body)
}

// decode parses and validates one source file. Field problems are
// returned as violations, one per offending field, so the author sees
// everything wrong with the entry at once.
func decode(collection, file string, data []byte) (*Entry, []*SchemaViolation) {
	entry := &Entry{
		Collection: collection,
		File:       file,
	}

	var rest []byte
	var err error

	switch collection {
	case CollectionBlog:
		var front blogFront
		rest, err = frontmatter.Parse(bytes.NewReader(data), &front)
		entry.Meta = front.Meta
		entry.Blog = &front.BlogMeta
	case CollectionProjects:
		var front projectFront
		rest, err = frontmatter.Parse(bytes.NewReader(data), &front)
		entry.Meta = front.Meta
		entry.Project = &front.ProjectMeta
	case CollectionWork:
		var front workFront
		rest, err = frontmatter.Parse(bytes.NewReader(data), &front)
		entry.Meta = front.Meta
		entry.Work = &front.WorkMeta
	case CollectionEducation:
		var front educationFront
		rest, err = frontmatter.Parse(bytes.NewReader(data), &front)
		entry.Meta = front.Meta
	default:
		return nil, []*SchemaViolation{{File: file, Field: "collection", Err: fmt.Errorf("unknown collection %q", collection)}}
	}

	if err != nil {
		// A wrong-shaped value (string where a list belongs, etc.)
		// surfaces here as a decode error for the whole block.
		return nil, []*SchemaViolation{{File: file, Field: "front-matter", Err: err}}
	}

	// Trimmed so String() -> decode round-trips to an identical entry.
	entry.Body = bytes.TrimSpace(rest)

	var violations []*SchemaViolation

	if strings.TrimSpace(entry.Title) == "" {
		violations = append(violations, &SchemaViolation{File: file, Field: "title", Err: errRequiredField})
	}

	if strings.TrimSpace(entry.Summary) == "" {
		violations = append(violations, &SchemaViolation{File: file, Field: "summary", Err: errRequiredField})
	}

	published, legacy, dateErr := NormalizeDate(entry.Date)
	if dateErr != nil {
		violations = append(violations, &SchemaViolation{File: file, Field: "date", Err: dateErr})
	} else {
		entry.Published = published
		entry.LegacyDate = legacy
	}

	if entry.Work != nil {
		for _, span := range []struct {
			field string
			value string
		}{
			{"dateStart", entry.Work.DateStart},
			{"dateEnd", entry.Work.DateEnd},
		} {
			if span.value == "" {
				continue
			}

			if _, _, err := NormalizeDate(span.value); err != nil {
				violations = append(violations, &SchemaViolation{File: file, Field: span.field, Err: err})
			}
		}
	}

	if len(violations) > 0 {
		return nil, violations
	}

	base := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	entry.Slug = slug.Make(base)
	entry.Permalink = "/" + collection + "/" + entry.Slug + "/"

	return entry, nil
}
