// Package site holds the configuration registry: site identity,
// per-page metadata, navigation links, and social links. The registry
// is loaded once at process start from a YAML file and never mutated
// afterward; every consumer receives the same *Registry by reference.
package site

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Page is the metadata for one logical site section.
type Page struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// Site is the whole-site identity metadata.
type Site struct {
	Page   `yaml:",inline"`
	Author string `yaml:"author"`
}

// Link is one navigation menu entry. Order in the Nav slice is the
// rendering order.
type Link struct {
	Text string `yaml:"text"`
	Href string `yaml:"href"`
}

// Social is one social-profile entry.
type Social struct {
	Name string `yaml:"name"`
	Icon string `yaml:"icon"`
	Text string `yaml:"text"`
	Href string `yaml:"href"`
}

// Pages holds the per-section page metadata.
type Pages struct {
	Home      Page `yaml:"home"`
	Blog      Page `yaml:"blog"`
	Education Page `yaml:"education"`
	Work      Page `yaml:"work"`
	Projects  Page `yaml:"projects"`
	Search    Page `yaml:"search"`
}

// Registry is the process-wide set of configuration constants.
type Registry struct {
	Site    Site     `yaml:"site"`
	Pages   Pages    `yaml:"pages"`
	Nav     []Link   `yaml:"nav"`
	Socials []Social `yaml:"socials"`
}

// ConfigError reports a registry value that fails its contract. It is
// fatal: every page render depends on the registry, so loading aborts
// immediately instead of collecting.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error: %s: %s", e.Field, e.Reason)
}

// Load reads and validates the registry from a YAML file. Unknown keys
// are rejected so an authoring typo cannot silently drop a value.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read site file: %s", path)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var reg Registry
	if err := dec.Decode(&reg); err != nil {
		return nil, errors.Wrapf(err, "failed to parse site file: %s", path)
	}

	if err := reg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid site file: %s", path)
	}

	return &reg, nil
}

// Validate checks every registry constant against its type contract.
func (r *Registry) Validate() error {
	if r.Site.Title == "" {
		return &ConfigError{Field: "site.title", Reason: "must be non-empty"}
	}

	if r.Site.Description == "" {
		return &ConfigError{Field: "site.description", Reason: "must be non-empty"}
	}

	if r.Site.Author == "" {
		return &ConfigError{Field: "site.author", Reason: "must be non-empty"}
	}

	pages := map[string]Page{
		"pages.home":      r.Pages.Home,
		"pages.blog":      r.Pages.Blog,
		"pages.education": r.Pages.Education,
		"pages.work":      r.Pages.Work,
		"pages.projects":  r.Pages.Projects,
		"pages.search":    r.Pages.Search,
	}

	for field, page := range pages {
		if page.Title == "" {
			return &ConfigError{Field: field + ".title", Reason: "must be non-empty"}
		}

		if page.Description == "" {
			return &ConfigError{Field: field + ".description", Reason: "must be non-empty"}
		}
	}

	for i, link := range r.Nav {
		if link.Text == "" {
			return &ConfigError{Field: fmt.Sprintf("nav[%d].text", i), Reason: "must be non-empty"}
		}

		if link.Href == "" {
			return &ConfigError{Field: fmt.Sprintf("nav[%d].href", i), Reason: "must be non-empty"}
		}
	}

	for i, social := range r.Socials {
		if social.Name == "" {
			return &ConfigError{Field: fmt.Sprintf("socials[%d].name", i), Reason: "must be non-empty"}
		}

		if social.Href == "" {
			return &ConfigError{Field: fmt.Sprintf("socials[%d].href", i), Reason: "must be non-empty"}
		}
	}

	return nil
}

// PageFor returns the page metadata for a collection name, ok=false
// when the collection has no configured section.
func (r *Registry) PageFor(collection string) (Page, bool) {
	switch collection {
	case "blog":
		return r.Pages.Blog, true
	case "education":
		return r.Pages.Education, true
	case "work":
		return r.Pages.Work, true
	case "projects":
		return r.Pages.Projects, true
	default:
		return Page{}, false
	}
}
