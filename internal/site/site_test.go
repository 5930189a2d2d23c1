package site

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const validSite = `site:
  title: Test Site
  description: A test site.
  author: Tester

pages:
  home: {title: Home, description: d}
  blog: {title: Blog, description: d}
  education: {title: Education, description: d}
  work: {title: Work, description: d}
  projects: {title: Projects, description: d}
  search: {title: Search, description: d}

nav:
  - {text: Home, href: /}
  - {text: Blog, href: /blog/}
  - {text: Education, href: /education/}
  - {text: Work, href: /work/}
  - {text: Projects, href: /projects/}

socials:
  - {name: github, icon: github, text: gh, href: https://github.com/tester}
`

func writeSiteFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "site.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestLoad(t *testing.T) {
	reg, err := Load(writeSiteFile(t, validSite))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if reg.Site.Title != "Test Site" || reg.Site.Author != "Tester" {
		t.Errorf("unexpected site identity: %+v", reg.Site)
	}

	// Navigation renders in exactly the authored order.
	var texts []string
	for _, link := range reg.Nav {
		texts = append(texts, link.Text)
	}

	want := []string{"Home", "Blog", "Education", "Work", "Projects"}
	if diff := cmp.Diff(want, texts); diff != "" {
		t.Errorf("nav order mismatch (-want +got):\n%s", diff)
	}

	if len(reg.Socials) != 1 || reg.Socials[0].Name != "github" {
		t.Errorf("unexpected socials: %+v", reg.Socials)
	}
}

func TestLoad_UnknownKeyRejected(t *testing.T) {
	_, err := Load(writeSiteFile(t, validSite+"\nbogus: value\n"))
	if err == nil {
		t.Fatal("expected error for unknown key, got nil")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
}

func TestValidate_Errors(t *testing.T) {
	valid := func() *Registry {
		reg, err := Load(writeSiteFile(t, validSite))
		if err != nil {
			t.Fatal(err)
		}
		return reg
	}

	tests := []struct {
		name      string
		mutate    func(*Registry)
		wantField string
	}{
		{
			name:      "empty site title",
			mutate:    func(r *Registry) { r.Site.Title = "" },
			wantField: "site.title",
		},
		{
			name:      "empty site description",
			mutate:    func(r *Registry) { r.Site.Description = "" },
			wantField: "site.description",
		},
		{
			name:      "empty author",
			mutate:    func(r *Registry) { r.Site.Author = "" },
			wantField: "site.author",
		},
		{
			name:      "empty page title",
			mutate:    func(r *Registry) { r.Pages.Blog.Title = "" },
			wantField: "pages.blog.title",
		},
		{
			name:      "empty nav text",
			mutate:    func(r *Registry) { r.Nav[2].Text = "" },
			wantField: "nav[2].text",
		},
		{
			name:      "empty social href",
			mutate:    func(r *Registry) { r.Socials[0].Href = "" },
			wantField: "socials[0].href",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := valid()
			tt.mutate(reg)

			err := reg.Validate()
			if err == nil {
				t.Fatal("Validate returned nil, want ConfigError")
			}

			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("error = %T, want *ConfigError", err)
			}

			if cfgErr.Field != tt.wantField {
				t.Errorf("field = %q, want %q", cfgErr.Field, tt.wantField)
			}

			if !strings.Contains(err.Error(), tt.wantField) {
				t.Errorf("error message %q does not name field %q", err.Error(), tt.wantField)
			}
		})
	}
}

func TestPageFor(t *testing.T) {
	reg, err := Load(writeSiteFile(t, validSite))
	if err != nil {
		t.Fatal(err)
	}

	page, ok := reg.PageFor("blog")
	if !ok || page.Title != "Blog" {
		t.Errorf("PageFor(blog) = %+v, %v", page, ok)
	}

	if _, ok := reg.PageFor("bogus"); ok {
		t.Error("PageFor(bogus) ok = true, want false")
	}
}
