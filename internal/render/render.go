// Package render assembles pages: goldmark converts entry bodies,
// html/template layouts produce the final documents, optionally
// minified on the way to disk.
package render

import (
	"bytes"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"
	"github.com/pkg/errors"
	"github.com/tdewolff/minify"
	mhtml "github.com/tdewolff/minify/html"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Rizky28eka/portfolio/internal/config"
	"github.com/Rizky28eka/portfolio/internal/content"
	"github.com/Rizky28eka/portfolio/internal/logger"
	"github.com/Rizky28eka/portfolio/internal/site"
)

// Layout file names the renderer executes by template name.
const (
	baseLayout   = "base.html"
	homeLayout   = "home.html"
	listLayout   = "list.html"
	singleLayout = "single.html"
	searchLayout = "search.html"
)

// Data is the context every layout receives.
type Data struct {
	Site    site.Site
	Page    site.Page
	Nav     []site.Link
	Socials []site.Social
	BaseURL string

	Collection string
	Entries    []*content.Entry
	Entry      *content.Entry
	Content    template.HTML
	Tag        string
	Tags       []string
}

// Renderer holds the parsed layouts and converters for one build.
type Renderer struct {
	reg       *site.Registry
	cfg       *config.Config
	log       *logger.Logger
	md        goldmark.Markdown
	templates *template.Template
	minifier  *minify.M
	caser     cases.Caser
}

// New parses the layout tree and prepares the markdown converter.
// base.html and the partials are parsed first so every page layout can
// reference them.
func New(reg *site.Registry, cfg *config.Config, log *logger.Logger) (*Renderer, error) {
	r := &Renderer{
		reg: reg,
		cfg: cfg,
		log: log,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
			goldmark.WithRendererOptions(
				gmhtml.WithHardWraps(),
			),
		),
		caser: cases.Title(language.English),
	}

	if cfg.Minify {
		m := minify.New()
		m.AddFunc("text/html", mhtml.Minify)
		r.minifier = m
	}

	templates, err := parseLayouts(cfg.LayoutsDir)
	if err != nil {
		return nil, err
	}
	r.templates = templates

	return r, nil
}

// parseLayouts walks the layouts dir and parses base.html plus
// partials before the page layouts.
func parseLayouts(dir string) (*template.Template, error) {
	var basePath string
	var partials []string
	var layouts []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".html") {
			return nil
		}

		switch {
		case filepath.Base(path) == baseLayout && filepath.Dir(path) == dir:
			basePath = path
		case strings.HasPrefix(filepath.Dir(path), filepath.Join(dir, "partials")):
			partials = append(partials, path)
		default:
			layouts = append(layouts, path)
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to find layout files in %s", dir)
	}

	if basePath == "" {
		return nil, errors.Errorf("%s not found in layouts directory %s", baseLayout, dir)
	}

	// slugify keeps tag hrefs in layouts consistent with the tag page
	// output paths.
	root := template.New(filepath.Base(basePath)).Funcs(template.FuncMap{
		"slugify": slug.Make,
	})

	templates, err := root.ParseFiles(append([]string{basePath}, partials...)...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse base layout and partials")
	}

	if len(layouts) > 0 {
		templates, err = templates.ParseFiles(layouts...)
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse page layouts")
		}
	}

	return templates, nil
}

// newData seeds a context with the registry constants. The registry is
// read-only, so every page sees identical values within one build.
func (r *Renderer) newData() Data {
	return Data{
		Site:    r.reg.Site,
		Nav:     r.reg.Nav,
		Socials: r.reg.Socials,
		BaseURL: r.cfg.BaseURL,
	}
}

// visible returns the entries a consumer may see. Preview mode is the
// only path that exposes drafts, and only because the operator asked.
func (r *Renderer) visible(col *content.Collection) []*content.Entry {
	if r.cfg.Preview {
		return col.All()
	}

	return col.Published()
}

// Site renders the whole site: home page, one listing page per
// collection, one page per entry, per-tag listing pages, and the
// search shell.
func (r *Renderer) Site(lib *content.Library) error {
	home := r.newData()
	home.Page = r.reg.Pages.Home
	home.Entries = r.visible(lib.Blog)
	if err := r.writePage(homeLayout, filepath.Join(r.cfg.OutputDir, "index.html"), home); err != nil {
		return err
	}

	for _, col := range lib.All() {
		if err := r.collection(col); err != nil {
			return err
		}
	}

	searchData := r.newData()
	searchData.Page = r.reg.Pages.Search
	if err := r.writePage(searchLayout, filepath.Join(r.cfg.OutputDir, "search", "index.html"), searchData); err != nil {
		return err
	}

	return nil
}

// collection renders the listing page, every entry page, and the tag
// pages for one collection.
func (r *Renderer) collection(col *content.Collection) error {
	page, ok := r.reg.PageFor(col.Name)
	if !ok {
		page = site.Page{Title: r.caser.String(col.Name)}
	}

	list := r.newData()
	list.Page = page
	list.Collection = col.Name
	list.Entries = r.visible(col)
	list.Tags = col.Tags()

	listPath := filepath.Join(r.cfg.OutputDir, col.Name, "index.html")
	if err := r.writePage(listLayout, listPath, list); err != nil {
		return err
	}

	for _, entry := range r.visible(col) {
		if err := r.entry(col, entry); err != nil {
			return err
		}
	}

	for _, tag := range col.Tags() {
		tagged := r.newData()
		tagged.Page = site.Page{
			Title:       r.caser.String(tag),
			Description: page.Description,
		}
		tagged.Collection = col.Name
		tagged.Tag = tag
		tagged.Entries = col.ByTag(tag)

		tagPath := filepath.Join(r.cfg.OutputDir, col.Name, "tags", slug.Make(tag), "index.html")
		if err := r.writePage(listLayout, tagPath, tagged); err != nil {
			return err
		}
	}

	return nil
}

// entry converts one entry's markdown body and renders its page.
func (r *Renderer) entry(col *content.Collection, entry *content.Entry) error {
	var body bytes.Buffer
	if err := r.md.Convert(entry.Body, &body); err != nil {
		return errors.Wrapf(err, "failed to convert markdown: %s", entry.File)
	}

	data := r.newData()
	data.Page = site.Page{Title: entry.Title, Description: entry.Summary}
	data.Collection = col.Name
	data.Entry = entry
	data.Content = template.HTML(body.String()) // #nosec G203 -- authored content

	out := filepath.Join(r.cfg.OutputDir, filepath.FromSlash(strings.TrimPrefix(entry.Permalink, "/")), "index.html")

	return r.writePage(singleLayout, out, data)
}

// writePage executes a layout into path, minifying when enabled.
func (r *Renderer) writePage(layout, path string, data Data) error {
	if r.templates.Lookup(layout) == nil {
		return errors.Errorf("layout %q not found", layout)
	}

	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, layout, data); err != nil {
		return errors.Wrapf(err, "failed to execute layout %q for %s", layout, path)
	}

	out := buf.Bytes()
	if r.minifier != nil {
		minified, err := r.minifier.Bytes("text/html", out)
		if err != nil {
			return errors.Wrapf(err, "failed to minify %s", path)
		}
		out = minified
	}

	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return errors.Wrapf(err, "failed to create directory for %s", path)
	}

	if err := os.WriteFile(path, out, 0644); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}

	r.log.Debug("generated page", "path", path, "layout", layout)

	return nil
}
