package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeEntry(t *testing.T, root, collection, name, src string) {
	t.Helper()

	dir := filepath.Join(root, collection)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(filepath.Join(dir, name), []byte(src), 0644); err != nil {
		t.Fatal(err)
	}
}

func titles(entries []*Entry) []string {
	var out []string
	for _, e := range entries {
		out = append(out, e.Title)
	}

	return out
}

func TestLoad_SortOrderAndStability(t *testing.T) {
	root := t.TempDir()

	// Two entries share a date; the lexically earlier file is the
	// first-authored one and must stay first.
	writeEntry(t, root, CollectionBlog, "a-first.md",
		"---\ntitle: First Authored\nsummary: s\ndate: 2025-05-20\n---\nbody")
	writeEntry(t, root, CollectionBlog, "b-second.md",
		"---\ntitle: Second Authored\nsummary: s\ndate: 2025-05-20\n---\nbody")
	writeEntry(t, root, CollectionBlog, "c-old.md",
		"---\ntitle: Old Post\nsummary: s\ndate: 2024-01-01\n---\nbody")

	col, report := Load(root, CollectionBlog)
	if !report.OK() {
		t.Fatalf("unexpected violations: %v", report.Err())
	}

	want := []string{"First Authored", "Second Authored", "Old Post"}
	if diff := cmp.Diff(want, titles(col.Published())); diff != "" {
		t.Errorf("published order mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_DraftsNeverPublished(t *testing.T) {
	root := t.TempDir()

	// The draft carries the most recent date; recency must not leak
	// it into the published view.
	writeEntry(t, root, CollectionBlog, "draft.md",
		"---\ntitle: Draft\nsummary: s\ndate: 2099-01-01\ndraft: true\n---\nbody")
	writeEntry(t, root, CollectionBlog, "published.md",
		"---\ntitle: Published\nsummary: s\ndate: 2024-01-01\n---\nbody")

	col, report := Load(root, CollectionBlog)
	if !report.OK() {
		t.Fatalf("unexpected violations: %v", report.Err())
	}

	for _, entry := range col.Published() {
		if entry.Draft {
			t.Errorf("draft entry %q in published view", entry.Title)
		}
	}

	if diff := cmp.Diff([]string{"Published"}, titles(col.Published())); diff != "" {
		t.Errorf("published mismatch (-want +got):\n%s", diff)
	}

	if col.Len() != 2 {
		t.Errorf("Len() = %d, want 2 (drafts count in All)", col.Len())
	}

	if diff := cmp.Diff([]string{"Draft", "Published"}, titles(col.All())); diff != "" {
		t.Errorf("all-entries mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_ByTag(t *testing.T) {
	root := t.TempDir()

	writeEntry(t, root, CollectionBlog, "a.md",
		"---\ntitle: A\nsummary: s\ndate: 2025-03-01\ntags: [go, web]\n---\nbody")
	writeEntry(t, root, CollectionBlog, "b.md",
		"---\ntitle: B\nsummary: s\ndate: 2025-02-01\ntags: [go]\n---\nbody")
	writeEntry(t, root, CollectionBlog, "c.md",
		"---\ntitle: C\nsummary: s\ndate: 2025-01-01\ntags: [Go]\n---\nbody")
	writeEntry(t, root, CollectionBlog, "d.md",
		"---\ntitle: D\nsummary: s\ndate: 2025-04-01\ndraft: true\ntags: [go]\n---\nbody")

	col, report := Load(root, CollectionBlog)
	if !report.OK() {
		t.Fatalf("unexpected violations: %v", report.Err())
	}

	// Exact match, published order, drafts excluded; "Go" != "go".
	if diff := cmp.Diff([]string{"A", "B"}, titles(col.ByTag("go"))); diff != "" {
		t.Errorf("ByTag(go) mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{"C"}, titles(col.ByTag("Go"))); diff != "" {
		t.Errorf("ByTag(Go) mismatch (-want +got):\n%s", diff)
	}

	if got := col.ByTag("missing"); len(got) != 0 {
		t.Errorf("ByTag(missing) returned %d entries, want 0", len(got))
	}

	if diff := cmp.Diff([]string{"Go", "go", "web"}, col.Tags()); diff != "" {
		t.Errorf("Tags() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_PartialFailureIsolation(t *testing.T) {
	root := t.TempDir()

	writeEntry(t, root, CollectionBlog, "bad.md",
		"---\nsummary: s\ndate: 2025-01-01\n---\nbody")
	writeEntry(t, root, CollectionBlog, "good.md",
		"---\ntitle: Good\nsummary: s\ndate: 2025-01-02\n---\nbody")

	col, report := Load(root, CollectionBlog)

	// The sibling still loads.
	if diff := cmp.Diff([]string{"Good"}, titles(col.Published())); diff != "" {
		t.Errorf("published mismatch (-want +got):\n%s", diff)
	}

	// Exactly one violation naming the file and field.
	if len(report.Violations) != 1 {
		t.Fatalf("got %d violations, want 1: %v", len(report.Violations), report.Violations)
	}

	v := report.Violations[0]
	if v.Field != "title" {
		t.Errorf("violation field = %q, want %q", v.Field, "title")
	}

	if v.File != filepath.Join("blog", "bad.md") {
		t.Errorf("violation file = %q, want %q", v.File, filepath.Join("blog", "bad.md"))
	}

	// But the pass as a whole is failed.
	if report.OK() {
		t.Error("report.OK() = true, want false")
	}

	if report.Err() == nil {
		t.Error("report.Err() = nil, want aggregate error")
	}
}

func TestLoad_MissingDirectory(t *testing.T) {
	col, report := Load(t.TempDir(), CollectionEducation)
	if !report.OK() {
		t.Fatalf("unexpected violations: %v", report.Err())
	}

	if col.Len() != 0 {
		t.Errorf("Len() = %d, want 0", col.Len())
	}

	if got := col.Published(); len(got) != 0 {
		t.Errorf("Published() returned %d entries, want 0", len(got))
	}
}

func TestLoadLibrary(t *testing.T) {
	root := t.TempDir()

	writeEntry(t, root, CollectionBlog, "post.md",
		"---\ntitle: Post\nsummary: s\ndate: 2025-01-01\n---\nbody")
	writeEntry(t, root, CollectionProjects, "proj.md",
		"---\ntitle: Proj\nsummary: s\ndate: 2025-01-01\nrepoUrl: https://example.com\n---\nbody")
	writeEntry(t, root, CollectionWork, "broken.md",
		"---\ntitle: Job\nsummary: s\ndate: nope\n---\nbody")

	lib, report := LoadLibrary(root)

	if lib.Blog.Len() != 1 || lib.Projects.Len() != 1 {
		t.Errorf("unexpected collection sizes: blog=%d projects=%d", lib.Blog.Len(), lib.Projects.Len())
	}

	if lib.Collection(CollectionBlog) != lib.Blog {
		t.Error("Collection(blog) did not return the blog collection")
	}

	if lib.Collection("bogus") != nil {
		t.Error("Collection(bogus) should be nil")
	}

	// The broken work entry fails the pass without touching blog or
	// projects.
	if report.OK() {
		t.Fatal("report.OK() = true, want false")
	}

	if len(report.Violations) != 1 || report.Violations[0].Field != "date" {
		t.Errorf("unexpected violations: %v", report.Violations)
	}
}
