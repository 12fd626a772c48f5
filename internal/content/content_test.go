package content

import (
	"errors"
	"slices"
	"strings"
	"testing"
	"testing/fstest"
)

func doc(front, body string) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte("---\n" + front + "\n---\n" + body)}
}

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"projects/medical-ner.md": doc(
			"title: Medical NER\ndate: 2024-01-10\ntags: [nlp, python]",
			"Entity extraction.\n"),
		"projects/deal-or-no-deal.mdx": doc(
			"title: Deal or No Deal\ndate: \"2023-05-01\"\ntags:\n  - game",
			"A game.\n"),
		"projects/ai-stock-prediction.md": doc(
			"title: AI Stock Prediction\ndate: 2024-01-10\nyoutube: abc123",
			"LSTM forecasting.\n"),
		"projects/notes.txt":   {Data: []byte("ignored")},
		"projects/drafts/x.md": doc("title: nested", ""),
		"experience/zenoti.md": doc(
			"title: Software Engineer\ninstitution: Zenoti\ndate: 2021-07-01",
			""),
	}
}

func TestListByTypeSortsNewestFirst(t *testing.T) {
	items, err := NewStore(testFS()).ListByType("projects")
	if err != nil {
		t.Fatalf("ListByType: %v", err)
	}
	var slugs []string
	for _, it := range items {
		slugs = append(slugs, it.Slug)
	}
	want := []string{"ai-stock-prediction", "medical-ner", "deal-or-no-deal"}
	if !slices.Equal(slugs, want) {
		t.Fatalf("order %v, want %v", slugs, want)
	}
	if items[1].Title != "Medical NER" || !slices.Equal(items[1].Tags, []string{"nlp", "python"}) {
		t.Fatalf("front matter not decoded: %+v", items[1])
	}
	if items[1].Date != "2024-01-10" {
		t.Fatalf("date should keep its source text, got %q", items[1].Date)
	}
	if items[0].YouTube != "abc123" {
		t.Fatalf("youtube id missing: %+v", items[0])
	}
	if items[2].Content != "A game.\n" {
		t.Fatalf("body %q", items[2].Content)
	}
}

func TestListByTypeUnknownType(t *testing.T) {
	s := NewStore(testFS())
	for _, typ := range []string{"blog", "", "../etc", "projects/drafts"} {
		if _, err := s.ListByType(typ); !errors.Is(err, ErrUnknownType) {
			t.Fatalf("type %q: expected ErrUnknownType, got %v", typ, err)
		}
	}
}

func TestListByTypeMalformedFrontMatter(t *testing.T) {
	fsys := testFS()
	fsys["projects/broken.md"] = doc("title: [unclosed", "")
	_, err := NewStore(fsys).ListByType("projects")
	if err == nil {
		t.Fatal("expected malformed front matter to fail the listing")
	}
	if !strings.Contains(err.Error(), "projects/broken.md") {
		t.Fatalf("error should name the file: %v", err)
	}
}

func TestGet(t *testing.T) {
	s := NewStore(testFS())
	it, err := s.Get("experience", "zenoti")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if it.Institution != "Zenoti" || it.Tags == nil {
		t.Fatalf("unexpected item %+v", it)
	}
	if _, err := s.Get("experience", "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestParseWithoutFrontMatter(t *testing.T) {
	it, err := Parse([]byte("# Title\n\nbody"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if it.Title != "" || it.Content != "# Title\n\nbody" {
		t.Fatalf("unexpected item %+v", it)
	}
	if _, err := Parse([]byte("---\ntitle: x\n")); err == nil {
		t.Fatal("unterminated front matter should fail")
	}
}

func TestTypes(t *testing.T) {
	types, err := NewStore(testFS()).Types()
	if err != nil {
		t.Fatalf("Types: %v", err)
	}
	if !slices.Equal(types, []string{"experience", "projects"}) {
		t.Fatalf("types %v", types)
	}
}
