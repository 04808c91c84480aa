package markdown

import (
	"strings"
	"testing"
)

func TestRenderAndSplitFrontmatter(t *testing.T) {
	t.Parallel()
	doc, err := RenderFrontmatter(map[string]any{"laps": 2, "title": "Morning run"}, "# Laps\n")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	meta, body, err := SplitFrontmatter(doc)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if meta["laps"] != 2 || meta["title"] != "Morning run" {
		t.Fatalf("unexpected meta: %#v", meta)
	}
	if strings.TrimSpace(body) != "# Laps" {
		t.Fatalf("unexpected body: %q", body)
	}
}

func TestSplitFrontmatterWithoutBlock(t *testing.T) {
	t.Parallel()
	meta, body, err := SplitFrontmatter("plain")
	if err != nil || len(meta) != 0 || body != "plain" {
		t.Fatalf("unexpected result: %v %v %q", err, meta, body)
	}
	if _, _, err := SplitFrontmatter("---\nkey: 1\n"); err == nil {
		t.Fatalf("expected missing separator error")
	}
}

func TestTableEscapesPipes(t *testing.T) {
	t.Parallel()
	got := Table([]string{"Lap", "Note"}, [][]string{{"1", "a|b"}})
	want := "| Lap | Note |\n| --- | --- |\n| 1 | a\\|b |\n"
	if got != want {
		t.Fatalf("unexpected table:\n%s", got)
	}
}
