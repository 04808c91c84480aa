package slug

import "testing"

func TestMake(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"New York":      "new-york",
		"  São Paulo  ": "sao-paulo",
		"Zürich":        "zurich",
		"Ho Chi Minh":   "ho-chi-minh",
		"---":           "untitled",
		"":              "untitled",
	}
	for in, want := range cases {
		if got := Make(in); got != want {
			t.Fatalf("Make(%q) = %q, want %q", in, got, want)
		}
	}
}
