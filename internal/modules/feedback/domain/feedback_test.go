package domain

import "testing"

func TestClampVolume(t *testing.T) {
	t.Parallel()
	cases := map[float64]float64{-0.5: 0, 0: 0, 0.7: 0.7, 1: 1, 3: 1}
	for in, want := range cases {
		if got := ClampVolume(in); got != want {
			t.Fatalf("ClampVolume(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestResolveSound(t *testing.T) {
	t.Parallel()
	if got := ResolveSound("alarm-3"); got != "alarm-3.mp3" {
		t.Fatalf("id lookup: %q", got)
	}
	if got := ResolveSound("classic-bell.mp3"); got != "classic-bell.mp3" {
		t.Fatalf("file lookup: %q", got)
	}
	if got := ResolveSound("custom.wav"); got != "custom.wav" {
		t.Fatalf("passthrough: %q", got)
	}
}
