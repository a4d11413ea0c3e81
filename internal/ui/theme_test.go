package ui

import "testing"

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	want := []string{"Nightfox", "Kanagawa", "Slate"}
	if len(names) != len(want) {
		t.Fatalf("ThemeNames() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("ThemeNames() = %v, want %v", names, want)
		}
	}
}

func TestNextTheme(t *testing.T) {
	tests := map[string]string{
		"Nightfox": "Kanagawa",
		"Kanagawa": "Slate",
		"Slate":    "Nightfox",
		"Unknown":  "Nightfox",
	}
	for current, want := range tests {
		if got := NextTheme(current); got != want {
			t.Errorf("NextTheme(%q) = %q, want %q", current, got, want)
		}
	}
}

func TestGetTheme_FallsBackToNightfox(t *testing.T) {
	if got := GetTheme("Slate").Name; got != "Slate" {
		t.Fatalf("GetTheme(Slate).Name = %q", got)
	}
	if got := GetTheme("").Name; got != "Nightfox" {
		t.Fatalf("GetTheme(\"\").Name = %q, want Nightfox", got)
	}
}

func TestThemesDefineViewColors(t *testing.T) {
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		for _, view := range []string{"source", "filtered", "rows"} {
			if th.ViewColors[view] == "" {
				t.Errorf("%s: no color for %s", name, view)
			}
		}
	}
}

func TestTruncateMiddle(t *testing.T) {
	if got := truncateMiddle("/var/log/app.log", 40); got != "/var/log/app.log" {
		t.Fatalf("short value changed: %q", got)
	}
	got := truncateMiddle("abcdefghij", 5)
	if got != "ab…ij" {
		t.Fatalf("truncateMiddle = %q, want ab…ij", got)
	}
}

func TestTail(t *testing.T) {
	lines := []string{"a", "b", "c"}
	if got := tail(lines, 2); len(got) != 2 || got[0] != "b" {
		t.Fatalf("tail = %v", got)
	}
	if got := tail(lines, 0); got != nil {
		t.Fatalf("tail(0) = %v", got)
	}
}
