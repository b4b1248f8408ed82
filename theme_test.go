package main

import "testing"

func TestLoadThemePalette_Known(t *testing.T) {
	palette, err := LoadThemePalette("dracula")
	if err != nil {
		t.Fatalf("expected dracula theme to load: %v", err)
	}
	if palette.Keyword == "" || palette.Text == "" || palette.SelectionBG == "" {
		t.Fatalf("theme palette has empty core colors: %+v", palette)
	}
}

func TestLoadThemePalette_Unknown(t *testing.T) {
	if _, err := LoadThemePalette("this-theme-does-not-exist"); err == nil {
		t.Fatalf("expected unknown theme error")
	}
}

func TestThemePaletteColorCoversEveryStyle(t *testing.T) {
	palette, err := LoadThemePalette("monokai")
	if err != nil {
		t.Fatalf("load monokai: %v", err)
	}
	for _, name := range []string{"type", "field", "function", "keyword", "macro", "enum", "primitive"} {
		if palette.Color(name) == "" {
			t.Fatalf("style %q has no color", name)
		}
	}
	if got := palette.Color("nope"); got != palette.Text {
		t.Fatalf("unknown style color = %q, want text color %q", got, palette.Text)
	}
}

func TestThemeNamesSorted(t *testing.T) {
	names := ThemeNames()
	if len(names) == 0 {
		t.Fatalf("no themes")
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Fatalf("names not sorted at %d: %q > %q", i, names[i-1], names[i])
		}
	}
}
