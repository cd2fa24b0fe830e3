package hints

// Notes:
// - ForServeAddress tests cannot use t.Parallel() because they modify the
//   package-level IsInContainer variable.

import (
	"strings"
	"testing"
)

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		paths    []string
		contains []string
		excludes []string
	}{
		{
			name:     "suggests user config path",
			paths:    []string{"site.yaml", "site.yml", "/home/u/.config/go-mdsite/site.yaml"},
			contains: []string{"--config", "or create /home/u/.config/go-mdsite/site.yaml"},
		},
		{
			name:     "no user path",
			paths:    []string{"site.yaml"},
			contains: []string{"--config"},
			excludes: []string{"or create"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ForConfigNotFound(tt.paths)
			if !strings.HasPrefix(got, "\n  hint: ") {
				t.Errorf("hint %q missing prefix", got)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("hint %q missing %q", got, want)
				}
			}
			for _, bad := range tt.excludes {
				if strings.Contains(got, bad) {
					t.Errorf("hint %q should not contain %q", got, bad)
				}
			}
		})
	}
}

func TestForTemplateNotFound(t *testing.T) {
	t.Parallel()

	if got := ForTemplateNotFound(nil); got != "" {
		t.Errorf("ForTemplateNotFound(nil) = %q, want empty", got)
	}
	got := ForTemplateNotFound([]string{"minimal", "page"})
	if !strings.Contains(got, "available: minimal, page") {
		t.Errorf("ForTemplateNotFound() = %q", got)
	}
}

func TestForUnterminatedDelimiter(t *testing.T) {
	t.Parallel()

	if got := ForUnterminatedDelimiter("**"); !strings.Contains(got, "close the ** marker") {
		t.Errorf("ForUnterminatedDelimiter(**) = %q", got)
	}
	if got := ForUnterminatedDelimiter(""); !strings.Contains(got, "close every") {
		t.Errorf("ForUnterminatedDelimiter(\"\") = %q", got)
	}
}

func TestStaticHints(t *testing.T) {
	t.Parallel()

	for name, got := range map[string]string{
		"output":      ForOutputDirectory(),
		"content":     ForContentDirectory("content"),
		"placeholder": ForMissingPlaceholder(),
		"title":       ForMissingTitle(),
	} {
		if !strings.HasPrefix(got, "\n  hint: ") || len(got) <= len("\n  hint: ") {
			t.Errorf("%s hint = %q, want formatted non-empty hint", name, got)
		}
	}
}

func TestForServeAddress_InContainer(t *testing.T) {
	orig := IsInContainer
	defer func() { IsInContainer = orig }()
	IsInContainer = func() bool { return true }

	got := ForServeAddress("localhost:8888")
	if !strings.Contains(got, "0.0.0.0:8888") {
		t.Errorf("ForServeAddress() = %q, want container hint", got)
	}

	got = ForServeAddress(":8888")
	if strings.Contains(got, "0.0.0.0") {
		t.Errorf("ForServeAddress(:8888) = %q, want no container hint", got)
	}
}

func TestForServeAddress_OnHost(t *testing.T) {
	orig := IsInContainer
	defer func() { IsInContainer = orig }()
	IsInContainer = func() bool { return false }

	got := ForServeAddress("localhost:8888")
	if !strings.Contains(got, "--addr") || strings.Contains(got, "Docker") {
		t.Errorf("ForServeAddress() = %q", got)
	}
}

func TestFormatHints(t *testing.T) {
	t.Parallel()

	if got := formatHints(nil); got != "" {
		t.Errorf("formatHints(nil) = %q, want empty", got)
	}
	if got := formatHints([]string{"a", "b"}); got != "\n  hint: a; b" {
		t.Errorf("formatHints() = %q", got)
	}
	if got := format(""); got != "" {
		t.Errorf("format(\"\") = %q, want empty", got)
	}
}
