package pipeline

// Notes:
// - Tests RewriteBasePath through its public API only
// - The tokenizer error branch is not covered: x/net/html only reports
//   io.EOF for in-memory readers

import (
	"strings"
	"testing"

	"golang.org/x/net/html"
)

// ---------------------------------------------------------------------------
// TestNormalizeBasePath
// ---------------------------------------------------------------------------

func TestNormalizeBasePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"", "/"},
		{"   ", "/"},
		{"/", "/"},
		{"//", "/"},
		{"/repo/", "/repo/"},
		{"/repo", "/repo/"},
		{"repo", "/repo/"},
		{"repo/sub//", "/repo/sub/"},
		{"https://example.com/site", "https://example.com/site/"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			if got := NormalizeBasePath(tt.in); got != tt.want {
				t.Errorf("NormalizeBasePath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRewriteBasePath
// ---------------------------------------------------------------------------

func TestRewriteBasePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		html     string
		basePath string
		want     string
	}{
		{
			name:     "root relative link",
			html:     `<a href="/blog/">Blog</a>`,
			basePath: "/repo/",
			want:     `<a href="/repo/blog/">Blog</a>`,
		},
		{
			name:     "root relative image",
			html:     `<img src="/images/tolkien.png" alt="JRR"></img>`,
			basePath: "/repo/",
			want:     `<img src="/repo/images/tolkien.png" alt="JRR"></img>`,
		},
		{
			name:     "site root link",
			html:     `<a href="/">Home</a>`,
			basePath: "/repo/",
			want:     `<a href="/repo/">Home</a>`,
		},
		{
			name:     "base path without slashes is normalized",
			html:     `<a href="/x">x</a>`,
			basePath: "repo",
			want:     `<a href="/repo/x">x</a>`,
		},
		{
			name:     "absolute url base",
			html:     `<link href="/index.css" rel="stylesheet">`,
			basePath: "https://example.com/site",
			want:     `<link href="https://example.com/site/index.css" rel="stylesheet">`,
		},
		{
			name:     "single quoted and unquoted values",
			html:     `<a href='/a'>a</a><img src=/b.png>`,
			basePath: "/r/",
			want:     `<a href='/r/a'>a</a><img src=/r/b.png>`,
		},
		{
			name:     "self closing tag",
			html:     `<img src="/a.png" />`,
			basePath: "/r/",
			want:     `<img src="/r/a.png" />`,
		},
		{
			name:     "both attributes in one tag",
			html:     `<a href="/a"><img src="/b.png"></a>`,
			basePath: "/r/",
			want:     `<a href="/r/a"><img src="/r/b.png"></a>`,
		},
		{
			name:     "relative path unchanged",
			html:     `<a href="other.html">x</a>`,
			basePath: "/r/",
			want:     `<a href="other.html">x</a>`,
		},
		{
			name:     "anchor unchanged",
			html:     `<a href="#section">x</a>`,
			basePath: "/r/",
			want:     `<a href="#section">x</a>`,
		},
		{
			name:     "external url unchanged",
			html:     `<a href="https://www.boot.dev">x</a>`,
			basePath: "/r/",
			want:     `<a href="https://www.boot.dev">x</a>`,
		},
		{
			name:     "protocol relative url unchanged",
			html:     `<img src="//cdn.example.com/logo.png">`,
			basePath: "/r/",
			want:     `<img src="//cdn.example.com/logo.png">`,
		},
		{
			name:     "data attribute unchanged",
			html:     `<div data-src="/x"></div>`,
			basePath: "/r/",
			want:     `<div data-src="/x"></div>`,
		},
		{
			name:     "attribute text outside tags unchanged",
			html:     `<p>write href="/x" to link</p>`,
			basePath: "/r/",
			want:     `<p>write href="/x" to link</p>`,
		},
		{
			name:     "script body unchanged",
			html:     `<script>var s = ' src="/x"';</script>`,
			basePath: "/r/",
			want:     `<script>var s = ' src="/x"';</script>`,
		},
		{
			name:     "comment unchanged",
			html:     `<!-- <a href="/x"> -->`,
			basePath: "/r/",
			want:     `<!-- <a href="/x"> -->`,
		},
		{
			name:     "root base path is a no-op",
			html:     `<a href="/x">x</a>`,
			basePath: "/",
			want:     `<a href="/x">x</a>`,
		},
		{
			name:     "empty base path is a no-op",
			html:     `<a href="/x">x</a>`,
			basePath: "",
			want:     `<a href="/x">x</a>`,
		},
		{
			name:     "empty input",
			html:     "",
			basePath: "/r/",
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := RewriteBasePath(tt.html, tt.basePath)
			if err != nil {
				t.Fatalf("RewriteBasePath() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("RewriteBasePath()\n  got:  %q\n  want: %q", got, tt.want)
			}
		})
	}
}

func TestRewriteBasePath_FullDocument(t *testing.T) {
	t.Parallel()

	doc := `<!DOCTYPE html>
<html>
<head>
<title>Home</title>
<link href="/index.css" rel="stylesheet">
</head>
<body>
<article><div><p><a href="/contact">Contact</a></p></div></article>
</body>
</html>`

	got, err := RewriteBasePath(doc, "/repo/")
	if err != nil {
		t.Fatalf("RewriteBasePath() error = %v", err)
	}

	if _, err := html.Parse(strings.NewReader(got)); err != nil {
		t.Fatalf("output does not parse: %v", err)
	}

	want := strings.NewReplacer(`href="/index.css"`, `href="/repo/index.css"`, `href="/contact"`, `href="/repo/contact"`).Replace(doc)
	if got != want {
		t.Errorf("RewriteBasePath()\n  got:  %q\n  want: %q", got, want)
	}
}
