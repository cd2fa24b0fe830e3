package pipeline

import (
	"errors"
	"io"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// rootRelativeAttr matches an href or src attribute whose value starts with
// a single slash. Group 1 is everything up to the slash, group 2 the byte
// after it, which must not be a second slash (protocol-relative URL).
var rootRelativeAttr = regexp.MustCompile(`(?i)(\s(?:href|src)\s*=\s*["']?)/([^/])`)

// NormalizeBasePath returns basePath with exactly one trailing slash and,
// unless it is an absolute URL, a leading slash. An empty base path is "/".
func NormalizeBasePath(basePath string) string {
	basePath = strings.TrimSpace(basePath)
	if basePath == "" {
		return "/"
	}
	if !strings.Contains(basePath, "://") && !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	return strings.TrimRight(basePath, "/") + "/"
}

// RewriteBasePath prefixes root-relative href and src attribute values with
// basePath, so a site built for "/" can be served from a subdirectory.
// If basePath normalises to "/", returns the HTML unchanged.
//
// Only tag tokens are touched; text, comments and raw script or style
// content pass through byte for byte. Does NOT rewrite:
//   - relative paths ("img/a.png") or anchors ("#top")
//   - absolute or protocol-relative URLs ("https://", "//cdn")
//   - srcset or CSS url() references
func RewriteBasePath(htmlContent, basePath string) (string, error) {
	base := NormalizeBasePath(basePath)
	if base == "/" {
		return htmlContent, nil
	}

	var sb strings.Builder
	sb.Grow(len(htmlContent))

	z := html.NewTokenizer(strings.NewReader(htmlContent))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if errors.Is(z.Err(), io.EOF) {
				return sb.String(), nil
			}
			return "", z.Err()
		case html.StartTagToken, html.SelfClosingTagToken:
			sb.WriteString(rewriteTag(string(z.Raw()), base))
		default:
			sb.Write(z.Raw())
		}
	}
}

// rewriteTag applies the base path to every matching attribute of one raw tag.
// base always ends with a slash, which replaces the matched leading slash.
func rewriteTag(raw, base string) string {
	matches := rootRelativeAttr.FindAllStringSubmatchIndex(raw, -1)
	if matches == nil {
		return raw
	}

	var sb strings.Builder
	last := 0
	for _, m := range matches {
		// m[2:4] is the attribute prefix, m[4:6] the byte after the slash.
		sb.WriteString(raw[last:m[3]])
		sb.WriteString(base)
		last = m[4]
	}
	sb.WriteString(raw[last:])
	return sb.String()
}
