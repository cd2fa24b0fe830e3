// Package mdsite turns Markdown pages into a static HTML site.
//
// # Quick Start
//
// Render a single document to an HTML fragment:
//
//	html, err := mdsite.Render("# Hello\n\nThis is **bold**.")
//	// <div><h1>Hello</h1><p>This is <b>bold</b>.</p></div>
//
// Or build a full page with the default template:
//
//	conv, err := mdsite.NewConverter(mdsite.WithBasePath("/repo/"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	page, err := conv.Convert(ctx, mdsite.Input{Markdown: content})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("index.html", page.HTML, 0o644)
//
// # Markdown Dialect
//
// The native engine accepts a deliberately small dialect. Blocks are
// separated by blank lines and classified by prefix:
//
//	# .. ######     heading (h1..h6)
//	```...```      code block (content kept verbatim)
//	> line         blockquote (every line)
//	- item         unordered list (every line)
//	1. 2. 3.       ordered list (numbered from 1, consecutive)
//	anything else  paragraph
//
// Inside blocks, **bold**, _italic_, `code`, [text](href) and
// ![alt](src) are recognised. Emphasis does not nest, nothing is escaped,
// and a delimiter left open is an error (ErrUnterminatedDelimiter) rather
// than literal text.
//
// Every page needs a "# Title" block; its text fills {{ Title }} in the
// template and a page without one fails with ErrMissingTitle.
//
// # Conversion Pipeline
//
//  1. Markdown preprocessing (line endings, BOM, Unicode NFC)
//  2. Markdown to HTML via the native engine or Goldmark (WithEngine)
//  3. Template injection of {{ Title }} and {{ Content }}
//  4. Base path rewriting of root-relative href and src (WithBasePath)
//
// # Parallel Processing
//
// A Converter holds no per-call state and is safe for concurrent use.
// ResolvePoolSize picks a worker count for batch builds.
package mdsite
