package mdsite_test

import (
	"context"
	"fmt"
	"sync"

	"github.com/alnah/go-mdsite"
)

// Example demonstrates rendering a document fragment.
func Example() {
	html, err := mdsite.Render("# Hello World\n\nThis is **bold** and _italic_.")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(html)
	// Output: <div><h1>Hello World</h1><p>This is <b>bold</b> and <i>italic</i>.</p></div>
}

// ExampleConverter_Convert demonstrates building a full page.
func ExampleConverter_Convert() {
	conv, err := mdsite.NewConverter(
		mdsite.WithTemplate("<title>{{ Title }}</title>{{ Content }}"),
		mdsite.WithBasePath("/repo/"),
	)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	page, err := conv.Convert(context.Background(), mdsite.Input{
		Markdown: "# Contact\n\nBack [home](/).",
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(page.Title)
	fmt.Println(string(page.HTML))
	// Output:
	// Contact
	// <title>Contact</title><div><h1>Contact</h1><p>Back <a href="/repo/">home</a>.</p></div>
}

// ExampleExtractTitle demonstrates reading a page title.
func ExampleExtractTitle() {
	title, err := mdsite.ExtractTitle("Intro paragraph.\n\n# Getting Started\n\n## Install")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(title)
	// Output: Getting Started
}

// Example_parallel demonstrates sharing one Converter across goroutines.
func Example_parallel() {
	conv, err := mdsite.NewConverter(mdsite.WithTemplate("{{ Content }}"))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	docs := []string{"# One", "# Two", "# Three"}
	titles := make([]string, len(docs))

	var wg sync.WaitGroup
	for i, doc := range docs {
		wg.Add(1)
		go func(i int, doc string) {
			defer wg.Done()
			page, err := conv.Convert(context.Background(), mdsite.Input{Markdown: doc})
			if err != nil {
				titles[i] = "error"
				return
			}
			titles[i] = page.Title
		}(i, doc)
	}
	wg.Wait()

	fmt.Println(titles)
	// Output: [One Two Three]
}
