package inline

import "regexp"

// Precompiled patterns. Labels exclude brackets and destinations exclude
// parentheses: the dialect has no escapes.
var (
	imagePattern = regexp.MustCompile(`!\[([^\[\]]*)\]\(([^\(\)]*)\)`)
	linkPattern  = regexp.MustCompile(`\[([^\[\]]*)\]\(([^\(\)]*)\)`)
)

// Pair is a label and destination found in link or image syntax.
type Pair struct {
	Label string
	URL   string
}

// ExtractImages returns every ![label](url) in text, left to right.
func ExtractImages(text string) []Pair {
	var pairs []Pair
	for _, m := range imagePattern.FindAllStringSubmatch(text, -1) {
		pairs = append(pairs, Pair{Label: m[1], URL: m[2]})
	}
	return pairs
}

// ExtractLinks returns every [label](url) in text that is not image syntax,
// left to right.
func ExtractLinks(text string) []Pair {
	var pairs []Pair
	for _, loc := range linkPattern.FindAllStringSubmatchIndex(text, -1) {
		// RE2 has no look-behind; reject matches that open an image.
		if loc[0] > 0 && text[loc[0]-1] == '!' {
			continue
		}
		pairs = append(pairs, Pair{
			Label: text[loc[2]:loc[3]],
			URL:   text[loc[4]:loc[5]],
		})
	}
	return pairs
}
