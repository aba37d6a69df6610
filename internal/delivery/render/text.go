package render

import (
	"strings"

	"golang.org/x/net/html"
)

// PlainText strips markup from an advertisement description. Block level
// elements become line breaks and whitespace runs collapse.
func PlainText(fragment string) string {
	z := html.NewTokenizer(strings.NewReader(fragment))

	var b strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF or malformed input; either way keep what was read.
			return tidy(b.String())
		case html.TextToken:
			b.Write(z.Text())
		case html.StartTagToken, html.SelfClosingTagToken, html.EndTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "br", "p", "div", "li", "h1", "h2", "h3", "h4", "tr":
				b.WriteByte('\n')
			}
		}
	}
}

func tidy(s string) string {
	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

// Truncate shortens s to at most n runes, marking the cut with an ellipsis.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 1 {
		return string(runes[:n])
	}
	return strings.TrimSpace(string(runes[:n-1])) + "…"
}
