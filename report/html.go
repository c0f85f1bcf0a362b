package report

import "github.com/russross/blackfriday/v2"

// RenderHTML converts a stored Markdown summary into an HTML fragment for
// the print view.
func RenderHTML(markdown string) string {
	return string(blackfriday.Run([]byte(markdown),
		blackfriday.WithExtensions(blackfriday.CommonExtensions)))
}
