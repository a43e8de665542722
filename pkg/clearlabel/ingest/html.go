package ingest

import (
	"strings"

	"golang.org/x/net/html"
)

// StripHTML extracts visible text from markup. Label text pasted from web
// pages or emitted by OCR post-processors sometimes carries tags; plain
// text passes through unchanged. Block-ish boundaries become newlines so
// the extractor still sees statement separators.
func StripHTML(s string) string {
	if !strings.ContainsRune(s, '<') {
		return s
	}

	tok := html.NewTokenizer(strings.NewReader(s))
	var b strings.Builder
	skipDepth := 0

	for {
		switch tok.Next() {
		case html.ErrorToken:
			return b.String()
		case html.StartTagToken:
			name, _ := tok.TagName()
			switch string(name) {
			case "script", "style":
				skipDepth++
			case "br", "p", "li", "div", "tr":
				b.WriteByte('\n')
			}
		case html.EndTagToken:
			name, _ := tok.TagName()
			switch string(name) {
			case "script", "style":
				if skipDepth > 0 {
					skipDepth--
				}
			case "p", "li", "div", "tr":
				b.WriteByte('\n')
			}
		case html.TextToken:
			if skipDepth == 0 {
				b.Write(tok.Text())
			}
		}
	}
}
