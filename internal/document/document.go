package document

import (
	"strings"
	"unicode/utf8"
)

// Document is the text extracted from one uploaded PDF.
type Document struct {
	Title string // Filename without extension
	Pages []Page // One entry per PDF page, in order
}

// Page holds the text of a single PDF page. Text is empty when the page had
// no extractable text or extraction failed.
type Page struct {
	Number int // 1-based
	Text   string
}

// PageCount returns the number of pages, including empty ones.
func (d *Document) PageCount() int {
	return len(d.Pages)
}

// PageTexts returns the per-page strings in page order.
func (d *Document) PageTexts() []string {
	out := make([]string, len(d.Pages))
	for i, p := range d.Pages {
		out[i] = p.Text
	}
	return out
}

// FullText joins all pages with a single space and trims the result.
func (d *Document) FullText() string {
	return strings.TrimSpace(strings.Join(d.PageTexts(), " "))
}

// CharCount is the number of characters in FullText.
func (d *Document) CharCount() int {
	return utf8.RuneCountInString(d.FullText())
}

// Empty reports whether no text could be extracted from any page.
func (d *Document) Empty() bool {
	return d.FullText() == ""
}
