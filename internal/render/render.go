package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strconv"
	"strings"

	"github.com/dgallion1/sentchunk/internal/chunker"
	"github.com/dgallion1/sentchunk/internal/pipeline"
	"github.com/yuin/goldmark"
)

//go:embed templates/page.html
var templates embed.FS

// Renderer turns analyses into the HTML result page.
type Renderer struct {
	md   goldmark.Markdown
	page *template.Template
}

func New() (*Renderer, error) {
	page, err := template.ParseFS(templates, "templates/page.html")
	if err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}
	return &Renderer{
		md:   goldmark.New(),
		page: page,
	}, nil
}

// PageView is the data for one rendering of the page. With neither Error nor
// Doc set the page shows the idle upload prompt.
type PageView struct {
	Error string
	Doc   *DocView
}

// DocView is the result section for one analysis.
type DocView struct {
	ID         string
	Filename   string
	Pages      int
	Characters int
	Warning    string

	SentenceCount int
	HasSentences  bool
	Range         chunker.Range
	MaxStart      int
	MinEnd        int
	SentencesHTML template.HTML

	PreviewChars int
	RawPreview   string

	Sample        chunker.WindowSample
	SampleHTML    template.HTML
	RechunkedHTML template.HTML
}

// Document builds the result section for an analysis. rng is ignored when
// the analysis has no sentences.
func (r *Renderer) Document(an *pipeline.Analysis, rng chunker.Range, sample chunker.WindowSample, previewChars int) (*DocView, error) {
	v := &DocView{
		ID:            an.ID,
		Filename:      an.Filename,
		Pages:         an.PageCount,
		Characters:    an.CharCount,
		SentenceCount: len(an.Sentences),
		PreviewChars:  previewChars,
		RawPreview:    an.RawPreview(previewChars),
		Sample:        sample,
	}
	if an.NoText {
		v.Warning = pipeline.NoTextWarning
		return v, nil
	}
	if len(an.Sentences) == 0 {
		return v, nil
	}

	v.HasSentences = true
	v.Range = rng
	v.MaxStart = len(an.Sentences) - 1
	v.MinEnd = rng.Start + 1

	var err error
	if v.SentencesHTML, err = r.Markdown(IndexedMarkdown(chunker.Select(an.Sentences, rng))); err != nil {
		return nil, err
	}
	if sample.Available {
		if v.SampleHTML, err = r.Markdown(IndexedMarkdown(sample.Sentences)); err != nil {
			return nil, err
		}
		if v.RechunkedHTML, err = r.Markdown(IndexedMarkdown(sample.Rechunked)); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// Page writes the full HTML page.
func (r *Renderer) Page(w io.Writer, v PageView) error {
	var buf bytes.Buffer
	if err := r.page.Execute(&buf, v); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// Markdown converts markdown source to HTML. Raw HTML in the source is not
// passed through.
func (r *Renderer) Markdown(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// IndexedMarkdown formats each sentence as its own paragraph prefixed by its
// index in bold: "**12**. Sentence text."
func IndexedMarkdown(items []chunker.Indexed) string {
	var sb strings.Builder
	for i, it := range items {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString("**")
		sb.WriteString(strconv.Itoa(it.Index))
		sb.WriteString("**. ")
		sb.WriteString(literal(it.Text))
	}
	return sb.String()
}

var entityReplacer = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// literal keeps angle brackets in extracted text visible instead of letting
// the markdown renderer treat them as raw HTML. Line breaks inside a sentence
// are folded so each sentence stays a single paragraph.
func literal(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return entityReplacer.Replace(s)
}
