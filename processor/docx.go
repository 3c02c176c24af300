package processor

import (
	"archive/zip"
	"errors"
	"os"
	"strings"

	"github.com/ZaguanLabs/aztrans"
	"github.com/fumiama/go-docx"
)

// DocxCodec reads and writes Word (.docx) documents.
//
// Only top-level body paragraphs are read; tables and other block content
// are skipped. Written paragraphs are a single unformatted run each.
type DocxCodec struct{}

// NewDocxCodec creates a new .docx codec.
func NewDocxCodec() *DocxCodec {
	return &DocxCodec{}
}

// ReadParagraphs returns the plain text of every body paragraph in order.
func (c *DocxCodec) ReadParagraphs(path string) ([]string, error) {
	f, err := os.Open(path) // #nosec G304 - path is intentionally user-provided
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	if err := checkMainPart(f, info.Size()); err != nil {
		return nil, err
	}

	doc, err := docx.Parse(f, info.Size())
	if err != nil {
		return nil, &aztrans.ProcessorError{
			Message:     "document has no readable body",
			Cause:       err,
			ContentType: "docx",
		}
	}

	paragraphs := make([]string, 0, len(doc.Document.Body.Items))
	for _, item := range doc.Document.Body.Items {
		if para, ok := item.(*docx.Paragraph); ok {
			paragraphs = append(paragraphs, paragraphText(para))
		}
	}

	return paragraphs, nil
}

// WriteParagraphs creates (or overwrites) path with one paragraph per string.
func (c *DocxCodec) WriteParagraphs(path string, paragraphs []string) error {
	doc := docx.New().WithDefaultTheme()
	for _, text := range paragraphs {
		doc.AddParagraph().AddText(text)
	}

	f, err := os.Create(path) // #nosec G304 - path is derived from the user-provided input
	if err != nil {
		return err
	}

	if _, err := doc.WriteTo(f); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

// mainPart is the package part holding the document body.
const mainPart = "word/document.xml"

// errNoMainPart is the cause reported for packages without a document body.
var errNoMainPart = errors.New("missing " + mainPart)

// checkMainPart rejects archives that are not a zip or lack the body part.
// The parser would otherwise return an empty document for them.
func checkMainPart(f *os.File, size int64) error {
	zr, err := zip.NewReader(f, size)
	if err != nil {
		return &aztrans.ProcessorError{
			Message:     "document is not a zip package",
			Cause:       err,
			ContentType: "docx",
		}
	}

	for _, zf := range zr.File {
		if zf.Name == mainPart {
			return nil
		}
	}

	return &aztrans.ProcessorError{
		Message:     "document has no readable body",
		Cause:       errNoMainPart,
		ContentType: "docx",
	}
}

// paragraphText concatenates the text of every run, including runs inside hyperlinks.
func paragraphText(p *docx.Paragraph) string {
	var sb strings.Builder
	for _, child := range p.Children {
		switch c := child.(type) {
		case *docx.Run:
			writeRunText(&sb, c)
		case *docx.Hyperlink:
			writeRunText(&sb, &c.Run)
		}
	}
	return sb.String()
}

func writeRunText(sb *strings.Builder, r *docx.Run) {
	for _, child := range r.Children {
		if t, ok := child.(*docx.Text); ok {
			sb.WriteString(t.Text)
		}
	}
}

// Verify DocxCodec implements DocumentCodec
var _ DocumentCodec = (*DocxCodec)(nil)
