package processor

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ZaguanLabs/aztrans"
	"golang.org/x/net/html"
)

// HTMLProcessor extracts paragraph text from HTML content.
type HTMLProcessor struct {
	selector    string
	ignoredTags map[string]bool
}

// NewHTMLProcessor creates a processor that selects <p> elements and skips
// the default ignored tags.
func NewHTMLProcessor() *HTMLProcessor {
	return &HTMLProcessor{
		selector:    "p",
		ignoredTags: aztrans.IgnoredTags,
	}
}

// NewHTMLProcessorWithIgnoredTags creates a new HTML processor with custom ignored tags.
func NewHTMLProcessorWithIgnoredTags(tags []string) *HTMLProcessor {
	ignored := make(map[string]bool)
	for _, tag := range tags {
		ignored[strings.ToLower(tag)] = true
	}
	return &HTMLProcessor{
		selector:    "p",
		ignoredTags: ignored,
	}
}

// Paragraphs returns the visible text of every paragraph element in
// document order. Text is returned untrimmed.
func (p *HTMLProcessor) Paragraphs(r io.Reader) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, &aztrans.ProcessorError{
			Message:     "failed to parse HTML",
			Cause:       err,
			ContentType: "html",
		}
	}

	paragraphs := make([]string, 0)
	doc.Find(p.selector).Each(func(_ int, s *goquery.Selection) {
		paragraphs = append(paragraphs, p.visibleText(s))
	})

	return paragraphs, nil
}

// ContentType returns "html".
func (p *HTMLProcessor) ContentType() string {
	return "html"
}

// visibleText concatenates descendant text nodes, skipping ignored subtrees.
func (p *HTMLProcessor) visibleText(s *goquery.Selection) string {
	var sb strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			sb.WriteString(n.Data)
			return
		case html.ElementNode:
			if p.ignoredTags[strings.ToLower(n.Data)] {
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	for _, n := range s.Nodes {
		walk(n)
	}

	return sb.String()
}
