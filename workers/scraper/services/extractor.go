package services

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/carolinefzhang/selective-practice/workers/scraper/config"
	"github.com/carolinefzhang/selective-practice/workers/scraper/domain"
	"github.com/carolinefzhang/selective-practice/workers/scraper/repositories"
)

const containerProbeTimeout = 2 * time.Second

var (
	// Stays within a line so row boundaries survive normalization.
	pipeSpacingRe  = regexp.MustCompile(`[ \t]*\|[ \t]*`)
	trailingPipeRe = regexp.MustCompile(`[ \t]*\|[ \t]*(\n|$)`)
	blankLinesRe   = regexp.MustCompile(`(\n\s*)+`)
	spacesRe       = regexp.MustCompile(`[ \t]+`)
)

// Extractor reads one QuestionRecord from the currently loaded question view.
// It never fails on missing images; an absent question container yields an
// empty record, which is the loop's stop signal.
type Extractor struct {
	cfg *config.Config
}

func NewExtractor(cfg *config.Config) *Extractor {
	return &Extractor{cfg: cfg}
}

func (e *Extractor) Extract(ctx context.Context, page repositories.Page) (domain.QuestionRecord, error) {
	sel := e.cfg.Selectors

	found, err := page.Exists(ctx, sel.QuestionContainer, containerProbeTimeout)
	if err != nil {
		return domain.QuestionRecord{}, err
	}
	if !found {
		return domain.QuestionRecord{}, nil
	}

	// Question and options live in separate containers, so parse the whole
	// rendered view once.
	markup, err := page.OuterHTML(ctx, "body")
	if err != nil {
		return domain.QuestionRecord{}, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return domain.QuestionRecord{}, err
	}

	record := domain.QuestionRecord{Note: e.cfg.Note}

	question := doc.Find(sel.QuestionContainer).First()
	record.Question = flattenContent(question)
	record.QuestionImages = imageSources(question)

	doc.Find(sel.Option).Each(func(_ int, opt *goquery.Selection) {
		text := strings.TrimSpace(opt.Find(sel.OptionText).First().Text())
		images := imageSources(opt)
		record.Options = append(record.Options, domain.Option{Text: text, ImageURLs: images})

		// The correct option carries a structural marker (check icon).
		if opt.Find(sel.CorrectMarker).Length() > 0 && record.Answer == "" {
			record.Answer = text
			record.AnswerImages = images
		}
	})

	return record, nil
}

func imageSources(s *goquery.Selection) []string {
	var urls []string
	s.Find("img").Each(func(_ int, img *goquery.Selection) {
		if src, ok := img.Attr("src"); ok && src != "" {
			urls = append(urls, src)
		}
	})
	return urls
}

// flattenContent renders a selection to plain text while keeping tabular
// structure readable: cell boundaries become " | " and row boundaries become
// newlines, then whitespace is collapsed.
func flattenContent(s *goquery.Selection) string {
	if len(s.Nodes) == 0 {
		return ""
	}
	var b strings.Builder
	flattenNode(s.Nodes[0], &b)

	text := b.String()
	text = pipeSpacingRe.ReplaceAllString(text, " | ")
	// Every cell appends a separator, so each row carries one dangling pipe.
	text = trailingPipeRe.ReplaceAllString(text, "$1")
	text = spacesRe.ReplaceAllString(text, " ")
	text = blankLinesRe.ReplaceAllString(text, "\n")
	return strings.TrimSpace(text)
}

func flattenNode(n *html.Node, b *strings.Builder) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			b.WriteString(c.Data)
		case html.ElementNode:
			switch c.Data {
			case "script", "style":
				// skip
			case "td", "th":
				flattenNode(c, b)
				b.WriteString(" | ")
			case "tr":
				flattenNode(c, b)
				b.WriteString("\n")
			case "br":
				b.WriteString("\n")
			case "p", "div", "li", "table":
				flattenNode(c, b)
				b.WriteString("\n")
			default:
				flattenNode(c, b)
			}
		}
	}
}
