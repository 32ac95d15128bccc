package ingest

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// minParagraphChars filters nav crumbs and picture captions out of
// the article body.
const minParagraphChars = 40

// ParseArticle extracts an ArticleRecord's source fields from raw
// HTML. Pure function of its inputs; the publish-date fallback chain
// runs later in Extract.
func ParseArticle(pageURL, htmlContent string) ParsedPage {
	page := ParsedPage{URL: pageURL}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return page
	}

	page.Title = firstNonEmpty(
		metaContent(doc, `meta[property="og:title"]`),
		strings.TrimSpace(doc.Find("title").First().Text()),
	)
	page.TopImage = metaContent(doc, `meta[property="og:image"]`)
	page.PublishDate = firstNonEmpty(
		metaContent(doc, `meta[property="article:published_time"]`),
		metaContent(doc, `meta[name="date"]`),
		firstAttr(doc, "time[datetime]", "datetime"),
	)

	if author := firstNonEmpty(
		metaContent(doc, `meta[name="author"]`),
		metaContent(doc, `meta[property="article:author"]`),
	); author != "" {
		for _, name := range strings.Split(author, ",") {
			if name = strings.TrimSpace(name); name != "" {
				page.Authors = append(page.Authors, name)
			}
		}
	}

	page.Text = paragraphText(doc)
	if len(page.Text) < 200 {
		// Pages without usable <p> structure fall back to a visible
		// text walk over the whole document.
		if text := visibleText(htmlContent); len(text) > len(page.Text) {
			page.Text = text
		}
	}

	return page
}

// ParsedPage carries the raw fields scraped from one page.
type ParsedPage struct {
	URL         string
	Title       string
	Text        string
	PublishDate string
	Authors     []string
	TopImage    string
}

func paragraphText(doc *goquery.Document) string {
	var paragraphs []string
	doc.Find("article p").Each(func(_ int, s *goquery.Selection) {
		if t := strings.TrimSpace(s.Text()); len(t) >= minParagraphChars {
			paragraphs = append(paragraphs, t)
		}
	})
	if len(paragraphs) == 0 {
		doc.Find("p").Each(func(_ int, s *goquery.Selection) {
			if t := strings.TrimSpace(s.Text()); len(t) >= minParagraphChars {
				paragraphs = append(paragraphs, t)
			}
		})
	}
	return strings.Join(paragraphs, "\n\n")
}

// visibleText walks the parsed tree collecting text nodes, skipping
// script/style/nav subtrees.
func visibleText(htmlContent string) string {
	root, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return ""
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe", "nav", "header", "footer":
				return
			}
		}
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return strings.TrimSpace(buf.String())
}

func metaContent(doc *goquery.Document, selector string) string {
	return firstAttr(doc, selector, "content")
}

func firstAttr(doc *goquery.Document, selector, attr string) string {
	val, _ := doc.Find(selector).First().Attr(attr)
	return strings.TrimSpace(val)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
