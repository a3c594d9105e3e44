package source

import (
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/briefpress/internal/notion"
	"golang.org/x/net/html"
)

// HTMLParser handles HTML files.
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader, filename string) ([]*notion.Block, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var blocks []*notion.Block

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if level := headingLevel(n.Data); level > 0 {
				if t := textContent(n); t != "" {
					blocks = append(blocks, heading(level, t))
				}
				return // text already extracted, skip children
			}
			switch n.Data {
			case "script", "style", "nav", "footer", "header":
				return
			case "li":
				if t := textContent(n); t != "" {
					b := notion.NewBlock(notion.TypeBulleted, t)
					blocks = append(blocks, &b)
				}
				return
			case "blockquote":
				if t := textContent(n); t != "" {
					b := notion.NewBlock(notion.TypeQuote, t)
					blocks = append(blocks, &b)
				}
				return
			case "p", "td":
				if t := textContent(n); t != "" {
					blocks = append(blocks, paragraph(t))
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	if body := findBody(doc); body != nil {
		walk(body)
	} else {
		walk(doc)
	}
	return blocks, nil
}

func headingLevel(tag string) int {
	switch tag {
	case "h1":
		return 1
	case "h2":
		return 2
	case "h3":
		return 3
	case "h4", "h5", "h6":
		return 3
	}
	return 0
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.Join(strings.Fields(buf.String()), " ")
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
