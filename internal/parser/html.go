package parser

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

type htmlParser struct{}

func (htmlParser) parse(r io.Reader) (*outline, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	o := &outline{}
	root := findElement(doc, "body")
	if root == nil {
		root = doc
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if level := htmlHeadingLevel(n.Data); level > 0 {
				o.heading(nodeText(n), level)
				return
			}
			switch n.Data {
			case "script", "style", "nav", "footer", "noscript":
				return
			case "p", "td", "th", "blockquote", "pre":
				o.text(nodeText(n))
				return
			case "li":
				if t := nodeText(n); t != "" {
					o.text("- " + t)
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return o, nil
}

func htmlHeadingLevel(tag string) int {
	if len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6' {
		return int(tag[1] - '0')
	}
	return 0
}

func nodeText(n *html.Node) string {
	var sb strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}
