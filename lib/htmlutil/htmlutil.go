// Package htmlutil extracts text and links from parsed markup.
package htmlutil

import (
	"context"
	"net/url"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/net/html"
)

var tracer = otel.Tracer("sabrmetrics/htmlutil")

// GetText concatenates every text node below node in document order.
func GetText(node *html.Node) string {
	var out strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			out.WriteString(n.Data)
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	if node != nil {
		walk(node)
	}
	return out.String()
}

var innerWhitespace = regexp.MustCompile(`\s+`)

// CleanText drops non printable characters, trims the ends and collapses
// runs of whitespace into a single space.
func CleanText(s string) string {
	var printable strings.Builder
	for _, c := range s {
		if unicode.IsPrint(c) || unicode.IsSpace(c) {
			printable.WriteRune(c)
		}
	}
	return innerWhitespace.ReplaceAllString(strings.TrimSpace(printable.String()), " ")
}

type Anchor struct {
	Name string
	Href string
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// GetAnchors returns the text and target of each element of sel in
// selection order. Relative targets are resolved against base when it is
// not nil. Anchors whose href cannot be parsed are skipped.
func GetAnchors(ctx context.Context, sel *goquery.Selection, base *url.URL) []Anchor {
	_, span := tracer.Start(ctx, "GetAnchors")
	defer span.End()

	anchors := []Anchor{}
	for _, n := range sel.Nodes {
		link, err := url.Parse(strings.TrimSpace(attr(n, "href")))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "got error while parsing url")
			continue
		}
		if base != nil {
			link = base.ResolveReference(link)
		}

		anchor := Anchor{
			Name: CleanText(GetText(n)),
			Href: link.String(),
		}
		anchors = append(anchors, anchor)
		span.AddEvent("anchor", trace.WithAttributes(
			attribute.String("name", anchor.Name),
			attribute.String("url", anchor.Href),
		))
	}

	return anchors
}
