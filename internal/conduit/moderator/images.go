package moderator

import (
	"net/url"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gtext "github.com/yuin/goldmark/text"
	"golang.org/x/net/html"
)

// ExtractImageURLs returns the absolute http(s) image URLs referenced by a
// markdown document, covering both markdown image syntax and inline
// <img> HTML. Order is preserved and duplicates are dropped.
func ExtractImageURLs(markdown string) []string {
	source := []byte(markdown)
	doc := goldmark.New().Parser().Parse(gtext.NewReader(source))

	var candidates []string
	var rawHTML strings.Builder

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Image:
			candidates = append(candidates, string(node.Destination))
		case *ast.HTMLBlock:
			for i := 0; i < node.Lines().Len(); i++ {
				seg := node.Lines().At(i)
				rawHTML.Write(seg.Value(source))
			}
		case *ast.RawHTML:
			for i := 0; i < node.Segments.Len(); i++ {
				seg := node.Segments.At(i)
				rawHTML.Write(seg.Value(source))
			}
		}
		return ast.WalkContinue, nil
	})

	candidates = append(candidates, imgSourcesFromHTML(rawHTML.String())...)

	seen := make(map[string]struct{}, len(candidates))
	urls := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		normalized, ok := absoluteImageURL(candidate)
		if !ok {
			continue
		}
		if _, dup := seen[normalized]; dup {
			continue
		}
		seen[normalized] = struct{}{}
		urls = append(urls, normalized)
	}

	return urls
}

func imgSourcesFromHTML(fragment string) []string {
	if fragment == "" {
		return nil
	}

	var sources []string
	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return sources
		}
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			continue
		}

		token := z.Token()
		if token.Data != "img" {
			continue
		}
		for _, attr := range token.Attr {
			if attr.Key == "src" {
				sources = append(sources, attr.Val)
			}
		}
	}
}

func absoluteImageURL(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", false
	}
	return u.String(), true
}
