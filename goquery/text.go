package goquery

import (
	"bytes"
	"io"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/SACCSF/linkedin"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decode converts content to UTF-8 using its byte order mark or
// <meta charset> declaration. Valid UTF-8 without a declaration is kept
// as is.
func decode(content []byte) ([]byte, error) {
	enc, name, certain := charset.DetermineEncoding(content, "")
	if name == "utf-8" || (!certain && name == "windows-1252" && utf8.Valid(content)) {
		return bytes.TrimPrefix(content, utf8BOM), nil
	}
	return enc.NewDecoder().Bytes(content)
}

// checkMarkup returns EUNPARSEABLE unless content is text containing at
// least one HTML tag.
func checkMarkup(content []byte) error {
	if len(bytes.TrimSpace(content)) == 0 {
		return linkedin.Errorf(linkedin.EUNPARSEABLE, "document is empty")
	}
	if bytes.IndexByte(content, 0) >= 0 {
		return linkedin.Errorf(linkedin.EUNPARSEABLE, "document contains binary data")
	}

	z := html.NewTokenizer(bytes.NewReader(content))
	for {
		switch z.Next() {
		case html.ErrorToken:
			if z.Err() != io.EOF {
				return linkedin.Errorf(linkedin.EUNPARSEABLE, "failed to tokenize document: %v", z.Err())
			}
			return linkedin.Errorf(linkedin.EUNPARSEABLE, "document contains no markup")
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken, html.DoctypeToken:
			return nil
		}
	}
}

// blockElements start a new word when their text is joined.
var blockElements = map[string]bool{
	"address": true, "article": true, "br": true, "dd": true, "div": true,
	"dl": true, "dt": true, "footer": true, "h1": true, "h2": true,
	"h3": true, "h4": true, "h5": true, "h6": true, "header": true,
	"li": true, "ol": true, "p": true, "section": true, "td": true,
	"th": true, "tr": true, "ul": true,
}

// skippedElements never contribute visible text.
var skippedElements = map[string]bool{
	"script": true, "style": true, "template": true, "noscript": true,
}

// nodeText returns the whitespace-collapsed visible text of the first node
// in s. Screen-reader duplicates marked "visually-hidden" are left out.
func nodeText(s *goquery.Selection) string {
	if s.Length() == 0 {
		return ""
	}
	var b strings.Builder
	writeText(&b, s.Get(0))
	return linkedin.CollapseSpace(b.String())
}

func writeText(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode:
		if skippedElements[n.Data] || hasClass(n, "visually-hidden") {
			return
		}
	}

	block := n.Type == html.ElementNode && blockElements[n.Data]
	if block {
		b.WriteByte(' ')
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(b, c)
	}
	if block {
		b.WriteByte(' ')
	}
}

func hasClass(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if a.Key == "class" {
			return slices.Contains(strings.Fields(a.Val), class)
		}
	}
	return false
}
