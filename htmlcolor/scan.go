package htmlcolor

import (
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// LegacyAttrs are the presentational attributes whose values go through the
// legacy colour rules, in the order they are reported for one element.
var LegacyAttrs = []string{"bgcolor", "color", "text", "link", "vlink", "alink"}

var legacyAttrSelector = cascadia.MustCompile("[bgcolor], [color], [text], [link], [vlink], [alink]")

// AttrColor is one legacy colour attribute found in a document.
type AttrColor struct {
	Node    *html.Node `json:"-"`
	Element string     `json:"element"`
	Attr    string     `json:"attr"`
	Value   string     `json:"value"`
	Color   Color      `json:"-"`
	Err     error      `json:"-"`
}

// OK reports whether the attribute produced a colour.
func (a AttrColor) OK() bool { return a.Err == nil }

func (a AttrColor) String() string {
	if a.Err != nil {
		return fmt.Sprintf("<%s %s=%q> ignored: %v", a.Element, a.Attr, a.Value, a.Err)
	}
	return fmt.Sprintf("<%s %s=%q> %s", a.Element, a.Attr, a.Value, a.Color)
}

// ScanHTML parses an HTML document and returns its legacy colour attributes.
func (p *Parser) ScanHTML(r io.Reader) ([]AttrColor, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return p.ScanDocument(doc), nil
}

// ScanDocument returns every legacy colour attribute under doc in document
// order. Attributes the parser rejects are kept with Err set.
func (p *Parser) ScanDocument(doc *html.Node) []AttrColor {
	if doc == nil {
		return nil
	}
	var out []AttrColor
	for _, n := range legacyAttrSelector.MatchAll(doc) {
		for _, name := range LegacyAttrs {
			val, ok := lookupAttr(n, name)
			if !ok {
				continue
			}
			c, err := p.Parse(val)
			out = append(out, AttrColor{
				Node:    n,
				Element: strings.ToLower(n.Data),
				Attr:    name,
				Value:   val,
				Color:   c,
				Err:     err,
			})
		}
	}
	return out
}

func lookupAttr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, name) {
			return a.Val, true
		}
	}
	return "", false
}

func getAttr(n *html.Node, name string) string {
	v, _ := lookupAttr(n, name)
	return v
}
