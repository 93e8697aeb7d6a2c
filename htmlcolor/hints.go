package htmlcolor

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/andybalholm/cascadia"
	cssast "github.com/aymerick/douceur/css"
	"golang.org/x/net/html"
)

// Hint is the CSS equivalent of one legacy colour attribute.
type Hint struct {
	Selector string
	Property string
	Color    Color
	Source   AttrColor
}

// Declaration renders the hint as a douceur declaration.
func (h Hint) Declaration() *cssast.Declaration {
	return &cssast.Declaration{Property: h.Property, Value: h.Color.Hex()}
}

var linkPseudo = map[string]string{
	"link":  "a:link",
	"vlink": "a:visited",
	"alink": "a:active",
}

var plainIdent = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

// PresentationalHints maps successful scan results onto CSS. Rejected
// attributes are dropped, as browsers ignore them.
func PresentationalHints(attrs []AttrColor) []Hint {
	var out []Hint
	selectors := map[*html.Node]string{}
	for _, a := range attrs {
		if a.Err != nil || a.Node == nil {
			continue
		}
		h := Hint{Color: a.Color, Source: a, Property: "color"}
		switch a.Attr {
		case "bgcolor":
			h.Property = "background-color"
		case "link", "vlink", "alink":
			if a.Element != "body" {
				continue
			}
			h.Selector = linkPseudo[a.Attr]
		}
		if h.Selector == "" {
			sel, ok := selectors[a.Node]
			if !ok {
				sel = NodeSelector(a.Node)
				selectors[a.Node] = sel
			}
			h.Selector = sel
		}
		out = append(out, h)
	}
	return out
}

// Stylesheet groups hints into one rule per selector, keeping first-seen
// order.
func Stylesheet(hints []Hint) *cssast.Stylesheet {
	sheet := cssast.NewStylesheet()
	rules := map[string]*cssast.Rule{}
	for _, h := range hints {
		rule, ok := rules[h.Selector]
		if !ok {
			rule = cssast.NewRule(cssast.QualifiedRule)
			rule.Prelude = h.Selector
			rule.Selectors = []string{h.Selector}
			rules[h.Selector] = rule
			sheet.Rules = append(sheet.Rules, rule)
		}
		rule.Declarations = append(rule.Declarations, h.Declaration())
	}
	return sheet
}

// NodeSelector builds a selector that matches n and nothing else in its
// document: tag#id when the id is unique, otherwise a child path from the
// root element.
func NodeSelector(n *html.Node) string {
	if n == nil || n.Type != html.ElementNode {
		return ""
	}
	var parts []string
	for cur := n; cur != nil && cur.Type == html.ElementNode; cur = cur.Parent {
		tag := strings.ToLower(cur.Data)
		if id := getAttr(cur, "id"); plainIdent.MatchString(id) && idIsUnique(cur, id) {
			parts = append(parts, tag+"#"+id)
			break
		}
		switch tag {
		case "html", "head", "body":
			parts = append(parts, tag)
		default:
			parts = append(parts, fmt.Sprintf("%s:nth-child(%d)", tag, childIndex(cur)))
		}
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, " > ")
}

func childIndex(n *html.Node) int {
	idx := 1
	for s := n.PrevSibling; s != nil; s = s.PrevSibling {
		if s.Type == html.ElementNode {
			idx++
		}
	}
	return idx
}

func idIsUnique(n *html.Node, id string) bool {
	root := n
	for root.Parent != nil {
		root = root.Parent
	}
	sel, err := cascadia.Compile("#" + id)
	if err != nil {
		return false
	}
	return len(sel.MatchAll(root)) == 1
}
