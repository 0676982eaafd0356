package render

import (
	"bytes"
	"slices"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// linkAttributes lists, per element, the attributes whose values are
// references into the source tree and therefore subject to rewriting.
var linkAttributes = map[string][]string{
	"a":      {"href"},
	"img":    {"src"},
	"video":  {"src", "poster"},
	"audio":  {"src"},
	"source": {"src"},
	"track":  {"src"},
	"iframe": {"src"},
}

// RewriteReferences parses an HTML fragment, applies rewrite to the value of
// every reference-carrying attribute and returns the serialized fragment.
//
// The fragment is parsed in body context so rendered Markdown round-trips
// without gaining a document skeleton. Attribute values reach rewrite with
// entities already decoded; serialization re-escapes them.
func RewriteReferences(fragment []byte, rewrite func(string) string) ([]byte, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(bytes.NewReader(fragment), ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	for _, n := range nodes {
		rewriteNode(n, rewrite)
		if err := html.Render(&buf, n); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

func rewriteNode(n *html.Node, rewrite func(string) string) {
	if n.Type == html.ElementNode {
		if attrs, ok := linkAttributes[n.Data]; ok {
			for i := range n.Attr {
				if n.Attr[i].Val == "" {
					continue
				}
				if slices.Contains(attrs, n.Attr[i].Key) {
					n.Attr[i].Val = rewrite(n.Attr[i].Val)
				}
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rewriteNode(c, rewrite)
	}
}
