package parse

import (
	"fmt"
	"strings"

	"github.com/cognicore/treetag/pkg/treetag/internalerr"
)

// RootLabel is the label of the synthetic sentence node at the root of
// every chunk tree.
const RootLabel = "S"

// ItemKind discriminates the entries of a flat chunker output stream.
type ItemKind int

const (
	// ItemOpen is a chunk-open marker such as <NC>.
	ItemOpen ItemKind = iota
	// ItemClose is a chunk-close marker such as </NC>.
	ItemClose
	// ItemToken is a plain tagged word line.
	ItemToken
)

// Item is one entry of the flat chunker output: an open marker, a close
// marker, or a tagged token. Label is set for markers, Token for tokens.
type Item struct {
	Kind  ItemKind
	Label string
	Token Token
}

// Node is a chunk-tree node: either a leaf wrapping one Token, or an
// interior node with a chunk label and ordered children. A node is a
// leaf exactly when Token is non-nil.
type Node struct {
	Label    string
	Token    *Token
	Children []*Node
}

// IsLeaf reports whether the node wraps a single token.
func (n *Node) IsLeaf() bool { return n.Token != nil }

// Leaves returns the tree's tokens in left-to-right order. For any
// well-formed tree this reproduces exactly the flat token sequence the
// tagger emitted.
func (n *Node) Leaves() []Token {
	var out []Token
	n.walk(func(t Token) { out = append(out, t) })
	return out
}

func (n *Node) walk(visit func(Token)) {
	if n.Token != nil {
		visit(*n.Token)
		return
	}
	for _, c := range n.Children {
		c.walk(visit)
	}
}

// Items flattens the tree back to its linear annotated form: an open
// marker, the subtree's items, then a close marker for every interior
// node below n. The receiver itself is treated as the sentence root and
// emits no markers of its own.
func (n *Node) Items() []Item {
	var out []Item
	for _, c := range n.Children {
		out = c.appendItems(out)
	}
	return out
}

func (n *Node) appendItems(out []Item) []Item {
	if n.Token != nil {
		return append(out, Item{Kind: ItemToken, Token: *n.Token})
	}
	out = append(out, Item{Kind: ItemOpen, Label: n.Label})
	for _, c := range n.Children {
		out = c.appendItems(out)
	}
	return append(out, Item{Kind: ItemClose, Label: n.Label})
}

// scanItems splits chunker output into its raw item sequence. Marker
// balance is Chunked's job; every parse path goes through it.
func scanItems(output string) ([]Item, error) {
	lines := splitLines(output)
	items := make([]Item, 0, len(lines))
	for i, line := range lines {
		if label, ok := openMarker(line); ok {
			items = append(items, Item{Kind: ItemOpen, Label: label})
			continue
		}
		if label, ok := closeMarker(line); ok {
			items = append(items, Item{Kind: ItemClose, Label: label})
			continue
		}
		tok, err := parseLine(line, i+1)
		if err != nil {
			return nil, err
		}
		items = append(items, Item{Kind: ItemToken, Token: tok})
	}
	return items, nil
}

// Chunked parses chunker output into a tree rooted at a synthetic "S"
// node. Single pass, single stack: open markers push a new interior
// node, close markers must match the innermost open one, token lines
// attach as leaves of the innermost node.
func Chunked(output string) (*Node, error) {
	items, err := scanItems(output)
	if err != nil {
		return nil, err
	}

	root := &Node{Label: RootLabel}
	stack := []*Node{root}
	for _, it := range items {
		top := stack[len(stack)-1]
		switch it.Kind {
		case ItemOpen:
			child := &Node{Label: it.Label}
			top.Children = append(top.Children, child)
			stack = append(stack, child)
		case ItemClose:
			if len(stack) == 1 || top.Label != it.Label {
				return nil, fmt.Errorf("</%s> with innermost <%s>: %w",
					it.Label, top.Label, internalerr.ErrUnbalancedChunk)
			}
			stack = stack[:len(stack)-1]
		case ItemToken:
			tok := it.Token
			top.Children = append(top.Children, &Node{Token: &tok})
		}
	}
	if len(stack) != 1 {
		return nil, fmt.Errorf("<%s> still open at end of output: %w",
			stack[len(stack)-1].Label, internalerr.ErrUnclosedChunk)
	}
	return root, nil
}

// A marker is a whole line of the form <TAG> or </TAG> with no tab in
// it; lines with tabs are always tagger records, which keeps a literal
// token like "<" from being misread.
func openMarker(line string) (string, bool) {
	if strings.ContainsRune(line, '\t') {
		return "", false
	}
	if len(line) > 2 && line[0] == '<' && line[1] != '/' && line[len(line)-1] == '>' {
		return line[1 : len(line)-1], true
	}
	return "", false
}

func closeMarker(line string) (string, bool) {
	if strings.ContainsRune(line, '\t') {
		return "", false
	}
	if len(line) > 3 && strings.HasPrefix(line, "</") && line[len(line)-1] == '>' {
		return line[2 : len(line)-1], true
	}
	return "", false
}
