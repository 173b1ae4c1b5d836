package richtext

import (
	"bytes"
	"encoding/json"
)

// Kind is the closed set of rich-text node variants the normalizer
// distinguishes. Anything else decodes as KindUnknown and keeps its raw type.
type Kind int

const (
	KindUnknown Kind = iota
	KindDoc
	KindText
	KindHeading
	KindParagraph
	KindCodeBlock
	KindOrderedList
	KindBulletList
	KindBlockquote
	KindListItem
	KindTable
	KindTableRow
	KindTableCell
	KindTableHeader
	KindRunnableCode
	KindRunnableKarel
	KindRunnableGraphics
	KindImage
	KindIframe
	KindKarelWorld
	KindResizableImage
)

var kindByType = map[string]Kind{
	"doc":               KindDoc,
	"text":              KindText,
	"heading":           KindHeading,
	"paragraph":         KindParagraph,
	"codeBlock":         KindCodeBlock,
	"orderedList":       KindOrderedList,
	"bulletList":        KindBulletList,
	"blockquote":        KindBlockquote,
	"listItem":          KindListItem,
	"table":             KindTable,
	"tableRow":          KindTableRow,
	"tableCell":         KindTableCell,
	"tableHeader":       KindTableHeader,
	"runnable-code":     KindRunnableCode,
	"runnable-karel":    KindRunnableKarel,
	"runnable-graphics": KindRunnableGraphics,
	"image":             KindImage,
	"iframe":            KindIframe,
	"karelworld":        KindKarelWorld,
	"resizableImage":    KindResizableImage,
}

// KindOf maps a stored node type name to its Kind.
func KindOf(typeName string) Kind {
	if k, ok := kindByType[typeName]; ok {
		return k
	}
	return KindUnknown
}

// Node is one element of a stored rich-text document.
//
// HasText and HasContent record whether the field was present in the stored
// record, since a present-but-empty text still makes the node a text leaf.
// A JSON null content counts as absent.
type Node struct {
	Kind       Kind
	Type       string
	Text       string
	HasText    bool
	Code       string
	Content    []*Node
	HasContent bool
}

func (n *Node) UnmarshalJSON(b []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}
	*n = Node{}
	if raw, ok := fields["type"]; ok {
		_ = json.Unmarshal(raw, &n.Type)
	}
	n.Kind = KindOf(n.Type)
	if raw, ok := fields["text"]; ok {
		n.HasText = true
		_ = json.Unmarshal(raw, &n.Text)
	}
	if raw, ok := fields["attrs"]; ok && !isNull(raw) {
		var attrs struct {
			Code string `json:"code"`
		}
		if err := json.Unmarshal(raw, &attrs); err == nil {
			n.Code = attrs.Code
		}
	}
	if raw, ok := fields["content"]; ok && !isNull(raw) {
		var children []*Node
		if err := json.Unmarshal(raw, &children); err != nil {
			return err
		}
		if children == nil {
			children = []*Node{}
		}
		n.Content = children
		n.HasContent = true
	}
	return nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func (n *Node) MarshalJSON() ([]byte, error) {
	out := map[string]any{}
	if n.Type != "" {
		out["type"] = n.Type
	}
	if n.HasText {
		out["text"] = n.Text
	}
	if n.Code != "" {
		out["attrs"] = map[string]any{"code": n.Code}
	}
	if n.HasContent {
		children := n.Content
		if children == nil {
			children = []*Node{}
		}
		out["content"] = children
	}
	return json.Marshal(out)
}

// Parse decodes a stored document tree. Empty or null input yields nil.
func Parse(raw []byte) (*Node, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || isNull(trimmed) {
		return nil, nil
	}
	var n Node
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

// Builders used by fixtures and tests.

func TextNode(s string) *Node { return &Node{Kind: KindText, Type: "text", Text: s, HasText: true} }

func Container(typeName string, children ...*Node) *Node {
	if children == nil {
		children = []*Node{}
	}
	return &Node{Kind: KindOf(typeName), Type: typeName, Content: children, HasContent: true}
}

func CodeNode(typeName, code string) *Node {
	return &Node{Kind: KindOf(typeName), Type: typeName, Code: code}
}
