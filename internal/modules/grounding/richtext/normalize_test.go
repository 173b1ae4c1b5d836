package richtext

import (
	"testing"

	"github.com/yungbote/coursechat-backend/internal/platform/logger"
)

func newTestNormalizer(t *testing.T) *Normalizer {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return NewNormalizer(log)
}

func TestNormalizeEmptyInputs(t *testing.T) {
	n := newTestNormalizer(t)
	cases := []struct {
		name string
		tree *Node
	}{
		{name: "nil", tree: nil},
		{name: "no_content", tree: &Node{Type: "doc", Kind: KindDoc}},
		{name: "empty_content", tree: Container("doc")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := n.Normalize(tc.tree); got != "" {
				t.Fatalf("Normalize=%q, want empty", got)
			}
		})
	}
}

func TestNormalizeBlocks(t *testing.T) {
	n := newTestNormalizer(t)
	cases := []struct {
		name string
		tree *Node
		want string
	}{
		{
			name: "heading_joins_text_children",
			tree: Container("doc", Container("heading", TextNode("For"), TextNode(""), TextNode("Loops"))),
			want: "For Loops\n",
		},
		{
			name: "paragraph_children_space_separated",
			tree: Container("doc", Container("paragraph", TextNode("Use"), TextNode("range"))),
			want: "Use range \n",
		},
		{
			name: "nested_list_content_flattened",
			tree: Container("doc", Container("bulletList",
				Container("listItem", Container("paragraph", TextNode("one"))),
			)),
			want: "one \\n  \n",
		},
		{
			name: "runnable_code_inside_paragraph",
			tree: Container("doc", Container("paragraph", CodeNode("runnable-code", "print(1)"))),
			want: "print(1) \n",
		},
		{
			name: "top_level_runnable_blocks",
			tree: Container("doc",
				CodeNode("runnable-karel", "move()"),
				CodeNode("runnable-graphics", "canvas()"),
			),
			want: "move()\ncanvas()\n",
		},
		{
			name: "paragraph_without_content_skipped",
			tree: Container("doc", &Node{Kind: KindParagraph, Type: "paragraph"}, Container("paragraph", TextNode("x"))),
			want: "x \n",
		},
		{
			name: "skip_list_and_unknown_dropped",
			tree: Container("doc",
				CodeNode("image", ""),
				CodeNode("iframe", ""),
				CodeNode("karelworld", ""),
				CodeNode("resizableImage", ""),
				Container("callout", TextNode("ignored")),
				Container("paragraph", TextNode("kept")),
			),
			want: "kept \n",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := n.Normalize(tc.tree); got != tc.want {
				t.Fatalf("Normalize=%q, want %q", got, tc.want)
			}
		})
	}
}

func TestNormalizeTable(t *testing.T) {
	n := newTestNormalizer(t)
	tree := Container("doc", Container("table",
		Container("tableRow", TextNode("a"), TextNode("bb")),
		Container("tableRow", TextNode("ccc"), TextNode("d")),
	))
	want := "a   | bb\n" +
		"----+---\n" +
		"ccc | d \n" +
		"\n"
	if got := n.Normalize(tree); got != want {
		t.Fatalf("Normalize=%q, want %q", got, want)
	}
}

func TestFormatTextTableRagged(t *testing.T) {
	got := formatTextTable([][]string{{"x"}, {"yy", "z"}})
	want := "x  |  \n---+--\nyy | z\n"
	if got != want {
		t.Fatalf("formatTextTable=%q, want %q", got, want)
	}
	if got := formatTextTable(nil); got != "" {
		t.Fatalf("empty table=%q, want empty", got)
	}
}

func TestNormalizeJSON(t *testing.T) {
	n := newTestNormalizer(t)
	raw := []byte(`{"type":"doc","content":[
		{"type":"heading","content":[{"type":"text","text":"Intro"}]},
		{"type":"paragraph","content":[{"type":"text","text":"Hello"}]},
		{"type":"runnable-code","attrs":{"code":"print('hi')"}},
		{"type":"image","attrs":{"src":"x.png"}}
	]}`)
	want := "Intro\nHello \nprint('hi')\n"
	if got := n.NormalizeJSON(raw); got != want {
		t.Fatalf("NormalizeJSON=%q, want %q", got, want)
	}
	if got := n.NormalizeJSON([]byte(`not json`)); got != "" {
		t.Fatalf("NormalizeJSON(garbage)=%q, want empty", got)
	}
	if got := n.NormalizeJSON([]byte(`null`)); got != "" {
		t.Fatalf("NormalizeJSON(null)=%q, want empty", got)
	}
}

func TestParsePresenceFlags(t *testing.T) {
	tree, err := Parse([]byte(`{"type":"doc","content":[{"type":"text","text":""},{"type":"paragraph","content":null}]}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(tree.Content) != 2 {
		t.Fatalf("children=%d, want 2", len(tree.Content))
	}
	if !tree.Content[0].HasText || tree.Content[0].Kind != KindText {
		t.Fatalf("empty text leaf lost: %+v", tree.Content[0])
	}
	if tree.Content[1].HasContent {
		t.Fatalf("null content should count as absent")
	}
}
