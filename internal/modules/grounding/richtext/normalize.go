package richtext

import (
	"fmt"
	"strings"

	"github.com/yungbote/coursechat-backend/internal/platform/logger"
)

// nestedSeparator is appended after every container flattened by extractText.
// Stored course prompts were authored against the escaped form, so it stays a
// backslash-n rather than a newline.
const nestedSeparator = " \\n "

var skippedKinds = map[Kind]bool{
	KindImage:          true,
	KindIframe:         true,
	KindKarelWorld:     true,
	KindResizableImage: true,
}

type Normalizer struct {
	log *logger.Logger
}

func NewNormalizer(log *logger.Logger) *Normalizer {
	if log == nil {
		log = logger.NewNop()
	}
	return &Normalizer{log: log.With("component", "RichTextNormalizer")}
}

// Normalize flattens a stored document into plain text. It never fails: a
// panic while walking a malformed tree returns whatever was rendered so far.
func (n *Normalizer) Normalize(tree *Node) (out string) {
	if tree == nil || !tree.HasContent || len(tree.Content) == 0 {
		return ""
	}
	var b strings.Builder
	defer func() {
		if r := recover(); r != nil {
			n.log.Error("rich text normalize recovered", "panic", fmt.Sprint(r))
			out = b.String()
		}
	}()

	for _, entry := range tree.Content {
		if entry == nil {
			continue
		}
		if skippedKinds[entry.Kind] {
			continue
		}
		switch entry.Kind {
		case KindHeading:
			b.WriteString(extractHeading(entry))
		case KindTable:
			b.WriteString(formatTextTable(parseTable(entry)))
			b.WriteString("\n")
		case KindParagraph, KindCodeBlock, KindOrderedList, KindBulletList, KindBlockquote:
			if !entry.HasContent {
				continue
			}
			for _, item := range entry.Content {
				if item == nil {
					continue
				}
				switch {
				case item.HasText:
					b.WriteString(item.Text)
				case item.HasContent:
					b.WriteString(extractTextList(item.Content))
				case item.Kind == KindRunnableCode:
					b.WriteString(item.Code)
				}
				if item.HasText || item.HasContent || item.Kind == KindRunnableCode {
					b.WriteString(" ")
				}
			}
			b.WriteString("\n")
		case KindRunnableKarel, KindRunnableCode, KindRunnableGraphics:
			b.WriteString(entry.Code)
			b.WriteString("\n")
		default:
			n.log.Debug("rich text node type skipped", "type", entry.Type)
		}
	}
	return b.String()
}

// NormalizeJSON decodes and flattens a stored document. Undecodable input
// yields "".
func (n *Normalizer) NormalizeJSON(raw []byte) string {
	tree, err := Parse(raw)
	if err != nil {
		n.log.Warn("rich text decode failed", "error", err)
		return ""
	}
	return n.Normalize(tree)
}

func extractText(node *Node) string {
	switch {
	case node == nil:
		return ""
	case node.HasText:
		return node.Text
	case node.HasContent:
		return extractTextList(node.Content) + nestedSeparator
	default:
		return ""
	}
}

func extractTextList(nodes []*Node) string {
	var b strings.Builder
	for _, child := range nodes {
		b.WriteString(extractText(child))
	}
	return b.String()
}

func extractHeading(entry *Node) string {
	parts := make([]string, 0, len(entry.Content))
	for _, item := range entry.Content {
		if item != nil && item.Text != "" {
			parts = append(parts, item.Text)
		}
	}
	return strings.Join(parts, " ") + "\n"
}
