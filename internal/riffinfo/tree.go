package riffinfo

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/autobrr/go-riffinfo/internal/riff"
)

func ReadTree(path string, opts ...Option) (*riff.Chunk, error) {
	a := newAnalyzer(opts)
	r := riff.NewReader(riff.WithLogger(a.logger))
	if err := r.LoadFile(path); err != nil {
		return nil, err
	}
	return r.Root(), nil
}

// RenderTree prints one line per chunk, indented by depth.
func RenderTree(ref string, root *riff.Chunk) string {
	var buf bytes.Buffer
	buf.WriteString(ref)
	buf.WriteString("\n")
	_ = riff.Walk(root, func(c *riff.Chunk, depth int) error {
		buf.WriteString(strings.Repeat("  ", depth))
		if c.IsContainer() {
			fmt.Fprintf(&buf, "%s %q", c.ID, c.Form.String())
		} else {
			fmt.Fprintf(&buf, "%s", c.ID.Quoted())
		}
		fmt.Fprintf(&buf, " %s bytes @ %d", formatThousands(int64(c.Size)), c.Offset)
		if c.Partial {
			buf.WriteString(" (unparsed)")
		}
		buf.WriteString("\n")
		return nil
	})
	return strings.TrimRight(buf.String(), "\n")
}

type jsonChunk struct {
	ID       string       `json:"id"`
	Form     string       `json:"form,omitempty"`
	Offset   int64        `json:"offset"`
	Size     uint32       `json:"size"`
	Partial  bool         `json:"partial,omitempty"`
	Children []*jsonChunk `json:"children,omitempty"`
}

func toJSONChunk(c *riff.Chunk) *jsonChunk {
	out := &jsonChunk{ID: c.ID.String(), Offset: c.Offset, Size: c.Size, Partial: c.Partial}
	if c.IsContainer() {
		out.Form = c.Form.String()
	}
	for _, child := range c.Children {
		out.Children = append(out.Children, toJSONChunk(child))
	}
	return out
}

func RenderTreeJSON(ref string, root *riff.Chunk) (string, error) {
	payload := struct {
		Ref  string     `json:"@ref"`
		Root *jsonChunk `json:"root"`
	}{Ref: ref}
	if root != nil {
		payload.Root = toJSONChunk(root)
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
