// Package emitter renders a built type graph as a RAML 1.0 document.
package emitter

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
	k8syaml "sigs.k8s.io/yaml"
)

const indentWidth = 2

// Line is one buffered key/value pair.
type Line struct {
	Key   string
	Value string
}

// Buffer records the lines a handler declares for a body. It satisfies the
// handler line sink.
type Buffer struct {
	Lines []Line
}

// AppendLine records a line.
func (b *Buffer) AppendLine(key, value string) error {
	b.Lines = append(b.Lines, Line{Key: key, Value: value})
	return nil
}

// Node returns the buffered lines as a mapping, in order.
func (b *Buffer) Node() *yaml.Node {
	m := mapping()
	for _, l := range b.Lines {
		add(m, l.Key, Scalar(l.Value))
	}
	return m
}

// Scalar returns a string node. The encoder quotes values a YAML 1.2 reader
// would not take as strings; values a YAML 1.1 reader would misread, such as
// Y or 0x1F, are double quoted as well.
func Scalar(s string) *yaml.Node {
	n := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
	if !readsBack(s) {
		n.Style = yaml.DoubleQuotedStyle
	}
	return n
}

// readsBack reports whether s, written plain, decodes to the same string.
func readsBack(s string) bool {
	var v interface{}
	if err := k8syaml.Unmarshal([]byte(s), &v); err != nil {
		return false
	}
	got, ok := v.(string)
	return ok && got == s
}

// valueNode encodes an enum constant with its own YAML type.
func valueNode(v interface{}) *yaml.Node {
	if s, ok := v.(string); ok {
		return Scalar(s)
	}
	n := &yaml.Node{}
	if err := n.Encode(v); err != nil {
		return Scalar(fmt.Sprint(v))
	}
	return n
}

func mapping() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

func flowSequence(items ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Style: yaml.FlowStyle, Content: items}
}

func add(m *yaml.Node, key string, value *yaml.Node) {
	m.Content = append(m.Content, Scalar(key), value)
}

// stickyWriter keeps the first write error, which the encoder only reports
// as text.
type stickyWriter struct {
	w   io.Writer
	err error
}

func (s *stickyWriter) Write(p []byte) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	n, err := s.w.Write(p)
	s.err = err
	return n, err
}
