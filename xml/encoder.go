package xml

import (
	"bufio"
	"fmt"
	"io"
)

const (
	leftAngleBracket  = '<'
	rightAngleBracket = '>'
	forwardSlash      = '/'
	colon             = ':'
	equals            = '='
	quote             = '"'
)

// header is the declaration written ahead of the root element.
const header = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"

// writer is the subset of bufio.Writer the renderer and the escape
// functions use.
type writer interface {
	io.Writer
	WriteRune(r rune) (n int, err error)
	WriteString(s string) (n int, err error)
}

// Encoder renders a Document as serialized XML. The zero configuration
// renders compact single-line output with a leading XML declaration;
// Indent switches to one element per line.
type Encoder struct {
	w      *bufio.Writer
	indent string
	noDecl bool
}

// NewEncoder returns an Encoder rendering to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: bufio.NewWriter(w)}
}

// Indent sets the per-level indentation string and enables line breaks.
func (e *Encoder) Indent(indent string) {
	e.indent = indent
}

// OmitDeclaration suppresses the leading XML declaration.
func (e *Encoder) OmitDeclaration() {
	e.noDecl = true
}

// Encode writes the document. With indentation enabled the output ends in
// a newline; compact output does not.
func (e *Encoder) Encode(doc *Document) error {
	if doc == nil || doc.Root == nil {
		return fmt.Errorf("xml document has no root element")
	}
	// bufio retains the first write error and reports it from Flush.
	if !e.noDecl {
		e.w.WriteString(header)
	}
	e.encodeElement(doc.Root, 0)
	if len(e.indent) != 0 {
		e.w.WriteRune('\n')
	}
	return e.w.Flush()
}

func (e *Encoder) encodeElement(el *Element, depth int) {
	writeStartElement(e.w, el)

	if len(el.Children) == 0 {
		escapeString(e.w, el.Text)
		writeEndElement(e.w, el.Name)
		return
	}

	escapeString(e.w, el.Text)
	for _, child := range el.Children {
		e.writeIndent(depth + 1)
		e.encodeElement(child, depth+1)
	}
	e.writeIndent(depth)
	writeEndElement(e.w, el.Name)
}

// writeIndent breaks the line and indents to depth. Compact rendering
// writes nothing.
func (e *Encoder) writeIndent(depth int) {
	if len(e.indent) == 0 {
		return
	}
	e.w.WriteRune('\n')
	for i := 0; i < depth; i++ {
		e.w.WriteString(e.indent)
	}
}

// writeStartElement writes an element's start tag with its attributes.
func writeStartElement(w writer, el *Element) {
	w.WriteRune(leftAngleBracket)

	if len(el.Name.Space) != 0 {
		w.WriteString(el.Name.Space)
		w.WriteRune(colon)
	}
	w.WriteString(el.Name.Local)

	for i := range el.Attr {
		w.WriteRune(' ')
		buildAttribute(w, &el.Attr[i])
	}

	w.WriteRune(rightAngleBracket)
}

// buildAttribute writes an attribute. For a namespace declaration the
// attr name's Space must be "xmlns"; a bare default declaration carries
// "xmlns" as Space with an empty Local.
func buildAttribute(w writer, attr *Attr) {
	if len(attr.Name.Space) != 0 && len(attr.Name.Local) != 0 {
		w.WriteString(attr.Name.Space)
		w.WriteRune(colon)
	}

	local := attr.Name.Local
	if len(local) == 0 {
		local = attr.Name.Space
	}

	w.WriteString(local)
	w.WriteRune(equals)
	w.WriteRune(quote)
	escapeString(w, attr.Value)
	w.WriteRune(quote)
}

// writeEndElement writes an element's end tag. Empty elements get an
// explicit end tag, never the self-closing form.
func writeEndElement(w writer, name Name) {
	w.WriteRune(leftAngleBracket)
	w.WriteRune(forwardSlash)

	if len(name.Space) != 0 {
		w.WriteString(name.Space)
		w.WriteRune(colon)
	}
	w.WriteString(name.Local)
	w.WriteRune(rightAngleBracket)
}
