package xml

// A Name represents an XML name (Local) annotated
// with a name space prefix (Space).
type Name struct {
	Space, Local string
}

// String returns the prefixed form of the name.
func (n Name) String() string {
	if len(n.Space) == 0 {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

// An Attr represents an attribute in an XML element (Name=Value).
type Attr struct {
	Name  Name
	Value string
}

// An Element is one node of an XML tree: a name, attributes in set order,
// character data, and child elements in append order. When an element has
// both text and children the text is rendered first.
type Element struct {
	Name     Name
	Attr     []Attr
	Text     string
	Children []*Element
}

// NewElement returns an element with the given local name.
func NewElement(local string) *Element {
	return &Element{Name: Name{Local: local}}
}

// NewElementNS returns an element with a namespace-prefixed name.
func NewElementNS(space, local string) *Element {
	return &Element{Name: Name{Space: space, Local: local}}
}

// Sub appends a new child element and returns it.
func (e *Element) Sub(local string) *Element {
	child := NewElement(local)
	e.Children = append(e.Children, child)
	return child
}

// SubNS appends a new namespace-prefixed child element and returns it.
func (e *Element) SubNS(space, local string) *Element {
	child := NewElementNS(space, local)
	e.Children = append(e.Children, child)
	return child
}

// SetText sets the element's character data and returns the element.
func (e *Element) SetText(text string) *Element {
	e.Text = text
	return e
}

// SetAttr sets an attribute. An attribute already carrying the name is
// overwritten in place; a new name is appended, so first-set order is the
// render order.
func (e *Element) SetAttr(local, value string) {
	e.setAttr(Name{Local: local}, value)
}

// SetAttrNS sets a namespace-prefixed attribute.
func (e *Element) SetAttrNS(space, local, value string) {
	e.setAttr(Name{Space: space, Local: local}, value)
}

func (e *Element) setAttr(name Name, value string) {
	for i := range e.Attr {
		if e.Attr[i].Name == name {
			e.Attr[i].Value = value
			return
		}
	}
	e.Attr = append(e.Attr, Attr{Name: name, Value: value})
}

// AttrValue returns the value of the named attribute, if set.
func (e *Element) AttrValue(local string) (string, bool) {
	for _, a := range e.Attr {
		if a.Name.Space == "" && a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

// InsertChild inserts child at index i, shifting later children right.
// An index at or past the end appends.
func (e *Element) InsertChild(i int, child *Element) {
	if i < 0 {
		i = 0
	}
	if i >= len(e.Children) {
		e.Children = append(e.Children, child)
		return
	}
	e.Children = append(e.Children, nil)
	copy(e.Children[i+1:], e.Children[i:])
	e.Children[i] = child
}

// A Document is an XML document with a single root element.
type Document struct {
	Root *Element
}
