package node

// Document is a parsed or converted tree: a root container plus the language
// it is written in and the style that selects writer and converter plugin
// sets. Style may be changed after parsing, before writing or converting.
type Document struct {
	Root  *Node
	Lang  string
	Style string

	// URI is the source location when the document was read from a file,
	// empty otherwise.
	URI string
}

// NewDocument returns a document with an open #document root.
func NewDocument(lang, style string) *Document {
	return &Document{
		Root:  NewElement(RootType),
		Lang:  lang,
		Style: style,
	}
}

// Clone deep-copies the document tree.
func (d *Document) Clone() *Document {
	return &Document{
		Root:  d.Root.Clone(),
		Lang:  d.Lang,
		Style: d.Style,
		URI:   d.URI,
	}
}
