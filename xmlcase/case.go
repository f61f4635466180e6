package xmlcase

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/beevik/etree"
	"github.com/pkg/errors"
)

const (
	// RootTag is the document element of every case file.
	RootTag = "Code_Saturne_GUI"
	// ModelsTag holds every physical model choice and is the schema entry point.
	ModelsTag = "thermophysical_models"
	// DocVersion is written into the root version attribute of new cases.
	DocVersion = "1.0"
	// LabelLengthMax bounds user supplied labels.
	LabelLengthMax = 32
)

// Case owns one case document.
type Case struct {
	FileName string
	Indent   int
	doc      *etree.Document
	root     *Node
	models   *Node
}

// New returns a case holding the base skeleton: the root element and the
// thermophysical models node.
func New(study, caseName string) *Case {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="utf-8"`)
	root := doc.CreateElement(RootTag)
	root.CreateAttr("version", DocVersion)
	root.CreateAttr("study", study)
	root.CreateAttr("case", caseName)
	c := &Case{doc: doc, root: wrap(root), Indent: 2}
	c.models = c.root.Create(ModelsTag)
	return c
}

// Load parses a case document. A missing thermophysical models node is
// created; more than one is rejected.
func Load(r io.Reader) (c *Case, err error) {
	doc := etree.NewDocument()
	if _, err = doc.ReadFrom(r); err != nil {
		return nil, errors.Wrap(err, "could not parse case document")
	}
	return fromDocument(doc)
}

// LoadFile reads and parses the case file at path.
func LoadFile(path string) (c *Case, err error) {
	var f *os.File
	if f, err = os.Open(path); err != nil {
		return nil, errors.Wrapf(err, "could not read case file %s", path)
	}
	defer f.Close()
	if c, err = Load(f); err != nil {
		return nil, errors.Wrapf(err, "case file %s", path)
	}
	c.FileName = path
	return
}

// Parse is Load over an in-memory document.
func Parse(data []byte) (*Case, error) {
	return Load(bytes.NewReader(data))
}

func fromDocument(doc *etree.Document) (*Case, error) {
	rootEl := doc.Root()
	if rootEl == nil {
		return nil, errors.New("case document has no root element")
	}
	if rootEl.Tag != RootTag {
		return nil, errors.Errorf("case document root is <%s>, expected <%s>", rootEl.Tag, RootTag)
	}
	c := &Case{doc: doc, root: wrap(rootEl), Indent: 2}
	switch models := c.root.FindAll(ModelsTag); len(models) {
	case 0:
		c.models = c.root.Create(ModelsTag)
	case 1:
		c.models = models[0]
	default:
		return nil, errors.Errorf("case document holds %d <%s> nodes, expected one", len(models), ModelsTag)
	}
	return c, nil
}

func (c *Case) Root() *Node { return c.root }

// Models returns the cached thermophysical models node.
func (c *Case) Models() *Node { return c.models }

// Find searches the whole document for the first matching node.
func (c *Case) Find(tag string, attrs ...Attr) *Node {
	if matches(c.root.el, tag, attrs) {
		return c.root
	}
	return c.root.FindDescendant(tag, attrs...)
}

// Ensure searches the whole document and creates the node under the root
// when it is missing.
func (c *Case) Ensure(tag string, attrs ...Attr) *Node {
	if n := c.Find(tag, attrs...); n != nil {
		return n
	}
	return c.root.Create(tag, attrs...)
}

// WriteTo serialises the document with the configured indentation.
func (c *Case) WriteTo(w io.Writer) (int64, error) {
	c.doc.Indent(c.Indent)
	return c.doc.WriteTo(w)
}

// Bytes returns the serialised document.
func (c *Case) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := c.WriteTo(&buf); err != nil {
		return nil, errors.Wrap(err, "could not serialise case document")
	}
	return buf.Bytes(), nil
}

// SaveFile writes the whole document to path, replacing any previous file
// only once the new content is fully written.
func (c *Case) SaveFile(path string) (err error) {
	var (
		data []byte
		tmp  *os.File
	)
	if data, err = c.Bytes(); err != nil {
		return
	}
	if tmp, err = os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*"); err != nil {
		return errors.Wrapf(err, "could not write case file %s", path)
	}
	defer func() {
		if err != nil {
			os.Remove(tmp.Name())
		}
	}()
	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "could not write case file %s", path)
	}
	mode := os.FileMode(0644)
	if fi, serr := os.Stat(path); serr == nil {
		mode = fi.Mode().Perm()
	}
	if err = tmp.Chmod(mode); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "could not write case file %s", path)
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrapf(err, "could not write case file %s", path)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrapf(err, "could not write case file %s", path)
	}
	c.FileName = path
	return nil
}
