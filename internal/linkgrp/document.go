package linkgrp

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"artalign/internal/fileutil"
)

const rootName = "TEI"

type rawElement struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Inner   string     `xml:",innerxml"`
}

type entry struct {
	header *Header
	group  *LinkGroup
	raw    *rawElement
}

// Document is a parsed TEI alignment file.
type Document struct {
	Attrs   []xml.Attr
	entries []entry
}

// Append adds a book at the end of the document.
func (d *Document) Append(b Book) {
	h, g := b.Header, b.Group
	d.entries = append(d.entries, entry{header: &h}, entry{group: &g})
}

// Books returns the link groups in file order, each paired with the closest
// preceding header.
func (d *Document) Books() []Book {
	var books []Book
	var header Header
	for _, e := range d.entries {
		switch {
		case e.header != nil:
			header = *e.header
		case e.group != nil:
			books = append(books, Book{Header: header, Group: *e.group})
			header = Header{}
		}
	}
	return books
}

// Links returns every link of the document in file order.
func (d *Document) Links() []Link {
	var links []Link
	for _, b := range d.Books() {
		links = append(links, b.Group.Links...)
	}
	return links
}

// UnmarshalXML implements xml.Unmarshaler, keeping unknown children.
func (d *Document) UnmarshalXML(dec *xml.Decoder, start xml.StartElement) error {
	if start.Name.Local != rootName {
		return fmt.Errorf("unexpected root element <%s>", start.Name.Local)
	}
	d.Attrs = start.Attr
	for {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "teiHeader":
				var h Header
				if err := dec.DecodeElement(&h, &t); err != nil {
					return fmt.Errorf("decode teiHeader: %w", err)
				}
				d.entries = append(d.entries, entry{header: &h})
			case "linkGrp":
				var g LinkGroup
				if err := dec.DecodeElement(&g, &t); err != nil {
					return fmt.Errorf("decode linkGrp: %w", err)
				}
				d.entries = append(d.entries, entry{group: &g})
			default:
				var raw rawElement
				if err := dec.DecodeElement(&raw, &t); err != nil {
					return fmt.Errorf("decode %s: %w", t.Name.Local, err)
				}
				d.entries = append(d.entries, entry{raw: &raw})
			}
		case xml.EndElement:
			return nil
		}
	}
}

// MarshalXML implements xml.Marshaler.
func (d *Document) MarshalXML(enc *xml.Encoder, _ xml.StartElement) error {
	start := xml.StartElement{Name: xml.Name{Local: rootName}, Attr: d.Attrs}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	for _, e := range d.entries {
		var v any
		switch {
		case e.header != nil:
			v = e.header
		case e.group != nil:
			v = e.group
		default:
			v = e.raw
		}
		if err := enc.Encode(v); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}

// Read parses a document from r.
func Read(r io.Reader) (*Document, error) {
	doc := &Document{}
	if err := xml.NewDecoder(r).Decode(doc); err != nil {
		return nil, fmt.Errorf("parse link groups: %w", err)
	}
	return doc, nil
}

// Load reads the document at path. A missing file yields an empty document.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Document{}, nil
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	doc, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Encode writes the document with an XML declaration.
func (d *Document) Encode(w io.Writer) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode link groups: %w", err)
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// AppendBooks appends books to the file at path, creating it when missing.
// The file is locked for the whole read-modify-write cycle and replaced
// atomically.
func AppendBooks(ctx context.Context, path string, books ...Book) error {
	return fileutil.WithLock(ctx, path, func() error {
		doc, err := Load(path)
		if err != nil {
			return err
		}
		for _, b := range books {
			doc.Append(b)
		}
		var buf bytes.Buffer
		if err := doc.Encode(&buf); err != nil {
			return err
		}
		return fileutil.WriteAtomic(path, buf.Bytes(), 0o644)
	})
}
