package linkgrp

import (
	"encoding/xml"
	"path/filepath"
	"strings"

	"artalign/internal/batch"
	"artalign/internal/classify"
)

const (
	// BookTargType is the targType of a link group.
	BookTargType = "yearbook"
	// ArticleTargType is the targType of a link.
	ArticleTargType = "article"

	xtargetSeparator = ";"
)

// Link is one aligned article pair.
type Link struct {
	XMLName  xml.Name `xml:"link"`
	TargType string   `xml:"targType,attr"`
	XTargets string   `xml:"xtargets,attr"`
	Label    string   `xml:"label,attr,omitempty"`
	Method   string   `xml:"method,attr,omitempty"`
	Score    float64  `xml:"score,attr"`
	Numbers  float64  `xml:"numbers,attr,omitempty"`
	Length   float64  `xml:"length,attr,omitempty"`
	Weighted float64  `xml:"weighted,attr,omitempty"`
	TFIDF    float64  `xml:"tfidf,attr,omitempty"`
}

// Source returns the source half of xtargets.
func (l Link) Source() string {
	src, _ := splitTargets(l.XTargets)
	return src
}

// Target returns the target half of xtargets.
func (l Link) Target() string {
	_, trg := splitTargets(l.XTargets)
	return trg
}

// LinkGroup holds the links of one book pair.
type LinkGroup struct {
	XMLName  xml.Name `xml:"linkGrp"`
	Lang     string   `xml:"lang,attr"`
	TargType string   `xml:"targType,attr"`
	XTargets string   `xml:"xtargets,attr"`
	Links    []Link   `xml:"link"`
}

// Header is a <teiHeader>. Its content is kept verbatim.
type Header struct {
	XMLName xml.Name   `xml:"teiHeader"`
	Attrs   []xml.Attr `xml:",any,attr"`
	Inner   string     `xml:",innerxml"`
}

// NewHeader builds a header holding title as text.
func NewHeader(title string) Header {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(title))
	return Header{Inner: b.String()}
}

// Title returns the text content of the header.
func (h Header) Title() string {
	dec := xml.NewDecoder(strings.NewReader("<h>" + h.Inner + "</h>"))
	var b strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		if cd, ok := tok.(xml.CharData); ok {
			b.Write(cd)
		}
	}
	return strings.TrimSpace(b.String())
}

// Book is a header together with its link group.
type Book struct {
	Header Header
	Group  LinkGroup
}

// SourceName returns the source book named in the group's xtargets.
func (b Book) SourceName() string {
	src, _ := splitTargets(b.Group.XTargets)
	return src
}

// NewBook builds the link group for one aligned book. Only alignments whose
// label passes keep are linked; a nil keep links everything.
func NewBook(sourceName, targetName, lang string, alignments []batch.Alignment, keep func(classify.Label) bool) Book {
	group := LinkGroup{
		Lang:     lang,
		TargType: BookTargType,
		XTargets: sourceName + xtargetSeparator + targetName,
	}
	for _, a := range alignments {
		if keep != nil && !keep(a.Label) {
			continue
		}
		group.Links = append(group.Links, LinkFor(a))
	}
	return Book{Header: NewHeader(BookTitle(sourceName)), Group: group}
}

// LinkFor converts a labeled alignment into a link.
func LinkFor(a batch.Alignment) Link {
	return Link{
		TargType: ArticleTargType,
		XTargets: a.SourceID + xtargetSeparator + a.TargetID,
		Label:    string(a.Label),
		Method:   string(a.Method),
		Score:    a.Scores.BLEU,
		Numbers:  a.Scores.Numbers,
		Length:   a.Scores.Length,
		Weighted: a.Scores.Weighted,
		TFIDF:    a.Scores.TFIDF,
	}
}

// Only returns a keep filter accepting the given labels.
func Only(labels ...classify.Label) func(classify.Label) bool {
	return func(l classify.Label) bool {
		for _, want := range labels {
			if l == want {
				return true
			}
		}
		return false
	}
}

// BookTitle strips the extension and a trailing "_xx" language suffix from a
// book file name: "1900_de.xml" becomes "1900".
func BookTitle(name string) string {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	if n := len(base); n > 3 && base[n-3] == '_' {
		return base[:n-3]
	}
	return base
}

func splitTargets(xtargets string) (string, string) {
	src, trg, _ := strings.Cut(xtargets, xtargetSeparator)
	return strings.TrimSpace(src), strings.TrimSpace(trg)
}
