// Package uniprot holds the typed form of one UniProt entry as it appears in
// the nested key/value document produced from the UniProt XML. Attribute
// values live under "@name" keys and mixed element text under "#text".
//
// Required values are plain strings; optional attributes are pointers so that
// absence survives into the flat records as a null property.
package uniprot

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

var (
	ErrNoEntry         = errors.New("document has no entry")
	ErrMultipleEntries = errors.New("document has more than one entry")
)

type Document struct {
	Uniprot Root `json:"uniprot"`
}

type Root struct {
	Entry OneOrMany[Entry] `json:"entry"`
}

// Entry returns the single entry carried by the document.
func (d *Document) Entry() (*Entry, error) {
	switch d.Uniprot.Entry.Len() {
	case 0:
		return nil, ErrNoEntry
	case 1:
		e, _ := d.Uniprot.Entry.First()
		return &e, nil
	default:
		return nil, fmt.Errorf("%w: %d entries", ErrMultipleEntries, d.Uniprot.Entry.Len())
	}
}

type Entry struct {
	Dataset   *string              `json:"@dataset"`
	Accession OneOrMany[string]    `json:"accession"`
	Name      OneOrMany[string]    `json:"name"`
	Protein   *Protein             `json:"protein"`
	Gene      OneOrMany[Gene]      `json:"gene"`
	Organism  OneOrMany[Organism]  `json:"organism"`
	Reference OneOrMany[Reference] `json:"reference"`
	Feature   OneOrMany[Feature]   `json:"feature"`
	Evidence  OneOrMany[Evidence]  `json:"evidence"`
	Sequence  OneOrMany[Sequence]  `json:"sequence"`
}

type Protein struct {
	RecommendedName *ProteinName `json:"recommendedName"`
}

type ProteinName struct {
	FullName *Text `json:"fullName"`
}

type Gene struct {
	Name OneOrMany[Text] `json:"name"`
}

type Organism struct {
	Name        OneOrMany[Text]        `json:"name"`
	DBReference OneOrMany[DBReference] `json:"dbReference"`
	Lineage     *Lineage               `json:"lineage"`
}

type DBReference struct {
	Type string `json:"@type"`
	ID   string `json:"@id"`
}

type Lineage struct {
	Taxon OneOrMany[string] `json:"taxon"`
}

type Reference struct {
	Key      *string             `json:"@key"`
	Citation OneOrMany[Citation] `json:"citation"`
}

type Citation struct {
	Type       string      `json:"@type"`
	Name       *string     `json:"@name"`
	Volume     *string     `json:"@volume"`
	Date       *string     `json:"@date"`
	Title      *Text       `json:"title"`
	AuthorList *AuthorList `json:"authorList"`
}

type AuthorList struct {
	Person     OneOrMany[Person] `json:"person"`
	Consortium OneOrMany[Person] `json:"consortium"`
}

// Person is a named author entry; consortium entries share the shape.
type Person struct {
	Name string `json:"@name"`
}

type Feature struct {
	Type        string    `json:"@type"`
	Description *string   `json:"@description"`
	Evidence    *string   `json:"@evidence"`
	ID          *string   `json:"@id"`
	Location    *Location `json:"location"`
}

// Location is either a begin/end range or a single position.
type Location struct {
	Begin    *Position `json:"begin"`
	End      *Position `json:"end"`
	Position *Position `json:"position"`
}

type Position struct {
	Position *string `json:"@position"`
	Status   *string `json:"@status"`
}

type Evidence struct {
	Type string `json:"@type"`
	Key  string `json:"@key"`
}

type Sequence struct {
	Length   string `json:"@length"`
	Mass     string `json:"@mass"`
	Checksum string `json:"@checksum"`
	Modified string `json:"@modified"`
	Version  string `json:"@version"`
	Value    string `json:"#text"`
}

// Parse decodes a document from its JSON form.
func Parse(data []byte) (*Document, error) {
	return Decode(bytes.NewReader(data))
}

func Decode(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode uniprot document: %w", err)
	}
	return &doc, nil
}
