// Package extraction maps a parsed UniProt entry into flat records, one
// extractor per entity type. Extractors are pure: they do no I/O, never log,
// and return the same records for the same input. A required value that is
// absent fails with a *MissingFieldError; optional attributes propagate as nil.
package extraction

import (
	"errors"
	"fmt"

	"github.com/agenthands/protgraph/internal/core/model"
	"github.com/agenthands/protgraph/internal/uniprot"
)

// ErrMissingField matches every *MissingFieldError.
var ErrMissingField = errors.New("missing required field")

type MissingFieldError struct {
	Entity string
	Field  string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: %s.%s", ErrMissingField, e.Entity, e.Field)
}

func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}

func missing(entity, field string) error {
	return &MissingFieldError{Entity: entity, Field: field}
}

// Extraction holds every record sequence extracted from one entry.
type Extraction struct {
	Protein    model.ProteinRecord     `json:"protein"`
	FullName   model.FullNameRecord    `json:"full_name"`
	Genes      []model.GeneRecord      `json:"genes"`
	Organisms  []model.OrganismRecord  `json:"organisms"`
	Lineages   []model.LineageRecord   `json:"lineages"`
	References []model.ReferenceRecord `json:"references"`
	Citations  []model.CitationRecord  `json:"citations"`
	Authors    []model.AuthorRecord    `json:"authors"`
	Features   []model.FeatureRecord   `json:"features"`
	Evidences  []model.EvidenceRecord  `json:"evidences"`
	Sequences  []model.SequenceRecord  `json:"sequences"`
}

// ExtractAll runs every extractor against the document's entry, following the
// same parent-before-child order the writes use. The first failure aborts and
// no partial Extraction is returned.
func ExtractAll(doc *uniprot.Document) (*Extraction, error) {
	entry, err := doc.Entry()
	if err != nil {
		return nil, err
	}

	var ex Extraction

	if ex.Protein, err = ExtractProtein(entry); err != nil {
		return nil, err
	}
	accession := ex.Protein.ID

	if ex.FullName, err = ExtractFullName(accession, entry.Protein); err != nil {
		return nil, err
	}
	if ex.Genes, err = ExtractGenes(accession, entry.Gene); err != nil {
		return nil, err
	}
	if ex.Organisms, err = ExtractOrganisms(accession, entry.Organism); err != nil {
		return nil, err
	}
	ex.Lineages = ExtractLineages(ex.Organisms)

	var refs []uniprot.Reference
	if ex.References, refs, err = ExtractReferences(accession, entry.Reference); err != nil {
		return nil, err
	}
	ex.Citations = ExtractCitations(refs)
	ex.Authors = ExtractAuthors(refs)

	if ex.Features, err = ExtractFeatures(accession, entry.Feature); err != nil {
		return nil, err
	}
	if ex.Evidences, err = ExtractEvidences(accession, entry.Evidence); err != nil {
		return nil, err
	}
	if ex.Sequences, err = ExtractSequences(accession, entry.Sequence); err != nil {
		return nil, err
	}

	return &ex, nil
}
