// Package model holds the flat records produced by extraction. Each record is
// a single-level set of properties passed as one row of a write batch.
package model

// Record is anything that can be written as one row of a batch.
type Record interface {
	Params() map[string]any
}

// Rows converts a record slice into the parameter rows of a write request.
func Rows[T Record](records []T) []map[string]any {
	rows := make([]map[string]any, 0, len(records))
	for _, r := range records {
		rows = append(rows, r.Params())
	}
	return rows
}

// optional maps an absent value to a null property.
func optional(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

type ProteinRecord struct {
	ID string `json:"id"`
}

func (r ProteinRecord) Params() map[string]any {
	return map[string]any{"id": r.ID}
}

type FullNameRecord struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (r FullNameRecord) Params() map[string]any {
	return map[string]any{"id": r.ID, "name": r.Name}
}

type GeneRecord struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Status *string `json:"status"`
}

func (r GeneRecord) Params() map[string]any {
	return map[string]any{"id": r.ID, "name": r.Name, "status": optional(r.Status)}
}

type OrganismRecord struct {
	ID             string   `json:"id"`
	OrganismName   string   `json:"organism_name"`
	OrganismCommon string   `json:"organism_common"`
	TaxonomyID     string   `json:"taxonomy_id"`
	Lineages       []string `json:"lineages"`
}

func (r OrganismRecord) Params() map[string]any {
	lineages := make([]any, len(r.Lineages))
	for i, l := range r.Lineages {
		lineages[i] = l
	}
	return map[string]any{
		"id":              r.ID,
		"organism_name":   r.OrganismName,
		"organism_common": r.OrganismCommon,
		"taxonomy_id":     r.TaxonomyID,
		"lineages":        lineages,
	}
}

type LineageRecord struct {
	TaxonomyID string `json:"taxonomy_id"`
	Taxon      string `json:"taxon"`
}

func (r LineageRecord) Params() map[string]any {
	return map[string]any{"taxonomy_id": r.TaxonomyID, "taxon": r.Taxon}
}

// ReferenceRecord is keyed downstream by Name. Names are not guaranteed to be
// present or unique across the references of one protein, so Citation and
// Author linking can be ambiguous.
type ReferenceRecord struct {
	ID     string  `json:"id"`
	Type   string  `json:"type"`
	Name   *string `json:"name"`
	Volume *string `json:"volume"`
}

func (r ReferenceRecord) Params() map[string]any {
	return map[string]any{
		"id":     r.ID,
		"type":   r.Type,
		"name":   optional(r.Name),
		"volume": optional(r.Volume),
	}
}

type CitationRecord struct {
	Reference *string `json:"reference"`
	Title     *string `json:"title"`
}

func (r CitationRecord) Params() map[string]any {
	return map[string]any{"reference": optional(r.Reference), "title": optional(r.Title)}
}

type AuthorRecord struct {
	Name      string  `json:"name"`
	Reference *string `json:"reference"`
}

func (r AuthorRecord) Params() map[string]any {
	return map[string]any{"name": r.Name, "reference": optional(r.Reference)}
}

type FeatureRecord struct {
	ID            string  `json:"id"`
	PositionBegin *string `json:"position_begin"`
	PositionEnd   *string `json:"position_end"`
	Description   *string `json:"description"`
	Type          string  `json:"type"`
	Evidence      *string `json:"evidence"`
}

func (r FeatureRecord) Params() map[string]any {
	return map[string]any{
		"id":             r.ID,
		"position_begin": optional(r.PositionBegin),
		"position_end":   optional(r.PositionEnd),
		"description":    optional(r.Description),
		"type":           r.Type,
		"evidence":       optional(r.Evidence),
	}
}

type EvidenceRecord struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Key  string `json:"key"`
}

func (r EvidenceRecord) Params() map[string]any {
	return map[string]any{"id": r.ID, "type": r.Type, "key": r.Key}
}

type SequenceRecord struct {
	ID       string `json:"id"`
	Length   string `json:"length"`
	Mass     string `json:"mass"`
	Modified string `json:"modified"`
	Version  string `json:"version"`
	Value    string `json:"value"`
	Checksum string `json:"checksum"`
}

func (r SequenceRecord) Params() map[string]any {
	return map[string]any{
		"id":       r.ID,
		"length":   r.Length,
		"mass":     r.Mass,
		"modified": r.Modified,
		"version":  r.Version,
		"value":    r.Value,
		"checksum": r.Checksum,
	}
}
