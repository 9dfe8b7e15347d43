package extraction

import (
	"github.com/agenthands/protgraph/internal/core/model"
	"github.com/agenthands/protgraph/internal/uniprot"
)

// ExtractFeatures resolves each feature's location into a begin/end pair. A
// single-point location sets both ends to that position; a bound that only
// carries a status (e.g. "unknown") has a nil position.
func ExtractFeatures(accession string, features uniprot.OneOrMany[uniprot.Feature]) ([]model.FeatureRecord, error) {
	var records []model.FeatureRecord
	for _, f := range features.Normalize() {
		if f.Type == "" {
			return nil, missing("feature", "@type")
		}
		begin, end, ok := positions(f.Location)
		if !ok {
			return nil, missing("feature", "location")
		}
		records = append(records, model.FeatureRecord{
			ID:            accession,
			PositionBegin: begin,
			PositionEnd:   end,
			Description:   f.Description,
			Type:          f.Type,
			Evidence:      f.Evidence,
		})
	}
	return records, nil
}

func positions(loc *uniprot.Location) (begin, end *string, ok bool) {
	if loc == nil {
		return nil, nil, false
	}
	if loc.Begin != nil || loc.End != nil {
		if loc.Begin != nil {
			begin = loc.Begin.Position
		}
		if loc.End != nil {
			end = loc.End.Position
		}
		return begin, end, true
	}
	if loc.Position != nil {
		return loc.Position.Position, loc.Position.Position, true
	}
	return nil, nil, false
}

func ExtractEvidences(accession string, evidences uniprot.OneOrMany[uniprot.Evidence]) ([]model.EvidenceRecord, error) {
	var records []model.EvidenceRecord
	for _, e := range evidences.Normalize() {
		if e.Key == "" {
			return nil, missing("evidence", "@key")
		}
		if e.Type == "" {
			return nil, missing("evidence", "@type")
		}
		records = append(records, model.EvidenceRecord{ID: accession, Type: e.Type, Key: e.Key})
	}
	return records, nil
}

func ExtractSequences(accession string, sequences uniprot.OneOrMany[uniprot.Sequence]) ([]model.SequenceRecord, error) {
	var records []model.SequenceRecord
	for _, s := range sequences.Normalize() {
		if s.Value == "" {
			return nil, missing("sequence", "#text")
		}
		records = append(records, model.SequenceRecord{
			ID:       accession,
			Length:   s.Length,
			Mass:     s.Mass,
			Modified: s.Modified,
			Version:  s.Version,
			Value:    s.Value,
			Checksum: s.Checksum,
		})
	}
	return records, nil
}
