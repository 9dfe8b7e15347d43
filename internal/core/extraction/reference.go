package extraction

import (
	"github.com/agenthands/protgraph/internal/core/common"
	"github.com/agenthands/protgraph/internal/core/model"
	"github.com/agenthands/protgraph/internal/uniprot"
)

// ExtractReferences reads type, name and volume from each reference's first
// citation. The normalized raw references are returned as well; Citation and
// Author extraction work from them.
func ExtractReferences(accession string, refs uniprot.OneOrMany[uniprot.Reference]) ([]model.ReferenceRecord, []uniprot.Reference, error) {
	raw := refs.Normalize()
	var records []model.ReferenceRecord
	for _, ref := range raw {
		cit, ok := ref.Citation.First()
		if !ok {
			return nil, nil, missing("reference", "citation")
		}
		if cit.Type == "" {
			return nil, nil, missing("reference", "citation.@type")
		}
		records = append(records, model.ReferenceRecord{
			ID:     accession,
			Type:   cit.Type,
			Name:   cit.Name,
			Volume: cit.Volume,
		})
	}
	return records, raw, nil
}

// ExtractCitations emits one record per citation, joined to its reference by
// the reference name. References without a citation contribute nothing.
func ExtractCitations(refs []uniprot.Reference) []model.CitationRecord {
	return common.FlatMap(refs, func(ref uniprot.Reference) []model.CitationRecord {
		citations := ref.Citation.Normalize()
		if len(citations) == 0 {
			return nil
		}
		name := citations[0].Name
		out := make([]model.CitationRecord, 0, len(citations))
		for _, cit := range citations {
			var title *string
			if cit.Title != nil {
				v := cit.Title.Value
				title = &v
			}
			out = append(out, model.CitationRecord{Reference: name, Title: title})
		}
		return out
	})
}

// ExtractAuthors emits one record per person author of a reference, or, when
// the reference lists no person, a single record for its first consortium.
// Consortium records carry the reference name like person records do, so the
// writer links them to their Reference; a citation without a name leaves
// Reference nil and the author unlinked.
func ExtractAuthors(refs []uniprot.Reference) []model.AuthorRecord {
	return common.FlatMap(refs, func(ref uniprot.Reference) []model.AuthorRecord {
		citations := ref.Citation.Normalize()
		if len(citations) == 0 {
			return nil
		}
		name := citations[0].Name

		var persons []model.AuthorRecord
		var consortium *uniprot.Person
		for _, cit := range citations {
			if cit.AuthorList == nil {
				continue
			}
			for _, p := range cit.AuthorList.Person.Normalize() {
				persons = append(persons, model.AuthorRecord{Name: p.Name, Reference: name})
			}
			if c, ok := cit.AuthorList.Consortium.First(); ok && consortium == nil {
				consortium = &c
			}
		}

		switch {
		case len(persons) > 0:
			return persons
		case consortium != nil:
			return []model.AuthorRecord{{Name: consortium.Name, Reference: name}}
		default:
			return nil
		}
	})
}
