package extraction

import (
	"github.com/agenthands/protgraph/internal/core/common"
	"github.com/agenthands/protgraph/internal/core/model"
	"github.com/agenthands/protgraph/internal/uniprot"
)

const taxonomyDBType = "NCBI Taxonomy"

// ExtractProtein reads the primary (first) accession.
func ExtractProtein(entry *uniprot.Entry) (model.ProteinRecord, error) {
	accession, ok := entry.Accession.First()
	if !ok || accession == "" {
		return model.ProteinRecord{}, missing("protein", "accession")
	}
	return model.ProteinRecord{ID: accession}, nil
}

func ExtractFullName(accession string, protein *uniprot.Protein) (model.FullNameRecord, error) {
	if protein == nil || protein.RecommendedName == nil || protein.RecommendedName.FullName == nil ||
		protein.RecommendedName.FullName.Value == "" {
		return model.FullNameRecord{}, missing("full_name", "protein.recommendedName.fullName")
	}
	return model.FullNameRecord{ID: accession, Name: protein.RecommendedName.FullName.Value}, nil
}

// ExtractGenes flattens the names of every gene element; status is the
// optional type attribute (primary, synonym, ORF, ...).
func ExtractGenes(accession string, genes uniprot.OneOrMany[uniprot.Gene]) ([]model.GeneRecord, error) {
	var records []model.GeneRecord
	for _, gene := range genes.Normalize() {
		for _, name := range gene.Name.Normalize() {
			if name.Value == "" {
				return nil, missing("gene", "name")
			}
			records = append(records, model.GeneRecord{
				ID:     accession,
				Name:   name.Value,
				Status: name.Attr("type"),
			})
		}
	}
	return records, nil
}

// ExtractOrganisms selects the scientific and common names by their type tag.
// When the organism lists several names both tags are required; a lone name
// fills whichever field its tag names.
func ExtractOrganisms(accession string, organisms uniprot.OneOrMany[uniprot.Organism]) ([]model.OrganismRecord, error) {
	var records []model.OrganismRecord
	for _, org := range organisms.Normalize() {
		names := org.Name.Normalize()
		if len(names) == 0 {
			return nil, missing("organism", "name")
		}

		scientific, hasScientific := nameByType(names, "scientific")
		commonName, hasCommon := nameByType(names, "common")
		if len(names) > 1 {
			if !hasScientific {
				return nil, missing("organism", `name[@type="scientific"]`)
			}
			if !hasCommon {
				return nil, missing("organism", `name[@type="common"]`)
			}
		}

		taxonomyID := taxonomyRef(org.DBReference.Normalize())
		if taxonomyID == "" {
			return nil, missing("organism", "dbReference.@id")
		}

		var lineages []string
		if org.Lineage != nil {
			lineages = org.Lineage.Taxon.Normalize()
		}

		records = append(records, model.OrganismRecord{
			ID:             accession,
			OrganismName:   scientific,
			OrganismCommon: commonName,
			TaxonomyID:     taxonomyID,
			Lineages:       lineages,
		})
	}
	return records, nil
}

// ExtractLineages fans every organism's ordered taxa out into one record per
// taxon, keyed by the organism's taxonomy id.
func ExtractLineages(organisms []model.OrganismRecord) []model.LineageRecord {
	return common.FlatMap(organisms, func(org model.OrganismRecord) []model.LineageRecord {
		out := make([]model.LineageRecord, 0, len(org.Lineages))
		for _, taxon := range org.Lineages {
			out = append(out, model.LineageRecord{TaxonomyID: org.TaxonomyID, Taxon: taxon})
		}
		return out
	})
}

func nameByType(names []uniprot.Text, typ string) (string, bool) {
	for _, n := range names {
		if t := n.Attr("type"); t != nil && *t == typ {
			return n.Value, true
		}
	}
	return "", false
}

func taxonomyRef(refs []uniprot.DBReference) string {
	for _, ref := range refs {
		if ref.Type == taxonomyDBType {
			return ref.ID
		}
	}
	if len(refs) > 0 {
		return refs[0].ID
	}
	return ""
}
