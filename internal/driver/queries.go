package driver

// Write statements. Each unwinds the batch in $rows, matches the parent node
// by its key and creates the child node and relationship. Nothing is merged:
// running the same document twice creates duplicate nodes.
const (
	WriteProteinQuery = `
		UNWIND $rows AS row
		CREATE (:Protein {id: row.id})
	`

	WriteFullNameQuery = `
		UNWIND $rows AS row
		MATCH (p:Protein {id: row.id})
		CREATE (p)-[:HAS_FULL_NAME]->(:FullName {name: row.name})
	`

	WriteGeneQuery = `
		UNWIND $rows AS row
		MATCH (p:Protein {id: row.id})
		CREATE (p)-[:FROM_GENE {status: row.status}]->(:Gene {name: row.name})
	`

	WriteOrganismQuery = `
		UNWIND $rows AS row
		MATCH (p:Protein {id: row.id})
		CREATE (p)-[:IN_ORGANISM]->
			(:Organism {taxonomy_id: row.taxonomy_id, name: row.organism_name, common_name: row.organism_common})
	`

	WriteLineageQuery = `
		UNWIND $rows AS row
		MATCH (o:Organism {taxonomy_id: row.taxonomy_id})
		CREATE (o)-[:FROM_LINEAGE]->(:Lineage {taxon: row.taxon})
	`

	WriteReferenceQuery = `
		UNWIND $rows AS row
		MATCH (p:Protein {id: row.id})
		CREATE (p)-[:HAS_REFERENCE]->(:Reference {name: row.name, type: row.type, volume: row.volume})
	`

	// Reference names are not unique keys; a citation attaches to every
	// reference node carrying the name.
	WriteCitationQuery = `
		UNWIND $rows AS row
		MATCH (r:Reference {name: row.reference})
		CREATE (r)-[:HAS_CITATION]->(:Citation {title: row.title})
	`

	WriteAuthorQuery = `
		UNWIND $rows AS row
		MATCH (r:Reference {name: row.reference})
		CREATE (r)-[:HAS_AUTHOR]->(:Author {name: row.name})
	`

	WriteFeatureQuery = `
		UNWIND $rows AS row
		MATCH (p:Protein {id: row.id})
		CREATE (p)-[:HAS_FEATURE {position_begin: row.position_begin, position_end: row.position_end}]->
			(:Feature {description: row.description, type: row.type, evidence: row.evidence})
	`

	WriteEvidenceQuery = `
		UNWIND $rows AS row
		MATCH (p:Protein {id: row.id})
		CREATE (p)-[:HAS_EVIDENCE]->(:Evidence {type: row.type, key: row.key})
	`

	WriteSequenceQuery = `
		UNWIND $rows AS row
		MATCH (p:Protein {id: row.id})
		CREATE (p)-[:HAS_SEQUENCE {checksum: row.checksum}]->
			(:Sequence {length: row.length, mass: row.mass, modified: row.modified, version: row.version, value: row.value})
	`

	ProteinSummaryQuery = `
		MATCH (p:Protein {id: $id})
		OPTIONAL MATCH (p)-[r]->()
		RETURN p.id AS id, type(r) AS relationship, count(r) AS count
	`
)

var IndexQueries = []string{
	"CREATE INDEX protein_id IF NOT EXISTS FOR (n:Protein) ON (n.id)",
	"CREATE INDEX organism_taxonomy_id IF NOT EXISTS FOR (n:Organism) ON (n.taxonomy_id)",
	"CREATE INDEX reference_name IF NOT EXISTS FOR (n:Reference) ON (n.name)",
}
