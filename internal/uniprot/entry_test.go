package uniprot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDocument = `{
  "uniprot": {
    "@xmlns": "http://uniprot.org/uniprot",
    "entry": {
      "@dataset": "Swiss-Prot",
      "accession": ["Q9Y261", "Q8WUW4"],
      "name": "FOXA2_HUMAN",
      "protein": {"recommendedName": {"fullName": "Hepatocyte nuclear factor 3-beta"}},
      "gene": {"name": [{"@type": "primary", "#text": "FOXA2"}, {"@type": "synonym", "#text": "HNF3B"}]},
      "organism": {
        "name": [{"@type": "scientific", "#text": "Homo sapiens"}, {"@type": "common", "#text": "Human"}],
        "dbReference": {"@type": "NCBI Taxonomy", "@id": "9606"},
        "lineage": {"taxon": ["Eukaryota", "Metazoa", "Chordata"]}
      },
      "reference": {
        "@key": "1",
        "citation": {
          "@type": "journal article",
          "@name": "Genomics",
          "@volume": "56",
          "title": "Cloning of HNF3B.",
          "authorList": {"person": [{"@name": "Smith A."}, {"@name": "Jones B."}]}
        }
      },
      "feature": [
        {"@type": "chain", "@description": "Hepatocyte nuclear factor 3-beta", "@id": "PRO_1",
         "location": {"begin": {"@position": "1"}, "end": {"@position": "457"}}},
        {"@type": "modified residue", "@evidence": "3",
         "location": {"position": {"@position": "42"}}}
      ],
      "evidence": {"@type": "ECO:0007744", "@key": "3"},
      "sequence": {"@length": "457", "@mass": "48306", "@checksum": "C2E6", "@modified": "2007-01-23", "@version": "1", "#text": "MHSASSMLGA"}
    }
  }
}`

func TestParse_SampleDocument(t *testing.T) {
	doc, err := Parse([]byte(sampleDocument))
	require.NoError(t, err)

	entry, err := doc.Entry()
	require.NoError(t, err)

	assert.Equal(t, []string{"Q9Y261", "Q8WUW4"}, entry.Accession.Normalize())
	require.NotNil(t, entry.Protein)
	assert.Equal(t, "Hepatocyte nuclear factor 3-beta", entry.Protein.RecommendedName.FullName.Value)

	genes := entry.Gene.Normalize()
	require.Len(t, genes, 1)
	names := genes[0].Name.Normalize()
	require.Len(t, names, 2)
	assert.Equal(t, "FOXA2", names[0].Value)
	assert.Equal(t, "primary", *names[0].Attr("type"))

	org, ok := entry.Organism.First()
	require.True(t, ok)
	assert.Equal(t, []string{"Eukaryota", "Metazoa", "Chordata"}, org.Lineage.Taxon.Normalize())

	ref, _ := entry.Reference.First()
	cit, _ := ref.Citation.First()
	assert.Equal(t, "Genomics", *cit.Name)
	assert.Equal(t, "Cloning of HNF3B.", cit.Title.Value)
	assert.Equal(t, 2, cit.AuthorList.Person.Len())

	features := entry.Feature.Normalize()
	require.Len(t, features, 2)
	assert.Nil(t, features[1].Description)
	assert.Equal(t, "42", *features[1].Location.Position.Position)

	seq, _ := entry.Sequence.First()
	assert.Equal(t, "MHSASSMLGA", seq.Value)
	assert.Equal(t, "457", seq.Length)
}

func TestDocument_EntryCount(t *testing.T) {
	doc, err := Parse([]byte(`{"uniprot": {}}`))
	require.NoError(t, err)
	_, err = doc.Entry()
	assert.ErrorIs(t, err, ErrNoEntry)

	doc, err = Parse([]byte(`{"uniprot": {"entry": [{"accession": "P1"}, {"accession": "P2"}]}}`))
	require.NoError(t, err)
	_, err = doc.Entry()
	assert.ErrorIs(t, err, ErrMultipleEntries)
}

func TestText_BareStringAndAttributes(t *testing.T) {
	doc, err := Parse([]byte(`{"uniprot": {"entry": {"gene": {"name": "FOO"}}}}`))
	require.NoError(t, err)
	entry, err := doc.Entry()
	require.NoError(t, err)

	gene, _ := entry.Gene.First()
	name, _ := gene.Name.First()
	assert.Equal(t, "FOO", name.Value)
	assert.Nil(t, name.Attr("type"))
}
