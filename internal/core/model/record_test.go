package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRows_OptionalFieldsBecomeNull(t *testing.T) {
	status := "primary"
	rows := Rows([]GeneRecord{
		{ID: "Q9Y261", Name: "FOXA2", Status: &status},
		{ID: "Q9Y261", Name: "HNF3B"},
	})

	assert.Len(t, rows, 2)
	assert.Equal(t, "primary", rows[0]["status"])
	assert.Nil(t, rows[1]["status"])
	assert.Contains(t, rows[1], "status")
}

func TestRows_Empty(t *testing.T) {
	rows := Rows([]EvidenceRecord(nil))
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestOrganismRecord_LineagesAsList(t *testing.T) {
	p := OrganismRecord{ID: "P1", TaxonomyID: "9606", Lineages: []string{"Eukaryota", "Metazoa"}}.Params()
	assert.Equal(t, []any{"Eukaryota", "Metazoa"}, p["lineages"])
}
