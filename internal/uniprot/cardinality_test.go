package uniprot

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_SingleBecomesOneElementSequence(t *testing.T) {
	v := Single(Evidence{Type: "ECO:0000269", Key: "1"})

	got := v.Normalize()

	assert.Equal(t, []Evidence{{Type: "ECO:0000269", Key: "1"}}, got)
	assert.False(t, v.IsMany())
}

func TestNormalize_SequenceIsUnchanged(t *testing.T) {
	items := []string{"a", "b", "c"}
	v := Many(items)

	assert.Equal(t, items, v.Normalize())
	assert.True(t, v.IsMany())
}

func TestNormalize_ReturnsCopy(t *testing.T) {
	v := Many([]string{"a", "b"})

	got := v.Normalize()
	got[0] = "changed"

	assert.Equal(t, []string{"a", "b"}, v.Normalize())
	assert.Equal(t, 2, v.Len())
}

func TestNormalize_Idempotent(t *testing.T) {
	cases := []OneOrMany[string]{
		Single("x"),
		Many([]string{"x", "y"}),
	}
	for _, c := range cases {
		once := c.Normalize()
		twice := Many(once).Normalize()
		assert.Equal(t, once, twice)
	}
}

func TestNormalize_ZeroValue(t *testing.T) {
	var v OneOrMany[Feature]

	assert.True(t, v.IsZero())
	assert.Empty(t, v.Normalize())
	_, ok := v.First()
	assert.False(t, ok)
}

func TestOneOrMany_UnmarshalObjectOrArray(t *testing.T) {
	var single OneOrMany[Evidence]
	require.NoError(t, json.Unmarshal([]byte(`{"@type":"ECO:1","@key":"1"}`), &single))
	assert.Equal(t, []Evidence{{Type: "ECO:1", Key: "1"}}, single.Normalize())

	var many OneOrMany[Evidence]
	require.NoError(t, json.Unmarshal([]byte(`[{"@type":"ECO:1","@key":"1"},{"@type":"ECO:2","@key":"2"}]`), &many))
	require.Len(t, many.Normalize(), 2)
	assert.Equal(t, "2", many.Normalize()[1].Key)
}

func TestOneOrMany_UnmarshalNull(t *testing.T) {
	var v OneOrMany[Evidence]
	require.NoError(t, json.Unmarshal([]byte(`null`), &v))
	assert.True(t, v.IsZero())
}

func TestOneOrMany_Malformed(t *testing.T) {
	cases := map[string]string{
		"scalar for struct":  `"not a feature"`,
		"number in sequence": `[{"@type":"helix"}, 5]`,
		"empty sequence":     `[]`,
		"boolean":            `true`,
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			var v OneOrMany[Feature]
			err := json.Unmarshal([]byte(input), &v)
			assert.ErrorIs(t, err, ErrMalformedCardinality)
		})
	}
}

func TestOneOrMany_MalformedNested(t *testing.T) {
	var doc Document
	err := json.Unmarshal([]byte(`{"uniprot":{"entry":{"accession":"P1","feature":"oops"}}}`), &doc)
	assert.ErrorIs(t, err, ErrMalformedCardinality)
}

func TestOneOrMany_MarshalPreservesForm(t *testing.T) {
	single, err := json.Marshal(Single("P12345"))
	require.NoError(t, err)
	assert.JSONEq(t, `"P12345"`, string(single))

	many, err := json.Marshal(Many([]string{"P1", "P2"}))
	require.NoError(t, err)
	assert.JSONEq(t, `["P1","P2"]`, string(many))
}
