package design

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMutationToken(t *testing.T) {
	m := Mutation{Site: 192, WildType: 'W', Variant: 'H'}
	assert.Equal(t, "W192H", m.Token())

	parsed, err := ParseMutation("W192H")
	require.NoError(t, err)
	assert.Equal(t, m, parsed)
}

func TestParseMutationInvalid(t *testing.T) {
	for _, token := range []string{"", "W", "WH", "WxH", "W192W"} {
		_, err := ParseMutation(token)
		assert.Error(t, err, "token %q", token)
	}
}

func TestCandidateKey(t *testing.T) {
	c := Candidate{
		ID: "mutant_1",
		Mutations: []Mutation{
			{Site: 192, WildType: 'W', Variant: 'H'},
			{Site: 215, WildType: 'V', Variant: 'G'},
		},
	}
	assert.Equal(t, "W192H+V215G", c.Key())
	assert.Equal(t, []string{"W192H", "V215G"}, c.Tokens())

	// key ignores the generation id
	c2 := c
	c2.ID = "mutant_2"
	assert.Equal(t, c.Key(), c2.Key())
}

func TestCandidateLookups(t *testing.T) {
	c := Candidate{
		Mutations: []Mutation{
			{Site: 192, WildType: 'W', Variant: 'H'},
			{Site: 215, WildType: 'V', Variant: 'G'},
		},
	}

	assert.True(t, c.Contains(Mutation{Site: 215, WildType: 'V', Variant: 'G'}))
	assert.False(t, c.Contains(Mutation{Site: 215, WildType: 'V', Variant: 'A'}))
	assert.Equal(t, byte('H'), c.VariantAt(192))
	assert.Equal(t, byte(0), c.VariantAt(999))
	assert.Equal(t, 2, c.Size())
}

func TestCatalogValidation(t *testing.T) {
	_, err := NewCatalog("", nil, []int{1})
	assert.Error(t, err)

	_, err = NewCatalog("ABC", map[int]int{1: 0}, nil)
	assert.ErrorIs(t, err, ErrEmptyCatalog)

	_, err = NewCatalog("ABC", map[int]int{1: 0}, []int{1, 2})
	assert.Error(t, err) // site 2 unmapped

	_, err = NewCatalog("ABC", map[int]int{1: 5}, []int{1})
	assert.Error(t, err) // index out of range

	_, err = NewCatalog("ABC", map[int]int{1: 0}, []int{1, 1})
	assert.Error(t, err) // duplicate site
}

func TestCatalogSites(t *testing.T) {
	c, err := NewCatalog("WAV", map[int]int{215: 2, 192: 0, 193: 1}, []int{215, 192, 193})
	require.NoError(t, err)

	require.Equal(t, 3, c.Len())

	sites := c.Sites()
	assert.Equal(t, []Site{
		{Number: 192, Index: 0, WildType: 'W'},
		{Number: 193, Index: 1, WildType: 'A'},
		{Number: 215, Index: 2, WildType: 'V'},
	}, sites)

	wt, ok := c.WildTypeAt(215)
	require.True(t, ok)
	assert.Equal(t, byte('V'), wt)

	_, ok = c.WildTypeAt(999)
	assert.False(t, ok)
}
