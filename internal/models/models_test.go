package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTermGroups_SetKeepsFirstPosition(t *testing.T) {
	g := NewTermGroups()
	g.Set("big", []string{"tiny"})
	g.Set("huge", []string{"minor"})
	g.Set("big", []string{"slim", "small"})

	assert.Equal(t, []string{"big", "huge"}, g.Terms())
	assert.Equal(t, 2, g.Len())

	related, ok := g.Get("big")
	assert.True(t, ok)
	assert.Equal(t, []string{"slim", "small"}, related)

	_, ok = g.Get("absent")
	assert.False(t, ok)
}

func TestTermGroups_NilLen(t *testing.T) {
	var g *TermGroups
	assert.Equal(t, 0, g.Len())
}

func TestTermGroups_TermsIsCopy(t *testing.T) {
	g := NewTermGroups()
	g.Set("a", nil)
	terms := g.Terms()
	terms[0] = "changed"
	assert.Equal(t, []string{"a"}, g.Terms())
}

func TestCollisions(t *testing.T) {
	var c Collisions
	c.Add("huge", "tiny")
	c.Add("small", "vast")
	c.Add("huge", "little")
	c.Add("small", "tiny")

	assert.Equal(t, 4, c.Len())
	assert.Equal(t, []string{"huge", "small"}, c.DistinctOverlap())

	base, ok := c.MatchFor("tiny")
	assert.True(t, ok)
	assert.Equal(t, "huge", base, "first recorded collision wins")

	_, ok = c.MatchFor("slim")
	assert.False(t, ok)
}

func TestAmbiguity(t *testing.T) {
	a := NewAmbiguity()
	a.Entry("big").Add("huge", "tiny")
	a.Entry("huge")
	a.Entry("big").Add("small", "vast")

	assert.Equal(t, []string{"big", "huge"}, a.Terms())
	assert.Equal(t, 1, a.FlaggedTerms())
	assert.Equal(t, 2, a.TotalCollisions())
	assert.Equal(t, 2, a.For("big").Len())
	assert.Equal(t, 0, a.For("missing").Len())
	assert.Equal(t, []string{"big", "huge"}, a.Terms(), "For does not create entries")
}
