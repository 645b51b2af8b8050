package formats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupIsCaseInsensitive(t *testing.T) {
	for _, name := range []string{"png", "PNG", "Png", "  png  "} {
		d, ok := Lookup(name)
		require.True(t, ok, name)
		assert.Equal(t, "PNG", d.ID)
	}

	_, ok := Lookup("NOPE")
	assert.False(t, ok)
}

func TestIdentifiersAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, d := range All() {
		assert.False(t, seen[normalize(d.ID)], "duplicate %s", d.ID)
		seen[normalize(d.ID)] = true
	}
	assert.Len(t, seen, 270)
}

func TestListKeepsDeclarationOrder(t *testing.T) {
	all := All()
	pos := map[string]int{}
	for i, d := range all {
		pos[d.ID] = i
	}

	for _, list := range [][]Descriptor{Writable(), Readable(), ImageOutputs(), ImageInputs()} {
		for i := 1; i < len(list); i++ {
			assert.Less(t, pos[list[i-1].ID], pos[list[i].ID])
		}
	}
	assert.Equal(t, "3FR", all[0].ID)
	assert.Equal(t, "YUV", all[len(all)-1].ID)
}

func TestImageSubsets(t *testing.T) {
	outs := ImageOutputs()
	ins := ImageInputs()
	assert.Len(t, outs, 92)
	assert.Len(t, ins, 85)

	for _, d := range outs {
		assert.True(t, d.Write, d.ID)
	}
	for _, d := range ins {
		assert.True(t, d.Read, d.ID)
	}

	// Video containers share the vocabulary but are not images.
	assert.False(t, IsImageOutput("MP4"))
	assert.False(t, IsImageInput("AVI"))
}

func TestRawFormatsAreReadOnly(t *testing.T) {
	raws := []string{"CR2", "CR3", "NEF", "ARW", "DNG", "RAF", "ORF", "3FR"}
	for _, id := range raws {
		d, ok := Lookup(id)
		require.True(t, ok, id)
		assert.True(t, d.Read, id)
		assert.False(t, d.Write, id)
		assert.True(t, IsImageInput(id), id)
		assert.False(t, IsImageOutput(id), id)
	}

	heic, _ := Lookup("heic")
	assert.False(t, heic.Write)
}

func TestListFilter(t *testing.T) {
	no := false
	readOnly := List(Filter{Read: yes(), Write: &no})
	require.NotEmpty(t, readOnly)
	for _, d := range readOnly {
		assert.True(t, d.Read)
		assert.False(t, d.Write)
	}
	assert.Len(t, List(Filter{}), 270)
}

func TestPopular(t *testing.T) {
	pop := Popular()
	require.Len(t, pop, 17)
	assert.Equal(t, "JPEG", pop[0].ID)
	assert.Equal(t, "TGA", pop[len(pop)-1].ID)
}

func TestComputeStats(t *testing.T) {
	s := ComputeStats()
	assert.Equal(t, 270, s.Total)
	assert.Equal(t, 244, s.Readable)
	assert.Equal(t, 189, s.Writable)
	assert.Equal(t, 85, s.ImageInputs)
	assert.Equal(t, 92, s.ImageOutputs)
	assert.Empty(t, s.MissingFromTable)
	assert.Empty(t, s.ReadOnlyOffered)
	assert.Len(t, s.WritableNotOffered, 189-92)
}

func TestCategorize(t *testing.T) {
	groups := Categorize(ImageInputs())
	require.NotEmpty(t, groups)

	got := map[string][]string{}
	var order []string
	for _, g := range groups {
		order = append(order, g.Category)
		for _, d := range g.Formats {
			got[g.Category] = append(got[g.Category], d.ID)
		}
	}

	assert.Equal(t, Categories(), order)
	assert.Equal(t, []string{"BMP", "GIF", "JPEG", "JPG", "PNG", "WEBP"}, got[CategoryWeb])
	assert.Len(t, got[CategoryRaw], 28)
	assert.Contains(t, got[CategoryOther], "JPM")
	assert.Contains(t, got[CategoryLegacy], "TGA")
	assert.Equal(t, CategoryOther, CategoryOf("MIFF"))
	assert.Equal(t, CategoryHDR, CategoryOf("exr"))
}

func TestCategorizeOmitsEmptyGroups(t *testing.T) {
	d, _ := Lookup("SVG")
	groups := Categorize([]Descriptor{d})
	require.Len(t, groups, 1)
	assert.Equal(t, CategoryVector, groups[0].Category)
	assert.Empty(t, Categorize(nil))
}
