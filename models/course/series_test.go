package course

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeriesLess(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		{"CSG002", "CSG010", true},
		{"CSG010", "CSG002", false},
		{"csg2", "CSG10", true},     // numeric, not lexicographic
		{"CSG001", "TNG001", true},  // head sorts first
		{"CSG005", "intro", true},   // numeric entries before plain names
		{"intro", "CSG005", false},
		{"alpha", "beta", true},     // plain names alphabetical
		{"CSG001", "CSG001", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, SeriesLess(tc.a, tc.b), "%q < %q", tc.a, tc.b)
	}
}

func TestSortModulesBySeries(t *testing.T) {
	mods := []Module{
		{ModuleName: "ten", SeriesNumber: "CSG010"},
		{ModuleName: "intro", SeriesNumber: "overview"},
		{ModuleName: "two", SeriesNumber: "CSG002"},
		{ModuleName: "one", SeriesNumber: "CSG001"},
	}
	SortModulesBySeries(mods)

	got := make([]string, len(mods))
	for i, m := range mods {
		got[i] = m.ModuleName
	}
	assert.Equal(t, []string{"one", "two", "ten", "intro"}, got)
}

func TestSortModulesBySeriesTieBreak(t *testing.T) {
	mods := []Module{
		{ModuleName: "b", SeriesNumber: "CSG001"},
		{ModuleName: "a", SeriesNumber: "CSG001"},
	}
	mods[0].ID = 2
	mods[1].ID = 1
	SortModulesBySeries(mods)

	assert.Equal(t, "a", mods[0].ModuleName)
	assert.Equal(t, "b", mods[1].ModuleName)
}
