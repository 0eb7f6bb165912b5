package routegraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshika/airnet/internal/domain"
)

func records(pairs ...string) []domain.RouteRecord {
	if len(pairs)%2 != 0 {
		panic("records: odd number of codes")
	}
	out := make([]domain.RouteRecord, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, domain.RouteRecord{
			Source:      domain.AirportCode(pairs[i]),
			Destination: domain.AirportCode(pairs[i+1]),
		})
	}
	return out
}

func codes(in ...string) []domain.AirportCode {
	out := make([]domain.AirportCode, len(in))
	for i, c := range in {
		out[i] = domain.AirportCode(c)
	}
	return out
}

func TestBuild_VertexSetMatchesRecordCodes(t *testing.T) {
	g := Build(records("DEL", "BOM", "BOM", "NBO", "JFK", "DEL"))

	assert.Equal(t, codes("BOM", "DEL", "JFK", "NBO"), g.Codes())
	assert.Equal(t, 4, g.NodeCount())
	assert.False(t, g.Has("LHR"))
}

func TestBuild_DuplicateRecordsCollapse(t *testing.T) {
	g := Build(records("A", "B", "B", "A", "A", "B"))

	require.Equal(t, 1, g.EdgeCount())
	assert.Equal(t, []Edge{{A: "A", B: "B"}}, g.Edges())
	assert.Equal(t, codes("B"), g.Neighbors("A"))
	assert.Equal(t, codes("A"), g.Neighbors("B"))
}

func TestBuild_EdgeIffRecordNamesPair(t *testing.T) {
	recs := records("A", "B", "C", "B", "C", "D", "E", "E")
	g := Build(recs)

	named := map[[2]domain.AirportCode]bool{}
	for _, r := range recs {
		named[[2]domain.AirportCode{r.Source, r.Destination}] = true
		named[[2]domain.AirportCode{r.Destination, r.Source}] = true
	}
	for _, a := range g.Codes() {
		for _, b := range g.Codes() {
			assert.Equal(t, named[[2]domain.AirportCode{a, b}], g.Adjacent(a, b), "%s-%s", a, b)
		}
	}
}

func TestBuild_SelfLoopOnlyWhenNamed(t *testing.T) {
	g := Build(records("A", "A", "A", "B"))

	assert.True(t, g.Adjacent("A", "A"))
	assert.False(t, g.Adjacent("B", "B"))
	assert.Equal(t, 2, g.EdgeCount())
	assert.Equal(t, codes("A", "B"), g.Neighbors("A"))
}

func TestBuild_AcceptsEmptyCodes(t *testing.T) {
	g := Build(records("", "A"))

	assert.True(t, g.Has(""))
	assert.Equal(t, 2, g.NodeCount())
	assert.Equal(t, 1, g.EdgeCount())
}

func TestBuild_Empty(t *testing.T) {
	g := Build(nil)

	assert.Zero(t, g.NodeCount())
	assert.Zero(t, g.EdgeCount())
	assert.Empty(t, g.Codes())
	assert.Nil(t, g.Neighbors("A"))
}

func TestBuild_CodesAreCaseSensitive(t *testing.T) {
	g := Build(records("del", "DEL"))

	assert.Equal(t, 2, g.NodeCount())
	assert.True(t, g.Adjacent("del", "DEL"))
}
