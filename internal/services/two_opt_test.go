package services

import (
	"cargo-route-service/internal/geography"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTwoOptImprovesPoorOrder(t *testing.T) {
	geo := geography.Kocaeli()
	in := []string{"İzmit", "Gebze", "Kandıra", "Darıca"}

	got := TwoOptSequencer{Geo: geo}.Sequence(in)

	assert.Less(t, RouteDistance(geo, got), RouteDistance(geo, in))
	assert.ElementsMatch(t, in, got)
}

func TestTwoOptNeverWorseThanBase(t *testing.T) {
	geo := geography.Kocaeli()
	base := DepotApproachSequencer{Geo: geo}
	sets := [][]string{
		{"Gebze", "Darıca", "Çayırova", "Dilovası"},
		{"Kandıra", "Karamürsel", "Gölcük", "Başiskele", "İzmit"},
		{"Körfez", "Derince", "Kartepe"},
	}

	for _, s := range sets {
		want := RouteDistance(geo, base.Sequence(s))
		got := TwoOptSequencer{Geo: geo, Base: base, Iterations: 10}.Sequence(s)
		assert.LessOrEqual(t, RouteDistance(geo, got), want, "stations %v", s)
		assert.ElementsMatch(t, s, got)
	}
}

func TestTwoOptShortInputs(t *testing.T) {
	seq := TwoOptSequencer{Geo: geography.Kocaeli(), Base: DepotApproachSequencer{Geo: geography.Kocaeli()}}

	assert.Empty(t, seq.Sequence(nil))
	assert.Equal(t, []string{"Gebze", "İzmit"}, seq.Sequence([]string{"İzmit", "Gebze"}))
}

func TestTwoOptSwap(t *testing.T) {
	in := []string{"a", "b", "c", "d", "e"}
	assert.Equal(t, []string{"a", "d", "c", "b", "e"}, twoOptSwap(in, 1, 3))
	assert.True(t, slices.Equal([]string{"a", "b", "c", "d", "e"}, in))
}
