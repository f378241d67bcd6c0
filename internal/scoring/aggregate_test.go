package scoring

import (
	"testing"

	"github.com/HendryAvila/quietscan/internal/catalog"
	"github.com/HendryAvila/quietscan/internal/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func TestAverageClients_NilWithoutClients(t *testing.T) {
	cat := catalog.Default()
	l := ledger.New()
	answerPillar(t, l, ledger.RoleOwner, catalog.PillarPresence, fiveOf(catalog.AnswerYes)...)

	assert.Nil(t, AverageClients(cat, l, all))
}

func TestAverageClients_IgnoresAnswersOutsideActivePillars(t *testing.T) {
	cat := catalog.Default()
	l := ledger.New()
	answerPillar(t, l, ledger.RoleClient1, catalog.PillarDigital, catalog.AnswerYes)

	assert.Nil(t, AverageClients(cat, l, []catalog.PillarKey{catalog.PillarPresence}))
}

func TestAverageClients_SingleClientIsIdentity(t *testing.T) {
	cat := catalog.Default()
	l := ledger.New()
	answerPillar(t, l, ledger.RoleClient1, catalog.PillarPresence,
		catalog.AnswerYes, catalog.AnswerMaybe, catalog.AnswerNo)
	answerPillar(t, l, ledger.RoleClient1, catalog.PillarSignature, fiveOf(catalog.AnswerMaybe)...)

	own := Score(cat, l.Bundle(ledger.RoleClient1), all, "client1")
	avg := AverageClients(cat, l, all)
	require.NotNil(t, avg)

	assert.Equal(t, RoleClientsAverage, avg.Meta.Role)
	for _, key := range all {
		assert.Equal(t, own.PillarScore(key), avg.PillarScore(key), "pillar %s", key)
		assert.Equal(t, own.Pillars[key].Label, avg.Pillars[key].Label, "pillar %s", key)
	}
	for i := range own.Indicators {
		assert.Equal(t, own.IndicatorScore(i), avg.IndicatorScore(i), own.Indicators[i].Name)
	}
	assert.Equal(t, own.Global.Score, avg.Global.Score)
}

func TestAverageClients_SkipsNullPerPillar(t *testing.T) {
	cat := catalog.Default()
	l := ledger.New()
	answerPillar(t, l, ledger.RoleClient1, catalog.PillarPresence, fiveOf(catalog.AnswerYes)...)
	answerPillar(t, l, ledger.RoleClient2, catalog.PillarPresence, fiveOf(catalog.AnswerNo)...)
	answerPillar(t, l, ledger.RoleClient2, catalog.PillarDigital, fiveOf(catalog.AnswerMaybe)...)

	avg := AverageClients(cat, l, all)
	require.NotNil(t, avg)

	require.NotNil(t, avg.PillarScore(catalog.PillarPresence))
	assert.InDelta(t, 2.0, *avg.PillarScore(catalog.PillarPresence), 1e-9)

	// Only client2 answered digital; client1's null is skipped, not zero.
	require.NotNil(t, avg.PillarScore(catalog.PillarDigital))
	assert.InDelta(t, 2.0, *avg.PillarScore(catalog.PillarDigital), 1e-9)

	assert.Nil(t, avg.PillarScore(catalog.PillarSpace))
	assert.Equal(t, LabelIncomplete, avg.Pillars[catalog.PillarSpace].Label)

	// client1 global 4.0, client2 global (0+2)/2 = 1.0.
	require.NotNil(t, avg.Global.Score)
	assert.InDelta(t, 2.5, *avg.Global.Score, 1e-9)
}

func TestAverageClients_ExcludesSilentClients(t *testing.T) {
	cat := catalog.Default()
	l := ledger.New()
	answerPillar(t, l, ledger.RoleClient2, catalog.PillarSpace, fiveOf(catalog.AnswerYes)...)

	assert.Equal(t, []ledger.Role{ledger.RoleClient2}, QualifyingClients(l, all))

	avg := AverageClients(cat, l, all)
	require.NotNil(t, avg)
	require.NotNil(t, avg.Global.Score)
	assert.InDelta(t, 4.0, *avg.Global.Score, 1e-9)
}

func TestAverage_Empty(t *testing.T) {
	assert.Nil(t, Average(nil, all))
}

// --- Gap ---

func TestGap(t *testing.T) {
	g := Gap(f(3.5), f(1.9))
	require.NotNil(t, g)
	assert.InDelta(t, 1.6, *g, 1e-9)
	assert.Equal(t, ToneStrong, ToneOf(g))
	assert.Equal(t, "strong perception gap", ToneOf(g).Label())
}

func TestGap_Symmetric(t *testing.T) {
	pairs := [][2]float64{{0, 4}, {2.4, 3.1}, {1, 1}, {3.75, 0.25}}
	for _, p := range pairs {
		ab := Gap(f(p[0]), f(p[1]))
		ba := Gap(f(p[1]), f(p[0]))
		require.NotNil(t, ab)
		require.NotNil(t, ba)
		assert.InDelta(t, *ab, *ba, 1e-12)
	}
}

func TestGap_UndefinedWhenEitherMissing(t *testing.T) {
	assert.Nil(t, Gap(nil, f(2)))
	assert.Nil(t, Gap(f(2), nil))
	assert.Nil(t, Gap(nil, nil))
	assert.Equal(t, ToneInsufficient, ToneOf(nil))
}

func TestToneOf_Buckets(t *testing.T) {
	tests := []struct {
		gap  float64
		want Tone
	}{
		{0, ToneAligned},
		{0.39, ToneAligned},
		{0.4, ToneModerate},
		{0.99, ToneModerate},
		{1.0, ToneStrong},
		{4, ToneStrong},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ToneOf(&tt.gap), "gap %v", tt.gap)
	}
}

func TestMeanPtr(t *testing.T) {
	assert.Nil(t, MeanPtr())
	assert.Nil(t, MeanPtr(nil, nil))
	m := MeanPtr(f(1), nil, f(3))
	require.NotNil(t, m)
	assert.InDelta(t, 2.0, *m, 1e-9)
}
