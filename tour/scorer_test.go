package tour

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// singleSiteText is one site, one day, window 9..17, desired 30, value 5.
const singleSiteText = `site avenue street desiredtime value
1 0 0 30 5.0
site day beginhour endhour
1 1 9 17
`

func scoreErr(t *testing.T, p *Problem, output string) *Error {
	t.Helper()
	_, err := p.Score(output)
	require.Error(t, err)
	terr, ok := err.(*Error)
	require.True(t, ok, "error must be a *tour.Error, got %T", err)
	return terr
}

func TestScoreSingleSite(t *testing.T) {
	p := mustParse(t, singleSiteText)
	total, err := p.Score("1\n")
	require.NoError(t, err)
	assert.Equal(t, 5.0, total)
}

func TestScoreRepeatedVisitAcrossDays(t *testing.T) {
	raw := `site avenue street desiredtime value
1 0 0 30 5.0
site day beginhour endhour
1 1 9 17
1 2 9 17
`
	p := mustParse(t, raw)
	terr := scoreErr(t, p, "1\n1\n")
	assert.Equal(t, FeasibilityError, terr.Kind)
	assert.Equal(t, "already visited site 1", terr.Msg)
}

func TestScoreRepeatedVisitSameDay(t *testing.T) {
	p := mustParse(t, singleSiteText)
	terr := scoreErr(t, p, "1 1\n")
	assert.Equal(t, "already visited site 1", terr.Msg)
}

func TestScoreTravelTime(t *testing.T) {
	raw := `site avenue street desiredtime value
1 0 0 5 1.0
2 10 0 5 1.0
site day beginhour endhour
1 1 0 23
2 1 0 23
`
	p := mustParse(t, raw)
	total, err := p.Score("1 2\n")
	require.NoError(t, err)
	assert.Equal(t, 2.0, total)
}

func TestScoreTravelTimeExhaustsWindow(t *testing.T) {
	// Second site closes at hour 1: travel takes 100 minutes, and
	// 100+30 > 60.
	raw := `site avenue street desiredtime value
1 0 0 5 1.0
2 100 0 30 1.0
site day beginhour endhour
1 1 0 23
2 1 0 1
`
	p := mustParse(t, raw)
	terr := scoreErr(t, p, "1 2\n")
	assert.Equal(t, FeasibilityError, terr.Kind)
	assert.Equal(t, "insufficient time to visit site 2", terr.Msg)
}

func TestScoreNoTravelForFirstSiteOfDay(t *testing.T) {
	// The day starts at the first site: distance from the origin is free.
	raw := `site avenue street desiredtime value
1 500 500 30 2.0
site day beginhour endhour
1 1 0 1
`
	p := mustParse(t, raw)
	total, err := p.Score("1\n")
	require.NoError(t, err)
	assert.Equal(t, 2.0, total)
}

func TestScoreWaitsForOpening(t *testing.T) {
	// Arrival at minute 0 waits until 540; the visit fits: 540+30 <= 600.
	raw := `site avenue street desiredtime value
1 0 0 30 5.0
site day beginhour endhour
1 1 9 10
`
	p := mustParse(t, raw)
	total, err := p.Score("1\n")
	require.NoError(t, err)
	assert.Equal(t, 5.0, total)

	// One more hour of desired time does not fit: 540+61 > 600.
	tight := `site avenue street desiredtime value
1 0 0 61 5.0
site day beginhour endhour
1 1 9 10
`
	q := mustParse(t, tight)
	terr := scoreErr(t, q, "1\n")
	assert.Equal(t, "insufficient time to visit site 1", terr.Msg)
}

func TestScoreWrongLineCount(t *testing.T) {
	raw := `site avenue street desiredtime value
1 0 0 30 5.0
site day beginhour endhour
1 1 9 17
1 2 9 17
`
	p := mustParse(t, raw)
	terr := scoreErr(t, p, "1\n\n1\n")
	assert.Equal(t, FeasibilityError, terr.Kind)
	assert.Equal(t, "expected 2 lines but there are 3", terr.Msg)
}

func TestScoreTrailingBlankLinesTrimmed(t *testing.T) {
	p := mustParse(t, singleSiteText)
	total, err := p.Score("1\n\n\n\n")
	require.NoError(t, err)
	assert.Equal(t, 5.0, total)
}

func TestScoreSiteIDOutOfRange(t *testing.T) {
	p := mustParse(t, twoSiteText)
	for _, output := range []string{"0\n1\n", "3\n1\n"} {
		terr := scoreErr(t, p, output)
		assert.Equal(t, RangeError, terr.Kind)
		assert.Contains(t, terr.Msg, "must be between 1 and 2")
	}
}

func TestScoreNonIntegerSiteToken(t *testing.T) {
	p := mustParse(t, singleSiteText)
	terr := scoreErr(t, p, "one\n")
	assert.Equal(t, FeasibilityError, terr.Kind)
	assert.Equal(t, `invalid site id "one"`, terr.Msg)
}

func TestScoreEmptyDaysAreFeasible(t *testing.T) {
	p := mustParse(t, twoSiteText)

	// Whitespace-only lines are days with zero visits; unlike truly empty
	// trailing lines, they are not trimmed away.
	total, err := p.Score(" \n \n")
	require.NoError(t, err)
	assert.Equal(t, 0.0, total)

	total, err = p.Score("  \n1 2\n")
	require.NoError(t, err)
	assert.Equal(t, 7.5, total)
}

func TestScoreIdempotent(t *testing.T) {
	p := mustParse(t, twoSiteText)
	first := ScoreOutput(p, "\n1 2\n")
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, ScoreOutput(p, "\n1 2\n"))
	}
	require.True(t, first.Feasible)
	assert.Equal(t, 7.5, first.TotalValue)
}

func TestScoreValueIsSumOfVisitedSites(t *testing.T) {
	p := mustParse(t, twoSiteText)

	total, err := p.Score("2\n \n")
	require.NoError(t, err)
	assert.Equal(t, 2.5, total)

	total, err = p.Score("\n2 1\n")
	require.NoError(t, err)
	assert.Equal(t, 7.5, total)
}

func TestScoreOutputFoldsRejection(t *testing.T) {
	p := mustParse(t, singleSiteText)
	res := ScoreOutput(p, "1\n1\n")
	assert.False(t, res.Feasible)
	assert.Equal(t, 0.0, res.TotalValue)
	assert.Equal(t, "expected 1 lines but there are 2", res.Reason)
}

func TestScoreDayResetsClockAndPosition(t *testing.T) {
	// Site 2 is far from site 1, but on day 2 the clock and the position
	// restart, so visiting it first costs no travel.
	raw := `site avenue street desiredtime value
1 0 0 60 1.0
2 1000 1000 60 3.0
site day beginhour endhour
1 1 0 1
2 1 0 1
1 2 0 1
2 2 0 1
`
	p := mustParse(t, raw)
	total, err := p.Score("1\n2\n")
	require.NoError(t, err)
	assert.Equal(t, 4.0, total)
}
