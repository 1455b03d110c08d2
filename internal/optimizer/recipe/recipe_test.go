package recipe_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"irsuite/internal/optimizer/recipe"
)

func TestParseBareSegment(t *testing.T) {
	r, err := recipe.Parse("dhfo")
	require.NoError(t, err)
	steps := r.Steps()
	require.Len(t, steps, 1)
	require.Equal(t, recipe.RunOnce, steps[0].Kind)
	require.Equal(t, []string{"d", "h", "f", "o"}, steps[0].Abbrevs)
}

func TestParseSingleGroup(t *testing.T) {
	r, err := recipe.Parse("dh(xa)cu")
	require.NoError(t, err)
	steps := r.Steps()
	require.Len(t, steps, 3)
	require.Equal(t, recipe.RunOnce, steps[0].Kind)
	require.Equal(t, []string{"d", "h"}, steps[0].Abbrevs)
	require.Equal(t, recipe.Loop, steps[1].Kind)
	require.Equal(t, []string{"x", "a"}, steps[1].Abbrevs)
	require.Equal(t, recipe.RunOnce, steps[2].Kind)
	require.Equal(t, []string{"c", "u"}, steps[2].Abbrevs)
}

func TestParseIgnoresWhitespace(t *testing.T) {
	r, err := recipe.Parse("d h (x a) c u")
	require.NoError(t, err)
	require.Equal(t, []string{"d", "h", "x", "a", "c", "u"}, r.Abbreviations())
}

func TestParseEmptyLeadAndTrailingGroup(t *testing.T) {
	r, err := recipe.Parse("(xa)")
	require.NoError(t, err)
	steps := r.Steps()
	require.Len(t, steps, 1)
	require.Equal(t, recipe.Loop, steps[0].Kind)
}

func TestParseEmptyRecipe(t *testing.T) {
	r, err := recipe.Parse("")
	require.NoError(t, err)
	require.Empty(t, r.Steps())
}

func TestParseRejectsNestedParens(t *testing.T) {
	_, err := recipe.Parse("d(x(a)c)u")
	require.Error(t, err)
}

func TestParseRejectsUnbalancedParens(t *testing.T) {
	_, err := recipe.Parse("d(xa")
	require.Error(t, err)

	_, err = recipe.Parse("d xa)")
	require.Error(t, err)
}

func TestDefaultRecipeLiteralParses(t *testing.T) {
	const defaultRecipe = `dhfoDgvulfnTUtnIf(xarrscLM` +
		` cCTUtTOntnfDIul Lcul Vcul jj eul xarulrul xarrcL gvif CTUcarrLsTOtfDncarrIulc)jmuljuljul VcTOcul jmul`
	r, err := recipe.Parse(defaultRecipe)
	require.NoError(t, err)
	require.NotEmpty(t, r.Steps())
}
