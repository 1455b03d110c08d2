package optimizer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"irsuite/internal/optimizer/passes"
)

func TestLookupPassResolvesKnownAbbreviation(t *testing.T) {
	p, ok := lookupPass("f")
	require.True(t, ok)
	require.IsType(t, passes.BlockFlattener{}, p)
}

func TestLookupPassRejectsUnknownAbbreviation(t *testing.T) {
	_, ok := lookupPass("Z")
	require.False(t, ok)
}

func TestLookupPassHasNoEntryForSuiteBookends(t *testing.T) {
	_, ok := lookupPass("VarNameCleaner")
	require.False(t, ok)
}

func TestAllAbbreviationsCoversEveryCatalogEntry(t *testing.T) {
	all := AllAbbreviations()
	require.Len(t, all, 28)
	names := StepAbbreviationToNameMap()
	require.Len(t, names, 28)
	require.Equal(t, "BlockFlattener", names["f"])
}

func TestAllStepsReturnsOrderedCatalog(t *testing.T) {
	steps := AllSteps()
	require.Len(t, steps, 28)
	require.Equal(t, "f", steps[0].Abbreviation)
	require.Equal(t, "BlockFlattener", steps[0].Pass.Name())
	require.Equal(t, "d", steps[len(steps)-1].Abbreviation)
}

func TestStepNameToAbbreviationMapIsInverse(t *testing.T) {
	byName := StepNameToAbbreviationMap()
	require.Equal(t, "f", byName["BlockFlattener"])
	require.Len(t, byName, 28)
}
