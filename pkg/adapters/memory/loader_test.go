package memory_test

import (
	"testing"

	"github.com/aretw0/goap/internal/testutils"
	"github.com/aretw0/goap/pkg/adapters/memory"
	"github.com/aretw0/goap/pkg/domain"
	contract "github.com/aretw0/goap/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryLoader_Contract(t *testing.T) {
	loader := memory.NewLoader(testutils.Household())
	contract.CatalogueLoaderContractTest(t, loader, testutils.Household())
}

func TestNewFromActions(t *testing.T) {
	t.Run("Keys By Action", func(t *testing.T) {
		loader, err := memory.NewFromActions(
			domain.Action{Key: "A", Cost: 1},
			domain.Action{Key: "B", Cost: 2},
		)
		require.NoError(t, err)
		contract.CatalogueLoaderContractTest(t, loader, domain.Catalogue{
			"A": {Key: "A", Cost: 1},
			"B": {Key: "B", Cost: 2},
		})
	})

	t.Run("Rejects Missing And Duplicate Keys", func(t *testing.T) {
		_, err := memory.NewFromActions(domain.Action{Cost: 1})
		assert.Error(t, err)

		_, err = memory.NewFromActions(domain.Action{Key: "A"}, domain.Action{Key: "A"})
		assert.Error(t, err)
	})
}
