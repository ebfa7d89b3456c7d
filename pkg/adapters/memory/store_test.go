package memory_test

import (
	"testing"

	"github.com/aretw0/goap/pkg/adapters/memory"
	"github.com/aretw0/goap/pkg/ports"
)

func TestMemoryResultStore_Contract(t *testing.T) {
	store := memory.NewResultStore()
	ports.RunResultStoreContract(t, store)
}
