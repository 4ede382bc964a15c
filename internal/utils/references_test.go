package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReferences(t *testing.T) {
	assert.Equal(t, "CT-2026-000042", ContractReference(2026, 42))
	assert.Equal(t, "AS-2026-000007", DossierNumber(2026, 7))
	assert.Equal(t, "VE-2026-000113", JournalReference(2026, 113))
	assert.Equal(t, "CT-2026-000001", ContractReference(2026, 1))
}
