package mysql

import (
	"testing"

	"commerce/infrastructure/persistence/retry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactoryBuildsFreshUnitOfWork(t *testing.T) {
	f := NewUnitOfWorkFactory(nil, retry.DefaultConfig)

	first := f.New()
	second := f.New()
	require.NotNil(t, first)
	require.NotNil(t, second)

	// concurrent operations must not share an event buffer
	assert.NotSame(t, first, second)
}
