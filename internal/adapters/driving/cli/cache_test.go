package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheStatsCmd(t *testing.T) {
	cleanup := setupAppTest(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, processedStore.MarkProcessed(ctx, "gutenberg:84"))
	require.NoError(t, processedStore.MarkProcessed(ctx, "gutenberg:98"))
	require.NoError(t, processedStore.MarkProcessed(ctx, "imsdb:Alien"))

	output, err := execute(t, "cache", "stats")
	require.NoError(t, err)
	assert.Contains(t, output, "Processed documents: 3")
	assert.Contains(t, output, "gutenberg")
	assert.Contains(t, output, "imsdb")
}

func TestCacheClearCmd(t *testing.T) {
	cleanup := setupAppTest(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, processedStore.MarkProcessed(ctx, "gutenberg:84"))

	output, err := execute(t, "cache", "clear")
	require.NoError(t, err)
	assert.Contains(t, output, "cleared")

	stats, err := processedStore.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.Total)
}
