package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	t.Run("values pipeline", func(t *testing.T) {
		var stdout, stderr bytes.Buffer

		err := run(context.Background(), []string{
			"-values", "1,2,3,4,5,6",
			"-skip", "1",
			"-filter", "even",
			"-multiply", "10",
		}, &stdout, &stderr)

		require.NoError(t, err)
		assert.Equal(t, "20\n40\n60\n", stdout.String())
		assert.Contains(t, stderr.String(), "stream_complete")
	})

	t.Run("interval source", func(t *testing.T) {
		var stdout, stderr bytes.Buffer

		err := run(context.Background(), []string{
			"-source", "interval",
			"-period", "3",
			"-unit", "1ms",
		}, &stdout, &stderr)

		require.NoError(t, err)
		assert.Equal(t, "1\n2\n3\n", stdout.String())
	})

	t.Run("sqlite source", func(t *testing.T) {
		var stdout, stderr bytes.Buffer

		err := run(context.Background(), []string{
			"-source", "sqlite",
			"-take", "2",
		}, &stdout, &stderr)

		require.NoError(t, err)
		assert.Equal(t, "1\n2\n", stdout.String())
	})

	t.Run("config file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "pipeline.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
log_level: debug
source:
  kind: values
  values: [3, 4]
pipeline:
  start_with: [1, 2]
  take: 3
`), 0o644))

		var stdout, stderr bytes.Buffer
		err := run(context.Background(), []string{"-config", path}, &stdout, &stderr)

		require.NoError(t, err)
		assert.Equal(t, "1\n2\n3\n", stdout.String())
		assert.Contains(t, stderr.String(), "stream_next")
	})

	t.Run("failing query", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "broken.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
source:
  kind: sqlite
  query: SELECT n FROM missing_table
`), 0o644))

		var stdout, stderr bytes.Buffer
		err := run(context.Background(), []string{"-config", path}, &stdout, &stderr)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "stream failed")
		assert.Empty(t, stdout.String())
	})

	t.Run("invalid flag value", func(t *testing.T) {
		var stdout, stderr bytes.Buffer

		err := run(context.Background(), []string{"-values", "1,x"}, &stdout, &stderr)

		assert.ErrorContains(t, err, `invalid value "x"`)
	})

	t.Run("cancelled context stops an interval", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		err := run(ctx, []string{
			"-source", "interval",
			"-period", "1000",
			"-unit", "1s",
		}, &stdout, &stderr)

		assert.NoError(t, err)
		assert.Empty(t, stdout.String())
	})
}
