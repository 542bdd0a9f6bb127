package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/asjoberg/confrag"
	main "github.com/asjoberg/confrag/cmd/confrag"
	"github.com/asjoberg/confrag/ingest"
	"github.com/asjoberg/confrag/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadDeps(loader *ingest.Loader) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Stderr: stderr,
		Config: &main.Config{},
		Loader: loader,
	}, stdout, stderr
}

func TestLoadCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("loads an export directory", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		page := &confrag.Page{ID: "100", Title: "Laptops", SpaceKey: "ENG", PlainText: "Install the base image."}
		data, err := json.Marshal(page)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "100_Laptops.json"), data, 0644))

		var stored []*confrag.Chunk
		loader := &ingest.Loader{
			Chunks: &mock.ChunkService{
				CreateChunksFn: func(_ context.Context, chunks []*confrag.Chunk) error {
					stored = append(stored, chunks...)
					return nil
				},
			},
		}
		deps, stdout, _ := loadDeps(loader)

		cmd := &main.LoadCmd{Dir: dir}
		require.NoError(t, cmd.Run(deps))

		assert.Contains(t, stdout.String(), "Loaded 1 chunks from 1 documents")
		require.Len(t, stored, 1)
		assert.Equal(t, "100", stored[0].PageID)
	})

	t.Run("requires exactly one source", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name string
			cmd  main.LoadCmd
		}{
			{name: "neither", cmd: main.LoadCmd{}},
			{name: "both", cmd: main.LoadCmd{Dir: "some-dir", URL: []string{"https://example.com"}}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				deps, _, stderr := loadDeps(nil)

				err := tt.cmd.Run(deps)

				require.Error(t, err)
				assert.Equal(t, confrag.EINVALID, confrag.ErrorCode(err))
				assert.Contains(t, stderr.String(), "exactly one of --dir or --url")
			})
		}
	})

	t.Run("load failure is reported and returned", func(t *testing.T) {
		t.Parallel()

		loader := &ingest.Loader{
			Chunks: &mock.ChunkService{
				CreateChunksFn: func(context.Context, []*confrag.Chunk) error { return nil },
			},
		}
		deps, _, stderr := loadDeps(loader)

		err := (&main.LoadCmd{Dir: "/nonexistent/export"}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error:")
	})
}
