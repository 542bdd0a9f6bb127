package main_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/asjoberg/confrag"
	main "github.com/asjoberg/confrag/cmd/confrag"
	"github.com/asjoberg/confrag/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func downloadDeps(content confrag.ContentService) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Stderr: stderr,
		Config: &main.Config{},
		Content: content,
		Converter: &mock.Converter{
			ConvertFn: func(html string) (string, error) { return html, nil },
		},
	}, stdout, stderr
}

func downloadSource() *mock.ContentService {
	return &mock.ContentService{
		SpaceFn: func(_ context.Context, key string) (*confrag.Space, error) {
			return &confrag.Space{Key: key, Name: "Engineering"}, nil
		},
		ListPagesFn: func(context.Context, string) ([]confrag.PageSummary, error) {
			return []confrag.PageSummary{
				{ID: "100", Title: "Laptops"},
				{ID: "200", Title: "Expenses"},
			}, nil
		},
		FetchPageFn: func(_ context.Context, id string) (*confrag.Page, error) {
			return &confrag.Page{ID: id, Title: "Page " + id, SpaceKey: "ENG", StorageHTML: "<p>body</p>"}, nil
		},
	}
}

func TestDownloadCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("downloads a space into the output directory", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := downloadDeps(downloadSource())
		out := t.TempDir()

		cmd := &main.DownloadCmd{Space: "ENG", Out: out}
		require.NoError(t, cmd.Run(deps))

		assert.Contains(t, stdout.String(), "Found 2 pages")
		assert.Contains(t, stdout.String(), "Downloaded 2 of 2 pages")

		dir := filepath.Join(out, "ENG")
		for _, name := range []string{"space_metadata.json", "run_summary.json", "100_Page 100.json", "100_Page 100.txt"} {
			_, err := os.Stat(filepath.Join(dir, name))
			assert.NoError(t, err, "expected %s to exist", name)
		}
	})

	t.Run("per-page failures are listed but do not fail the command", func(t *testing.T) {
		t.Parallel()

		source := downloadSource()
		source.FetchPageFn = func(_ context.Context, id string) (*confrag.Page, error) {
			if id == "200" {
				return nil, errors.New("connection reset")
			}
			return &confrag.Page{ID: id, Title: "Page " + id, SpaceKey: "ENG"}, nil
		}
		deps, stdout, stderr := downloadDeps(source)

		cmd := &main.DownloadCmd{Space: "ENG", Out: t.TempDir()}
		require.NoError(t, cmd.Run(deps))

		assert.Contains(t, stdout.String(), "Downloaded 1 of 2 pages")
		assert.Contains(t, stderr.String(), "Failed pages:")
		assert.Contains(t, stderr.String(), "200")
	})

	t.Run("listing failure fails the command", func(t *testing.T) {
		t.Parallel()

		source := downloadSource()
		source.ListPagesFn = func(context.Context, string) ([]confrag.PageSummary, error) {
			return nil, errors.New("HTTP 500")
		}
		deps, _, stderr := downloadDeps(source)

		err := (&main.DownloadCmd{Space: "ENG", Out: t.TempDir()}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error:")
	})
}
