package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/alumni-search/internal/model"
)

// newTestStore returns a Store whose file lives in a per-test temp dir.
// t.TempDir is removed automatically when the test finishes.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "Database.json"))
}

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	s := newTestStore(t)

	list, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestLoad_EmptyFileIsEmpty(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte("  \n"), 0644))

	list, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestLoad_DefaultsMissingFields(t *testing.T) {
	s := newTestStore(t)
	raw := `[
  {"ID": 1, "Name": "Asha", "Year": 2020},
  {"Name": "NoID"}
]`
	require.NoError(t, os.WriteFile(s.Path(), []byte(raw), 0644))

	list, err := s.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, model.Alumni{ID: 1, Name: "Asha", Year: 2020}, list[0])
	assert.Equal(t, model.Alumni{Name: "NoID"}, list[1])
}

func TestLoad_HandEditedQuotedNumbers(t *testing.T) {
	s := newTestStore(t)
	raw := `[
  {"ID": "1", "Name": "Asha", "Year": "2020", "CGPA": "8.75"},
  {"ID": 2, "Name": "Ravi", "Year": 2021}
]`
	require.NoError(t, os.WriteFile(s.Path(), []byte(raw), 0644))

	list, err := s.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, model.Alumni{ID: 1, Name: "Asha", Year: 2020, CGPA: 8.75}, list[0])
	assert.Equal(t, model.Alumni{ID: 2, Name: "Ravi", Year: 2021}, list[1])

	// The next save writes them back as real numbers.
	require.NoError(t, s.Save(context.Background(), list))
	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Year": 2020`)
	assert.NotContains(t, string(data), `"2020"`)
}

func TestLoad_CorruptFile(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte(`{"not":"an array"`), 0644))

	_, err := s.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jsonfile: decoding")
}

func TestSaveThenLoad_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	in := []model.Alumni{
		{ID: 1, Name: "Asha", Department: "CSE", Year: 2021, Email: "a@x.io", Phone: "1",
			Address: "Pune", Job: "SRE", Company: "Acme", CGPA: 8.5},
		{ID: 2, Name: "Ravi", Department: "ECE", Year: 2022},
	}
	require.NoError(t, s.Save(ctx, in))

	out, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestSave_PrettyPrintedWithExternalKeys(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save(context.Background(), []model.Alumni{{ID: 1, Name: "Asha"}}))

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	text := string(data)
	assert.True(t, strings.HasPrefix(text, "[\n  {\n    \"ID\": 1,"), "got:\n%s", text)
	assert.Contains(t, text, `"CGPA": 0`)
	assert.NotContains(t, text, `"name"`)
}

func TestSave_CreatesDirectoryAndLeavesNoTempFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	s := New(filepath.Join(dir, "Database.json"))

	require.NoError(t, s.Save(context.Background(), []model.Alumni{{ID: 1}}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Database.json", entries[0].Name())
}

func TestSave_OverwritesInFull(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, []model.Alumni{{ID: 1}, {ID: 2}, {ID: 3}}))
	require.NoError(t, s.Save(ctx, []model.Alumni{{ID: 9}}))

	list, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Alumni{{ID: 9}}, list)
}

func TestLoad_CanceledContext(t *testing.T) {
	s := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

// Readers running alongside writers must always decode a whole document.
func TestConcurrentLoadSave_NoTornReads(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, []model.Alumni{{ID: 1}}))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			list := make([]model.Alumni, n+1)
			for j := range list {
				list[j] = model.Alumni{ID: j + 1, Name: strings.Repeat("x", 200)}
			}
			assert.NoError(t, s.Save(ctx, list))
		}(i)
		go func() {
			defer wg.Done()
			_, err := s.Load(ctx)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}
