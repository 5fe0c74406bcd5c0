package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/alumni-search/internal/config"
	"github.com/sakif/alumni-search/internal/model"
	"github.com/sakif/alumni-search/internal/repository/jsonfile"
	"github.com/sakif/alumni-search/internal/repository/sqlite"
)

func TestConvert_RoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store := config.Store{
		DataFile: filepath.Join(dir, "Database.json"),
		DBPath:   filepath.Join(dir, "alumni.db"),
	}

	want := []model.Alumni{
		{ID: 1, Name: "Asha", Department: "CSE", Year: 2020, Company: "Acme", CGPA: 8.5},
		{ID: 1, Name: "Dup", Year: 2021},
		{ID: 0, Name: "Zero"},
	}
	require.NoError(t, jsonfile.New(store.DataFile).Save(ctx, want))

	n, err := convert(ctx, store, config.DriverJSON, config.DriverSQLite)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	db, err := sqlite.New(store.DBPath)
	require.NoError(t, err)
	got, err := db.Load(ctx)
	require.NoError(t, err)
	require.NoError(t, db.Close())
	assert.Equal(t, want, got)

	// And back, into a fresh JSON file.
	store.DataFile = filepath.Join(dir, "back.json")
	n, err = convert(ctx, store, config.DriverSQLite, config.DriverJSON)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	got, err = jsonfile.New(store.DataFile).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestConvert_RejectsBadBackends(t *testing.T) {
	store := config.Store{DataFile: "x.json", DBPath: "x.db"}

	tests := []struct{ from, to string }{
		{"json", "json"},
		{"json", "postgres"},
		{"csv", "sqlite"},
	}
	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			_, err := convert(context.Background(), store, tt.from, tt.to)
			assert.Error(t, err)
		})
	}
}
