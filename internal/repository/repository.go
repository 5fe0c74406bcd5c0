package repository

import (
	"context"

	"github.com/sakif/alumni-search/internal/model"
)

// AlumniRepository is a whole-collection store: it has no partial read or
// update API. Callers load everything, change it in memory and save
// everything back.
//
// Load on a store whose backing resource does not exist yet returns an
// empty slice and a nil error.
type AlumniRepository interface {
	Load(ctx context.Context) ([]model.Alumni, error)
	Save(ctx context.Context, list []model.Alumni) error
	Close() error
}
