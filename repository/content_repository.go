package repository

import (
	"context"
	"encoding/json"
	"time"

	"caviste_server/database"
	"caviste_server/lib"
	"caviste_server/structs/tables"

	"github.com/uptrace/bun"
)

// ContentRepository keeps one opaque JSON document per page key.
type ContentRepository struct {
	db bun.IDB
}

func NewContentRepository(db bun.IDB) *ContentRepository {
	return &ContentRepository{db: db}
}

func (r *ContentRepository) GetPageContent(ctx context.Context, key string) (json.RawMessage, error) {
	page, err := database.Query[tables.PageContent](r.db).Where("key", key).First(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if page == nil {
		return nil, lib.ErrNotFound
	}
	return page.Content, nil
}

// SetPageContent inserts or replaces the document stored under key.
func (r *ContentRepository) SetPageContent(ctx context.Context, key string, content json.RawMessage) error {
	page := &tables.PageContent{
		Key:       key,
		Content:   content,
		UpdatedAt: time.Now(),
	}

	err := database.WithRetry(ctx, func() error {
		_, err := r.db.NewInsert().
			Model(page).
			On("CONFLICT (key) DO UPDATE").
			Set("content = EXCLUDED.content").
			Set("updated_at = EXCLUDED.updated_at").
			Exec(ctx)
		return err
	})
	return lib.MapPgError(err)
}
