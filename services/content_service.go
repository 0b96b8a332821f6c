package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"

	"caviste_server/lib"
	"caviste_server/structs"

	"github.com/MonkyMars/gecho"
)

const contentCacheTTL = 10 * time.Minute

var contentKeyPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{0,63}$`)

type ContentStore interface {
	GetPageContent(ctx context.Context, key string) (json.RawMessage, error)
	SetPageContent(ctx context.Context, key string, content json.RawMessage) error
}

// ContentService serves the editable page documents, cached in Redis when available.
type ContentService struct {
	logger *gecho.Logger
	store  ContentStore
	cache  *CacheService
}

func NewContentService(logger *gecho.Logger, store ContentStore, cache *CacheService) *ContentService {
	return &ContentService{
		logger: logger,
		store:  store,
		cache:  cache,
	}
}

func contentCacheKey(key string) string {
	return "content:" + key
}

func validateContentKey(key string) error {
	if !contentKeyPattern.MatchString(key) {
		return lib.NewValidationError("key", "Clé de page invalide")
	}
	return nil
}

// Get returns the raw document or lib.ErrNotFound.
func (cs *ContentService) Get(ctx context.Context, key string) (json.RawMessage, error) {
	if err := validateContentKey(key); err != nil {
		return nil, err
	}

	cached, err := cs.cache.Get(ctx, contentCacheKey(key))
	if err != nil {
		cs.logger.Warn("Content cache read failed", gecho.Field("key", key), gecho.Field("error", err))
	} else if cached != "" {
		return json.RawMessage(cached), nil
	}

	content, err := cs.store.GetPageContent(ctx, key)
	if err != nil {
		return nil, err
	}

	if err := cs.cache.Set(ctx, contentCacheKey(key), []byte(content), contentCacheTTL); err != nil {
		cs.logger.Warn("Content cache write failed", gecho.Field("key", key), gecho.Field("error", err))
	}
	return content, nil
}

// Set stores a JSON object under key. Well-known keys must also match their document shape.
func (cs *ContentService) Set(ctx context.Context, key string, content json.RawMessage) error {
	if err := validateContentKey(key); err != nil {
		return err
	}

	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 || trimmed[0] != '{' || !json.Valid(trimmed) {
		return lib.NewValidationError("content", "Le contenu doit être un objet JSON")
	}

	if err := validateKnownContent(key, trimmed); err != nil {
		return err
	}

	if err := cs.store.SetPageContent(ctx, key, json.RawMessage(trimmed)); err != nil {
		return err
	}

	if err := cs.cache.Delete(ctx, contentCacheKey(key)); err != nil {
		cs.logger.Warn("Content cache invalidation failed", gecho.Field("key", key), gecho.Field("error", err))
	}

	cs.logger.Info("Page content updated", gecho.Field("key", key), gecho.Field("bytes", len(trimmed)))
	return nil
}

func validateKnownContent(key string, content []byte) error {
	var target any
	switch key {
	case structs.ContentKeyVintnerMeetings:
		target = &structs.VintnerMeetingsContent{}
	case structs.ContentKeyCatalogue:
		target = &structs.CatalogueContent{}
	default:
		return nil
	}

	if err := json.Unmarshal(content, target); err != nil {
		return lib.NewValidationError("content", fmt.Sprintf("Document %s invalide : %v", key, err))
	}

	if meetings, ok := target.(*structs.VintnerMeetingsContent); ok {
		for i, e := range meetings.Entries {
			if _, err := time.Parse(time.DateOnly, e.Date); err != nil {
				return lib.NewValidationError(fmt.Sprintf("rencontres[%d].date", i), "Date attendue au format AAAA-MM-JJ")
			}
		}
	}
	return nil
}

func getTyped[T any](ctx context.Context, cs *ContentService, key string) (*T, error) {
	raw, err := cs.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	var doc T
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode %s content: %w", key, err)
	}
	return &doc, nil
}

func (cs *ContentService) VintnerMeetings(ctx context.Context) (*structs.VintnerMeetingsContent, error) {
	return getTyped[structs.VintnerMeetingsContent](ctx, cs, structs.ContentKeyVintnerMeetings)
}

// Catalogue returns the products sold through the cart; a missing document is an empty catalogue.
func (cs *ContentService) Catalogue(ctx context.Context) (*structs.CatalogueContent, error) {
	catalogue, err := getTyped[structs.CatalogueContent](ctx, cs, structs.ContentKeyCatalogue)
	if errors.Is(err, lib.ErrNotFound) {
		return &structs.CatalogueContent{}, nil
	}
	return catalogue, err
}
