package services

import (
	"context"
	"encoding/json"
	"testing"

	"caviste_server/lib"
	"caviste_server/structs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeContentStore struct {
	docs  map[string]json.RawMessage
	reads int
}

func newFakeContentStore() *fakeContentStore {
	return &fakeContentStore{docs: make(map[string]json.RawMessage)}
}

func (f *fakeContentStore) GetPageContent(_ context.Context, key string) (json.RawMessage, error) {
	f.reads++
	doc, ok := f.docs[key]
	if !ok {
		return nil, lib.ErrNotFound
	}
	return doc, nil
}

func (f *fakeContentStore) SetPageContent(_ context.Context, key string, content json.RawMessage) error {
	f.docs[key] = content
	return nil
}

const catalogueJSON = `{"products":[
	{"id":"chablis-2022","name":"Chablis 2022","price":"18.50","bottles":1},
	{"id":"coffret-bourgogne","name":"Coffret Bourgogne","price":"54","bottles":3}
]}`

func TestContentService_SetValidation(t *testing.T) {
	svc := NewContentService(testLogger(), newFakeContentStore(), NewCacheService(testLogger(), nil))
	ctx := context.Background()

	tests := []struct {
		name    string
		key     string
		content string
		field   string
	}{
		{"bad key", "Accueil!", `{}`, "key"},
		{"array", "accueil", `[1,2]`, "content"},
		{"not json", "accueil", `{"a":`, "content"},
		{"empty", "accueil", `   `, "content"},
		{"catalogue shape", structs.ContentKeyCatalogue, `{"products":"none"}`, "content"},
		{"meeting date", structs.ContentKeyVintnerMeetings, `{"rencontres":[{"date":"07/03/2026","titre":"x"}]}`, "rencontres[0].date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Set(ctx, tt.key, json.RawMessage(tt.content))
			var verr *lib.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Errors[0].Field)
		})
	}
}

func TestContentService_GetUsesCacheUntilSet(t *testing.T) {
	store := newFakeContentStore()
	svc := NewContentService(testLogger(), store, NewCacheService(testLogger(), newTestRedis(t)))
	ctx := context.Background()

	require.NoError(t, svc.Set(ctx, "accueil", json.RawMessage(` {"titre":"Bienvenue"} `)))

	for range 3 {
		doc, err := svc.Get(ctx, "accueil")
		require.NoError(t, err)
		assert.JSONEq(t, `{"titre":"Bienvenue"}`, string(doc))
	}
	assert.Equal(t, 1, store.reads)

	require.NoError(t, svc.Set(ctx, "accueil", json.RawMessage(`{"titre":"Bonjour"}`)))
	doc, err := svc.Get(ctx, "accueil")
	require.NoError(t, err)
	assert.JSONEq(t, `{"titre":"Bonjour"}`, string(doc))
	assert.Equal(t, 2, store.reads)
}

func TestContentService_NotFound(t *testing.T) {
	svc := NewContentService(testLogger(), newFakeContentStore(), NewCacheService(testLogger(), nil))

	_, err := svc.Get(context.Background(), "absent")
	assert.ErrorIs(t, err, lib.ErrNotFound)

	catalogue, err := svc.Catalogue(context.Background())
	require.NoError(t, err)
	assert.Empty(t, catalogue.Products)
}

func TestContentService_TypedDocuments(t *testing.T) {
	store := newFakeContentStore()
	svc := NewContentService(testLogger(), store, NewCacheService(testLogger(), nil))
	ctx := context.Background()

	require.NoError(t, svc.Set(ctx, structs.ContentKeyCatalogue, json.RawMessage(catalogueJSON)))
	require.NoError(t, svc.Set(ctx, structs.ContentKeyVintnerMeetings, json.RawMessage(
		`{"titre":"Rencontres vignerons","rencontres":[{"date":"2026-03-07","titre":"Domaine <strong>Vocoret</strong>","points":["Chablis"]}]}`,
	)))

	catalogue, err := svc.Catalogue(ctx)
	require.NoError(t, err)
	require.Len(t, catalogue.Products, 2)
	assert.Equal(t, "18.50", catalogue.Find("chablis-2022").Price.StringFixed(2))

	meetings, err := svc.VintnerMeetings(ctx)
	require.NoError(t, err)
	require.Len(t, meetings.Entries, 1)
	assert.Equal(t, []string{"Chablis"}, meetings.Entries[0].Bullets)
}
