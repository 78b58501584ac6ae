package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/kantodex/pokedex-backend/internal/catalog/domain"
	"github.com/kantodex/pokedex-backend/internal/catalog/repository"
)

// fakePokeAPI serves a tiny index plus per-pokemon detail documents in
// the PokeAPI wire shape.
func fakePokeAPI(t *testing.T, names []string) *httptest.Server {
	t.Helper()

	var server *httptest.Server
	mux := http.NewServeMux()

	mux.HandleFunc("/pokemon", func(w http.ResponseWriter, r *http.Request) {
		results := make([]map[string]string, 0, len(names))
		for i, name := range names {
			results = append(results, map[string]string{
				"name": name,
				"url":  fmt.Sprintf("%s/pokemon/%d", server.URL, i+1),
			})
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"results": results})
	})

	for i, name := range names {
		id := i + 1
		n := name
		mux.HandleFunc(fmt.Sprintf("/pokemon/%d", id), func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]interface{}{
				"id":   id,
				"name": n,
				"sprites": map[string]interface{}{
					"front_default": fmt.Sprintf("http://sprites/%d.png", id),
					"other": map[string]interface{}{
						"official-artwork": map[string]interface{}{
							"front_default": fmt.Sprintf("http://artwork/%d.png", id),
						},
					},
				},
				"types": []map[string]interface{}{
					{"type": map[string]string{"name": "normal"}},
				},
			})
		})
	}

	server = httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func seedTestRepo(t *testing.T) *repository.GormCatalogRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	repo := repository.NewGormCatalogRepository(db)
	require.NoError(t, repo.AutoMigrate())
	return repo
}

func TestFetchGeneration(t *testing.T) {
	server := fakePokeAPI(t, []string{"bulbasaur", "ivysaur"})
	client := NewClient(server.URL)

	entries, err := client.FetchGeneration(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, 1, entries[0].ID)
	assert.Equal(t, "Bulbasaur", entries[0].Name, "names are capitalized")
	assert.Equal(t, "http://artwork/1.png", entries[0].ImageURL, "official artwork preferred")
	assert.Equal(t, []string{"normal"}, entries[0].Types)
}

func TestFetchGenerationAbortsOnFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/pokemon", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"results": []map[string]string{
				{"name": "missingno", "url": "http://127.0.0.1:1/pokemon/0"},
			},
		})
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := NewClient(server.URL)
	_, err := client.FetchGeneration(context.Background(), 1)
	assert.Error(t, err, "a single failed detail fetch aborts the whole run")
}

func TestSeederPopulatesEmptyCatalog(t *testing.T) {
	server := fakePokeAPI(t, []string{"bulbasaur", "ivysaur", "venusaur"})
	repo := seedTestRepo(t)

	seeder := NewSeeder(repo, NewClient(server.URL))
	seeder.limit = 3

	require.NoError(t, seeder.Run(context.Background()))

	count, err := repo.Count()
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)

	p, err := repo.FindByID(3)
	require.NoError(t, err)
	assert.Equal(t, "Venusaur", p.Name)
	assert.Zero(t, p.Likes, "seeded counters start at zero")
}

func TestSeederSkipsPopulatedCatalog(t *testing.T) {
	repo := seedTestRepo(t)
	require.NoError(t, repo.BulkInsert([]domain.Pokemon{
		{ID: 25, Name: "Pikachu", ImageURL: "u", Types: []string{"electric"}},
	}))
	require.NoError(t, repo.ApplyVoteDeltas(25, 5, 2))

	// No server: a populated catalog must short-circuit before any fetch
	seeder := NewSeeder(repo, NewClient("http://127.0.0.1:1"))
	require.NoError(t, seeder.Run(context.Background()))

	p, err := repo.FindByID(25)
	require.NoError(t, err)
	assert.Equal(t, 5, p.Likes, "restart must not reset accumulated votes")
	assert.Equal(t, 2, p.Dislikes)
}
