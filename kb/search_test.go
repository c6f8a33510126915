package kb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bonnetkb/bonnet/internal/testutil"
)

func TestSearchEntitiesByName(t *testing.T) {
	store := NewSQLStore(testutil.SetupTestDB(t), nil)

	_, err := store.CreateEntity(NewEntity{ID: "S1", Name: "Shark Species"})
	require.NoError(t, err)
	_, err = store.CreateEntity(NewEntity{ID: "R1", Name: "Ray Species"})
	require.NoError(t, err)

	candidates, err := store.SearchEntities("Shark", 0)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	require.Equal(t, "S1", candidates[0].ID)
}

func TestSearchPrefixMatchesPlural(t *testing.T) {
	store := NewSQLStore(testutil.SetupTestDB(t), nil)

	_, err := store.CreateEntity(NewEntity{ID: "S1", Name: "Sharks"})
	require.NoError(t, err)

	candidates, err := store.SearchEntities("Shark", 0)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
}

func TestSearchMatchesAttributeText(t *testing.T) {
	store := NewSQLStore(testutil.SetupTestDB(t), nil)

	_, err := store.CreateEntity(NewEntity{ID: "S1", Name: "Sharks"})
	require.NoError(t, err)
	_, err = store.CreateAttribute(NewAttribute{
		EntityID: "S1", Type: "FACT", Subject: "diet", Value: "mostly plankton",
	})
	require.NoError(t, err)

	candidates, err := store.SearchEntities("plankton", 0)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	require.Equal(t, "S1", candidates[0].ID)
}

func TestSearchRankingDeterministic(t *testing.T) {
	store := NewSQLStore(testutil.SetupTestDB(t), nil)

	// Created in this order; results must come back in creation order
	_, err := store.CreateEntity(NewEntity{ID: "Z9", Name: "Shark Species"})
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	_, err = store.CreateEntity(NewEntity{ID: "A1", Name: "Shark Facts"})
	require.NoError(t, err)

	candidates, err := store.SearchEntities("Shark", 0)
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	require.Equal(t, "Z9", candidates[0].ID)
	require.Equal(t, "A1", candidates[1].ID)
}

func TestSearchDeduplicatesEntityWithManyMatches(t *testing.T) {
	store := NewSQLStore(testutil.SetupTestDB(t), nil)

	_, err := store.CreateEntity(NewEntity{ID: "S1", Name: "Sharks"})
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err = store.CreateAttribute(NewAttribute{
			EntityID: "S1", Type: "FACT", Subject: "sharks", Value: "sharks everywhere",
		})
		require.NoError(t, err)
	}

	candidates, err := store.SearchEntities("sharks", 0)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
}

func TestSearchRespectsLimit(t *testing.T) {
	store := NewSQLStore(testutil.SetupTestDB(t), nil)

	for _, id := range []string{"S1", "S2", "S3"} {
		_, err := store.CreateEntity(NewEntity{ID: id, Name: "Shark " + id})
		require.NoError(t, err)
	}

	candidates, err := store.SearchEntities("Shark", 2)
	require.NoError(t, err)
	require.Len(t, candidates, 2)
}

func TestSearchEmptyQuery(t *testing.T) {
	store := NewSQLStore(testutil.SetupTestDB(t), nil)

	_, err := store.SearchEntities("   ", 0)
	require.Error(t, err)
}

func TestBuildMatchExpression(t *testing.T) {
	cases := []struct {
		query string
		want  string
	}{
		{"shark", `"shark"*`},
		{"shark species", `"shark"* "species"*`},
		{`"shark species"`, `"shark species"*`},
		{`say "hi"`, `"say"* "hi"*`},
		{"", ""},
	}

	for _, tc := range cases {
		if got := buildMatchExpression(tc.query); got != tc.want {
			t.Errorf("buildMatchExpression(%q) = %q, want %q", tc.query, got, tc.want)
		}
	}
}
