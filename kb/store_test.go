package kb

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/bonnetkb/bonnet/db"
	"github.com/bonnetkb/bonnet/errors"
	"github.com/bonnetkb/bonnet/internal/testutil"
)

func TestCreateEntityWithExplicitID(t *testing.T) {
	store := NewSQLStore(testutil.SetupTestDB(t), nil)

	entity, err := store.CreateEntity(NewEntity{ID: "S1", Name: "Sharks"})
	require.NoError(t, err)
	require.Equal(t, "S1", entity.ID)
	require.Equal(t, "Sharks", entity.Name)

	got, err := store.GetEntity("S1")
	require.NoError(t, err)
	require.Equal(t, "Sharks", got.Name)
}

func TestCreateEntityGeneratesID(t *testing.T) {
	store := NewSQLStore(testutil.SetupTestDB(t), nil)

	entity, err := store.CreateEntity(NewEntity{Name: "Rays"})
	require.NoError(t, err)
	require.NotEmpty(t, entity.ID)

	got, err := store.GetEntity(entity.ID)
	require.NoError(t, err)
	require.Equal(t, "Rays", got.Name)
}

func TestCreateEntityDuplicateID(t *testing.T) {
	store := NewSQLStore(testutil.SetupTestDB(t), nil)

	_, err := store.CreateEntity(NewEntity{ID: "S1", Name: "Sharks"})
	require.NoError(t, err)

	_, err = store.CreateEntity(NewEntity{ID: "S1", Name: "Other Sharks"})
	require.Error(t, err)
	require.True(t, errors.IsDuplicateIdentifier(err))
}

func TestCreateEntityEmptyName(t *testing.T) {
	store := NewSQLStore(testutil.SetupTestDB(t), nil)

	_, err := store.CreateEntity(NewEntity{ID: "S1"})
	require.Error(t, err)
}

func TestAttributeIDCannotCollideWithEntityID(t *testing.T) {
	store := NewSQLStore(testutil.SetupTestDB(t), nil)

	_, err := store.CreateEntity(NewEntity{ID: "X1", Name: "Topic"})
	require.NoError(t, err)

	// The combined namespace rejects an attribute reusing an entity id
	_, err = store.CreateAttribute(NewAttribute{
		ID: "X1", EntityID: "X1", Type: "FACT", Subject: "s", Value: "v",
	})
	require.Error(t, err)
	require.True(t, errors.IsDuplicateIdentifier(err))
}

func TestCreateAttribute(t *testing.T) {
	store := NewSQLStore(testutil.SetupTestDB(t), nil)

	_, err := store.CreateEntity(NewEntity{ID: "T1", Name: "Tanks"})
	require.NoError(t, err)

	attr, err := store.CreateAttribute(NewAttribute{
		EntityID: "T1",
		Type:     "FACT",
		Subject:  "test",
		Value:    "value",
	})
	require.NoError(t, err)
	require.Equal(t, AttributeFact, attr.Type)
	require.NotEmpty(t, attr.ID)

	attrs, err := store.ListAttributesAbout("T1")
	require.NoError(t, err)
	require.Len(t, attrs, 1)
	require.Equal(t, "test", attrs[0].Subject)
	require.Equal(t, "value", attrs[0].Value)
}

func TestCreateAttributeInvalidTypeWritesNothing(t *testing.T) {
	store := NewSQLStore(testutil.SetupTestDB(t), nil)

	_, err := store.CreateEntity(NewEntity{ID: "T1", Name: "Tanks"})
	require.NoError(t, err)

	_, err = store.CreateAttribute(NewAttribute{
		EntityID: "T1",
		Type:     "INVALID",
		Subject:  "s",
		Value:    "v",
	})
	require.Error(t, err)
	require.True(t, errors.IsValidation(err))

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.Equal(t, "INVALID", verr.Value)
	require.Equal(t, AttributeTypes(), verr.Accepted)

	// Store unmodified
	stats, err := store.GetStats()
	require.NoError(t, err)
	require.Equal(t, 0, stats.Attributes)
}

func TestCreateAttributeDanglingEntity(t *testing.T) {
	store := NewSQLStore(testutil.SetupTestDB(t), nil)

	_, err := store.CreateAttribute(NewAttribute{
		EntityID: "NOPE",
		Type:     "FACT",
		Subject:  "s",
		Value:    "v",
	})
	require.Error(t, err)
	require.True(t, errors.IsDanglingReference(err))
}

func TestCreateAttributeWithDueDate(t *testing.T) {
	store := NewSQLStore(testutil.SetupTestDB(t), nil)

	_, err := store.CreateEntity(NewEntity{ID: "T1", Name: "Tanks"})
	require.NoError(t, err)

	due := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	attr, err := store.CreateAttribute(NewAttribute{
		EntityID: "T1",
		Type:     "TASK",
		Subject:  "clean",
		Value:    "the tank",
		DueDate:  &due,
	})
	require.NoError(t, err)

	got, err := store.GetAttribute(attr.ID)
	require.NoError(t, err)
	require.NotNil(t, got.DueDate)
	require.True(t, got.DueDate.Equal(due))
}

func TestListAttributesCreationOrder(t *testing.T) {
	store := NewSQLStore(testutil.SetupTestDB(t), nil)

	_, err := store.CreateEntity(NewEntity{ID: "T1", Name: "Tanks"})
	require.NoError(t, err)

	for _, subject := range []string{"first", "second", "third"} {
		_, err := store.CreateAttribute(NewAttribute{
			EntityID: "T1", Type: "FACT", Subject: subject, Value: "v",
		})
		require.NoError(t, err)
		time.Sleep(2 * time.Millisecond)
	}

	attrs, err := store.ListAttributesAbout("T1")
	require.NoError(t, err)
	require.Len(t, attrs, 3)
	require.Equal(t, "first", attrs[0].Subject)
	require.Equal(t, "second", attrs[1].Subject)
	require.Equal(t, "third", attrs[2].Subject)
}

func TestCreateEdge(t *testing.T) {
	store := NewSQLStore(testutil.SetupTestDB(t), nil)

	_, err := store.CreateEntity(NewEntity{ID: "S1", Name: "Sharks"})
	require.NoError(t, err)
	_, err = store.CreateEntity(NewEntity{ID: "T1", Name: "Hammerheads"})
	require.NoError(t, err)

	edge, err := store.CreateEdge("S1", "T1", "has_subcategory")
	require.NoError(t, err)
	require.Equal(t, "has_subcategory", edge.Relation)

	edges, err := store.ListOutgoingEdges("S1")
	require.NoError(t, err)
	require.Len(t, edges, 1)
	require.Equal(t, "T1", edges[0].To)
}

func TestCreateEdgeDanglingEndpoint(t *testing.T) {
	store := NewSQLStore(testutil.SetupTestDB(t), nil)

	_, err := store.CreateEntity(NewEntity{ID: "S1", Name: "Sharks"})
	require.NoError(t, err)

	_, err = store.CreateEdge("S1", "NOPE", "has_subcategory")
	require.Error(t, err)
	require.True(t, errors.IsDanglingReference(err))

	_, err = store.CreateEdge("NOPE", "S1", "has_subcategory")
	require.Error(t, err)
	require.True(t, errors.IsDanglingReference(err))
}

func TestCreateEdgeDuplicate(t *testing.T) {
	store := NewSQLStore(testutil.SetupTestDB(t), nil)

	_, err := store.CreateEntity(NewEntity{ID: "S1", Name: "Sharks"})
	require.NoError(t, err)
	_, err = store.CreateEntity(NewEntity{ID: "T1", Name: "Hammerheads"})
	require.NoError(t, err)

	_, err = store.CreateEdge("S1", "T1", "has_subcategory")
	require.NoError(t, err)
	_, err = store.CreateEdge("S1", "T1", "has_subcategory")
	require.Error(t, err)
}

func TestOwnerEntityID(t *testing.T) {
	store := NewSQLStore(testutil.SetupTestDB(t), nil)

	_, err := store.CreateEntity(NewEntity{ID: "S1", Name: "Sharks"})
	require.NoError(t, err)
	attr, err := store.CreateAttribute(NewAttribute{
		EntityID: "S1", Type: "FACT", Subject: "s", Value: "v",
	})
	require.NoError(t, err)

	owner, err := store.OwnerEntityID("S1")
	require.NoError(t, err)
	require.Equal(t, "S1", owner)

	owner, err = store.OwnerEntityID(attr.ID)
	require.NoError(t, err)
	require.Equal(t, "S1", owner)

	_, err = store.OwnerEntityID("missing")
	require.True(t, errors.IsNotFound(err))
}

func TestGetEntityNotFound(t *testing.T) {
	store := NewSQLStore(testutil.SetupTestDB(t), nil)

	_, err := store.GetEntity("missing")
	require.Error(t, err)
	require.True(t, errors.IsNotFound(err))
}

func TestClosedDatabaseDistinguishable(t *testing.T) {
	database := testutil.SetupTestDB(t)
	store := NewSQLStore(database, nil)
	require.NoError(t, database.Close())

	_, err := store.GetEntity("S1")
	require.Error(t, err)
	require.True(t, db.IsDatabaseClosed(err))
	require.True(t, errors.Is(err, db.ErrDatabaseClosed))

	_, err = store.SearchEntities("shark", 0)
	require.Error(t, err)
	require.True(t, db.IsDatabaseClosed(err))

	_, err = store.OwnerEntityID("S1")
	require.Error(t, err)
	require.True(t, db.IsDatabaseClosed(err))
}

func TestGetStats(t *testing.T) {
	store := NewSQLStore(testutil.SetupTestDB(t), nil)

	_, err := store.CreateEntity(NewEntity{ID: "S1", Name: "Sharks"})
	require.NoError(t, err)
	_, err = store.CreateEntity(NewEntity{ID: "T1", Name: "Hammerheads"})
	require.NoError(t, err)
	_, err = store.CreateAttribute(NewAttribute{EntityID: "S1", Type: "FACT", Subject: "s", Value: "v"})
	require.NoError(t, err)
	_, err = store.CreateEdge("S1", "T1", "has_subcategory")
	require.NoError(t, err)

	stats, err := store.GetStats()
	require.NoError(t, err)
	require.Equal(t, &Stats{Entities: 2, Attributes: 1, Edges: 1}, stats)
}

func TestGetEntityDriverError(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	mock.ExpectQuery("SELECT id, name, created_at FROM entities").
		WillReturnError(errors.New("disk I/O error"))

	store := NewSQLStore(mockDB, nil)
	_, err = store.GetEntity("S1")
	require.Error(t, err)
	require.False(t, errors.IsNotFound(err))
	require.NoError(t, mock.ExpectationsWereMet())
}
