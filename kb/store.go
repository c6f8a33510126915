package kb

import (
	"database/sql"
	"time"

	"go.uber.org/zap"

	"github.com/bonnetkb/bonnet/db"
	"github.com/bonnetkb/bonnet/errors"
)

// timeFormat is the canonical timestamp encoding in the store. Fractional
// seconds are fixed-width (unlike RFC3339Nano, which trims trailing zeros)
// so the raw column sorts lexicographically and creation-order queries can
// ORDER BY it directly.
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// Query constants
const (
	identifierInsertQuery = `INSERT INTO identifiers (id, kind) VALUES (?, ?)`
	identifierExistsQuery = `SELECT EXISTS(SELECT 1 FROM identifiers WHERE id = ?)`
	identifierKindQuery   = `SELECT kind FROM identifiers WHERE id = ?`

	entityInsertQuery = `INSERT INTO entities (id, name, created_at) VALUES (?, ?, ?)`
	entitySelectQuery = `SELECT id, name, created_at FROM entities WHERE id = ?`
	entityExistsQuery = `SELECT EXISTS(SELECT 1 FROM entities WHERE id = ?)`

	attributeInsertQuery = `
		INSERT INTO attributes (id, entity_id, type, subject, value, due_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	attributeSelectQuery = `
		SELECT id, entity_id, type, subject, value, due_date, created_at
		FROM attributes WHERE id = ?`
	attributesAboutQuery = `
		SELECT id, entity_id, type, subject, value, due_date, created_at
		FROM attributes WHERE entity_id = ?
		ORDER BY created_at ASC, id ASC`

	edgeInsertQuery   = `INSERT INTO edges (from_id, to_id, relation, created_at) VALUES (?, ?, ?, ?)`
	outgoingEdgeQuery = `
		SELECT from_id, to_id, relation, created_at
		FROM edges WHERE from_id = ?
		ORDER BY created_at ASC, relation ASC, to_id ASC`
)

// SQLStore is the durable record of entities, attributes, and relationship
// edges, backed by SQLite. The FTS index is kept consistent by triggers
// inside the same transaction as each write.
type SQLStore struct {
	db     *sql.DB
	alloc  *Allocator
	logger *zap.SugaredLogger
}

// NewSQLStore creates a store over an open database handle.
// logger may be nil for silent operation.
func NewSQLStore(database *sql.DB, logger *zap.SugaredLogger) *SQLStore {
	s := &SQLStore{db: database, logger: logger}
	s.alloc = NewAllocator(s.IdentifierExists)
	return s
}

// storeError wraps a driver-level failure, marking a closed connection with
// db.ErrDatabaseClosed so callers can distinguish it via errors.Is.
func storeError(err error, msg string) error {
	if db.IsDatabaseClosed(err) {
		err = errors.Mark(err, db.ErrDatabaseClosed)
	}
	return errors.Wrap(err, msg)
}

// IdentifierExists checks the combined entity/attribute identifier namespace.
func (s *SQLStore) IdentifierExists(id string) (bool, error) {
	var exists bool
	if err := s.db.QueryRow(identifierExistsQuery, id).Scan(&exists); err != nil {
		return false, storeError(err, "check identifier")
	}
	return exists, nil
}

// CreateEntity validates and stores a new entity. The identifier is
// allocated (or the caller-supplied one validated) before any write; the
// identifier registration, entity row, and FTS index update commit in one
// transaction.
func (s *SQLStore) CreateEntity(cmd NewEntity) (*Entity, error) {
	if cmd.Name == "" {
		return nil, errors.New("entity name must not be empty")
	}

	id, err := s.alloc.Allocate(cmd.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, storeError(err, "begin tx")
	}
	defer tx.Rollback()

	if _, err := tx.Exec(identifierInsertQuery, id, "entity"); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, errors.NewDuplicateIdentifier(id)
		}
		return nil, errors.Wrap(err, "register identifier")
	}
	if _, err := tx.Exec(entityInsertQuery, id, cmd.Name, now.Format(timeFormat)); err != nil {
		return nil, errors.Wrap(err, "insert entity")
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "commit entity")
	}

	if s.logger != nil {
		s.logger.Infow("Entity created", "id", id, "name", cmd.Name)
	}

	return &Entity{ID: id, Name: cmd.Name, CreatedAt: now}, nil
}

// CreateAttribute validates and stores a new attribute. Type validation and
// the entity reference check both happen before the store is touched; a
// rejected attribute never leaves a partial write.
func (s *SQLStore) CreateAttribute(cmd NewAttribute) (*Attribute, error) {
	typ, err := ValidateAttributeType(cmd.Type)
	if err != nil {
		return nil, err
	}

	exists, err := s.EntityExists(cmd.EntityID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errors.NewDanglingReference(cmd.EntityID)
	}

	id, err := s.alloc.Allocate(cmd.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	var dueDate interface{}
	if cmd.DueDate != nil {
		dueDate = cmd.DueDate.UTC().Format(timeFormat)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, storeError(err, "begin tx")
	}
	defer tx.Rollback()

	if _, err := tx.Exec(identifierInsertQuery, id, "attribute"); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, errors.NewDuplicateIdentifier(id)
		}
		return nil, errors.Wrap(err, "register identifier")
	}
	if _, err := tx.Exec(attributeInsertQuery,
		id, cmd.EntityID, string(typ), cmd.Subject, cmd.Value, dueDate, now.Format(timeFormat),
	); err != nil {
		return nil, errors.Wrap(err, "insert attribute")
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "commit attribute")
	}

	if s.logger != nil {
		s.logger.Infow("Attribute created",
			"id", id,
			"entity", cmd.EntityID,
			"type", string(typ),
			"subject", cmd.Subject,
		)
	}

	return &Attribute{
		ID:        id,
		EntityID:  cmd.EntityID,
		Type:      typ,
		Subject:   cmd.Subject,
		Value:     cmd.Value,
		DueDate:   cmd.DueDate,
		CreatedAt: now,
	}, nil
}

// CreateEdge stores a directed relationship between two existing entities.
// Both endpoints are checked before the write; a missing endpoint fails with
// ErrDanglingReference.
func (s *SQLStore) CreateEdge(from, to, relation string) (*Edge, error) {
	if relation == "" {
		return nil, errors.New("edge relation must not be empty")
	}

	for _, id := range []string{from, to} {
		exists, err := s.EntityExists(id)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, errors.NewDanglingReference(id)
		}
	}

	now := time.Now().UTC()
	if _, err := s.db.Exec(edgeInsertQuery, from, to, relation, now.Format(timeFormat)); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, errors.Newf("edge %s -[%s]-> %s already exists", from, relation, to)
		}
		return nil, errors.Wrap(err, "insert edge")
	}

	if s.logger != nil {
		s.logger.Infow("Edge created", "from", from, "to", to, "relation", relation)
	}

	return &Edge{From: from, To: to, Relation: relation, CreatedAt: now}, nil
}

// EntityExists checks whether an entity with the given id exists.
func (s *SQLStore) EntityExists(id string) (bool, error) {
	var exists bool
	if err := s.db.QueryRow(entityExistsQuery, id).Scan(&exists); err != nil {
		return false, storeError(err, "check entity")
	}
	return exists, nil
}

// GetEntity fetches an entity by id, failing with ErrNotFound on absence.
func (s *SQLStore) GetEntity(id string) (*Entity, error) {
	var e Entity
	var createdAt string
	err := s.db.QueryRow(entitySelectQuery, id).Scan(&e.ID, &e.Name, &createdAt)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound("entity %q not found", id)
	}
	if err != nil {
		return nil, storeError(err, "get entity")
	}

	e.CreatedAt, err = parseStoredTime(createdAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// GetAttribute fetches an attribute by id, failing with ErrNotFound on absence.
func (s *SQLStore) GetAttribute(id string) (*Attribute, error) {
	row := s.db.QueryRow(attributeSelectQuery, id)
	attr, err := scanAttribute(row)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound("attribute %q not found", id)
	}
	if err != nil {
		return nil, storeError(err, "get attribute")
	}
	return attr, nil
}

// ListAttributesAbout returns every attribute of an entity in creation order.
func (s *SQLStore) ListAttributesAbout(entityID string) ([]Attribute, error) {
	rows, err := s.db.Query(attributesAboutQuery, entityID)
	if err != nil {
		return nil, storeError(err, "list attributes")
	}
	defer rows.Close()

	var attrs []Attribute
	for rows.Next() {
		attr, err := scanAttribute(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan attribute")
		}
		attrs = append(attrs, *attr)
	}
	return attrs, rows.Err()
}

// ListOutgoingEdges returns an entity's outgoing edges in deterministic order.
func (s *SQLStore) ListOutgoingEdges(entityID string) ([]Edge, error) {
	rows, err := s.db.Query(outgoingEdgeQuery, entityID)
	if err != nil {
		return nil, storeError(err, "list edges")
	}
	defer rows.Close()

	var edges []Edge
	for rows.Next() {
		var e Edge
		var createdAt string
		if err := rows.Scan(&e.From, &e.To, &e.Relation, &createdAt); err != nil {
			return nil, errors.Wrap(err, "scan edge")
		}
		if e.CreatedAt, err = parseStoredTime(createdAt); err != nil {
			return nil, err
		}
		edges = append(edges, e)
	}
	return edges, rows.Err()
}

// OwnerEntityID maps an identifier from the combined namespace to the entity
// it denotes: an entity id maps to itself, an attribute id maps to the entity
// the attribute is about. Returns ErrNotFound for unknown identifiers.
func (s *SQLStore) OwnerEntityID(id string) (string, error) {
	var kind string
	err := s.db.QueryRow(identifierKindQuery, id).Scan(&kind)
	if err == sql.ErrNoRows {
		return "", errors.NewNotFound("identifier %q not found", id)
	}
	if err != nil {
		return "", storeError(err, "lookup identifier")
	}

	if kind == "entity" {
		return id, nil
	}

	var entityID string
	if err := s.db.QueryRow("SELECT entity_id FROM attributes WHERE id = ?", id).Scan(&entityID); err != nil {
		return "", storeError(err, "lookup attribute owner")
	}
	return entityID, nil
}

// Stats holds aggregate store statistics.
type Stats struct {
	Entities   int `json:"entities"`
	Attributes int `json:"attributes"`
	Edges      int `json:"edges"`
}

// GetStats reports entity, attribute, and edge counts.
func (s *SQLStore) GetStats() (*Stats, error) {
	var stats Stats
	queries := []struct {
		query string
		dest  *int
	}{
		{"SELECT COUNT(*) FROM entities", &stats.Entities},
		{"SELECT COUNT(*) FROM attributes", &stats.Attributes},
		{"SELECT COUNT(*) FROM edges", &stats.Edges},
	}
	for _, q := range queries {
		if err := s.db.QueryRow(q.query).Scan(q.dest); err != nil {
			return nil, storeError(err, "count rows")
		}
	}
	return &stats, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAttribute(row rowScanner) (*Attribute, error) {
	var a Attribute
	var typ, createdAt string
	var dueDate sql.NullString
	if err := row.Scan(&a.ID, &a.EntityID, &typ, &a.Subject, &a.Value, &dueDate, &createdAt); err != nil {
		return nil, err
	}

	a.Type = AttributeType(typ)

	var err error
	if a.CreatedAt, err = parseStoredTime(createdAt); err != nil {
		return nil, err
	}
	if dueDate.Valid {
		due, err := parseStoredTime(dueDate.String)
		if err != nil {
			return nil, err
		}
		a.DueDate = &due
	}
	return &a, nil
}

func parseStoredTime(value string) (time.Time, error) {
	t, err := time.Parse(timeFormat, value)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "parse timestamp %q", value)
	}
	return t, nil
}
