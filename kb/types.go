// Package kb implements the knowledge base core: entities, attributes,
// relationship edges, identifier allocation, full-text search, and token
// resolution over a SQLite store.
package kb

import (
	"fmt"
	"strings"
	"time"

	"github.com/bonnetkb/bonnet/errors"
)

// AttributeType is the closed enumeration of attribute kinds.
type AttributeType string

const (
	AttributeFact AttributeType = "FACT"
	AttributeRef  AttributeType = "REF"
	AttributeTask AttributeType = "TASK"
	AttributeRule AttributeType = "RULE"
)

// AttributeTypes returns the accepted attribute type set in display order.
func AttributeTypes() []AttributeType {
	return []AttributeType{AttributeFact, AttributeRef, AttributeTask, AttributeRule}
}

// ValidateAttributeType checks a type string against the closed enumeration.
// The check runs before any store mutation; rejected attributes are never
// partially written.
func ValidateAttributeType(value string) (AttributeType, error) {
	for _, t := range AttributeTypes() {
		if string(t) == value {
			return t, nil
		}
	}
	return "", &ValidationError{Value: value, Accepted: AttributeTypes()}
}

// ValidationError reports a value outside a closed enumeration, carrying the
// offending value and the accepted set so callers can act programmatically.
type ValidationError struct {
	Value    string
	Accepted []AttributeType
}

func (e *ValidationError) Error() string {
	accepted := make([]string, len(e.Accepted))
	for i, t := range e.Accepted {
		accepted[i] = string(t)
	}
	return fmt.Sprintf("invalid attribute type %q, accepted: {%s}", e.Value, strings.Join(accepted, ", "))
}

// Is makes the error satisfy errors.Is(err, errors.ErrValidation).
func (e *ValidationError) Is(target error) bool {
	return target == errors.ErrValidation
}

// Entity is a named node, the unit of identity in the knowledge base.
type Entity struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// Attribute is a typed, textual fact/reference/task/rule associated with
// exactly one entity.
type Attribute struct {
	ID        string        `json:"id" yaml:"id"`
	EntityID  string        `json:"entity_id" yaml:"entity_id"`
	Type      AttributeType `json:"type" yaml:"type"`
	Subject   string        `json:"subject" yaml:"subject"`
	Value     string        `json:"value" yaml:"value"`
	DueDate   *time.Time    `json:"due_date,omitempty" yaml:"due_date,omitempty"`
	CreatedAt time.Time     `json:"created_at" yaml:"created_at"`
}

// Edge is a directed, typed link between two entities.
type Edge struct {
	From      string    `json:"from" yaml:"from"`
	To        string    `json:"to" yaml:"to"`
	Relation  string    `json:"relation" yaml:"relation"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// Candidate is one entity matched by a text search, carrying enough detail
// for a caller to disambiguate.
type Candidate struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// NewEntity describes an entity to create. ID is optional; when empty the
// allocator generates one.
type NewEntity struct {
	ID   string
	Name string
}

// NewAttribute describes an attribute to create. ID is optional; when empty
// the allocator generates one.
type NewAttribute struct {
	ID       string
	EntityID string
	Type     string
	Subject  string
	Value    string
	DueDate  *time.Time
}
