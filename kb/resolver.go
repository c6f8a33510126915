package kb

import (
	"go.uber.org/zap"

	"github.com/bonnetkb/bonnet/errors"
)

// Policy decides how the resolver handles a text search matching more than
// one entity. The resolver itself never guesses: interactive choice is
// delegated to a caller-supplied Chooser over structured candidates.
type Policy string

const (
	// PolicyFail always returns an AmbiguousError and lets the caller
	// decide. This is the default.
	PolicyFail Policy = "fail"
	// PolicyFirst deterministically picks the top-ranked candidate
	// (earliest creation time, then lowest identifier).
	PolicyFirst Policy = "first"
	// PolicyInteractive surfaces candidates through the Chooser and
	// requires an explicit choice.
	PolicyInteractive Policy = "interactive"
)

// DefaultPolicy is the fixed default disambiguation policy.
const DefaultPolicy = PolicyFail

// ParsePolicy validates a policy string.
func ParsePolicy(value string) (Policy, error) {
	switch Policy(value) {
	case PolicyFail, PolicyFirst, PolicyInteractive:
		return Policy(value), nil
	case "":
		return DefaultPolicy, nil
	}
	return "", errors.Newf("unknown disambiguation policy %q (accepted: fail, first, interactive)", value)
}

// Chooser selects one candidate from many. It is only consulted under
// PolicyInteractive.
type Chooser func(candidates []Candidate) (Candidate, error)

// Resolver maps a user-supplied token to an entity. Exact identifier lookup
// over the combined entity/attribute namespace always takes precedence and
// is never gated on the token's prefix or character content; only when no
// identifier matches does the resolver fall back to full-text search.
type Resolver struct {
	store  *SQLStore
	limit  int
	logger *zap.SugaredLogger
}

// NewResolver creates a resolver over the given store. limit caps text
// search candidates; <= 0 uses the store default. logger may be nil.
func NewResolver(store *SQLStore, limit int, logger *zap.SugaredLogger) *Resolver {
	return &Resolver{store: store, limit: limit, logger: logger}
}

// Resolve maps token to exactly one entity, or fails with:
//   - ErrNotFound when neither an identifier nor a search match exists
//   - ErrAmbiguous (an *AmbiguousError carrying the ranked candidates) when
//     a search matches several entities under PolicyFail, or under
//     PolicyInteractive with a nil chooser
//
// An attribute identifier resolves to the entity the attribute is about, so
// context construction by identifier works for every stored id.
func (r *Resolver) Resolve(token string, policy Policy, choose Chooser) (*Entity, error) {
	if token == "" {
		return nil, errors.New("empty token")
	}

	// Exact identifier lookup first, independent of the token's shape
	entityID, err := r.store.OwnerEntityID(token)
	if err == nil {
		if r.logger != nil {
			r.logger.Debugw("Token resolved by identifier", "token", token, "entity", entityID)
		}
		return r.store.GetEntity(entityID)
	}
	if !errors.IsNotFound(err) {
		return nil, err
	}

	limit := r.limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	// Fetch one past the cap so a truncated candidate list is
	// distinguishable from a complete one
	candidates, err := r.store.SearchEntities(token, limit+1)
	if err != nil {
		return nil, err
	}
	truncated := false
	if len(candidates) > limit {
		candidates = candidates[:limit]
		truncated = true
	}

	switch len(candidates) {
	case 0:
		return nil, errors.NewNotFound("no entity matches %q", token)
	case 1:
		return r.store.GetEntity(candidates[0].ID)
	}

	if r.logger != nil {
		r.logger.Debugw("Token is ambiguous",
			"token", token,
			"candidates", len(candidates),
			"policy", string(policy),
		)
	}

	switch policy {
	case PolicyFirst:
		return r.store.GetEntity(candidates[0].ID)
	case PolicyInteractive:
		if choose == nil {
			// Silently picking a result in interactive mode is forbidden
			return nil, &AmbiguousError{Token: token, Candidates: candidates, Truncated: truncated}
		}
		chosen, err := choose(candidates)
		if err != nil {
			return nil, errors.Wrap(err, "choose candidate")
		}
		return r.store.GetEntity(chosen.ID)
	default:
		return nil, &AmbiguousError{Token: token, Candidates: candidates, Truncated: truncated}
	}
}

// Search exposes the ranked candidate list for a token without applying any
// disambiguation policy. Used by callers that present results directly.
func (r *Resolver) Search(token string) ([]Candidate, error) {
	// An exact identifier match surfaces as a single-candidate list
	entityID, err := r.store.OwnerEntityID(token)
	if err == nil {
		entity, err := r.store.GetEntity(entityID)
		if err != nil {
			return nil, err
		}
		return []Candidate{{ID: entity.ID, Name: entity.Name, CreatedAt: entity.CreatedAt}}, nil
	}
	if !errors.IsNotFound(err) {
		return nil, err
	}

	return r.store.SearchEntities(token, r.limit)
}
