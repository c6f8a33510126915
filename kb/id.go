package kb

import (
	"github.com/google/uuid"
	"github.com/mr-tron/base58"

	"github.com/bonnetkb/bonnet/errors"
)

// generatedIDBytes controls the length of generated identifiers:
// 8 random bytes base58-encode to roughly 11 characters.
const generatedIDBytes = 8

// maxGenerateAttempts bounds collision retries for generated identifiers.
const maxGenerateAttempts = 5

// Allocator issues identifiers unique across the combined entity/attribute
// namespace. Callers may supply their own identifier; any non-empty unique
// string is accepted verbatim. Identifier content carries no semantics.
type Allocator struct {
	exists func(id string) (bool, error)
}

// NewAllocator creates an allocator backed by an existence check over the
// combined identifier namespace.
func NewAllocator(exists func(id string) (bool, error)) *Allocator {
	return &Allocator{exists: exists}
}

// Allocate returns a unique identifier. A non-empty requested identifier is
// validated against the combined namespace and used verbatim; a collision
// fails with ErrDuplicateIdentifier and is never silently reassigned. An
// empty request generates a fresh identifier with collision retry.
func (a *Allocator) Allocate(requested string) (string, error) {
	if requested != "" {
		taken, err := a.exists(requested)
		if err != nil {
			return "", errors.Wrap(err, "check requested identifier")
		}
		if taken {
			return "", errors.NewDuplicateIdentifier(requested)
		}
		return requested, nil
	}

	for attempt := 0; attempt < maxGenerateAttempts; attempt++ {
		u := uuid.New()
		id := base58.Encode(u[:generatedIDBytes])

		taken, err := a.exists(id)
		if err != nil {
			return "", errors.Wrap(err, "check generated identifier")
		}
		if !taken {
			return id, nil
		}
	}

	return "", errors.Newf("could not generate a unique identifier after %d attempts", maxGenerateAttempts)
}
