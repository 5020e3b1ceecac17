package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrCorrupt indicates that stored document data could not be decoded.
// Amounts and schemas are never coerced back into shape; callers must treat
// this as a data-corruption fault.
var ErrCorrupt = errors.New("stored document is corrupt")

// ErrInvariant indicates that a document violates its schema invariants
// (e.g. two balance rows for the same account key). Silent recovery could
// corrupt financial totals, so this always surfaces loudly.
var ErrInvariant = errors.New("document invariant violated")
