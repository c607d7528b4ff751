// Package value provides the type-erased container passed between ports.
//
// A Value wraps exactly one known, non-null cty.Value. The cty type is the
// explicit discriminant: extraction helpers compare it against the requested
// type and fail with ErrTypeMismatch instead of converting, so a consumer
// never receives a coerced or zeroed payload.
package value
