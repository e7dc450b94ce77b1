// Package errors provides error handling for assetgen.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - User-facing hints attached to build failures
//
// Usage:
//
//	// Wrap with context
//	if err := scan(dir); err != nil {
//	    return errors.Wrapf(err, "failed to scan %s", dir)
//	}
//
//	// Add hints for users
//	return errors.WithHint(err, "set SRCROOT to the project directory")
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// Marking and assertions
var (
	Mark             = crdb.Mark
	AssertionFailedf = crdb.AssertionFailedf
)

// Sentinel errors shared by the generator packages.
// Wrap these with errors.Wrap() to add context while preserving the type.
var (
	// ErrDecode indicates asset metadata could not be decoded
	ErrDecode = New("decode failed")

	// ErrInvalidConfig indicates the configuration is malformed
	ErrInvalidConfig = New("invalid configuration")
)

// IsDecodeError reports whether err is or wraps ErrDecode.
func IsDecodeError(err error) bool {
	return err != nil && Is(err, ErrDecode)
}

// WrapDecode marks err as a decode failure with context.
// The original error stays reachable through Is and As.
func WrapDecode(err error, context string) error {
	if err == nil {
		return nil
	}
	return Wrap(Mark(err, ErrDecode), context)
}

// HintText joins all hints attached to err, or returns "" when there are none.
func HintText(err error) string {
	if err == nil {
		return ""
	}
	return FlattenHints(err)
}
