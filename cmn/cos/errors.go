// Package cos ("common small") holds the typed construction errors for the
// engine, in the style of aistore's cmn.NewErrAborted / cmn.NewErrXactUsePrev
// constructors.
/*
 * Copyright (c) 2026, ghjramos. All rights reserved.
 */
package cos

import (
	"errors"

	pkgerrors "github.com/pkg/errors"
)

// ErrInvalidConfig is returned when the engine cannot be constructed because
// of an invariant violation in its scalar parameters (K, N, T, D).
type ErrInvalidConfig struct {
	reason string
}

func (e *ErrInvalidConfig) Error() string { return "invalid configuration: " + e.reason }

// NewErrInvalidConfig wraps reason as an *ErrInvalidConfig.
func NewErrInvalidConfig(reason string) error {
	return pkgerrors.WithStack(&ErrInvalidConfig{reason: reason})
}

// IsErrInvalidConfig reports whether err is (or wraps) an *ErrInvalidConfig.
func IsErrInvalidConfig(err error) bool {
	var target *ErrInvalidConfig
	return errors.As(err, &target)
}
