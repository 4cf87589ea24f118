// PlayNext - Video Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

package catalog

import (
	"errors"
	"fmt"
)

// ErrData is matched by every DataError via errors.Is.
var ErrData = errors.New("catalog data error")

// DataError reports a dataset that cannot be loaded. No partial catalog is
// ever returned alongside it.
type DataError struct {
	Path   string
	Line   int
	Column string
	Reason string
	Err    error
}

func (e *DataError) Error() string {
	msg := "catalog " + e.Path
	if e.Line > 0 {
		msg += fmt.Sprintf(" line %d", e.Line)
	}
	if e.Column != "" {
		msg += fmt.Sprintf(" column %q", e.Column)
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause, if any.
func (e *DataError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrData) true for any DataError.
func (e *DataError) Is(target error) bool { return target == ErrData }
