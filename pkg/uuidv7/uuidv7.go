// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package uuidv7 wraps google/uuid to generate time-ordered identifiers.
//
// Bookshelf uses them as request correlation IDs, so log lines for one
// request sort together with the time they were emitted.
package uuidv7

import "github.com/google/uuid"

// New returns a UUIDv7 string. If the v7 generator fails it falls back to a
// random v4, so callers always get a usable ID.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
