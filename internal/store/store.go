// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store holds the PostgreSQL repositories for lessons, their blocks
// and uploaded media. Every store wraps a *sql.DB opened with the pgx stdlib
// driver; lookups of missing rows return ErrNotFound.
package store

import "errors"

// ErrNotFound is returned when the requested row does not exist.
var ErrNotFound = errors.New("store: not found")

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}
