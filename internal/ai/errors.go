// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"errors"
	"fmt"
)

// ErrUnsupportedBlockType is returned when AI generation is requested for a
// block type outside the catalog's allow-list.
var ErrUnsupportedBlockType = errors.New("ai: block type does not support generation")

// ErrEmptyResponse is returned when a provider answers with no text.
var ErrEmptyResponse = errors.New("ai: empty response")

const maxErrorBody = 512

// APIError is a non-200 answer from a provider's HTTP API.
type APIError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	body := e.Body
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody] + "..."
	}
	return fmt.Sprintf("%s API error (status %d): %s", e.Provider, e.StatusCode, body)
}

// Retryable reports whether the status suggests trying again later.
func (e *APIError) Retryable() bool {
	return e.StatusCode == 429 || e.StatusCode >= 500
}
