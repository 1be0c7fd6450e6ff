// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package provider

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/time/rate"
)

// =============================================================================
// FALLBACK CHAIN
// =============================================================================

// Chain is an ordered list of provider adapters tried in sequence until one
// returns success or the list is exhausted. The first adapter is the
// primary; each attempt's failure kind determines whether the next adapter
// is tried. Only KindQuotaExceeded continues the chain.
type Chain struct {
	adapters []Adapter
	limiter  *rate.Limiter
}

// ErrNoAdapters is returned when a chain has no configured adapters.
var ErrNoAdapters = errors.New("provider chain is empty")

// NewChain creates a chain from adapters in priority order.
func NewChain(adapters ...Adapter) *Chain {
	return &Chain{adapters: adapters}
}

// SetLimiter installs a client-side throttle applied before every attempt.
// Useful against free-tier quotas; nil disables throttling.
func (c *Chain) SetLimiter(l *rate.Limiter) {
	c.limiter = l
}

// Len returns the number of configured adapters.
func (c *Chain) Len() int {
	return len(c.adapters)
}

// Primary returns the name of the first adapter, or "" for an empty chain.
func (c *Chain) Primary() string {
	if len(c.adapters) == 0 {
		return ""
	}
	return c.adapters[0].Name()
}

// Generate dispatches the request along the chain.
//
// Returns the first successful Result. On failure, returns a *ChainError
// recording every attempt; the caller formats it for display. The error
// kind of the FIRST terminal failure decides the chain's classification:
// permission and other failures stop the chain immediately.
func (c *Chain) Generate(ctx context.Context, req Request) (*Result, error) {
	if len(c.adapters) == 0 {
		return nil, ErrNoAdapters
	}

	chainErr := &ChainError{}
	for i, adapter := range c.adapters {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				chainErr.Attempts = append(chainErr.Attempts, Attempt{
					Provider: adapter.Name(),
					Err:      newError(KindOther, adapter.Name(), err),
				})
				return nil, chainErr
			}
		}

		text, err := adapter.Generate(ctx, req)
		if err == nil {
			return &Result{Text: text, Provider: adapter.Name(), Index: i}, nil
		}

		pe := toProviderError(adapter.Name(), err)
		chainErr.Attempts = append(chainErr.Attempts, Attempt{Provider: adapter.Name(), Err: pe})

		// Only quota failures fall through to the next adapter.
		if pe.Kind != KindQuotaExceeded {
			break
		}
	}
	return nil, chainErr
}

// toProviderError coerces an adapter error into *Error, wrapping
// unclassified errors as KindOther.
func toProviderError(providerName string, err error) *Error {
	var pe *Error
	if errors.As(err, &pe) {
		return pe
	}
	return newError(KindOther, providerName, err)
}

// =============================================================================
// CHAIN ERROR
// =============================================================================

// Attempt records one failed adapter attempt.
type Attempt struct {
	Provider string
	Err      *Error
}

// ChainError aggregates the failures of an exhausted or terminated chain.
type ChainError struct {
	Attempts []Attempt
}

// Error combines the attempt failures into one message.
func (e *ChainError) Error() string {
	if len(e.Attempts) == 0 {
		return "provider chain failed"
	}
	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		parts = append(parts, a.Err.Error())
	}
	return strings.Join(parts, "; ")
}

// Last returns the final attempt's classified error.
func (e *ChainError) Last() *Error {
	if len(e.Attempts) == 0 {
		return nil
	}
	return e.Attempts[len(e.Attempts)-1].Err
}

// Kind returns the classification of the chain failure: the kind of the
// last attempt (the terminal failure, or the final quota error when every
// adapter was exhausted).
func (e *ChainError) Kind() ErrorKind {
	if last := e.Last(); last != nil {
		return last.Kind
	}
	return KindOther
}
