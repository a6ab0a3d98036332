// handlers.go: Priority-ordered response handler chain
//
// Copyright (c) 2025 SimpleMethod - M. Mlodawski
// SPDX-License-Identifier: MPL-2.0

package docplugins

import (
	"math"
	"sort"
	"sync"
)

// ResponseHandler post-processes an invocation result. CanHandle decides
// whether this handler applies to the result; Handle performs the transform.
type ResponseHandler interface {
	CanHandle(response any) bool
	Handle(response any) any
}

// DefaultHandlerPriority is the priority of the built-in catch-all handler.
// Custom handlers registered at or below it never run.
const DefaultHandlerPriority = math.MinInt

type prioritizedHandler struct {
	handler  ResponseHandler
	priority int
}

// ResponseHandlerChain dispatches an invocation result to the first handler,
// in descending priority order, whose CanHandle accepts it. A permanent
// default handler of minimal priority accepts every input and returns it
// unmodified, so Process always terminates with a result.
type ResponseHandlerChain struct {
	mu       sync.RWMutex
	handlers []prioritizedHandler
	logger   Logger
}

// NewResponseHandlerChain creates a chain seeded with the default handler.
func NewResponseHandlerChain(logger Logger) *ResponseHandlerChain {
	c := &ResponseHandlerChain{logger: NewLogger(logger)}
	c.handlers = []prioritizedHandler{{handler: defaultResponseHandler{}, priority: DefaultHandlerPriority}}
	return c
}

// Register adds a handler with the declared priority and re-sorts the chain.
// Registration happens at startup; the sort is stable, so handlers with equal
// priority keep their registration order.
func (c *ResponseHandlerChain) Register(handler ResponseHandler, priority int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.handlers = append(c.handlers, prioritizedHandler{handler: handler, priority: priority})
	sort.SliceStable(c.handlers, func(i, j int) bool {
		return c.handlers[i].priority > c.handlers[j].priority
	})

	c.logger.Info("Registered response handler", "priority", priority, "handlers", len(c.handlers))
}

// Process runs the result through the chain: the first accepting handler
// transforms it and its output is final.
func (c *ResponseHandlerChain) Process(response any) any {
	c.mu.RLock()
	handlers := c.handlers
	c.mu.RUnlock()

	for _, h := range handlers {
		if h.handler.CanHandle(response) {
			c.logger.Debug("Response handler selected", "priority", h.priority)
			return h.handler.Handle(response)
		}
	}
	// Unreachable: the default handler accepts everything.
	return response
}

// Len returns the number of registered handlers, including the default.
func (c *ResponseHandlerChain) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.handlers)
}

// defaultResponseHandler is the catch-all terminator of the chain.
type defaultResponseHandler struct{}

func (defaultResponseHandler) CanHandle(response any) bool { return true }

func (defaultResponseHandler) Handle(response any) any { return response }
