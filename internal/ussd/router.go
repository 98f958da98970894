package ussd

import (
	"context"
	"strings"
)

// DefaultInvalidOption answers interactions no route claims.
const DefaultInvalidOption = "Invalid option. Please try again."

// Handler answers a single gateway interaction.
type Handler interface {
	Handle(ctx context.Context, req *Request) (*Response, error)
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(ctx context.Context, req *Request) (*Response, error)

// Handle calls f.
func (f HandlerFunc) Handle(ctx context.Context, req *Request) (*Response, error) {
	return f(ctx, req)
}

// Matcher decides whether a route owns the accumulated text.
type Matcher func(text string) bool

// OnInitial matches the first interaction of a session.
func OnInitial() Matcher {
	return func(text string) bool { return text == "" }
}

// OnExact matches one navigation path exactly.
func OnExact(path string) Matcher {
	return func(text string) bool { return text == path }
}

// OnPrefix matches a whole navigation subtree rooted at path.
func OnPrefix(path string) Matcher {
	return func(text string) bool { return strings.HasPrefix(text, path) }
}

type route struct {
	matches Matcher
	handler Handler
}

// Router dispatches each interaction to the first route whose matcher
// accepts the accumulated text. Registration order is precedence order. A
// miss is answered by the fallback, never surfaced as an error.
type Router struct {
	routes   []route
	fallback Handler
}

// NewRouter returns a router whose fallback ends the session with
// DefaultInvalidOption.
func NewRouter() *Router {
	return &Router{
		fallback: HandlerFunc(func(context.Context, *Request) (*Response, error) {
			return End(DefaultInvalidOption), nil
		}),
	}
}

// Match registers a route. Returns the router for chaining.
func (r *Router) Match(m Matcher, h Handler) *Router {
	r.routes = append(r.routes, route{matches: m, handler: h})
	return r
}

// MatchFunc registers a plain function as a route.
func (r *Router) MatchFunc(m Matcher, h HandlerFunc) *Router {
	return r.Match(m, h)
}

// Fallback replaces the handler used when no route matches.
func (r *Router) Fallback(h Handler) *Router {
	r.fallback = h
	return r
}

// Handle dispatches one interaction. Router is itself a Handler, so
// routers nest.
func (r *Router) Handle(ctx context.Context, req *Request) (*Response, error) {
	for _, rt := range r.routes {
		if rt.matches(req.Text) {
			return rt.handler.Handle(ctx, req)
		}
	}
	return r.fallback.Handle(ctx, req)
}
