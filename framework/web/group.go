package web

import (
	"net/http"
)

// Group wraps the App for wrapping multiple handlers with middlewares.
type Group struct {
	app         *App
	prefixPath  string
	middlewares []Middleware
}

// NewGroup initializes a group of http handlers, with a bunch of middlewares.
func NewGroup(app *App, prefixPath string, mw ...Middleware) *Group {
	return &Group{
		app:         app,
		prefixPath:  prefixPath,
		middlewares: mw,
	}
}

// Handle mounts a handler below the group prefix, wrapped with the group middlewares.
func (g *Group) Handle(verb string, path string, handler Handler, mw ...Middleware) {
	g.app.Handle(verb, g.prefixPath+path, handler, g.with(mw)...)
}

// Post executes a http POST request, within a group, with the given handlers.
func (g *Group) Post(path string, handler Handler, mw ...Middleware) {
	g.Handle(http.MethodPost, path, handler, mw...)
}

// Get executes a http GET request, within a group, with the given handlers.
func (g *Group) Get(path string, handler Handler, mw ...Middleware) {
	g.Handle(http.MethodGet, path, handler, mw...)
}

// NewSubgroup initializes a subgroup, within a group, with a bunch of additional middlewares.
func (g *Group) NewSubgroup(prefixPath string, mw ...Middleware) *Group {
	return &Group{
		app:         g.app,
		prefixPath:  g.prefixPath + prefixPath,
		middlewares: g.with(mw),
	}
}

// with returns a fresh slice so sibling routes never share a backing array.
func (g *Group) with(mw []Middleware) []Middleware {
	middlewares := make([]Middleware, 0, len(g.middlewares)+len(mw))
	middlewares = append(middlewares, g.middlewares...)

	return append(middlewares, mw...)
}
