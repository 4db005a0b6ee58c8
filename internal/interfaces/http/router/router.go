package router

import "github.com/gin-gonic/gin"

// The HTTP surface is declared in main as one DomainGroup per bounded
// context (catalog, designs, assets, admin, storefront, ai, system), all
// mounted under /api. Health probes bypass this and sit on the engine root.

// Router collects domain groups and mounts them on the gin engine.
type Router struct {
	engine *gin.Engine
	groups []*DomainGroup
}

// NewRouter creates a Router over an existing engine.
func NewRouter(engine *gin.Engine) *Router {
	return &Router{engine: engine}
}

// Register queues domain groups for mounting.
func (r *Router) Register(groups ...*DomainGroup) *Router {
	r.groups = append(r.groups, groups...)
	return r
}

// Setup mounts every registered group under /api.
func (r *Router) Setup() {
	api := r.engine.Group("/api")
	for _, group := range r.groups {
		group.mount(api)
	}
}

// DomainGroup is the route table of one bounded context: a URL prefix,
// optional group middleware, and the routes beneath it.
type DomainGroup struct {
	name       string
	prefix     string
	middleware []gin.HandlerFunc
	routes     []route
}

type route struct {
	method   string
	path     string
	handlers []gin.HandlerFunc
}

// NewDomainGroup creates a group mounted at prefix. The name shows up in
// nothing but debugging; the prefix is what routes requests.
func NewDomainGroup(name, prefix string) *DomainGroup {
	return &DomainGroup{name: name, prefix: prefix}
}

// Use attaches middleware to every route in the group, e.g. the AI rate
// limiter.
func (dg *DomainGroup) Use(middleware ...gin.HandlerFunc) *DomainGroup {
	dg.middleware = append(dg.middleware, middleware...)
	return dg
}

func (dg *DomainGroup) handle(method, path string, handlers []gin.HandlerFunc) *DomainGroup {
	dg.routes = append(dg.routes, route{method: method, path: path, handlers: handlers})
	return dg
}

// GET registers a GET route
func (dg *DomainGroup) GET(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle("GET", path, handlers)
}

// POST registers a POST route
func (dg *DomainGroup) POST(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle("POST", path, handlers)
}

// PUT registers a PUT route
func (dg *DomainGroup) PUT(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle("PUT", path, handlers)
}

// DELETE registers a DELETE route
func (dg *DomainGroup) DELETE(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle("DELETE", path, handlers)
}

func (dg *DomainGroup) mount(parent *gin.RouterGroup) {
	group := parent.Group(dg.prefix)
	if len(dg.middleware) > 0 {
		group.Use(dg.middleware...)
	}
	for _, rt := range dg.routes {
		group.Handle(rt.method, rt.path, rt.handlers...)
	}
}
