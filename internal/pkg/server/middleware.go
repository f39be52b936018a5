package server

import (
	"github.com/gin-gonic/gin"
)

// Middlewares holds the optional generic middlewares selectable by name from
// the server.middlewares option. Services register their own entries at init.
var Middlewares = map[string]gin.HandlerFunc{}

// RegisterMiddleware makes a middleware selectable by name.
func RegisterMiddleware(name string, mw gin.HandlerFunc) {
	Middlewares[name] = mw
}
