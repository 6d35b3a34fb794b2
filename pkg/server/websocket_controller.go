package server

import (
	"github.com/gorilla/mux"

	"github.com/amasqis/hrms/pkg/ws"
)

// WebSocketController mounts the hub's upgrade endpoint.
type WebSocketController struct {
	path string
	hub  *ws.Hub
}

func NewWebSocketController(path string, hub *ws.Hub) *WebSocketController {
	return &WebSocketController{path: path, hub: hub}
}

func (c *WebSocketController) Key() string {
	return c.path
}

func (c *WebSocketController) Register(r *mux.Router) {
	r.Handle(c.path, c.hub)
}
