package metrics

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusController exposes the process metrics endpoint.
type PrometheusController struct {
	path string
}

func NewPrometheusController(path string) *PrometheusController {
	return &PrometheusController{path: path}
}

func (c *PrometheusController) Key() string {
	return c.path
}

func (c *PrometheusController) Register(r *mux.Router) {
	r.Handle(c.path, promhttp.Handler())
}
