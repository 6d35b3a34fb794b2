package controllers

import (
	"net/http"

	"github.com/amasqis/hrms/pkg/composables"
	"github.com/amasqis/hrms/pkg/httpapi"
)

func internalError(w http.ResponseWriter, r *http.Request, err error) {
	composables.UseLogger(r.Context()).WithError(err).Error("tickets api request failed")
	_ = httpapi.WriteServerError(w, err)
}
