package shared

import (
	"net/http"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// ParseUUID reads the {id} route variable as a UUID.
func ParseUUID(r *http.Request) (uuid.UUID, error) {
	raw, ok := mux.Vars(r)["id"]
	if !ok {
		return uuid.Nil, errors.New("id route variable missing")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "invalid id")
	}
	return id, nil
}
