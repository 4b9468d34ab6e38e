package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"

	"noteful-server/internal/domain"
	"noteful-server/internal/middleware"
	"noteful-server/pkg/response"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// decodeBody decodes a JSON request body and converts type mismatches into
// field-level validation errors instead of opaque decode failures.
func decodeBody(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			if typeErr.Type.Kind() == reflect.Slice {
				return &domain.ValidationError{
					Field:   typeErr.Field,
					Message: fmt.Sprintf("The `%s` must be an array", typeErr.Field),
				}
			}
			return &domain.ValidationError{
				Field:   typeErr.Field,
				Message: fmt.Sprintf("The `%s` is not valid", typeErr.Field),
			}
		}
		return &domain.ValidationError{Message: "Invalid request body"}
	}
	return nil
}

// callerID extracts the authenticated user's id from the request context.
func callerID(r *http.Request) (bson.ObjectID, bool) {
	id, err := bson.ObjectIDFromHex(middleware.GetUserID(r))
	if err != nil {
		return bson.ObjectID{}, false
	}
	return id, true
}

// pathID parses the {id} route variable.
func pathID(r *http.Request) (bson.ObjectID, error) {
	id, err := bson.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		return bson.ObjectID{}, &domain.ValidationError{Field: "id", Message: "The `id` is not valid"}
	}
	return id, nil
}

func writeError(w http.ResponseWriter, err error) {
	var valErr *domain.ValidationError
	var refErr *domain.ReferenceError
	var dupErr *domain.DuplicateNameError

	switch {
	case errors.As(err, &valErr):
		response.BadRequest(w, valErr.Error())
	case errors.As(err, &refErr):
		response.BadRequest(w, refErr.Error())
	case errors.As(err, &dupErr):
		response.BadRequest(w, dupErr.Error())
	case errors.Is(err, domain.ErrNotFound):
		response.NotFound(w, "Not found")
	default:
		response.InternalError(w, "Internal server error")
	}
}
