package errors

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

var (
	ErrDBInternal       = errors.New("database internal error")
	ErrNotFound         = errors.New("record not found")
	ErrAlreadyExists    = errors.New("record already exists")
	ErrNotFoundRating   = errors.New("can't find a rating with this ID")
	ErrNotFoundProduct  = errors.New("can't find a product with this ID")
	ErrNotFoundCategory = errors.New("can't find a category with this ID")
	ErrSessionNotFound  = errors.New("session not found")
	ErrSessionIsExpired = errors.New("session is expired")
	ErrNoAuth           = errors.New("authorization required")
	ErrNoAccess         = errors.New("access denied for this role")

	ErrBadPassword   = errors.New("bad password")
	ErrBadID         = errors.New("bad id")
	ErrInvalidAmount = errors.New("invalid amount")

	ErrRatingIsInvalid      = errors.New("rating must be between 1 and 5")
	ErrRatingTextIsTooShort = errors.New("text must be at least 5 characters")
	ErrRatingTextIsTooLong  = errors.New("text must be less than 1000 characters")
	ErrMissingRatingID      = errors.New("rating id is missing")

	ErrCategoryNameIsInvalid = errors.New("category name must be between 5 and 30 characters")

	ErrInvalidJSONPayload = errors.New("invalid JSON payload")

	ErrIndexing = errors.New("indexing error")
	ErrSearch   = errors.New("search error")
)

type ErrorServer struct {
	Message string `json:"message"`
}

func (e *ErrorServer) Error() string {
	return e.Message
}

/*
NewErrorServer
Функция имеет возможность принимать "nil ошибку"
при получении nil наша функция понимает, что нам
просто надо отдать саксесс клиенту
*/
func NewErrorServer(err error) ErrorServer {
	if err == nil {
		return ErrorServer{
			Message: "success",
		}
	}

	return ErrorServer{
		Message: err.Error(),
	}
}

func SendErrorTo(w http.ResponseWriter, err error, statusCode int, logger *zap.SugaredLogger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if errEncode := json.NewEncoder(w).Encode(NewErrorServer(err)); errEncode != nil {
		logger.Error(errEncode)
	}
}
