package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maktabhq/maktab-backend/internal/response"
	"github.com/maktabhq/maktab-backend/internal/validator"
)

// bindJSON binds and validates the request body, writing the failure
// response itself: 400 for a body that cannot be decoded, 422 with field
// messages for validation failures. Returns false when the request has
// already been failed.
func bindJSON(c *gin.Context, dst interface{}) bool {
	fields, malformed := validator.Bind(c, dst)
	if malformed {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return false
	}
	if fields != nil {
		response.FailWithFields(c, http.StatusUnprocessableEntity, response.ErrValidation, fields)
		return false
	}
	return true
}
