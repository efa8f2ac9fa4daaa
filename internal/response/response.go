package response

import (
	"github.com/gin-gonic/gin"
)

// ErrorBody represents a structured error response.
type ErrorBody struct {
	Code    ErrCode           `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// errorEnvelope wraps an ErrorBody for JSON output.
type errorEnvelope struct {
	Error *ErrorBody `json:"error"`
}

// Success sends a successful JSON response with the given status code.
// The payload is written as-is: mutations carry a "message" key, reads carry
// the bare entity/list or a nested key ("role", "roles", "permissions", ...).
func Success(c *gin.Context, statusCode int, payload interface{}) {
	c.JSON(statusCode, payload)
}

// Fail sends an error response with an error code and no field-level details.
func Fail(c *gin.Context, statusCode int, code ErrCode) {
	c.JSON(statusCode, errorEnvelope{
		Error: &ErrorBody{Code: code, Message: GetMessage(code)},
	})
}

// FailWithFields sends an error response with field-level validation details.
func FailWithFields(c *gin.Context, statusCode int, code ErrCode, fields map[string]string) {
	c.JSON(statusCode, errorEnvelope{
		Error: &ErrorBody{Code: code, Message: GetMessage(code), Fields: fields},
	})
}

// AbortFail aborts the middleware chain and sends an error response.
func AbortFail(c *gin.Context, statusCode int, code ErrCode) {
	c.AbortWithStatusJSON(statusCode, errorEnvelope{
		Error: &ErrorBody{Code: code, Message: GetMessage(code)},
	})
}
