package httperr

import (
	"errors"

	"github.com/gin-gonic/gin"
)

// BusinessError is a client mistake the owner API reports as 422. Field
// names the offending request field when there is one.
type BusinessError struct {
	Code    string
	Field   string
	Message string
}

func (e BusinessError) Error() string {
	if e.Field != "" {
		return e.Code + ": " + e.Field
	}
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

// ErrInvalidField reports a rejected field value.
func ErrInvalidField(code, field, message string) error {
	return BusinessError{Code: code, Field: field, Message: message}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// WriteBusiness writes err with its own status and code. fallback is the
// message used when err carries none.
func WriteBusiness(c *gin.Context, err error, fallback string) {
	resp := HTTPError{Code: Code(err), Message: fallback}

	var be BusinessError
	if errors.As(err, &be) {
		resp.Field = be.Field
		if be.Message != "" {
			resp.Message = be.Message
		}
	}
	c.JSON(StatusFor(err), resp)
}
