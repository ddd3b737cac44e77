package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/waitron/waitron/internal/dto"
)

// ErrorHandler renders every error as a JSON body. Business outcomes arrive
// as echo.HTTPError with the code already chosen by the handler; anything
// else is an infrastructure failure and stays a 500.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := err.Error()

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		}
	}

	_ = c.JSON(code, dto.ErrorResponse{Message: msg})
}
