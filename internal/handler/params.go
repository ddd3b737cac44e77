package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// paramUintValue parses a raw path or query value as an unsigned id.
func paramUintValue(s string) (uint, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	return uint(v), err
}

// paramUint reads the named path parameter, turning parse failures into a
// 400 response.
func paramUint(c echo.Context, name string) (uint, error) {
	v, err := paramUintValue(c.Param(name))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return v, nil
}
