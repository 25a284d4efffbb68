package http

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

func paramUint(c echo.Context, name string) (uint64, bool) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	return n, err == nil && n > 0
}
