package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appErrors "github.com/edugo-labs/aula-api/pkg/errors"
)

// idParam parses a path parameter as a numeric identifier.
func idParam(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "invalid "+name+" parameter")
	}
	return id, nil
}

// queryID parses a required query parameter as a numeric identifier.
func queryID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Query(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "invalid "+name+" query parameter")
	}
	return id, nil
}
