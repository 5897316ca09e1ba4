package handler

import (
	"github.com/clancy-dev/receipts-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ParseUUIDParam reads a UUID path parameter, replying 400 itself when the
// value does not parse.
func ParseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, "Invalid receipt ID")
		return uuid.Nil, false
	}
	return id, true
}
