package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetPresence reports which participants are currently online, grouped by
// role. Operator-facing; mounted behind the JWT middleware.
func (s *Signaling) GetPresence(c *gin.Context) {
	snapshot := s.registry.Snapshot()

	out := gin.H{}
	for role, ids := range snapshot {
		out[string(role)] = ids
	}
	c.JSON(http.StatusOK, out)
}
