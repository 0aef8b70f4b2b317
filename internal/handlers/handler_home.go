package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// homeHandler serves liveness and readiness endpoints.
type homeHandler struct {
	dbPool        *pgxpool.Pool
	enableDBCheck bool
}

func newHomeHandler(dbPool *pgxpool.Pool, enableDBCheck bool) *homeHandler {
	return &homeHandler{dbPool: dbPool, enableDBCheck: enableDBCheck}
}

// health godoc
// @Summary Health check
// @Description Reports service health; optionally pings the database.
// @Tags health
// @Produce plain
// @Success 200 {string} string "OK"
// @Failure 503 {string} string "database unreachable"
// @Router /health [get]
func (h *homeHandler) health(c *gin.Context) {
	if h.enableDBCheck && h.dbPool != nil {
		if err := h.dbPool.Ping(c.Request.Context()); err != nil {
			c.String(http.StatusServiceUnavailable, "database unreachable")
			return
		}
	}
	c.String(http.StatusOK, "OK")
}
