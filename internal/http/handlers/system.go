package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	intdb "github.com/Tripcarte/easytix-booking/internal/db"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	routerMu sync.RWMutex
	router   *gin.Engine
)

// SetRouter stores the active gin engine for later inspection (e.g., /api/routes).
func SetRouter(r *gin.Engine) {
	routerMu.Lock()
	defer routerMu.Unlock()
	router = r
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "easytix booking service running"})
}

func (h Handler) DBCheck(c *gin.Context) {
	if h.DB == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database not connected"})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	if err := h.DB.PingContext(ctx); err != nil {
		h.logger().Error("db ping failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database ping failed"})
		return
	}
	tables := gin.H{}
	for _, t := range []string{"packages", "resources", "bookings", "booking_participants"} {
		tables[t] = intdb.HasTable(ctx, h.DB, t)
	}
	c.JSON(http.StatusOK, gin.H{"message": "database connection OK", "tables": tables})
}

func Routes(c *gin.Context) {
	routerMu.RLock()
	r := router
	routerMu.RUnlock()
	if r == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "router not ready"})
		return
	}

	routes := r.Routes()
	out := make([]gin.H, 0, len(routes))
	for _, rt := range routes {
		out = append(out, gin.H{
			"method":  rt.Method,
			"path":    rt.Path,
			"handler": rt.Handler,
		})
	}
	c.JSON(http.StatusOK, gin.H{"routes": out})
}
