package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"notes-server/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users  service.UserService
	notes  service.NoteService
	logger *logrus.Logger
}

func NewHandler(users service.UserService, notes service.NoteService, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
	}
	return &Handler{
		users:  users,
		notes:  notes,
		logger: logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(requestLogger(h.logger), recovery(h.logger), corsMiddleware())
	router.NoRoute(func(c *gin.Context) {
		writeError(c, http.StatusNotFound, "route not found")
	})

	api := router.Group("/api", h.identity())
	{
		api.GET("", h.health)
		api.POST("/register", h.register)
		api.POST("/login", h.login)

		notes := api.Group("/notes", h.requireAuth())
		notes.GET("", h.listNotes)
		notes.POST("", h.createNote)
		notes.GET("/:id", h.getNote)
		notes.PATCH("/:id", h.updateNote)
		notes.PUT("/:id", h.updateNote)
		notes.DELETE("/:id", h.deleteNote)
	}
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, "+TokenHeader)
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func writeError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// internalError logs err against the request and answers with a generic 500.
func (h *Handler) internalError(c *gin.Context, message string, err error) {
	h.logger.WithFields(logrus.Fields{
		"request_id": c.GetString(requestIDKey),
		"path":       c.Request.URL.Path,
	}).WithError(err).Error(message)
	writeError(c, http.StatusInternalServerError, message)
}
