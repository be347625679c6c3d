package handlers

import (
	"todoapp/internal/logger"
	"todoapp/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// User endpoints
	h.registerUserRoutes(router)

	// Todo endpoints (protected)
	h.registerTodoRoutes(router)

	return router
}

func (h *Handler) registerUserRoutes(r *gin.Engine) {
	r.POST("/users", h.register)
	r.POST("/users/login", h.login)

	me := r.Group("/users/me", h.authMiddleware)
	{
		me.GET("", h.currentUser)
		me.DELETE("/token", h.logout)
	}
}

func (h *Handler) registerTodoRoutes(r *gin.Engine) {
	todos := r.Group("/todos", h.authMiddleware)
	{
		todos.POST("", h.createTodo)
		todos.GET("", h.listTodos)
		todos.GET("/:id", h.getTodo)
		todos.PATCH("/:id", h.updateTodo)
		todos.DELETE("/:id", h.deleteTodo)
	}
}
