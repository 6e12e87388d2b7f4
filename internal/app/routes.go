package app

import (
	"net/http"

	"UserAPI/internal/config"
	"UserAPI/internal/handlers"
	"UserAPI/internal/logger"
	"UserAPI/internal/metrics"
	"UserAPI/internal/repo"
	"UserAPI/internal/serializer"
	"UserAPI/internal/service"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"

	_ "UserAPI/docs"
)

const (
	helloPath = "/hello"
	// usersPath is the collection route; detail routes hang off it as /users/:id/.
	usersPath = "/users/"
)

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, users repo.UserRepo, log *logger.Logger, m *metrics.HTTP) {
	r.NoRoute(handlers.NotFound)
	r.NoMethod(handlers.MethodNotAllowed)

	r.GET("/health", healthHandler(cfg))
	r.GET("/version", versionHandler(cfg))
	r.GET("/metrics", m.Handler())
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(http.StatusFound, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))

	r.Any(helloPath, handlers.Hello)

	userSer := serializer.NewHyperlinkedUserSerializer(serializer.NewUserSerializer(), usersPath)
	r.GET("/", handlers.APIRoot(userSer))

	userSvc := service.NewUserService(users, log)
	userHandler := handlers.NewUserHandler(userSvc, userSer)
	registerUserRoutes(r.Group(usersPath), userHandler)
}

func healthHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "env": cfg.App.Env})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"version": cfg.App.Version})
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(doc))
	}
}

func registerUserRoutes(g *gin.RouterGroup, h *handlers.UserHandler) {
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET(":id/", h.Retrieve)
	g.PUT(":id/", h.Update)
	g.PATCH(":id/", h.PartialUpdate)
	g.DELETE(":id/", h.Destroy)
}
