package bootstrap

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	httpapi "github.com/facadeworks/facade-workbench/internal/api/http"
	"github.com/facadeworks/facade-workbench/internal/api/http/middleware"
	workbenchhttp "github.com/facadeworks/facade-workbench/internal/workbench/http"
	"github.com/facadeworks/facade-workbench/internal/workbench/schema"
	"github.com/facadeworks/facade-workbench/internal/workbench/service"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	Logger      *slog.Logger
	CORSOrigins []string
	DB          *pgxpool.Pool
	Redis       *redis.Client
	Workbench   *service.Workbench
	Resolver    *schema.Resolver
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(corsConfig(dep.CORSOrigins)))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.Redis, func() int {
		return len(dep.Workbench.Sessions())
	})
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")
	api.Use(middleware.RequestIDMiddleware(dep.Logger))

	wb := api.Group("/workbench")
	workbenchhttp.New(dep.Workbench, dep.Resolver).Register(wb)

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Request-Id"},
		ExposeHeaders: []string{"X-Request-Id", "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cfg
}
