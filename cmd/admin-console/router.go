package main

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/internship-admin/internal/handler"
	"github.com/noah-isme/internship-admin/internal/middleware"
	"github.com/noah-isme/internship-admin/internal/models"
	"github.com/noah-isme/internship-admin/internal/service"
	"github.com/noah-isme/internship-admin/pkg/config"
	"github.com/noah-isme/internship-admin/pkg/logger"
	corsmiddleware "github.com/noah-isme/internship-admin/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/internship-admin/pkg/middleware/requestid"
	"github.com/noah-isme/internship-admin/pkg/session"
)

type routes struct {
	sessions    middleware.SessionSource
	metrics     *service.MetricsService
	audit       middleware.AuditRecorder
	auth        *handler.AuthHandler
	views       *handler.ViewHandler
	edits       map[string]*handler.EditHandler
	create      *handler.CreateHandler
	files       *handler.FileHandler
	exports     *handler.ExportHandler
	auditLog    *handler.AuditHandler
	observation *handler.MetricsHandler
}

// editable lists the pages with inline editing, in menu order.
var editable = []string{"departments", "batches", "students", "advisors"}

func newRouter(cfg *config.Config, logr *zap.Logger, rt routes) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(rt.metrics))

	r.GET("/health", rt.observation.Health)
	r.GET("/ready", rt.observation.Ready)
	r.GET("/metrics", rt.observation.Prometheus)
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	console := r.Group(cfg.ConsolePrefix)
	console.POST("/session", middleware.Audit(rt.audit, models.AuditActionLogin, "session"), rt.auth.Login)
	console.GET("/session", rt.auth.Session)
	console.POST("/signup", rt.auth.Signup)
	// The signed token is the credential; links may be opened in a fresh tab.
	console.GET("/objects/:token", rt.files.ServeObject)

	secured := console.Group("")
	secured.Use(middleware.RequireSession(rt.sessions))
	secured.DELETE("/session", middleware.Audit(rt.audit, models.AuditActionLogout, "session"), rt.auth.Logout)

	secured.GET("/entities/options", rt.create.Options)
	secured.POST("/entities", middleware.Audit(rt.audit, models.AuditActionCreate, ""), rt.create.Create)

	secured.GET("/departments", rt.views.Departments)
	secured.GET("/batches", rt.views.Batches)
	secured.GET("/students", rt.views.Students)
	secured.GET("/students/:id", rt.views.Student)
	secured.GET("/advisors", rt.views.Advisors)
	secured.GET("/internships", rt.views.Internships)
	secured.GET("/internships/without", rt.views.WithoutInternship)
	secured.POST("/internships/groups/:batchId/toggle", rt.views.ToggleGroup)

	for _, name := range editable {
		h := rt.edits[name]
		page := secured.Group("/" + name)
		page.POST("/:id/draft", h.BeginEdit)
		page.GET("/draft", h.Draft)
		page.PATCH("/draft", h.SetFields)
		page.POST("/draft/submit", middleware.Audit(rt.audit, models.AuditActionUpdate, name), h.Submit)
		page.DELETE("/draft", h.Cancel)
		page.PUT("/:id", middleware.Audit(rt.audit, models.AuditActionUpdate, name), h.Update)
		if name == "students" {
			page.DELETE("/:id", middleware.RequireRoles(session.RoleAdmin), middleware.Audit(rt.audit, models.AuditActionDelete, name), h.Delete)
			continue
		}
		page.DELETE("/:id", middleware.Audit(rt.audit, models.AuditActionDelete, name), h.Delete)
	}

	secured.GET("/students/:id/cv/open", rt.files.OpenCV)
	secured.GET("/students/:id/cv/download", rt.files.DownloadCV)
	secured.GET("/internships/:id/files/:kind", rt.files.InternshipFile)
	secured.DELETE("/objects/:id", rt.files.ReleaseObject)

	secured.GET("/exports/:view", middleware.Audit(rt.audit, models.AuditActionExport, ""), rt.exports.Export)
	secured.GET("/audit", rt.auditLog.Recent)

	return r
}
