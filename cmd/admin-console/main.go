package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	_ "github.com/noah-isme/internship-admin/api/swagger"
	"github.com/noah-isme/internship-admin/internal/handler"
	"github.com/noah-isme/internship-admin/internal/models"
	"github.com/noah-isme/internship-admin/internal/repository"
	"github.com/noah-isme/internship-admin/internal/service"
	"github.com/noah-isme/internship-admin/pkg/apiclient"
	"github.com/noah-isme/internship-admin/pkg/config"
	"github.com/noah-isme/internship-admin/pkg/database"
	"github.com/noah-isme/internship-admin/pkg/export"
	"github.com/noah-isme/internship-admin/pkg/logger"
	"github.com/noah-isme/internship-admin/pkg/session"
	"github.com/noah-isme/internship-admin/pkg/storage"
)

// @title Internship Admin Console
// @version 1.0.0
// @description Administrator console in front of the internship management REST API
// @BasePath /console
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logr); err != nil {
		logr.Fatal("console stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logr *zap.Logger) error {
	store, closeStore, err := session.NewStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("session store: %w", err)
	}
	defer closeStore() //nolint:errcheck

	sessions := session.NewManager(store, logr)
	if _, err := sessions.Restore(ctx); err != nil {
		logr.Warn("session restore failed", zap.Error(err))
	}

	metrics := service.NewMetricsService()
	client := apiclient.New(apiclient.Config{BaseURL: cfg.Upstream.BaseURL, Timeout: cfg.Upstream.Timeout}, sessions,
		apiclient.WithObserver(metrics),
		apiclient.WithLogger(logr),
	)

	departmentRepo := repository.NewDepartmentRepository(client)
	batchRepo := repository.NewBatchRepository(client)
	studentRepo := repository.NewStudentRepository(client)
	advisorRepo := repository.NewAdvisorRepository(client)
	internshipRepo := repository.NewInternshipRepository(client)
	authRepo := repository.NewAuthRepository(client)

	validate := validator.New()
	departments := service.NewDepartmentView(departmentRepo, sessions, logr)
	batches := service.NewBatchView(batchRepo, departmentRepo, sessions, logr)
	students := service.NewStudentView(studentRepo, batchRepo, sessions, logr)
	advisors := service.NewAdvisorView(advisorRepo, batchRepo, sessions, logr)
	internships := service.NewInternshipView(internshipRepo, batchRepo, sessions, logr)
	create := service.NewCreateView(service.CreateRepositories{
		Departments: departmentRepo,
		Batches:     batchRepo,
		Students:    studentRepo,
		Advisors:    advisorRepo,
	}, sessions, validate, logr)
	authSvc := service.NewAuthService(authRepo, sessions, validate, logr)

	spool, err := storage.NewSpool(cfg.Spool.Dir)
	if err != nil {
		return fmt.Errorf("spool: %w", err)
	}
	signer := storage.NewSignedURLSigner(cfg.Spool.SigningSecret, cfg.Spool.ObjectTTL)
	files := service.NewFileService(studentRepo, internshipRepo, spool, signer, sessions, metrics, logr, service.FileServiceConfig{
		URLPrefix: cfg.ConsolePrefix + "/objects/",
	})

	exports := service.NewExportService(service.ExportViews{
		Departments: departments,
		Batches:     batches,
		Students:    students,
		Advisors:    advisors,
		Internships: internships,
	}, export.NewCSVExporter(), export.NewPDFExporter(), logr)

	create.OnCreated(func(kind models.EntityKind) {
		switch kind {
		case models.EntityDepartment:
			departments.Invalidate()
			batches.Invalidate()
		case models.EntityBatch:
			batches.Invalidate()
			students.Invalidate()
			advisors.Invalidate()
			internships.Invalidate()
		case models.EntityStudent:
			students.Invalidate()
			internships.Invalidate()
		case models.EntityCourseAdvisor:
			advisors.Invalidate()
		}
	})
	for _, reset := range []func(){departments.Reset, batches.Reset, students.Reset, advisors.Reset, internships.Reset, create.Reset, files.ReleaseAll} {
		sessions.OnLogout(reset)
	}

	var (
		db        *sqlx.DB
		auditRepo *repository.AuditRepository
	)
	if cfg.Audit.Enabled {
		db, err = database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("audit database: %w", err)
		}
		defer db.Close() //nolint:errcheck
		auditRepo = repository.NewAuditRepository(db)
		if err := auditRepo.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("audit schema: %w", err)
		}
	}
	auditCfg := service.AuditConfig{Workers: cfg.Audit.Workers, Retries: cfg.Audit.Retries}
	audit := service.NewAuditService(nil, logr, auditCfg)
	auditLog := handler.NewAuditHandler(nil)
	if auditRepo != nil {
		audit = service.NewAuditService(auditRepo, logr, auditCfg)
		auditLog = handler.NewAuditHandler(auditRepo)
	}
	audit.Start(ctx)
	defer audit.Stop()

	go files.Run(ctx, cfg.Spool.SweepInterval)

	checks := map[string]handler.ReadinessCheck{
		"session_store": func(ctx context.Context) error {
			_, err := store.Get(ctx, session.KeyRole)
			return err
		},
	}
	if db != nil {
		checks["audit_db"] = db.PingContext
	}

	router := newRouter(cfg, logr, routes{
		sessions: sessions,
		metrics:  metrics,
		audit:    audit,
		auth:     handler.NewAuthHandler(authSvc),
		views: handler.NewViewHandler(handler.Views{
			Departments: departments,
			Batches:     batches,
			Students:    students,
			Advisors:    advisors,
			Internships: internships,
		}),
		edits: map[string]*handler.EditHandler{
			"departments": handler.NewEditHandler(departments),
			"batches":     handler.NewEditHandler(batches),
			"students":    handler.NewEditHandler(students),
			"advisors":    handler.NewEditHandler(advisors),
		},
		create:      handler.NewCreateHandler(create),
		files:       handler.NewFileHandler(files),
		exports:     handler.NewExportHandler(exports),
		auditLog:    auditLog,
		observation: handler.NewMetricsHandler(metrics, checks),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logr.Info("console starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logr.Info("console shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	files.ReleaseAll()
	return nil
}
