package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/SprintFox/TaskManager-Back/internal/core/auth"
	"github.com/SprintFox/TaskManager-Back/internal/core/cache"
	"github.com/SprintFox/TaskManager-Back/internal/core/config"
	"github.com/SprintFox/TaskManager-Back/internal/core/database"
	"github.com/SprintFox/TaskManager-Back/internal/core/logger"
	"github.com/SprintFox/TaskManager-Back/internal/core/server"
	"github.com/SprintFox/TaskManager-Back/internal/domain"
	"github.com/SprintFox/TaskManager-Back/internal/repo"
	"github.com/SprintFox/TaskManager-Back/internal/service"
	"github.com/SprintFox/TaskManager-Back/internal/storage"
	"github.com/SprintFox/TaskManager-Back/internal/transport/http/handler"
	"github.com/SprintFox/TaskManager-Back/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	// 数据库（失败直接 Fatal）
	db := mustOpenDB(cfg, log)
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if cfg.DB.AutoMigrate {
		if err := db.AutoMigrate(
			&domain.User{},
			&domain.Skill{},
			&domain.Project{},
			&domain.ProjectMember{},
			&domain.Branch{},
			&domain.Task{},
		); err != nil {
			log.Fatal("automigrate failed", zap.Error(err))
		}
		log.Info("automigrate done")
	}

	jwter := &auth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    time.Duration(cfg.JWT.AccessTokenTTLMin) * time.Minute,
	}

	var c *cache.Cache
	if cfg.Redis.Enable {
		c = cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		log.Info("redis cache enabled", zap.String("addr", cfg.Redis.Addr))
	}

	store, err := storage.NewLocalStore(cfg.Upload.Dir, cfg.Upload.BaseURL)
	if err != nil {
		log.Fatal("upload dir", zap.Error(err))
	}

	// 仓储
	users := repo.NewUserRepo(db)
	projects := repo.NewProjectRepo(db)
	branches := repo.NewBranchRepo(db)
	tasks := repo.NewTaskRepo(db)
	skills := repo.NewSkillRepo(db)

	// 服务
	summaryTTL := time.Duration(cfg.Redis.SummaryTTLSec) * time.Second
	identitySvc := service.NewIdentity(users, jwter, nil, log)
	projectSvc := service.NewProjects(projects, branches, tasks, users, c, summaryTTL, log)
	branchSvc := service.NewBranches(projects, branches, c, log)
	taskSvc := service.NewTasks(projects, branches, tasks, users, skills, c, log)
	userSvc := service.NewUsers(users, skills, log)
	skillSvc := service.NewSkills(skills, log)

	base := handler.NewBase(identitySvc)
	r := router.NewAPIEngine(log, jwter, router.APIHandlers{
		Auth:    handler.NewAuthHandler(identitySvc),
		User:    handler.NewUserHandler(base, userSvc, taskSvc),
		Project: handler.NewProjectHandler(base, projectSvc),
		Branch:  handler.NewBranchHandler(base, branchSvc),
		Task:    handler.NewTaskHandler(base, taskSvc),
		Skill:   handler.NewSkillHandler(base, skillSvc, userSvc),
		File:    handler.NewFileHandler(base, store),
	}, cfg.Upload.Dir)

	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)

	host4human := cfg.App.HTTP.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.HTTP.Port)
	log.Info("api starting",
		zap.String("addr", addr),
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
		zap.String("api_v1", baseURL+"/api/v1"),
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("api start FAILED", zap.Error(err))
		}
	}()
	log.Info("api started SUCCESS")

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	log.Info("api stopped gracefully")
}

func mustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	return db
}
