package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yuji-8024/t-kento/internal/api"
	"github.com/yuji-8024/t-kento/internal/config"
	"github.com/yuji-8024/t-kento/internal/exporter"
	"github.com/yuji-8024/t-kento/internal/logging"
	"github.com/yuji-8024/t-kento/internal/report"
	"github.com/yuji-8024/t-kento/internal/store"
)

//go:embed all:dist
var staticFiles embed.FS

// Server HTTP 服务器
type Server struct {
	router *gin.Engine
	store  *store.Store
	api    *api.Handler
	logger *slog.Logger

	mu  sync.Mutex
	srv *http.Server
}

// NewServer 创建服务器
func NewServer(cfg *config.AppConfig, logger *slog.Logger, version string) (*Server, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	devMode := cfg.Server.DevMode
	if !devMode {
		gin.SetMode(gin.ReleaseMode)
	}

	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		return nil, fmt.Errorf("データディレクトリを作成できません: %w", err)
	}

	var runLog *store.Store
	if cfg.Data.RunLog {
		runLog, err = store.New(config.GetDataPath(cfg, "", config.RunLogFile))
		if err != nil {
			return nil, fmt.Errorf("実行ログを開けません: %w", err)
		}
	}

	handler := api.NewHandler(api.Options{
		Pipeline: report.NewPipeline(report.Options{
			Reserved:  cfg.Workbook.ReservedSheets,
			RateSheet: cfg.Workbook.RateSheet,
			Logger:    logger,
		}),
		Exporter:       exporter.NewExporter(filepath.Join(dataDir, config.ExportsDir)),
		Store:          runLog,
		MaxUploadBytes: cfg.Workbook.MaxUploadBytes(),
		Logger:         logger,
		Version:        version,
	})

	router := gin.New()
	router.Use(gin.Recovery())
	if devMode {
		router.Use(gin.Logger())
	}
	// multipart 超出部分落盘，上传上限由 handler 校验
	router.MaxMultipartMemory = cfg.Workbook.MaxUploadBytes()

	s := &Server{
		router: router,
		store:  runLog,
		api:    handler,
		logger: logger,
	}

	if err := s.setupRoutes(devMode); err != nil {
		_ = s.Close()
		return nil, err
	}

	return s, nil
}

// setupRoutes 设置路由
func (s *Server) setupRoutes(devMode bool) error {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	s.api.RegisterRoutes(s.router.Group("/api"))

	if devMode {
		// 开发模式：代理到前端开发服务器
		s.router.NoRoute(func(c *gin.Context) {
			c.Redirect(http.StatusTemporaryRedirect, "http://localhost:5173"+c.Request.URL.Path)
		})
		return nil
	}

	sub, err := fs.Sub(staticFiles, "dist")
	if err != nil {
		return fmt.Errorf("静的ファイルを読み込めません: %w", err)
	}
	index, err := fs.ReadFile(sub, "index.html")
	if err != nil {
		return fmt.Errorf("index.html を読み込めません: %w", err)
	}

	s.router.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", index)
	})
	s.router.NoRoute(func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", index)
	})
	return nil
}

// Handler 返回 http.Handler（用于测试）
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run 启动服务器，阻塞直到 Shutdown
func (s *Server) Run(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.mu.Lock()
	s.srv = srv
	s.mu.Unlock()

	s.logger.Info("server listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown 优雅关闭
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.srv
	s.mu.Unlock()

	var err error
	if srv != nil {
		err = srv.Shutdown(ctx)
	}
	if cerr := s.Close(); err == nil {
		err = cerr
	}
	return err
}

// Close 关闭运行日志
func (s *Server) Close() error {
	if s.store != nil {
		return s.store.Close()
	}
	return nil
}
