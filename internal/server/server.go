package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "imagegen/docs"
	"imagegen/internal/config"
	"imagegen/internal/handler"
	generationHandler "imagegen/internal/handler/generation"
	pluginHandler "imagegen/internal/handler/plugin"
	"imagegen/internal/imagegen"
	"imagegen/internal/imagegen/siliconflow"
	"imagegen/internal/imagegen/xai"
	"imagegen/internal/imagegen/zhipuai"
	"imagegen/internal/pkg/journal"
	"imagegen/internal/pkg/lobe"
	"imagegen/internal/pkg/metrics"
	"imagegen/internal/server/middleware"
)

// Server HTTP 服务器
type Server struct {
	cfg        *config.Config
	engine     *gin.Engine
	journal    *journal.Journal
	metrics    *metrics.Collector
	generators []imagegen.Generator
}

// New 创建服务器实例
func New(cfg *config.Config) (*Server, error) {
	// 设置 Gin 模式
	switch cfg.Server.Mode {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化生成记录 (可选)
	var j *journal.Journal
	if cfg.Journal.Enabled && cfg.Redis.Addr != "" {
		jr, err := journal.New(&cfg.Redis, cfg.Journal.MaxEntries)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to Redis, generation journal disabled")
		} else {
			j = jr
			log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to Redis")
		}
	}

	return NewWithJournal(cfg, j), nil
}

// NewWithJournal 使用已建立的生成记录创建服务器，j 为 nil 表示不记录
func NewWithJournal(cfg *config.Config, j *journal.Journal) *Server {
	srv := &Server{
		cfg:     cfg,
		engine:  gin.New(),
		journal: j,
		metrics: metrics.NewCollector("imagegen"),
	}
	srv.generators = srv.buildGenerators()

	// 设置路由
	srv.setupRoutes()

	return srv
}

// buildGenerators 根据配置创建各服务商生成器，共享同一个 HTTP 客户端
func (s *Server) buildGenerators() []imagegen.Generator {
	p := s.cfg.Providers

	observers := []imagegen.Observer{s.metrics}
	if s.journal != nil {
		observers = append(observers, s.journal)
	}

	client := &http.Client{}
	opts := func(baseURL string) imagegen.Options {
		return imagegen.Options{
			BaseURL:    baseURL,
			HTTPClient: client,
			Timeout:    p.Timeout,
			Observers:  observers,
		}
	}

	zhipuBaseURL := p.ZhipuAI.BaseURL
	if zhipuBaseURL == "" {
		zhipuBaseURL = zhipuai.BaseURLFromEnv()
	}

	generators := []imagegen.Generator{
		siliconflow.New(opts(p.SiliconFlow.BaseURL)),
		xai.New(opts(p.XAI.BaseURL)),
		zhipuai.New(opts(zhipuBaseURL), zhipuai.Config{StrictValidation: p.ZhipuAI.StrictValidation}),
	}

	for _, g := range generators {
		d := g.Descriptor()
		log.Info().Str("provider", d.ID).Str("base_url", d.BaseURL).Msg("registered image provider")
	}
	return generators
}

// setupRoutes 设置路由
func (s *Server) setupRoutes() {
	// 全局中间件
	s.engine.Use(middleware.Recovery())
	s.engine.Use(middleware.RequestID())
	s.engine.Use(middleware.Logger())
	s.engine.Use(middleware.Metrics(s.metrics))
	s.engine.Use(middleware.CORS())

	// 健康检查
	healthHandler := handler.NewHealthHandler()
	if s.journal != nil {
		healthHandler.WithDependency("redis", s.journal)
	}
	s.engine.GET("/health", healthHandler.Health)
	s.engine.GET("/ready", healthHandler.Ready)

	// 指标
	s.engine.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	// Swagger 文档
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := s.engine.Group("/api")
	{
		// 插件接口
		pluginHdl := pluginHandler.NewHandler(lobe.NewHeaderResolver(), s.generators...)
		api.POST("/:provider/generate", pluginHdl.Generate)
		api.GET("/:provider/manifest.json", pluginHdl.Manifest)

		// 生成记录
		var lister generationHandler.RecordLister
		if s.journal != nil {
			lister = s.journal
		}
		generationHdl := generationHandler.NewHandler(lister)
		api.GET("/v1/generations", generationHdl.ListGenerations)
	}
}

// Run 启动服务器
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	// 启动服务器
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// 等待关闭信号或错误
	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down server...")

		err := srv.Shutdown(context.Background())

		// 等进行中的请求结束后再关闭连接
		if s.journal != nil {
			if cerr := s.journal.Close(); cerr != nil {
				log.Error().Err(cerr).Msg("failed to close Redis connection")
			}
		}
		return err
	case err := <-errCh:
		return err
	}
}

// Engine 获取 Gin 引擎 (用于测试)
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
