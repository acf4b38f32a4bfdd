package server

import (
	"embed"
	"io/fs"
	"log"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mauz79/FCM-Excel-2-JSON/internal/config"
	"github.com/mauz79/FCM-Excel-2-JSON/internal/converter"
	"github.com/mauz79/FCM-Excel-2-JSON/internal/exporter"
	"github.com/mauz79/FCM-Excel-2-JSON/internal/model"
	"github.com/mauz79/FCM-Excel-2-JSON/internal/store"
	"github.com/mauz79/FCM-Excel-2-JSON/internal/util"
)

//go:embed all:dist
var staticFiles embed.FS

// Server HTTP服务器：为内置页面提供转换、进度与清单接口
type Server struct {
	router *gin.Engine
	cfg    *config.AppConfig
	store  *store.Store
	jobs   *JobManager
}

// NewServer 创建服务器
func NewServer(cfg *config.AppConfig) *Server {
	devMode := cfg.Server.DevMode
	if !devMode {
		gin.SetMode(gin.ReleaseMode)
	}

	// 历史存储可选：初始化失败不阻止转换
	var st *store.Store
	if cfg.Data.HistoryDB != "" {
		var err error
		st, err = store.New(config.ResolvePath(cfg.Data.HistoryDB))
		if err != nil {
			log.Printf("history store disabled: %v", err)
			st = nil
		}
	}

	s := &Server{
		router: gin.Default(),
		cfg:    cfg,
		store:  st,
		jobs:   NewJobManager(converter.NewCoordinator(st)),
	}

	s.setupRoutes(devMode)

	return s
}

// setupRoutes 设置路由
func (s *Server) setupRoutes(devMode bool) {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	api := s.router.Group("/api")
	{
		api.POST("/convert", s.handleConvert)
		api.GET("/jobs/:id", s.handleJob)
		api.GET("/jobs/:id/events", s.handleJobEvents)
		api.GET("/seasons", s.handleSeasons)
		api.GET("/history", s.handleHistory)
		api.POST("/open-output", s.handleOpenOutput)
		api.GET("/config", s.handleConfig)
	}

	// 静态资源
	if devMode {
		// 开发模式：代理到前端开发服务器
		s.router.NoRoute(func(c *gin.Context) {
			c.Redirect(http.StatusTemporaryRedirect, "http://localhost:5173"+c.Request.URL.Path)
		})
	} else {
		sub, _ := fs.Sub(staticFiles, "dist")

		s.router.GET("/", func(c *gin.Context) {
			data, _ := fs.ReadFile(sub, "index.html")
			c.Data(http.StatusOK, "text/html; charset=utf-8", data)
		})
		s.router.NoRoute(func(c *gin.Context) {
			data, _ := fs.ReadFile(sub, "index.html")
			c.Data(http.StatusOK, "text/html; charset=utf-8", data)
		})
	}
}

// convertRequest 转换请求体；未给出的字段用配置默认值
type convertRequest struct {
	Files     []string `json:"files"`
	InputDir  string   `json:"input_dir"`
	OutputDir string   `json:"output_dir"`
	RawMode   *bool    `json:"raw_mode"`
}

// handleConvert 启动转换任务
func (s *Server) handleConvert(c *gin.Context) {
	var req convertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	opts := converter.Options{
		Files:     req.Files,
		InputDir:  req.InputDir,
		OutputDir: req.OutputDir,
		RawMode:   s.cfg.Convert.RawMode,
	}
	if opts.InputDir == "" {
		opts.InputDir = config.ResolvePath(s.cfg.Data.InputDir)
	}
	if opts.OutputDir == "" {
		opts.OutputDir = config.ResolvePath(s.cfg.Data.OutputDir)
	}
	if req.RawMode != nil {
		opts.RawMode = *req.RawMode
	}

	if opts.OutputDir == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "output directory is required"})
		return
	}

	job, err := s.jobs.Start(opts)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"job_id": job.ID})
}

// handleJob 任务状态与报告
func (s *Server) handleJob(c *gin.Context) {
	job, ok := s.jobs.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}

	report, done, err := job.Status()
	resp := gin.H{"job_id": job.ID, "done": done}
	if report != nil {
		resp["report"] = report
	}
	if err != nil {
		resp["error"] = err.Error()
	}
	c.JSON(http.StatusOK, resp)
}

// handleJobEvents 轮询进度事件，after 为上次返回的游标
func (s *Server) handleJobEvents(c *gin.Context) {
	job, ok := s.jobs.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}

	after, _ := strconv.Atoi(c.DefaultQuery("after", "0"))
	events, next, done := job.EventsAfter(after)
	c.JSON(http.StatusOK, gin.H{
		"events": events,
		"next":   next,
		"done":   done,
	})
}

// handleSeasons 返回输出目录中的当前赛季清单
func (s *Server) handleSeasons(c *gin.Context) {
	outDir := c.Query("output_dir")
	if outDir == "" {
		outDir = config.ResolvePath(s.cfg.Data.OutputDir)
	}

	path := filepath.Join(outDir, converter.ManifestFileName)
	if !exporter.FileExists(path) {
		c.JSON(http.StatusOK, model.Manifest{SchemaVersion: model.SchemaVersion, Seasons: []model.SeasonSummary{}})
		return
	}

	var manifest model.Manifest
	if err := exporter.ReadJSON(path, &manifest); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, manifest)
}

// handleHistory 最近的转换历史
func (s *Server) handleHistory(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusOK, gin.H{"runs": []store.RunLogEntry{}})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	runs, err := s.store.RecentRuns(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs})
}

// handleOpenOutput 在系统文件管理器中打开输出目录
func (s *Server) handleOpenOutput(c *gin.Context) {
	var req struct {
		Path string `json:"path"`
	}
	_ = c.ShouldBindJSON(&req)

	dir := req.Path
	if dir == "" {
		dir = config.ResolvePath(s.cfg.Data.OutputDir)
	}
	if dir == "" || !exporter.FileExists(dir) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "output directory does not exist"})
		return
	}

	if err := util.OpenFolder(dir); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// handleConfig 返回页面初始化需要的配置
func (s *Server) handleConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"input_dir":  s.cfg.Data.InputDir,
		"output_dir": s.cfg.Data.OutputDir,
		"raw_mode":   s.cfg.Convert.RawMode,
	})
}

// Run 启动服务器
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Close 释放资源
func (s *Server) Close() error {
	if s.store != nil {
		return s.store.Close()
	}
	return nil
}

// Router 获取路由（用于测试）
func (s *Server) Router() *gin.Engine {
	return s.router
}
