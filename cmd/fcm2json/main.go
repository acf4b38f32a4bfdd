package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"regexp"
	"strings"
	"syscall"

	"github.com/mauz79/FCM-Excel-2-JSON/internal/config"
	"github.com/mauz79/FCM-Excel-2-JSON/internal/converter"
	"github.com/mauz79/FCM-Excel-2-JSON/internal/server"
	"github.com/mauz79/FCM-Excel-2-JSON/internal/store"
	"github.com/mauz79/FCM-Excel-2-JSON/internal/util"
)

var (
	filesArg = flag.String("files", "", "Excel 文件列表，分号/逗号分隔（优先于 -in）")
	inDir    = flag.String("in", "", "输入目录（覆盖配置文件）")
	outDir   = flag.String("out", "", "输出目录（覆盖配置文件）")
	rawMode  = flag.Bool("raw", false, "RAW 模式：跳过数值/百分比规范化")
	serve    = flag.Bool("serve", false, "强制启动 Web 界面")
	port     = flag.Int("port", 0, "服务端口（覆盖配置文件）")
	devMode  = flag.Bool("dev", false, "开发模式")
)

func main() {
	flag.Parse()

	fmt.Println("==========================================")
	fmt.Println("  FCM Excel -> JSON 转换工具")
	fmt.Println("==========================================")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("加载配置失败，使用默认配置: %v", err)
		cfg = config.DefaultConfig()
	}

	// 命令行参数覆盖配置
	if *inDir != "" {
		cfg.Data.InputDir = *inDir
	}
	if *outDir != "" {
		cfg.Data.OutputDir = *outDir
	}
	if *rawMode {
		cfg.Convert.RawMode = true
	}
	if *port > 0 {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}

	files := splitFileList(*filesArg)

	// 命令行给了输入时直接转换，否则启动 Web 界面
	if !*serve && (len(files) > 0 || *inDir != "") {
		runCLI(cfg, files)
		return
	}

	runServer(cfg)
}

// runCLI 一次性批量转换，日志输出到标准输出
func runCLI(cfg *config.AppConfig, files []string) {
	var st *store.Store
	if cfg.Data.HistoryDB != "" {
		var err error
		st, err = store.New(config.ResolvePath(cfg.Data.HistoryDB))
		if err != nil {
			log.Printf("转换历史不可用: %v", err)
			st = nil
		} else {
			defer st.Close()
		}
	}

	coord := converter.NewCoordinator(st)
	report, err := coord.Run(converter.Options{
		Files:     files,
		InputDir:  cfg.Data.InputDir,
		OutputDir: cfg.Data.OutputDir,
		RawMode:   cfg.Convert.RawMode,
	}, func(ev converter.ProgressEvent) {
		if ev.Type != "start" && ev.Type != "done" {
			fmt.Println(ev.Message)
		}
	})
	if err != nil {
		log.Fatalf("转换失败: %v", err)
	}

	fmt.Printf("完成: %d 个文件转换成功, %d 个跳过, 输出目录: %s\n",
		report.Converted, report.Skipped, report.OutputDir)
}

// runServer 启动 Web 界面并打开浏览器
func runServer(cfg *config.AppConfig) {
	srv := server.NewServer(cfg)
	defer srv.Close()

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)

	go func() {
		fmt.Printf("服务启动中，监听端口 %d ...\n", cfg.Server.Port)
		if err := srv.Run(addr); err != nil {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	if !cfg.Server.DevMode {
		fmt.Printf("正在打开浏览器: %s\n", url)
		if err := util.OpenBrowserWithFallback(url); err != nil {
			fmt.Printf("无法自动打开浏览器，请手动访问: %s\n", url)
		}
	} else {
		fmt.Printf("开发模式: 请访问 %s\n", url)
	}

	fmt.Println("\n按 Ctrl+C 停止服务...")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\n正在关闭服务...")
}

// splitFileList 拆分文件列表参数：分号（Windows 选择器）、逗号、换行均可
func splitFileList(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	parts := regexp.MustCompile(`[;\n,]+`).Split(s, -1)
	files := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(strings.TrimSpace(p), `"`)
		if p != "" {
			files = append(files, p)
		}
	}
	return files
}
