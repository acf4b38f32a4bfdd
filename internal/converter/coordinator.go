// Package converter 驱动批量转换：筛选文件、逐个执行
// 提取赛季 → 读表 → 校验列 → 规范化 → 组装文档 → 写出，
// 单文件失败只跳过该文件，最后合并写出 seasons.json 清单
package converter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mauz79/FCM-Excel-2-JSON/internal/excel"
	"github.com/mauz79/FCM-Excel-2-JSON/internal/exporter"
	"github.com/mauz79/FCM-Excel-2-JSON/internal/model"
	"github.com/mauz79/FCM-Excel-2-JSON/internal/parser"
	"github.com/mauz79/FCM-Excel-2-JSON/internal/schema"
	"github.com/mauz79/FCM-Excel-2-JSON/internal/store"
)

// LogFileName 输出目录下的转换日志文件
const LogFileName = "conversion.log"

// ManifestFileName 赛季清单文件
const ManifestFileName = "seasons.json"

// Coordinator 批量转换协调器
type Coordinator struct {
	store *store.Store // 可为 nil：不记录历史
}

// NewCoordinator 创建协调器
func NewCoordinator(st *store.Store) *Coordinator {
	return &Coordinator{store: st}
}

// Options 转换选项
type Options struct {
	Files     []string // 显式文件列表（优先于 InputDir）
	InputDir  string   // 输入目录，按 *.xls* 收集
	OutputDir string   // 输出目录（必填）
	RawMode   bool     // 跳过规范化
}

// ProgressEvent 进度事件
type ProgressEvent struct {
	Type      string      `json:"type"` // start/file_start/info/warning/error/ok/done
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// FileResult 单文件处理结果
type FileResult struct {
	File      string `json:"file"`
	SeasonKey string `json:"seasonKey,omitempty"`
	Status    string `json:"status"` // converted/skipped
	Rows      int    `json:"rows"`
	Reason    string `json:"reason,omitempty"`
}

// RunReport 运行报告
type RunReport struct {
	RunID           string                `json:"runId"`
	OutputDir       string                `json:"outputDir"`
	RawMode         bool                  `json:"rawMode"`
	TotalFiles      int                   `json:"totalFiles"`
	Converted       int                   `json:"converted"`
	Skipped         int                   `json:"skipped"`
	Files           []FileResult          `json:"files"`
	Seasons         []model.SeasonSummary `json:"seasons"`
	ManifestWritten bool                  `json:"manifestWritten"`
	Duration        time.Duration         `json:"duration"`
}

// Convert 异步执行转换，返回进度通道
func (c *Coordinator) Convert(opts Options) <-chan ProgressEvent {
	progressChan := make(chan ProgressEvent, 256)

	go func() {
		defer close(progressChan)
		emit := func(ev ProgressEvent) {
			select {
			case progressChan <- ev:
			default:
				// 通道已满，丢弃事件
			}
		}
		if _, err := c.Run(opts, emit); err != nil {
			emit(ProgressEvent{Type: "error", Message: err.Error(), Timestamp: time.Now()})
		}
	}()

	return progressChan
}

// Run 同步执行转换
// 返回错误仅限前置条件失败（输出目录无效）；单文件失败全部
// 转换为日志与跳过，不会中断批处理
func (c *Coordinator) Run(opts Options, emit func(ProgressEvent)) (*RunReport, error) {
	startTime := time.Now()

	if opts.OutputDir == "" {
		return nil, errors.New("output directory is required")
	}
	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	report := &RunReport{
		RunID:     uuid.New().String(),
		OutputDir: opts.OutputDir,
		RawMode:   opts.RawMode,
		Files:     []FileResult{},
		Seasons:   []model.SeasonSummary{},
	}

	logPath := filepath.Join(opts.OutputDir, LogFileName)
	logf := func(eventType, format string, args ...interface{}) {
		line := fmt.Sprintf(format, args...)
		exporter.AppendLogLine(logPath, line)
		if emit != nil {
			emit(ProgressEvent{Type: eventType, Message: line, Timestamp: time.Now()})
		}
	}

	files := collectFiles(opts)
	report.TotalFiles = len(files)

	if emit != nil {
		emit(ProgressEvent{Type: "start", Message: "conversion started",
			Data: map[string]interface{}{"total_files": len(files), "raw_mode": opts.RawMode},
			Timestamp: time.Now()})
	}

	if len(files) == 0 {
		logf("info", "[INFO] no valid .xls/.xlsx files selected")
		report.Duration = time.Since(startTime)
		c.recordRun(report, logf)
		if emit != nil {
			emit(ProgressEvent{Type: "done", Message: "nothing to do", Data: report, Timestamp: time.Now()})
		}
		return report, nil
	}

	// 整次运行使用同一个时间戳
	generatedAt := time.Now().UTC().Format("2006-01-02T15:04:05Z")

	var runLogID int64
	if c.store != nil {
		id, err := c.store.CreateRunLog(report.RunID, opts.OutputDir, opts.RawMode, len(files))
		if err != nil {
			logf("warning", "[WARN] history not recorded: %v", err)
		} else {
			runLogID = id
		}
	}

	seenKeys := make(map[string]bool)
	for _, path := range files {
		result := c.processFile(path, opts, generatedAt, seenKeys, logf)
		report.Files = append(report.Files, result.FileResult)
		if result.Summary != nil {
			report.Seasons = append(report.Seasons, *result.Summary)
			report.Converted++
		} else {
			report.Skipped++
		}
		if c.store != nil && runLogID > 0 {
			if err := c.store.InsertRunFile(runLogID, result.File, result.SeasonKey,
				result.Status, result.Rows, result.Reason); err != nil {
				logf("warning", "[WARN] history not recorded: %v", err)
			}
		}
	}

	if len(report.Seasons) > 0 {
		manifest := exporter.MergeManifest(report.Seasons)
		manifestPath := filepath.Join(opts.OutputDir, ManifestFileName)
		if err := exporter.WriteJSONAtomic(manifestPath, manifest); err != nil {
			logf("error", "[ERROR] writing %s: %v", ManifestFileName, err)
		} else {
			report.ManifestWritten = true
			logf("ok", "[OK] updated %s (%d seasons)", ManifestFileName, len(manifest.Seasons))
		}
	} else {
		logf("info", "[DONE] no JSON generated (no valid files)")
	}

	report.Duration = time.Since(startTime)

	if c.store != nil && runLogID > 0 {
		if err := c.store.FinishRunLog(runLogID, report.Converted, report.Skipped, "done"); err != nil {
			logf("warning", "[WARN] history not recorded: %v", err)
		}
	}

	if emit != nil {
		emit(ProgressEvent{Type: "done", Message: "conversion finished", Data: report, Timestamp: time.Now()})
	}
	return report, nil
}

// fileOutcome 单文件处理的内部结果
type fileOutcome struct {
	FileResult
	Summary *model.SeasonSummary
}

// processFile 单文件完整流水线；任何失败都只记录并跳过该文件
func (c *Coordinator) processFile(path string, opts Options, generatedAt string,
	seenKeys map[string]bool, logf func(string, string, ...interface{})) fileOutcome {

	name := filepath.Base(path)
	logf("file_start", "Reading: %s", name)

	skipped := func(key, reason string) fileOutcome {
		return fileOutcome{FileResult: FileResult{File: name, SeasonKey: key, Status: "skipped", Reason: reason}}
	}

	stem := strings.TrimSuffix(name, filepath.Ext(name))
	label, key, err := parser.ExtractSeason(stem)
	if err != nil {
		logf("warning", "  [WARN] %v -> file skipped", err)
		return skipped("", err.Error())
	}

	if seenKeys[key] {
		logf("warning", "  [WARN] duplicate season %q (will be overwritten by this file)", key)
	}
	seenKeys[key] = true

	table, err := excel.ReadTable(path, schema.SheetName)
	if err != nil {
		logf("error", "  [ERROR] cannot read sheet %q: %v", schema.SheetName, err)
		return skipped(key, err.Error())
	}

	missing := schema.MissingColumns(table.Columns)
	if len(missing) > 0 {
		logf("error", "  [ERROR] missing columns: %v -> file skipped", missing)
		return skipped(key, fmt.Sprintf("missing columns: %v", missing))
	}

	if !opts.RawMode {
		parser.NormalizeTable(table)
	}

	doc := exporter.BuildSeasonDocument(table, label, key, generatedAt)
	outName := key + ".json"
	outPath := filepath.Join(opts.OutputDir, outName)
	if err := exporter.WriteJSONAtomic(outPath, doc); err != nil {
		logf("error", "  [ERROR] writing %s: %v", outName, err)
		return skipped(key, err.Error())
	}

	summary := exporter.BuildSeasonSummary(doc, outName)
	logf("ok", "  [OK] generated %s (%d rows)", outName, table.NumRows())

	return fileOutcome{
		FileResult: FileResult{File: name, SeasonKey: key, Status: "converted", Rows: table.NumRows()},
		Summary:    &summary,
	}
}

// collectFiles 收集候选文件：显式列表优先，否则按目录 glob；
// 过滤为存在的 .xls/.xlsx 常规文件，再按文件名不区分大小写排序
func collectFiles(opts Options) []string {
	candidates := opts.Files
	if len(candidates) == 0 && opts.InputDir != "" {
		matches, err := filepath.Glob(filepath.Join(opts.InputDir, "*.xls*"))
		if err == nil {
			candidates = matches
		}
	}

	files := make([]string, 0, len(candidates))
	for _, p := range candidates {
		ext := strings.ToLower(filepath.Ext(p))
		if ext != ".xls" && ext != ".xlsx" {
			continue
		}
		info, err := os.Stat(p)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		files = append(files, p)
	}

	sort.Slice(files, func(i, j int) bool {
		return strings.ToLower(filepath.Base(files[i])) < strings.ToLower(filepath.Base(files[j]))
	})
	return files
}

// recordRun 空跑（无候选文件）时也落一条历史
func (c *Coordinator) recordRun(report *RunReport, logf func(string, string, ...interface{})) {
	if c.store == nil {
		return
	}
	id, err := c.store.CreateRunLog(report.RunID, report.OutputDir, report.RawMode, 0)
	if err != nil {
		logf("warning", "[WARN] history not recorded: %v", err)
		return
	}
	if err := c.store.FinishRunLog(id, 0, 0, "empty"); err != nil {
		logf("warning", "[WARN] history not recorded: %v", err)
	}
}
