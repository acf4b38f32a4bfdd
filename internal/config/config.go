package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// AppConfig 应用配置
type AppConfig struct {
	Server  ServerConfig  `toml:"server"`
	Data    DataConfig    `toml:"data"`
	Convert ConvertConfig `toml:"convert"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// DataConfig 数据目录配置
type DataConfig struct {
	InputDir  string `toml:"input_dir"`
	OutputDir string `toml:"output_dir"`
	HistoryDB string `toml:"history_db"` // 留空则不记录转换历史
}

// ConvertConfig 转换配置
type ConvertConfig struct {
	RawMode bool `toml:"raw_mode"`
}

// DefaultConfig 默认配置
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    20252,
			DevMode: false,
		},
		Data: DataConfig{
			InputDir:  "",
			OutputDir: "output",
			HistoryDB: filepath.Join("data", "history.db"),
		},
		Convert: ConvertConfig{
			RawMode: false,
		},
	}
}

// GetExeDir 获取可执行文件所在目录
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfig 从可执行文件同目录下的 config.toml 加载配置
// 配置文件不存在时使用默认配置；环境变量可覆盖数据目录
func LoadConfig() (*AppConfig, error) {
	config := DefaultConfig()

	exeDir, err := GetExeDir()
	if err != nil {
		// 无法获取可执行文件目录，使用当前目录
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnvOverrides(config)
			return config, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, err
	}

	applyEnvOverrides(config)
	return config, nil
}

// applyEnvOverrides 环境变量覆盖（用于 E2E / 本地运行）
func applyEnvOverrides(config *AppConfig) {
	if v := os.Getenv("FCM2JSON_INPUT_DIR"); v != "" {
		config.Data.InputDir = v
	}
	if v := os.Getenv("FCM2JSON_OUTPUT_DIR"); v != "" {
		config.Data.OutputDir = v
	}
	if v := os.Getenv("FCM2JSON_HISTORY_DB"); v != "" {
		config.Data.HistoryDB = v
	}
}

// SaveConfig 保存配置到 config.toml
func SaveConfig(config *AppConfig) error {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// ResolvePath 相对路径解析到可执行文件目录
func ResolvePath(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	exeDir, err := GetExeDir()
	if err != nil {
		return path
	}
	return filepath.Join(exeDir, path)
}

// EnsureOutputDir 确保输出目录存在，返回解析后的路径
func EnsureOutputDir(config *AppConfig) (string, error) {
	dir := ResolvePath(config.Data.OutputDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}
