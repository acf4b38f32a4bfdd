package exporter

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// WriteJSONAtomic 缩进 JSON 写入：先写临时文件再 rename
func WriteJSONAtomic(path string, v interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// ReadJSON 读取 JSON 文件
func ReadJSON(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

// FileExists 文件是否存在
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// AppendLogLine 向日志文件追加一行；失败时静默忽略
func AppendLogLine(path, line string) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	defer f.Close()
	_, _ = f.WriteString(line + "\n")
}
