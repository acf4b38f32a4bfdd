// Package excel 按扩展名读取电子表格中的固定工作表为矩形表格
// .xlsx 使用 excelize，.xls 走 BIFF 读取器
package excel

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mauz79/FCM-Excel-2-JSON/internal/model"
)

// SheetReadError 工作表读取失败：文件损坏、工作表缺失或格式不支持
// 单文件范围的错误，不应中断批处理
type SheetReadError struct {
	Path  string
	Sheet string
	Err   error
}

func (e *SheetReadError) Error() string {
	return fmt.Sprintf("read sheet %q from %s: %v", e.Sheet, filepath.Base(e.Path), e.Err)
}

func (e *SheetReadError) Unwrap() error {
	return e.Err
}

// ReadTable 读取指定工作表，按扩展名分发（不做内容嗅探）
func ReadTable(path, sheet string) (*model.Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return readXLSX(path, sheet)
	case ".xls":
		return readXLS(path, sheet)
	default:
		return nil, &SheetReadError{Path: path, Sheet: sheet,
			Err: fmt.Errorf("unsupported extension %q", filepath.Ext(path))}
	}
}

// tableFromRows 第一行为表头，其余为数据行；整行为空的行跳过
func tableFromRows(rows [][]string) *model.Table {
	if len(rows) == 0 {
		return &model.Table{Columns: []string{}}
	}

	t := &model.Table{Columns: rows[0]}
	for _, raw := range rows[1:] {
		empty := true
		cells := make(map[string]model.Cell, len(t.Columns))
		for i, col := range t.Columns {
			var v string
			if i < len(raw) {
				v = raw[i]
			}
			cell := sniffCell(v)
			if !cell.IsEmpty() {
				empty = false
			}
			cells[col] = cell
		}
		if empty {
			continue
		}
		t.Rows = append(t.Rows, model.Row{Columns: t.Columns, Cells: cells})
	}
	return t
}

// sniffCell 将原始字符串归入封闭的变体：整数、浮点或字符串
func sniffCell(s string) model.Cell {
	if s == "" {
		return model.EmptyCell()
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return model.IntCell(i)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return model.FloatCell(f)
	}
	return model.StringCell(s)
}
