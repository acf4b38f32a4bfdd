package model

import (
	"encoding/json"
	"strconv"
)

// CellKind 单元格值类型
type CellKind int

const (
	CellEmpty  CellKind = iota // 空值/缺失
	CellString                 // 字符串
	CellFloat                  // 浮点数
	CellInt                    // 整数
)

// Cell 单元格值：封闭的变体类型（字符串/浮点/整数/缺失）
// 零值即缺失值
type Cell struct {
	Kind CellKind
	Str  string
	F    float64
	I    int64
}

// EmptyCell 缺失值
func EmptyCell() Cell {
	return Cell{Kind: CellEmpty}
}

// StringCell 字符串值
func StringCell(s string) Cell {
	return Cell{Kind: CellString, Str: s}
}

// FloatCell 浮点值
func FloatCell(f float64) Cell {
	return Cell{Kind: CellFloat, F: f}
}

// IntCell 整数值
func IntCell(i int64) Cell {
	return Cell{Kind: CellInt, I: i}
}

// IsEmpty 是否缺失
func (c Cell) IsEmpty() bool {
	return c.Kind == CellEmpty
}

// String 转为字符串表示（缺失值为空串）
func (c Cell) String() string {
	switch c.Kind {
	case CellString:
		return c.Str
	case CellFloat:
		return strconv.FormatFloat(c.F, 'f', -1, 64)
	case CellInt:
		return strconv.FormatInt(c.I, 10)
	default:
		return ""
	}
}

// MarshalJSON 缺失值输出 null，数值输出 JSON number
func (c Cell) MarshalJSON() ([]byte, error) {
	switch c.Kind {
	case CellString:
		return json.Marshal(c.Str)
	case CellFloat:
		return json.Marshal(c.F)
	case CellInt:
		return json.Marshal(c.I)
	default:
		return []byte("null"), nil
	}
}
