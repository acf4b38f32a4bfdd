package model

import (
	"bytes"
	"encoding/json"
)

// Table 矩形表格：有序列名 + 行序列
// 校验通过后保证所有必需列存在；额外列按原始顺序保留
type Table struct {
	Columns []string
	Rows    []Row
}

// NumRows 数据行数
func (t *Table) NumRows() int {
	return len(t.Rows)
}

// Row 一行数据
// Columns 与所属表共享，保证 JSON 输出键顺序与列顺序一致
type Row struct {
	Columns []string
	Cells   map[string]Cell
}

// Get 按列名取值；列不存在时返回缺失值
func (r Row) Get(col string) Cell {
	return r.Cells[col]
}

// Set 按列名写值
func (r Row) Set(col string, c Cell) {
	r.Cells[col] = c
}

// MarshalJSON 按列顺序输出 JSON 对象
func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, col := range r.Columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(col)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(r.Cells[col])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
