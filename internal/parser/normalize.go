package parser

import (
	"math"
	"strconv"
	"strings"

	"github.com/mauz79/FCM-Excel-2-JSON/internal/model"
	"github.com/mauz79/FCM-Excel-2-JSON/internal/schema"
)

// NormalizeTable 就地规范化表格中的类型化列，保留所有列与行顺序
// - 字符串列: 转字符串并 trim
// - 浮点列: 去空白/%，逗号转小数点，去掉连字符与短横线后解析；
//   解析失败记为缺失值，成功则保留两位小数
// - 整数列: 数值强制转换，解析失败记为 0（与浮点列的缺失处理刻意不对称，
//   沿用 FCM 参考实现的行为）
// 不在任何类型集合中的列原样保留
func NormalizeTable(t *model.Table) {
	for _, col := range t.Columns {
		switch {
		case schema.StringColumns[col]:
			for _, row := range t.Rows {
				row.Set(col, model.StringCell(strings.TrimSpace(row.Get(col).String())))
			}
		case schema.FloatColumns[col]:
			for _, row := range t.Rows {
				row.Set(col, NormalizeFloatCell(row.Get(col)))
			}
		case schema.IntColumns[col]:
			for _, row := range t.Rows {
				row.Set(col, NormalizeIntCell(row.Get(col)))
			}
		}
	}
}

// NormalizeFloatCell 浮点列的单元格规范化
// "3,50%" -> 3.5, "12-" -> 12, "n/a" -> 缺失
func NormalizeFloatCell(c model.Cell) model.Cell {
	s := strings.TrimSpace(c.String())
	s = strings.ReplaceAll(s, "%", "")
	s = strings.ReplaceAll(s, ",", ".")
	s = strings.ReplaceAll(s, "–", "")
	s = strings.ReplaceAll(s, "-", "")

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return model.EmptyCell()
	}
	return model.FloatCell(Round2(f))
}

// NormalizeIntCell 整数列的单元格规范化
// 解析失败或缺失时为 0，不保留缺失值
func NormalizeIntCell(c model.Cell) model.Cell {
	s := strings.TrimSpace(c.String())
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return model.IntCell(0)
	}
	return model.IntCell(int64(f))
}

// Round2 保留两位小数
func Round2(f float64) float64 {
	return math.Round(f*100) / 100
}
