// Package schema 定义 FCM 导出表的固定列契约与各列的规范化类型
package schema

// SheetName FCM 导出文件中的固定工作表名
const SheetName = "Tutti i dati"

// RequiredColumns 34 个必需列，顺序即校验报告顺序
var RequiredColumns = []string{
	"Nome", "Sq", "R", "COD", "FMld", "T", "P", "Aff%",
	"MVC", "MVF", "MVT", "MVDSt", "MVDlt", "MVAnd", "MVRnd",
	"FMC", "FMF", "FMT", "FMDSt", "FMDlt", "FMAnd", "FMRnd",
	"GF", "GFR", "GS", "GSR", "AG", "AS", "RP", "RS", "A", "E", "TIn", "ID",
}

// FloatColumns 按带小数数值规范化的列
var FloatColumns = map[string]bool{
	"FMld": true, "Aff%": true,
	"MVC": true, "MVF": true, "MVT": true, "MVDSt": true,
	"MVDlt": true, "MVAnd": true, "MVRnd": true,
	"FMC": true, "FMF": true, "FMT": true, "FMDSt": true,
	"FMDlt": true, "FMAnd": true, "FMRnd": true,
}

// IntColumns 按整数规范化的列
var IntColumns = map[string]bool{
	"T": true, "P": true, "GF": true, "GFR": true, "GS": true, "GSR": true,
	"AG": true, "AS": true, "RP": true, "RS": true, "A": true, "E": true,
	"TIn": true,
}

// StringColumns 按字符串 trim 处理的列（ID 按字符串处理）
var StringColumns = map[string]bool{
	"Nome": true, "Sq": true, "R": true, "COD": true, "ID": true,
}
