package schema

// MissingColumns 返回表头中缺失的必需列，按 RequiredColumns 顺序
// 纯函数，不修改输入；返回空切片表示校验通过
func MissingColumns(columns []string) []string {
	present := make(map[string]bool, len(columns))
	for _, c := range columns {
		present[c] = true
	}

	missing := []string{}
	for _, c := range RequiredColumns {
		if !present[c] {
			missing = append(missing, c)
		}
	}
	return missing
}
