// Package parser 提供赛季提取与单元格值规范化的纯函数
package parser

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrSeasonPatternNotFound 文件名中未找到赛季模式
var ErrSeasonPatternNotFound = errors.New("season pattern not found in filename (expected YYYY_YYYY)")

// 两个以 20 开头的 4 位年份，分隔符 _ / -，允许两侧空白；取第一个匹配
var seasonPattern = regexp.MustCompile(`(20\d{2})\s*[_/\-]\s*(20\d{2})`)

// ExtractSeason 从文件名（不含扩展名）提取赛季
// 支持格式: 2021_2022 / 2021-2022 / 2021/2022
// 返回显示名 "2021/2022" 与文件名安全的 key "2021_2022"
func ExtractSeason(stem string) (label, key string, err error) {
	m := seasonPattern.FindStringSubmatch(stem)
	if m == nil {
		return "", "", ErrSeasonPatternNotFound
	}
	y1, y2 := m[1], m[2]
	return fmt.Sprintf("%s/%s", y1, y2), fmt.Sprintf("%s_%s", y1, y2), nil
}
