// Package exporter 组装并持久化输出文档（单赛季 JSON 与 seasons.json 清单）
package exporter

import (
	"github.com/mauz79/FCM-Excel-2-JSON/internal/model"
)

// BuildSeasonDocument 从已校验（及可选规范化）的表格组装单赛季文档
// columns 反映表格的实际列顺序（含 34 个必需列之外的额外列）
// 此处不做任何校验，调用方保证列契约已通过
func BuildSeasonDocument(t *model.Table, label, key, generatedAt string) *model.SeasonDocument {
	players := t.Rows
	if players == nil {
		players = []model.Row{}
	}
	return &model.SeasonDocument{
		SchemaVersion: model.SchemaVersion,
		SeasonLabel:   label,
		SeasonKey:     key,
		GeneratedAt:   generatedAt,
		Columns:       t.Columns,
		Players:       players,
	}
}

// BuildSeasonSummary 单赛季文档对应的清单条目
func BuildSeasonSummary(doc *model.SeasonDocument, filename string) model.SeasonSummary {
	return model.SeasonSummary{
		Label:       doc.SeasonLabel,
		Key:         doc.SeasonKey,
		File:        filename,
		NPlayers:    len(doc.Players),
		LastUpdated: doc.GeneratedAt,
	}
}
