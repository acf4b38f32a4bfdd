package exporter

import (
	"sort"

	"github.com/mauz79/FCM-Excel-2-JSON/internal/model"
)

// MergeManifest 合并一次运行累积的赛季摘要为清单
// 按 key 去重（列表中靠后的摘要覆盖靠前的），再按 key 升序排序
// 纯函数，不修改输入
func MergeManifest(summaries []model.SeasonSummary) *model.Manifest {
	dedup := make(map[string]model.SeasonSummary, len(summaries))
	for _, s := range summaries {
		dedup[s.Key] = s
	}

	keys := make([]string, 0, len(dedup))
	for k := range dedup {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	seasons := make([]model.SeasonSummary, 0, len(keys))
	for _, k := range keys {
		seasons = append(seasons, dedup[k])
	}

	return &model.Manifest{
		SchemaVersion: model.SchemaVersion,
		Seasons:       seasons,
	}
}
