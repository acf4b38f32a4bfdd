package model

// SchemaVersion 输出文档格式版本
const SchemaVersion = 1

// SeasonDocument 单赛季输出文档（<season_key>.json）
type SeasonDocument struct {
	SchemaVersion int      `json:"schema_version"`
	SeasonLabel   string   `json:"season_label"`
	SeasonKey     string   `json:"season_key"`
	GeneratedAt   string   `json:"generated_at"`
	Columns       []string `json:"columns"`
	Players       []Row    `json:"players"`
}

// SeasonSummary 单赛季摘要（manifest 条目）
type SeasonSummary struct {
	Label       string `json:"label"`
	Key         string `json:"key"`
	File        string `json:"file"`
	NPlayers    int    `json:"n_players"`
	LastUpdated string `json:"last_updated"`
}

// Manifest 赛季清单（seasons.json），按 key 升序
type Manifest struct {
	SchemaVersion int             `json:"schema_version"`
	Seasons       []SeasonSummary `json:"seasons"`
}
