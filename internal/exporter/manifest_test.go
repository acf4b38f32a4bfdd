package exporter

import (
	"testing"

	"github.com/mauz79/FCM-Excel-2-JSON/internal/model"
)

func TestMergeManifest_DedupAndSort(t *testing.T) {
	t.Parallel()

	summaries := []model.SeasonSummary{
		{Label: "2022/2023", Key: "2022_2023", File: "2022_2023.json", NPlayers: 10},
		{Label: "2021/2022", Key: "2021_2022", File: "2021_2022.json", NPlayers: 5},
		{Label: "2021/2022", Key: "2021_2022", File: "2021_2022.json", NPlayers: 7},
	}

	m := MergeManifest(summaries)

	if m.SchemaVersion != 1 {
		t.Fatalf("schema_version = %d", m.SchemaVersion)
	}
	if len(m.Seasons) != 2 {
		t.Fatalf("expected 2 seasons, got %d", len(m.Seasons))
	}
	if m.Seasons[0].Key != "2021_2022" || m.Seasons[1].Key != "2022_2023" {
		t.Fatalf("unexpected order: %v", m.Seasons)
	}
	// 重复 key 时列表中靠后的摘要生效
	if m.Seasons[0].NPlayers != 7 {
		t.Fatalf("expected later summary to win, got n_players=%d", m.Seasons[0].NPlayers)
	}
}

func TestMergeManifest_Empty(t *testing.T) {
	t.Parallel()

	m := MergeManifest(nil)
	if len(m.Seasons) != 0 {
		t.Fatalf("expected empty manifest, got %v", m.Seasons)
	}
}
