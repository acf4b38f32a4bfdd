package parser

import (
	"errors"
	"testing"
)

func TestExtractSeason_Separators(t *testing.T) {
	t.Parallel()

	cases := []struct {
		stem  string
		label string
		key   string
	}{
		{"Dati_2021_2022_v2", "2021/2022", "2021_2022"},
		{"export_2020-2021", "2020/2021", "2020_2021"},
		{"FCM 2022/2023 finale", "2022/2023", "2022_2023"},
		{"stagione 2021 - 2022", "2021/2022", "2021_2022"},
	}

	for _, c := range cases {
		label, key, err := ExtractSeason(c.stem)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", c.stem, err)
		}
		if label != c.label || key != c.key {
			t.Fatalf("%q: got (%q, %q) want (%q, %q)", c.stem, label, key, c.label, c.key)
		}
	}
}

func TestExtractSeason_FirstMatchWins(t *testing.T) {
	t.Parallel()

	label, key, err := ExtractSeason("2019_2020_e_2021_2022")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if label != "2019/2020" || key != "2019_2020" {
		t.Fatalf("got (%q, %q)", label, key)
	}
}

func TestExtractSeason_NotFound(t *testing.T) {
	t.Parallel()

	cases := []string{
		"report_finale",
		"1999_2000",      // 年份必须以 20 开头
		"2021a2022",      // 分隔符无效
		"stagione_2021",  // 只有一个年份
	}
	for _, stem := range cases {
		_, _, err := ExtractSeason(stem)
		if !errors.Is(err, ErrSeasonPatternNotFound) {
			t.Fatalf("%q: expected ErrSeasonPatternNotFound, got %v", stem, err)
		}
	}
}
