package main

import (
	"reflect"
	"testing"
)

func TestSplitFileList(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"a.xlsx", []string{"a.xlsx"}},
		{`"C:\dati\a.xlsx";"C:\dati\b.xls"`, []string{`C:\dati\a.xlsx`, `C:\dati\b.xls`}},
		{"a.xlsx, b.xlsx\nc.xls", []string{"a.xlsx", "b.xlsx", "c.xls"}},
		{" ; ; ", nil},
	}

	for _, c := range cases {
		got := splitFileList(c.in)
		if len(got) == 0 && len(c.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, c.want) {
			t.Fatalf("splitFileList(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}
