package schema

import (
	"reflect"
	"testing"
)

func TestMissingColumns_AllPresent(t *testing.T) {
	t.Parallel()

	missing := MissingColumns(RequiredColumns)
	if len(missing) != 0 {
		t.Fatalf("expected no missing columns, got %v", missing)
	}
}

func TestMissingColumns_CanonicalOrder(t *testing.T) {
	t.Parallel()

	columns := make([]string, 0, len(RequiredColumns))
	for _, c := range RequiredColumns {
		if c == "COD" || c == "ID" {
			continue
		}
		columns = append(columns, c)
	}
	// 额外列不影响结果
	columns = append(columns, "Extra1", "Extra2")

	missing := MissingColumns(columns)
	if !reflect.DeepEqual(missing, []string{"COD", "ID"}) {
		t.Fatalf("unexpected missing: %v", missing)
	}
}

func TestMissingColumns_EmptyHeader(t *testing.T) {
	t.Parallel()

	missing := MissingColumns(nil)
	if !reflect.DeepEqual(missing, RequiredColumns) {
		t.Fatalf("expected all %d columns missing, got %d", len(RequiredColumns), len(missing))
	}
}

func TestColumnSets_Disjoint(t *testing.T) {
	t.Parallel()

	for c := range FloatColumns {
		if IntColumns[c] || StringColumns[c] {
			t.Fatalf("column %q in more than one typed set", c)
		}
	}
	for c := range IntColumns {
		if StringColumns[c] {
			t.Fatalf("column %q in more than one typed set", c)
		}
	}
}
