package xlsql_test

import (
	"testing"

	"github.com/rushairer/xlsql"
)

func TestNormalize_BasicForms(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"Test Name", "test_name"},
		{"  no leading spaces", "no_leading_spaces"},
		{"Filters punctuation!", "filters_punctuation"},
		{"Replaces-hyphens", "replaces_hyphens"},
		{"ID (SECRET)", "id_secret"},
		{"Name", "name"},
		{"ID", "id"},
		{"Address", "address"},
		{"First-Name", "first_name"},
		{"a/b", "a_b"},
		{"a\\b", "a_b"},
		{"a+b", "a_b"},
		{"Total (USD)", "total_usd"},
		{"What?!", "what"},
		{"rate%", "rate"},
		{"x=y", "xy"},
		{"a.b,c", "abc"},
		{"already_normal", "already_normal"},
	}

	for _, tc := range cases {
		got := xlsql.Normalize(tc.raw)
		if got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestNormalize_CollapsesRuns(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		// 连续的空白与连接符折叠为单个下划线
		{"a   b", "a_b"},
		{"a - b", "a_b"},
		{"a___b", "a_b"},
		{"a -_/ b", "a_b"},
	}

	for _, tc := range cases {
		got := xlsql.Normalize(tc.raw)
		if got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestNormalize_TrimsEdges(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		// 首尾不残留下划线
		{" leading", "leading"},
		{"trailing ", "trailing"},
		{"_wrapped_", "wrapped"},
		{"  both  ", "both"},
		{"- dashed -", "dashed"},
	}

	for _, tc := range cases {
		got := xlsql.Normalize(tc.raw)
		if got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestNormalize_EmptyFallback(t *testing.T) {
	cases := []string{"", "   ", "---", "()", "?!.,", "_ _"}

	for _, raw := range cases {
		got := xlsql.Normalize(raw)
		if got != xlsql.EmptyIdentifier {
			t.Errorf("Normalize(%q) = %q, want %q", raw, got, xlsql.EmptyIdentifier)
		}
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	// 非退化输入上规范化是幂等的
	inputs := []string{"Test Name", "a - b", "Total (USD)", "already_normal", "ID", "x y z"}

	for _, raw := range inputs {
		once := xlsql.Normalize(raw)
		twice := xlsql.Normalize(once)
		if once != twice {
			t.Errorf("Normalize should be idempotent: %q -> %q -> %q", raw, once, twice)
		}
	}
}
