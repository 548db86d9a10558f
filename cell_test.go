package xlsql_test

import (
	"testing"
	"time"

	"github.com/rushairer/xlsql"
)

func TestCell_Arg(t *testing.T) {
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		cell xlsql.Cell
		want any
	}{
		{xlsql.NullCell(), nil},
		{xlsql.TextCell("hi"), "hi"},
		{xlsql.BoolCell(true), true},
		{xlsql.TimeCell(ts), ts},
		// 整数值绑定为 int64
		{xlsql.NumberCell(42), int64(42)},
		{xlsql.NumberCell(-7), int64(-7)},
		{xlsql.NumberCell(3.14), 3.14},
		// 超出精确整数范围的保持浮点
		{xlsql.NumberCell(1e60), 1e60},
	}

	for _, tc := range cases {
		got := tc.cell.Arg()
		if got != tc.want {
			t.Errorf("Arg() of %+v = %v (%T), want %v (%T)", tc.cell, got, got, tc.want, tc.want)
		}
	}
}

func TestCell_String(t *testing.T) {
	cases := []struct {
		cell xlsql.Cell
		want string
	}{
		{xlsql.NullCell(), ""},
		{xlsql.TextCell("Name"), "Name"},
		{xlsql.NumberCell(2), "2"},
		{xlsql.NumberCell(2.5), "2.5"},
		{xlsql.BoolCell(false), "false"},
	}

	for _, tc := range cases {
		got := tc.cell.String()
		if got != tc.want {
			t.Errorf("String() of %+v = %q, want %q", tc.cell, got, tc.want)
		}
	}
}

func TestRow_IsBlank(t *testing.T) {
	if !(xlsql.Row{}).IsBlank() {
		t.Error("Empty row should be blank")
	}
	if !(xlsql.Row{xlsql.NullCell(), xlsql.NullCell()}).IsBlank() {
		t.Error("All-null row should be blank")
	}
	if (xlsql.Row{xlsql.NullCell(), xlsql.TextCell("x")}).IsBlank() {
		t.Error("Row with a value should not be blank")
	}
	// 空字符串文本单元格不是空单元格
	if (xlsql.Row{xlsql.TextCell("")}).IsBlank() {
		t.Error("Text cell should count as a value even when empty")
	}
}
