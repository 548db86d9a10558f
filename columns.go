package xlsql

import "fmt"

// ResolveColumnNames 将一张工作表的原始表头解析为互不重复的规范化列名。
// 返回序列与 headings 等长、顺序一致。规范化后的同名冲突按 base_2、base_3 …
// 依次消解，后缀计数绑定在未加后缀的基础名上；首次出现的名字不加后缀。
// 每次冲突通过 log 记录一条告警。
func ResolveColumnNames(sheetName string, headings []string, log Logger) []string {
	if log == nil {
		log = NopLogger{}
	}

	used := make(map[string]bool, len(headings))
	nextSuffix := make(map[string]int, len(headings))
	names := make([]string, 0, len(headings))

	for _, heading := range headings {
		base := Normalize(heading)
		name := base
		for used[name] {
			suffix, ok := nextSuffix[base]
			if !ok {
				suffix = 2
			}
			name = fmt.Sprintf("%s_%d", base, suffix)
			nextSuffix[base] = suffix + 1
			log.Warnf("sheet %q: duplicate heading %q resolved to %q", sheetName, heading, name)
		}
		used[name] = true
		names = append(names, name)
	}

	return names
}

// SelectColumns 计算经过列过滤后保留的列下标，升序且保持原始左右顺序。
// 过滤器为空时选择全部列；否则原始表头或规范化列名命中任一过滤项即保留。
// 返回空切片表示该工作表应整体跳过（不建表、不再读行）。
func SelectColumns(headings []string, resolved []string, columnFilters []string) []int {
	indices := make([]int, 0, len(resolved))
	if len(columnFilters) == 0 {
		for i := range resolved {
			indices = append(indices, i)
		}
		return indices
	}

	want := newStringSet(columnFilters)
	for i, name := range resolved {
		if want.contains(headings[i]) || want.contains(name) {
			indices = append(indices, i)
		}
	}
	return indices
}

// SheetInScope 判断工作表是否在导入范围内：
// 过滤器为空时全部工作表在范围内；否则原始表名或规范化表名命中即可。
func SheetInScope(sheetName string, sheetFilters []string) bool {
	if len(sheetFilters) == 0 {
		return true
	}
	want := newStringSet(sheetFilters)
	return want.contains(sheetName) || want.contains(Normalize(sheetName))
}

type stringSet map[string]struct{}

func newStringSet(items []string) stringSet {
	set := make(stringSet, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}

func (s stringSet) contains(item string) bool {
	_, ok := s[item]
	return ok
}
