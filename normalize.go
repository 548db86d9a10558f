package xlsql

import "strings"

// EmptyIdentifier 规范化结果为空时的兜底标识符
const EmptyIdentifier = "EMPTY"

// 规范化时直接丢弃的标点
const ignoredRunes = "()[]{}<>`~!?@#$%^&*,.=:;|"

// 规范化时统一替换为下划线的字符
const replacedRunes = "+-/\\ "

// Normalize 将任意表头或表名文本规范化为可直接内嵌生成 SQL 的裸标识符：
// 小写、丢弃标点、空白与连接符折叠为单个下划线、去除首尾下划线。
// 结果为空时返回 "EMPTY"。
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))

	// 下划线连写在构建期折叠，首部由 b.Len() 守卫剔除
	lastUnderscore := false
	for _, r := range strings.ToLower(raw) {
		switch {
		case strings.ContainsRune(ignoredRunes, r):
			// 丢弃
		case r == '_' || strings.ContainsRune(replacedRunes, r):
			if !lastUnderscore && b.Len() > 0 {
				b.WriteByte('_')
				lastUnderscore = true
			}
		default:
			b.WriteRune(r)
			lastUnderscore = false
		}
	}

	out := strings.TrimSuffix(b.String(), "_")
	if out == "" {
		return EmptyIdentifier
	}
	return out
}
