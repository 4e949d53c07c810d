package service

import (
	"strings"
	"unicode"
)

// ClassKind 班级名称的语法类别，决定课表合并策略
type ClassKind int

const (
	// ClassKindOther homeroom 或其他格式的名称（如 "101"、"7B"）
	ClassKindOther ClassKind = iota
	// ClassKindEnglish 英文班格式："G<年级数字> <首字母大写的纯字母名>"
	ClassKindEnglish
)

// ClassifyClassName 仅凭名称字符串判断班级类别，不查询任何表。
//
// 判定规则：按第一个空格拆成 (年级段, 名称段) 恰好两段；
// 年级段须以 G 开头且其余全为数字；名称段去除空格后须全为
// 字母且首字母大写。两者都满足才是英文班。
func ClassifyClassName(name string) ClassKind {
	gradeToken, nameToken, found := strings.Cut(name, " ")
	if !found || gradeToken == "" || nameToken == "" {
		return ClassKindOther
	}

	if !strings.HasPrefix(gradeToken, "G") || len(gradeToken) < 2 {
		return ClassKindOther
	}
	for _, r := range gradeToken[1:] {
		if r < '0' || r > '9' {
			return ClassKindOther
		}
	}

	compact := strings.ReplaceAll(nameToken, " ", "")
	if compact == "" {
		return ClassKindOther
	}
	for _, r := range compact {
		if !unicode.IsLetter(r) {
			return ClassKindOther
		}
	}
	first := []rune(compact)[0]
	if !unicode.IsUpper(first) {
		return ClassKindOther
	}

	return ClassKindEnglish
}
