// Package textutil 提供食譜文字的清理與朗讀單位轉換工具
package textutil

import (
	"regexp"
	"strings"
)

var (
	boldTagPattern        = regexp.MustCompile(`(?i)</?b>`)
	leadingNumberPattern  = regexp.MustCompile(`^\d+\.?\s*`)
	trailingNumberPattern = regexp.MustCompile(`\s+\d+$`)
	gluedSentencePattern  = regexp.MustCompile(`\.([A-Za-z])`)
)

// TruncateToFirstSentence 截取到第一個句號（含句號）；若沒有句號則原樣返回
func TruncateToFirstSentence(text string) string {
	if idx := strings.Index(text, "."); idx >= 0 {
		return text[:idx+1]
	}
	return text
}

// StripBoldTags 移除所有粗體標籤（不分大小寫）
func StripBoldTags(text string) string {
	return boldTagPattern.ReplaceAllString(text, "")
}

// SanitizeInstructionStep 清理單一步驟文字：
// 1. 將 "&" 替換為 "and"（避免之後拼進 URL 時破壞 query string）
// 2. 去除開頭的數字編號
// 3. 去除結尾的數字編號並補上句號
// 4. 在句號緊接字母處補一個空格
// 5. 確保以句號結尾
func SanitizeInstructionStep(text string) string {
	s := strings.ReplaceAll(text, "&", "and")
	s = leadingNumberPattern.ReplaceAllString(s, "")
	s = trailingNumberPattern.ReplaceAllString(s, ".")
	s = gluedSentencePattern.ReplaceAllString(s, ". $1")
	if !strings.HasSuffix(s, ".") {
		s += "."
	}
	return s
}
