package textutil

import "strings"

// 縮寫單位對應的完整讀法；查無對應時原樣返回
var spokenUnits = map[string]string{
	"g":    "gram",
	"kg":   "kilogram",
	"mg":   "miligram",
	"tsp":  "tea spoon",
	"dsp":  "dessert spoon",
	"tbsp": "table spoon",
	"ml":   "mililiter",
	"l":    "liter",
}

// Articulate 將縮寫的計量單位轉為完整讀法（不分大小寫）
func Articulate(unit string) string {
	if spoken, ok := spokenUnits[strings.ToLower(unit)]; ok {
		return spoken
	}
	return unit
}

// Pluralize 數量大於 1 時返回 "s"，否則返回空字串。
// 0 或負數視為單數，沿用原始行為。
func Pluralize(quantity float64) string {
	if quantity > 1 {
		return "s"
	}
	return ""
}
