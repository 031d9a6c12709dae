package meal

import "strings"

// 單位別名對照表，key 一律小寫
var unitAliases = map[string]string{
	"gram":        "g",
	"grams":       "g",
	"gam":         "g",
	"kilogram":    "kg",
	"kilograms":   "kg",
	"milligram":   "mg",
	"milligrams":  "mg",
	"milliliter":  "ml",
	"milliliters": "ml",
	"liter":       "l",
	"liters":      "l",
}

// 重量/容量類單位，營養值以每 100 g／100 ml 為基準
var weightOrVolumeUnits = map[string]bool{
	"g":  true,
	"kg": true,
	"mg": true,
	"ml": true,
	"l":  true,
}

// NormalizeUnit 正規化單位字串：小寫、去空白、套用別名
// 認不得的單位（例如「quả」「miếng」）原樣放行，不報錯
func NormalizeUnit(raw string) string {
	unit := strings.ToLower(strings.TrimSpace(raw))
	if canonical, ok := unitAliases[unit]; ok {
		return canonical
	}
	return unit
}

// IsWeightOrVolume 判斷單位是否屬於重量/容量類，其餘視為可數單位
func IsWeightOrVolume(unit string) bool {
	return weightOrVolumeUnits[NormalizeUnit(unit)]
}

// conversionFactor 換算成 g／ml 的倍率，只對重量/容量類單位有意義
func conversionFactor(unit string) float64 {
	switch NormalizeUnit(unit) {
	case "kg", "l":
		return 1000
	case "mg":
		return 0.001
	default: // g、ml
		return 1
	}
}
