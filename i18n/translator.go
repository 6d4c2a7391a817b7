package i18n

import "strings"

// Message keys that are not issue codes.
const (
	KeyExpectedObject   = "expected_object"
	KeyExclusiveMinimum = "too_small_exclusive"
	KeyMotionSweepFloor = "motion_sweep_floor"
)

// Translator retrieves localized messages for Issue codes.
// data provides optional values to embed in the message; a template refers
// to them as {name} (for example "{expected}" or "{got}").
type Translator interface {
	Message(key string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var dictionaries = map[string]map[string]string{
	"en": {
		"invalid_type":      "expected type {expected}, received {got}",
		"invalid_enum":      "expected one of {enum}, received {got}",
		"pattern":           "value '{got}' does not match pattern {pattern}",
		"too_small":         "value {got} below minimum {minimum}",
		KeyExclusiveMinimum: "value {got} must be greater than {exclusiveMinimum}",
		"required":          "missing required property",
		"unknown_key":       "additional properties are not allowed",
		"too_short":         "expected at least {minItems} items",
		"duplicate_key":     "key '{key}' duplicated",
		"duplicate_value":   "value {got} already used by element {first}",
		"parse_error":       "parse error: {error}",
		KeyExpectedObject:   "expected object",
		KeyMotionSweepFloor: "must be >= {minimum} seconds when motionOptIn is true",
	},
	"ja": {
		"invalid_type":      "型が不正です (期待: {expected}, 実際: {got})",
		"invalid_enum":      "許可されていない値です (候補: {enum}, 実際: {got})",
		"pattern":           "値 '{got}' がパターン {pattern} に一致しません",
		"too_small":         "値 {got} が最小値 {minimum} を下回っています",
		KeyExclusiveMinimum: "値 {got} は {exclusiveMinimum} より大きくなければなりません",
		"required":          "必須プロパティが不足しています",
		"unknown_key":       "未知のキーです",
		"too_short":         "要素数が {minItems} 未満です",
		"duplicate_key":     "キー '{key}' が重複しています",
		"duplicate_value":   "値 {got} は要素 {first} で既に使われています",
		"parse_error":       "解析エラー: {error}",
		KeyExpectedObject:   "オブジェクトが必要です",
		KeyMotionSweepFloor: "motionOptIn が true の場合は {minimum} 秒以上が必要です",
	},
}

func (t dictTranslator) Message(key string, data map[string]string) string {
	tmpl, ok := dictionaries[t.lang][key]
	if !ok {
		return key
	}
	if len(data) == 0 {
		return tmpl
	}
	pairs := make([]string, 0, 2*len(data))
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given key using the current Translator.
func T(key string, data map[string]string) string { return currentTranslator.Message(key, data) }
