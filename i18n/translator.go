package i18n

// Translator retrieves localized messages for violation codes.
// data provides optional metadata to embed in the message (for example,
// "expected", "property" or "value").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "invalid_type":
			return withData("型が不正です", "期待する型", data["expected"])
		case "pattern":
			return withData("パターンに一致しません", "パターン", data["pattern"])
		case "required":
			return withData("必須プロパティが不足しています", "プロパティ", data["property"])
		case "unknown_key":
			return withData("未知のキーです", "キー", data["keys"])
		case "invalid_format":
			return withData("日付の形式が不正です", "値", data["value"])
		case "constraint":
			return "制約を満たしていません"
		}
	default: // "en"
		switch code {
		case "invalid_type":
			return withData("invalid type", "expected", data["expected"])
		case "pattern":
			return withData("pattern mismatch", "pattern", data["pattern"])
		case "required":
			return withData("required property missing", "property", data["property"])
		case "unknown_key":
			return withData("unknown key", "keys", data["keys"])
		case "invalid_format":
			return withData("incorrect date format", "got", data["value"])
		case "constraint":
			return "constraint not satisfied"
		}
	}
	return code
}

func withData(msg, label, v string) string {
	if v == "" {
		return msg
	}
	return msg + " (" + label + ": " + v + ")"
}

// Language returns the built-in Translator for lang ("en"/"ja"). Unknown
// languages fall back to English.
func Language(lang string) Translator {
	if lang != "ja" {
		lang = "en"
	}
	return dictTranslator{lang: lang}
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the process-wide Translator language ("en"/"ja").
func SetLanguage(lang string) {
	currentTranslator = Language(lang)
}

// SetTranslator replaces the process-wide Translator (not limited to the
// dictionary version). nil restores English.
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// Current returns the process-wide Translator.
func Current() Translator { return currentTranslator }

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
