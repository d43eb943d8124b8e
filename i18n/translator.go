package i18n

import "strings"

// Translator retrieves localized messages for error codes.
// data provides optional metadata to embed in the message (for example,
// "path" or "attribute").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	var msg string
	switch t.lang {
	case "ja":
		switch code {
		case "spec_not_found":
			msg = "スキーマに {path} の定義がありません"
		case "missing_identifier":
			msg = "識別属性 {attribute} がありません"
		case "serialization":
			msg = "属性 {attribute} を JSON に変換できません"
		case "invalid_shape":
			msg = "{attribute} は子オブジェクトのリストである必要があります"
		case "already_attached":
			msg = "オブジェクトは既に親に追加されています"
		case "detached":
			msg = "オブジェクトが親に追加されていません"
		}
	default: // "en"
		switch code {
		case "spec_not_found":
			msg = "no schema entry for {path}"
		case "missing_identifier":
			msg = "identifying attribute {attribute} is missing"
		case "serialization":
			msg = "attribute {attribute} cannot be rendered as JSON"
		case "invalid_shape":
			msg = "{attribute} must be a list of child objects"
		case "already_attached":
			msg = "object is already attached to a parent"
		case "detached":
			msg = "object is not attached to a tree"
		}
	}
	if msg == "" {
		return code
	}
	for k, v := range data {
		msg = strings.ReplaceAll(msg, "{"+k+"}", v)
	}
	return msg
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

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
