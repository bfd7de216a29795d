package naam

import (
	"errors"
	"fmt"
)

// Language selects which trained model and featurization ruleset applies.
type Language string

const (
	LangEnglish Language = "eng"
	LangHindi   Language = "hin"
)

var ErrInvalidLanguage = errors.New("invalid language")

// ParseLanguage validates a language code before any model access happens.
func ParseLanguage(lang string) (Language, error) {
	switch Language(lang) {
	case LangEnglish, LangHindi:
		return Language(lang), nil
	}
	return "", fmt.Errorf("%w: %q (use %q or %q)", ErrInvalidLanguage, lang, LangEnglish, LangHindi)
}
