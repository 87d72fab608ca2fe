package markup

import (
	jj "github.com/cloudfoundry/jibber_jabber"
	"golang.org/x/text/language"
)

// DefaultLanguage is the language inserted into converted documents.
const DefaultLanguage = "he"

// AutoLanguage asks for the language to be derived from the user's locale.
const AutoLanguage = "auto"

// LanguageFromEnvironment derives the value for the lang attribute from the
// user's locale. Only languages written in Hebrew script are accepted
// (Hebrew, Yiddish); for every other locale DefaultLanguage is returned.
func LanguageFromEnvironment() string {
	userLocale, err := jj.DetectIETF()
	if err != nil {
		T().Errorf("%v", err)
		T().Infof("using default language %v", DefaultLanguage)
		return DefaultLanguage
	}
	T().Infof("detected user locale %v", userLocale)
	return languageForLocale(userLocale)
}

// ResolveLanguage maps AutoLanguage to the language of the user's locale and
// returns every other value unchanged.
func ResolveLanguage(lang string) string {
	if lang == AutoLanguage {
		return LanguageFromEnvironment()
	}
	return lang
}

func languageForLocale(locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		return DefaultLanguage
	}
	base, _ := tag.Base()
	switch base.String() {
	case "yi", "ji": // Yiddish, with its deprecated code
		return "yi"
	}
	return DefaultLanguage
}
