// Package i18n localizes i18nx's own user-facing messages.
//
// A tool that reports on hardcoded strings should not hardcode its own:
// CLI strings go through T()/N(), backed by gotext catalogs embedded in
// the binary. With no matching catalog both functions pass the original
// text through, standard gettext behavior.
package i18n

import (
	"embed"
	"os"
	"strings"

	"github.com/leonelquinteros/gotext"
)

// catalogs embeds the translation files, laid out as
// locales/{lang}/LC_MESSAGES/i18nx.po.
//
//go:embed all:locales
var catalogs embed.FS

// domain is the gettext domain name.
const domain = "i18nx"

var locale *gotext.Locale

// Init loads the catalog for lang, auto-detecting from the environment
// when lang is empty. Call once at startup, before any T or N call.
func Init(lang string) {
	if lang == "" {
		lang = detectLanguage()
	}

	locale = gotext.NewLocaleFSWithPath(lang, catalogs, "locales")
	locale.AddDomain(domain)
	locale.SetDomain(domain)
}

// T translates a message, returning it unchanged when no translation
// exists.
func T(msgid string) string {
	if locale == nil {
		return msgid
	}
	return locale.Get(msgid)
}

// N translates a message with plural forms, selecting by n.
func N(singular, plural string, n int) string {
	if locale == nil {
		if n == 1 {
			return singular
		}
		return plural
	}
	return locale.GetN(singular, plural, n)
}

// detectLanguage follows the GNU gettext environment conventions:
// LANGUAGE > LC_ALL > LC_MESSAGES > LANG, with "C"/"POSIX" meaning no
// translation.
func detectLanguage() string {
	for _, env := range []string{"LANGUAGE", "LC_ALL", "LC_MESSAGES", "LANG"} {
		val := os.Getenv(env)
		if val == "" {
			continue
		}
		// LANGUAGE may be a colon-separated preference list.
		if env == "LANGUAGE" {
			val, _, _ = strings.Cut(val, ":")
		}
		// Strip the encoding suffix ("zh_CN.UTF-8" -> "zh_CN").
		val, _, _ = strings.Cut(val, ".")
		if val == "C" || val == "POSIX" || val == "" {
			continue
		}
		return val
	}
	return "en"
}
