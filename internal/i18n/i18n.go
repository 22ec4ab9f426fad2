// Copyright (c) 2026 lxcui Team
// lxcui - terminal LXC container manager
// This source code is licensed under the MIT license found in the LICENSE file.

// Package i18n translates user-visible labels. Translations are embedded
// YAML files named active.<lang>.yaml; unknown ids translate to themselves.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localeFS embed.FS

var (
	mu        sync.RWMutex
	bundle    *i18n.Bundle
	localizer *i18n.Localizer
	current   string
)

// Init loads every embedded locale and selects lang. An unknown language
// falls back to English.
func Init(lang string) {
	b := i18n.NewBundle(language.English)
	b.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	files, _ := fs.ReadDir(localeFS, "locales")
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		data, err := localeFS.ReadFile("locales/" + f.Name())
		if err != nil {
			continue
		}
		_, _ = b.ParseMessageFileBytes(data, f.Name())
	}

	mu.Lock()
	defer mu.Unlock()
	bundle = b
	current = lang
	localizer = i18n.NewLocalizer(b, lang)
}

// SetLang changes the active language.
func SetLang(lang string) {
	Init(lang)
}

// GetLang returns the language passed to the last Init.
func GetLang() string {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// GetAvailableLocales maps each embedded language tag to its own name for
// it, e.g. "de" to "Deutsch".
func GetAvailableLocales() map[string]string {
	if loaded() == nil {
		Init("en")
	}
	mu.RLock()
	defer mu.RUnlock()
	out := make(map[string]string)
	for _, tag := range bundle.LanguageTags() {
		out[tag.String()] = display.Self.Name(tag)
	}
	return out
}

// Languages returns the embedded language tags sorted.
func Languages() []string {
	langs := make([]string, 0)
	for tag := range GetAvailableLocales() {
		langs = append(langs, tag)
	}
	sort.Strings(langs)
	return langs
}

func loaded() *i18n.Localizer {
	mu.RLock()
	defer mu.RUnlock()
	return localizer
}

// T translates messageID. A single map argument is passed as template data;
// other arguments are applied with fmt.Sprintf to the translated text.
func T(messageID string, args ...any) string {
	l := loaded()
	if l == nil {
		Init("en")
		l = loaded()
	}

	cfg := &i18n.LocalizeConfig{MessageID: messageID}
	if len(args) == 1 {
		if data, ok := args[0].(map[string]any); ok {
			cfg.TemplateData = data
			args = nil
		}
	}
	msg, err := l.Localize(cfg)
	if err != nil {
		msg = messageID
	}
	if len(args) > 0 && strings.Contains(msg, "%") {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}
