package i18n

import (
	"embed"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/amoylab/sessiongate/internal/common/cnst"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var locales embed.FS

// I18n manages internationalization and translations
type I18n struct {
	bundle      *i18n.Bundle
	defaultLang language.Tag
}

// NewI18n creates a new I18n instance with the specified default language
func NewI18n(defaultLang language.Tag) *I18n {
	bundle := i18n.NewBundle(defaultLang)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	return &I18n{
		bundle:      bundle,
		defaultLang: defaultLang,
	}
}

// NewDefault returns a translator loaded with the built-in en and zh messages.
func NewDefault() (*I18n, error) {
	t := NewI18n(language.English)
	if err := t.LoadEmbedded(); err != nil {
		return nil, err
	}
	return t, nil
}

// LoadEmbedded loads the message files compiled into the binary
func (i *I18n) LoadEmbedded() error {
	entries, err := locales.ReadDir("locales")
	if err != nil {
		return fmt.Errorf("failed to read embedded locales: %w", err)
	}
	for _, e := range entries {
		p := path.Join("locales", e.Name())
		data, err := locales.ReadFile(p)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", p, err)
		}
		if _, err := i.bundle.ParseMessageFileBytes(data, e.Name()); err != nil {
			return fmt.Errorf("failed to parse %s: %w", p, err)
		}
	}
	return nil
}

// LoadTranslations loads translation files from the specified directory.
// Messages found there override the embedded ones.
func (i *I18n) LoadTranslations(translationsDir string) error {
	files, err := os.ReadDir(translationsDir)
	if err != nil {
		return fmt.Errorf("failed to read translations directory: %w", err)
	}

	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".toml") {
			continue
		}
		if _, err := i.bundle.LoadMessageFile(filepath.Join(translationsDir, file.Name())); err != nil {
			return fmt.Errorf("failed to load %s: %w", file.Name(), err)
		}
	}

	return nil
}

// Translate returns a localized string for the given message ID and language.
// The message ID itself is returned when no translation exists.
func (i *I18n) Translate(msgID string, lang string, templateData map[string]any) string {
	localizer := i18n.NewLocalizer(i.bundle, NormalizeLang(lang), i.defaultLang.String())

	lc := &i18n.LocalizeConfig{MessageID: msgID}
	if len(templateData) > 0 {
		lc.TemplateData = templateData
	}

	msg, err := localizer.Localize(lc)
	if err != nil {
		return msgID
	}
	return msg
}

// NormalizeLang maps a language tag like "zh-CN" onto a supported language,
// falling back to the default.
func NormalizeLang(lang string) string {
	code := strings.ToLower(strings.TrimSpace(strings.Split(lang, "-")[0]))
	switch code {
	case cnst.LangEN, cnst.LangZH:
		return code
	default:
		return cnst.LangDefault
	}
}
