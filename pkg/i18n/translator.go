package i18n

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"regexp"
	"slices"
	"strings"

	"golang.org/x/text/language"

	"github.com/unus-solutions/propdocs/pkg/logger"
)

// DefaultLanguage is used when nothing else is configured.
const DefaultLanguage = "pt"

// Translator resolves keys to localized strings. It is immutable after
// construction and safe for concurrent use.
type Translator struct {
	translations   map[string]map[string]any
	defaultLang    string
	fallbackToKey  bool
	missingLogMode bool
	logger         *slog.Logger

	langs   []string
	tags    []language.Tag
	matcher language.Matcher
}

type Option func(*Translator)

// WithDefaultLanguage sets the language used when negotiation finds no match.
func WithDefaultLanguage(lang string) Option {
	return func(t *Translator) {
		if lang != "" {
			t.defaultLang = lang
		}
	}
}

// WithFallbackToKey controls whether a missing translation renders as its key. Default true.
func WithFallbackToKey(fallback bool) Option {
	return func(t *Translator) { t.fallbackToKey = fallback }
}

func WithLogger(l *slog.Logger) Option {
	return func(t *Translator) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithMissingTranslationsLogging logs a warning for every missing key.
func WithMissingTranslationsLogging(enabled bool) Option {
	return func(t *Translator) { t.missingLogMode = enabled }
}

func NewTranslator(ctx context.Context, adapter TranslationAdapter, opts ...Option) (*Translator, error) {
	if adapter == nil {
		return nil, ErrNilAdapter
	}

	t := &Translator{
		defaultLang:   DefaultLanguage,
		fallbackToKey: true,
		logger:        logger.Discard(),
	}
	for _, opt := range opts {
		opt(t)
	}

	translations, err := adapter.Load(ctx)
	if err != nil {
		return nil, err
	}
	if len(translations) == 0 {
		return nil, ErrNoTranslations
	}
	for lang, trans := range translations {
		if lang == "" || trans == nil {
			return nil, fmt.Errorf("%w: language %q", ErrInvalidStructure, lang)
		}
	}
	t.translations = translations

	// The default language goes first so the matcher falls back to it.
	t.langs = slices.Sorted(maps.Keys(translations))
	if i := slices.Index(t.langs, t.defaultLang); i > 0 {
		t.langs = append([]string{t.defaultLang}, slices.Delete(t.langs, i, i+1)...)
	}
	t.tags = make([]language.Tag, 0, len(t.langs))
	for _, lang := range t.langs {
		t.tags = append(t.tags, language.Make(lang))
	}
	t.matcher = language.NewMatcher(t.tags)

	t.logger.InfoContext(ctx, "translations loaded",
		slog.Any("languages", t.langs),
		slog.String("default", t.defaultLang),
	)
	return t, nil
}

// SupportedLanguages returns the loaded language codes, default first.
func (t *Translator) SupportedLanguages() []string {
	return slices.Clone(t.langs)
}

func (t *Translator) DefaultLanguage() string {
	return t.defaultLang
}

// Match picks the best loaded language for the given preferences, which may
// be language tags or a raw Accept-Language header value. Unknown or
// unparsable input yields the default language.
func (t *Translator) Match(preferences ...string) string {
	var wanted []language.Tag
	for _, p := range preferences {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		tags, _, err := language.ParseAcceptLanguage(p)
		if err != nil {
			continue
		}
		wanted = append(wanted, tags...)
	}
	if len(wanted) == 0 {
		return t.defaultLang
	}

	_, idx, conf := t.matcher.Match(wanted...)
	if conf == language.No || idx < 0 || idx >= len(t.langs) {
		return t.defaultLang
	}
	return t.langs[idx]
}

// HasTranslation reports whether key resolves to a string in lang.
func (t *Translator) HasTranslation(lang, key string) bool {
	v, ok := t.lookup(lang, key)
	if !ok {
		return false
	}
	_, ok = v.(string)
	return ok
}

// T translates key for lang. args are name/value pairs substituted into
// "%{name}" placeholders; an odd trailing argument is ignored. Unknown
// languages use the default language.
func (t *Translator) T(lang, key string, args ...string) string {
	if _, ok := t.translations[lang]; !ok {
		lang = t.defaultLang
	}

	val, ok := t.lookup(lang, key)
	if s, isString := val.(string); ok && isString {
		return sprintf(s, args)
	}

	if t.missingLogMode {
		t.logger.Warn("translation not found", slog.String("lang", lang), slog.String("key", key))
	}
	if t.fallbackToKey {
		return sprintf(key, args)
	}
	return ""
}

// Td is T with an explicit fallback template.
func (t *Translator) Td(lang, key, defaultValue string, args ...string) string {
	if !t.HasTranslation(lang, key) {
		return sprintf(defaultValue, args)
	}
	return t.T(lang, key, args...)
}

// Tc translates using the language stored in ctx by Middleware.
func (t *Translator) Tc(ctx context.Context, key string, args ...string) string {
	return t.T(GetLocale(ctx), key, args...)
}

func (t *Translator) lookup(lang, key string) (any, bool) {
	current, ok := t.translations[lang]
	if !ok {
		return nil, false
	}

	parts := strings.Split(key, ".")
	for i, part := range parts {
		val, ok := current[part]
		if !ok {
			return nil, false
		}
		if i == len(parts)-1 {
			return val, true
		}
		next, ok := val.(map[string]any)
		if !ok {
			return nil, false
		}
		current = next
	}
	return nil, false
}

var paramRegex = regexp.MustCompile(`%\{([^}]+)\}`)

func sprintf(tmpl string, args []string) string {
	if len(args) < 2 {
		return tmpl
	}
	params := make(map[string]string, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		params[args[i]] = args[i+1]
	}
	return paramRegex.ReplaceAllStringFunc(tmpl, func(match string) string {
		if val, ok := params[match[2:len(match)-1]]; ok {
			return val
		}
		return match
	})
}
