package i18n

import "errors"

var (
	ErrNilAdapter           = errors.New("i18n: adapter is nil")
	ErrNoTranslations       = errors.New("i18n: no translations loaded")
	ErrInvalidStructure     = errors.New("i18n: invalid translation structure")
	ErrFailedToParseYAML    = errors.New("i18n: failed to parse YAML content")
	ErrYAMLParsingCancelled = errors.New("i18n: yaml parsing cancelled")
	ErrFailedToReadFile     = errors.New("i18n: failed to read translation file")
	ErrFailedToReadDir      = errors.New("i18n: failed to read translation directory")
	ErrLoadingCancelled     = errors.New("i18n: loading translations cancelled")
)
