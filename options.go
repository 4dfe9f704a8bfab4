package mongojsonschema

import (
	"log/slog"

	"github.com/cainus/mongojsonschema/i18n"
)

// Option configures a Schema.
type Option func(*config)

type config struct {
	name       string
	additional bool
	logger     *slog.Logger
	translator i18n.Translator
}

func defaultConfig() config {
	return config{logger: slog.Default()}
}

// WithName sets the schema name used in error summaries and log records.
func WithName(name string) Option {
	return func(c *config) { c.name = name }
}

// WithAdditionalProperties sets additionalProperties on the root object New
// builds. The default is false. FromStandard ignores it.
func WithAdditionalProperties(allow bool) Option {
	return func(c *config) { c.additional = allow }
}

// WithLogger sets the logger for debug records. nil keeps slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTranslator sets the Translator for violation messages. Without it the
// process-wide i18n translator is used.
func WithTranslator(tr i18n.Translator) Option {
	return func(c *config) { c.translator = tr }
}
