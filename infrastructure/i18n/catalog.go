// Package i18n provides localized interface messages.
package i18n

import (
	"fmt"

	"github.com/helixml/splist/domain/service"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

var translations = map[language.Tag]map[string]string{
	language.English: {
		service.MessageNoSubpages:      "%s has no subpages to list.",
		service.MessageNoSubpagesPlain: "There are no subpages to list.",
		service.MessageDebug:           "Invalid value for option \"%s\".",
	},
	language.German: {
		service.MessageNoSubpages:      "%s hat keine Unterseiten.",
		service.MessageNoSubpagesPlain: "Es gibt keine Unterseiten.",
		service.MessageDebug:           "Ungültiger Wert für die Option „%s“.",
	},
	language.French: {
		service.MessageNoSubpages:      "%s n’a aucune sous-page à lister.",
		service.MessageNoSubpagesPlain: "Il n’y a aucune sous-page à lister.",
		service.MessageDebug:           "Valeur invalide pour l’option « %s ».",
	},
}

// Catalog resolves message keys for a single language.
type Catalog struct {
	tag     language.Tag
	printer *message.Printer
}

// New creates a Catalog for the best supported match of lang.
// Unknown or unsupported languages fall back to English.
func New(lang string) (*Catalog, error) {
	builder := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, messages := range translations {
		for key, msg := range messages {
			if err := builder.SetString(tag, key, msg); err != nil {
				return nil, fmt.Errorf("set %s message %s: %w", tag, key, err)
			}
		}
	}

	tag := language.English
	if lang != "" {
		requested, err := language.Parse(lang)
		if err != nil {
			return nil, fmt.Errorf("parse language %q: %w", lang, err)
		}
		supported := builder.Languages()
		_, idx, confidence := language.NewMatcher(supported).Match(requested)
		if confidence != language.No {
			tag = supported[idx]
		}
	}

	return &Catalog{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(builder)),
	}, nil
}

// Language returns the language messages are rendered in.
func (c *Catalog) Language() language.Tag { return c.tag }

// Text returns the message for key with args substituted.
func (c *Catalog) Text(key string, args ...any) string {
	return c.printer.Sprintf(key, args...)
}

var _ service.Messages = (*Catalog)(nil)
