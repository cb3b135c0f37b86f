package i18n

import (
	"testing"

	"github.com/helixml/splist/domain/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestCatalog_Text(t *testing.T) {
	tests := []struct {
		lang string
		want string
	}{
		{"", "[[Guide]] has no subpages to list."},
		{"en", "[[Guide]] has no subpages to list."},
		{"de", "[[Guide]] hat keine Unterseiten."},
		{"fr-CA", "[[Guide]] n’a aucune sous-page à lister."},
		{"ja", "[[Guide]] has no subpages to list."},
	}

	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			c, err := New(tt.lang)
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.Text(service.MessageNoSubpages, "[[Guide]]"))
		})
	}
}

func TestCatalog_Debug(t *testing.T) {
	c, err := New("en-GB")
	require.NoError(t, err)
	assert.Equal(t, language.English, c.Language())
	assert.Equal(t, `Invalid value for option "sort".`, c.Text(service.MessageDebug, "sort"))
}

func TestCatalog_NoSubpagesPlain(t *testing.T) {
	c, err := New("de")
	require.NoError(t, err)
	assert.Equal(t, "Es gibt keine Unterseiten.", c.Text(service.MessageNoSubpagesPlain))
}

func TestCatalog_InvalidLanguage(t *testing.T) {
	_, err := New("not a language!")
	assert.Error(t, err)
}
