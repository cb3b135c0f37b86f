package persistence

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/helixml/splist/domain/page"
	"gopkg.in/yaml.v3"
)

// Fixture is the YAML document accepted by LoadFixture:
//
//	pages:
//	  - title: Help:Install/Linux
//	    touched: 2024-05-01T10:00:00Z
//	  - title: Help:Setup
//	    redirect: true
type Fixture struct {
	Pages []FixturePage `yaml:"pages"`
}

// FixturePage is one page entry of a Fixture.
type FixturePage struct {
	Title    string    `yaml:"title"`
	Redirect bool      `yaml:"redirect"`
	Touched  time.Time `yaml:"touched"`
}

// LoadFixture decodes a YAML fixture into page rows. Pages without a
// touched time are stamped with now.
func LoadFixture(r io.Reader, namespaces page.Namespaces, now time.Time) ([]page.Row, error) {
	var fixture Fixture
	if err := yaml.NewDecoder(r).Decode(&fixture); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode fixture: %w", err)
	}

	rows := make([]page.Row, 0, len(fixture.Pages))
	for i, p := range fixture.Pages {
		title, err := namespaces.Parse(p.Title)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i+1, err)
		}
		touched := p.Touched
		if touched.IsZero() {
			touched = now
		}
		rows = append(rows, page.NewRow(title.Namespace(), title.DBKey(), p.Redirect, touched))
	}
	return rows, nil
}
