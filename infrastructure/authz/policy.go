package authz

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/helixml/splist/domain/access"
	"github.com/helixml/splist/domain/page"
	"gopkg.in/yaml.v3"
)

// Effect is the outcome of a matching rule.
type Effect string

// Effect values.
const (
	Allow Effect = "allow"
	Deny  Effect = "deny"
)

// ErrInvalidPolicy indicates a policy document that cannot be used.
var ErrInvalidPolicy = errors.New("invalid policy")

// mainNamespaceName names the main namespace in policy documents.
const mainNamespaceName = "main"

// Rule matches reads by namespace, title subtree, user, and group. Empty
// criteria match everything.
type Rule struct {
	Effect     Effect   `yaml:"effect"`
	Namespaces []string `yaml:"namespaces"`
	Titles     []string `yaml:"titles"`
	Users      []string `yaml:"users"`
	Groups     []string `yaml:"groups"`
}

// Policy grants or denies reads using the first matching rule, falling back
// to Default. A policy file looks like:
//
//	default: allow
//	rules:
//	  - effect: allow
//	    groups: [sysop]
//	  - effect: deny
//	    namespaces: [User]
//	    titles: ["Internal"]
type Policy struct {
	Default Effect `yaml:"default"`
	Rules   []Rule `yaml:"rules"`
}

// LoadPolicy decodes and validates a YAML policy.
func LoadPolicy(r io.Reader) (Policy, error) {
	var p Policy
	if err := yaml.NewDecoder(r).Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return Policy{}, fmt.Errorf("decode policy: %w", err)
	}
	if p.Default == "" {
		p.Default = Allow
	}
	if err := p.Validate(); err != nil {
		return Policy{}, err
	}
	return p, nil
}

// LoadPolicyFile reads a YAML policy from path.
func LoadPolicyFile(path string) (Policy, error) {
	f, err := os.Open(path)
	if err != nil {
		return Policy{}, fmt.Errorf("open policy: %w", err)
	}
	defer func() { _ = f.Close() }()
	return LoadPolicy(f)
}

// Validate checks that every effect is known.
func (p Policy) Validate() error {
	if !validEffect(p.Default) {
		return fmt.Errorf("%w: default effect %q", ErrInvalidPolicy, p.Default)
	}
	for i, r := range p.Rules {
		if !validEffect(r.Effect) {
			return fmt.Errorf("%w: rule %d effect %q", ErrInvalidPolicy, i+1, r.Effect)
		}
	}
	return nil
}

// CanRead applies the first rule matching user and title.
func (p Policy) CanRead(_ context.Context, user access.User, title page.Title) (bool, error) {
	for _, r := range p.Rules {
		if r.matches(user, title) {
			return r.Effect == Allow, nil
		}
	}
	return p.Default == Allow, nil
}

func (r Rule) matches(user access.User, title page.Title) bool {
	if len(r.Namespaces) > 0 && !slices.ContainsFunc(r.Namespaces, func(ns string) bool {
		return namespaceMatches(ns, title)
	}) {
		return false
	}
	if len(r.Titles) > 0 && !slices.ContainsFunc(r.Titles, func(t string) bool {
		return inSubtree(t, title)
	}) {
		return false
	}
	if len(r.Users) > 0 && !slices.Contains(r.Users, user.Name()) {
		return false
	}
	if len(r.Groups) > 0 && !slices.ContainsFunc(r.Groups, user.InGroup) {
		return false
	}
	return true
}

func namespaceMatches(name string, title page.Title) bool {
	if strings.EqualFold(name, mainNamespaceName) {
		return title.NamespaceText() == ""
	}
	return strings.EqualFold(strings.ReplaceAll(name, "_", " "), title.NamespaceText())
}

// inSubtree reports whether title is root or one of its subpages.
func inSubtree(root string, title page.Title) bool {
	root = strings.ReplaceAll(root, "_", " ")
	text := title.PrefixedText()
	return text == root || strings.HasPrefix(text, root+page.Separator)
}

func validEffect(e Effect) bool {
	return e == Allow || e == Deny
}
