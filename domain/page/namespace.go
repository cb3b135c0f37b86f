package page

import (
	"sort"
	"strings"
)

// Namespace identifies a wiki namespace by its numeric id.
type Namespace int

// Well-known namespace ids.
const (
	NamespaceMain     Namespace = 0
	NamespaceTalk     Namespace = 1
	NamespaceUser     Namespace = 2
	NamespaceUserTalk Namespace = 3
	NamespaceProject  Namespace = 4
	NamespaceFile     Namespace = 6
	NamespaceTemplate Namespace = 10
	NamespaceHelp     Namespace = 12
	NamespaceCategory Namespace = 14
)

// Namespaces maps namespace ids to their canonical names and back.
type Namespaces struct {
	names map[Namespace]string
	ids   map[string]Namespace
}

// DefaultNamespaces returns the registry of the standard namespaces.
func DefaultNamespaces() Namespaces {
	return NewNamespaces(map[Namespace]string{
		NamespaceMain:     "",
		NamespaceTalk:     "Talk",
		NamespaceUser:     "User",
		NamespaceUserTalk: "User talk",
		NamespaceProject:  "Project",
		NamespaceFile:     "File",
		NamespaceTemplate: "Template",
		NamespaceHelp:     "Help",
		NamespaceCategory: "Category",
	})
}

// NewNamespaces creates a registry from an id to name mapping.
// Names are matched case-insensitively and with underscores folded to spaces.
func NewNamespaces(names map[Namespace]string) Namespaces {
	n := Namespaces{
		names: make(map[Namespace]string, len(names)),
		ids:   make(map[string]Namespace, len(names)),
	}
	for id, name := range names {
		n.names[id] = name
		n.ids[foldName(name)] = id
	}
	return n
}

// With returns a copy of the registry with an extra namespace.
func (n Namespaces) With(id Namespace, name string) Namespaces {
	names := make(map[Namespace]string, len(n.names)+1)
	for k, v := range n.names {
		names[k] = v
	}
	names[id] = name
	return NewNamespaces(names)
}

// Name returns the canonical name for id.
func (n Namespaces) Name(id Namespace) (string, bool) {
	name, ok := n.names[id]
	return name, ok
}

// Lookup resolves a namespace name to its id.
func (n Namespaces) Lookup(name string) (Namespace, bool) {
	id, ok := n.ids[foldName(name)]
	return id, ok
}

// IDs returns all registered ids in ascending order.
func (n Namespaces) IDs() []Namespace {
	ids := make([]Namespace, 0, len(n.names))
	for id := range n.names {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func foldName(name string) string {
	return strings.ToLower(strings.TrimSpace(strings.ReplaceAll(name, "_", " ")))
}
