// Package groups provides a hierarchical view over one inventory: a
// tree of named groups holding asset id references. Groups never copy
// assets; counts and lookups always resolve against the live inventory,
// so a mutation there is visible in every group that references the
// asset.
package groups

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/cryptobom/internal/common"
	"github.com/dmitrijs2005/cryptobom/internal/inventory"
	"github.com/dmitrijs2005/cryptobom/internal/models"
)

// Group is one node in the hierarchy. It holds asset ids, not assets.
type Group struct {
	Name        string
	Description string
	Level       int

	children   map[string]*Group
	childOrder []string
	assetIDs   []string
}

// Tree is a grouping view rooted at one group, resolving references
// against a single underlying inventory.
type Tree struct {
	root *Group
	inv  *inventory.Inventory
}

// GroupSummary describes one group level, recursively.
type GroupSummary struct {
	Name           string                   `json:"name"`
	Description    string                   `json:"description"`
	Level          int                      `json:"level"`
	AssetsAtLevel  int                      `json:"assetsAtLevel"`
	TotalAssets    int                      `json:"totalAssets"`
	CriticalAssets int                      `json:"criticalAssets"`
	SubGroups      int                      `json:"subGroups"`
	Children       map[string]*GroupSummary `json:"children,omitempty"`
}

// NewTree returns a grouping view over the given inventory.
func NewTree(name, description string, inv *inventory.Inventory) *Tree {
	return &Tree{
		root: &Group{Name: name, Description: description, children: make(map[string]*Group)},
		inv:  inv,
	}
}

// Root returns the root group.
func (t *Tree) Root() *Group { return t.root }

// AddSubgroup creates a child group under parent and returns it. The
// name must be unique among the parent's children.
func (t *Tree) AddSubgroup(parent *Group, name, description string) (*Group, error) {
	if _, exists := parent.children[name]; exists {
		return nil, fmt.Errorf("group %s: %w", name, common.ErrDuplicateID)
	}
	g := &Group{
		Name:        name,
		Description: description,
		Level:       parent.Level + 1,
		children:    make(map[string]*Group),
	}
	parent.children[name] = g
	parent.childOrder = append(parent.childOrder, name)
	return g, nil
}

// AddAsset references an inventory asset from the group. The asset must
// exist in the underlying inventory and must not already be referenced
// at this level.
func (t *Tree) AddAsset(g *Group, assetID string) error {
	if _, ok := t.inv.Get(assetID); !ok {
		return fmt.Errorf("%s: %w", assetID, common.ErrNotFound)
	}
	if slices.Contains(g.assetIDs, assetID) {
		return fmt.Errorf("%s: %w", assetID, common.ErrDuplicateID)
	}
	g.assetIDs = append(g.assetIDs, assetID)
	return nil
}

// RemoveAsset drops the reference from the group. The asset itself
// stays in the inventory.
func (t *Tree) RemoveAsset(g *Group, assetID string) error {
	n := slices.Index(g.assetIDs, assetID)
	if n < 0 {
		return fmt.Errorf("%s: %w", assetID, common.ErrNotFound)
	}
	g.assetIDs = append(g.assetIDs[:n], g.assetIDs[n+1:]...)
	return nil
}

// Assets resolves the group's references against the inventory.
// References to assets that were since removed are skipped.
func (t *Tree) Assets(g *Group) []*models.Asset {
	var out []*models.Asset
	for _, id := range g.assetIDs {
		if a, ok := t.inv.Get(id); ok {
			out = append(out, a)
		}
	}
	return out
}

// AssetCount counts resolvable references in the group and all groups
// below it. An asset referenced at several levels is counted per
// reference.
func (t *Tree) AssetCount(g *Group) int {
	count := len(t.Assets(g))
	for _, name := range g.childOrder {
		count += t.AssetCount(g.children[name])
	}
	return count
}

// CriticalCount counts referenced assets currently at CRITICAL risk in
// the group and below.
func (t *Tree) CriticalCount(g *Group) int {
	now := time.Now()
	count := 0
	for _, a := range t.Assets(g) {
		if a.Risk(now) == models.RiskCritical {
			count++
		}
	}
	for _, name := range g.childOrder {
		count += t.CriticalCount(g.children[name])
	}
	return count
}

// Summary builds the recursive description of the subtree rooted at g.
func (t *Tree) Summary(g *Group) *GroupSummary {
	s := &GroupSummary{
		Name:           g.Name,
		Description:    g.Description,
		Level:          g.Level,
		AssetsAtLevel:  len(t.Assets(g)),
		TotalAssets:    t.AssetCount(g),
		CriticalAssets: t.CriticalCount(g),
		SubGroups:      len(g.children),
	}
	for _, name := range g.childOrder {
		if s.Children == nil {
			s.Children = make(map[string]*GroupSummary)
		}
		s.Children[name] = t.Summary(g.children[name])
	}
	return s
}

// GetByPath walks a slash-separated path ("TLS/Certificates") from the
// root. A leading segment equal to the root name is accepted and
// skipped. Returns nil when the path does not resolve.
func (t *Tree) GetByPath(path string) *Group {
	current := t.root
	for _, part := range strings.Split(path, "/") {
		if part == "" || part == t.root.Name && current == t.root {
			continue
		}
		next, ok := current.children[part]
		if !ok {
			return nil
		}
		current = next
	}
	return current
}

// Flatten collects every referenced asset in the subtree into one
// deduplicated slice, in first-reference order.
func (t *Tree) Flatten(g *Group) []*models.Asset {
	seen := make(map[string]bool)
	var out []*models.Asset
	var walk func(*Group)
	walk = func(node *Group) {
		for _, a := range t.Assets(node) {
			if !seen[a.ID] {
				seen[a.ID] = true
				out = append(out, a)
			}
		}
		for _, name := range node.childOrder {
			walk(node.children[name])
		}
	}
	walk(g)
	return out
}
