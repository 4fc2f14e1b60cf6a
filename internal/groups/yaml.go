package groups

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/cryptobom/internal/inventory"
)

// yamlGroup is the raw YAML structure of one group definition.
type yamlGroup struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Assets      []string    `yaml:"assets"`
	Groups      []yamlGroup `yaml:"groups"`
}

// LoadTree builds a grouping view from a YAML definition file. Asset
// references must resolve against the given inventory; an unresolvable
// or duplicate reference fails the load.
//
// File shape:
//
//	name: platform
//	description: all crypto in the platform
//	assets: [AES-1]
//	groups:
//	  - name: TLS
//	    assets: [TLS13-1, CERT-1]
func LoadTree(path string, inv *inventory.Inventory) (*Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("group definition %s: %w", path, err)
	}

	var root yamlGroup
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("group definition %s: %w", path, err)
	}

	tree := NewTree(root.Name, root.Description, inv)
	if err := populate(tree, tree.Root(), root); err != nil {
		return nil, fmt.Errorf("group definition %s: %w", path, err)
	}
	return tree, nil
}

func populate(tree *Tree, g *Group, def yamlGroup) error {
	for _, id := range def.Assets {
		if err := tree.AddAsset(g, id); err != nil {
			return fmt.Errorf("group %s: %w", g.Name, err)
		}
	}
	for _, childDef := range def.Groups {
		child, err := tree.AddSubgroup(g, childDef.Name, childDef.Description)
		if err != nil {
			return err
		}
		if err := populate(tree, child, childDef); err != nil {
			return err
		}
	}
	return nil
}
