// Package credits reads the grouped name/role credits store.
//
// The store is a YAML file of groups, each mapping contributor names to
// roles. File order is significant for the credits report, so decoding goes
// through yaml.Node rather than a map.
package credits

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mattjoyce/herald/internal/report"
)

// Load reads the credits file and returns its groups in file order.
func Load(path string) ([]report.CreditGroup, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read credits: %w", err)
	}
	return Parse(data)
}

// Parse decodes credits YAML, preserving group and pair order.
func Parse(data []byte) ([]report.CreditGroup, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse credits YAML: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("credits root must be a mapping")
	}

	var groups []report.CreditGroup
	for i := 0; i+1 < len(root.Content); i += 2 {
		nameNode, bodyNode := root.Content[i], root.Content[i+1]
		if bodyNode.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("credits group %q must be a mapping", nameNode.Value)
		}

		group := report.CreditGroup{Name: nameNode.Value}
		for j := 0; j+1 < len(bodyNode.Content); j += 2 {
			group.Pairs = append(group.Pairs, report.CreditPair{
				Name: bodyNode.Content[j].Value,
				Role: bodyNode.Content[j+1].Value,
			})
		}
		groups = append(groups, group)
	}
	return groups, nil
}
