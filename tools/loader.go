package tools

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/BaSui01/agenteval/types"
)

// fileSchema is the YAML layout of a tool definition file:
//
//	tools:
//	  - name: check_order_status
//	    description: Check the status of a customer order
//	    strict: true
//	    parameters:
//	      - name: order_number
//	        type: string
//	        description: The order number
//	    required: [order_number]
type fileSchema struct {
	Tools []toolSchema `yaml:"tools"`
}

type toolSchema struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Strict      bool          `yaml:"strict"`
	Parameters  []paramSchema `yaml:"parameters"`
	Required    []string      `yaml:"required"`
}

type paramSchema struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Description string `yaml:"description"`
}

// LoadFile reads tool definitions from a YAML file and registers them.
// Lint failures abort the load; a partially loaded registry is not usable
// and should be discarded.
func LoadFile(path string, registry *Registry) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read tool definitions: %w", err)
	}
	return LoadBytes(data, registry)
}

// LoadBytes parses YAML tool definitions and registers them.
func LoadBytes(data []byte, registry *Registry) error {
	var file fileSchema
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse tool definitions: %w", err)
	}
	for _, raw := range file.Tools {
		def := types.ToolDefinition{
			Name:        raw.Name,
			Description: raw.Description,
			Strict:      raw.Strict,
			Required:    raw.Required,
		}
		for _, p := range raw.Parameters {
			def.Parameters = append(def.Parameters, types.Parameter{
				Name:        p.Name,
				Type:        p.Type,
				Description: p.Description,
			})
		}
		if err := registry.Register(def); err != nil {
			return err
		}
	}
	return nil
}
