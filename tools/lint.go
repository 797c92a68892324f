package tools

import (
	"strings"

	"github.com/BaSui01/agenteval/types"
)

// Lint validates a tool definition. It enforces:
//
//   - parameter names are unique within the definition (case-sensitive);
//   - every name in the required set refers to a declared parameter;
//   - under strict mode, the required set equals the full parameter-name
//     set — no optional parameters are allowed, and the error names every
//     parameter missing from required.
//
// Lint runs once per definition at registration time.
func Lint(def types.ToolDefinition) error {
	if def.Name == "" {
		return types.NewError(types.ErrInvalidConfig, "tool definition has no name")
	}

	declared := make(map[string]struct{}, len(def.Parameters))
	for _, p := range def.Parameters {
		if _, ok := declared[p.Name]; ok {
			return types.NewErrorf(types.ErrDuplicateParameter,
				"tool %q: duplicate parameter %q", def.Name, p.Name)
		}
		declared[p.Name] = struct{}{}
	}

	required := make(map[string]struct{}, len(def.Required))
	for _, name := range def.Required {
		if _, ok := declared[name]; !ok {
			return types.NewErrorf(types.ErrUnknownParameter,
				"tool %q: required parameter %q is not declared", def.Name, name)
		}
		if _, ok := required[name]; ok {
			return types.NewErrorf(types.ErrDuplicateParameter,
				"tool %q: parameter %q listed twice in required", def.Name, name)
		}
		required[name] = struct{}{}
	}

	if def.Strict {
		var missing []string
		for _, p := range def.Parameters {
			if _, ok := required[p.Name]; !ok {
				missing = append(missing, p.Name)
			}
		}
		if len(missing) > 0 {
			return types.NewErrorf(types.ErrStrictSchemaViolation,
				"tool %q is strict but parameters are not required: %s",
				def.Name, strings.Join(missing, ", "))
		}
	}
	return nil
}
