package graph

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// configSchemas maps each node type to the JSON Schema its config map must
// satisfy. Types that take no config (none, perpetual) have no entry and
// are skipped, matching ValidateNodeConfig's "no schema defined, skip
// validation" convention.
var configSchemas = map[string]string{
	TypeConstant: `{
		"type": "object",
		"required": ["value"],
		"properties": { "value": {} }
	}`,
	TypeThrow: `{
		"type": "object",
		"required": ["message"],
		"properties": { "message": { "type": "string" } }
	}`,
	TypeQueue: `{
		"type": "object",
		"properties": {
			"items": { "type": "array" },
			"closed": { "type": "boolean" }
		}
	}`,
	TypeLift: `{
		"type": "object",
		"required": ["function"],
		"properties": { "function": { "type": "string" } }
	}`,
	TypeChain: `{
		"type": "object",
		"required": ["a", "b"],
		"properties": {
			"a": { "type": "string" },
			"b": { "type": "string" }
		}
	}`,
	TypeUntil: `{
		"type": "object",
		"required": ["cond", "series", "truthy_field"],
		"properties": {
			"cond": { "type": "string" },
			"series": { "type": "string" },
			"truthy_field": { "type": "string" }
		}
	}`,
	TypeFirst: `{
		"type": "object",
		"required": ["child"],
		"properties": { "child": { "type": "string" } }
	}`,
	TypeRange: `{
		"type": "object",
		"required": ["start", "stop", "step"],
		"properties": {
			"start": { "type": "string" },
			"stop": { "type": "string" },
			"step": { "type": "string" }
		}
	}`,
}

// validateConfig validates def.Config against its type's schema, mirroring
// builtin.ValidateNodeConfig: marshal both schema and config to JSON, run
// gojsonschema, and collapse any failures into one error.
func validateConfig(def NodeDefinition) error {
	schema, ok := configSchemas[def.Type]
	if !ok {
		return nil
	}

	configJSON, err := json.Marshal(def.Config)
	if err != nil {
		return fmt.Errorf("graph: marshal config for %q: %w", def.Name, err)
	}

	schemaLoader := gojsonschema.NewStringLoader(schema)
	documentLoader := gojsonschema.NewBytesLoader(configJSON)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("graph: validate config for %q: %w", def.Name, err)
	}

	if !result.Valid() {
		msg := ""
		for i, e := range result.Errors() {
			if i > 0 {
				msg += "; "
			}
			msg += e.String()
		}
		return fmt.Errorf("%w: node %q config: %s", ErrInvalidDefinition, def.Name, msg)
	}

	return nil
}
