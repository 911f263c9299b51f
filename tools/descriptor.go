package tools

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// Descriptor is the immutable, planner-facing view of a registered tool:
// its unique name, its natural-language purpose text and the JSON schema of
// its parameters, reflected from the input struct's jsonschema tags.
type Descriptor struct {
	Name        string
	Description string
	Parameters  *jsonschema.Schema
}

// ParametersJSON returns the parameter schema as raw JSON.
func (d Descriptor) ParametersJSON() json.RawMessage {
	bs, _ := json.Marshal(d.Parameters)
	return bs
}

func reflectParameters(v any) *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		Anonymous:      true,
		DoNotReference: true,
		ExpandedStruct: true,
	}
	return reflector.Reflect(v)
}
