package controls

import (
	"github.com/google/jsonschema-go/jsonschema"
	"github.com/mark3labs/mcp-go/mcp"
	"k8s.io/utils/ptr"
)

// ControlType represents the kind of UI input a control is
type ControlType string

const (
	ControlTypeDropdown    ControlType = "dropdown"
	ControlTypeRangeSlider ControlType = "range-slider"
)

// ControlDef defines a UI control whose value changes trigger outputs
type ControlDef struct {
	ID          string
	Type        ControlType
	Label       string
	Description string
}

// ParamDef defines a tool parameter
type ParamDef struct {
	Name        string
	Type        ParamType
	Description string
	Required    bool
}

// ParamType represents the type of a parameter
type ParamType string

const (
	ParamTypeString ParamType = "string"
	ParamTypeNumber ParamType = "number"
)

// OutputDef defines a chart output: the component it renders into, the
// controls it depends on and the MCP tool exposing it.
type OutputDef struct {
	ID           string
	Inputs       []string
	ToolName     string
	Title        string
	Description  string
	Params       []ParamDef
	OutputSchema mcp.ToolOption
}

// Schema returns the JSON schema a value of this control must satisfy.
func (c ControlDef) Schema() *jsonschema.Schema {
	switch c.Type {
	case ControlTypeRangeSlider:
		return &jsonschema.Schema{
			Type:        "array",
			Description: c.Description,
			Items:       &jsonschema.Schema{Type: "number"},
			MinItems:    ptr.To(2),
			MaxItems:    ptr.To(2),
		}
	default:
		return &jsonschema.Schema{
			Type:        "string",
			Description: c.Description,
		}
	}
}

// ValuesSchema returns an object schema keyed by control ID. Controls may be
// omitted; the dispatcher fills in defaults.
func ValuesSchema(defs []ControlDef) *jsonschema.Schema {
	properties := make(map[string]*jsonschema.Schema, len(defs))
	for _, d := range defs {
		properties[d.ID] = d.Schema()
	}
	return &jsonschema.Schema{
		Type:       "object",
		Properties: properties,
	}
}

// ToMCPTool converts an OutputDef to an mcp.Tool
func (d OutputDef) ToMCPTool() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription(d.Description),
		mcp.WithTitleAnnotation(d.Title),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
	}

	for _, param := range d.Params {
		propOpts := []mcp.PropertyOption{mcp.Description(param.Description)}
		if param.Required {
			propOpts = append(propOpts, mcp.Required())
		}

		switch param.Type {
		case ParamTypeString:
			opts = append(opts, mcp.WithString(param.Name, propOpts...))
		case ParamTypeNumber:
			opts = append(opts, mcp.WithNumber(param.Name, propOpts...))
		}
	}

	if d.OutputSchema != nil {
		opts = append(opts, d.OutputSchema)
	}

	return mcp.NewTool(d.ToolName, opts...)
}
