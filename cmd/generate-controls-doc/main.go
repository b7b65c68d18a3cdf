package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"

	"github.com/rhobs/launch-dash/pkg/controls"
)

func main() {
	if err := os.WriteFile("CONTROLS.md", []byte(generateMarkdown(controls.AllControls(), controls.AllOutputs())), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating CONTROLS.md: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("✓ CONTROLS.md generated successfully")
	fmt.Printf("  Documented %d controls and %d outputs\n", len(controls.AllControls()), len(controls.AllOutputs()))
	fmt.Println("\n💡 Reminder: When adding a control or chart, register it in pkg/controls/definitions.go")
}

type fieldInfo struct {
	Name        string
	Type        string
	Required    bool
	Description string
}

// formatTable generates a markdown table with aligned columns
func formatTable(headers []string, rows [][]string) string {
	if len(headers) == 0 || len(rows) == 0 {
		return ""
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var sb strings.Builder
	writeRow := func(cells []string) {
		sb.WriteString("|")
		for i, w := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			fmt.Fprintf(&sb, " %-*s |", w, cell)
		}
		sb.WriteString("\n")
	}

	writeRow(headers)
	sb.WriteString("|")
	for _, w := range widths {
		fmt.Fprintf(&sb, " :%s |", strings.Repeat("-", w-1))
	}
	sb.WriteString("\n")
	for _, row := range rows {
		writeRow(row)
	}

	return sb.String()
}

func toolParams(tool *mcplib.Tool) []fieldInfo {
	requiredSet := make(map[string]bool)
	for _, r := range tool.InputSchema.Required {
		requiredSet[r] = true
	}

	var params []fieldInfo
	for name, prop := range tool.InputSchema.Properties {
		p := fieldInfo{Name: name, Required: requiredSet[name]}
		if propMap, ok := prop.(map[string]any); ok {
			p.Type, _ = propMap["type"].(string)
			p.Description, _ = propMap["description"].(string)
		}
		params = append(params, p)
	}

	sort.Slice(params, func(i, j int) bool {
		if params[i].Required != params[j].Required {
			return params[i].Required
		}
		return params[i].Name < params[j].Name
	})
	return params
}

func outputFields(tool *mcplib.Tool) []fieldInfo {
	var fields []fieldInfo
	for name, prop := range tool.OutputSchema.Properties {
		f := fieldInfo{Name: name}
		if propMap, ok := prop.(map[string]any); ok {
			f.Type, _ = propMap["type"].(string)
			if f.Type == "array" {
				if items, ok := propMap["items"].(map[string]any); ok {
					if itemType, ok := items["type"].(string); ok {
						f.Type = itemType + "[]"
					} else {
						f.Type = "object[]"
					}
				}
			}
			f.Description, _ = propMap["description"].(string)
		}
		fields = append(fields, f)
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i].Name < fields[j].Name })
	return fields
}

func generateMarkdown(defs []controls.ControlDef, outputs []controls.OutputDef) string {
	var sb strings.Builder

	sb.WriteString("<!-- This file is auto-generated. Do not edit manually. -->\n")
	sb.WriteString("<!-- Run 'go run ./cmd/generate-controls-doc' to regenerate. -->\n\n")

	sb.WriteString("# Dashboard Controls\n\n")
	var controlRows [][]string
	for _, c := range defs {
		schemaType := c.Schema().Type
		controlRows = append(controlRows, []string{
			fmt.Sprintf("`%s`", c.ID),
			string(c.Type),
			fmt.Sprintf("`%s`", schemaType),
			c.Description,
		})
	}
	sb.WriteString(formatTable([]string{"Control", "Kind", "Value", "Description"}, controlRows))
	sb.WriteString("\n")

	sb.WriteString("# Charts and MCP Tools\n\n")
	sb.WriteString("Every chart on the page is also exposed as a read-only MCP tool on `/mcp`.\n\n")

	for i, out := range outputs {
		tool := out.ToMCPTool()
		sb.WriteString(fmt.Sprintf("## `%s`\n\n", tool.Name))

		paragraphs := strings.Split(strings.TrimSpace(out.Description), "\n\n")
		sb.WriteString(fmt.Sprintf("> %s\n\n", strings.TrimSpace(paragraphs[0])))
		if len(paragraphs) > 1 {
			sb.WriteString("**Usage Tips:**\n\n")
			for _, para := range paragraphs[1:] {
				sb.WriteString(fmt.Sprintf("- %s\n", strings.Join(strings.Fields(para), " ")))
			}
			sb.WriteString("\n")
		}

		inputs := make([]string, len(out.Inputs))
		for j, in := range out.Inputs {
			inputs[j] = fmt.Sprintf("`%s`", in)
		}
		sb.WriteString(fmt.Sprintf("**Page component:** `%s`, updated by %s\n\n", out.ID, strings.Join(inputs, ", ")))

		var paramRows [][]string
		for _, p := range toolParams(&tool) {
			req := ""
			if p.Required {
				req = "✅"
			}
			paramRows = append(paramRows, []string{fmt.Sprintf("`%s`", p.Name), fmt.Sprintf("`%s`", p.Type), req, p.Description})
		}
		if len(paramRows) > 0 {
			sb.WriteString("**Parameters:**\n\n")
			sb.WriteString(formatTable([]string{"Parameter", "Type", "Required", "Description"}, paramRows))
			sb.WriteString("\n")
		}

		var fieldRows [][]string
		for _, f := range outputFields(&tool) {
			fieldRows = append(fieldRows, []string{fmt.Sprintf("`%s`", f.Name), fmt.Sprintf("`%s`", f.Type), f.Description})
		}
		if len(fieldRows) > 0 {
			sb.WriteString("**Output Schema:**\n\n")
			sb.WriteString(formatTable([]string{"Field", "Type", "Description"}, fieldRows))
			sb.WriteString("\n")
		}

		if i < len(outputs)-1 {
			sb.WriteString("---\n\n")
		}
	}

	return sb.String()
}
