package resultutil

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

type chartSummary struct {
	Title string `json:"title"`
	Total int    `json:"total"`
}

func TestMarshalJSON_Shape(t *testing.T) {
	tests := []struct {
		name   string
		result *Result
		want   string
	}{
		{
			name:   "figure data",
			result: NewSuccessResult(chartSummary{Title: "pie", Total: 8}),
			want:   `{"data":{"title":"pie","total":8}}`,
		},
		{
			name:   "slice data",
			result: NewSuccessResult([]int{2, 5}),
			want:   `{"data":[2,5]}`,
		},
		{
			name:   "nil data",
			result: NewSuccessResult(nil),
			want:   `{"data":null}`,
		},
		{
			name:   "error",
			result: NewErrorResult(errors.New("boom")),
			want:   `{"error":"boom"}`,
		},
		{
			name:   "error message is escaped",
			result: NewErrorResult(errors.New(`site "X" unknown`)),
			want:   `{"error":"site \"X\" unknown"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.result)
			if err != nil {
				t.Fatalf("marshal failed: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}

			var keys map[string]json.RawMessage
			if err := json.Unmarshal(got, &keys); err != nil {
				t.Fatalf("output is not a JSON object: %v", err)
			}
			if len(keys) != 1 {
				t.Errorf("expected exactly one of data or error, got %d keys", len(keys))
			}
		})
	}
}

func TestMarshalJSON_Nested(t *testing.T) {
	updates := []struct {
		Output string  `json:"output"`
		Result *Result `json:"result"`
	}{
		{Output: "success-pie-chart", Result: NewSuccessResult(chartSummary{Title: "pie", Total: 3})},
		{Output: "success-payload-scatter-chart", Result: NewErrorResult(errors.New("no launches"))},
	}

	got, err := json.Marshal(updates)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	want := `[{"output":"success-pie-chart","result":{"data":{"title":"pie","total":3}}},` +
		`{"output":"success-payload-scatter-chart","result":{"error":"no launches"}}]`
	if string(got) != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestMarshalJSON_UnmarshalableData(t *testing.T) {
	result := NewSuccessResult(struct{ Ch chan int }{Ch: make(chan int)})
	if !result.IsError() {
		t.Fatal("expected error result when marshaling fails")
	}

	got, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if !strings.HasPrefix(string(got), `{"error":"failed to marshal result: `) {
		t.Errorf("expected error body, got %s", got)
	}
}

func TestToMCPResult(t *testing.T) {
	tests := []struct {
		name        string
		result      *Result
		wantIsError bool
		wantText    string
	}{
		{
			name:     "success carries the data JSON as text",
			result:   NewSuccessResult(chartSummary{Title: "pie", Total: 1}),
			wantText: `{"title":"pie","total":1}`,
		},
		{
			name:        "error",
			result:      NewErrorResult(errors.New("unknown launch site")),
			wantIsError: true,
			wantText:    "unknown launch site",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mcpResult, err := tt.result.ToMCPResult()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if mcpResult.IsError != tt.wantIsError {
				t.Errorf("expected IsError=%v, got %v", tt.wantIsError, mcpResult.IsError)
			}
			if !tt.wantIsError && mcpResult.StructuredContent == nil {
				t.Error("expected structured content to be set")
			}
			if len(mcpResult.Content) != 1 {
				t.Fatalf("expected one content item, got %d", len(mcpResult.Content))
			}
			text, ok := mcpResult.Content[0].(mcp.TextContent)
			if !ok {
				t.Fatalf("expected text content, got %T", mcpResult.Content[0])
			}
			if text.Text != tt.wantText {
				t.Errorf("expected text %q, got %q", tt.wantText, text.Text)
			}
		})
	}
}
