// Package tool exposes document comparison as an MCP tool.
package tool

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/tsawler/golden"
	"github.com/tsawler/golden/mask"
	"github.com/tsawler/golden/report"
	"github.com/tsawler/golden/source"
)

// MetadataCompareDocuments describes the compare_documents tool.
var MetadataCompareDocuments = &mcp.Tool{
	Name: "compare_documents",
	Description: "Compare a target document against a golden (reference) document and report " +
		"missing, extra, changed, moved and restyled text per page. " +
		"Inputs are PDF files or YAML/JSON fragment files. " +
		"Status is pass when no differences are found. Severities range from 0 to 1.",
	InputSchema: map[string]interface{}{
		"type":     "object",
		"required": []string{"golden_path", "target_path"},
		"properties": map[string]interface{}{
			"golden_path": map[string]interface{}{
				"type":        "string",
				"description": "Path of the golden (reference) document",
			},
			"target_path": map[string]interface{}{
				"type":        "string",
				"description": "Path of the document to check",
			},
			"start_page": map[string]interface{}{
				"type":        "integer",
				"description": "First page to compare, 0-based. Requires end_page.",
				"minimum":     0,
			},
			"end_page": map[string]interface{}{
				"type":        "integer",
				"description": "Last page to compare, inclusive. Requires start_page.",
				"minimum":     0,
			},
			"ignore_style": map[string]interface{}{
				"type":        "boolean",
				"description": "Ignore font name, size and weight differences",
			},
			"position_tolerance": map[string]interface{}{
				"type":        "number",
				"description": "Largest movement in points still treated as the same position (default 2)",
				"minimum":     0,
			},
			"text_similarity_threshold": map[string]interface{}{
				"type":        "number",
				"description": "Similarity below which paired text is reported as changed (default 0.98)",
				"minimum":     0,
				"maximum":     1,
			},
			"include_unpaired_pages": map[string]interface{}{
				"type":        "boolean",
				"description": "Report pages that exist in only one document as missing or extra (default true)",
			},
			"mask_variable_fields": map[string]interface{}{
				"type":        "boolean",
				"description": "Skip fields such as policy numbers, names and dates that differ per document",
			},
		},
	},
}

// InputCompareDocuments is the input for the CompareDocuments tool.
type InputCompareDocuments struct {
	GoldenPath              string   `json:"golden_path"`
	TargetPath              string   `json:"target_path"`
	StartPage               *int     `json:"start_page,omitempty"`
	EndPage                 *int     `json:"end_page,omitempty"`
	IgnoreStyle             bool     `json:"ignore_style,omitempty"`
	PositionTolerance       *float64 `json:"position_tolerance,omitempty"`
	TextSimilarityThreshold *float64 `json:"text_similarity_threshold,omitempty"`
	IncludeUnpairedPages    *bool    `json:"include_unpaired_pages,omitempty"`
	MaskVariableFields      bool     `json:"mask_variable_fields,omitempty"`
}

// OutputCompareDocuments is the output for the CompareDocuments tool.
type OutputCompareDocuments struct {
	// Result is the flattened comparison
	Result report.View `json:"result"`
	// DiffCount is the total number of differences
	DiffCount int `json:"diff_count"`
}

// CompareDocuments loads both documents and compares them.
func CompareDocuments(ctx context.Context, _ *mcp.CallToolRequest, input InputCompareDocuments) (*mcp.CallToolResult, OutputCompareDocuments, error) {
	if input.GoldenPath == "" || input.TargetPath == "" {
		return nil, OutputCompareDocuments{}, fmt.Errorf("golden_path and target_path are required")
	}
	if (input.StartPage == nil) != (input.EndPage == nil) {
		return nil, OutputCompareDocuments{}, fmt.Errorf("start_page and end_page must be given together")
	}

	goldenDoc, err := source.LoadFile(input.GoldenPath)
	if err != nil {
		return nil, OutputCompareDocuments{}, err
	}
	targetDoc, err := source.LoadFile(input.TargetPath)
	if err != nil {
		return nil, OutputCompareDocuments{}, err
	}

	cmp := golden.Compare(goldenDoc.Pages, targetDoc.Pages)
	if input.StartPage != nil {
		cmp = cmp.PageRange(*input.StartPage, *input.EndPage)
	}
	if input.IgnoreStyle {
		cmp = cmp.IgnoreStyle()
	}
	if input.PositionTolerance != nil {
		cmp = cmp.PositionTolerance(*input.PositionTolerance)
	}
	if input.TextSimilarityThreshold != nil {
		cmp = cmp.TextSimilarityThreshold(*input.TextSimilarityThreshold)
	}
	if input.IncludeUnpairedPages == nil || *input.IncludeUnpairedPages {
		cmp = cmp.IncludeUnpairedPages()
	}
	if input.MaskVariableFields {
		h, err := mask.NewHeuristic()
		if err != nil {
			return nil, OutputCompareDocuments{}, err
		}
		cmp = cmp.WithDetector(h)
	}

	result, err := cmp.Run(ctx)
	if err != nil {
		return nil, OutputCompareDocuments{}, err
	}

	view := report.NewView(report.Named{
		Golden: goldenDoc.Name,
		Target: targetDoc.Name,
		Result: result,
	})
	return nil, OutputCompareDocuments{Result: view, DiffCount: result.DiffCount()}, nil
}

// NewServer returns an MCP server with every golden tool registered.
func NewServer(version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: "golden", Version: version}, nil)
	mcp.AddTool(server, MetadataCompareDocuments, CompareDocuments)
	return server
}
