package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dshills/civiclink/internal/matcher"
)

// candidatesSchema describes inline candidates: plain strings or objects
// carrying a source and attributes
func candidatesSchema(field string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "array",
		"description": "Candidates to score against the query. Each item is a string or an object with " + field + ", source and attributes",
		"items": map[string]interface{}{
			"oneOf": []interface{}{
				map[string]interface{}{"type": "string"},
				map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						field: map[string]interface{}{"type": "string"},
						"source": map[string]interface{}{
							"type": "string",
							"enum": []string{"registry", "transfer", "permit"},
						},
						"attributes": map[string]interface{}{
							"type":                 "object",
							"additionalProperties": map[string]interface{}{"type": "string"},
						},
					},
					"required": []string{field},
				},
			},
		},
	}
}

func thresholdSchema(def float64) map[string]interface{} {
	return map[string]interface{}{
		"type":        "number",
		"description": "Minimum similarity score (0.0-1.0)",
		"default":     def,
		"minimum":     0.0,
		"maximum":     1.0,
	}
}

func matchTool(name, description, field string, def float64) mcp.Tool {
	return mcp.Tool{
		Name:        name,
		Description: description,
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Raw text to match",
				},
				"candidates": candidatesSchema(field),
				"threshold":  thresholdSchema(def),
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of matches to return (0 for all)",
					"default":     0,
					"minimum":     0,
				},
			},
			Required: []string{"query", "candidates"},
		},
	}
}

// matchCompanyTool returns the tool definition for match_company
func matchCompanyTool() mcp.Tool {
	return matchTool("match_company",
		"Score company names against a query, ignoring legal suffixes and treating equal numbered companies as certain matches",
		"name", matcher.DefaultCompanyThreshold)
}

// matchPersonTool returns the tool definition for match_person
func matchPersonTool() mcp.Tool {
	return matchTool("match_person",
		"Score person names against a query regardless of token order",
		"name", matcher.DefaultPersonThreshold)
}

// matchAddressTool returns the tool definition for match_address
func matchAddressTool() mcp.Tool {
	return matchTool("match_address",
		"Score civic addresses against a query after abbreviation, unit and postal code normalization",
		"address", matcher.DefaultAddressThreshold)
}

// crossReferenceTool returns the tool definition for cross_reference
func crossReferenceTool() mcp.Tool {
	records := func(desc string) map[string]interface{} {
		return map[string]interface{}{
			"type":        "array",
			"description": desc,
			"items":       map[string]interface{}{"type": "object"},
		}
	}
	return mcp.Tool{
		Name:        "cross_reference",
		Description: "Link registry companies to property transfer and building permit parties, from inline records or a stored dataset",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"dataset": map[string]interface{}{
					"type":        "string",
					"description": "Name of an ingested dataset. When set, inline records are ignored",
				},
				"registry":          records("Corporate registry profiles (extractor output)"),
				"transfers":         records("Property transfer rows (extractor output)"),
				"permits":           records("Building permit rows (extractor output)"),
				"company_threshold": thresholdSchema(matcher.DefaultCompanyThreshold),
				"person_threshold":  thresholdSchema(matcher.DefaultPersonThreshold),
				"address_threshold": thresholdSchema(matcher.DefaultAddressThreshold),
				"link_people": map[string]interface{}{
					"type":        "boolean",
					"description": "Also match registry directors, officers and shareholders against transfer parties",
					"default":     false,
				},
				"link_addresses": map[string]interface{}{
					"type":        "boolean",
					"description": "Also match registry addresses against transfer and permit addresses",
					"default":     false,
				},
				"persist": map[string]interface{}{
					"type":        "boolean",
					"description": "Store the links for the dataset, replacing earlier links of the same kinds",
					"default":     false,
				},
			},
		},
	}
}

// ingestRecordsTool returns the tool definition for ingest_records
func ingestRecordsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "ingest_records",
		Description: "Ingest extractor JSON documents from a directory or file into a named dataset",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path to a directory of *.json documents or a single document",
				},
				"dataset": map[string]interface{}{
					"type":        "string",
					"description": "Dataset name; created on first ingest",
				},
				"force": map[string]interface{}{
					"type":        "boolean",
					"description": "If true, re-ingest all files ignoring file hashes",
					"default":     false,
				},
			},
			Required: []string{"path", "dataset"},
		},
	}
}

// getLinksTool returns the tool definition for get_links
func getLinksTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_links",
		Description: "List links stored for a dataset by an earlier persisted cross_reference",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"dataset": map[string]interface{}{
					"type":        "string",
					"description": "Dataset name",
				},
				"kinds": map[string]interface{}{
					"type":        "array",
					"description": "Link kinds to include (default all)",
					"items": map[string]interface{}{
						"type": "string",
						"enum": []string{"company", "person", "address"},
					},
				},
				"min_score": map[string]interface{}{
					"type":        "number",
					"description": "Minimum score (0.0-1.0)",
					"minimum":     0.0,
					"maximum":     1.0,
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of links (0 for all)",
					"default":     0,
					"minimum":     0,
				},
			},
			Required: []string{"dataset"},
		},
	}
}

// getStatusTool returns the tool definition for get_status
func getStatusTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_status",
		Description: "Query ingest and link statistics for a dataset, or list datasets when none is named",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"dataset": map[string]interface{}{
					"type":        "string",
					"description": "Dataset name",
				},
			},
		},
	}
}
