// Package mcp implements the Model Context Protocol (MCP) server for civiclink.
//
// The server exposes the entity resolution engine to MCP clients:
//   - match_company, match_person, match_address: score inline candidates
//     against a query
//   - cross_reference: link registry companies to transfer and permit
//     parties, from inline records or an ingested dataset
//   - ingest_records: load extractor JSON documents into a dataset
//   - get_links: list links persisted for a dataset
//   - get_status: dataset statistics, or the list of datasets
//
// # Protocol Overview
//
// MCP is a JSON-RPC 2.0 protocol over stdio transport:
//
//	Client → Server: {"method": "tools/call", "params": {...}}
//	Server → Client: {"result": {...}}
//
// Stdout carries the protocol, so all logging goes to stderr.
//
// # Basic Usage
//
//	civiclink serve
//
// # Tool: match_company
//
//	Request:
//	{
//	  "name": "match_company",
//	  "arguments": {
//	    "query": "102118427 Saskatchewan Ltd.",
//	    "candidates": [
//	      "Wright Construction Western Inc",
//	      {"name": "102118427 Sask. Inc", "source": "permit"}
//	    ],
//	    "threshold": 0.8
//	  }
//	}
//
//	Response:
//	{
//	  "query": "102118427 Saskatchewan Ltd.",
//	  "normalized_query": "102118427 saskatchewan",
//	  "kind": "company",
//	  "threshold": 0.8,
//	  "candidates_scored": 2,
//	  "match_count": 1,
//	  "matches": [
//	    {"name": "102118427 Sask. Inc", "source": "permit", "score": 1}
//	  ]
//	}
//
// match_person and match_address take the same arguments; address
// candidates use "address" instead of "name". Scores are rounded to three
// decimal places.
//
// # Tool: cross_reference
//
// With "dataset" the stored records of an ingested dataset are linked and
// may be persisted with "persist": true. Without it, "registry",
// "transfers" and "permits" carry extractor records inline; records that
// fail validation are listed under "rejected_records".
//
//	Response:
//	{
//	  "entity_links": [
//	    {
//	      "left_name": "102118427 Saskatchewan Ltd.",
//	      "left_source": "registry",
//	      "left_metadata": {"entity_number": "102118427"},
//	      "matched_name": "102118427 Saskatchewan Inc",
//	      "matched_source": "transfer",
//	      "score": 1
//	    }
//	  ],
//	  "registry_companies": 1,
//	  "transfer_companies": 2,
//	  "permit_companies": 2,
//	  "total_links_found": 1
//	}
//
// # Error Handling
//
// Failures are returned as MCPError values with JSON-RPC codes:
//   - -32602: Invalid parameters
//   - -32603: Internal error
//   - -32001: Ingest path missing or without JSON documents
//   - -32002: Ingest already in progress
//   - -32003: Dataset not ingested
//   - -32004: Empty query
//   - -32005: Threshold outside [0, 1]
//   - -32006: Malformed candidates
package mcp
