// Package schemas holds the JSON Schema documents for persisted and exchanged artifacts.
package schemas

import "embed"

// FS contains every *.schema.json file in this directory.
//
//go:embed *.schema.json
var FS embed.FS

// Schema file names.
const (
	Resume   = "resume.schema.json"
	Analysis = "analysis.schema.json"
)
