// Package schemas embeds the JSON Schema documents for structured model output.
package schemas

import "embed"

// Files holds every *.schema.json document in this directory.
//
//go:embed *.schema.json
var Files embed.FS

// Classification is the file name of the rubric classification schema.
const Classification = "classification.schema.json"
