// Package server implements an MCP (Model Context Protocol) server exposing
// the dataset preparation steps as tools.
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - word_boxes: Word boxes from a text/link score map pair
//   - dataset_partition: Seeded training/validation/evaluation splits
//   - extract_patches: Crop annotated words into patches and the label ledger
//   - ocr_patch: Tesseract baseline on a patch or page region
//   - image_dimensions: Get width and height
//
// Omitted optional arguments take the values of the Defaults the server was
// created with, normally the loaded configuration.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with code
// -32000 and the Go error string as data. Logs go to the logger passed to
// New, never to stdout.
package server
