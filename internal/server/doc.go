// Package server implements the MCP (Model Context Protocol) inspection
// server for the document scanner.
//
// The server exposes each stage of the scanning pipeline on image files so a
// client can see why a frame did or did not yield a document. It shares the
// pipeline and its parameters with the scan loop; nothing here has its own
// detection logic.
//
// # Protocol
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
//   - document_preprocess: Binary edge map
//   - document_detect: Corners and area of the selected quadrilateral
//   - document_rectify: Perspective-corrected page
//   - document_debug_view: 2x2 diagnostic tile view
//   - document_compare: Rectify and diff against a reference scan
//
// Images are returned as base64-encoded PNG.
//
// # Frame Caching
//
// Frames are decoded, normalised to the working geometry and cached by path
// for the lifetime of the process.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
package server
