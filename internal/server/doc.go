// Package server implements the MCP (Model Context Protocol) server for the
// stamp generator.
//
// This package provides a JSON-RPC 2.0 server that walks a client through one
// stamp session: load a photo, pick a circular region, synthesize the stamp
// and export it.
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
// Source:
//   - stamp_load_image: Decode a photo and frame it on the square canvas
//   - stamp_status: Report the session state
//
// Selection:
//   - stamp_pointer_down, stamp_pointer_move: Drive the drag tracker
//   - stamp_pointer_up, stamp_pointer_leave: End the drag
//   - stamp_select_circle: One-shot drag from corner to corner
//   - stamp_suggest_selection: Pick the most interesting circle automatically
//   - stamp_preview: Render the framed canvas with the selection outline
//
// Stamp:
//   - stamp_generate: Run the five-stage pipeline on the current selection
//   - stamp_export: Write the last stamp as PNG
//   - stamp_sample_color: Inspect one pixel of the last stamp
//
// # Session
//
// The server holds exactly one session: the loaded photo, its framing, the
// selection tracker and the last generated stamp. Tool calls are serialized
// on a mutex, so a generate always sees a settled selection. Loading a new
// photo resets the selection and discards the previous stamp.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// Exporting with an empty filename is not an error; the result simply
// reports exported=false.
//
// # Usage
//
//	srv, err := server.New(config.Default())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
