// Package server implements the MCP (Model Context Protocol) server for the pixel engine.
//
// This package provides a JSON-RPC 2.0 server that exposes the engine in
// internal/imaging through the MCP protocol. Images live in a named in-memory
// workspace; tools read images by name and store their results under new names,
// so a client can chain operations without touching the filesystem.
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
// Workspace:
//   - image_load: Read a file into the workspace
//   - image_save: Write a workspace image to a file
//   - image_info: Dimensions and fingerprint of a workspace image
//   - image_list: Every workspace image
//   - image_sample_color: RGB, hex and HSL of one pixel
//
// Point operations:
//   - image_brighten, image_darken: Add or subtract a constant
//   - image_flip: Mirror horizontally or vertically
//   - image_component: Visualize one component as a grey image
//   - image_rgb_split, image_rgb_combine: Separate and rejoin channels
//
// Filters:
//   - image_filter: Blur, sharpen, sepia, greyscale or color correction, with optional split preview
//   - image_histogram: Histogram chart, peaks and optional bins
//   - image_levels_adjust: Black/mid/white tone curve, with optional split preview
//   - image_compress: Haar wavelet compression
//   - image_downscale: Bilinear reduction
//   - image_partial: Apply an operation through a mask
//
// Batch:
//   - image_run_script: Run command-script lines against the workspace
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Usage
//
//	srv := server.New(server.WithVersion(version))
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
