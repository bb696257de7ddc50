package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"testing"

	"github.com/ironsheep/pixel-engine-mcp/internal/workspace"
)

func TestNew(t *testing.T) {
	s := New()
	if s == nil {
		t.Fatal("New() returned nil")
	}
	if s.Store() == nil {
		t.Fatal("New() did not initialize workspace")
	}
	if s.version != "dev" {
		t.Errorf("default version: got %q, want dev", s.version)
	}
}

func TestNew_Options(t *testing.T) {
	store := workspace.NewStore()
	s := New(WithStore(store), WithVersion("1.2.3"))
	if s.Store() != store {
		t.Error("WithStore was not applied")
	}
	if s.version != "1.2.3" {
		t.Errorf("version: got %q, want 1.2.3", s.version)
	}
}

func TestHandleRequest_ToolsList(t *testing.T) {
	s := New()
	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 1, Method: "tools/list"})

	if resp == nil || resp.Error != nil {
		t.Fatalf("unexpected response: %+v", resp)
	}
	result := resp.Result.(map[string]interface{})
	toolsList, ok := result["tools"].([]Tool)
	if !ok {
		t.Fatal("tools should be a slice of Tool")
	}
	if len(toolsList) != len(GetToolDefinitions()) {
		t.Errorf("tools: got %d, want %d", len(toolsList), len(GetToolDefinitions()))
	}
}

func TestHandleRequest_MethodNotFound(t *testing.T) {
	s := New()
	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 1, Method: "resources/list"})

	if resp == nil || resp.Error == nil {
		t.Fatal("Expected error for unknown method")
	}
	if resp.Error.Code != -32601 {
		t.Errorf("Error code: got %d, want -32601", resp.Error.Code)
	}
	if !strings.Contains(resp.Error.Message, "resources/list") {
		t.Errorf("message should name the method: %q", resp.Error.Message)
	}
}

func TestHandleInitialize(t *testing.T) {
	s := New(WithVersion("2.1.0"))
	resp := s.handleInitialize(&MCPRequest{JSONRPC: "2.0", ID: "init-1"})

	if resp.ID != "init-1" {
		t.Errorf("ID: got %v, want init-1", resp.ID)
	}
	result := resp.Result.(map[string]interface{})
	if result["protocolVersion"] != "2024-11-05" {
		t.Errorf("protocolVersion: got %v", result["protocolVersion"])
	}
	if instr, _ := result["instructions"].(string); !strings.Contains(instr, "image_load") {
		t.Errorf("instructions should mention image_load: %q", instr)
	}

	serverInfo := result["serverInfo"].(map[string]interface{})
	if serverInfo["name"] != ServerName || serverInfo["version"] != "2.1.0" {
		t.Errorf("serverInfo: got %v", serverInfo)
	}
}

func TestServe_RequestsAndNotifications(t *testing.T) {
	s := New()
	in := strings.NewReader(
		`{"jsonrpc":"2.0","id":1,"method":"initialize"}` + "\n" +
			`{"jsonrpc":"2.0","method":"notifications/initialized"}` + "\n" +
			"\n" +
			`{"jsonrpc":"2.0","id":2,"method":"ping"}` + "\n")
	var out bytes.Buffer

	if err := s.Serve(context.Background(), in, &out); err != nil {
		t.Fatalf("Serve failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 responses, got %d: %q", len(lines), out.String())
	}

	var first, second MCPResponse
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("bad first response: %v", err)
	}
	if err := json.Unmarshal([]byte(lines[1]), &second); err != nil {
		t.Fatalf("bad second response: %v", err)
	}
	if first.ID != float64(1) || second.ID != float64(2) {
		t.Errorf("IDs: got %v and %v, want 1 and 2", first.ID, second.ID)
	}
	if first.Error != nil || second.Error != nil {
		t.Errorf("unexpected errors: %v, %v", first.Error, second.Error)
	}
}

func TestServe_ParseError(t *testing.T) {
	s := New()
	in := strings.NewReader("{not json}\n" + `{"jsonrpc":"2.0","id":7,"method":"ping"}` + "\n")
	var out bytes.Buffer

	if err := s.Serve(context.Background(), in, &out); err != nil {
		t.Fatalf("Serve failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 responses, got %d", len(lines))
	}

	var resp MCPResponse
	if err := json.Unmarshal([]byte(lines[0]), &resp); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if resp.Error == nil || resp.Error.Code != -32700 {
		t.Fatalf("expected parse error -32700, got %+v", resp.Error)
	}
	if resp.ID != nil {
		t.Errorf("parse error ID: got %v, want nil", resp.ID)
	}
}

func TestServe_Cancelled(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := s.Serve(ctx, strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"ping"}`+"\n"), &out)
	if err != context.Canceled {
		t.Errorf("Serve error: got %v, want context.Canceled", err)
	}
	if out.Len() != 0 {
		t.Errorf("expected no output after cancellation, got %q", out.String())
	}
}

func TestSetLogger(t *testing.T) {
	var lines []string
	SetLogger(func(format string, args ...interface{}) {
		lines = append(lines, fmt.Sprintf(format, args...))
	})
	defer SetLogger(log.Printf)

	SetDebug(true)
	defer SetDebug(false)

	s := New()
	var out bytes.Buffer
	if err := s.Serve(context.Background(), strings.NewReader("garbage\n"), &out); err != nil {
		t.Fatalf("Serve failed: %v", err)
	}

	if len(lines) == 0 {
		t.Fatal("expected the parse failure to be logged")
	}
	if !strings.Contains(lines[0], "Failed to parse request") {
		t.Errorf("log line: got %q", lines[0])
	}
}
