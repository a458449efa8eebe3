// Package mcp serves the document tools over the Model Context Protocol:
// newline-delimited JSON-RPC 2.0 on a pair of streams, normally stdin and
// stdout.
package mcp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/tsawler/docxedit/tools"
)

// Server identity reported by initialize
const (
	ServerName   = "DocxProcessor"
	Instructions = "Word document processing service, providing functions to create, edit, and query documents"
)

const maxMessageSize = 16 << 20

// Server answers MCP requests one at a time, so every command against the
// registry's session runs to completion before the next starts.
type Server struct {
	// Version is reported in serverInfo
	Version string

	reg *tools.Registry
	in  io.Reader
	out io.Writer
	log *zap.Logger
}

// NewServer creates a server reading requests from in and writing responses
// to out.
func NewServer(reg *tools.Registry, in io.Reader, out io.Writer, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{Version: "dev", reg: reg, in: in, out: out, log: log.Named("mcp")}
}

// Serve handles requests until the input ends, which returns nil, or ctx is
// cancelled, which returns ctx.Err().
func (s *Server) Serve(ctx context.Context) error {
	lines := make(chan []byte)
	readErr := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)

	go func() {
		scanner := bufio.NewScanner(s.in)
		scanner.Buffer(make([]byte, 64*1024), maxMessageSize)
		for scanner.Scan() {
			line := bytes.Clone(scanner.Bytes())
			select {
			case lines <- line:
			case <-done:
				return
			}
		}
		readErr <- scanner.Err()
	}()

	s.log.Info("server started", zap.Int("tools", s.reg.Count()))
	for {
		select {
		case <-ctx.Done():
			s.log.Info("server stopping", zap.Error(ctx.Err()))
			return ctx.Err()
		case err := <-readErr:
			if err != nil {
				return fmt.Errorf("failed to read request: %w", err)
			}
			s.log.Info("input closed")
			return nil
		case line := <-lines:
			if len(bytes.TrimSpace(line)) == 0 {
				continue
			}
			if resp := s.handle(ctx, line); resp != nil {
				if err := s.write(resp); err != nil {
					return err
				}
			}
		}
	}
}

func (s *Server) write(resp *response) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}
	if _, err := s.out.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write response: %w", err)
	}
	return nil
}

var nullID = json.RawMessage("null")

func errorResponse(id json.RawMessage, code int, msg string) *response {
	if len(id) == 0 {
		id = nullID
	}
	return &response{JSONRPC: "2.0", ID: id, Error: &rpcError{Code: code, Message: msg}}
}

// handle answers one message. Notifications get no response.
func (s *Server) handle(ctx context.Context, line []byte) *response {
	var req request
	if err := json.Unmarshal(line, &req); err != nil {
		s.log.Warn("malformed request", zap.Error(err))
		return errorResponse(nil, codeParseError, "parse error: "+err.Error())
	}
	if req.Method == "" {
		return errorResponse(req.ID, codeInvalidRequest, "invalid request: missing method")
	}

	log := s.log.With(zap.String("method", req.Method))
	if req.isNotification() {
		log.Debug("notification")
		return nil
	}
	log.Debug("request", zap.ByteString("id", req.ID))

	result, rerr := s.dispatch(ctx, &req)
	if rerr != nil {
		return errorResponse(req.ID, rerr.Code, rerr.Message)
	}
	return &response{JSONRPC: "2.0", ID: req.ID, Result: result}
}

func (s *Server) dispatch(ctx context.Context, req *request) (any, *rpcError) {
	switch req.Method {
	case "initialize":
		return initializeResult{
			ProtocolVersion: ProtocolVersion,
			Capabilities:    capabilities{Tools: toolsCapability{}},
			ServerInfo:      serverInfo{Name: ServerName, Version: s.Version},
			Instructions:    Instructions,
		}, nil
	case "ping":
		return struct{}{}, nil
	case "tools/list":
		return listToolsResult{Tools: Schemas(s.reg)}, nil
	case "tools/call":
		return s.callTool(ctx, req.Params)
	}
	return nil, &rpcError{Code: codeMethodNotFound, Message: "method not found: " + req.Method}
}

func (s *Server) callTool(ctx context.Context, params json.RawMessage) (any, *rpcError) {
	var p callParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, &rpcError{Code: codeInvalidParams, Message: "invalid params: " + err.Error()}
	}
	if p.Name == "" {
		return nil, &rpcError{Code: codeInvalidParams, Message: "invalid params: missing tool name"}
	}

	res := s.reg.Call(ctx, p.Name, p.Arguments)
	if tools.IsNotFound(res.Err) {
		return nil, &rpcError{Code: codeInvalidParams, Message: res.Err.Error()}
	}
	return callResult{
		Content: []textContent{{Type: "text", Text: res.Status()}},
		IsError: !res.OK(),
	}, nil
}

// Schemas lists the registry's tools the way tools/list reports them.
func Schemas(reg *tools.Registry) []ToolSchema {
	all := reg.All()
	out := make([]ToolSchema, len(all))
	for i, t := range all {
		out[i] = ToolSchema{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: InputSchema{
				Type:       "object",
				Properties: t.Schema.Properties,
				Required:   t.Schema.Required,
			},
		}
	}
	return out
}
