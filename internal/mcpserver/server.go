// Package mcpserver exposes artifact generation as a protocol tool over
// line-delimited JSON-RPC.
//
// Requests for tools/generate_artifacts are answered directly. Standard MCP
// methods are handed to an mcp-go server that offers the same operation as
// the generate_artifacts tool. Anything else gets an "Unknown method" text
// payload rather than a protocol error.
package mcpserver

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/harrison/pagegen/internal/config"
	"github.com/harrison/pagegen/internal/generator"
	"github.com/harrison/pagegen/internal/logger"
	"github.com/harrison/pagegen/internal/models"
)

const (
	// ServerName is reported to clients during initialize
	ServerName = "pagegen"

	// MethodGenerateArtifacts is the direct JSON-RPC method name
	MethodGenerateArtifacts = "tools/generate_artifacts"

	// ToolName is the name the operation is listed under in tools/list
	ToolName = "generate_artifacts"

	maxLineSize = 4 * 1024 * 1024
)

// Options carries the defaults applied to every tool invocation.
type Options struct {
	Version string

	WorkDir     string
	ProjectRoot string

	// Prompt, Platform, JavaRoot and ResRoot fill parameters the caller omits
	Prompt   string
	Platform string
	JavaRoot string
	ResRoot  string

	// Defaults are the project naming defaults
	Defaults models.NameHints
}

// GenerateParams are the parameters of one generate_artifacts invocation.
// Empty fields take the server defaults.
type GenerateParams struct {
	PromptPath string `json:"promptPath"`
	Platform   string `json:"platform"`
	JavaRoot   string `json:"javaRoot"`
	ResRoot    string `json:"resRoot"`
}

// Server answers protocol requests. Generation runs are serialized.
type Server struct {
	mu     sync.Mutex
	gen    *generator.Generator
	mcp    *server.MCPServer
	logger logger.Logger
	opts   Options
}

// New creates a Server around gen. A nil log discards diagnostics.
func New(gen *generator.Generator, log logger.Logger, opts Options) *Server {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}

	s := &Server{
		gen:    gen,
		logger: log,
		opts:   opts,
	}

	s.mcp = server.NewMCPServer(
		ServerName,
		opts.Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)
	s.mcp.AddTool(toolDefinition(), s.handleTool)

	return s
}

func toolDefinition() mcp.Tool {
	return mcp.NewTool(ToolName,
		mcp.WithDescription("Generate a page object, step definitions and a feature file from a prompt document."),
		mcp.WithString("promptPath",
			mcp.Description("Prompt document path, absolute or relative to the server's working directory"),
		),
		mcp.WithString("platform",
			mcp.Description("Target platform; only \"ios\" selects iOS"),
			mcp.Enum(string(models.PlatformAndroid), string(models.PlatformIOS)),
		),
		mcp.WithString("javaRoot",
			mcp.Description("Source root for page and step classes, relative to the project root"),
		),
		mcp.WithString("resRoot",
			mcp.Description("Resource root for feature files, relative to the project root"),
		),
	)
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// Generate runs one generation with params over the server defaults.
// Only one run executes at a time.
func (s *Server) Generate(params GenerateParams) (*models.GenerationResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	opts := models.GenerationOptions{
		PromptPath:  firstNonEmpty(params.PromptPath, s.opts.Prompt, config.DefaultPrompt),
		Platform:    models.ParsePlatform(firstNonEmpty(params.Platform, s.opts.Platform)),
		JavaRoot:    firstNonEmpty(params.JavaRoot, s.opts.JavaRoot),
		ResRoot:     firstNonEmpty(params.ResRoot, s.opts.ResRoot),
		WorkDir:     s.opts.WorkDir,
		ProjectRoot: s.opts.ProjectRoot,
		Defaults:    s.opts.Defaults,
	}
	return s.gen.Generate(opts)
}

func (s *Server) handleTool(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := GenerateParams{
		PromptPath: req.GetString("promptPath", ""),
		Platform:   req.GetString("platform", ""),
		JavaRoot:   req.GetString("javaRoot", ""),
		ResRoot:    req.GetString("resRoot", ""),
	}

	result, err := s.Generate(params)
	if err != nil {
		s.logger.LogError(fmt.Sprintf("%s failed: %v", ToolName, err))
		return mcp.NewToolResultError(err.Error()), nil
	}

	text, err := resultText(result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(text), nil
}

func resultText(result *models.GenerationResult) (string, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding generation result: %w", err)
	}
	return string(data), nil
}

type request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *responseError  `json:"error,omitempty"`
}

type responseError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// HandleMessage answers one JSON-RPC message. It returns nil when no reply
// is due, which is the case for notifications.
func (s *Server) HandleMessage(ctx context.Context, raw json.RawMessage) any {
	var req request
	if err := json.Unmarshal(raw, &req); err != nil {
		return errorResponse(nil, mcp.PARSE_ERROR, fmt.Sprintf("parse error: %v", err))
	}
	s.logger.LogDebug(fmt.Sprintf("request: method=%s", req.Method))

	if isStandardMethod(req.Method) {
		reply := s.mcp.HandleMessage(ctx, raw)
		if reply == nil {
			return nil
		}
		return reply
	}

	notification := len(req.ID) == 0

	if req.Method != MethodGenerateArtifacts {
		if notification {
			return nil
		}
		return resultResponse(req.ID, mcp.NewToolResultText("Unknown method: "+req.Method))
	}

	var params GenerateParams
	if len(req.Params) > 0 && !bytes.Equal(bytes.TrimSpace(req.Params), []byte("null")) {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return errorResponse(req.ID, mcp.INVALID_PARAMS, fmt.Sprintf("invalid params: %v", err))
		}
	}

	result, err := s.Generate(params)
	if err != nil {
		s.logger.LogError(fmt.Sprintf("%s failed: %v", req.Method, err))
		if notification {
			return nil
		}
		return errorResponse(req.ID, mcp.INTERNAL_ERROR, err.Error())
	}
	if notification {
		return nil
	}

	text, err := resultText(result)
	if err != nil {
		return errorResponse(req.ID, mcp.INTERNAL_ERROR, err.Error())
	}
	return resultResponse(req.ID, mcp.NewToolResultText(text))
}

// Serve reads one JSON-RPC message per line from in and writes each reply as
// one line to out. It returns nil when in is exhausted and ctx.Err() as soon
// as ctx is cancelled, even while a read is blocked.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	lines := make(chan []byte)
	readErr := make(chan error, 1)
	stop := make(chan struct{})
	defer close(stop)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
		for scanner.Scan() {
			line := bytes.TrimSpace(scanner.Bytes())
			if len(line) == 0 {
				continue
			}
			msg := make([]byte, len(line))
			copy(msg, line)
			select {
			case lines <- msg:
			case <-stop:
				return
			}
		}
		readErr <- scanner.Err()
	}()

	enc := json.NewEncoder(out)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-lines:
			if !ok {
				if err := <-readErr; err != nil {
					return fmt.Errorf("reading requests: %w", err)
				}
				return nil
			}

			reply := s.HandleMessage(ctx, json.RawMessage(msg))
			if reply == nil {
				continue
			}
			if err := enc.Encode(reply); err != nil {
				return fmt.Errorf("writing response: %w", err)
			}
		}
	}
}

func isStandardMethod(method string) bool {
	switch method {
	case string(mcp.MethodInitialize), string(mcp.MethodPing),
		string(mcp.MethodToolsList), string(mcp.MethodToolsCall):
		return true
	}
	return strings.HasPrefix(method, "notifications/")
}

func resultResponse(id json.RawMessage, result any) *response {
	return &response{JSONRPC: mcp.JSONRPC_VERSION, ID: id, Result: result}
}

func errorResponse(id json.RawMessage, code int, message string) *response {
	return &response{
		JSONRPC: mcp.JSONRPC_VERSION,
		ID:      id,
		Error:   &responseError{Code: code, Message: message},
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
