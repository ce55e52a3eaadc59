package mcp

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	funnelfy "github.com/euwesleysilv4/meu-app-digitfy-sub003"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/internal/logging"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/domain"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/ports"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/portable"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// TemplatesURI is the resource listing every stored template.
const TemplatesURI = "funnelfy://templates"

// ValidationReport is the structured result of validate_document.
type ValidationReport struct {
	Valid  bool     `json:"valid" jsonschema_description:"Whether the document can be loaded into the editor"`
	Steps  int      `json:"steps" jsonschema_description:"Number of steps in the document"`
	Errors []string `json:"errors,omitempty" jsonschema_description:"Every rule violation found"`
}

// ValidateArgs are the arguments of validate_document.
type ValidateArgs struct {
	Document string `json:"document"`
	Format   string `json:"format,omitempty"`
}

// Server exposes the template store as an MCP Server.
type Server struct {
	store     ports.DocumentStore
	capturer  ports.ImageCapturer
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithImageCapturer sets the capturer used by png exports.
func WithImageCapturer(c ports.ImageCapturer) Option {
	return func(s *Server) {
		s.capturer = c
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(store ports.DocumentStore, opts ...Option) *Server {
	s := &Server{
		store:     store,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("funnelfy-mcp", strings.TrimSpace(funnelfy.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("list_templates",
		mcp.WithDescription("List stored funnel templates, most recently saved first."),
	), s.handleListTemplates)

	s.mcpServer.AddTool(mcp.NewTool("get_template",
		mcp.WithDescription("Get the portable JSON document of a stored funnel template."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Template ID")),
	), s.handleGetTemplate)

	s.mcpServer.AddTool(mcp.NewTool("export_template",
		mcp.WithDescription("Export a stored funnel template as json, yaml, mermaid or png."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Template ID")),
		mcp.WithString("format", mcp.Description("Export format (default json)"),
			mcp.Enum("json", "yaml", "mermaid", "png")),
	), s.handleExportTemplate)

	s.mcpServer.AddTool(mcp.NewTool("validate_document",
		mcp.WithDescription("Check that a funnel document is well formed and acyclic."),
		mcp.WithString("document", mcp.Required(), mcp.Description("The document, as JSON or YAML text")),
		mcp.WithString("format", mcp.Description("json (default) or yaml")),
		mcp.WithOutputSchema[ValidationReport](),
	), mcp.NewStructuredToolHandler(s.handleValidate))
}

func (s *Server) handleListTemplates(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	list, err := s.store.List(ctx)
	if err != nil {
		s.logger.Error("MCP list_templates failed", "err", err)
		return mcp.NewToolResultError("listing templates failed, try again"), nil
	}
	jsonBytes, _ := json.Marshal(list)
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleGetTemplate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	doc, err := s.store.Load(ctx, id)
	if err != nil {
		return s.storeError(err), nil
	}
	out, err := portable.EncodeJSON(doc)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) handleExportTemplate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	format, err := portable.ParseFormat(request.GetString("format", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	doc, err := s.store.Load(ctx, id)
	if err != nil {
		return s.storeError(err), nil
	}

	opts := []funnelfy.Option{funnelfy.WithDocument(doc), funnelfy.WithLogger(s.logger)}
	if s.capturer != nil {
		opts = append(opts, funnelfy.WithImageCapturer(s.capturer))
	}
	ed, err := funnelfy.New(opts...)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, err := ed.Export(ctx, string(format))
	if err != nil {
		s.logger.Error("MCP export failed", "template_id", id, "format", format, "err", err)
		return mcp.NewToolResultError("export failed, try again"), nil
	}

	if format == portable.FormatPNG {
		return mcp.NewToolResultImage(doc.Name, base64.StdEncoding.EncodeToString(out), format.ContentType()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) handleValidate(ctx context.Context, request mcp.CallToolRequest, args ValidateArgs) (ValidationReport, error) {
	format := portable.FormatJSON
	if args.Format == string(portable.FormatYAML) {
		format = portable.FormatYAML
	}
	doc, err := portable.Decode(format, []byte(args.Document))
	if err != nil {
		return ValidationReport{Errors: []string{err.Error()}}, nil
	}

	report := ValidationReport{Valid: true, Steps: len(doc.Nodes)}
	if err := portable.Validate(doc); err != nil {
		report.Valid = false
		for _, fe := range portable.ValidationErrors(err) {
			report.Errors = append(report.Errors, fe.Error())
		}
	}
	return report, nil
}

func (s *Server) storeError(err error) *mcp.CallToolResult {
	if errors.Is(err, domain.ErrDocumentNotFound) {
		return mcp.NewToolResultError(err.Error())
	}
	s.logger.Error("MCP store access failed", "err", err)
	return mcp.NewToolResultError("operation failed, try again")
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(TemplatesURI, "Stored Funnel Templates",
		mcp.WithMIMEType("application/json"),
	), s.readTemplates)
}

func (s *Server) readTemplates(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	list, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	jsonBytes, _ := json.Marshal(list)

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      TemplatesURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
