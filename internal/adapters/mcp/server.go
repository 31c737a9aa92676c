// Package mcp exposes the triage engine as MCP tools over stdio, so
// LLM agents can drive the symptom checker and classifier directly.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	medtriage "github.com/careline/medtriage"
	"github.com/careline/medtriage/pkg/domain"
)

// Engine defines the triage core as seen from the MCP boundary.
type Engine interface {
	StartSession(ctx context.Context) (*domain.Prompt, error)
	Answer(ctx context.Context, sessionID string, optionIndex int) (*domain.Step, error)
	Classify(ctx context.Context, text string, history []domain.Turn) (*domain.Classification, error)
}

// Server wraps the triage engine and exposes it as an MCP server.
type Server struct {
	engine    Engine
	mcpServer *server.MCPServer
}

// NewServer creates an MCP server over the engine.
func NewServer(engine Engine) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("medtriage-mcp", medtriage.Version),
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("triage_classify",
		mcp.WithDescription("Triage a free-text health message: emergency scan, entity extraction, and intent classification."),
		mcp.WithString("message", mcp.Required(), mcp.Description("The user's message")),
		mcp.WithString("history", mcp.Description("JSON array of {role, content} turns for context (optional)")),
	), s.handleClassify)

	s.mcpServer.AddTool(mcp.NewTool("symptom_start",
		mcp.WithDescription("Start a guided symptom-checker session and get the first question."),
	), s.handleStart)

	s.mcpServer.AddTool(mcp.NewTool("symptom_answer",
		mcp.WithDescription("Answer the current symptom-checker question by option index. Returns the next question or the final assessment."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID from symptom_start")),
		mcp.WithNumber("option_index", mcp.Required(), mcp.Description("Zero-based index of the chosen option")),
	), s.handleAnswer)
}

func (s *Server) handleClassify(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	message, err := request.RequireString("message")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var history []domain.Turn
	if raw := request.GetString("history", ""); raw != "" {
		if err := json.Unmarshal([]byte(raw), &history); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid history: %v", err)), nil
		}
	}

	result, err := s.engine.Classify(ctx, message, history)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("classify failed: %v", err)), nil
	}
	return toolResultJSON(result)
}

func (s *Server) handleStart(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	prompt, err := s.engine.StartSession(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("start failed: %v", err)), nil
	}
	return toolResultJSON(prompt)
}

func (s *Server) handleAnswer(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	optionIndex, err := request.RequireInt("option_index")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	step, err := s.engine.Answer(ctx, sessionID, optionIndex)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("answer failed: %v", err)), nil
	}
	return toolResultJSON(step)
}

func toolResultJSON(payload any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
