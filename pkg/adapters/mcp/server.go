// Package mcp exposes the engine as an MCP server so agent tooling can
// parse tokens, check legality and request decisions over JSON-RPC.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	espalier "github.com/aretw0/espalier"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/token"
)

// Engine defines the interface required by the MCP server.
type Engine interface {
	ParseToken(text string) (token.Token, error)
	ValidateOperator(app domain.Application, history domain.History, state domain.ScalarStateVector) error
	SelectNextOperator(sel domain.Selection) (domain.Decision, error)
}

// TokenResponse is the structured output of parse_token.
type TokenResponse struct {
	Field     string `json:"field" jsonschema_description:"Field symbol"`
	Machine   string `json:"machine" jsonschema_description:"Machine code"`
	Intent    string `json:"intent" jsonschema_description:"Operator intent label"`
	Truth     string `json:"truth" jsonschema_description:"Truth state"`
	Tier      int    `json:"tier" jsonschema_description:"Tier 1-3"`
	Canonical string `json:"canonical" jsonschema_description:"Canonical token text"`
}

// ValidationResponse is the structured output of validate_operator.
type ValidationResponse struct {
	Legal     bool   `json:"legal"`
	Code      string `json:"code,omitempty" jsonschema_description:"Structural rule code when breached"`
	Violation string `json:"violation,omitempty"`
}

// Server wraps the engine and exposes it as an MCP server.
type Server struct {
	engine    Engine
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("espalier-mcp", strings.TrimSpace(espalier.Version)),
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	parseTool := mcp.NewTool("parse_token",
		mcp.WithDescription("Parse canonical token text of the form Field:Machine(Operator)TruthState@Tier."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Token text to parse")),
		mcp.WithOutputSchema[TokenResponse](),
	)
	s.mcpServer.AddTool(parseTool, mcp.NewStructuredToolHandler(s.handleParseToken))

	validateTool := mcp.NewTool("validate_operator",
		mcp.WithDescription("Check a prospective operator application against the structural rules and scalar thresholds."),
		mcp.WithString("operator", mcp.Required(), mcp.Description("Canonical operator name")),
		mcp.WithNumber("input_count", mcp.Description("Number of inputs for a Fusion application")),
		mcp.WithString("successor", mcp.Description("Planned next operator (optional)")),
		mcp.WithString("history", mcp.Description("JSON array of applied operators (optional)")),
		mcp.WithString("state", mcp.Description("JSON scalar state vector; defaults to the reference start")),
		mcp.WithOutputSchema[ValidationResponse](),
	)
	s.mcpServer.AddTool(validateTool, mcp.NewStructuredToolHandler(s.handleValidateOperator))

	selectTool := mcp.NewTool("select_operator",
		mcp.WithDescription("Run the decision pipeline and return the minimum-cost operator with the candidate table."),
		mcp.WithString("phase", mcp.Required(), mcp.Description("Current phase P1-P5")),
		mcp.WithString("scale", mcp.Required(), mcp.Description("Temporal scale name")),
		mcp.WithString("history", mcp.Description("JSON array of applied operators (optional)")),
		mcp.WithString("state", mcp.Description("JSON scalar state vector; defaults to the reference start")),
		mcp.WithNumber("input_count", mcp.Description("Number of inputs for a Fusion candidate")),
		mcp.WithOutputSchema[domain.Decision](),
	)
	s.mcpServer.AddTool(selectTool, mcp.NewStructuredToolHandler(s.handleSelectOperator))
}

func (s *Server) handleParseToken(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (TokenResponse, error) {
	text, _ := args["text"].(string)

	parsed, err := s.engine.ParseToken(text)
	if err != nil {
		return TokenResponse{}, fmt.Errorf("parse failed: %w", err)
	}

	return TokenResponse{
		Field:     string(parsed.Field),
		Machine:   string(parsed.Machine),
		Intent:    parsed.Intent,
		Truth:     string(parsed.Truth),
		Tier:      parsed.Tier,
		Canonical: parsed.String(),
	}, nil
}

func (s *Server) handleValidateOperator(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ValidationResponse, error) {
	app, history, state, err := decodeApplication(args)
	if err != nil {
		return ValidationResponse{}, err
	}

	if err := s.engine.ValidateOperator(app, history, state); err != nil {
		resp := ValidationResponse{Violation: err.Error()}
		var lv *domain.LegalityViolation
		if errors.As(err, &lv) {
			resp.Code = lv.Code
		}
		return resp, nil
	}
	return ValidationResponse{Legal: true}, nil
}

func (s *Server) handleSelectOperator(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (domain.Decision, error) {
	phaseStr, _ := args["phase"].(string)
	phase := domain.Phase(phaseStr)
	if !phase.Valid() {
		return domain.Decision{}, fmt.Errorf("unknown phase %q", phaseStr)
	}
	scale, _ := args["scale"].(string)

	history, err := decodeHistory(args)
	if err != nil {
		return domain.Decision{}, err
	}
	state, err := decodeState(args)
	if err != nil {
		return domain.Decision{}, err
	}
	inputCount, _ := args["input_count"].(float64)

	decision, err := s.engine.SelectNextOperator(domain.Selection{
		State:      state,
		Phase:      phase,
		History:    history,
		Scale:      scale,
		InputCount: int(inputCount),
	})
	if err != nil {
		return domain.Decision{}, fmt.Errorf("selection failed: %w", err)
	}
	return decision, nil
}

func decodeApplication(args map[string]interface{}) (domain.Application, domain.History, domain.ScalarStateVector, error) {
	opLabel, _ := args["operator"].(string)
	op, ok := token.ParseOperator(opLabel)
	if !ok {
		return domain.Application{}, nil, domain.ScalarStateVector{}, fmt.Errorf("unknown operator %q", opLabel)
	}

	app := domain.Application{Operator: op}
	if count, ok := args["input_count"].(float64); ok {
		app.InputCount = int(count)
	}
	if succLabel, ok := args["successor"].(string); ok && succLabel != "" {
		succ, ok := token.ParseOperator(succLabel)
		if !ok {
			return domain.Application{}, nil, domain.ScalarStateVector{}, fmt.Errorf("unknown successor %q", succLabel)
		}
		app.Successor = &succ
	}

	history, err := decodeHistory(args)
	if err != nil {
		return domain.Application{}, nil, domain.ScalarStateVector{}, err
	}
	state, err := decodeState(args)
	if err != nil {
		return domain.Application{}, nil, domain.ScalarStateVector{}, err
	}
	return app, history, state, nil
}

func decodeHistory(args map[string]interface{}) (domain.History, error) {
	histStr, ok := args["history"].(string)
	if !ok || histStr == "" {
		return nil, nil
	}

	var labels []string
	if err := json.Unmarshal([]byte(histStr), &labels); err != nil {
		return nil, fmt.Errorf("invalid history: %w", err)
	}

	history := make(domain.History, 0, len(labels))
	for _, label := range labels {
		op, ok := token.ParseOperator(label)
		if !ok {
			return nil, fmt.Errorf("unknown operator %q in history", label)
		}
		history = append(history, op)
	}
	return history, nil
}

func decodeState(args map[string]interface{}) (domain.ScalarStateVector, error) {
	stateStr, ok := args["state"].(string)
	if !ok || stateStr == "" {
		return domain.DefaultState(), nil
	}

	state := domain.DefaultState()
	if err := json.Unmarshal([]byte(stateStr), &state); err != nil {
		return domain.ScalarStateVector{}, fmt.Errorf("invalid state: %w", err)
	}
	return state, nil
}
