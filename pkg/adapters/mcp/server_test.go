package mcp

import (
	"context"
	"testing"

	espalier "github.com/aretw0/espalier"
	"github.com/aretw0/espalier/pkg/config"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/token"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	eng, err := espalier.New()
	require.NoError(t, err)
	return NewServer(eng)
}

func TestHandleParseToken(t *testing.T) {
	s := newTestServer(t)

	resp, err := s.handleParseToken(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"text": "π:E(transcend)PARADOX@3",
	})
	require.NoError(t, err)
	assert.Equal(t, "π", resp.Field)
	assert.Equal(t, "transcend", resp.Intent)
	assert.Equal(t, 3, resp.Tier)
	assert.Equal(t, "π:E(transcend)PARADOX@3", resp.Canonical)

	_, err = s.handleParseToken(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"text": "nonsense",
	})
	assert.Error(t, err)
}

func TestHandleValidateOperator(t *testing.T) {
	s := newTestServer(t)

	resp, err := s.handleValidateOperator(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"operator": "Amplify",
	})
	require.NoError(t, err)
	assert.False(t, resp.Legal)
	assert.Equal(t, domain.CodeGrounding, resp.Code)

	resp, err = s.handleValidateOperator(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"operator": "Amplify",
		"history":  `["Boundary"]`,
	})
	require.NoError(t, err)
	assert.True(t, resp.Legal)

	resp, err = s.handleValidateOperator(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"operator":    "Fusion",
		"input_count": float64(1),
	})
	require.NoError(t, err)
	assert.False(t, resp.Legal)
	assert.Equal(t, domain.CodePlurality, resp.Code)
}

func TestHandleSelectOperator(t *testing.T) {
	s := newTestServer(t)

	decision, err := s.handleSelectOperator(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"phase": "P1",
		"scale": config.ScaleFine,
	})
	require.NoError(t, err)
	assert.Equal(t, token.OpBoundary, decision.Operator)
	assert.Len(t, decision.Candidates, 6)

	_, err = s.handleSelectOperator(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"phase": "P9",
		"scale": config.ScaleFine,
	})
	assert.Error(t, err)
}
