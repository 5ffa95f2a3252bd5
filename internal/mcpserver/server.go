// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes smdconv capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/smdconv"
)

const serverInstructions = `smdconv MCP server: converts log odds ratios to standardised mean differences (SMDs) and pools them with a meta-analysis engine.

Datasets are YAML or JSON. A dataset holds either a studies list (each row with lnOR, selnOR and optional study, subset, exclude) or a prior odds ratio meta-analysis (prior: {sm: OR, te: [...], se_te: [...]}). Never both.

Methods: HH (Hasselblad-Hedges, lnOR * sqrt(3)/pi) and CS (Cox-Snell, lnOR / 1.65). Unambiguous prefixes are accepted.

Configuration: All defaults are configurable via SMDCONV_* environment variables set in your MCP client config. The Go MCP SDK does not support initializationOptions; use env vars instead.

Key settings:
- SMDCONV_METHOD (default: HH): conversion method when neither the call nor the dataset names one
- SMDCONV_LEVEL_MA (default: 0.95): confidence level of pooled estimates
- SMDCONV_COMMON (default: true): compute the common effect estimate
- SMDCONV_RANDOM (default: true): compute the random effects estimate
- SMDCONV_MAX_STUDIES (default: 10000): maximum studies per dataset
- SMDCONV_MAX_INLINE_SIZE (default: 10485760): maximum inline content size in bytes

Settings given explicitly in a call override the dataset, and the dataset overrides the environment defaults. A prior analysis keeps its own settings unless the call overrides them.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "smdconv", Version: smdconv.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "convert",
		Description: "Convert log odds ratios to standardised mean differences and pool them. The dataset is either per-study rows or a prior odds ratio meta-analysis. Returns pooled common and random effects estimates, heterogeneity statistics and the converted per-study table. Defaults are configurable via SMDCONV_METHOD, SMDCONV_LEVEL_MA, SMDCONV_COMMON and SMDCONV_RANDOM env vars.",
	}, handleConvert)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "transform",
		Description: "Convert log odds ratios to standardised mean differences per study without pooling. Returns one row per study with the odds ratio, SMD and its standard error. Use this to inspect a conversion before running convert.",
	}, handleTransform)
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
