package main

import (
	"context"
	"fmt"
	"log"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.dw1.io/slashdoc"
)

type parseArgs struct {
	Files  []string `json:"files" jsonschema:"source files, directories or Go package patterns to extract doc comments from"`
	Token  string   `json:"token,omitempty" jsonschema:"comment token that marks doc lines (default ///)"`
	Indent int      `json:"indent,omitempty" jsonschema:"number of spaces per indent level (default 2)"`
}

func parseHandler(ctx context.Context, req *mcp.CallToolRequest, args parseArgs) (*mcp.CallToolResult, any, error) {
	opts := []slashdoc.Option{slashdoc.WithContext(ctx)}

	if args.Token != "" {
		opts = append(opts, slashdoc.WithToken(args.Token))
	}
	if args.Indent != 0 {
		opts = append(opts, slashdoc.WithIndent(args.Indent))
	}

	files, err := slashdoc.CollectFiles(ctx, args.Files)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to collect inputs: %w", err)
	}

	s := slashdoc.New(opts...)

	doc, err := s.Load(files...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse documentation: %w", err)
	}

	return &mcp.CallToolResult{
		Meta: map[string]any{
			"files": files,
			"nodes": len(doc.Nodes),
		},
	}, doc, nil
}

func main() {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "slashdoc-mcp",
		Version: "0.1.0",
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "parse",
		Description: "Extract documented classes, functions, properties and events from /// doc comments.",
	}, parseHandler)

	if err := server.Run(context.Background(), &mcp.StdioTransport{}); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
