package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/smdconv/internal/cliutil"
	"github.com/erraggy/smdconv/internal/mcpserver"
)

// HandleMCP runs the MCP server over stdio until the client disconnects or
// the process receives SIGINT or SIGTERM.
func HandleMCP(args []string) error {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: smdconv mcp\n\n")
		cliutil.Writef(fs.Output(), "Serve the convert and transform tools over the Model Context Protocol (stdio).\n")
		cliutil.Writef(fs.Output(), "Defaults are read from SMDCONV_* environment variables.\n")
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("mcp command takes no arguments")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return mcpserver.Run(ctx)
}
