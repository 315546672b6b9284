package main

import (
	"fmt"
	"log"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ironsheep/collage-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

type cli struct {
	Version  kong.VersionFlag `short:"v" help:"Print version information and exit."`
	LogLevel string           `help:"Log verbosity: ${enum}." enum:"info,debug" default:"info" env:"COLLAGE_MCP_LOG_LEVEL"`
}

func newParser(c *cli) (*kong.Kong, error) {
	return kong.New(c,
		kong.Name("collage-mcp"),
		kong.Description("MCP server for layered image collages.\n\n"+
			"This server communicates via MCP protocol over stdin/stdout.\n"+
			"Configure it in your MCP client (e.g., Claude Desktop)."),
		kong.Vars{
			"version": fmt.Sprintf("collage-mcp %s\n  Build time: %s\n  Git commit: %s", Version, BuildTime, GitCommit),
		},
	)
}

func main() {
	var c cli
	parser, err := newParser(&c)
	if err != nil {
		log.Fatalf("CLI setup: %v", err)
	}
	_, err = parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	debug := c.LogLevel == "debug"
	if debug {
		log.Printf("Collage MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	srv := server.New(server.WithDebug(debug), server.WithVersion(Version))
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
