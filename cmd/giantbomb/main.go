package main

import (
	"context"
	"fmt"
	"os"

	"go.opentelemetry.io/otel/baggage"

	"github.com/ryanm101/giantbomb"
	"github.com/ryanm101/giantbomb/internal/catalog"
	"github.com/ryanm101/giantbomb/internal/config"
	"github.com/ryanm101/giantbomb/internal/logging"
	"github.com/ryanm101/giantbomb/internal/tracing"
)

const version = "1.0.0"

var cfg *config.Config

func main() {
	ctx := context.Background()

	m, _ := baggage.NewMember("app.version", version)
	b, _ := baggage.New(m)
	ctx = baggage.ContextWithBaggage(ctx, b)

	var err error
	cfg, err = config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		cfg = config.DefaultConfig()
	}

	logging.Setup(cfg.Logging)

	shutdown, err := tracing.Setup(ctx, cfg.Tracing)
	if err != nil {
		logging.Error("failed to setup tracing", "error", err)
		shutdown = func(context.Context) error { return nil }
	}

	args := parseGlobalFlags(os.Args[1:])
	code := run(ctx, args)

	if err := shutdown(ctx); err != nil {
		logging.Error("failed to shutdown tracing", "error", err)
	}
	os.Exit(code)
}

func run(ctx context.Context, args []string) int {
	if len(args) < 1 {
		printUsage()
		return 1
	}

	switch args[0] {
	case "game", "platform", "franchise", "genre", "video":
		return handleFetchCommand(ctx, giantbomb.Resource(args[0]), args[1:])
	case "get":
		return handleGetCommand(ctx, args[1:])
	case "games", "platforms", "franchises", "genres", "videos":
		r, _ := giantbomb.ParseResource(args[0])
		return handleListCommand(ctx, r, args[1:])
	case "list":
		if len(args) < 2 {
			fmt.Println("Usage: giantbomb list <resource> [options]")
			return 1
		}
		r, ok := giantbomb.ParseResource(args[1])
		if !ok {
			PrintError("Unknown resource: %s\n", args[1])
			return 1
		}
		return handleListCommand(ctx, r, args[2:])
	case "search":
		return handleSearchCommand(ctx, args[1:])
	case "types":
		return handleTypesCommand(ctx, args[1:])
	case "export":
		return handleExportCommand(ctx, args[1:])
	case "catalog":
		return handleCatalogCommand(ctx, args[1:])
	case "serve":
		return handleServeCommand(ctx, args[1:])
	case "config":
		return handleConfigCommand(args[1:])
	case "help", "-h", "--help":
		printUsage()
		return 0
	default:
		fmt.Printf("Unknown command: %s\n", args[0])
		printUsage()
		return 1
	}
}

func printUsage() {
	fmt.Println("giantbomb - GiantBomb API client")
	fmt.Println()
	fmt.Println("Usage: giantbomb [global options] <command> [options]")
	fmt.Println()
	fmt.Println("Global Options:")
	fmt.Println("  --json                              Output in JSON format")
	fmt.Println("  --quiet, -q                         Suppress non-error output")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  game|platform|franchise|genre|video <id>")
	fmt.Println("                                      Fetch one record")
	fmt.Println("  get <resource> <id>                 Fetch any resource by id")
	fmt.Println("  games|platforms|franchises|genres|videos [options]")
	fmt.Println("                                      List one page of records")
	fmt.Println("  list <resource> [options]           List any resource")
	fmt.Println("  search <query> [options]            Full-text search")
	fmt.Println("  types [--filter=k:v]                List resource types")
	fmt.Println("  export <resource> [options]         Page a list into the catalog")
	fmt.Println("  catalog [resource]                  Show catalog contents")
	fmt.Println("  serve [--addr=:8080]                Serve the catalog over HTTP")
	fmt.Println("  config show                         Show active configuration")
	fmt.Println("  config init                         Initialize example config")
	fmt.Println("  help                                Show this help")
	fmt.Println()
	fmt.Println("List Options:")
	fmt.Println("  --limit=N --offset=N --sort=field:asc --filter=k:v,k2:v2")
	fmt.Println("  --fields=a,b --platforms=1,2 --game=N")
	fmt.Println()
	fmt.Println("Environment:")
	fmt.Println("  GIANTBOMB_API_KEY                   API key (required)")
	fmt.Println("  GIANTBOMB_CONFIG                    Config file path")
	fmt.Println("  GIANTBOMB_DB                        Catalog path (default: giantbomb.db)")
}

// newClient builds an API client from the active configuration.
func newClient() (*giantbomb.Client, error) {
	if err := cfg.RequireAPIKey(); err != nil {
		return nil, err
	}

	fetcher := giantbomb.Fetcher(giantbomb.NewHTTPFetcher(
		giantbomb.DefaultHTTPClient(cfg.GetTimeout()),
		cfg.GetUserAgent(),
	))
	if cfg.Breaker.Enabled {
		bc := giantbomb.DefaultBreakerConfig("giantbomb-api")
		if cfg.Breaker.Timeout > 0 {
			bc.Timeout = cfg.Breaker.Timeout
		}
		if cfg.Breaker.FailureRatio > 0 {
			bc.FailureRatio = cfg.Breaker.FailureRatio
		}
		if cfg.Breaker.MinRequests > 0 {
			bc.MinRequests = cfg.Breaker.MinRequests
		}
		fetcher = giantbomb.NewBreakerFetcher(fetcher, bc)
	}

	return giantbomb.New(cfg.APIKey,
		giantbomb.WithBaseURL(cfg.GetBaseURL()),
		giantbomb.WithFetcher(fetcher),
	)
}

func openCatalog(ctx context.Context, path string) (*catalog.DB, error) {
	if path == "" {
		path = cfg.GetDBPath()
	}
	return catalog.Open(ctx, path)
}
