package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eringen/paintdry"
	"github.com/eringen/paintdry/views"
)

// version is set at build time via ldflags.
var version = "dev"

var errUsage = errors.New("usage")

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, errUsage) {
			os.Exit(1)
		}
		log.Fatalf("paintdry: %v", err)
	}
}

// run dispatches the command. Deferred cleanup in the commands has finished
// by the time it returns.
func run(args []string) error {
	if len(args) < 1 {
		printUsage()
		return errUsage
	}

	switch args[0] {
	case "serve":
		return runServe()
	case "version":
		fmt.Printf("paintdry %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", args[0])
		printUsage()
		return errUsage
	}
	return nil
}

func runServe() error {
	cfg, err := paintdry.LoadConfig()
	if err != nil {
		return err
	}
	app := paintdry.New(cfg, views.New(cfg),
		paintdry.WithStaticDir(paintdry.EnvOr("STATIC_DIR", "public")),
	)
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() { errc <- app.Start() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return app.Echo.Shutdown(shutdownCtx)
}

func printUsage() {
	fmt.Println(`paintdry - Watching Paint Dry, a small blog built with Go, Echo, and templ

Usage:
  paintdry <command>

Commands:
  serve         Run the blog server
  version       Print the paintdry version
  help          Show this help message

Environment:
  SITE_TITLE, SITE_SUBTITLE, SITE_URL, SITE_AUTHOR
  ADDR (default :3000), DATABASE_PATH (default data/blog.db), STATIC_DIR
  ADMIN_PASSWORD, ADMIN_SESSION_SECRET (required), COOKIE_SECURE
  ENTRY_CACHE_TTL (default 5m), PUBLIC_ID_MIN_LENGTH (default 6)`)
}
