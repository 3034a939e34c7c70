package main

import (
	"context"
	"io"
	"os"

	cli "github.com/spf13/pflag"

	"github.com/lmittmann/tint"
	log "log/slog"

	"aria/internal/assistant"
	"aria/internal/config"
	"aria/internal/llm"
	_ "aria/internal/llm/providers"
	"aria/internal/setup"
	"aria/internal/tui"
)

// aria is the text-only chat front end. It runs the full assistant in
// process, no daemon required.
func main() {
	envFile := cli.StringP("env", "e", ".env", "Env file path")
	verbose := cli.BoolP("verbose", "v", false, "Log to stderr instead of discarding")
	cli.Parse()

	// The TUI owns the terminal, so logs are dropped unless asked for.
	logOut := io.Discard
	if *verbose {
		logOut = os.Stderr
	}
	log.SetDefault(log.New(tint.NewHandler(logOut, &tint.Options{Level: log.LevelDebug})))

	cfg, err := config.Load(*envFile)
	if err != nil {
		fatal("load config", err)
	}

	client, err := llm.New(cfg)
	if err != nil {
		fatal("build LLM client", err)
	}

	a := assistant.New(client, cfg.Location(), setup.Modules(context.Background(), cfg)...)

	if err := tui.Run(a); err != nil {
		fatal("run", err)
	}
}

func fatal(what string, err error) {
	os.Stderr.WriteString("aria: " + what + ": " + err.Error() + "\n")
	os.Exit(1)
}
