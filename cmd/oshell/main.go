package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/object-runtime/manifest"
	"github.com/wippyai/object-runtime/runtime"
	"github.com/wippyai/object-runtime/wasmplugin"
)

func main() {
	var (
		manifests   = flag.String("manifests", "", "Manifest glob pattern, e.g. '**/plugin.yaml'")
		dir         = flag.String("dir", ".", "Root directory for manifest discovery")
		command     = flag.String("c", "", "Run semicolon-separated commands and exit")
		verbose     = flag.Bool("log", false, "Enable debug logging")
		interactive = flag.Bool("i", false, "Force the full-screen shell")
	)
	flag.Parse()

	if err := run(*manifests, *dir, *command, *verbose, *interactive); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(pattern, dir, command string, verbose, forceTUI bool) error {
	ctx := context.Background()

	if verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("create logger: %w", err)
		}
		defer func() { _ = logger.Sync() }()
		runtime.SetLogger(logger)
		wasmplugin.SetLogger(logger)
		manifest.SetLogger(logger)
	}

	rt := runtime.New()

	if pattern != "" {
		ins, err := manifest.InstallGlob(ctx, dir, pattern, rt.Registry())
		if err != nil {
			return err
		}
		defer ins.Close(ctx)
		fmt.Printf("Installed %d plugins from %s\n", len(ins.Names), pattern)
	}

	sess := newSession(rt)

	if command != "" {
		return execScript(ctx, sess, command)
	}

	if forceTUI || term.IsTerminal(int(os.Stdin.Fd())) {
		return runInteractive(sess)
	}
	return runPlain(ctx, sess)
}

// execScript runs semicolon-separated commands.
func execScript(ctx context.Context, sess *session, script string) error {
	for _, line := range strings.Split(script, ";") {
		out, err := sess.Exec(ctx, strings.TrimSpace(line))
		if err != nil {
			return err
		}
		if out != "" {
			fmt.Println(out)
		}
	}
	return nil
}

// runPlain reads commands line by line, for piped scripts.
func runPlain(ctx context.Context, sess *session) error {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if line == "exit" || line == "quit" {
			return nil
		}

		out, err := sess.Exec(ctx, line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}
		if out != "" {
			fmt.Println(out)
		}
	}
	return scanner.Err()
}
