package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/evergreenchapel/sitegen/internal/commands"
	"github.com/evergreenchapel/sitegen/internal/config"
	"github.com/evergreenchapel/sitegen/internal/logger"
)

const version = "0.1.0"

func main() {
	args := os.Args[1:]

	if len(args) > 0 {
		switch args[0] {
		case "version", "-v", "--version":
			fmt.Printf("sitegen v%s\n", version)
			return
		case "help", "-h", "--help":
			printUsage()
			return
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	log, closeLog := newLogger(cfg)
	log.ConfigLoaded(cfg.ContentDir, cfg.ImagesDir, cfg.OutputDir)

	prompt := commands.NewReaderProvider(os.Stdin, os.Stdout)
	cmds := commands.New(cfg, log, prompt, os.Stdout)

	err = run(cmds, args)
	closeLog()
	if err != nil {
		os.Exit(1)
	}
}

func run(cmds *commands.Commands, args []string) error {
	if len(args) == 0 {
		return cmds.Interactive()
	}

	switch args[0] {
	case "--all", "-a":
		return cmds.BuildAll()
	case "--delete":
		return cmds.InteractiveDelete()
	case "-d", "--delete-slug":
		if len(args) < 2 || strings.HasPrefix(args[1], "-") {
			fmt.Fprintf(os.Stderr, "Error: %s requires a slug argument\n\n", args[0])
			printUsage()
			return fmt.Errorf("missing slug argument")
		}
		return cmds.Delete(args[1])
	case "--status", "-s", "status":
		return cmds.Status()
	default:
		if strings.HasPrefix(args[0], "-") {
			fmt.Fprintf(os.Stderr, "Unknown flag: %s\n\n", args[0])
			printUsage()
			return fmt.Errorf("unknown flag %s", args[0])
		}
		return cmds.BuildOne(args[0])
	}
}

func newLogger(cfg *config.Config) (*logger.Logger, func()) {
	if cfg.LogFile != "" {
		if l, cleanup, err := logger.NewFileLogger(os.Stderr, cfg.LogFile); err == nil {
			return l, cleanup
		}
	}
	return logger.New(os.Stderr), func() {}
}

func printUsage() {
	usage := fmt.Sprintf(`sitegen - Generate site content modules from markdown articles

Usage:
  sitegen [flags] [slug]

Flags:
  (none)              Interactive action and target prompt
  -a, --all           Build every article
  <slug>              Build exactly that article, regenerating the full index
  --delete            Interactive delete prompt
  -d, --delete-slug   Delete the named slug's generated module
  -s, --status        Show article, module and index state
  -v, --version       Show version information
  -h, --help          Show this help message

Examples:
  sitegen --all
  sitegen hello-world
  sitegen -d hello-world
  sitegen --status

Configuration:
  Config file:   %s
  Manifest file: %s
`, config.ConfigPath(), config.ManifestPath())
	fmt.Print(usage)
}
