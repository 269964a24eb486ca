// Copyright 2025 The WordServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main runs the word chain engine as a msgpack IPC server or as a
console game.

A word chain game alternates between the player and the opponent. Each word
must start with the last letters of the previous one. The number of letters
grows with the turns survived since the last lost heart, from one up to four.
Playing one of the top hints earns points, and points buy hearts back.

# Usage

Start the IPC server with word and pattern lists:

	wordchain -words words.txt -patterns patterns.txt

Play on the console with debug logs:

	wordchain -c -d -words words.txt -patterns patterns.txt

Data file names are looked up in the working directory, next to the binary,
in a data/ directory beside it, and in the config directory. Defaults come
from the config file and from the environment, which may be set in a .env file:

	WORDCHAIN_WORDS=words.txt
	WORDCHAIN_PATTERNS=patterns.txt
	WORDCHAIN_CONFIG=/path/to/config.toml

# Input Files

Both files hold one entry per line. Lines starting with '-' or '#' are
skipped, anything after ':' is dropped, and only ASCII letters are kept.
The pattern list names the rare endings the opponent likes to hand over.

# Configuration

Runtime configuration is a TOML file created with defaults on first run:

	[game]
	starting_hearts = 2
	points_for_heart = 5
	hint_pool = 8
	hints_shown = 4
	seed = 0

	[engine]
	lookahead_candidates = 100
	lookahead_responses = 50

	[weights.move]
	inverse_count = 1000.0

A non-zero seed makes the opponent deterministic. Pass -seed with -save to
store it, and -reset-config to rewrite the file with defaults.

# IPC Protocol

The server communicates via MessagePack over stdin/stdout, one response per
request, with logs on stderr. See package server for the ops.

	{"id": "1", "op": "start"}
	{"id": "2", "op": "submit", "w": "tiger"}
	{"id": "3", "op": "move"}

# Command Line Flags

	-words string
	    Word list file
	-patterns string
	    Rare ending pattern file
	-config string
	    Config file path
	-seed int
	    Seed for the opponent, 0 uses the config
	-d  Enable debug mode with detailed logging
	-c  Play on the console instead of serving IPC
	-hints
	    Show hints on every console turn
	-version
	    Show current version
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/bastiangx/wordchain/internal/cli"
	"github.com/bastiangx/wordchain/internal/logger"
	"github.com/bastiangx/wordchain/internal/utils"
	"github.com/bastiangx/wordchain/pkg/config"
	"github.com/bastiangx/wordchain/pkg/dictionary"
	"github.com/bastiangx/wordchain/pkg/game"
	"github.com/bastiangx/wordchain/pkg/server"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

const (
	Version = "0.3.0"
	gh      = "https://github.com/bastiangx/wordchain"
)

// Environment variables read after the .env files.
const (
	envWords    = "WORDCHAIN_WORDS"
	envPatterns = "WORDCHAIN_PATTERNS"
	envConfig   = "WORDCHAIN_CONFIG"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// loadEnv reads .env from the working directory, then from beside the binary.
// Variables already set win.
func loadEnv() {
	_ = godotenv.Load()
	if execDir, err := utils.GetExecutableDir(); err == nil {
		_ = godotenv.Load(filepath.Join(execDir, ".env"))
	}
}

// firstNonEmpty returns the first non-empty value.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// main parses flags, loads config and data, then hands over to the server or the console game.
func main() {
	sigHandler()
	loadEnv()

	showVersion := flag.Bool("version", false, "Show current version")
	wordsFile := flag.String("words", "", "Word list file")
	patternsFile := flag.String("patterns", "", "Rare ending pattern file")
	configFile := flag.String("config", "", "Config file path")
	seed := flag.Int64("seed", 0, "Seed for the opponent, 0 uses the config")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Play on the console instead of serving IPC")
	showHints := flag.Bool("hints", false, "Show hints on every console turn")
	resetConfig := flag.Bool("reset-config", false, "Rewrite the default config file and exit")
	saveSeed := flag.Bool("save", false, "Store -seed in the config file")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	if *resetConfig {
		if err := config.RebuildConfigFile(); err != nil {
			log.Fatalf("Failed to rebuild config: %v", err)
		}
		log.Print("Config file rebuilt with defaults")
		os.Exit(0)
	}

	appConfig, configPath, err := config.LoadConfigWithPriority(firstNonEmpty(*configFile, os.Getenv(envConfig)))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(configPath))
	if *seed != 0 {
		if *saveSeed {
			if err := appConfig.Update(configPath, nil, nil, seed); err != nil {
				log.Warnf("Failed to save seed: %v", err)
			}
		}
		appConfig.Game.Seed = *seed
	}
	if *debugMode {
		appConfig.Game.VerifyLookahead = true
	}
	if *showHints {
		appConfig.CLI.ShowHints = true
	}

	pathResolver, err := utils.NewPathResolver()
	if err != nil {
		log.Fatalf("Failed to initialize path resolver: %v", err)
	}

	engine := game.NewEngine(append(appConfig.EngineOptions(), game.WithLogger(logger.New("engine")))...)

	words := firstNonEmpty(*wordsFile, os.Getenv(envWords), appConfig.Data.Words)
	patterns := firstNonEmpty(*patternsFile, os.Getenv(envPatterns), appConfig.Data.Patterns)
	loaded := loadData(engine, pathResolver, words, patterns)

	if *cliMode {
		if !loaded {
			log.Fatalf("No word list loaded, pass -words and -patterns")
		}
		handler := cli.NewGameHandler(engine, os.Stdin, os.Stdout, appConfig.CLI)
		if err := handler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	if !loaded {
		log.Warn("No word list loaded, waiting for a load request...")
	}
	srv := server.NewStdioServer(engine, server.Options{
		MaxHints:  appConfig.Server.MaxHints,
		AutoStart: appConfig.Server.AutoStart,
		Resolve:   pathResolver.ResolveDataFile,
	}, logger.New("server"))

	showStartupInfo(engine, words)

	if err := srv.Start(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

// loadData resolves and loads the two lists. It reports whether the engine has a dictionary.
func loadData(engine *game.Engine, pr *utils.PathResolver, words, patterns string) bool {
	wordsPath, err := pr.ResolveDataFile(words)
	if err != nil {
		log.Warnf("Word list %s not found", words)
		return false
	}
	patternsPath, err := pr.ResolveDataFile(patterns)
	if err != nil {
		log.Warnf("Pattern list %s not found", patterns)
		return false
	}

	files, err := dictionary.OpenFiles(wordsPath, patternsPath)
	if err != nil {
		log.Errorf("Failed to open data files: %v", err)
		return false
	}
	defer files.Close()

	if err := engine.Load(files.Words, files.Patterns); err != nil {
		log.Errorf("Failed to load data files: %v", err)
		return false
	}
	log.Debugf("Loaded %s and %s", wordsPath, patternsPath)
	return true
}

func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ WordChain ] last letter word chains with a stubborn opponent")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(engine *game.Engine, words string) {
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	println("===========")
	println(" WordChain ")
	println("===========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", os.Getpid())
	if engine.Loaded() {
		log.Infof("words: ( %s, %d entries )", words, engine.Stats()["totalWords"])
	}
	log.Info("status: ready")
	println("===========")
	println("Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}
