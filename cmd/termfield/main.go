// Package main 在终端中运行粒子网络背景
//
// Usage:
//
//	go run ./cmd/termfield [flags]
//
// Flags:
//
//	--verbose          Write logs to termfield.log
//	--config <path>    Field config yaml (default: built-in defaults)
//	--seed <n>         Fixed random seed (0 = time based)
//
// Controls:
//
//	Mouse              - Pointer links
//	Wheel / PgUp/PgDn  - Scroll the virtual page
//	Space / Home / End - Page down / top / bottom
//	P                  - Pause / resume
//	Q / Esc / Ctrl-C   - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/particlenet/pkg/config"
	"github.com/decker502/particlenet/pkg/field"
	"github.com/decker502/particlenet/pkg/term"
)

var (
	verboseFlag = flag.Bool("verbose", false, "Write verbose logs to termfield.log")
	configFlag  = flag.String("config", "", "Field config yaml (default: built-in defaults)")
	seedFlag    = flag.Int64("seed", 0, "Random seed for particle spawning (0 = time based)")
)

func main() {
	flag.Parse()

	// 终端被屏幕占用，日志只能写文件
	log.SetOutput(io.Discard)
	if *verboseFlag {
		logFile, err := os.Create("termfield.log")
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to create log file: %v\n", err)
			os.Exit(1)
		}
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	cfg := config.DefaultFieldConfig()
	if *configFlag != "" {
		var err error
		cfg, err = config.LoadFieldConfig(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "配置加载失败: %v\n", err)
			os.Exit(1)
		}
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.FieldConfig) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to init screen: %w", err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var opts []field.Option
	if *seedFlag != 0 {
		opts = append(opts, field.WithSeed(*seedFlag))
	}
	return term.Run(ctx, screen, cfg, opts...)
}
