/*
 * SX960 - Main process.
 *
 * Copyright (c) 2026, SX960 Project Contributors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	getopt "github.com/pborman/getopt/v2"

	"github.com/rcornwell/sx960sim/command/parser"
	"github.com/rcornwell/sx960sim/command/reader"
	"github.com/rcornwell/sx960sim/config/bootconfig"
	"github.com/rcornwell/sx960sim/emu/cpu"
	"github.com/rcornwell/sx960sim/emu/membus"
	"github.com/rcornwell/sx960sim/emu/word"
	logger "github.com/rcornwell/sx960sim/util/logger"
)

const defaultMemorySize word.Ordinal = 4 * 1024 * 1024

var Logger *slog.Logger

func main() {
	optConfig := getopt.StringLong("config", 'c', "sx960.cfg", "Boot configuration file")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optDebug := getopt.BoolLong("debug", 'd', "Enable debug logging to stderr")
	optInteractive := getopt.BoolLong("interactive", 'i', "Drop into the console debugger instead of running to halt")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	cfg := bootconfig.Config{MemorySize: uint32(defaultMemorySize)}
	if _, err := os.Stat(*optConfig); err == nil {
		loaded, err := bootconfig.Load(*optConfig)
		if err != nil {
			// logger isn't set up yet; this is a startup-time fatal error.
			os.Stderr.WriteString("sx960: " + err.Error() + "\n")
			os.Exit(1)
		}
		cfg = loaded
		if cfg.MemorySize == 0 {
			cfg.MemorySize = uint32(defaultMemorySize)
		}
	}

	logFile := *optLogFile
	if logFile == "" {
		logFile = cfg.LogFile
	}
	var file *os.File
	if logFile != "" {
		file, _ = os.Create(logFile)
	}

	programLevel := new(slog.LevelVar)
	programLevel.Set(slog.LevelInfo)
	if *optDebug {
		programLevel.Set(slog.LevelDebug)
	}
	Logger = slog.New(logger.NewHandler(file, &slog.HandlerOptions{Level: programLevel, AddSource: false}, optDebug))
	slog.SetDefault(Logger)

	Logger.Info("sx960 started", "memory", cfg.MemorySize)

	bus := membus.NewRAM(word.Ordinal(cfg.MemorySize))
	if cfg.HaltAddrOn {
		bus.SetHaltAddress(word.Ordinal(cfg.HaltAddr))
	}

	if cfg.ImagePath != "" {
		if err := loadImage(bus, cfg.ImagePath); err != nil {
			Logger.Error("failed to load boot image", "path", cfg.ImagePath, "error", err.Error())
			os.Exit(1)
		}
	}

	core := cpu.NewCore(bus, Logger)
	core.Boot(word.Ordinal(cfg.BootBlock))

	sess := parser.NewSession(core)
	if cfg.BreakpointOn {
		core.SetBreakpoint(word.Ordinal(cfg.Breakpoint))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		defer close(done)
		if *optInteractive {
			reader.ConsoleReader(sess)
			return
		}
		if err := core.Run(); err != nil {
			Logger.Error("run halted with fault", "error", err.Error())
		}
	}()

	select {
	case <-sigChan:
		Logger.Info("received interrupt, shutting down")
	case <-done:
		Logger.Info("core halted", "ip", core.IP)
	}
}

// loadImage reads a raw boot image into RAM at address 0. Images are flat
// binary memory dumps, matching the boot block layout spec.md §6 expects
// to find already resident at the configured boot base.
func loadImage(bus *membus.RAM, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	copy(bus.Load(), data)
	return nil
}
