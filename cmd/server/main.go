package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"station-core/internal/engine"
	"station-core/internal/prototype"
	"station-core/internal/version"
	"station-core/pkg/api"
	"station-core/pkg/bugreport"
	"station-core/pkg/logger"
)

func init() {
	logger.Init()
}

func main() {
	// 1. Парсинг конфигурации
	var configPath string
	var extraPrototypes stringList
	flag.StringVar(&configPath, "config", "", "Path to YAML config (defaults if empty)")
	flag.Var(&extraPrototypes, "prototypes", "Extra prototype YAML file (repeatable)")
	flag.Parse()

	logger.Log.Info("Starting station core...")
	logger.Log.Info(version.String())

	cfg, err := engine.LoadConfig(configPath)
	if err != nil {
		logger.Log.Fatal("Failed to load config: ", err)
	}
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		cfg.SentryDSN = dsn
	}

	// 2. Отчёты об ошибках
	reporter, err := bugreport.Init(cfg.SentryDSN, cfg.Environment, version.Release())
	if err != nil {
		logger.Log.Fatal("Failed to init bug reporting: ", err)
	}
	defer reporter.Flush()

	// 3. Прототипы
	protos, err := prototype.NewRegistry()
	if err != nil {
		logger.Log.Fatal("Failed to load prototypes: ", err)
	}
	for _, path := range append(cfg.Prototypes, extraPrototypes...) {
		if err := protos.LoadFile(path); err != nil {
			logger.Log.Fatal("Failed to load prototypes: ", err)
		}
	}

	// 4. Симуляция
	sim, err := engine.NewSimulation(cfg, protos, reporter)
	if err != nil {
		logger.Log.Fatal("Failed to create simulation: ", err)
	}

	out := json.NewEncoder(os.Stdout)
	sim.SetLogSink(func(e api.LogEntry) {
		_ = out.Encode(e)
	})

	// Graceful Shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go readConsole(ctx, os.Stdin, sim)

	if err := sim.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Log.Error("Simulation stopped: ", err)
	}
	logger.Log.Info("Done.")
}

// readConsole читает команды по одной JSON-строке:
// {"action":"SPAWN","payload":{"prototype":"MobHuman","mapId":1,"x":0.5,"y":0.5}}
func readConsole(ctx context.Context, in io.Reader, sim *engine.Simulation) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var cmd api.ClientCommand
		if err := json.Unmarshal(line, &cmd); err != nil {
			logger.Log.WithError(err).Warn("Bad console command")
			continue
		}
		if err := sim.ProcessCommand(cmd); err != nil {
			logger.Log.WithError(err).WithField("action", cmd.Action).Warn("Command rejected")
		}
	}
	if err := scanner.Err(); err != nil {
		logger.Log.WithError(err).Error("Console read failed")
	}
}

// stringList - повторяемый строковый флаг.
type stringList []string

func (l *stringList) String() string { return fmt.Sprint(*l) }

func (l *stringList) Set(v string) error {
	*l = append(*l, v)
	return nil
}
