package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/growarena/server/internal/config"
	"github.com/growarena/server/internal/core/event"
	coresys "github.com/growarena/server/internal/core/system"
	"github.com/growarena/server/internal/data"
	"github.com/growarena/server/internal/handler"
	gonet "github.com/growarena/server/internal/net"
	"github.com/growarena/server/internal/net/packet"
	"github.com/growarena/server/internal/scripting"
	"github.com/growarena/server/internal/system"
	"github.com/growarena/server/internal/world"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(serverName string) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m              GrowArena  v0.1.0            \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mserver:\033[0m %s\n\n", serverName)
}

func printSection(title string) {
	lineLen := max(46-len(title)-1, 3)
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := max(42-len(label)-len(numStr), 3)
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main server logic ─────────────────────────────────────────────

func run() error {
	// 1. Load .env and config
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.LoadOrDefault(config.ConfigPath("config/arena.toml"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := config.ApplyEnv(cfg); err != nil {
		return fmt.Errorf("env overrides: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner(cfg.Server.Name)

	// 3. Data and scripts
	printSection("data")

	foods, err := loadFoods(cfg.Data.FoodTable, log)
	if err != nil {
		return fmt.Errorf("load food table: %w", err)
	}
	printStat("food types", foods.Count())

	luaEngine, err := scripting.NewEngine(cfg.Data.ScriptsDir, log)
	if err != nil {
		return fmt.Errorf("lua engine: %w", err)
	}
	defer luaEngine.Close()
	printOK("lua formulas loaded")
	fmt.Println()

	// 4. World and wiring
	state := world.NewState(cfg.Arena.Width, cfg.Arena.Height, rand.New(rand.NewSource(time.Now().UnixNano())))
	state.SetNow(time.Now())
	store := gonet.NewSessionStore()
	bus := event.NewBus()

	pktReg := packet.NewRegistry(log)
	handler.RegisterAll(pktReg, &handler.Deps{
		Log:      log,
		Controls: world.NewControls(state, cfg.Arrow),
	})

	netServer, err := gonet.NewServer(cfg.Network, log)
	if err != nil {
		return fmt.Errorf("net server: %w", err)
	}

	runner := coresys.NewRunner()
	spawner := system.RegisterAll(runner, system.Deps{
		Config:      cfg,
		State:       state,
		Store:       store,
		Registry:    pktReg,
		Bus:         bus,
		Foods:       foods,
		Formulas:    luaEngine,
		NewSessions: netServer.NewSessions(),
		Log:         log,
	})

	printSection("arena")
	printStat("food pellets", spawner.EnsurePopulation())
	printStat("systems", runner.Len())
	fmt.Println()

	serveErr := make(chan error, 1)
	go func() { serveErr <- netServer.Serve() }()

	printSection("ready")
	printReady(fmt.Sprintf("listening on %s (ws %s)", netServer.Addr(), cfg.Network.WSPath))
	printReady(fmt.Sprintf("tick loop (period: %s)", cfg.Network.TickRate))
	fmt.Println()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	loop := coresys.NewLoop(runner, cfg.Network.TickRate, log)
	loop.OnTick = state.SetNow

	loopDone := make(chan struct{})
	go func() {
		loop.Run(ctx)
		close(loopDone)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-serveErr:
		if err != nil {
			log.Error("http server stopped", zap.Error(err))
		}
		stop()
	}
	<-loopDone

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := netServer.Shutdown(shutdownCtx); err != nil {
		log.Warn("http shutdown", zap.Error(err))
	}
	for _, sess := range store.All() {
		sess.Close()
	}
	log.Info("server stopped", zap.Int("players", state.PlayerCount()))
	return nil
}

// loadFoods reads the food table, falling back to the built-in distribution
// when the file does not exist.
func loadFoods(path string, log *zap.Logger) (*data.FoodTable, error) {
	t, err := data.LoadFoodTable(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Warn("food table missing, using defaults", zap.String("path", path))
		return data.DefaultFoodTable(), nil
	}
	return t, err
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
