package main

import (
	"embed"
	"flag"
	"io/fs"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/xml300/dao-game/internal/application/game"
	"github.com/xml300/dao-game/internal/application/scene/playing"
	"github.com/xml300/dao-game/internal/infrastructure/config"
)

//go:embed configs
var configFS embed.FS

func main() {
	configDir := flag.String("configs", "", "Load configs from a directory instead of the embedded set")
	stageFlag := flag.String("stage", "", "Stage name override")
	seedFlag := flag.Int64("seed", 0, "RNG seed override (0 = use settings)")
	flag.Parse()

	var loader *config.Loader
	if *configDir != "" {
		loader = config.NewLoader(*configDir)
	} else {
		fsys, err := fs.Sub(configFS, "configs")
		if err != nil {
			log.Fatalf("Failed to get config subfs: %v", err)
		}
		loader = config.NewFSLoader(fsys, "configs")
	}

	cfg, err := loader.LoadAll()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := buildLogger(cfg.Settings.Logging)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	stageName := cfg.Settings.Game.Stage
	if *stageFlag != "" {
		stageName = *stageFlag
	}
	stageCfg, err := loader.LoadStage(stageName)
	if err != nil {
		logger.Fatal("failed to load stage", zap.String("stage", stageName), zap.Error(err))
	}

	seed := cfg.Settings.Game.Seed
	if *seedFlag != 0 {
		seed = *seedFlag
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	display := cfg.Settings.Display
	g := game.New(
		playing.New(cfg, stageCfg, logger, seed),
		display.ScreenWidth, display.ScreenHeight, display.Framerate,
	)

	ebiten.SetWindowSize(display.ScreenWidth*display.Scale, display.ScreenHeight*display.Scale)
	ebiten.SetWindowTitle("Dao of the Falling Blade")
	ebiten.SetTPS(display.Framerate)

	if err := ebiten.RunGame(g); err != nil {
		logger.Fatal("game loop terminated", zap.Error(err))
	}
}

// buildLogger constructs a zap logger from the settings block.
func buildLogger(cfg config.LoggingSettings) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	var zc zap.Config
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	return zc.Build()
}
