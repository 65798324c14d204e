package application

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"sync"
	"syscall"

	"github.com/rocketscienceinc/fourinarow-backend/internal/config"
	"github.com/rocketscienceinc/fourinarow-backend/internal/entity"
	"github.com/rocketscienceinc/fourinarow-backend/internal/monitor"
	"github.com/rocketscienceinc/fourinarow-backend/internal/pkg"
	"github.com/rocketscienceinc/fourinarow-backend/internal/repository"
	"github.com/rocketscienceinc/fourinarow-backend/internal/repository/storage"
	"github.com/rocketscienceinc/fourinarow-backend/internal/usecase"
	"github.com/rocketscienceinc/fourinarow-backend/transport/rest"
	"github.com/rocketscienceinc/fourinarow-backend/transport/websocket"
)

type archiver interface {
	Archive(result *entity.Result)
}

// RunApp - runs the application until ctx is cancelled, a signal arrives or a server fails.
func RunApp(ctx context.Context, logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		results     repository.ResultRepository
		resultSaver archiver = usecase.NoopArchiver{}
		workers     sync.WaitGroup
	)

	if conf.Redis.Enabled {
		redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr())
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err = redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		results = repository.NewResultRepository(redisStorage.Connection)

		resultArchiver := usecase.NewResultArchiver(logger, results, conf.Game.ArchiveBuffer)
		resultSaver = resultArchiver

		workers.Add(1)
		go func() {
			defer workers.Done()
			resultArchiver.Run(ctx)
		}()
	} else {
		log.Info("redis is disabled, finished games will not be archived")
	}

	// the archiver drains its buffer on shutdown and needs redis until then
	defer workers.Wait()

	codeLength := conf.Game.RoomCodeLength
	registry := repository.NewSessionRegistry(func() string {
		return pkg.GenerateRoomCode(codeLength)
	}, conf.Game.MaxCodeAttempts)

	metrics := monitor.New()
	hub := websocket.NewHub(logger)
	gameManager := usecase.NewGameManager(logger, registry, hub, metrics, resultSaver)

	httpServer := rest.New(logger, gameManager, results, metrics.Handler())
	wsServer := websocket.New(logger, hub, gameManager, metrics, conf.Websocket.AllowedOrigins)

	errCh := make(chan error, 2)

	// run HTTP server
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if err := httpServer.Start(ctx, conf.HTTPPort); err != nil {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// run Websocket server
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		if err := wsServer.Start(ctx, conf.SocketPort); err != nil {
			errCh <- fmt.Errorf("WebSocket server error: %w", err)
		}
	}()

	select {
	case err := <-errCh:
		stop()
		return err
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}
