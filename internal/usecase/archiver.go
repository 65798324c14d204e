package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/fourinarow-backend/internal/entity"
)

const (
	DefaultArchiveBuffer = 128

	saveTimeout = 5 * time.Second
)

type resultRepository interface {
	Save(ctx context.Context, result *entity.Result) error
}

// ResultArchiver hands finished games to the result repository on its own goroutine.
// Archive never blocks the caller: results arriving on a full buffer are dropped.
type ResultArchiver struct {
	logger  *slog.Logger
	repo    resultRepository
	results chan *entity.Result
}

func NewResultArchiver(logger *slog.Logger, repo resultRepository, buffer int) *ResultArchiver {
	if buffer <= 0 {
		buffer = DefaultArchiveBuffer
	}

	return &ResultArchiver{
		logger:  logger.With("component", "result_archiver"),
		repo:    repo,
		results: make(chan *entity.Result, buffer),
	}
}

func (that *ResultArchiver) Archive(result *entity.Result) {
	select {
	case that.results <- result:
	default:
		that.logger.Warn("archive buffer is full, dropping result", "roomID", result.RoomID)
	}
}

// Run saves queued results until ctx is done, then flushes what is left in the buffer.
func (that *ResultArchiver) Run(ctx context.Context) {
	log := that.logger.With("method", "Run")
	log.Info("result archiver started")

	for {
		select {
		case result := <-that.results:
			that.save(ctx, result)
		case <-ctx.Done():
			that.drain()
			log.Info("result archiver stopped")
			return
		}
	}
}

func (that *ResultArchiver) drain() {
	for {
		select {
		case result := <-that.results:
			that.save(context.Background(), result)
		default:
			return
		}
	}
}

func (that *ResultArchiver) save(ctx context.Context, result *entity.Result) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), saveTimeout)
	defer cancel()

	if err := that.repo.Save(ctx, result); err != nil {
		that.logger.Error("failed to archive result", "roomID", result.RoomID, "error", err)
		return
	}

	that.logger.Debug("result archived", "roomID", result.RoomID, "reason", result.Reason)
}

// NoopArchiver discards results. It is used when no result storage is configured.
type NoopArchiver struct{}

func (NoopArchiver) Archive(*entity.Result) {}
