package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gitlab.com/dirk.krummacker/relationship-service/internal/audit"
	"gitlab.com/dirk.krummacker/relationship-service/internal/birthday"
	"gitlab.com/dirk.krummacker/relationship-service/internal/config"
	"gitlab.com/dirk.krummacker/relationship-service/internal/logger"
	"gitlab.com/dirk.krummacker/relationship-service/internal/service"
	"gitlab.com/dirk.krummacker/relationship-service/internal/store"
	"go.uber.org/zap"
)

const memoryQueueCapacity = 1024

// Usage example on the command line:
// > PORT=8080 DBUSER=dirk DBPWD=bullo92 GIN_MODE=release GIN_LOGGING=OFF go run main.go
// > REDIS_URL=redis://localhost:6379/0 PORT=8080 DBUSER=dirk DBPWD=bullo92 go run main.go
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Println("could not read configuration", err)
		panic(err)
	}
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Println("could not create logger", err)
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Error("service stopped", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sqlDB, err := store.Open(cfg.DSN())
	if err != nil {
		return err
	}
	st, err := store.New(sqlDB)
	if err != nil {
		return err
	}
	defer st.Close()

	queue, closeQueue, err := auditQueue(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeQueue()

	emitter := audit.NewEmitter(queue, log, cfg.AuditEnqueueTimeout)
	birthdays := birthday.NewService(st, emitter, birthday.WithLogger(log))
	router := service.SetupHttpRouter(birthdays, st, log, cfg.RequestLogging)

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	serverErr := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", server.Addr))
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// auditQueue pushes audit entries to Redis when REDIS_URL is set. Otherwise a worker drains an
// in-memory queue into the log.
func auditQueue(ctx context.Context, cfg config.Config, log *zap.Logger) (audit.Queue, func(), error) {
	if cfg.RedisURL != "" {
		client, err := audit.DialRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		log.Info("audit entries go to redis", zap.String("key", cfg.AuditQueueKey))
		return audit.NewRedisQueue(client, cfg.AuditQueueKey), func() { _ = client.Close() }, nil
	}

	queue := audit.NewMemoryQueue(memoryQueueCapacity)
	worker := audit.NewWorker(queue.Entries(), audit.LogSink(log), log)
	workerCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = worker.Run(workerCtx)
	}()
	log.Info("audit entries go to the log")
	return queue, func() {
		cancel()
		<-done
	}, nil
}
