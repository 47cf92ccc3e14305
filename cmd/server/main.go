package main

import (
	"context"
	"embed"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/enclaveworks/enclave-sdk/modules"
	"github.com/enclaveworks/enclave-sdk/modules/airlock/infrastructure/filestore"
	deploymentinfra "github.com/enclaveworks/enclave-sdk/modules/workspaces/infrastructure/deployment"
	"github.com/enclaveworks/enclave-sdk/pkg/application"
	"github.com/enclaveworks/enclave-sdk/pkg/configuration"
	"github.com/enclaveworks/enclave-sdk/pkg/eventbus"
	"github.com/enclaveworks/enclave-sdk/pkg/metrics"
	"github.com/enclaveworks/enclave-sdk/pkg/middleware"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			configuration.Use().Unload()
			log.Println(r)
			debug.PrintStack()
			os.Exit(1)
		}
	}()

	conf := configuration.Use()
	logger := conf.Logger()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	pool, err := pgxpool.New(ctx, conf.Database.Opts)
	if err != nil {
		panic(err)
	}
	defer pool.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: conf.Redis.URL})
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.WithError(err).Warn("failed to close redis client")
		}
	}()

	orchestrator := deploymentinfra.NewRedisOrchestrator(redisClient, conf.Airlock.DeploymentQueue)

	minioClient, err := filestore.NewMinioClient(
		conf.Storage.Endpoint,
		conf.Storage.AccessKey,
		conf.Storage.SecretKey,
		conf.Storage.Region,
		conf.Storage.UseSSL,
	)
	if err != nil {
		panic(err)
	}
	fileStore := filestore.NewMinioStore(minioClient, conf.Storage.Region)

	app := application.New(eventbus.NewEventPublisher(logger))
	if err := modules.Load(app, modules.BuiltIn(orchestrator, fileStore)...); err != nil {
		log.Fatalf("failed to load modules: %v", err)
	}
	if err := applySchemas(ctx, pool, app.Schemas()); err != nil {
		log.Fatalf("failed to apply schemas: %v", err)
	}

	router := mux.NewRouter()
	router.Use(
		middleware.WithLogger(logger),
		middleware.WithMetrics(),
		middleware.WithPool(pool),
	)
	for _, controller := range app.Controllers() {
		controller.Register(router)
		logger.WithField("controller", controller.Key()).Info("registered controller")
	}
	if conf.Prometheus.Enabled {
		metrics.NewPrometheusController(conf.Prometheus.Path).Register(router)
	}

	server := &http.Server{
		Addr:         conf.SocketAddress,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("listening on %s", conf.SocketAddress)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server stopped: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("graceful shutdown failed")
	}
	conf.Unload()
}

// applySchemas executes every registered schema file against the database.
// Statements are idempotent so repeated startups are safe.
func applySchemas(ctx context.Context, pool *pgxpool.Pool, schemas []*embed.FS) error {
	for _, schema := range schemas {
		err := fs.WalkDir(schema, ".", func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return err
			}
			contents, err := fs.ReadFile(schema, path)
			if err != nil {
				return err
			}
			_, err = pool.Exec(ctx, string(contents))
			return err
		})
		if err != nil {
			return err
		}
	}
	return nil
}
