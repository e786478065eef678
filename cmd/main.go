package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/profiler"

	"github.com/doitintl/hello/commandcenter/cmd/api"
	"github.com/doitintl/hello/commandcenter/common"
	"github.com/doitintl/hello/commandcenter/framework/connection"
	"github.com/doitintl/hello/commandcenter/logger"
	"github.com/doitintl/hello/commandcenter/secretmanager"
)

const (
	defaultAddr     = "0.0.0.0:8082"
	shutdownTimeout = 20 * time.Second
)

func main() {
	if err := run(); err != nil {
		log.Println("error: ", err)
		os.Exit(1)
	}
}

func run() error {
	// Profiler initialization, best done as early as possible.
	if common.GetEnvBool("PROFILER_ENABLED", common.Production) {
		if err := profiler.Start(profiler.Config{
			Service:        common.ServiceName,
			ServiceVersion: common.ServiceVersion,
			ProjectID:      common.ProjectID,
		}); err != nil {
			log.Printf("main: could not start profiler: %v", err)
		}
	}

	// Initialize basic context
	ctx := context.Background()

	logging, err := logger.NewLogging(ctx)
	if err != nil {
		log.Printf("main: could not initialize logging. error %s", err)
		return err
	}
	defer logging.Close()

	var secrets common.SecretSource

	if common.GetEnv("SECRETS_PROJECT_ID", "") != "" {
		sm, err := secretmanager.NewClient(ctx)
		if err != nil {
			log.Printf("main: could not initialize secret manager. error %s", err)
			return err
		}
		defer sm.Close()

		secrets = sm
	}

	opts, err := common.LoadOptions(ctx, secrets)
	if err != nil {
		log.Printf("main: invalid configuration. error %s", err)
		return err
	}

	// Initialize storage and messaging clients
	conn, err := connection.NewConnection(ctx, logging, opts)
	if err != nil {
		log.Printf("main: could not initialize connections. error %s", err)
		return err
	}
	defer conn.Close()

	// =================
	// Start API Service
	log.Print("started: initializing command center")

	// Make a channel to listen for an interrupt or terminate signal from the OS.
	// Use a buffered channel because the signal package requires it.
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Inject needed functionality into the api.
	a := api.NewAPI(shutdown, logging, conn, opts)

	handler, err := a.Build()
	if err != nil {
		log.Printf("main: could not build api. error %s", err)
		return err
	}

	addr, err := getAddr()
	if err != nil {
		log.Println(err)
		return err
	}

	server := http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Make a channel to listen for errors coming from the listener. Use a
	// buffered channel so the goroutine can exit if we don't collect this error.
	serverErrors := make(chan error, 1)

	// Start the service listening for requests.
	go func() {
		log.Printf("listening on %s", addr)
		serverErrors <- server.ListenAndServe()
	}()

	// =================
	// Shutdown

	// Blocking main and waiting for shutdown.
	select {
	case err := <-serverErrors:
		return fmt.Errorf("%s : starting server", err)

	case sig := <-shutdown:
		log.Printf("%v : start shutdown", sig)

		ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
		defer cancel()

		// Asking listener to shutdown and load shed.
		err := server.Shutdown(ctx)
		if err != nil {
			log.Printf("main : graceful shutdown did not complete")

			err = server.Close()
		}

		// Log the status of this shutdown.
		switch {
		case sig == syscall.SIGSTOP:
			return errors.New("integrity issue caused shutdown")
		case err != nil:
			return fmt.Errorf("could not stop server gracefully: %s", err)
		}
	}

	return nil
}

func getAddr() (string, error) {
	port := os.Getenv("PORT")
	if port == "" {
		return defaultAddr, nil
	}

	return fmt.Sprintf(":%s", port), nil
}
