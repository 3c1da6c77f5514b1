package serviceutil

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// Returns a context that will live until Ctrl+C is pressed
func SignalContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		cancel()
	}()

	return ctx
}

// StartHttpServer serves the handler until ctx is cancelled, then shuts the
// server down gracefully.
func StartHttpServer(ctx context.Context, port int, handler http.Handler) error {
	server := &http.Server{
		Addr:              fmt.Sprintf("0.0.0.0:%d", port),
		Handler:           handler,
		ReadHeaderTimeout: time.Second * 10,
	}

	errs := make(chan error, 1)
	go func() {
		slog.Info("listening to http...", "port", port)
		errs <- server.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	err := server.Shutdown(shutdownCtx)
	if err != nil {
		return err
	}
	err = <-errs
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func Fatal(message string, err error) {
	slog.Error(message, "err", err.Error())
	os.Exit(1)
}
