package server

import (
	"context"
	"errors"
	"net/http"
	"time"
)

const (
	sweepInterval   = time.Minute
	shutdownTimeout = 10 * time.Second
)

// Start runs the HTTP server until ctx is done, then shuts down gracefully:
// in-flight requests finish, all flow instances are closed (cancelling any
// pending redirects) and the message bus is drained.
func (s *Server) Start(ctx context.Context) error {
	logger := s.Deps.Logger

	bgCtx, stopBackground := context.WithCancel(ctx)
	defer stopBackground()

	if err := s.Deps.Notifier.Start(bgCtx, s.Deps.Bus); err != nil {
		return err
	}
	go s.Deps.Requests.Run(bgCtx, sweepInterval)
	go s.Deps.Confirms.Run(bgCtx, sweepInterval)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server listening", "addr", s.Cfg.GetAppAddr())
		if err := s.E.Start(s.Cfg.GetAppAddr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var serveErr error
	select {
	case <-ctx.Done():
	case serveErr = <-errCh:
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := s.E.Shutdown(shutdownCtx)
	stopBackground()
	s.Deps.Requests.Close()
	s.Deps.Confirms.Close()
	if cerr := s.Deps.Bus.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if serveErr != nil {
		return serveErr
	}
	return err
}
