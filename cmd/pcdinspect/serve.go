package main

import (
	"context"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve [DIR]",
		Short: "Serve the browser viewer",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			l, err := net.Listen("tcp", addr)
			if err != nil {
				return errors.Wrapf(err, "listening %s", addr)
			}
			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()
			a.logger.Info("serving", zap.String("dir", dir), zap.Stringer("addr", l.Addr()))
			return serve(ctx, l, newFileHandler(dir))
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}

type noCache struct {
	http.Handler
}

func (h *noCache) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-cache")
	h.Handler.ServeHTTP(w, r)
}

func newFileHandler(dir string) http.Handler {
	return &noCache{Handler: http.FileServer(http.Dir(dir))}
}

// serve runs the server until ctx is done.
func serve(ctx context.Context, l net.Listener, h http.Handler) error {
	srv := &http.Server{Handler: h}
	chErr := make(chan error, 1)
	go func() {
		chErr <- srv.Serve(l)
	}()
	select {
	case err := <-chErr:
		return err
	case <-ctx.Done():
	}
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return errors.Wrap(err, "shutting down")
	}
	if err := <-chErr; err != http.ErrServerClosed {
		return err
	}
	return nil
}
