package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	"go.dw1.io/slashdoc"
	"go.dw1.io/slashdoc/internal/server"
)

func newServeCmd(opts *settings) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve <file|dir|package>...",
		Short: "Serve a live preview of the documentation over HTTP",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			srv := server.New(func() (*slashdoc.Document, error) {
				return opts.load(ctx, args)
			})

			httpServer := &http.Server{
				Addr:              addr,
				Handler:           srv.Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			go func() {
				<-ctx.Done()

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()

				httpServer.Shutdown(shutdownCtx)
			}()

			commonlog.GetLogger("slashdoc").Noticef("serving on http://%s", addr)

			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "localhost:6060", "listen address")

	return cmd
}
