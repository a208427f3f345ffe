// Package transport runs a built application on an HTTP listener. The
// application itself never owns a socket; embedding hosts either mount
// App as an http.Handler directly or delegate to Serve.
package transport

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/netutil"
	"golang.org/x/sync/errgroup"

	"github.com/vitalvas/strada"
	"github.com/vitalvas/strada/config"
)

// Options configures how Serve exposes the application.
type Options struct {
	// Addr overrides the listen address. When empty, the address is
	// assembled from the application's bind and port settings.
	Addr string

	// Listener overrides the listening socket. When set, Addr and the
	// bind and port settings are ignored.
	Listener net.Listener

	// MaxConns caps the number of simultaneously accepted connections.
	// Zero means no cap.
	MaxConns int

	// ReadHeaderTimeout bounds reading request headers. Defaults to ten
	// seconds.
	ReadHeaderTimeout time.Duration

	// ShutdownTimeout bounds the graceful drain once the context is
	// cancelled. Defaults to five seconds.
	ShutdownTimeout time.Duration
}

// Serve runs the application on an HTTP listener until ctx is cancelled,
// then drains in-flight requests gracefully. It returns nil after a clean
// shutdown.
func Serve(ctx context.Context, app *strada.App, opts Options) error {
	readHeaderTimeout := opts.ReadHeaderTimeout
	if readHeaderTimeout == 0 {
		readHeaderTimeout = 10 * time.Second
	}

	shutdownTimeout := opts.ShutdownTimeout
	if shutdownTimeout == 0 {
		shutdownTimeout = 5 * time.Second
	}

	ln := opts.Listener
	if ln == nil {
		addr := opts.Addr
		if addr == "" {
			addr = listenAddr(app.Settings())
		}

		var err error
		ln, err = net.Listen("tcp", addr)
		if err != nil {
			return err
		}
	}

	if opts.MaxConns > 0 {
		ln = netutil.LimitListener(ln, opts.MaxConns)
	}

	srv := &http.Server{
		Handler:           app,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	app.Logger().Info("listening",
		zap.String("addr", ln.Addr().String()),
		zap.String("environment", app.Environment()),
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		drainCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return srv.Shutdown(drainCtx)
	})

	return g.Wait()
}

// listenAddr assembles the listen address from the bind and port
// settings.
func listenAddr(settings *config.Snapshot) string {
	return net.JoinHostPort(
		settings.String(config.KeyBind),
		strconv.Itoa(settings.Int(config.KeyPort)),
	)
}
