// Command spritedweb serves the sprite editor: the wasm frontend and an
// HTTP API editing a single in-memory session.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"badc0de.net/pkg/flagutil/v1"

	"github.com/common-nighthawk/go-figure"
	"github.com/golang/glog"
	"github.com/gorilla/mux"
	"golang.org/x/sync/errgroup"
	_ "golang.org/x/net/trace"

	"badc0de.net/pkg/go-sprited/frames"
	"badc0de.net/pkg/go-sprited/paths"
	"badc0de.net/pkg/go-sprited/web"
)

var (
	listenAddress               = flag.String("listen_address", ":8080", "http listen address for spritedweb")
	debugWebServerListenAddress = flag.String("debug_web_server_listen_address", "", "if not empty, serve /debug/requests and /debug/events on this address")
	width                       = flag.Int("width", 8, "frame width in pixels")
	height                      = flag.Int("height", 8, "frame height in pixels")
	fps                         = flag.Float64("fps", 10, "initial playback frame rate")
	tickHz                      = flag.Float64("tick_hz", 60, "how often playback is ticked, per second")
	banner                      = flag.Bool("banner", true, "whether to print a banner at startup")

	assetsDir string
)

func main() {
	paths.SetupDirPathFlag("main.wasm", "assets_dir", &assetsDir)
	flagutil.Parse()

	if *banner {
		figure.NewFigure("sprited", "", true).Print()
	}
	if *tickHz <= 0 {
		glog.Exitf("-tick_hz must be positive, got %g", *tickHz)
	}

	store, err := frames.NewStore(*width, *height)
	if err != nil {
		glog.Exitf("creating frame store: %v", err)
	}
	h, err := web.NewHandler(store, web.Options{
		FrameRate:    *fps,
		TickInterval: time.Duration(float64(time.Second) / *tickHz),
		AssetsDir:    assetsDir,
	})
	if err != nil {
		glog.Exitf("creating web handler: %v", err)
	}

	r := mux.NewRouter()
	h.RegisterRoutes(r)
	h.RegisterAssetRoutes(r)

	srv := &http.Server{
		Addr:    *listenAddress,
		Handler: web.Wrap(r),
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return h.Run(ctx)
	})
	g.Go(func() error {
		glog.Infof("serving %dx%d sprite editor on %s", *width, *height, *listenAddress)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	})
	if *debugWebServerListenAddress != "" {
		// x/net/trace registers its handlers on http.DefaultServeMux.
		debugSrv := &http.Server{Addr: *debugWebServerListenAddress}
		g.Go(func() error {
			glog.Infof("serving debug endpoints on %s", *debugWebServerListenAddress)
			if err := debugSrv.ListenAndServe(); err != http.ErrServerClosed {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			return debugSrv.Close()
		})
	}

	if err := g.Wait(); err != nil {
		glog.Fatal(err)
	}
	glog.Infof("shut down")
}
