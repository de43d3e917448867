package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eudr-checker/checkserver"
	"eudr-checker/config"
	"eudr-checker/eudr"
	"eudr-checker/metrics"
	"eudr-checker/parcel"
	"eudr-checker/reportserver"
	"eudr-checker/stac"
	"eudr-checker/titiler"
	"eudr-checker/util"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

var (
	port     = flag.Int("port", 0, "Serving port, overrides PORT")
	parallel = flag.Int("parallel", 4, "Concurrent checks in batch mode")
)

func topLevelContext() context.Context {
	ctx, cancelf := context.WithCancel(context.Background())
	go func() {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigs
		log.Warnf("Caught signal %q, shutting down.", sig)
		cancelf()
	}()
	return ctx
}

func newChecker(cfg *config.Config) *eudr.Checker {
	return &eudr.Checker{
		Catalog:     stac.New(cfg.STACEndpoint, util.NewHTTPClient(0)),
		Tiles:       titiler.New(cfg.TiTilerEndpoint, util.NewHTTPClient(cfg.TileTimeout)),
		Collections: cfg.STACCollections,
		MaxCloud:    cfg.MaxCloud,
		Asset:       cfg.TileAsset,
		RecentDays:  cfg.RecentDays,
		StaticMap: eudr.StaticMapOptions{
			Key:  cfg.GoogleStaticMapsKey,
			Zoom: cfg.StaticMapZoom,
			Size: cfg.StaticMapSize,
		},
		Location: cfg.Location(),
		Now:      time.Now,
	}
}

func newRouter(cfg *config.Config, c *eudr.Checker) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/", checkserver.ServeInfo).Methods("GET")
	router.Handle("/check", checkserver.New(c, cfg.MaxUploadBytes)).Methods("POST")
	router.Handle("/report", reportserver.New(c, cfg.TiTilerEndpoint, cfg.MaxUploadBytes)).Methods("POST")
	router.Handle("/metrics", metrics.Handler()).Methods("GET")
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "ok")
	}).Methods("GET")
	return router
}

// listenAddr prefers the -port flag over PORT.
func listenAddr(cfg *config.Config) string {
	if *port != 0 {
		return fmt.Sprintf(":%d", *port)
	}
	return fmt.Sprintf(":%d", cfg.Port)
}

// checkFiles checks each parcel file and prints one JSON result per file, in
// argument order.
func checkFiles(ctx context.Context, c *eudr.Checker, files []string) error {
	results := make([]*eudr.CheckResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	if *parallel > 0 {
		g.SetLimit(*parallel)
	}
	for i, name := range files {
		i, name := i, name
		g.Go(func() error {
			data, err := os.ReadFile(name)
			if err != nil {
				return err
			}
			p, err := parcel.Parse(data)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			res, err := c.Check(gctx, p.Centroid, p.Bound)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	for _, res := range results {
		if err := enc.Encode(res); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("%v", err)
	}
	lvl, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Bad LOG_LEVEL: %v", err)
	}
	log.SetLevel(lvl)

	ctx := topLevelContext()
	checker := newChecker(cfg)

	if flag.NArg() > 0 {
		if err := checkFiles(ctx, checker, flag.Args()); err != nil {
			log.Fatalf("%v", err)
		}
		return
	}

	addr := listenAddr(cfg)
	srv := &http.Server{
		Addr:    addr,
		Handler: newRouter(cfg, checker),
	}
	go func() {
		<-ctx.Done()
		srv.Shutdown(context.Background())
	}()
	log.Infof("Starting on %s, catalog %s, tiles %s", addr, cfg.STACEndpoint, cfg.TiTilerEndpoint)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("ListenAndServe(): %v", err)
	}
	log.Infof("Shutdown")
}
