package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"sync"
	"syscall"

	"github.com/marathonwx/raceday/internal/dataset"
	"github.com/marathonwx/raceday/internal/log"
	"github.com/marathonwx/raceday/internal/server"
	"github.com/marathonwx/raceday/pkg/config"
)

const version = "1.0-" + runtime.GOOS + "/" + runtime.GOARCH

func main() {
	cfgFile := flag.String("config", "raceday.yaml", "Path to YAML configuration file")
	datasetPath := flag.String("dataset", "", "Path to dataset JSON (overrides server.dataset_path)")
	debug := flag.Bool("debug", false, "Turn on debugging output")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("raceday %s\n", version)
		os.Exit(0)
	}

	// Set up logging
	if err := log.Init(*debug); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	filename, _ := filepath.Abs(*cfgFile)
	provider := config.NewYAMLProvider(filename)
	cfgData, err := provider.LoadConfig()
	if err != nil {
		log.Errorf("Failed to load configuration: %v", err)
		os.Exit(1)
	}

	path := cfgData.Server.DatasetPath
	if *datasetPath != "" {
		path = *datasetPath
	}
	if path == "" {
		log.Error("No dataset path configured; set server.dataset_path or pass -dataset")
		os.Exit(1)
	}

	ds, err := dataset.Load(path)
	if err != nil {
		log.Errorf("Failed to load dataset: %v", err)
		os.Exit(1)
	}
	log.Infof("Loaded %d races from %s", len(ds.Races()), path)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup
	ctrl, err := server.NewController(ctx, &wg, provider, cfgData.Server, ds, log.GetSugaredLogger())
	if err != nil {
		log.Errorf("Failed to create REST server: %v", err)
		os.Exit(1)
	}

	if err := ctrl.StartController(); err != nil {
		log.Errorf("Failed to start REST server: %v", err)
		os.Exit(1)
	}
	log.Infof("raceday %s listening on %s", version, ctrl.Server.Addr)

	<-ctx.Done()
	wg.Wait()
}
