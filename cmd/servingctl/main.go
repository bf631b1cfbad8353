// servingctl inspects export directories: it reports the signatures of
// the current export and announces new versions as they arrive.
package main

import (
	"flag"
	"log/slog"
	"path"
	"path/filepath"

	"github.com/10imaging/serving/bundle"
	"github.com/10imaging/serving/config"
	"github.com/10imaging/serving/internal/env"
	"github.com/10imaging/serving/internal/logger"
	"github.com/10imaging/serving/metagraph"
)

func main() {
	var (
		flagConfigPath = flag.String("config", path.Join(config.DefaultConfigPath(), "config.yaml"), "Path to config file")
		flagSchemaPath = flag.String("schema", path.Join(config.DefaultConfigPath(), "serving.v1.schema.json"), "Path to schema file")
		flagWatch      = flag.Bool("watch", false, "Keep running and announce new export versions")
	)
	flag.Parse()

	environment := env.FromEnv()

	watcher, err := config.NewWatcher(*flagConfigPath, *flagSchemaPath, func(cfg *config.Config, err error) {
		if err != nil {
			slog.Error("Failed to reload config", "error", err)
		}
	})
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		return
	}
	defer watcher.Close()

	cfg := watcher.Snapshot()

	slog.SetDefault(
		logger.New(environment,
			logger.WithLogToFile(cfg.Logging.ToFile),
			logger.WithLogFile(cfg.Logging.File),
		),
	)

	basePath := cfg.ResolveExportsPath()

	version, dir, err := bundle.ResolveExport(basePath, cfg.Exports.PinnedVersion)
	if err != nil {
		slog.Error("No loadable export", "base_path", basePath, "error", err)
		return
	}

	inspect(version, dir)

	if !*flagWatch {
		return
	}

	exportWatcher, err := bundle.NewWatcher(basePath, inspect)
	if err != nil {
		slog.Error("Failed to watch export base path", "base_path", basePath, "error", err)
		return
	}
	defer exportWatcher.Close()

	select {}
}

// inspect reads one version directory's meta graph and logs what it declares.
func inspect(version int, dir string) {
	meta, err := metagraph.ReadFile(filepath.Join(dir, metagraph.MetaGraphFilename))
	if err != nil {
		slog.Error("Failed to read meta graph", "version", version, "export_dir", dir, "error", err)
		return
	}

	slog.Info("Export inspected",
		"version", version,
		"export_dir", dir,
		"signatures", meta.Signatures.Names(),
		"assets", len(meta.Assets),
		"init_op", meta.InitOp,
		"restore_op", meta.RestoreOp,
	)

	for name, sig := range meta.Signatures {
		slog.Info("Signature", "name", name, "variant", sig.Variant().String())
	}
}
