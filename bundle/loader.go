package bundle

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/10imaging/serving/metagraph"
	"github.com/10imaging/serving/session"
)

// DefaultProvider is the engine registry key used when options name none.
const DefaultProvider = "local"

// Options controls how an export is located and which engine runs it.
type Options struct {
	// Version pins an export version. Zero means load the latest.
	Version int

	// Provider selects the engine factory from the registry.
	Provider string

	// Session is passed through to the engine factory unmodified.
	Session *session.Config

	// Registry overrides session.DefaultRegistry.
	Registry *session.Registry
}

func (o *Options) provider() string {
	if o.Provider == "" {
		return DefaultProvider
	}
	return o.Provider
}

func (o *Options) registry() *session.Registry {
	if o.Registry == nil {
		return session.DefaultRegistry
	}
	return o.Registry
}

// Load locates the requested export version under basePath, deserializes
// its meta graph, constructs the engine, restores variables from the
// shard files, and runs the initialization operation if one is declared.
//
// The sequence is strictly ordered and short-circuits on first failure;
// an engine constructed before a failing step is closed before the error
// propagates, so no partially initialized bundle is ever observable.
func Load(ctx context.Context, basePath string, opts *Options) (*Bundle, error) {
	if opts == nil {
		opts = &Options{}
	}

	version, dir, err := resolveVersionDir(basePath, opts.Version)
	if err != nil {
		return nil, err
	}

	meta, err := readMetaGraph(dir)
	if err != nil {
		return nil, err
	}

	engine, err := opts.registry().New(opts.provider(), meta.GraphDef, opts.Session)
	if err != nil {
		return nil, fmt.Errorf("failed to construct engine for export %s: %w", dir, err)
	}

	assetsDir := filepath.Join(dir, AssetsDirName)
	b := &Bundle{
		id:        uuid.NewString(),
		version:   version,
		exportDir: dir,
		assetsDir: assetsDir,
		meta:      meta,
		engine:    engine,
	}

	if err := restore(ctx, b); err != nil {
		closeEngine(engine, b.id)
		return nil, err
	}

	if err := initialize(ctx, b); err != nil {
		closeEngine(engine, b.id)
		return nil, err
	}

	slog.Info("Bundle loaded",
		"bundle_id", b.id,
		"version", version,
		"export_dir", dir,
		"signatures", meta.Signatures.Names(),
	)

	return b, nil
}

// restore feeds the shard path pattern and the resolved asset paths into
// the graph and runs the restore operation.
func restore(ctx context.Context, b *Bundle) error {
	pattern, err := scanShards(b.exportDir)
	if err != nil {
		return err
	}

	feeds, err := assetFeeds(b.meta, b.assetsDir)
	if err != nil {
		return err
	}

	if b.meta.RestoreOp == "" {
		// Legacy export: the graph restores lazily and there is no
		// operation to drive. Shard presence was still verified above.
		slog.Debug("Export declares no restore operation", "bundle_id", b.id)
		return nil
	}

	if b.meta.ShardPatternTensor != "" {
		feeds = append(feeds, session.Feed{
			Name:  b.meta.ShardPatternTensor,
			Value: session.StringScalar(pattern),
		})
	}

	if _, err := b.engine.Run(ctx, feeds, nil, []string{b.meta.RestoreOp}); err != nil {
		return fmt.Errorf("%w: %v", ErrRestore, err)
	}

	return nil
}

// initialize runs the declared initialization operation exactly once.
// Later inference calls never re-trigger it; the bundle is only handed to
// callers after this returns.
func initialize(ctx context.Context, b *Bundle) error {
	if b.meta.InitOp == "" {
		return nil
	}

	feeds, err := assetFeeds(b.meta, b.assetsDir)
	if err != nil {
		return err
	}

	if _, err := b.engine.Run(ctx, feeds, nil, []string{b.meta.InitOp}); err != nil {
		return fmt.Errorf("%w: %v", ErrInitialization, err)
	}

	return nil
}

// assetFeeds resolves every asset binding to an absolute path feed.
func assetFeeds(meta *metagraph.MetaGraph, assetsDir string) ([]session.Feed, error) {
	feeds := make([]session.Feed, 0, len(meta.Assets))
	for _, asset := range meta.Assets {
		path, err := ResolveAssetPath(assetsDir, asset.Filename)
		if err != nil {
			return nil, err
		}
		feeds = append(feeds, session.Feed{
			Name:  asset.TensorName,
			Value: session.StringScalar(path),
		})
	}

	return feeds, nil
}

func readMetaGraph(dir string) (*metagraph.MetaGraph, error) {
	path := filepath.Join(dir, metagraph.MetaGraphFilename)

	meta, err := metagraph.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptFormat, path, err)
	}

	return meta, nil
}

func closeEngine(engine session.Engine, bundleID string) {
	if err := engine.Close(); err != nil {
		slog.Error("Failed to close engine after load failure", "bundle_id", bundleID, "error", err)
	}
}
