package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/Xavman42/neoscore/dsl"
	"github.com/Xavman42/neoscore/internal/config"
	"github.com/Xavman42/neoscore/layout"
)

const configPathKey ctxKey = 1

func withConfigPath(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, configPathKey, path)
}

func configPathFromContext(ctx context.Context) string {
	p, _ := ctx.Value(configPathKey).(string)
	return p
}

// loadScene reads the configuration, the optional JSON data file and the
// scene file, and builds the object tree.
func loadScene(ctx context.Context, path, dataPath string) (*layout.Scene, config.Config, error) {
	logger := loggerFromContext(ctx)

	cfg, err := config.Load(configPathFromContext(ctx))
	if err != nil {
		return nil, cfg, err
	}
	opts, err := cfg.BuildOptions()
	if err != nil {
		return nil, cfg, err
	}

	var data any
	if dataPath != "" {
		raw, err := os.ReadFile(dataPath)
		if err != nil {
			return nil, cfg, fmt.Errorf("read data: %w", err)
		}
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, cfg, fmt.Errorf("decode data %s: %w", dataPath, err)
		}
		logger.Debug("loaded data", "path", dataPath)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, cfg, err
	}
	defer f.Close()
	doc, err := dsl.ParseFile(path, f)
	if err != nil {
		return nil, cfg, fmt.Errorf("parse: %w", err)
	}
	logger.Debug("parsed scene", "name", doc.Name, "version", doc.Version, "sections", len(doc.Sections))

	scene, err := layout.Build(doc, data, opts)
	if err != nil {
		return nil, cfg, fmt.Errorf("build: %w", err)
	}
	return scene, cfg, nil
}
