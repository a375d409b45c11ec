package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/Zizwar/google-api-typings-generator/internal/config"
	"github.com/Zizwar/google-api-typings-generator/internal/discovery"
	"github.com/Zizwar/google-api-typings-generator/typingsgen"
	"github.com/Zizwar/google-api-typings-generator/typingsgen/sink"
)

type GenCmd struct {
	Out      string   `help:"Output directory for typings packages." short:"o"`
	API      []string `help:"Generate only the named APIs (repeatable)." short:"a"`
	CacheDir string   `help:"Directory for cached discovery documents."`
	NoCache  bool     `help:"Bypass the discovery document cache."`
	Force    bool     `help:"Regenerate even when the output is up to date." short:"f"`
	Config   string   `help:"Path to the YAML config file." default:".gapi-typings.yaml"`
	Verbose  bool     `help:"Enable debug logging." short:"v"`
}

func (c *GenCmd) Run() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if c.Out != "" {
		cfg.Out = c.Out
	}
	if len(c.API) > 0 {
		cfg.APIs = c.API
	}
	if c.CacheDir != "" {
		cfg.CacheDir = c.CacheDir
	}

	opts := []discovery.Option{discovery.WithLogger(log)}
	if cfg.CacheDir != "" && !c.NoCache {
		cache, err := discovery.NewCache(cfg.CacheDir)
		if err != nil {
			return err
		}
		opts = append(opts, discovery.WithCache(cache))
	}
	client := discovery.NewClient(opts...)

	genCfg := typingsgen.DefaultConfig()
	genCfg.TypeScript.MaxLineLength = cfg.MaxLineLength
	gen := typingsgen.New(sink.NewFilesystemSink(cfg.Out), genCfg, log)

	ctx := context.Background()
	list, err := client.List(ctx, discovery.ListParams{Preferred: true})
	if err != nil {
		return fmt.Errorf("list discovery directory: %w", err)
	}

	// One API at a time. The discovery service degrades under concurrent
	// load, so the batch is strictly sequential.
	var failed int
	for _, item := range list.Items {
		if len(cfg.APIs) > 0 && !slices.Contains(cfg.APIs, item.Name) {
			continue
		}
		if err := c.generateOne(ctx, client, gen, cfg.Out, item, log); err != nil {
			if errors.Is(err, typingsgen.ErrUnknownRevision) {
				log.Warn("skipping API with unknown revision", slog.String("api", item.ID), slog.Any("error", err))
				continue
			}
			log.Error("generation failed", slog.String("api", item.ID), slog.Any("error", err))
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d API(s) failed to generate", failed)
	}
	return nil
}

func (c *GenCmd) generateOne(ctx context.Context, client *discovery.Client, gen *typingsgen.Generator, outDir string, item discovery.DirectoryItem, log *slog.Logger) error {
	doc, err := client.Get(ctx, item.DiscoveryRestURL)
	if err != nil {
		return err
	}

	if !c.Force {
		fresh, err := upToDate(outDir, doc)
		if err != nil {
			return err
		}
		if fresh {
			log.Info("up to date", slog.String("api", doc.ID))
			return nil
		}
	}
	return gen.GenerateAPI(ctx, doc)
}

// upToDate compares the incoming document's revision with the revision
// marker embedded in a previously generated index.d.ts.
func upToDate(outDir string, doc *discovery.RestDescription) (bool, error) {
	rev, err := typingsgen.DocRevision(doc)
	if err != nil {
		return false, err
	}

	path := filepath.Join(outDir, typingsgen.PackageName(doc), "index.d.ts")
	f, err := os.Open(path)
	if err != nil {
		return false, nil // no prior output
	}
	defer f.Close()

	prior, ok := typingsgen.ExtractRevision(f)
	return ok && prior >= rev, nil
}

type ListCmd struct {
	All    bool   `help:"Include non-preferred API versions."`
	Name   string `help:"Filter by API name."`
	Fields string `help:"Partial-response field filter passed to the directory."`
}

func (c *ListCmd) Run() error {
	client := discovery.NewClient()
	list, err := client.List(context.Background(), discovery.ListParams{
		Preferred: !c.All,
		Name:      c.Name,
		Fields:    c.Fields,
	})
	if err != nil {
		return err
	}
	for _, item := range list.Items {
		fmt.Printf("%-40s %-15s %s\n", item.ID, item.Version, item.Title)
	}
	return nil
}
