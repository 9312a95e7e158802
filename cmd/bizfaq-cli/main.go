// Command bizfaq-cli works with business and FAQ tables offline: it parses
// tables, answers one-off queries and seeds a Redis instance for the server.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"maps"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/kailas-cloud/bizfaq"
	dbRedis "github.com/kailas-cloud/bizfaq/internal/db/redis"
	"github.com/kailas-cloud/bizfaq/internal/logger"
	"github.com/kailas-cloud/bizfaq/internal/source"
	"github.com/kailas-cloud/bizfaq/internal/version"
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:      "bizfaq-cli",
		Usage:     "Query business and FAQ tables from the command line",
		Version:   version.Version,
		Writer:    out,
		ErrWriter: out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "error",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "parse",
				Usage:     "Print the records of a table as JSON",
				ArgsUsage: "FILE",
				Action:    parseCommand,
			},
			{
				Name:      "query",
				Usage:     "Answer a question from the business and FAQ tables",
				ArgsUsage: "QUESTION...",
				Action:    queryCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "business",
						Aliases: []string{"b"},
						Usage:   "Path to the business directory table",
						Value:   "data/business.csv",
					},
					&cli.StringFlag{
						Name:    "faq",
						Aliases: []string{"f"},
						Usage:   "Path to the FAQ table",
						Value:   "data/faq_kb.csv",
					},
					&cli.IntFlag{
						Name:    "k",
						Aliases: []string{"n"},
						Usage:   "Maximum number of matches",
						Value:   3,
					},
					&cli.Float64Flag{
						Name:  "min-score",
						Usage: "Relevance floor; only matches scoring above it are shown",
						Value: 0.08,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Print the ranked hits as JSON instead of the answer text",
					},
				},
			},
			{
				Name:   "seed",
				Usage:  "Store the tables in Redis for the redis source driver",
				Action: seedCommand,
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:     "redis",
						Aliases:  []string{"r"},
						Usage:    "Redis address (repeatable)",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "password",
						Usage:   "Redis password",
						EnvVars: []string{"REDIS_PASSWORD"},
					},
					&cli.StringFlag{
						Name:     "business",
						Aliases:  []string{"b"},
						Usage:    "Path to the business directory table",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "faq",
						Aliases:  []string{"f"},
						Usage:    "Path to the FAQ table",
						Required: true,
					},
					&cli.DurationFlag{
						Name:  "timeout",
						Usage: "How long to wait for Redis to become ready",
						Value: 10 * time.Second,
					},
				},
			},
			{
				Name:      "clear",
				Usage:     "Remove seeded tables from Redis",
				ArgsUsage: "[KIND...]",
				Action:    clearCommand,
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:     "redis",
						Aliases:  []string{"r"},
						Usage:    "Redis address (repeatable)",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "password",
						Usage:   "Redis password",
						EnvVars: []string{"REDIS_PASSWORD"},
					},
					&cli.DurationFlag{
						Name:  "timeout",
						Usage: "How long to wait for Redis to become ready",
						Value: 10 * time.Second,
					},
				},
			},
		},
	}
}

func setupLogger(c *cli.Context) error {
	l, err := logger.NewLogger("local", c.String("log-level"))
	if err != nil {
		return err
	}
	c.Context = logger.ContextWithLogger(c.Context, l)
	return nil
}

func parseCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one FILE argument")
	}
	text, err := os.ReadFile(c.Args().First())
	if err != nil {
		return fmt.Errorf("read table: %w", err)
	}
	recs, err := bizfaq.Parse(string(text))
	if err != nil {
		return err
	}

	rows := make([]map[string]string, len(recs))
	for i, r := range recs {
		rows[i] = r.Values
	}
	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

func queryCommand(c *cli.Context) error {
	question := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(question) == "" {
		return fmt.Errorf("a question is required")
	}

	business, err := readOptional(c.String("business"))
	if err != nil {
		return err
	}
	faq, err := readOptional(c.String("faq"))
	if err != nil {
		return err
	}

	eng, err := bizfaq.Build(business, faq,
		bizfaq.WithMinScore(c.Float64("min-score")),
		bizfaq.WithSourceNames(c.String("faq"), c.String("business")),
		bizfaq.WithLogger(logger.FromContext(c.Context)),
	)
	if err != nil {
		return fmt.Errorf("build index: %w", err)
	}

	opts := &bizfaq.QueryOptions{K: c.Int("k")}
	if c.Bool("json") {
		enc := json.NewEncoder(c.App.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(eng.Search(question, opts))
	}

	ans := eng.Query(question, opts)
	fmt.Fprintln(c.App.Writer, ans.Text)
	if len(ans.Sources) > 0 {
		fmt.Fprintf(c.App.Writer, "\nSources: %s\n", strings.Join(ans.Sources, "; "))
	}
	return nil
}

// readOptional reads path; an empty path means an empty table.
func readOptional(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read table: %w", err)
	}
	return string(data), nil
}

type tablePutter interface {
	Put(ctx context.Context, key, text string) error
}

func seedCommand(c *cli.Context) error {
	l := logger.FromContext(c.Context)

	tables := map[string]string{}
	for _, kind := range []string{"business", "faq"} {
		data, err := os.ReadFile(c.String(kind))
		if err != nil {
			return fmt.Errorf("read %s table: %w", kind, err)
		}
		if _, err := bizfaq.Parse(string(data)); err != nil {
			return fmt.Errorf("%s table: %w", kind, err)
		}
		tables[kind] = string(data)
	}

	store, err := connectRedis(c)
	if err != nil {
		return err
	}
	defer store.Close()

	keys, err := seedTables(c.Context, source.NewRedis(store), tables)
	if err != nil {
		return err
	}
	for _, k := range keys {
		l.Info("table stored", zap.String("key", k))
		fmt.Fprintln(c.App.Writer, k)
	}
	return nil
}

// seedTables writes each table under KeyPrefix+kind and returns the keys in
// kind order.
func seedTables(ctx context.Context, dst tablePutter, tables map[string]string) ([]string, error) {
	kinds := slices.Sorted(maps.Keys(tables))

	keys := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		key := source.KeyPrefix + kind
		if err := dst.Put(ctx, key, tables[kind]); err != nil {
			return keys, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}

type tableDeleter interface {
	Delete(ctx context.Context, key string) error
}

func clearCommand(c *cli.Context) error {
	kinds := c.Args().Slice()
	if len(kinds) == 0 {
		kinds = []string{"business", "faq"}
	}

	store, err := connectRedis(c)
	if err != nil {
		return err
	}
	defer store.Close()

	keys, err := clearTables(c.Context, source.NewRedis(store), kinds)
	if err != nil {
		return err
	}
	for _, k := range keys {
		logger.FromContext(c.Context).Info("table removed", zap.String("key", k))
		fmt.Fprintln(c.App.Writer, k)
	}
	return nil
}

// clearTables deletes KeyPrefix+kind for every kind and returns the keys
// removed so far.
func clearTables(ctx context.Context, dst tableDeleter, kinds []string) ([]string, error) {
	keys := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		key := source.KeyPrefix + kind
		if err := dst.Delete(ctx, key); err != nil {
			return keys, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}

func connectRedis(c *cli.Context) (*dbRedis.Store, error) {
	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    c.StringSlice("redis"),
		Password: c.String("password"),
	})
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	if err := store.WaitForReady(c.Context, c.Duration("timeout")); err != nil {
		store.Close()
		return nil, fmt.Errorf("redis not ready: %w", err)
	}
	return store, nil
}
