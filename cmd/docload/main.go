// Command docload loads course documents into the configured document store.
// Input is JSON lines: {"key": "textbook/ch1", "data": {...}}.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/yungbote/coursechat-backend/internal/app"
	"github.com/yungbote/coursechat-backend/internal/data/docstore"
	"github.com/yungbote/coursechat-backend/internal/platform/logger"
)

type collectionList []string

func (l *collectionList) String() string { return strings.Join(*l, ",") }
func (l *collectionList) Set(v string) error {
	v = strings.TrimSpace(v)
	if v != "" {
		*l = append(*l, v)
	}
	return nil
}

type line struct {
	Key  string         `json:"key"`
	Data map[string]any `json:"data"`
}

type batchPutter interface {
	PutMany(ctx context.Context, docs map[docstore.Key]docstore.Record) error
}

const batchSize = 200

func main() {
	var (
		file        string
		collections collectionList
		dryRun      bool
		limit       int
	)
	flag.StringVar(&file, "file", "", "JSONL file to load (defaults to stdin)")
	flag.Var(&collections, "collection", "only load keys in this collection (repeatable)")
	flag.BoolVar(&dryRun, "dry-run", false, "print planned writes without storing")
	flag.IntVar(&limit, "limit", 0, "limit number of documents loaded")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Printf("load .env: %v\n", err)
	}
	log, err := logger.New(envOr("LOG_MODE", "development"))
	if err != nil {
		fmt.Printf("init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	in := os.Stdin
	if file != "" {
		f, err := os.Open(file)
		if err != nil {
			fmt.Printf("open %s: %v\n", file, err)
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}

	ctx := context.Background()
	cfg := app.LoadConfig(log)
	store, err := app.OpenDocstore(ctx, cfg, log)
	if err != nil {
		fmt.Printf("open docstore: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	wanted := map[string]bool{}
	for _, c := range collections {
		wanted[c] = true
	}

	pending := map[docstore.Key]docstore.Record{}
	flush := func() error {
		if len(pending) == 0 {
			return nil
		}
		defer func() { pending = map[docstore.Key]docstore.Record{} }()
		if bp, ok := store.(batchPutter); ok {
			return bp.PutMany(ctx, pending)
		}
		for k, rec := range pending {
			if err := store.Put(ctx, k, rec); err != nil {
				return fmt.Errorf("put %s: %w", k, err)
			}
		}
		return nil
	}

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	loaded, skipped, lineNo := 0, 0, 0
	for scanner.Scan() {
		lineNo++
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			continue
		}
		var l line
		if err := json.Unmarshal([]byte(raw), &l); err != nil || strings.TrimSpace(l.Key) == "" {
			fmt.Printf("line %d: skipping malformed entry\n", lineNo)
			skipped++
			continue
		}
		key := docstore.Key(strings.Trim(strings.TrimSpace(l.Key), "/"))
		if len(wanted) > 0 && !wanted[key.Collection()] {
			continue
		}
		rec, err := docstore.NewRecord(l.Data)
		if err != nil {
			fmt.Printf("line %d: encode %s: %v\n", lineNo, key, err)
			skipped++
			continue
		}
		if dryRun {
			fmt.Printf("[dry-run] put %s (%d fields)\n", key, len(l.Data))
		} else {
			pending[key] = rec
			if len(pending) >= batchSize {
				if err := flush(); err != nil {
					fmt.Printf("write batch: %v\n", err)
					os.Exit(1)
				}
			}
		}
		loaded++
		if limit > 0 && loaded >= limit {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Printf("read input: %v\n", err)
		os.Exit(1)
	}
	if err := flush(); err != nil {
		fmt.Printf("write batch: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("done; loaded=%d skipped=%d\n", loaded, skipped)
}

func envOr(name, def string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	return def
}
