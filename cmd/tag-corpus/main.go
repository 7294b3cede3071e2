package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/cognicore/treetag/pkg/treetag"
	"github.com/cognicore/treetag/pkg/treetag/config"
	"github.com/cognicore/treetag/pkg/treetag/invoke"
	"github.com/cognicore/treetag/pkg/treetag/store"
	"github.com/cognicore/treetag/pkg/treetag/store/sqlite"
)

func main() {
	var (
		dbPath     = flag.String("db", "", "Database path (required)")
		configPath = flag.String("config", "", "YAML config file (optional)")
		home       = flag.String("home", "", "TreeTagger installation directory (overrides config/env)")
		lang       = flag.String("lang", "", "Language to tag, e.g. english")
		encoding   = flag.String("encoding", "", "Text encoding: utf8 or latin-1")
		timeout    = flag.Duration("timeout", 2*time.Minute, "Per-document timeout")
		list       = flag.Bool("list", false, "List stored documents and exit")
		tags       = flag.Bool("tags", false, "Print stored tag counts and exit")
	)
	flag.Parse()

	if *dbPath == "" {
		log.Fatal("--db required")
	}

	ctx := context.Background()

	st, err := sqlite.OpenSQLite(ctx, *dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer st.Close()

	if *list {
		listDocs(ctx, st)
		return
	}
	if *tags {
		printTagCounts(ctx, st)
		return
	}

	if flag.NArg() == 0 {
		log.Fatal("no input files; usage: tag-corpus --db corpus.db file.txt page.html ...")
	}

	loader := config.Loader{Path: *configPath}
	opts, err := loader.Load()
	if err != nil {
		log.Fatal(err)
	}
	if *home != "" {
		opts.InstallDir = *home
	}
	if *lang != "" {
		opts.Language = *lang
	}
	if *encoding != "" {
		opts.Encoding = invoke.Encoding(*encoding)
	}
	if opts.Timeout == 0 {
		opts.Timeout = *timeout
	}

	tagger, err := treetag.NewTagger(opts)
	if err != nil {
		log.Fatal(err)
	}

	ids := store.NewIDSource()
	language := opts.Language
	if language == "" {
		language = treetag.DefaultLanguage
	}

	indexed := 0
	for _, path := range flag.Args() {
		text, err := readDocument(path)
		if err != nil {
			log.Printf("skip %s: %v", path, err)
			continue
		}

		tokens, err := tagger.Tag(ctx, text)
		if err != nil {
			log.Printf("skip %s: %v", path, err)
			continue
		}

		doc := store.Doc{
			ID:       ids.NewID(),
			Name:     filepath.Base(path),
			Language: language,
			TaggedAt: time.Now(),
			Tokens:   tokens,
		}
		if err := st.UpsertDoc(ctx, doc); err != nil {
			log.Fatal(err)
		}

		indexed++
		log.Printf("indexed %s (%d tokens)", doc.Name, len(tokens))
	}

	log.Printf("done: %d/%d documents indexed", indexed, flag.NArg())
}

// readDocument loads a file's text; HTML files are reduced to their
// visible text first.
func readDocument(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".html" || ext == ".htm" {
		return extractText(string(data))
	}
	return string(data), nil
}

// extractText parses HTML and concatenates its text nodes, skipping
// script and style subtrees.
func extractText(page string) (string, error) {
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
			buf.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.Join(strings.Fields(buf.String()), " "), nil
}

func listDocs(ctx context.Context, st store.Store) {
	docs, err := st.ListDocs(ctx)
	if err != nil {
		log.Fatal(err)
	}
	for _, d := range docs {
		fmt.Printf("%s\t%s\t%s\t%d tokens\t%s\n",
			d.ID, d.Name, d.Language, d.Tokens, d.TaggedAt.Format(time.RFC3339))
	}
}

func printTagCounts(ctx context.Context, st store.Store) {
	counts, err := st.TagCounts(ctx)
	if err != nil {
		log.Fatal(err)
	}
	for tag, n := range counts {
		fmt.Printf("%s\t%d\n", tag, n)
	}
}
