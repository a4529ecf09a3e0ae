// Command gapmatch-build builds a collection directory from a raw text
// file: it turns each input byte into a symbol shifted by +1, creates the
// layout gapmatch-bench and gapmatch-genpattern expect (tmp/, index/,
// patterns/, results/ under the collection root), then writes the
// serialized self-index and q-gram map.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gapidx/gapmatch/csa"
	"github.com/gapidx/gapmatch/qgram"
	"github.com/peterbourgon/ff/v3"
	"github.com/sourcegraph/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {
	fs := flag.NewFlagSet("gapmatch-build", flag.ExitOnError)
	var (
		input = fs.String("i", "", "path to the raw input text file")
		coll  = fs.String("c", "", "path to the collection directory to create")
		q     = fs.Int("q", 3, "q-gram length for the q-gram map")
	)
	if err := ff.Parse(fs, os.Args[1:], ff.WithEnvVarPrefix("GAPMATCH")); err != nil {
		os.Exit(2)
	}

	liblog := log.Init(log.Resource{Name: "gapmatch-build"})
	defer liblog.Sync()
	logger := log.Scoped("gapmatch-build", "collection builder")
	if *input == "" || *coll == "" {
		logger.Fatal("both -i and -c are required")
	}

	if err := run(*input, *coll, *q, logger); err != nil {
		logger.Fatal("build failed", log.Error(err))
	}
}

func run(input, collDir string, q int, logger log.Logger) error {
	for _, sub := range []string{"tmp", "index", "patterns", "results"} {
		if err := os.MkdirAll(collDir+"/"+sub, 0o755); err != nil {
			return err
		}
	}

	// shardLog is a rotating TSV audit trail of build runs against this
	// collection, separate from the structured logger above.
	shardLog := &lumberjack.Logger{
		Filename:   collDir + "/tmp/gapmatch-build-shard-log.tsv",
		MaxSize:    100, // Megabyte
		MaxBackups: 5,
	}
	defer shardLog.Close()

	raw, err := os.ReadFile(input)
	if err != nil {
		return err
	}
	symbols := make([]uint64, len(raw))
	for i, b := range raw {
		symbols[i] = uint64(b) + 1 // shift so 0 stays reserved for the sentinel
	}

	text, err := csa.NewText(symbols, nil)
	if err != nil {
		return err
	}

	logger.Info("building self-index",
		log.Int("textSize", text.Len()),
		log.Int("alphabetShift", 1))

	idx := csa.Build(text)
	if err := csa.Save(idx, collDir+"/index/self-index.bin"); err != nil {
		return err
	}

	qmap := qgram.Build(text, q)
	if err := qgram.Save(qmap, collDir+"/index/qgrams.bin"); err != nil {
		return err
	}

	logger.Info("collection built",
		log.String("collection", collDir),
		log.Int("suffixArrayEntries", len(idx.SA)))

	fmt.Fprintf(shardLog, "%s\t%s\t%d\t%d\t%d\n",
		time.Now().UTC().Format(time.RFC3339), input, text.Len(), len(idx.SA), q)

	return nil
}
