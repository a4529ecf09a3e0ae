// Command gapmatch-bench loads a built collection and times a batch of
// gapped-pattern queries against it, reporting the same summary statistics
// the source's benchmark driver does: total, min, quartiles, mean, median,
// max, plus the result count and a checksum.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/dustin/go-humanize"
	gapmatch "github.com/gapidx/gapmatch"
	"github.com/gapidx/gapmatch/csa"
	"github.com/gapidx/gapmatch/qgram"
	"github.com/gapidx/gapmatch/query"
	"github.com/peterbourgon/ff/v3"
	"github.com/sourcegraph/log"
	"golang.org/x/sync/errgroup"
)

func main() {
	fs := flag.NewFlagSet("gapmatch-bench", flag.ExitOnError)
	var (
		coll = fs.String("c", "", "path to a collection directory built by gapmatch-build")
		pat  = fs.String("p", "", "path to a pattern file")
	)
	if err := ff.Parse(fs, os.Args[1:], ff.WithEnvVarPrefix("GAPMATCH")); err != nil {
		os.Exit(2)
	}

	liblog := log.Init(log.Resource{Name: "gapmatch-bench"})
	defer liblog.Sync()
	logger := log.Scoped("gapmatch-bench", "benchmark driver")
	if *coll == "" || *pat == "" {
		logger.Fatal("both -c and -p are required")
	}

	if err := run(*coll, *pat, logger); err != nil {
		logger.Fatal("benchmark failed", log.Error(err))
	}
}

func run(collDir, patternFile string, logger log.Logger) error {
	idx, err := csa.Load(collDir + "/index/self-index.bin")
	if err != nil {
		return err
	}
	qmap, err := qgram.Load(collDir + "/index/qgrams.bin")
	if err != nil {
		return err
	}

	f, err := os.Open(patternFile)
	if err != nil {
		return err
	}
	defer f.Close()

	patterns, err := query.ReadPatternFile(f, query.ByteMode, logger)
	if err != nil {
		return err
	}

	index := gapmatch.NewIndex(idx)
	filter := qgram.NewFilter(idx.Text, qmap)
	facade := gapmatch.NewFacade(index, idx.Text, filter, logger)

	durations := make([]time.Duration, len(patterns))
	numResults := make([]int, len(patterns))

	var g errgroup.Group
	for i, p := range patterns {
		i, p := i, p
		g.Go(func() error {
			start := time.Now()
			res, _, _ := facade.Search(p)
			durations[i] = time.Since(start)
			numResults[i] = len(res.Positions)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	printSummary(durations, numResults)
	return nil
}

func printSummary(durations []time.Duration, numResults []int) {
	sorted := append([]time.Duration(nil), durations...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	ms := func(d time.Duration) float64 { return float64(d) / float64(time.Millisecond) }

	var total time.Duration
	checksum := 0
	for i, d := range durations {
		total += d
		checksum += numResults[i]
	}

	n := len(sorted)
	quartile := func(p float64) float64 {
		if n == 0 {
			return 0
		}
		idx := int(p * float64(n-1))
		return ms(sorted[idx])
	}

	fmt.Printf("queries:     %d\n", n)
	fmt.Printf("total:       %.3f ms\n", ms(total))
	if n > 0 {
		fmt.Printf("min:         %.3f ms\n", ms(sorted[0]))
		fmt.Printf("qrt_1st:     %.3f ms\n", quartile(0.25))
		fmt.Printf("mean:        %.3f ms\n", ms(total)/float64(n))
		fmt.Printf("median:      %.3f ms\n", quartile(0.5))
		fmt.Printf("qrt_3rd:     %.3f ms\n", quartile(0.75))
		fmt.Printf("max:         %.3f ms\n", ms(sorted[n-1]))
	}
	fmt.Printf("num_results: %s\n", humanize.Comma(int64(checksum)))
	fmt.Printf("checksum:    %d\n", checksum)
}
