// Command gapmatch-genpattern samples gapped patterns out of a raw text
// file for use as a benchmark workload. It is a deliberately simplified
// stand-in for the source generator, which builds a full compressed suffix
// tree to rank phrases by frequency; sampling substrings directly at random
// offsets avoids that construction cost while still producing patterns that
// are guaranteed to occur in the text at least once.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"github.com/peterbourgon/ff/v3"
	"github.com/sourcegraph/log"
)

func main() {
	fs := flag.NewFlagSet("gapmatch-genpattern", flag.ExitOnError)
	var (
		input  = fs.String("i", "", "path to the raw input text file")
		count  = fs.Int("n", 10, "number of patterns to generate")
		length = fs.Int("l", 6, "length of each literal subpattern")
		terms  = fs.Int("t", 2, "number of literal subpatterns per pattern (1-3)")
		minGap = fs.Uint64("min-gap", 0, "minimum gap between consecutive subpatterns")
		maxGap = fs.Uint64("max-gap", 20, "maximum gap between consecutive subpatterns")
		seed   = fs.Int64("seed", 1, "random seed")
	)
	if err := ff.Parse(fs, os.Args[1:], ff.WithEnvVarPrefix("GAPMATCH")); err != nil {
		os.Exit(2)
	}

	liblog := log.Init(log.Resource{Name: "gapmatch-genpattern"})
	defer liblog.Sync()
	logger := log.Scoped("gapmatch-genpattern", "pattern sampler")
	if *input == "" {
		logger.Fatal("-i is required")
	}
	if *terms < 1 || *terms > 3 {
		logger.Fatal("-t must be 1, 2, or 3", log.Int("terms", *terms))
	}

	raw, err := os.ReadFile(*input)
	if err != nil {
		logger.Fatal("read input", log.Error(err))
	}

	patterns, err := generate(raw, *count, *length, *terms, *minGap, *maxGap, rand.New(rand.NewSource(*seed)))
	if err != nil {
		logger.Fatal("generate patterns", log.Error(err))
	}
	for _, p := range patterns {
		fmt.Println(p)
	}
}

// isWordByte mirrors the source generator's default charset filter
// (alphanumeric or underscore), used here only to prefer human-readable
// subpattern boundaries over arbitrary binary splits.
func isWordByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9') || b == '_'
}

func generate(text []byte, count, length, terms int, minGap, maxGap uint64, rng *rand.Rand) ([]string, error) {
	n := len(text)
	span := length*terms + int(maxGap)*(terms-1)
	if n < span {
		return nil, fmt.Errorf("input text (%d bytes) too short for %d subpatterns of length %d with max gap %d", n, terms, length, maxGap)
	}

	var out []string
	attempts := 0
	for len(out) < count && attempts < count*50 {
		attempts++
		start := rng.Intn(n - span + 1)

		var b strings.Builder
		pos := start
		valid := true
		for t := 0; t < terms; t++ {
			lit := text[pos : pos+length]
			if !hasWordByte(lit) || containsPatternSyntax(lit) {
				valid = false
				break
			}
			if t > 0 {
				gap := minGap
				if maxGap > minGap {
					gap += uint64(rng.Int63n(int64(maxGap - minGap + 1)))
				}
				pos += int(gap)
				b.WriteString(".*")
				b.WriteByte('{')
				fmt.Fprintf(&b, "%d,%d", minGap, maxGap)
				b.WriteByte('}')
			}
			b.Write(lit)
			pos += length
		}
		if !valid {
			continue
		}
		out = append(out, b.String())
	}
	return out, nil
}

func hasWordByte(lit []byte) bool {
	for _, b := range lit {
		if isWordByte(b) {
			return true
		}
	}
	return false
}

// containsPatternSyntax reports whether lit contains a byte the pattern
// parser would misinterpret as gap-bound syntax; the parser has no escaping
// mechanism, so such candidates are simply discarded rather than encoded.
func containsPatternSyntax(lit []byte) bool {
	for _, b := range lit {
		if b == '{' || b == '}' || b == '.' || b == '*' {
			return true
		}
	}
	return false
}
