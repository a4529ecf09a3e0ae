package query

import (
	"bufio"
	"io"

	"github.com/sourcegraph/log"
)

// ReadPatternFile parses a line-delimited pattern file: one pattern per
// line, blank lines skipped. A line that fails to parse is logged with its
// line number and reason and excluded from the result, matching the
// exception-free-by-contract policy used everywhere else in this module.
func ReadPatternFile(r io.Reader, mode Mode, logger log.Logger) ([]*Pattern, error) {
	var out []*Pattern
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if len(line) == 0 {
			continue
		}
		p, err := Parse(line, mode)
		if err != nil {
			logger.Warn("skipping malformed pattern line",
				log.Int("line", lineNo),
				log.String("reason", err.Error()))
			continue
		}
		out = append(out, p)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
