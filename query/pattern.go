// Copyright 2016 Google Inc. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package query parses gapped pattern text: a sequence of literal
// subpatterns joined by ".*" tokens, each joint carrying an optional
// (min,max) gap bound.
package query

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MaxGap is the sentinel used for an unbounded gap upper limit.
const MaxGap = math.MaxUint64

// GapBound constrains the distance, in symbols, between the end of one
// subpattern and the start of the next.
type GapBound struct {
	Min uint64
	Max uint64
}

// Mode selects how subpattern literals are tokenized.
type Mode int

const (
	// ByteMode treats each subpattern as a raw byte string.
	ByteMode Mode = iota
	// IntMode treats each subpattern as whitespace-separated integers,
	// for texts over a non-byte integer alphabet.
	IntMode
)

// Pattern is one, two, or three literal subpatterns joined by bounded gaps.
// len(Gaps) == len(Subpatterns)-1.
type Pattern struct {
	Mode        Mode
	Subpatterns [][]uint64
	Gaps        []GapBound
}

// NumTerms reports how many literal subpatterns make up p (1, 2, or 3).
func (p *Pattern) NumTerms() int { return len(p.Subpatterns) }

// Parse splits raw on the literal token ".*" into subpatterns, each
// subpattern after the first optionally preceded by "{min,max}" to override
// the default gap of (0, +inf). Byte-mode subpatterns are parsed one symbol
// per byte (shifted by one, see tokenize); int-mode subpatterns are
// whitespace-separated decimal integers.
func Parse(raw string, mode Mode) (*Pattern, error) {
	parts := strings.Split(raw, ".*")
	if len(parts) == 0 || len(parts) > 3 {
		return nil, fmt.Errorf("pattern has %d subpatterns, want 1-3", len(parts))
	}

	p := &Pattern{Mode: mode}
	for _, part := range parts {
		lit, bound, err := splitGapPrefix(part)
		if err != nil {
			return nil, err
		}
		sub, err := tokenize(lit, mode)
		if err != nil {
			return nil, err
		}
		if len(sub) == 0 {
			return nil, fmt.Errorf("empty subpattern in %q", raw)
		}
		p.Subpatterns = append(p.Subpatterns, sub)
		if len(p.Subpatterns) > 1 {
			p.Gaps = append(p.Gaps, bound)
		}
	}
	return p, nil
}

// splitGapPrefix extracts a leading "{min,max}" gap override from a
// subpattern part, returning the default gap (0, +inf) when absent. The
// override, if present, always describes the gap preceding this subpattern
// (it is ignored on the first subpattern, which has no preceding gap).
func splitGapPrefix(part string) (string, GapBound, error) {
	def := GapBound{Min: 0, Max: MaxGap}
	j := strings.IndexByte(part, '}')
	if !strings.HasPrefix(part, "{") || j < 0 {
		return part, def, nil
	}
	body := part[1:j]
	minMax := strings.SplitN(body, ",", 2)
	if len(minMax) != 2 {
		return "", def, fmt.Errorf("malformed gap bound %q", part[:j+1])
	}
	min, err := strconv.ParseUint(strings.TrimSpace(minMax[0]), 10, 64)
	if err != nil {
		return "", def, fmt.Errorf("malformed gap minimum in %q: %w", part[:j+1], err)
	}
	var max uint64 = MaxGap
	if s := strings.TrimSpace(minMax[1]); s != "" && s != "+inf" {
		max, err = strconv.ParseUint(s, 10, 64)
		if err != nil {
			return "", def, fmt.Errorf("malformed gap maximum in %q: %w", part[:j+1], err)
		}
	}
	return part[j+1:], GapBound{Min: min, Max: max}, nil
}

func tokenize(lit string, mode Mode) ([]uint64, error) {
	if mode == ByteMode {
		// Shifted by one to match the symbol alphabet gapmatch-build produces:
		// raw byte b is stored as symbol b+1, reserving 0 for the sentinel.
		out := make([]uint64, 0, len(lit))
		for i := 0; i < len(lit); i++ {
			out = append(out, uint64(lit[i])+1)
		}
		return out, nil
	}
	fields := strings.Fields(lit)
	out := make([]uint64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseUint(f, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed integer symbol %q: %w", f, err)
		}
		out = append(out, v)
	}
	return out, nil
}
