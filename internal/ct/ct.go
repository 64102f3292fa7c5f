package ct

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/drakos74/seismic-bench/internal/table"
	"github.com/rs/zerolog/log"
)

var MalformedErr = errors.New("malformed ct file")

// Pair is a base pair with P5 < P3.
type Pair struct {
	P5 int `json:"p5"`
	P3 int `json:"p3"`
}

// NewPair creates a pair with its positions in 5' to 3' order.
func NewPair(a, b int) Pair {
	if a > b {
		a, b = b, a
	}
	return Pair{P5: a, P3: b}
}

// Structure is one secondary structure of an RNA.
type Structure struct {
	Title    string
	Seq      string
	partners []int
}

// Len returns the number of positions.
func (s Structure) Len() int {
	return len(s.partners)
}

// Partner returns the position paired with the given 1-based position, or 0 if it is unpaired.
func (s Structure) Partner(pos int) int {
	if pos < 1 || pos > len(s.partners) {
		return 0
	}
	return s.partners[pos-1]
}

// Pairs returns all base pairs sorted by their 5' position.
func (s Structure) Pairs() []Pair {
	pp := make([]Pair, 0)
	for i, p := range s.partners {
		if p > i+1 {
			pp = append(pp, Pair{P5: i + 1, P3: p})
		}
	}
	return pp
}

// ContainsAll returns true if every one of the given pairs is in the structure.
func (s Structure) ContainsAll(truth []Pair) bool {
	for _, p := range truth {
		if s.Partner(p.P5) != p.P3 {
			return false
		}
	}
	return true
}

// FractionFolded returns the fraction of structures containing all the given pairs.
// It is NaN if there are no structures.
func FractionFolded(structures []Structure, truth []Pair) float64 {
	if len(structures) == 0 {
		return math.NaN()
	}
	var n int
	for _, s := range structures {
		if s.ContainsAll(truth) {
			n++
		}
	}
	return float64(n) / float64(len(structures))
}

// Models maps the name of a structural model to the pairs defining it.
type Models map[string][]Pair

// Names returns the model names sorted.
func (m Models) Names() []string {
	nn := make([]string, 0, len(m))
	for n := range m {
		nn = append(nn, n)
	}
	sort.Strings(nn)
	return nn
}

// Union merges the pairs of all models, without duplicates.
func (m Models) Union() []Pair {
	seen := make(map[Pair]bool)
	pp := make([]Pair, 0)
	for _, n := range m.Names() {
		for _, p := range m[n] {
			if !seen[p] {
				seen[p] = true
				pp = append(pp, p)
			}
		}
	}
	sort.Slice(pp, func(i, j int) bool {
		return pp[i].P5 < pp[j].P5 || (pp[i].P5 == pp[j].P5 && pp[i].P3 < pp[j].P3)
	})
	return pp
}

// Load loads all structures from a ct file.
func Load(path string) ([]Structure, error) {
	f, err := table.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	ss, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("could not parse '%s': %w", path, err)
	}
	log.Debug().Str("path", path).Int("structures", len(ss)).Msg("loaded ct file")
	return ss, nil
}

// Parse reads every structure of a ct file.
// Each structure starts with a line holding its length and title,
// followed by one line per position: index, base, previous, next, partner, number.
func Parse(r io.Reader) ([]Structure, error) {
	scanner := bufio.NewScanner(r)
	line := 0
	next := func() ([]string, bool) {
		for scanner.Scan() {
			line++
			fields := strings.Fields(scanner.Text())
			if len(fields) > 0 {
				return fields, true
			}
		}
		return nil, false
	}

	structures := make([]Structure, 0)
	for {
		head, ok := next()
		if !ok {
			break
		}
		n, err := strconv.Atoi(head[0])
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid length '%s' on line %d: %w", head[0], line, MalformedErr)
		}
		s := Structure{
			Title:    strings.Join(head[1:], " "),
			partners: make([]int, n),
		}
		var seq strings.Builder
		for i := 1; i <= n; i++ {
			fields, ok := next()
			if !ok {
				return nil, fmt.Errorf("structure '%s' ended after %d of %d positions: %w", s.Title, i-1, n, MalformedErr)
			}
			if len(fields) < 6 {
				return nil, fmt.Errorf("line %d has %d fields: %w", line, len(fields), MalformedErr)
			}
			idx, err := strconv.Atoi(fields[0])
			if err != nil || idx != i {
				return nil, fmt.Errorf("expected position %d on line %d but got '%s': %w", i, line, fields[0], MalformedErr)
			}
			partner, err := strconv.Atoi(fields[4])
			if err != nil || partner < 0 || partner > n || partner == i {
				return nil, fmt.Errorf("invalid partner '%s' on line %d: %w", fields[4], line, MalformedErr)
			}
			seq.WriteString(fields[1])
			s.partners[i-1] = partner
		}
		for i, p := range s.partners {
			if p != 0 && s.partners[p-1] != i+1 {
				return nil, fmt.Errorf("position %d pairs with %d but %d pairs with %d: %w", i+1, p, p, s.partners[p-1], MalformedErr)
			}
		}
		s.Seq = seq.String()
		structures = append(structures, s)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read ct: %w", err)
	}
	return structures, nil
}
