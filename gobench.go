package matbench

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/perf/benchfmt"
)

// LoadGoBench reads `go test -bench` output and converts every benchmark
// result line into a [ResultRecord].
//
// The category and size come from sub-benchmark keys: "threads=" (or
// "configuration=" with [SchemaConfigurations]) and "size=" (or
// "dimension="). The time comes from the "sec/op" or "ns/op" value.
//
//	BenchmarkMultiply/threads=4/size=512-8   10   11843210 ns/op
//
// Lines without a time value, or without both keys, are [*FormatError]s.
func LoadGoBench(path string, opts ...Option) ([]ResultRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &FileNotFoundError{Path: path, Err: err}
		}

		return nil, fmt.Errorf("open bench output: %w", err)
	}

	defer func() { _ = file.Close() }()

	cfg := applyOptions(opts)
	if cfg.Source == "" {
		cfg.Source = sourceFromPath(path)
	}

	return parseGoBench(file, path, cfg)
}

// LoadGoBenchReader is like [LoadGoBench] but reads from r.
func LoadGoBenchReader(r io.Reader, name string, opts ...Option) ([]ResultRecord, error) {
	cfg := applyOptions(opts)
	if cfg.Source == "" {
		cfg.Source = sourceFromPath(name)
	}

	return parseGoBench(r, name, cfg)
}

func parseGoBench(r io.Reader, name string, cfg options) ([]ResultRecord, error) {
	categoryKey := strings.ToLower(cfg.Schema.Columns[cfg.Schema.categoryCol])

	reader := benchfmt.NewReader(r, name)

	var records []ResultRecord

	for reader.Scan() {
		switch rec := reader.Result().(type) {
		case *benchfmt.SyntaxError:
			return nil, &FormatError{Path: name, Line: rec.Line, Err: errors.New(rec.Msg)}
		case *benchfmt.Result:
			keys := subNameKeys(rec.Name)

			elapsed, ok := secondsPerOp(rec)
			if !ok {
				return nil, &FormatError{Path: name, Column: "sec/op", Err: fmt.Errorf("%s: no time value", string(rec.Name))}
			}

			row := []string{"", "", strconv.FormatFloat(elapsed, 'g', -1, 64)}
			row[cfg.Schema.categoryCol] = keys[categoryKey]

			size := keys["size"]
			if size == "" {
				size = keys["dimension"]
			}

			row[cfg.Schema.sizeCol] = size

			parsed, colIdx, parseErr := parseRow(row, cfg.Schema)
			if parseErr != nil {
				return nil, &FormatError{
					Path:   name,
					Column: strings.ToLower(cfg.Schema.Columns[colIdx]),
					Err:    fmt.Errorf("%s: %w", string(rec.Name), parseErr),
				}
			}

			parsed.Source = cfg.Source
			records = append(records, parsed)
		}
	}

	err := reader.Err()
	if err != nil {
		return nil, fmt.Errorf("read bench output %s: %w", name, err)
	}

	cfg.Logger.Debug("loaded go bench output",
		zap.String("path", name),
		zap.String("schema", cfg.Schema.Name),
		zap.Int("records", len(records)),
	)

	return records, nil
}

// subNameKeys returns the key=value pairs of a benchmark's sub-name parts,
// with lowercased keys.
func subNameKeys(n benchfmt.Name) map[string]string {
	_, parts := n.Parts()

	keys := make(map[string]string, len(parts))

	for _, part := range parts {
		s := string(part)
		if !strings.HasPrefix(s, "/") {
			continue
		}

		key, value, ok := strings.Cut(s[1:], "=")
		if !ok {
			continue
		}

		keys[strings.ToLower(key)] = value
	}

	return keys
}

func secondsPerOp(res *benchfmt.Result) (float64, bool) {
	for _, v := range res.Values {
		switch v.Unit {
		case "sec/op":
			return v.Value, true
		case "ns/op":
			return v.Value / 1e9, true
		}
	}

	return 0, false
}
