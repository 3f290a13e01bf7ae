package edgelist

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/graphflow/resource"
)

// DefaultDelimiter separates the fields of a line.
const DefaultDelimiter = "\t"

// DefaultPropertyKey stores vertex values.
const DefaultPropertyKey = "value"

// maxLineSize bounds a single line.
const maxLineSize = 1 << 20

// MalformedPolicy selects how malformed lines are handled.
type MalformedPolicy int

const (
	// FailOnMalformed aborts the read with a MalformedRecordError.
	FailOnMalformed MalformedPolicy = iota
	// SkipMalformed skips the line and records its number in
	// ReadReport.Skipped.
	SkipMalformed
)

// Config configures reading.
type Config struct {
	// Delimiter separates fields. Default: DefaultDelimiter.
	Delimiter string
	// PropertyKey names the vertex value property. Default: DefaultPropertyKey.
	PropertyKey string
	// VertexLabel and EdgeLabel label the created elements.
	VertexLabel string
	EdgeLabel   string
	// Malformed selects the malformed line policy. Default: FailOnMalformed.
	Malformed MalformedPolicy
	// Controller throttles read throughput. Nil means unlimited.
	Controller *resource.Controller
	// Logger receives warnings about skipped lines. Nil discards.
	Logger *slog.Logger
}

func (c Config) withDefaults() Config {
	if c.Delimiter == "" {
		c.Delimiter = DefaultDelimiter
	}
	if c.PropertyKey == "" {
		c.PropertyKey = DefaultPropertyKey
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}
	return c
}

// Line is one parsed edge record.
type Line struct {
	SourceID    int64
	SourceValue string
	TargetID    int64
	TargetValue string
}

// ParseLine parses one record. Surrounding whitespace of fields is trimmed.
func ParseLine(line, delim string) (Line, error) {
	if delim == "" {
		delim = DefaultDelimiter
	}
	fields := strings.Split(line, delim)
	if len(fields) != 4 {
		return Line{}, &MalformedRecordError{Raw: line, Reason: "expected 4 fields, got " + strconv.Itoa(len(fields))}
	}

	src, err := strconv.ParseInt(strings.TrimSpace(fields[0]), 10, 64)
	if err != nil {
		return Line{}, &MalformedRecordError{Raw: line, Reason: "invalid source id"}
	}
	tgt, err := strconv.ParseInt(strings.TrimSpace(fields[2]), 10, 64)
	if err != nil {
		return Line{}, &MalformedRecordError{Raw: line, Reason: "invalid target id"}
	}
	return Line{
		SourceID:    src,
		SourceValue: strings.TrimSpace(fields[1]),
		TargetID:    tgt,
		TargetValue: strings.TrimSpace(fields[3]),
	}, nil
}

// ReadReport summarizes a read.
type ReadReport struct {
	// Lines is the number of lines seen, including ignored ones.
	Lines int
	// Records is the number of parsed records.
	Records int
	// Skipped holds the numbers of malformed lines skipped under SkipMalformed.
	Skipped *roaring.Bitmap
}

// Read parses all records from r.
func Read(ctx context.Context, r io.Reader, cfg Config) ([]Line, *ReadReport, error) {
	cfg = cfg.withDefaults()
	report := &ReadReport{Skipped: roaring.New()}

	sc := bufio.NewScanner(resource.NewRateLimitedReader(ctx, r, cfg.Controller))
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var out []Line
	for sc.Scan() {
		report.Lines++
		if report.Lines%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, nil, err
			}
		}

		text := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(text) == "" || strings.HasPrefix(text, "#") {
			continue
		}

		l, err := ParseLine(text, cfg.Delimiter)
		if err != nil {
			var me *MalformedRecordError
			if errors.As(err, &me) {
				me.Line = report.Lines
			}
			if cfg.Malformed == FailOnMalformed {
				return nil, nil, err
			}
			report.Skipped.Add(uint32(report.Lines))
			continue
		}
		out = append(out, l)
	}
	if err := sc.Err(); err != nil {
		return nil, nil, err
	}

	report.Records = len(out)
	if n := report.Skipped.GetCardinality(); n > 0 {
		cfg.Logger.DebugContext(ctx, "skipped malformed lines", "count", n, "first", report.Skipped.Minimum())
	}
	return out, report, nil
}
