// Package export writes sample batches as tabular rows, one row per sample and
// one column per node.
package export

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/vk/causalfaker/internal/dag"
	"github.com/vk/causalfaker/internal/sampler"
)

// Supported formats.
const (
	FormatCSV   = "csv"
	FormatJSONL = "jsonl"
)

// Formats lists the accepted format names.
var Formats = []string{FormatCSV, FormatJSONL}

// Writer appends batches to an output stream. Column order is fixed when the
// writer is created and stays the same for every batch.
type Writer interface {
	WriteBatch(batch sampler.Batch) error
	Flush() error
}

// New returns a Writer for format over w with one column per node.
func New(format string, w io.Writer, nodes []dag.Node) (Writer, error) {
	columns := Columns(nodes)
	switch format {
	case FormatCSV:
		return &csvWriter{w: csv.NewWriter(w), columns: columns, nodes: nodes}, nil
	case FormatJSONL:
		return &jsonlWriter{w: bufio.NewWriter(w), keys: quoteAll(columns), nodes: nodes}, nil
	default:
		return nil, fmt.Errorf("unsupported output format %q (want one of %v)", format, Formats)
	}
}

// Columns returns the column names x_0..x_{n-1} for nodes.
func Columns(nodes []dag.Node) []string {
	cols := make([]string, len(nodes))
	for i, n := range nodes {
		cols[i] = "x_" + strconv.Itoa(int(n))
	}
	return cols
}

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}

type csvWriter struct {
	w           *csv.Writer
	columns     []string
	nodes       []dag.Node
	wroteHeader bool
}

func (c *csvWriter) WriteBatch(batch sampler.Batch) error {
	if !c.wroteHeader {
		if err := c.w.Write(c.columns); err != nil {
			return fmt.Errorf("writing csv header: %w", err)
		}
		c.wroteHeader = true
	}
	record := make([]string, len(c.nodes))
	for _, s := range batch {
		for i, n := range c.nodes {
			record[i] = formatFloat(s.Value(n))
		}
		if err := c.w.Write(record); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}
	return c.Flush()
}

func (c *csvWriter) Flush() error {
	c.w.Flush()
	return c.w.Error()
}

// jsonlWriter writes one JSON object per sample. Keys are emitted in column
// order, which encoding/json does not do for maps.
type jsonlWriter struct {
	w     *bufio.Writer
	keys  []string
	nodes []dag.Node
}

func (j *jsonlWriter) WriteBatch(batch sampler.Batch) error {
	for _, s := range batch {
		j.w.WriteByte('{')
		for i, n := range j.nodes {
			if i > 0 {
				j.w.WriteByte(',')
			}
			j.w.WriteString(j.keys[i])
			j.w.WriteByte(':')
			j.w.WriteString(formatFloat(s.Value(n)))
		}
		if _, err := j.w.WriteString("}\n"); err != nil {
			return fmt.Errorf("writing jsonl row: %w", err)
		}
	}
	return j.Flush()
}

func (j *jsonlWriter) Flush() error { return j.w.Flush() }

func quoteAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = strconv.Quote(s)
	}
	return out
}
