// Package textdb implements the textual load/save format for vector
// and list databases, an external collaborator the core hashing
// engine treats as opaque.
package textdb

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/liliang-cn/lshmine"
	"github.com/liliang-cn/lshmine/pkg/container"
)

// LoadVectorDB reads a vector database from r. Each non-empty line is
// "<N> <d1>:<v1> <d2>:<v2> ... <dN>:<vN>"; blank lines are skipped.
// The database's Dim is set to one more than the largest dimension
// index seen across all vectors.
func LoadVectorDB(r io.Reader) (*container.VectorDB, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)

	db := container.NewVectorDB(0)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		vec, maxDim, err := parseVectorLine(line)
		if err != nil {
			return nil, fmt.Errorf("textdb: line %d: %w: %v", lineNo, lshmine.ErrMalformedRecord, err)
		}
		if maxDim+1 > db.Dim {
			db.Dim = maxDim + 1
		}
		db.Push(vec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("textdb: %w", err)
	}

	return db, nil
}

// LoadVectorDBFile opens path and loads a vector database from it.
func LoadVectorDBFile(path string) (*container.VectorDB, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("textdb: open %s: %w: %v", path, lshmine.ErrUnreadableFile, err)
	}
	defer f.Close()
	return LoadVectorDB(f)
}

func parseVectorLine(line string) (*container.Vector, int, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return container.NewVector(0), -1, nil
	}

	n, err := strconv.ParseUint(fields[0], 10, 32)
	if err != nil {
		return nil, -1, fmt.Errorf("invalid count %q: %w", fields[0], err)
	}
	if len(fields)-1 != int(n) {
		return nil, -1, fmt.Errorf("declared count %d does not match %d pairs", n, len(fields)-1)
	}

	vec := container.NewVector(int(n))
	maxDim := -1
	for _, pair := range fields[1:] {
		parts := strings.SplitN(pair, ":", 2)
		if len(parts) != 2 {
			return nil, -1, fmt.Errorf("malformed pair %q", pair)
		}
		dim, err := strconv.ParseUint(parts[0], 10, 32)
		if err != nil {
			return nil, -1, fmt.Errorf("invalid dimension %q: %w", parts[0], err)
		}
		value, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil, -1, fmt.Errorf("invalid value %q: %w", parts[1], err)
		}
		vec.Push(container.Dim{Dim: uint32(dim), Value: value})
		if int(dim) > maxDim {
			maxDim = int(dim)
		}
	}

	return vec, maxDim, nil
}

// SaveVectorDB writes db to w in the format LoadVectorDB reads.
func SaveVectorDB(w io.Writer, db *container.VectorDB) error {
	bw := bufio.NewWriter(w)
	for i := 0; i < db.Size(); i++ {
		v := db.At(i)
		if _, err := fmt.Fprintf(bw, "%d", v.Size()); err != nil {
			return fmt.Errorf("textdb: %w", err)
		}
		for _, c := range v.Data() {
			if _, err := fmt.Fprintf(bw, " %d:%s", c.Dim, strconv.FormatFloat(c.Value, 'g', -1, 64)); err != nil {
				return fmt.Errorf("textdb: %w", err)
			}
		}
		if _, err := bw.WriteString("\n"); err != nil {
			return fmt.Errorf("textdb: %w", err)
		}
	}
	return bw.Flush()
}

// SaveVectorDBFile writes db to path, creating or truncating it.
func SaveVectorDBFile(path string, db *container.VectorDB) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("textdb: create %s: %w", path, err)
	}
	defer f.Close()
	return SaveVectorDB(f, db)
}
