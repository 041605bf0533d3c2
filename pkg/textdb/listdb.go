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

// LoadListDB reads a list database from r in the sparse
// "<N> <item1>:<freq1> ... <itemN>:<freqN>" format, analogous to the
// vector format. The database's Dim is set to one more than the
// largest item index seen.
//
// L1 mining needs its records dense; call container.List.Densify(db.Dim)
// on each list before passing it to L1Family.Hash, or use LoadDenseListDB.
func LoadListDB(r io.Reader) (*container.ListDB, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)

	db := container.NewListDB(0)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		list, maxItem, err := parseListLine(line)
		if err != nil {
			return nil, fmt.Errorf("textdb: line %d: %w: %v", lineNo, lshmine.ErrMalformedRecord, err)
		}
		if maxItem+1 > db.Dim {
			db.Dim = maxItem + 1
		}
		db.Push(list)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("textdb: %w", err)
	}

	return db, nil
}

// LoadDenseListDB loads a list database and densifies every record to
// db.Dim, ready for L1 mining.
func LoadDenseListDB(r io.Reader) (*container.ListDB, error) {
	db, err := LoadListDB(r)
	if err != nil {
		return nil, err
	}
	dense := container.NewListDB(db.Dim)
	for _, l := range db.Lists() {
		dense.Push(l.Densify(uint32(db.Dim)))
	}
	return dense, nil
}

// LoadListDBFile opens path and loads a list database from it.
func LoadListDBFile(path string) (*container.ListDB, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("textdb: open %s: %w: %v", path, lshmine.ErrUnreadableFile, err)
	}
	defer f.Close()
	return LoadListDB(f)
}

func parseListLine(line string) (*container.List, int, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return container.NewList(0), -1, nil
	}

	n, err := strconv.ParseUint(fields[0], 10, 32)
	if err != nil {
		return nil, -1, fmt.Errorf("invalid count %q: %w", fields[0], err)
	}
	if len(fields)-1 != int(n) {
		return nil, -1, fmt.Errorf("declared count %d does not match %d pairs", n, len(fields)-1)
	}

	list := container.NewList(int(n))
	maxItem := -1
	for _, pair := range fields[1:] {
		parts := strings.SplitN(pair, ":", 2)
		if len(parts) != 2 {
			return nil, -1, fmt.Errorf("malformed pair %q", pair)
		}
		item, err := strconv.ParseUint(parts[0], 10, 32)
		if err != nil {
			return nil, -1, fmt.Errorf("invalid item %q: %w", parts[0], err)
		}
		freq, err := strconv.ParseUint(parts[1], 10, 32)
		if err != nil {
			return nil, -1, fmt.Errorf("invalid freq %q: %w", parts[1], err)
		}
		list.Push(container.Entry{Item: uint32(item), Freq: uint32(freq)})
		if int(item) > maxItem {
			maxItem = int(item)
		}
	}

	return list, maxItem, nil
}

// SaveListDB writes db to w in the format LoadListDB reads.
func SaveListDB(w io.Writer, db *container.ListDB) error {
	bw := bufio.NewWriter(w)
	for i := 0; i < db.Size(); i++ {
		l := db.At(i)
		if _, err := fmt.Fprintf(bw, "%d", l.Size()); err != nil {
			return fmt.Errorf("textdb: %w", err)
		}
		for _, e := range l.Data() {
			if _, err := fmt.Fprintf(bw, " %d:%d", e.Item, e.Freq); err != nil {
				return fmt.Errorf("textdb: %w", err)
			}
		}
		if _, err := bw.WriteString("\n"); err != nil {
			return fmt.Errorf("textdb: %w", err)
		}
	}
	return bw.Flush()
}

// SaveListDBFile writes db to path, creating or truncating it.
func SaveListDBFile(path string, db *container.ListDB) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("textdb: create %s: %w", path, err)
	}
	defer f.Close()
	return SaveListDB(f, db)
}
