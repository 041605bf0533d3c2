package textdb

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/liliang-cn/lshmine"
)

func TestLoadVectorDBRoundTrip(t *testing.T) {
	input := "2 0:1.5 3:-2\n1 1:4\n\n"
	db, err := LoadVectorDB(strings.NewReader(input))
	if err != nil {
		t.Fatalf("LoadVectorDB: %v", err)
	}
	if db.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", db.Size())
	}
	if db.Dim != 4 {
		t.Fatalf("Dim = %d, want 4 (max dim 3 seen)", db.Dim)
	}

	var buf bytes.Buffer
	if err := SaveVectorDB(&buf, db); err != nil {
		t.Fatalf("SaveVectorDB: %v", err)
	}

	reloaded, err := LoadVectorDB(&buf)
	if err != nil {
		t.Fatalf("reload after save: %v", err)
	}
	if reloaded.Size() != db.Size() {
		t.Fatalf("round trip changed record count: %d vs %d", reloaded.Size(), db.Size())
	}
	for i := 0; i < db.Size(); i++ {
		orig, got := db.At(i), reloaded.At(i)
		if orig.Size() != got.Size() {
			t.Fatalf("record %d size changed across round trip", i)
		}
		for j := range orig.Data() {
			if orig.At(j) != got.At(j) {
				t.Fatalf("record %d coordinate %d changed: %+v vs %+v", i, j, orig.At(j), got.At(j))
			}
		}
	}
}

func TestLoadVectorDBSkipsBlankLines(t *testing.T) {
	db, err := LoadVectorDB(strings.NewReader("\n\n1 0:1\n\n"))
	if err != nil {
		t.Fatalf("LoadVectorDB: %v", err)
	}
	if db.Size() != 1 {
		t.Fatalf("Size() = %d, want 1", db.Size())
	}
}

func TestLoadVectorDBMalformedCount(t *testing.T) {
	_, err := LoadVectorDB(strings.NewReader("2 0:1\n"))
	if err == nil {
		t.Fatal("expected error: declared count 2 does not match 1 pair")
	}
	if !errors.Is(err, lshmine.ErrMalformedRecord) {
		t.Fatalf("error = %v, want wrapping ErrMalformedRecord", err)
	}
}

func TestLoadVectorDBMalformedPair(t *testing.T) {
	_, err := LoadVectorDB(strings.NewReader("1 nope\n"))
	if !errors.Is(err, lshmine.ErrMalformedRecord) {
		t.Fatalf("error = %v, want wrapping ErrMalformedRecord", err)
	}
}

func TestLoadVectorDBFileMissing(t *testing.T) {
	_, err := LoadVectorDBFile("/nonexistent/path/to/db.txt")
	if !errors.Is(err, lshmine.ErrUnreadableFile) {
		t.Fatalf("error = %v, want wrapping ErrUnreadableFile", err)
	}
}
