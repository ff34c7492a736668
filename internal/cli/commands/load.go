package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/apache/arrow-go/v18/arrow/memory"
	pqfile "github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"github.com/leapstack-labs/tabular/pkg/frame"
	"github.com/leapstack-labs/tabular/pkg/table"
)

// loadManager opens a data file and wraps it in the table adapter. The
// format is chosen by extension; CSV and Parquet load eagerly.
func loadManager(ctx context.Context, path string, opts ...table.Option) (*table.Manager, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return loadCSV(path, opts...)
	case ".parquet":
		return loadParquet(ctx, path, opts...)
	default:
		return nil, fmt.Errorf("unsupported file type %q (expected .csv or .parquet)", filepath.Ext(path))
	}
}

func loadCSV(path string, opts ...table.Option) (*table.Manager, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	rec, err := frame.ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	defer rec.Release()

	return table.NewManager(frame.FromRecord(rec), opts...), nil
}

func loadParquet(ctx context.Context, path string, opts ...table.Option) (*table.Manager, error) {
	rdr, err := pqfile.OpenParquetFile(path, false)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer rdr.Close()

	fr, err := pqarrow.NewFileReader(rdr, pqarrow.ArrowReadProperties{}, memory.DefaultAllocator)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	tbl, err := fr.ReadTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	defer tbl.Release()

	f, err := frame.FromTable(tbl)
	if err != nil {
		return nil, err
	}
	return table.NewManager(f, opts...), nil
}
