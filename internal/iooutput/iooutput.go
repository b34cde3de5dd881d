// Package iooutput writes harvest artifacts into the output directory.
// All files of one run share a timestamp in their names.
package iooutput

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gnames/gnfmt"
	"github.com/gnames/orgsdb/internal/iofs"
	"github.com/gnames/orgsdb/pkg/harvest"
)

// TimeLayout formats run timestamps in file names.
const TimeLayout = "20060102_1504"

var missingLabels = map[string]string{
	harvest.SourceAssoc: "Fair Trading Incorporations",
	harvest.SourceACNC:  "ACNC charity",
	harvest.SourceABN:   "ABN register",
}

type iooutput struct {
	dir string
	ts  string
}

// New creates a writer for the directory. The directory is created if
// it does not exist.
func New(dir string, now time.Time) (harvest.Writer, error) {
	if err := iofs.TouchDir(dir); err != nil {
		return nil, err
	}
	res := &iooutput{dir: dir, ts: now.Format(TimeLayout)}
	return res, nil
}

func (o *iooutput) path(name, ext string) string {
	return filepath.Join(o.dir, fmt.Sprintf("%s_%s.%s", name, o.ts, ext))
}

// Records writes records as CSV. The header comes from the keys of the
// first record.
func (o *iooutput) Records(name string, recs []harvest.Record) (string, error) {
	if len(recs) == 0 {
		return "", nil
	}

	path := o.path(name, "csv")
	f, err := os.Create(path)
	if err != nil {
		return "", WriteError(path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := recs[0].Keys()
	if err = w.Write(header); err != nil {
		return "", WriteError(path, err)
	}
	for _, r := range recs {
		if err = w.Write(r.Values(header)); err != nil {
			return "", WriteError(path, err)
		}
	}
	w.Flush()
	if err = w.Error(); err != nil {
		return "", WriteError(path, err)
	}

	slog.Info("Results written", "path", path, "records", len(recs))
	return path, nil
}

// Missing writes the missing results summary as indented JSON.
func (o *iooutput) Missing(entries []harvest.MissingEntry) (string, error) {
	if len(entries) == 0 {
		return "", nil
	}

	path := o.path(harvest.FileMissing, "json")
	enc := gnfmt.GNjson{Pretty: true}
	bs, err := enc.Encode(entries)
	if err != nil {
		return "", WriteError(path, err)
	}
	if err = os.WriteFile(path, bs, 0644); err != nil {
		return "", WriteError(path, err)
	}

	slog.Info("Missing data summary written", "path", path,
		"entries", len(entries))
	return path, nil
}

// LogMissing appends a warning to the errors log of the run.
func (o *iooutput) LogMissing(e harvest.MissingEntry) error {
	path := o.path(harvest.FileErrors, "log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return WriteError(path, err)
	}
	defer f.Close()

	label, ok := missingLabels[e.Source]
	if !ok {
		label = e.Source
	}
	lg := slog.New(slog.NewTextHandler(f, nil))
	lg.Warn(fmt.Sprintf("No %s results found", label),
		"suburb", e.Suburb,
		"state", e.State,
		"postcode", e.Postcode,
	)
	return nil
}
