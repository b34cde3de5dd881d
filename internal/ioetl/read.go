package ioetl

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gnames/gnfmt"
	"github.com/gnames/orgsdb/pkg/transform"
)

// ReadRecords reads records from a CSV file with a header row or from
// a JSON array of objects. The format is chosen by the file extension.
func ReadRecords(path string) ([]transform.Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ReadInputError(path, err)
	}
	defer f.Close()

	var res []transform.Source
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		res, err = readJSON(f)
	default:
		res, err = readCSV(f)
	}
	if err != nil {
		return nil, ReadInputError(path, err)
	}
	return res, nil
}

func readJSON(r io.Reader) ([]transform.Source, error) {
	bs, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var res []transform.Source
	enc := gnfmt.GNjson{}
	if err = enc.Decode(bs, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// readCSV keeps empty cells as empty strings, coercions treat them
// as absent values.
func readCSV(r io.Reader) ([]transform.Source, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	var res []transform.Source
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rec := make(transform.Source, len(header))
		for i, k := range header {
			rec[k] = row[i]
		}
		res = append(res, rec)
	}
	return res, nil
}
