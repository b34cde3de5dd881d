package lifecycle

// CleanReport summarises a cleaned ABN register file.
type CleanReport struct {
	// Rows is the number of data rows written.
	Rows int
	// Duplicates maps ABNs that occur more than once to their count.
	Duplicates map[string]int
}

// Cleaner normalises ABN register CSV files for loading.
type Cleaner interface {
	// Clean reads the input file and writes the cleaned copy to output.
	Clean(input, output string) (CleanReport, error)
}
