package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// ComplaintsCSV is a small complaint export with the awkward cases a run
// must survive: missing narratives, an N/A token, an unparsable date, a
// header with a question mark and long column names that get shortened.
const ComplaintsCSV = `Date received,Product,Sub-product,Company,Consumer complaint narrative,Company response to consumer,Consumer disputed?,Complaint ID
2020-01-15,Mortgage,,Bank A,,Closed with explanation,No,1001
2020-02-10,Mortgage,FHA mortgage,Bank B,Escrow was wrong,Closed with explanation,N/A,1002
13/45/2020,Credit card,,Bank A,,In progress,Yes,1003
`

// WriteFile writes content to name under dir and returns the path
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("create fixture directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write fixture %s: %v", path, err)
	}
	return path
}
