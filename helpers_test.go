package matbench_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/calvinalkan/matbench"
)

const (
	threadsHeader = "Threads,Size,Time\n"
	configsHeader = "dimension,configuration,time\n"
)

func writeFile(t *testing.T, root, rel, data string) string {
	t.Helper()

	fullPath := filepath.Join(root, rel)

	err := os.MkdirAll(filepath.Dir(fullPath), 0o750)
	if err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(fullPath), err)
	}

	err = os.WriteFile(fullPath, []byte(data), 0o600)
	if err != nil {
		t.Fatalf("write %s: %v", fullPath, err)
	}

	return fullPath
}

func rec(category string, size int, elapsed float64) matbench.ResultRecord {
	return matbench.ResultRecord{Category: category, Size: size, Time: elapsed}
}
