package manifest

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/temirov/claudius/internal/model"
)

// writeTestFile creates a file with the specified content, failing the test on error.
func writeTestFile(testingHandle *testing.T, filePath string, content string) {
	testingHandle.Helper()
	if writeError := os.WriteFile(filePath, []byte(content), 0o644); writeError != nil {
		testingHandle.Fatalf("failed to write %s: %v", filePath, writeError)
	}
}

func TestReadSkipsCommentsAndRewritesAbsolutePaths(t *testing.T) {
	rootDirectory := t.TempDir()
	outsidePath := filepath.Join(filepath.Dir(rootDirectory), "elsewhere", "file.txt")
	content := "# generated\n" +
		"\n" +
		"folder1\n" +
		"   file1.txt   \n" +
		filepath.Join(rootDirectory, "nested", "deep.txt") + "\n" +
		outsidePath + "\n"
	writeTestFile(t, filepath.Join(rootDirectory, DefaultFileName), content)

	included, readError := Read(rootDirectory, DefaultFileName)
	if readError != nil {
		t.Fatalf("Read failed: %v", readError)
	}

	expected := model.NewPathSet("folder1", "file1.txt", "nested/deep.txt", outsidePath).Sorted()
	if got := included.Sorted(); !reflect.DeepEqual(got, expected) {
		t.Fatalf("unexpected entries: got %v want %v", got, expected)
	}
}

func TestReadMissingManifest(t *testing.T) {
	included, readError := Read(t.TempDir(), DefaultFileName)
	if readError != nil {
		t.Fatalf("missing manifest must not fail: %v", readError)
	}
	if included == nil || len(included) != 0 {
		t.Fatalf("expected an empty set, got %v", included)
	}
}

func TestReadDirectoryInPlaceOfManifest(t *testing.T) {
	rootDirectory := t.TempDir()
	if makeDirError := os.Mkdir(filepath.Join(rootDirectory, DefaultFileName), 0o755); makeDirError != nil {
		t.Fatalf("failed to create directory: %v", makeDirError)
	}
	if _, readError := Read(rootDirectory, DefaultFileName); readError == nil {
		t.Fatalf("expected an error when the manifest is a directory")
	}
}

func TestWriteThenReadRoundTrip(t *testing.T) {
	rootDirectory := t.TempDir()
	included := model.NewPathSet("c", "a/b.txt")

	if writeError := Write(rootDirectory, DefaultFileName, included, WriteOptions{}); writeError != nil {
		t.Fatalf("Write failed: %v", writeError)
	}

	written, readFileError := os.ReadFile(filepath.Join(rootDirectory, DefaultFileName))
	if readFileError != nil {
		t.Fatalf("failed to read manifest: %v", readFileError)
	}
	if string(written) != "a/b.txt\nc\n" {
		t.Fatalf("unexpected manifest content %q", string(written))
	}

	readBack, readError := Read(rootDirectory, DefaultFileName)
	if readError != nil {
		t.Fatalf("Read failed: %v", readError)
	}
	if !reflect.DeepEqual(readBack.Sorted(), included.Sorted()) {
		t.Fatalf("round trip mismatch: got %v want %v", readBack.Sorted(), included.Sorted())
	}

	entries, listError := os.ReadDir(rootDirectory)
	if listError != nil {
		t.Fatalf("failed to list root: %v", listError)
	}
	if len(entries) != 1 {
		t.Fatalf("temporary files left behind: %v", entries)
	}
}

func TestWriteAbsolutePathsRoundTrip(t *testing.T) {
	rootDirectory := t.TempDir()
	included := model.NewPathSet("dir/file.txt")

	if writeError := Write(rootDirectory, DefaultFileName, included, WriteOptions{AbsolutePaths: true}); writeError != nil {
		t.Fatalf("Write failed: %v", writeError)
	}
	written, readFileError := os.ReadFile(filepath.Join(rootDirectory, DefaultFileName))
	if readFileError != nil {
		t.Fatalf("failed to read manifest: %v", readFileError)
	}
	expectedLine := filepath.ToSlash(filepath.Join(rootDirectory, "dir", "file.txt")) + "\n"
	if string(written) != expectedLine {
		t.Fatalf("unexpected manifest content %q, want %q", string(written), expectedLine)
	}

	readBack, readError := Read(rootDirectory, DefaultFileName)
	if readError != nil {
		t.Fatalf("Read failed: %v", readError)
	}
	if !reflect.DeepEqual(readBack.Sorted(), []string{"dir/file.txt"}) {
		t.Fatalf("absolute entries should read back relative, got %v", readBack.Sorted())
	}
}

func TestRootEntrySurvivesRoundTrip(t *testing.T) {
	testCases := []struct {
		name    string
		options WriteOptions
	}{
		{name: "relative", options: WriteOptions{}},
		{name: "absolute", options: WriteOptions{AbsolutePaths: true}},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			rootDirectory := t.TempDir()
			writeTestFile(t, filepath.Join(rootDirectory, DefaultFileName), rootDirectory+"\nkeep.txt\n")

			firstRead, readError := Read(rootDirectory, DefaultFileName)
			if readError != nil {
				t.Fatalf("Read failed: %v", readError)
			}
			if !reflect.DeepEqual(firstRead.Sorted(), []string{".", "keep.txt"}) {
				t.Fatalf("unexpected entries %v", firstRead.Sorted())
			}
			if writeError := Write(rootDirectory, DefaultFileName, firstRead, testCase.options); writeError != nil {
				t.Fatalf("Write failed: %v", writeError)
			}
			secondRead, readError := Read(rootDirectory, DefaultFileName)
			if readError != nil {
				t.Fatalf("Read failed: %v", readError)
			}
			if !reflect.DeepEqual(secondRead.Sorted(), firstRead.Sorted()) {
				t.Fatalf("entries lost after a write: got %v want %v", secondRead.Sorted(), firstRead.Sorted())
			}
		})
	}
}

func TestLinesOmitsRootPath(t *testing.T) {
	lines := Lines(t.TempDir(), model.NewPathSet(model.RootPath, "a.txt"), WriteOptions{})
	if !reflect.DeepEqual(lines, []string{"a.txt"}) {
		t.Fatalf("unexpected lines %v", lines)
	}
}

func TestReadLongLine(t *testing.T) {
	rootDirectory := t.TempDir()
	longEntry := strings.Repeat("a", 200*1024)
	writeTestFile(t, filepath.Join(rootDirectory, DefaultFileName), longEntry+"\nshort.txt\n")

	included, readError := Read(rootDirectory, DefaultFileName)
	if readError != nil {
		t.Fatalf("Read failed: %v", readError)
	}
	if len(included) != 2 || !included.Has(longEntry) || !included.Has("short.txt") {
		t.Fatalf("expected both entries, got %d", len(included))
	}
}

func TestWriteFailureKeepsPreviousManifest(t *testing.T) {
	missingRoot := filepath.Join(t.TempDir(), "missing")
	if writeError := Write(missingRoot, DefaultFileName, model.NewPathSet("x"), WriteOptions{}); writeError == nil {
		t.Fatalf("expected an error when the root does not exist")
	}
}

func TestNormalizeEntry(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "project")
	testCases := []struct {
		name     string
		entry    string
		expected string
	}{
		{name: "relative", entry: "src/main.go", expected: "src/main.go"},
		{name: "inside_root", entry: filepath.Join(root, "src", "main.go"), expected: "src/main.go"},
		{name: "root_itself", entry: root, expected: "."},
		{name: "sibling_prefix", entry: root + "-other" + string(filepath.Separator) + "x", expected: root + "-other" + string(filepath.Separator) + "x"},
		{name: "outside_root", entry: filepath.Join(string(filepath.Separator), "etc", "hosts"), expected: filepath.Join(string(filepath.Separator), "etc", "hosts")},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if got := NormalizeEntry(testCase.entry, root); got != testCase.expected {
				t.Fatalf("NormalizeEntry(%q) = %q, want %q", testCase.entry, got, testCase.expected)
			}
		})
	}
}

func TestContent(t *testing.T) {
	testCases := []struct {
		name     string
		lines    []string
		expected string
	}{
		{name: "empty", lines: nil, expected: ""},
		{name: "entries", lines: []string{"a/b.txt", "c"}, expected: "a/b.txt\nc\n"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if got := Content(testCase.lines); got != testCase.expected {
				t.Fatalf("expected %q, got %q", testCase.expected, got)
			}
		})
	}
}
