package pathtree

import (
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"testing"
)

const testManifestName = ".claudeignore"

// writeTestFile creates a file and its parent directories, failing the test on error.
func writeTestFile(testingHandle *testing.T, filePath string) {
	testingHandle.Helper()
	if makeDirError := os.MkdirAll(filepath.Dir(filePath), 0o755); makeDirError != nil {
		testingHandle.Fatalf("failed to create directory for %s: %v", filePath, makeDirError)
	}
	if writeError := os.WriteFile(filePath, []byte("content"), 0o644); writeError != nil {
		testingHandle.Fatalf("failed to write %s: %v", filePath, writeError)
	}
}

func createSampleTree(testingHandle *testing.T) string {
	testingHandle.Helper()
	rootDirectory := testingHandle.TempDir()
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "file1.txt"))
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "a.txt"))
	writeTestFile(testingHandle, filepath.Join(rootDirectory, testManifestName))
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "folder1", "file2.txt"))
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "folder1", "file1.txt"))
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "folder2", "nested", testManifestName))
	if makeDirError := os.MkdirAll(filepath.Join(rootDirectory, "empty"), 0o755); makeDirError != nil {
		testingHandle.Fatalf("failed to create empty directory: %v", makeDirError)
	}
	return rootDirectory
}

func TestScanBuildsSortedEdges(t *testing.T) {
	rootDirectory := createSampleTree(t)

	result, scanError := Scan(rootDirectory, Options{ManifestFileName: testManifestName})
	if scanError != nil {
		t.Fatalf("Scan failed: %v", scanError)
	}

	expectedEdges := map[string][]string{
		"":               {"empty", "folder1", "folder2", "a.txt", "file1.txt"},
		"empty":          {},
		"folder1":        {"folder1/file1.txt", "folder1/file2.txt"},
		"folder2":        {"folder2/nested"},
		"folder2/nested": {"folder2/nested/" + testManifestName},
	}
	if len(result.Edges) != len(expectedEdges) {
		t.Fatalf("unexpected edge keys: got %v", result.Edges)
	}
	for parent, expectedChildren := range expectedEdges {
		if !reflect.DeepEqual(result.Edges[parent], expectedChildren) {
			t.Fatalf("children of %q: got %v want %v", parent, result.Edges[parent], expectedChildren)
		}
	}

	expectedFolders := []string{"empty", "folder1", "folder2", "folder2/nested"}
	if got := result.Folders.Sorted(); !reflect.DeepEqual(got, expectedFolders) {
		t.Fatalf("unexpected folders: got %v want %v", got, expectedFolders)
	}
	if len(result.Problems) != 0 {
		t.Fatalf("unexpected problems: %v", result.Problems)
	}
}

func TestScanSkipsNames(t *testing.T) {
	rootDirectory := createSampleTree(t)

	result, scanError := Scan(rootDirectory, Options{ManifestFileName: testManifestName, SkipNames: []string{"folder2", "a.txt"}})
	if scanError != nil {
		t.Fatalf("Scan failed: %v", scanError)
	}
	expectedRoot := []string{"empty", "folder1", "file1.txt"}
	if !reflect.DeepEqual(result.Edges[""], expectedRoot) {
		t.Fatalf("unexpected root children: got %v want %v", result.Edges[""], expectedRoot)
	}
	if result.Folders.Has("folder2") {
		t.Fatalf("skipped folder must not be scanned")
	}
}

func TestScanSkipsGlobPatterns(t *testing.T) {
	rootDirectory := createSampleTree(t)
	writeTestFile(t, filepath.Join(rootDirectory, "folder.txt"))

	result, scanError := Scan(rootDirectory, Options{ManifestFileName: testManifestName, SkipNames: []string{"folder*/", "file?.txt"}})
	if scanError != nil {
		t.Fatalf("Scan failed: %v", scanError)
	}
	expectedRoot := []string{"empty", "a.txt", "folder.txt"}
	if !reflect.DeepEqual(result.Edges[""], expectedRoot) {
		t.Fatalf("unexpected root children: got %v want %v", result.Edges[""], expectedRoot)
	}
}

func TestScanRejectsInvalidRoot(t *testing.T) {
	rootDirectory := t.TempDir()
	filePath := filepath.Join(rootDirectory, "plain.txt")
	writeTestFile(t, filePath)

	testCases := []struct {
		name string
		root string
	}{
		{name: "missing", root: filepath.Join(rootDirectory, "missing")},
		{name: "file", root: filePath},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if _, scanError := Scan(testCase.root, Options{}); scanError == nil {
				t.Fatalf("expected an error for %s", testCase.root)
			}
		})
	}
}

func TestScanCollectsBrokenSymlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symbolic links require privileges on windows")
	}
	rootDirectory := t.TempDir()
	if linkError := os.Symlink(filepath.Join(rootDirectory, "nowhere"), filepath.Join(rootDirectory, "dangling")); linkError != nil {
		t.Fatalf("failed to create symlink: %v", linkError)
	}

	result, scanError := Scan(rootDirectory, Options{})
	if scanError != nil {
		t.Fatalf("Scan failed: %v", scanError)
	}
	if !reflect.DeepEqual(result.Edges[""], []string{"dangling"}) {
		t.Fatalf("broken link should stay listed as a leaf, got %v", result.Edges[""])
	}
	if len(result.Problems) != 1 || result.Problems[0].Path != "dangling" {
		t.Fatalf("expected one problem for the dangling link, got %v", result.Problems)
	}
}

func TestScanCollectsUnreadableDirectory(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for this user")
	}
	rootDirectory := t.TempDir()
	lockedDirectory := filepath.Join(rootDirectory, "locked")
	writeTestFile(t, filepath.Join(lockedDirectory, "secret.txt"))
	writeTestFile(t, filepath.Join(rootDirectory, "open.txt"))
	if chmodError := os.Chmod(lockedDirectory, 0o000); chmodError != nil {
		t.Fatalf("failed to lock directory: %v", chmodError)
	}
	t.Cleanup(func() { _ = os.Chmod(lockedDirectory, 0o755) })

	result, scanError := Scan(rootDirectory, Options{})
	if scanError != nil {
		t.Fatalf("Scan failed: %v", scanError)
	}
	if !reflect.DeepEqual(result.Edges[""], []string{"locked", "open.txt"}) {
		t.Fatalf("unexpected root children: %v", result.Edges[""])
	}
	if !result.Folders.Has("locked") || len(result.Edges["locked"]) != 0 {
		t.Fatalf("unreadable directory should be an empty folder")
	}
	if len(result.Problems) != 1 || result.Problems[0].Path != "locked" {
		t.Fatalf("expected one problem for the locked directory, got %v", result.Problems)
	}
}
