package projection

import (
	"path"
	"reflect"
	"testing"

	"github.com/temirov/claudius/internal/model"
)

func sampleEdges() model.EdgeMap {
	return model.EdgeMap{
		"":               {"folder1", "folder2", "file1.txt"},
		"folder1":        {"folder1/file1.txt", "folder1/file2.txt"},
		"folder2":        {"folder2/nested", "folder2/file1.txt"},
		"folder2/nested": {"folder2/nested/deep.txt"},
	}
}

func sampleFolders() model.PathSet {
	return model.NewPathSet("folder1", "folder2", "folder2/nested")
}

func TestVisibleItemsFollowsExpansion(t *testing.T) {
	testCases := []struct {
		name     string
		expanded model.PathSet
		expected []string
	}{
		{
			name:     "collapsed",
			expanded: model.NewPathSet(),
			expected: []string{"", "folder1", "folder2", "file1.txt"},
		},
		{
			name:     "first_folder_expanded",
			expanded: model.NewPathSet("folder1"),
			expected: []string{"", "folder1", "folder1/file1.txt", "folder1/file2.txt", "folder2", "file1.txt"},
		},
		{
			name:     "nested_expanded_parent_collapsed",
			expanded: model.NewPathSet("folder2/nested"),
			expected: []string{"", "folder1", "folder2", "file1.txt"},
		},
		{
			name:     "all_expanded",
			expanded: sampleFolders(),
			expected: []string{
				"", "folder1", "folder1/file1.txt", "folder1/file2.txt",
				"folder2", "folder2/nested", "folder2/nested/deep.txt", "folder2/file1.txt", "file1.txt",
			},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			result := VisibleItems(sampleEdges(), sampleFolders(), testCase.expanded)
			if !reflect.DeepEqual(result, testCase.expected) {
				t.Fatalf("unexpected visible items: got %v want %v", result, testCase.expected)
			}
		})
	}
}

func TestVisibleItemsRequireExpandedAncestors(t *testing.T) {
	edges := sampleEdges()
	folders := sampleFolders()
	expansions := []model.PathSet{
		model.NewPathSet(),
		model.NewPathSet("folder2"),
		model.NewPathSet("folder2/nested"),
		model.NewPathSet("folder1", "folder2/nested"),
		folders,
	}
	for _, expanded := range expansions {
		for _, visiblePath := range VisibleItems(edges, folders, expanded) {
			for ancestor := path.Dir(visiblePath); visiblePath != "" && ancestor != "." && ancestor != "/"; ancestor = path.Dir(ancestor) {
				if !expanded.Has(ancestor) {
					t.Fatalf("%q visible while ancestor %q is collapsed (expanded=%v)", visiblePath, ancestor, expanded.Sorted())
				}
			}
		}
	}
}

func TestVisibleStopsEarly(t *testing.T) {
	var collected []string
	for visiblePath := range Visible(sampleEdges(), sampleFolders(), sampleFolders()) {
		collected = append(collected, visiblePath)
		if len(collected) == 3 {
			break
		}
	}
	expected := []string{"", "folder1", "folder1/file1.txt"}
	if !reflect.DeepEqual(collected, expected) {
		t.Fatalf("unexpected prefix: got %v want %v", collected, expected)
	}
}

func TestDescendants(t *testing.T) {
	testCases := []struct {
		name     string
		node     string
		expected []string
	}{
		{name: "flat_folder", node: "folder1", expected: []string{"folder1/file1.txt", "folder1/file2.txt"}},
		{name: "nested_folder", node: "folder2", expected: []string{"folder2/file1.txt", "folder2/nested", "folder2/nested/deep.txt"}},
		{name: "file", node: "file1.txt", expected: []string{}},
		{name: "unknown", node: "missing", expected: []string{}},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			result := Descendants(sampleEdges(), testCase.node).Sorted()
			if !reflect.DeepEqual(result, testCase.expected) {
				t.Fatalf("unexpected descendants: got %v want %v", result, testCase.expected)
			}
		})
	}
}

func TestRootItems(t *testing.T) {
	if result := RootItems(sampleEdges()); !reflect.DeepEqual(result, []string{""}) {
		t.Fatalf("unexpected root items: %v", result)
	}
	forest := model.EdgeMap{"a": {"a/x"}, "b": {"b/y"}}
	if result := RootItems(forest); !reflect.DeepEqual(result, []string{"a", "b"}) {
		t.Fatalf("unexpected root items for forest: %v", result)
	}
}

func TestDisplayNameAndIndentation(t *testing.T) {
	testCases := []struct {
		pathValue   string
		displayName string
		level       int
	}{
		{pathValue: "", displayName: ".", level: 0},
		{pathValue: "folder1", displayName: "folder1", level: 1},
		{pathValue: "folder1/file1.txt", displayName: "file1.txt", level: 2},
	}
	for _, testCase := range testCases {
		if name := DisplayName(testCase.pathValue); name != testCase.displayName {
			t.Fatalf("DisplayName(%q) = %q, want %q", testCase.pathValue, name, testCase.displayName)
		}
		if level := IndentationLevel(testCase.pathValue); level != testCase.level {
			t.Fatalf("IndentationLevel(%q) = %d, want %d", testCase.pathValue, level, testCase.level)
		}
	}
}

func TestAbsolutePaths(t *testing.T) {
	included := model.NewPathSet("folder1/file1.txt", "file2.txt", "/already/absolute")
	expected := []string{"/already/absolute", "/tmp/test/file2.txt", "/tmp/test/folder1/file1.txt"}
	if result := AbsolutePaths(included, "/tmp/test"); !reflect.DeepEqual(result, expected) {
		t.Fatalf("unexpected absolute paths: got %v want %v", result, expected)
	}
}
