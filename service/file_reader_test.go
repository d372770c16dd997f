package service

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/ludo-technologies/pyformat/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestFile(t *testing.T, dirPath, fileName, content string) string {
	t.Helper()
	filePath := filepath.Join(dirPath, fileName)
	require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
	require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	return filePath
}

func createTestDirectoryStructure(t *testing.T) string {
	tmpDir := t.TempDir()

	createTestFile(t, tmpDir, "main.py", "def main(): pass")
	createTestFile(t, tmpDir, "utils.py", "def helper(): return 42")
	createTestFile(t, tmpDir, "types.pyi", "def func() -> int: ...")
	createTestFile(t, tmpDir, "README.md", "# Documentation")
	createTestFile(t, tmpDir, "subpackage/module.py", "class Test: pass")
	createTestFile(t, tmpDir, "package/nested/deep/file.py", "def nested(): pass")
	createTestFile(t, tmpDir, "tests/test_main.py", "def test(): pass")

	// Skipped locations
	createTestFile(t, tmpDir, ".hidden.py", "# hidden")
	createTestFile(t, tmpDir, ".git/hooks/pre-commit.py", "# hook")
	createTestFile(t, tmpDir, "__pycache__/cached.py", "# cached")
	createTestFile(t, tmpDir, "venv/lib/site-packages/module.py", "# venv")

	return tmpDir
}

func relativeAll(t *testing.T, root string, files []string) []string {
	t.Helper()
	var out []string
	for _, f := range files {
		rel, err := filepath.Rel(root, f)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(rel))
	}
	sort.Strings(out)
	return out
}

func TestFileReader_CollectPythonFiles(t *testing.T) {
	root := createTestDirectoryStructure(t)
	fr := NewFileReader()

	tests := []struct {
		name      string
		recursive bool
		include   []string
		exclude   []string
		want      []string
	}{
		{
			name:      "recursive with defaults",
			recursive: true,
			include:   []string{"**/*.py"},
			want: []string{
				"main.py",
				"package/nested/deep/file.py",
				"subpackage/module.py",
				"tests/test_main.py",
				"utils.py",
			},
		},
		{
			name:      "non recursive",
			recursive: false,
			want:      []string{"main.py", "types.pyi", "utils.py"},
		},
		{
			name:      "exclude directory",
			recursive: true,
			include:   []string{"**/*.py"},
			exclude:   []string{"tests/**", "package/**"},
			want:      []string{"main.py", "subpackage/module.py", "utils.py"},
		},
		{
			name:      "exclude by name",
			recursive: true,
			include:   []string{"*.py"},
			exclude:   []string{"test_*.py"},
			want: []string{
				"main.py",
				"package/nested/deep/file.py",
				"subpackage/module.py",
				"utils.py",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files, err := fr.CollectPythonFiles([]string{root}, tt.recursive, tt.include, tt.exclude)
			require.NoError(t, err)
			assert.Equal(t, tt.want, relativeAll(t, root, files))
		})
	}
}

func TestFileReader_CollectPythonFiles_Glob(t *testing.T) {
	root := createTestDirectoryStructure(t)
	fr := NewFileReader()

	files, err := fr.CollectPythonFiles([]string{filepath.Join(root, "package", "**", "*.py")}, true, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"package/nested/deep/file.py"}, relativeAll(t, root, files))
}

func TestFileReader_CollectPythonFiles_SingleFile(t *testing.T) {
	root := createTestDirectoryStructure(t)
	fr := NewFileReader()

	main := filepath.Join(root, "main.py")
	files, err := fr.CollectPythonFiles([]string{main, main, filepath.Join(root, "README.md")}, false, []string{"nothing/*.py"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{main}, files)
}

func TestFileReader_CollectPythonFiles_Missing(t *testing.T) {
	_, err := NewFileReader().CollectPythonFiles([]string{filepath.Join(t.TempDir(), "missing.py")}, true, nil, nil)
	require.Error(t, err)
	assert.Equal(t, domain.ErrCodeFileNotFound, domain.ErrorCode(err))
}

func TestFileReader_ReadFile(t *testing.T) {
	dir := t.TempDir()
	path := createTestFile(t, dir, "a.py", "x = 1\n")
	fr := NewFileReader()

	content, err := fr.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "x = 1\n", string(content))

	_, err = fr.ReadFile(filepath.Join(dir, "b.py"))
	assert.Equal(t, domain.ErrCodeFileNotFound, domain.ErrorCode(err))
}

func TestFileReader_IsValidPythonFile(t *testing.T) {
	fr := NewFileReader()
	assert.True(t, fr.IsValidPythonFile("a.py"))
	assert.True(t, fr.IsValidPythonFile("A.PY"))
	assert.True(t, fr.IsValidPythonFile("stub.pyi"))
	assert.False(t, fr.IsValidPythonFile("a.pyc"))
	assert.False(t, fr.IsValidPythonFile("README"))
}

func TestFileReader_GlobstarPatterns(t *testing.T) {
	fr := NewFileReader()

	tests := []struct {
		name     string
		pattern  string
		path     string
		expected bool
	}{
		{"directory globstar matches files", "scripts/legacy/**", "scripts/legacy/main.py", true},
		{"directory globstar matches nested files", "scripts/legacy/**", "scripts/legacy/sub/file.py", true},
		{"directory globstar stays inside", "scripts/legacy/**", "other/dir/file.py", false},
		{"suffix globstar matches anywhere", "**/test.py", "deep/nested/test.py", true},
		{"suffix globstar matches at root", "**/test.py", "test.py", true},
		{"venv exclusion", "venv/**", "venv/lib/python3.12/site-packages/module.py", true},
		{"pycache in subdirectory", "__pycache__/**", "src/__pycache__/module.py", true},
		{"absolute path", "__pycache__/**", "/home/user/project/src/__pycache__/module.py", true},
		{"simple wildcard", "test_*.py", "test_example.py", true},
		{"simple wildcard no match", "test_*.py", "example_test.py", false},
		{"single level", "scripts/legacy/*.py", "scripts/legacy/main.py", true},
		{"single level skips subdirs", "scripts/legacy/*.py", "scripts/legacy/sub/file.py", false},
		{"globstar matches directory itself", "build/**", "build", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, fr.matchesPattern(tt.pattern, tt.path))
		})
	}
}

func TestFileReader_ShouldSkipDirectory(t *testing.T) {
	fr := NewFileReader()
	for _, dir := range []string{"__pycache__", "venv", "node_modules", "pkg.egg-info", "Build"} {
		assert.True(t, fr.shouldSkipDirectory(dir), dir)
	}
	assert.False(t, fr.shouldSkipDirectory("src"))
}

func TestFileReader_ValidatePaths(t *testing.T) {
	dir := t.TempDir()
	fr := NewFileReader()
	assert.NoError(t, fr.ValidatePaths([]string{dir, filepath.Join(dir, "**", "*.py")}))

	err := fr.ValidatePaths([]string{filepath.Join(dir, "nope")})
	assert.Equal(t, domain.ErrCodeFileNotFound, domain.ErrorCode(err))
}
