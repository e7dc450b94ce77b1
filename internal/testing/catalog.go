package testing

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
)

// Base is a fixed reference time for fixture timestamps.
var Base = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

// CreateTestFs creates an in-memory filesystem for catalog fixtures.
func CreateTestFs(t *testing.T) afero.Fs {
	t.Helper()
	return afero.NewMemMapFs()
}

// ColorContents renders a Contents.json document holding one color definition.
func ColorContents(red, green, blue, alpha string) string {
	return fmt.Sprintf(`{
  "colors" : [
    {
      "color" : {
        "color-space" : "srgb",
        "components" : {
          "alpha" : %q,
          "blue" : %q,
          "green" : %q,
          "red" : %q
        }
      },
      "idiom" : "universal"
    }
  ],
  "info" : {
    "author" : "xcode",
    "version" : 1
  }
}
`, alpha, blue, green, red)
}

// EmptyColorContents is a Contents.json document with zero color payloads.
const EmptyColorContents = `{"colors": [], "info": {"author": "xcode", "version": 1}}`

// AddColorSet creates <catalog>/<name>.colorset/Contents.json and stamps the
// entry directory with modTime. Returns the entry directory.
func AddColorSet(t *testing.T, fs afero.Fs, catalog, name, contents string, modTime time.Time) string {
	t.Helper()

	dir := filepath.Join(catalog, name+".colorset")
	if err := fs.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create color set %s: %v", dir, err)
	}
	if err := afero.WriteFile(fs, filepath.Join(dir, "Contents.json"), []byte(contents), 0644); err != nil {
		t.Fatalf("Failed to write Contents.json for %s: %v", name, err)
	}
	Touch(t, fs, dir, modTime)
	return dir
}

// AddImageSet creates <catalog>/<name>.imageset stamped with modTime.
func AddImageSet(t *testing.T, fs afero.Fs, catalog, name string, modTime time.Time) string {
	t.Helper()

	dir := filepath.Join(catalog, name+".imageset")
	if err := fs.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create image set %s: %v", dir, err)
	}
	if err := afero.WriteFile(fs, filepath.Join(dir, "Contents.json"), []byte(`{"images": []}`), 0644); err != nil {
		t.Fatalf("Failed to write Contents.json for %s: %v", name, err)
	}
	Touch(t, fs, dir, modTime)
	return dir
}

// WriteFileAt writes a file and stamps it with modTime.
func WriteFileAt(t *testing.T, fs afero.Fs, path, content string, modTime time.Time) {
	t.Helper()

	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create %s: %v", filepath.Dir(path), err)
	}
	if err := afero.WriteFile(fs, path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	Touch(t, fs, path, modTime)
}

// Touch sets both access and modification time of path.
func Touch(t *testing.T, fs afero.Fs, path string, modTime time.Time) {
	t.Helper()

	if err := fs.Chtimes(path, modTime, modTime); err != nil {
		t.Fatalf("Failed to set times on %s: %v", path, err)
	}
}

// ReadFile returns a file's contents or fails the test.
func ReadFile(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(data)
}
