package runner

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/teranos/assetgen/am"
	"github.com/teranos/assetgen/errors"
)

// writeAtomic replaces path with data through a temp file in the same
// directory. Readers see either the old or the new contents, and the temp
// file is removed on every failure path. An existing file keeps its mode.
func writeAtomic(fs afero.Fs, path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := fs.MkdirAll(dir, am.DefaultDirPermissions); err != nil {
		return errors.Wrapf(err, "failed to create %s", dir)
	}

	tmp, err := afero.TempFile(fs, dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.Wrapf(err, "failed to create temp file in %s", dir)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		fs.Remove(tmpName)
		return errors.Wrapf(err, "failed to write %s", tmpName)
	}
	if err := tmp.Close(); err != nil {
		fs.Remove(tmpName)
		return errors.Wrapf(err, "failed to close %s", tmpName)
	}

	// Temp files are created 0600; keep the mode of the file being replaced
	mode := os.FileMode(am.DefaultFilePermissions)
	if info, err := fs.Stat(path); err == nil && info.Mode().IsRegular() {
		mode = info.Mode().Perm()
	}
	if err := fs.Chmod(tmpName, mode); err != nil {
		fs.Remove(tmpName)
		return errors.Wrapf(err, "failed to chmod %s", tmpName)
	}

	if err := fs.Rename(tmpName, path); err != nil {
		fs.Remove(tmpName)
		return errors.Wrapf(err, "failed to replace %s", path)
	}
	return nil
}
