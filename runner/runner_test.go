package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/assetgen/am"
	"github.com/teranos/assetgen/errors"
	agtest "github.com/teranos/assetgen/internal/testing"
	"github.com/teranos/assetgen/runner"
)

const root = "/proj"

var (
	colorCatalog = filepath.Join(root, "Lib/colors.xcassets")
	colorOutput  = filepath.Join(root, "Lib/Generated/Colors.swift")
	fixedNow     = time.Date(2024, time.March, 5, 9, 7, 0, 0, time.UTC)
)

// testConfig is the default configuration with a deterministic header
func testConfig(optimize bool) *am.Config {
	cfg := am.DefaultConfig()
	cfg.Generate.OptimizeByDate = optimize
	cfg.Generate.Timezone = "UTC"
	return cfg
}

// writeRecorder collects OnWrite calls
type writeRecorder struct {
	mu    sync.Mutex
	paths []string
}

func (w *writeRecorder) record(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.paths = append(w.paths, path)
}

func (w *writeRecorder) count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.paths)
}

func testOptions(fs afero.Fs, rec *writeRecorder) runner.Options {
	return runner.Options{
		Fs:  fs,
		Now: func() time.Time { return fixedNow },
		LookupEnv: func(name string) (string, bool) {
			if name == "SRCROOT" {
				return root, true
			}
			return "", false
		},
		OnWrite: rec.record,
	}
}

func addPalette(t *testing.T, fs afero.Fs, modTime time.Time) {
	t.Helper()
	agtest.AddColorSet(t, fs, colorCatalog, "Primary", agtest.ColorContents("0xAB", "0x12", "0x34", "1.000"), modTime)
	agtest.AddColorSet(t, fs, colorCatalog, "Accent", agtest.ColorContents("0xFF", "0x00", "0x80", "0.500"), modTime)
	agtest.AddColorSet(t, fs, colorCatalog, "Background", agtest.ColorContents("0x00", "0x00", "0x00", "1.000"), modTime)
}

func TestRun_OneDeclarationPerEntry(t *testing.T) {
	fs := agtest.CreateTestFs(t)
	addPalette(t, fs, agtest.Base)
	rec := &writeRecorder{}

	report := runner.Run(context.Background(), testConfig(false), testOptions(fs, rec))

	require.Len(t, report.Results, 1)
	res := report.Results[0]
	require.Equal(t, runner.StatusSucceeded, res.Status, res.Error)
	assert.Equal(t, 3, res.Entries)
	assert.Equal(t, "date optimization disabled", res.Reason)
	assert.Equal(t, []string{colorOutput}, rec.paths)
	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, root, report.Root)

	expected := `//Generated file, don't modify!
//Generated on 3/5/24, 9:07 AM
import UIKit

public struct Color {
	public static let Accent = UIColor(rgb: 0xFF0080, alpha: 0.500)
	public static let Background = UIColor(rgb: 0x000000, alpha: 1.000)
	public static let Primary = UIColor(rgb: 0xAB1234, alpha: 1.000)
}
`
	assert.Equal(t, expected, agtest.ReadFile(t, fs, colorOutput))
}

func TestRun_EmptyCatalog(t *testing.T) {
	fs := agtest.CreateTestFs(t)
	require.NoError(t, fs.MkdirAll(colorCatalog, am.DefaultDirPermissions))

	report := runner.Run(context.Background(), testConfig(false), testOptions(fs, &writeRecorder{}))

	require.Equal(t, runner.StatusSucceeded, report.Results[0].Status)
	assert.Equal(t, 0, report.Results[0].Entries)
	assert.Contains(t, agtest.ReadFile(t, fs, colorOutput), "public struct Color {\n}\n")
}

func TestRun_IdempotentExceptTimestamp(t *testing.T) {
	fs := agtest.CreateTestFs(t)
	addPalette(t, fs, agtest.Base)
	cfg := testConfig(false)

	opts := testOptions(fs, &writeRecorder{})
	runner.Run(context.Background(), cfg, opts)
	first := agtest.ReadFile(t, fs, colorOutput)

	opts.Now = func() time.Time { return fixedNow.Add(26 * time.Hour) }
	runner.Run(context.Background(), cfg, opts)
	second := agtest.ReadFile(t, fs, colorOutput)

	assert.NotEqual(t, first, second)
	firstLines := strings.Split(first, "\n")
	secondLines := strings.Split(second, "\n")
	require.Equal(t, len(firstLines), len(secondLines))
	for i := range firstLines {
		if strings.HasPrefix(firstLines[i], "//Generated on") {
			assert.Equal(t, "//Generated on 3/6/24, 11:07 AM", secondLines[i])
			continue
		}
		assert.Equal(t, firstLines[i], secondLines[i])
	}
}

func TestRun_UpToDateDoesNotWrite(t *testing.T) {
	fs := agtest.CreateTestFs(t)
	addPalette(t, fs, agtest.Base)
	agtest.WriteFileAt(t, fs, colorOutput, "previous", agtest.Base.Add(time.Hour))
	rec := &writeRecorder{}

	report := runner.Run(context.Background(), testConfig(true), testOptions(fs, rec))

	res := report.Results[0]
	assert.Equal(t, runner.StatusSkipped, res.Status)
	assert.Equal(t, "up to date", res.Reason)
	assert.Empty(t, res.Hint)
	assert.Zero(t, rec.count())
	assert.Equal(t, "previous", agtest.ReadFile(t, fs, colorOutput))
	assert.False(t, report.Failed())
}

func TestRun_NewerFolderTriggersRegeneration(t *testing.T) {
	fs := agtest.CreateTestFs(t)
	addPalette(t, fs, agtest.Base)
	agtest.WriteFileAt(t, fs, colorOutput, "previous", agtest.Base.Add(time.Hour))
	touched := agtest.AddColorSet(t, fs, colorCatalog, "Warning",
		agtest.ColorContents("0xFF", "0xCC", "0x00", "1.000"), agtest.Base.Add(2*time.Hour))
	rec := &writeRecorder{}

	report := runner.Run(context.Background(), testConfig(true), testOptions(fs, rec))

	res := report.Results[0]
	require.Equal(t, runner.StatusSucceeded, res.Status, res.Error)
	assert.Contains(t, res.Reason, touched)
	assert.Equal(t, 4, res.Entries)
	assert.Equal(t, 1, rec.count())
	assert.Contains(t, agtest.ReadFile(t, fs, colorOutput), "public static let Warning = UIColor(rgb: 0xFFCC00, alpha: 1.000)")
}

func TestRun_MissingOutputIsNotCreated(t *testing.T) {
	fs := agtest.CreateTestFs(t)
	addPalette(t, fs, agtest.Base)
	rec := &writeRecorder{}

	report := runner.Run(context.Background(), testConfig(true), testOptions(fs, rec))

	res := report.Results[0]
	assert.Equal(t, runner.StatusSkipped, res.Status)
	assert.Contains(t, res.Reason, "couldn't get")
	assert.Contains(t, res.Hint, "--force")
	assert.Zero(t, rec.count())

	exists, err := afero.Exists(fs, colorOutput)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRun_ForceCreatesMissingOutput(t *testing.T) {
	fs := agtest.CreateTestFs(t)
	addPalette(t, fs, agtest.Base)
	rec := &writeRecorder{}

	opts := testOptions(fs, rec)
	opts.Force = true
	report := runner.Run(context.Background(), testConfig(true), opts)

	res := report.Results[0]
	require.Equal(t, runner.StatusSucceeded, res.Status, res.Error)
	assert.Equal(t, "forced", res.Reason)
	assert.Equal(t, 1, rec.count())
	assert.Contains(t, agtest.ReadFile(t, fs, colorOutput), "public struct Color {")
}

func TestRun_DecodeFailureLeavesOutputUntouched(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{"empty colors array", agtest.EmptyColorContents},
		{"malformed json", `{"colors": [`},
		{"missing alpha", `{"colors": [{"color": {"components": {"red": "0x01", "green": "0x02", "blue": "0x03"}}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := agtest.CreateTestFs(t)
			addPalette(t, fs, agtest.Base)
			agtest.AddColorSet(t, fs, colorCatalog, "Broken", tt.contents, agtest.Base)
			agtest.WriteFileAt(t, fs, colorOutput, "previous", agtest.Base)
			rec := &writeRecorder{}

			report := runner.Run(context.Background(), testConfig(false), testOptions(fs, rec))

			res := report.Results[0]
			require.Equal(t, runner.StatusFailed, res.Status)
			assert.True(t, errors.IsDecodeError(res.Err), "expected decode error, got %v", res.Err)
			assert.Contains(t, res.Hint, "Contents.json")
			assert.Contains(t, res.Error, "Broken")
			assert.True(t, report.Failed())
			assert.Zero(t, rec.count())
			assert.Equal(t, "previous", agtest.ReadFile(t, fs, colorOutput))

			// No temp file left behind
			infos, err := afero.ReadDir(fs, filepath.Dir(colorOutput))
			require.NoError(t, err)
			require.Len(t, infos, 1)
			assert.Equal(t, "Colors.swift", infos[0].Name())
		})
	}
}

func TestRun_WriteFailureLeavesOutputUntouched(t *testing.T) {
	base := agtest.CreateTestFs(t)
	addPalette(t, base, agtest.Base)
	agtest.WriteFileAt(t, base, colorOutput, "previous", agtest.Base)
	rec := &writeRecorder{}

	report := runner.Run(context.Background(), testConfig(false), testOptions(afero.NewReadOnlyFs(base), rec))

	res := report.Results[0]
	require.Equal(t, runner.StatusFailed, res.Status)
	assert.False(t, errors.IsDecodeError(res.Err))
	assert.Zero(t, rec.count())
	assert.Equal(t, "previous", agtest.ReadFile(t, base, colorOutput))
}

// countingFs counts every filesystem call
type countingFs struct {
	afero.Fs
	mu    sync.Mutex
	calls int
}

func (c *countingFs) hit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
}

func (c *countingFs) Create(name string) (afero.File, error) {
	c.hit()
	return c.Fs.Create(name)
}

func (c *countingFs) Mkdir(name string, perm os.FileMode) error {
	c.hit()
	return c.Fs.Mkdir(name, perm)
}

func (c *countingFs) MkdirAll(path string, perm os.FileMode) error {
	c.hit()
	return c.Fs.MkdirAll(path, perm)
}

func (c *countingFs) Open(name string) (afero.File, error) {
	c.hit()
	return c.Fs.Open(name)
}

func (c *countingFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	c.hit()
	return c.Fs.OpenFile(name, flag, perm)
}

func (c *countingFs) Remove(name string) error {
	c.hit()
	return c.Fs.Remove(name)
}

func (c *countingFs) Rename(oldname, newname string) error {
	c.hit()
	return c.Fs.Rename(oldname, newname)
}

func (c *countingFs) Stat(name string) (os.FileInfo, error) {
	c.hit()
	return c.Fs.Stat(name)
}

func TestRun_RootUnsetIsNoOp(t *testing.T) {
	mem := agtest.CreateTestFs(t)
	addPalette(t, mem, agtest.Base)
	fs := &countingFs{Fs: mem}
	rec := &writeRecorder{}

	cfg := testConfig(false)
	cfg.Tasks = append(cfg.Tasks, am.TaskConfig{
		Kind: "image", Catalog: "Lib/images.xcassets", Output: "Lib/Generated/Images.swift",
	})

	opts := testOptions(fs, rec)
	opts.LookupEnv = func(string) (string, bool) { return "", false }
	report := runner.Run(context.Background(), cfg, opts)

	require.Len(t, report.Results, 2)
	for _, res := range report.Results {
		assert.Equal(t, runner.StatusSkipped, res.Status)
		assert.Equal(t, "project root not set", res.Reason)
		assert.True(t, errors.Is(res.Err, runner.ErrProjectRootUnset))
		assert.Contains(t, res.Hint, "SRCROOT")
	}
	assert.Equal(t, "images", report.Results[1].Task)
	assert.Zero(t, fs.calls)
	assert.Zero(t, rec.count())
	assert.False(t, report.Failed())
}

func TestRun_EmptyRootIsUnset(t *testing.T) {
	opts := testOptions(agtest.CreateTestFs(t), &writeRecorder{})
	opts.LookupEnv = func(string) (string, bool) { return "", true }

	report := runner.Run(context.Background(), testConfig(false), opts)
	assert.Equal(t, runner.StatusSkipped, report.Results[0].Status)
}

func TestRun_CustomRootEnv(t *testing.T) {
	fs := agtest.CreateTestFs(t)
	addPalette(t, fs, agtest.Base)

	cfg := testConfig(false)
	cfg.Project.RootEnv = "PROJECT_DIR"
	opts := testOptions(fs, &writeRecorder{})
	opts.LookupEnv = func(name string) (string, bool) {
		if name == "PROJECT_DIR" {
			return root, true
		}
		return "", false
	}

	report := runner.Run(context.Background(), cfg, opts)
	assert.Equal(t, runner.StatusSucceeded, report.Results[0].Status)
}

func TestRun_MissingCatalogIsSkipped(t *testing.T) {
	fs := agtest.CreateTestFs(t)
	rec := &writeRecorder{}

	report := runner.Run(context.Background(), testConfig(false), testOptions(fs, rec))

	res := report.Results[0]
	assert.Equal(t, runner.StatusSkipped, res.Status)
	assert.True(t, errors.Is(res.Err, runner.ErrCatalogMissing))
	assert.Contains(t, res.Error, colorCatalog)
	assert.Zero(t, rec.count())
	assert.False(t, report.Failed())
}

func multiTaskConfig(parallel bool) *am.Config {
	cfg := testConfig(false)
	cfg.Generate.Parallel = parallel
	cfg.Tasks = append(cfg.Tasks,
		am.TaskConfig{
			Kind:    "image",
			Catalog: "Lib/images.xcassets",
			Output:  "Lib/Generated/Images.swift",
			Bundle:  "Bundle.module",
		},
		am.TaskConfig{
			Name:     "palette",
			Kind:     "color",
			Strategy: "lookup",
			Catalog:  "Lib/colors.xcassets",
			Output:   "internal/palette/palette.go",
			Package:  "palette",
		},
		am.TaskConfig{
			Kind:    "image",
			Catalog: "Lib/missing.xcassets",
			Output:  "Lib/Generated/Missing.swift",
		},
	)
	return cfg
}

func TestRun_MultipleTasks(t *testing.T) {
	for _, parallel := range []bool{false, true} {
		name := "sequential"
		if parallel {
			name = "parallel"
		}
		t.Run(name, func(t *testing.T) {
			fs := agtest.CreateTestFs(t)
			addPalette(t, fs, agtest.Base)
			images := filepath.Join(root, "Lib/images.xcassets")
			agtest.AddImageSet(t, fs, images, "Logo", agtest.Base)
			agtest.AddImageSet(t, fs, images, "Banner", agtest.Base)
			rec := &writeRecorder{}

			report := runner.Run(context.Background(), multiTaskConfig(parallel), testOptions(fs, rec))

			require.Len(t, report.Results, 4)
			// Results keep configuration order regardless of scheduling
			assert.Equal(t, []string{"colors", "images", "palette", "missing"}, []string{
				report.Results[0].Task, report.Results[1].Task, report.Results[2].Task, report.Results[3].Task,
			})
			assert.Equal(t, runner.Counts{Skipped: 1, Succeeded: 3}, report.Counts())
			assert.Equal(t, 3, rec.count())

			imagesOut := agtest.ReadFile(t, fs, filepath.Join(root, "Lib/Generated/Images.swift"))
			assert.Contains(t, imagesOut, "public struct Image {")
			assert.Contains(t, imagesOut, `public static let Banner = UIImage(named: "Banner", in: Bundle.module, with: nil)`)

			paletteOut := agtest.ReadFile(t, fs, filepath.Join(root, "internal/palette/palette.go"))
			assert.Contains(t, paletteOut, "package palette")
			// Background is the longest key, so gofmt leaves it unpadded
			assert.Contains(t, paletteOut, `Background: ColorValue{Name: "Background"},`)
		})
	}
}

func TestRun_CancelledContext(t *testing.T) {
	fs := agtest.CreateTestFs(t)
	addPalette(t, fs, agtest.Base)
	rec := &writeRecorder{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report := runner.Run(ctx, testConfig(false), testOptions(fs, rec))

	assert.Equal(t, runner.StatusSkipped, report.Results[0].Status)
	assert.Equal(t, "cancelled", report.Results[0].Reason)
	assert.Zero(t, rec.count())
}

func TestRun_Timezone(t *testing.T) {
	fs := agtest.CreateTestFs(t)
	addPalette(t, fs, agtest.Base)

	cfg := testConfig(false)
	cfg.Generate.Timezone = "Asia/Tokyo"
	runner.Run(context.Background(), cfg, testOptions(fs, &writeRecorder{}))

	assert.Contains(t, agtest.ReadFile(t, fs, colorOutput), "//Generated on 3/5/24, 6:07 PM\n")
}

func TestReport_Counts(t *testing.T) {
	report := &runner.Report{Results: []runner.Result{
		{Status: runner.StatusSkipped},
		{Status: runner.StatusSucceeded},
		{Status: runner.StatusSucceeded},
	}}
	assert.Equal(t, runner.Counts{Skipped: 1, Succeeded: 2}, report.Counts())
	assert.False(t, report.Failed())

	report.Results = append(report.Results, runner.Result{Status: runner.StatusFailed})
	assert.True(t, report.Failed())
}

func TestNewFormatter(t *testing.T) {
	f, err := runner.NewFormatter("swift", "Colors.swift")
	require.NoError(t, err)
	assert.Equal(t, "swift", f.Language())

	f, err = runner.NewFormatter("go", "assets/colors.go")
	require.NoError(t, err)
	assert.Equal(t, "go", f.FileExtension())

	_, err = runner.NewFormatter("kotlin", "")
	assert.Error(t, err)
}
