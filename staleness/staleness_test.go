package staleness_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	agtest "github.com/teranos/assetgen/internal/testing"
	"github.com/teranos/assetgen/staleness"
)

const output = "Lib/Generated/Colors.swift"

func TestCheck(t *testing.T) {
	t0 := agtest.Base
	before := t0.Add(-time.Minute)
	after := t0.Add(time.Minute)

	tests := []struct {
		name        string
		writeOutput bool
		folders     map[string]time.Time
		missing     []string
		optimize    bool
		want        bool
		wantTrigger string
	}{
		{
			name:        "folder newer than output",
			writeOutput: true,
			folders:     map[string]time.Time{"A": after},
			optimize:    true,
			want:        true,
			wantTrigger: "A",
		},
		{
			name:        "all folders older",
			writeOutput: true,
			folders:     map[string]time.Time{"A": before, "B": before},
			optimize:    true,
			want:        false,
		},
		{
			name:        "equal timestamp is not stale",
			writeOutput: true,
			folders:     map[string]time.Time{"A": t0},
			optimize:    true,
			want:        false,
		},
		{
			name:        "output missing is a no-op",
			writeOutput: false,
			folders:     map[string]time.Time{"A": after},
			optimize:    true,
			want:        false,
		},
		{
			name:        "unreadable folders are ignored",
			writeOutput: true,
			folders:     map[string]time.Time{"A": before},
			missing:     []string{"Gone.imageset"},
			optimize:    true,
			want:        false,
		},
		{
			name:        "optimization disabled always regenerates",
			writeOutput: true,
			folders:     map[string]time.Time{"A": before},
			optimize:    false,
			want:        true,
		},
		{
			name:        "optimization disabled regenerates without output",
			writeOutput: false,
			optimize:    false,
			want:        true,
		},
		{
			name:        "no folders",
			writeOutput: true,
			optimize:    true,
			want:        false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := agtest.CreateTestFs(t)
			if tt.writeOutput {
				agtest.WriteFileAt(t, fs, output, "// old", t0)
			}

			var folders []string
			for name, mt := range tt.folders {
				agtest.AddImageSet(t, fs, "x.xcassets", name, mt)
				folders = append(folders, "x.xcassets/"+name+".imageset")
			}
			for _, name := range tt.missing {
				folders = append(folders, "x.xcassets/"+name)
			}

			d := staleness.Check(fs, output, folders, tt.optimize)
			assert.Equal(t, tt.want, d.Regenerate, d.Reason)
			assert.NotEmpty(t, d.Reason)
			if tt.wantTrigger != "" {
				assert.Equal(t, "x.xcassets/"+tt.wantTrigger+".imageset", d.Trigger)
			}
		})
	}
}

func TestCheck_StopsAtFirstNewerFolder(t *testing.T) {
	fs := agtest.CreateTestFs(t)
	agtest.WriteFileAt(t, fs, output, "// old", agtest.Base)
	first := agtest.AddImageSet(t, fs, "x.xcassets", "First", agtest.Base.Add(time.Hour))
	agtest.AddImageSet(t, fs, "x.xcassets", "Second", agtest.Base.Add(2*time.Hour))

	d := staleness.Check(fs, output, []string{first, "x.xcassets/Second.imageset"}, true)
	assert.True(t, d.Regenerate)
	assert.Equal(t, first, d.Trigger)
}

func TestModTime(t *testing.T) {
	fs := agtest.CreateTestFs(t)
	agtest.WriteFileAt(t, fs, "f.txt", "x", agtest.Base)

	got, ok := staleness.ModTime(fs, "f.txt")
	assert.True(t, ok)
	assert.True(t, got.Equal(agtest.Base))

	_, ok = staleness.ModTime(fs, "missing.txt")
	assert.False(t, ok)
}
