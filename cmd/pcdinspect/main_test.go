package main

import (
	"bytes"
	"context"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/seqsense/pcdinspector/config"
)

const testPCD = `# .PCD v0.7 - Point Cloud Data file format
VERSION 0.7
FIELDS x y z rgb
SIZE 4 4 4 4
TYPE F F F U
COUNT 1 1 1 1
WIDTH 4
HEIGHT 1
VIEWPOINT 0 0 0 1 0 0 0
POINTS 4
DATA ascii
0 0 0 16711680
0 0 1 65280
5 5 5 255
1 2 3 16777215
`

const testPCDMoved = `# .PCD v0.7 - Point Cloud Data file format
VERSION 0.7
FIELDS x y z
SIZE 4 4 4
TYPE F F F
COUNT 1 1 1
WIDTH 2
HEIGHT 1
VIEWPOINT 0 0 0 1 0 0 0
POINTS 2
DATA ascii
0 0 0
0 0 2
`

const testConfig = `camera:
  near: 1
  far: 100
loader:
  center: false
  flip_x: false
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCommands(t *testing.T) {
	dir := t.TempDir()
	pcdPath := writeFile(t, dir, "test.pcd", testPCD)
	cfgPath := writeFile(t, dir, "config.yaml", testConfig)
	badCfgPath := writeFile(t, dir, "bad.yaml", "pick:\n  hover_threshold: -1\n")

	testCases := map[string]struct {
		args     []string
		expected string
		err      bool
	}{
		"PickCenter": {
			args:     []string{"pick", pcdPath, "-c", cfgPath, "--target", "0,0,0", "--distance", "10"},
			expected: "0.00, 0.00, 1.00\n",
		},
		"PickMiss": {
			args:     []string{"pick", pcdPath, "-c", cfgPath, "--target", "0,0,0", "--distance", "10", "--x", "0", "--y", "0"},
			expected: "no hit\n",
		},
		"PickNoFile": {
			args: []string{"pick", filepath.Join(dir, "none.pcd"), "-c", cfgPath},
			err:  true,
		},
		"PickInvalidTarget": {
			args: []string{"pick", pcdPath, "--target", "0,0"},
			err:  true,
		},
		"InvalidConfig": {
			args: []string{"info", pcdPath, "-c", badCfgPath},
			err:  true,
		},
		"Nearest": {
			args:     []string{"nearest", pcdPath, "-c", cfgPath, "--at", "0.1,0,0"},
			expected: "0: 0.00, 0.00, 0.00 (0.100)\n",
		},
		"NearestNoHit": {
			args:     []string{"nearest", pcdPath, "-c", cfgPath, "--at", "10,10,10", "--max-dist", "0.5"},
			expected: "no hit\n",
		},
		"NearestNoPosition": {
			args: []string{"nearest", pcdPath},
			err:  true,
		},
		"Info": {
			args:     []string{"info", pcdPath, "-c", cfgPath},
			expected: "name: test.pcd\npoints: 4\nmin: 0.00, 0.00, 0.00\nmax: 5.00, 5.00, 5.00\ncolors: true\n",
		},
	}

	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			out, err := runCmd(t, tt.args...)
			if tt.err {
				if err == nil {
					t.Fatal("Expected error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if out != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, out)
			}
		})
	}
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func waitOutput(t *testing.T, b *syncBuffer, expected string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if b.String() == expected {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("Expected %q, got %q", expected, b.String())
}

func TestPicker_Watch(t *testing.T) {
	dir := t.TempDir()
	pcdPath := writeFile(t, dir, "test.pcd", testPCD)
	cfg, err := config.Load(strings.NewReader(testConfig))
	if err != nil {
		t.Fatal(err)
	}
	a := &app{cfg: cfg, logger: zaptest.NewLogger(t)}
	o := &pickOptions{x: -1, y: -1, width: 200, height: 200, distance: 10}
	o.targetFlag = newVec3Value(&o.target)
	o.targetFlag.set = true
	p := newPicker(a, o, true)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var out syncBuffer
	chErr := make(chan error, 1)
	go func() {
		chErr <- p.watch(ctx, &out, pcdPath)
	}()

	waitOutput(t, &out, "0.00, 0.00, 1.00\n")
	writeFile(t, dir, "test.pcd", testPCDMoved)
	waitOutput(t, &out, "0.00, 0.00, 1.00\n0.00, 0.00, 2.00\n")

	cancel()
	if err := <-chErr; err != nil {
		t.Fatal(err)
	}
	if g := p.viewer.Generation(); g < 2 {
		t.Errorf("Cloud must be swapped on change, generation %d", g)
	}
}

func TestPicker_WatchError(t *testing.T) {
	a := &app{cfg: config.Default(), logger: zaptest.NewLogger(t)}
	p := newPicker(a, &pickOptions{x: -1, y: -1, width: 200, height: 200}, false)
	path := filepath.Join(t.TempDir(), "missing", "test.pcd")
	if err := p.watch(context.Background(), &bytes.Buffer{}, path); err == nil {
		t.Error("Watching a missing directory must be error")
	}
}

func TestFileWatcher_Close(t *testing.T) {
	fw, err := newFileWatcher(watchDebounce, zaptest.NewLogger(t))
	if err != nil {
		t.Fatal(err)
	}
	if err := fw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := fw.Close(); err != nil {
		t.Errorf("Second close must be no-op, got %v", err)
	}
}

func TestServe(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "index.html", "<html></html>")

	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	chErr := make(chan error, 1)
	go func() {
		chErr <- serve(ctx, l, newFileHandler(dir))
	}()

	res, err := http.Get("http://" + l.Addr().String() + "/index.html")
	if err != nil {
		t.Fatal(err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, res.StatusCode)
	}
	if cc := res.Header.Get("Cache-Control"); cc != "no-cache" {
		t.Errorf("Expected no-cache, got %q", cc)
	}

	cancel()
	if err := <-chErr; err != nil {
		t.Fatal(err)
	}
}

func TestParseVec3(t *testing.T) {
	testCases := map[string]struct {
		input string
		err   bool
	}{
		"Valid":    {input: "1, 2.5,-3"},
		"TooShort": {input: "1,2", err: true},
		"NaN":      {input: "1,a,3", err: true},
	}
	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			v, err := parseVec3(tt.input)
			if tt.err {
				if err == nil {
					t.Fatal("Expected error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if v[0] != 1 || v[1] != 2.5 || v[2] != -3 {
				t.Errorf("Unexpected value %v", v)
			}
		})
	}
}
