// pattern: Imperative Shell
package cli

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"framedock/internal/geom"
)

func TestParseDragArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    dragArgs
		wantErr string
	}{
		{
			name: "all flags",
			args: []string{"--frame", "f1", "--edge", "Right", "--delta", "-0.1"},
			want: dragArgs{frameID: "f1", edge: geom.Right, delta: -0.1},
		},
		{name: "missing frame", args: []string{"--edge", "top"}, wantErr: "--frame is required"},
		{name: "bad edge", args: []string{"--frame", "f1", "--edge", "middle"}, wantErr: `unknown edge "middle"`},
		{name: "missing edge", args: []string{"--frame", "f1"}, wantErr: "unknown edge"},
		{name: "bad delta", args: []string{"--frame", "f1", "--edge", "top", "--delta", "far"}, wantErr: "delta"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDragArgs(tt.args)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("parseDragArgs() error = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseDragArgs() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("parseDragArgs() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseSelectArgs(t *testing.T) {
	if got, err := parseSelectArgs([]string{"1"}); err != nil || got != 1 {
		t.Errorf("parseSelectArgs([1]) = %d, %v", got, err)
	}
	for _, args := range [][]string{nil, {"one"}, {"-1"}, {"1", "2"}} {
		if _, err := parseSelectArgs(args); err == nil {
			t.Errorf("parseSelectArgs(%v) should fail", args)
		}
	}
}

func TestParseAssignArgs(t *testing.T) {
	got, err := parseAssignArgs([]string{"--frame", "f1", "--type", "9999"})
	if err != nil || got.frameID != "f1" || got.frameType != 9999 {
		t.Errorf("parseAssignArgs() = %+v, %v", got, err)
	}
	if _, err := parseAssignArgs([]string{"--frame", "f1"}); err == nil || !strings.Contains(err.Error(), "--type") {
		t.Errorf("missing --type error = %v", err)
	}
	if _, err := parseAssignArgs([]string{"--type", "1"}); err == nil || !strings.Contains(err.Error(), "--frame") {
		t.Errorf("missing --frame error = %v", err)
	}
}

func TestParsePreviewArgs(t *testing.T) {
	got, err := parsePreviewArgs([]string{"-o", "a.png", "--width", "64"})
	if err != nil || got != (previewArgs{out: "a.png", width: 64}) {
		t.Errorf("parsePreviewArgs() = %+v, %v", got, err)
	}
	if _, err := parsePreviewArgs(nil); err == nil {
		t.Error("missing --out should fail")
	}
}

// layoutGroup registers the layout commands against a fake instance that
// answers every request with reply, recording what it was sent.
func layoutGroup(t *testing.T, reply string) (*Group, *captured, *http.Request, *[]byte) {
	t.Helper()
	var req http.Request
	var body []byte
	dir := fakeInstance(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req = *r
		body, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(reply))
	}))

	d, out := testDelegate(dir)
	group := &Group{Name: "layout", Commands: map[string]*Command{}}
	RegisterLayoutCommands(group, d)
	return group, out, &req, &body
}

func TestLayoutDrag_SendsRequest(t *testing.T) {
	group, out, req, body := layoutGroup(t, `{"moved":3}`)

	err := group.Commands["drag"].Run([]string{"--frame", "f1", "--edge", "right", "--delta", "0.1"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if out.exitCode != -1 {
		t.Fatalf("exit code = %d, stderr: %s", out.exitCode, out.stderr.String())
	}
	if req.Method != http.MethodPost || req.URL.Path != "/api/layouts/active/drag" {
		t.Errorf("request = %s %s", req.Method, req.URL.Path)
	}

	var sent map[string]any
	if err := json.Unmarshal(*body, &sent); err != nil {
		t.Fatalf("request body: %v", err)
	}
	if sent["frame_id"] != "f1" || sent["edge"] != "right" || sent["delta"] != 0.1 {
		t.Errorf("request body = %v", sent)
	}
	if out.stdout.String() != `{"moved":3}` {
		t.Errorf("stdout = %q", out.stdout.String())
	}
}

func TestLayoutCommands_BadArgsSkipDiscovery(t *testing.T) {
	d, out := testDelegate(t.TempDir())
	group := &Group{Name: "layout", Commands: map[string]*Command{}}
	RegisterLayoutCommands(group, d)

	for name, args := range map[string][]string{
		"list":   {"extra"},
		"select": {"x"},
		"drag":   {"--edge", "top"},
		"assign": {"--frame", "f1"},
	} {
		if err := group.Commands[name].Run(args); err == nil {
			t.Errorf("%s %v should fail", name, args)
		}
	}
	if out.exitCode != -1 {
		t.Errorf("argument errors should not reach discovery, exit code %d", out.exitCode)
	}
}

func TestLayoutPreview_WritesFile(t *testing.T) {
	group, out, req, _ := layoutGroup(t, "\x89PNG-not-really")
	target := filepath.Join(t.TempDir(), "p.png")

	if err := group.Commands["preview"].Run([]string{"--out", target, "--height", "50"}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if req.URL.RawQuery != "height=50" {
		t.Errorf("query = %q, want only the given size", req.URL.RawQuery)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "\x89PNG-not-really" {
		t.Errorf("file contents = %q", data)
	}
	if !strings.Contains(out.stdout.String(), `"path"`) {
		t.Errorf("stdout = %q", out.stdout.String())
	}
}
