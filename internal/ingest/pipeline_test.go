package ingest

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"inkwell/internal/document/documenttest"
)

type memFile struct {
	name string
	typ  string
	data string
	err  error
}

func (f memFile) Name() string { return f.name }
func (f memFile) Type() string { return f.typ }
func (f memFile) Open() (io.ReadCloser, error) {
	if f.err != nil {
		return nil, f.err
	}
	return io.NopCloser(strings.NewReader(f.data)), nil
}

func TestIsImageType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want bool
	}{
		{"image/png", true},
		{"image/svg+xml", true},
		{"IMAGE/JPEG", true},
		{"text/plain", false},
		{"application/pdf", false},
		{"", false},
		{"imagex/png", false},
	}
	for _, tt := range tests {
		if got := IsImageType(tt.in); got != tt.want {
			t.Errorf("IsImageType(%q)=%v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestEncodeDataURI(t *testing.T) {
	t.Parallel()

	res := EncodeDataURI(memFile{name: "a.png", typ: "image/png", data: "hello"}).Wait()
	got, ok := res.Text()
	if !ok {
		t.Fatalf("expected textual result, got err %v", res.Err)
	}
	if want := "data:image/png;base64,aGVsbG8="; got != want {
		t.Fatalf("DataURI=%q, want %q", got, want)
	}

	res = EncodeDataURI(memFile{name: "b.png", typ: "image/png", err: os.ErrPermission}).Wait()
	if _, ok := res.Text(); ok {
		t.Fatalf("expected failed open to be non-textual")
	}
	if !errors.Is(res.Err, os.ErrPermission) {
		t.Fatalf("Err=%v, want wrapped ErrPermission", res.Err)
	}
}

func TestPipeline_IgnoresNonImages(t *testing.T) {
	t.Parallel()

	rec := documenttest.New()
	p := NewPipeline(rec)

	if _, ok := p.Accept(memFile{name: "notes.txt", typ: "text/plain", data: "x"}); ok {
		t.Fatalf("expected text/plain to be ignored")
	}
	if _, ok := p.Accept(nil); ok {
		t.Fatalf("expected nil file to be ignored")
	}
	called := 0
	p.Ingest(memFile{name: "notes.txt", typ: "text/plain"}, func(inserted bool) {
		called++
		if inserted {
			t.Errorf("expected no insertion")
		}
	})
	if called != 1 {
		t.Fatalf("continuation called %d times, want 1", called)
	}
	if n := len(rec.Chains()); n != 0 {
		t.Fatalf("expected no commands, got %v", rec.Calls())
	}
}

func TestPipeline_InsertsImageAsOneChain(t *testing.T) {
	t.Parallel()

	rec := documenttest.New()
	p := NewPipeline(rec)

	var inserted bool
	p.Ingest(memFile{name: "a.png", typ: "image/png", data: "hello"}, func(ok bool) { inserted = ok })
	if !inserted {
		t.Fatalf("expected insertion")
	}
	calls := rec.Calls()
	if len(calls) != 1 {
		t.Fatalf("expected exactly one chain, got %v", calls)
	}
	if want := "focus.setImage(data:image/png;base64,aGVsbG8=)"; calls[0] != want {
		t.Fatalf("chain=%q, want %q", calls[0], want)
	}
}

func TestPipeline_CompleteIsSilentOnFailure(t *testing.T) {
	t.Parallel()

	rec := documenttest.New()
	p := NewPipeline(rec)
	if p.Complete(Result{Err: errors.New("boom")}) {
		t.Fatalf("expected failure to report false")
	}
	if p.Complete(Result{}) {
		t.Fatalf("expected empty result to report false")
	}
	if n := len(rec.Chains()); n != 0 {
		t.Fatalf("expected no commands, got %v", rec.Calls())
	}
}

func TestPipeline_DropUsesFirstFileOnly(t *testing.T) {
	t.Parallel()

	rec := documenttest.New()
	var encoded []string
	p := NewPipeline(rec, WithEncoder(func(f File) *Future {
		encoded = append(encoded, f.Name())
		return EncodeDataURI(f)
	}))

	fut, ok := p.Drop(DataTransfer{Files: []File{
		memFile{name: "first.png", typ: "image/png", data: "1"},
		memFile{name: "second.png", typ: "image/png", data: "2"},
	}})
	if !ok {
		t.Fatalf("expected drop to be accepted")
	}
	p.Complete(fut.Wait())

	if len(encoded) != 1 || encoded[0] != "first.png" {
		t.Fatalf("encoded=%v, want [first.png]", encoded)
	}
	if calls := rec.Calls(); len(calls) != 1 {
		t.Fatalf("expected one chain, got %v", calls)
	}

	if _, ok := p.Drop(DataTransfer{}); ok {
		t.Fatalf("expected empty drop to be ignored")
	}
	if _, ok := p.Drop(DataTransfer{Files: []File{memFile{name: "a.txt", typ: "text/plain"}}}); ok {
		t.Fatalf("expected non-image first file to be ignored")
	}
}

func TestFuture_PendingUntilRead(t *testing.T) {
	t.Parallel()

	pr, pw := io.Pipe()
	fut := EncodeDataURI(pipeFile{r: pr})
	select {
	case <-fut.Done():
		t.Fatalf("expected future to stay pending while the read stalls")
	case <-time.After(20 * time.Millisecond):
	}
	_, _ = pw.Write([]byte("hi"))
	_ = pw.Close()
	got, ok := fut.Wait().Text()
	if !ok || got != "data:image/gif;base64,aGk=" {
		t.Fatalf("Wait()=%q,%v", got, ok)
	}
}

type pipeFile struct{ r io.ReadCloser }

func (pipeFile) Name() string                   { return "p.gif" }
func (pipeFile) Type() string                   { return "image/gif" }
func (f pipeFile) Open() (io.ReadCloser, error) { return f.r, nil }

func TestDiskFile_Type(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want string
	}{
		{"/tmp/a.png", "image/png"},
		{"/tmp/A.JPG", "image/jpeg"},
		{"/tmp/a.gif", "image/gif"},
		{"/tmp/noext", "application/octet-stream"},
	}
	for _, tt := range tests {
		if got := (DiskFile{Path: tt.path}).Type(); got != tt.want {
			t.Errorf("Type(%q)=%q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestParseDrop(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	plain := filepath.Join(dir, "a.png")
	spaced := filepath.Join(dir, "my photo.png")
	for _, p := range []string{plain, spaced} {
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	dt, ok := ParseDrop(plain + " '" + spaced + "'\n")
	if !ok {
		t.Fatalf("expected a drop")
	}
	if len(dt.Files) != 2 || dt.Files[1].Name() != "my photo.png" {
		t.Fatalf("files=%v", dt.Files)
	}

	escaped := strings.ReplaceAll(spaced, " ", `\ `)
	if dt, ok := ParseDrop(escaped); !ok || len(dt.Files) != 1 {
		t.Fatalf("expected backslash-escaped path to parse, got %v %v", dt, ok)
	}
	if _, ok := ParseDrop("file://" + plain); !ok {
		t.Fatalf("expected file URI to parse")
	}

	// pipeline.go exists in the working directory but is not absolute.
	for _, text := range []string{"", "hello world", plain + " missing.png", dir, "pipeline.go"} {
		if _, ok := ParseDrop(text); ok {
			t.Errorf("ParseDrop(%q) unexpectedly recognised a drop", text)
		}
	}
}

func TestSplitShellWords(t *testing.T) {
	t.Parallel()

	got := splitShellWords(`a "b c" 'd e' f\ g ""`)
	want := []string{"a", "b c", "d e", "f g", ""}
	if strings.Join(got, "|") != strings.Join(want, "|") || len(got) != len(want) {
		t.Fatalf("splitShellWords=%q, want %q", got, want)
	}
}
