package ingest

import (
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"inkwell/internal/document"
)

// Result is the outcome of an encode. Only a non-empty DataURI with no error
// is textual.
type Result struct {
	DataURI string
	Err     error
}

// Text returns the data URI when the encode produced one.
func (r Result) Text() (string, bool) {
	if r.Err != nil || r.DataURI == "" {
		return "", false
	}
	return r.DataURI, true
}

// Future is a single-shot encode result. A stalled read leaves it pending.
type Future struct {
	done chan struct{}
	once sync.Once
	res  Result
}

func newFuture() *Future { return &Future{done: make(chan struct{})} }

func (f *Future) resolve(r Result) {
	f.once.Do(func() {
		f.res = r
		close(f.done)
	})
}

// Done is closed once the result is available.
func (f *Future) Done() <-chan struct{} { return f.done }

// Wait blocks until the result is available.
func (f *Future) Wait() Result {
	<-f.done
	return f.res
}

// EncodeDataURI reads f in the background and resolves to
// data:<type>;base64,<payload>.
func EncodeDataURI(f File) *Future {
	fut := newFuture()
	go func() {
		fut.resolve(encode(f))
	}()
	return fut
}

func encode(f File) Result {
	rc, err := f.Open()
	if err != nil {
		return Result{Err: fmt.Errorf("open %s: %w", f.Name(), err)}
	}
	defer rc.Close()

	var sb strings.Builder
	sb.WriteString("data:")
	sb.WriteString(strings.ToLower(f.Type()))
	sb.WriteString(";base64,")
	enc := base64.NewEncoder(base64.StdEncoding, &sb)
	if _, err := io.Copy(enc, rc); err != nil {
		return Result{Err: fmt.Errorf("read %s: %w", f.Name(), err)}
	}
	if err := enc.Close(); err != nil {
		return Result{Err: fmt.Errorf("encode %s: %w", f.Name(), err)}
	}
	return Result{DataURI: sb.String()}
}

// Pipeline gates candidates, encodes them, and inserts the result.
type Pipeline struct {
	engine document.Engine
	encode func(File) *Future
	log    *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger routes pipeline diagnostics to l.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) { p.log = l }
}

// WithEncoder replaces the encoder.
func WithEncoder(fn func(File) *Future) Option {
	return func(p *Pipeline) { p.encode = fn }
}

func NewPipeline(engine document.Engine, opts ...Option) *Pipeline {
	p := &Pipeline{engine: engine, encode: EncodeDataURI, log: slog.Default()}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Accept starts encoding f. Non-image files are ignored without error and
// report false.
func (p *Pipeline) Accept(f File) (*Future, bool) {
	if err := Check(f); err != nil {
		if f != nil {
			p.log.Debug("ingest: ignoring file", "name", f.Name(), "type", f.Type(), "reason", err)
		}
		return nil, false
	}
	p.log.Debug("ingest: encoding", "name", f.Name(), "type", f.Type())
	return p.encode(f), true
}

// Complete inserts a finished encode as one focused chain. It must run on
// the goroutine that owns the engine. Failures are silent.
func (p *Pipeline) Complete(r Result) bool {
	src, ok := r.Text()
	if !ok {
		if r.Err != nil {
			p.log.Debug("ingest: encode failed", "err", r.Err)
		}
		return false
	}
	return p.engine.Chain().Focus().SetImage(src).Run()
}

// Drop accepts the first file of a drop. Any further files are ignored.
func (p *Pipeline) Drop(dt DataTransfer) (*Future, bool) {
	if len(dt.Files) == 0 {
		return nil, false
	}
	if n := len(dt.Files); n > 1 {
		p.log.Debug("ingest: multi-file drop, using first", "count", n)
	}
	return p.Accept(dt.Files[0])
}

// Ingest accepts, waits for and completes f in the calling goroutine, then
// calls then exactly once with whether the document changed. Callers that
// run an event loop should use Accept and Complete instead.
func (p *Pipeline) Ingest(f File, then func(bool)) {
	fut, ok := p.Accept(f)
	if !ok {
		if then != nil {
			then(false)
		}
		return
	}
	inserted := p.Complete(fut.Wait())
	if then != nil {
		then(inserted)
	}
}
