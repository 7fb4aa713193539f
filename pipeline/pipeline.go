// Package pipeline routes each text run of a document to the right chunking
// policy and writes the result back into the document.
//
// Runs are chunked concurrently on a bounded pool of workers; every worker
// owns its chunker state, and only the calling goroutine mutates the tree.
package pipeline

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/zeebo/blake3"
	"golang.org/x/net/html"
	"golang.org/x/sync/errgroup"

	"wordbreak/chunk"
	"wordbreak/document"
	"wordbreak/logger"
	"wordbreak/model"
	"wordbreak/render"
	"wordbreak/script"
)

var (
	// ErrNoInput is returned by Process for an empty document.
	ErrNoInput = errors.New("empty input")

	errNoTokenizer = errors.New("no tokenizer configured")
)

// Tokenizer segments a Japanese run into tokens.
type Tokenizer interface {
	Tokenize(ctx context.Context, text string) ([]model.Token, error)
}

// Processor chunks documents. It is safe for concurrent use if its
// Tokenizer is.
type Processor struct {
	tok  Tokenizer
	opts Options
}

// New returns a Processor. A nil tokenizer makes every Japanese run pass
// through unchanged.
func New(tok Tokenizer, opts Options) *Processor {
	return &Processor{tok: tok, opts: opts}
}

// RunResult is the outcome of chunking one run.
type RunResult struct {
	Text    string        `json:"text"`
	Verdict model.Verdict `json:"verdict"`
	Chunks  []model.Chunk `json:"chunks"`
	// Fallback is set when the run could not be chunked and is left as is.
	Fallback bool `json:"fallback,omitempty"`
}

// Chunk classifies run and chunks it with the matching policy. It never
// fails: a tokenizer error leaves the run unchanged.
func (p *Processor) Chunk(ctx context.Context, run string) RunResult {
	res := RunResult{Text: run, Verdict: script.Classify(run)}
	if res.Verdict == model.Latin {
		res.Chunks = chunk.Latin(run)
		return res
	}

	tokens, err := p.tokenize(ctx, run)
	if err != nil {
		logger.Component(ctx, "pipeline").Warn("tokenizer failed, leaving run unchanged",
			"error", err, "run", run)
		res.Chunks = chunk.Passthrough(run)
		res.Fallback = true
		return res
	}
	res.Chunks = chunk.Japanese(run, tokens)
	if !render.Wraps(res.Chunks) {
		logger.Component(ctx, "pipeline").Warn("tokens do not cover run, leaving run unchanged",
			"run", run, "tokens", len(tokens))
		res.Fallback = true
	}
	return res
}

func (p *Processor) tokenize(ctx context.Context, run string) ([]model.Token, error) {
	if p.tok == nil {
		return nil, errNoTokenizer
	}
	return p.tok.Tokenize(ctx, run)
}

// Report summarizes one Process call.
type Report struct {
	RunID            string      `json:"run_id"`
	Source           string      `json:"source,omitempty"`
	InputDigest      string      `json:"input_blake3"`
	OutputDigest     string      `json:"output_blake3"`
	AlreadyProcessed bool        `json:"already_processed"`
	StyleInjected    bool        `json:"style_injected"`
	Candidates       int         `json:"candidates"`
	Replaced         int         `json:"replaced"`
	Japanese         int         `json:"japanese_runs"`
	Latin            int         `json:"latin_runs"`
	Fallbacks        int         `json:"fallbacks"`
	DurationMS       int64       `json:"duration_ms"`
	Runs             []RunResult `json:"runs,omitempty"`
}

type indexed struct {
	i   int
	res RunResult
}

// Process chunks every eligible text node of the HTML document src and
// returns the rewritten document. A document that already carries the
// generated style block is re-serialized without changes.
func (p *Processor) Process(ctx context.Context, src []byte) ([]byte, *Report, error) {
	if len(src) == 0 {
		return nil, nil, ErrNoInput
	}
	start := time.Now()
	if logger.RunID(ctx) == "" {
		ctx = logger.WithRunID(ctx, uuid.NewString())
	}
	log := logger.Component(ctx, "pipeline")
	rep := &Report{RunID: logger.RunID(ctx), InputDigest: digest(src)}

	doc, err := document.Parse(bytes.NewReader(src), document.Options{
		Extra:  p.opts.Exclude,
		Marker: p.opts.Marker,
	})
	if err != nil {
		return nil, nil, err
	}

	if doc.Processed() {
		rep.AlreadyProcessed = true
		log.Info("document already processed, skipping")
	} else {
		nodes := doc.Candidates()
		rep.Candidates = len(nodes)
		results, err := p.chunkAll(ctx, nodes)
		if err != nil {
			return nil, nil, err
		}
		for i, res := range results {
			switch res.Verdict {
			case model.Japanese:
				rep.Japanese++
			default:
				rep.Latin++
			}
			if res.Fallback {
				rep.Fallbacks++
			}
			if doc.Replace(nodes[i], res.Chunks) {
				rep.Replaced++
			}
		}
		if p.opts.KeepRuns {
			rep.Runs = results
		}
		rep.StyleInjected = doc.InjectStyle()
	}

	var out bytes.Buffer
	if err := doc.Render(&out); err != nil {
		return nil, nil, fmt.Errorf("rendering HTML: %w", err)
	}
	rep.OutputDigest = digest(out.Bytes())
	rep.DurationMS = time.Since(start).Milliseconds()
	log.Info("document processed",
		"candidates", rep.Candidates,
		"replaced", rep.Replaced,
		"japanese_runs", rep.Japanese,
		"latin_runs", rep.Latin,
		"fallbacks", rep.Fallbacks,
		"duration_ms", rep.DurationMS)
	return out.Bytes(), rep, nil
}

// chunkAll chunks the text of nodes on the worker pool and returns the
// results in node order. Workers only read the extracted run texts.
func (p *Processor) chunkAll(ctx context.Context, nodes []*html.Node) ([]RunResult, error) {
	runs := make([]string, len(nodes))
	for i, n := range nodes {
		runs[i] = n.Data
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.workers())
	out := make(chan indexed, len(runs))
	for i, run := range runs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out <- indexed{i: i, res: p.Chunk(gctx, run)}
			return nil
		})
	}
	err := g.Wait()
	close(out)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	results := make([]RunResult, len(runs))
	for r := range out {
		results[r.i] = r.res
	}
	return results, nil
}

func digest(b []byte) string {
	sum := blake3.Sum256(b)
	return hex.EncodeToString(sum[:])
}
