package pipeline

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dgallion1/sentchunk/internal/chunker"
	"github.com/dgallion1/sentchunk/internal/config"
	"github.com/dgallion1/sentchunk/internal/parser"
)

// Analyzer runs uploads through extraction and tokenization and keeps the
// results so range changes can be served without re-extracting.
type Analyzer struct {
	store      *Store
	stats      *LatencyStats
	tok        chunker.Tokenizer
	log        *slog.Logger
	parserOpts parser.Options
	window     chunker.Window

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewAnalyzer creates an analyzer. Call Start to enable store eviction.
func NewAnalyzer(cfg config.Config, tok chunker.Tokenizer, log *slog.Logger) *Analyzer {
	return &Analyzer{
		store: NewStore(cfg.AnalysisTTL),
		stats: NewLatencyStats(cfg.StatsWindow),
		tok:   tok,
		log:   log,
		parserOpts: parser.Options{
			FallbackPdftotext: cfg.PDFFallbackPdftotext,
		},
		window: chunker.Window{Start: cfg.SampleStart, End: cfg.SampleEnd},
	}
}

// Start launches the store cleanup loop.
func (a *Analyzer) Start(ctx context.Context) {
	loopCtx, cancel := context.WithCancel(ctx)
	a.cancel = cancel

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-loopCtx.Done():
				return
			case <-ticker.C:
				if n := a.store.Cleanup(); n > 0 {
					a.log.Debug("evicted analyses", "count", n)
				}
			}
		}
	}()
}

// Stop ends the cleanup loop and waits for it.
func (a *Analyzer) Stop() {
	if a.cancel != nil {
		a.cancel()
	}
	a.wg.Wait()
}

// Analyze extracts text from an uploaded PDF and splits it into sentences.
// Identical uploads share one stored analysis. A PDF without extractable
// text is not an error: the analysis has NoText set and no sentences.
func (a *Analyzer) Analyze(ctx context.Context, filename string, data []byte) (*Analysis, error) {
	id := ContentHashHex(data)[:16]
	log := a.log.With("doc_id", id, "filename", filename)

	if existing := a.store.Get(id); existing != nil {
		log.Debug("reusing stored analysis")
		if existing.Filename == filename {
			return existing, nil
		}
		// Same bytes, new name: the latest upload names the document.
		an := existing.renamed(filename, parser.TitleFromFilename(filename))
		a.store.Put(an)
		return an, nil
	}

	p, err := parser.ForFile(filename, a.parserOpts)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	doc, err := p.Parse(bytes.NewReader(data), filename)
	elapsed := time.Since(start)
	if err != nil {
		a.stats.RecordFailure()
		log.Error("extraction failed", "error", err)
		return nil, err
	}
	a.stats.Record(elapsed.Milliseconds())

	sentences := []string{}
	if doc.Empty() {
		log.Warn("no extractable text", "pages", doc.PageCount())
	} else {
		sentences = a.tok.Tokenize(doc.FullText())
	}

	an := newAnalysis(id, filename, doc, sentences)
	an.ExtractDuration = elapsed
	a.store.Put(an)

	log.Info("analyzed document",
		"pages", an.PageCount,
		"characters", an.CharCount,
		"sentences", len(an.Sentences),
		"duration_ms", elapsed.Milliseconds(),
	)
	return an, nil
}

// Get returns a stored analysis by ID, or nil if unknown or evicted.
func (a *Analyzer) Get(id string) *Analysis {
	return a.store.Get(id)
}

// Sample re-samples the configured fixed window of an analysis.
func (a *Analyzer) Sample(an *Analysis) chunker.WindowSample {
	return chunker.SampleWindow(an.Sentences, a.window, a.tok)
}

// Tokenize splits arbitrary text into sentences.
func (a *Analyzer) Tokenize(text string) []string {
	return a.tok.Tokenize(text)
}

// Stats returns the extraction latency snapshot.
func (a *Analyzer) Stats() StatsSnapshot {
	return a.stats.Snapshot()
}

// StoredCount returns how many analyses are held in memory.
func (a *Analyzer) StoredCount() int {
	return a.store.Len()
}
