// Package telemetry appends analysis outcomes to a remote spreadsheet-backed
// log over HTTP. Emission never blocks the user path: records go through a
// bounded in-memory queue drained by a background worker, and a full queue
// drops the record. Transport failures are logged and the record is lost;
// there is no retry and no durable queue.
package telemetry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/sentimentlab/reviewpulse/internal/models"
	"go.uber.org/zap"
)

const DefaultQueueSize = 64

type Emitter struct {
	endpoint string
	client   *http.Client
	queue    chan models.AnalysisRecord
	logger   *zap.Logger

	wg        sync.WaitGroup
	mu        sync.RWMutex
	closed    bool
	closeOnce sync.Once
	dropped   atomic.Int64
	sent      atomic.Int64
	failed    atomic.Int64
}

// NewEmitter starts the background worker. queueSize bounds how many
// records may be in flight before Emit starts dropping.
func NewEmitter(endpoint string, queueSize int, client *http.Client, logger *zap.Logger) *Emitter {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	if client == nil {
		client = http.DefaultClient
	}

	e := &Emitter{
		endpoint: endpoint,
		client:   client,
		queue:    make(chan models.AnalysisRecord, queueSize),
		logger:   logger,
	}

	e.wg.Add(1)
	go e.drain()

	return e
}

// Emit enqueues a record for transmission and returns immediately. It never
// reports transport errors to the caller: a full or closed queue drops the
// record with a diagnostic log, and send failures surface only on the
// diagnostic channel.
func (e *Emitter) Emit(record models.AnalysisRecord) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.closed {
		e.dropped.Add(1)
		e.logger.Warn("Telemetry emitter closed, dropping record",
			zap.String("record_id", record.ID))
		return
	}

	select {
	case e.queue <- record:
	default:
		e.dropped.Add(1)
		e.logger.Warn("Telemetry queue full, dropping record",
			zap.String("record_id", record.ID),
			zap.Int64("dropped_total", e.dropped.Load()))
	}
}

// Close stops accepting records, drains the queue, and waits for the worker.
func (e *Emitter) Close() {
	e.closeOnce.Do(func() {
		e.mu.Lock()
		e.closed = true
		close(e.queue)
		e.mu.Unlock()
	})
	e.wg.Wait()
}

// Dropped reports how many records were discarded because the queue was full.
func (e *Emitter) Dropped() int64 {
	return e.dropped.Load()
}

// Sent reports how many records were delivered with a 2xx response.
func (e *Emitter) Sent() int64 {
	return e.sent.Load()
}

func (e *Emitter) drain() {
	defer e.wg.Done()
	for record := range e.queue {
		if err := e.send(context.Background(), record); err != nil {
			e.failed.Add(1)
			e.logger.Warn("Telemetry transmission failed",
				zap.Error(err),
				zap.String("record_id", record.ID))
			continue
		}
		e.sent.Add(1)
	}
}

// send serializes the record into the flat form the log endpoint expects and
// POSTs it. Any non-2xx status is a failure.
func (e *Emitter) send(ctx context.Context, record models.AnalysisRecord) error {
	form, err := encodeForm(record)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("building log request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("posting log record: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("log endpoint returned status %d", resp.StatusCode)
	}
	return nil
}

// encodeForm flattens a record into string-typed form fields. Structured
// metadata travels as one JSON-encoded "meta" field.
func encodeForm(record models.AnalysisRecord) (url.Values, error) {
	form := url.Values{}
	form.Set("ts", strconv.FormatInt(record.Timestamp, 10))
	form.Set("review", models.TruncateReview(record.ReviewText))
	form.Set("sentiment", record.Sentiment)
	if record.ActionCode != "" {
		form.Set("action_taken", string(record.ActionCode))
	}

	meta, err := json.Marshal(record.Metadata)
	if err != nil {
		return nil, fmt.Errorf("encoding metadata: %w", err)
	}
	form.Set("meta", string(meta))

	return form, nil
}
