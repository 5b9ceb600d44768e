// Package worker provides background processing for large PDF operations.
//
// Go Pattern: A buffered channel as the job queue, N worker goroutines
// reading from it, handlers submitting into it. Most merges and extracts
// finish in well under a second and run synchronously in the handler; the
// pool exists for the multi-hundred-megabyte jobs a client doesn't want to
// hold a request open for. Results land in a scratch directory and are
// fetched via the operation's download endpoint.
package worker

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/Shimizu-Technology/pagedeck-api/internal/database"
	"github.com/Shimizu-Technology/pagedeck-api/internal/models"
	"github.com/Shimizu-Technology/pagedeck-api/internal/services/pdfops"
)

// Job is one queued PDF operation. The payload fields mirror the three
// operation types: Files for merge, Data+Pages for extract, Data+Groups
// for split. The job owns its byte slices — the originating session may be
// gone by the time a worker runs, and that must not matter.
type Job struct {
	OperationID string
	Type        models.OperationType
	SourceName  string
	Files       [][]byte
	Data        []byte
	Pages       []int
	Groups      [][]int
}

// Pool manages the worker goroutines.
type Pool struct {
	jobs       chan Job
	workers    int
	db         *database.DB
	scratchDir string

	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

// NewPool creates a new worker pool writing results under scratchDir.
func NewPool(workers, queueSize int, db *database.DB, scratchDir string) *Pool {
	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{
		jobs:       make(chan Job, queueSize),
		workers:    workers,
		db:         db,
		scratchDir: scratchDir,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Start launches the worker goroutines.
func (p *Pool) Start() {
	log.Printf("🚀 Starting %d background workers", p.workers)
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
}

// Stop gracefully shuts down all workers, draining queued jobs first.
func (p *Pool) Stop() {
	log.Println("⏹️  Stopping workers...")
	p.cancel()
	close(p.jobs)
	p.wg.Wait()
	log.Println("✅ All workers stopped")
}

// WorkerCount reports the pool size, for the health endpoint.
func (p *Pool) WorkerCount() int {
	return p.workers
}

// Submit adds a job to the queue.
// Returns an error if the queue is full (non-blocking, so a flooded queue
// surfaces as a 503 instead of a hung request).
func (p *Pool) Submit(job Job) error {
	select {
	case p.jobs <- job:
		log.Printf("📥 Job queued: op=%s type=%s", job.OperationID, job.Type)
		return nil
	default:
		return fmt.Errorf("job queue is full (%d jobs pending)", cap(p.jobs))
	}
}

// worker is the main loop of a single worker goroutine.
func (p *Pool) worker(id int) {
	defer p.wg.Done()

	log.Printf("👷 Worker %d started", id)

	for job := range p.jobs {
		// Check if we should stop
		select {
		case <-p.ctx.Done():
			log.Printf("👷 Worker %d shutting down", id)
			return
		default:
		}

		log.Printf("👷 Worker %d processing op=%s type=%s", id, job.OperationID, job.Type)
		p.process(job)
	}

	log.Printf("👷 Worker %d stopped", id)
}

// process runs one job and records the outcome on its operation row.
func (p *Pool) process(job Job) {
	ctx := p.ctx

	op, err := p.db.GetOperation(ctx, job.OperationID)
	if err != nil {
		log.Printf("❌ Worker: operation %s vanished: %v", job.OperationID, err)
		return
	}

	op.Status = models.StatusProcessing
	if err := p.db.UpdateOperation(ctx, op); err != nil {
		log.Printf("⚠️  Worker: failed to mark op %s processing: %v", op.ID, err)
	}

	output, ext, outputPages, runErr := p.run(job)
	if runErr != nil {
		op.Status = models.StatusFailed
		op.ErrorMessage = runErr.Error()
		if err := p.db.UpdateOperation(ctx, op); err != nil {
			log.Printf("❌ Worker: failed to record failure for op %s: %v", op.ID, err)
		}
		log.Printf("❌ Worker: op %s failed: %v", op.ID, runErr)
		return
	}

	resultPath := filepath.Join(p.scratchDir, fmt.Sprintf("pagedeck_op_%s%s", op.ID, ext))
	if err := os.WriteFile(resultPath, output, 0o600); err != nil {
		op.Status = models.StatusFailed
		op.ErrorMessage = "failed to store result: " + err.Error()
		p.db.UpdateOperation(ctx, op)
		log.Printf("❌ Worker: op %s result write failed: %v", op.ID, err)
		return
	}

	op.Status = models.StatusCompleted
	op.OutputPages = outputPages
	op.ResultPath = &resultPath
	if err := p.db.UpdateOperation(ctx, op); err != nil {
		log.Printf("❌ Worker: failed to complete op %s: %v", op.ID, err)
		return
	}
	log.Printf("✅ Worker: op %s completed (%d output pages)", op.ID, outputPages)
}

// run dispatches to the PDF engine and returns the output bytes, the file
// extension for the result, and how many pages it holds.
func (p *Pool) run(job Job) ([]byte, string, int, error) {
	switch job.Type {
	case models.OpMerge:
		out, err := pdfops.Merge(job.Files)
		if err != nil {
			return nil, "", 0, err
		}
		pages, err := pdfops.PageCount(out)
		if err != nil {
			// The merge succeeded; a miscounted result is not worth failing.
			pages = 0
		}
		return out, ".pdf", pages, nil

	case models.OpExtract:
		out, err := pdfops.ExtractPages(job.Data, job.Pages)
		if err != nil {
			return nil, "", 0, err
		}
		return out, ".pdf", len(job.Pages), nil

	case models.OpSplit:
		out, err := pdfops.SplitToZip(job.Data, job.Groups, job.SourceName)
		if err != nil {
			return nil, "", 0, err
		}
		total := 0
		for _, g := range job.Groups {
			total += len(g)
		}
		return out, ".zip", total, nil

	default:
		return nil, "", 0, fmt.Errorf("unknown job type: %s", job.Type)
	}
}
