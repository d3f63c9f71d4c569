// Package printing drives the generate-or-reuse print action: it opens
// a viewer surface immediately, reuses the cached archive URL when one
// exists and otherwise lazily materializes the document, guarding each
// record against concurrent duplicate generations.
package printing

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/bmscold/slipdesk/internal/domain/models"
	"github.com/bmscold/slipdesk/internal/service/slips"
)

// Sentinel failures surfaced to the transport layer.
var (
	ErrRecordNotFound  = errors.New("slip record not found")
	ErrPrintInProgress = errors.New("print already in progress for this record")
)

// generationTimeout bounds one lazy render/materialize/upload cycle.
const generationTimeout = 2 * time.Minute

// Viewer is one open viewer surface awaiting a document.
type Viewer interface {
	// Location is the address of the opened surface, handed back to the
	// caller so it can present the surface to the user.
	Location() string
	// Redirect points the surface at the resolved document URL.
	Redirect(url string)
	// Fail shows a terminal error on the surface.
	Fail(message string)
}

// Delivery opens viewer surfaces. A web placeholder page and a native
// file-open dialog are both valid implementations.
type Delivery interface {
	Open(recordID int64) (Viewer, error)
}

// Generator produces and archives the document artifact for a record.
// *slips.Service satisfies it.
type Generator interface {
	GenerateArchiveURL(ctx context.Context, rec models.SlipRecord) (string, error)
}

// Orchestrator is the top-level print controller.
type Orchestrator struct {
	store     *slips.Store
	generator Generator
	delivery  Delivery
	logger    *zap.Logger

	mu       sync.Mutex
	inFlight map[int64]struct{}
	wg       sync.WaitGroup
}

// NewOrchestrator wires a print orchestrator.
func NewOrchestrator(store *slips.Store, generator Generator, delivery Delivery, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		store:     store,
		generator: generator,
		delivery:  delivery,
		logger:    logger,
		inFlight:  make(map[int64]struct{}),
	}
}

// Print resolves the document for one record and steers a viewer
// surface to it, returning the surface's location. The surface opens
// before any generation work starts; if it cannot open, the whole
// operation aborts and nothing else runs. A second Print for the same
// record while one is outstanding fails with ErrPrintInProgress; other
// records proceed independently.
func (o *Orchestrator) Print(id int64) (string, error) {
	rec, ok := o.store.Get(id)
	if !ok {
		return "", ErrRecordNotFound
	}

	if !o.acquire(id) {
		return "", ErrPrintInProgress
	}

	viewer, err := o.delivery.Open(id)
	if err != nil {
		o.release(id)
		return "", err
	}

	if rec.ArchiveURL != "" {
		// Reuse path: the renderer, materializer and archive gateway are
		// never touched.
		viewer.Redirect(rec.ArchiveURL)
		o.release(id)
		return viewer.Location(), nil
	}

	o.wg.Add(1)
	go o.generate(rec, viewer)
	return viewer.Location(), nil
}

// generate runs the lazy materialization cycle off the request path.
func (o *Orchestrator) generate(rec models.SlipRecord, viewer Viewer) {
	defer o.wg.Done()
	defer o.release(rec.ID)

	ctx, cancel := context.WithTimeout(context.Background(), generationTimeout)
	defer cancel()

	url, err := o.generator.GenerateArchiveURL(ctx, rec)
	if err != nil {
		o.logger.Error("lazy document generation failed",
			zap.Int64("record_id", rec.ID),
			zap.String("slip_no", rec.SlipNumber),
			zap.Error(err))
		viewer.Fail("Could not generate the document. Please try again.")
		return
	}

	// Read-path fix-up on the local copy only; the ledger picks the URL
	// up the next time this record flows through the save pipeline.
	o.store.PatchArchiveURL(rec.ID, url)
	viewer.Redirect(url)

	o.logger.Info("document generated lazily",
		zap.Int64("record_id", rec.ID),
		zap.String("slip_no", rec.SlipNumber),
		zap.String("url", url))
}

// Wait blocks until all in-flight generations finish. Used on shutdown
// and by tests.
func (o *Orchestrator) Wait() {
	o.wg.Wait()
}

func (o *Orchestrator) acquire(id int64) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, busy := o.inFlight[id]; busy {
		return false
	}
	o.inFlight[id] = struct{}{}
	return true
}

func (o *Orchestrator) release(id int64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.inFlight, id)
}
