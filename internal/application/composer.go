package application

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/dibella/orderdesk/internal/domain"
)

// State is the lifecycle position of a Composer.
type State int

const (
	StateLoading State = iota
	StateReady
	StateSubmitting
	StateSaved
	StateSubmitError
	StateLoadFailed
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateSubmitting:
		return "submitting"
	case StateSaved:
		return "saved"
	case StateSubmitError:
		return "submit_error"
	case StateLoadFailed:
		return "load_failed"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Editable reports whether line items may be changed in this state.
func (s State) Editable() bool {
	return s == StateReady || s == StateSubmitError
}

// Mode tells whether a Composer builds a new order or edits a saved one.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "create"
}

// Snapshot is a read-only view of a Composer. Order and Products are copies.
type Snapshot struct {
	State          State
	Mode           Mode
	Order          domain.Order
	Progress       float64
	Products       []domain.Product
	ProductsLoaded bool
	SavedID        domain.OrderID
	// Err is the last surfaced load, validation or submit error.
	Err error
	// ProductsErr is set when the catalog could not be loaded.
	ProductsErr error
}

// Composer owns one in-progress order for one composition session. It keeps
// the total value and progress in step with the line items after every edit,
// validates before submitting and persists through the gateway.
//
// All methods are safe for concurrent use. The lock is never held across a
// gateway call; results that arrive after Close are discarded.
type Composer struct {
	gateway  domain.OrderGateway
	settings settings
	logger   *zap.Logger
	id       domain.OrderID

	lifetime context.Context
	cancel   context.CancelFunc

	mu             sync.Mutex
	state          State
	mode           Mode
	order          domain.Order
	catalog        domain.Catalog
	progress       float64
	productsLoaded bool
	// edited is set by the first edit; from then on the total is derived
	// from the catalog instead of taken from the server.
	edited         bool
	savedID        domain.OrderID
	err            error
	productsErr    error
}

// NewComposer starts a session for order id, or for a new order when id is
// zero. Edit sessions begin in StateLoading until LoadOrder completes; create
// sessions are Ready immediately with no line items.
func NewComposer(gw domain.OrderGateway, id domain.OrderID, opts ...Option) *Composer {
	return newComposer(gw, id, newSettings(opts))
}

func newComposer(gw domain.OrderGateway, id domain.OrderID, s settings) *Composer {
	lifetime, cancel := context.WithCancel(context.Background())
	c := &Composer{
		gateway:  gw,
		settings: s,
		logger:   s.logger.Named("composer").With(zap.Int64("order_id", int64(id))),
		id:       id,
		lifetime: lifetime,
		cancel:   cancel,
		order:    domain.Order{ID: id, LineItems: domain.LineItems{}},
		catalog:  domain.NewCatalog(nil),
	}
	if id == 0 {
		c.mode = ModeCreate
		c.state = StateReady
	} else {
		c.mode = ModeEdit
		c.state = StateLoading
	}
	return c
}

// Mount loads the order (edit mode) and the product catalog concurrently and
// waits for both. Only an order load failure is returned; a catalog failure
// is recorded in Snapshot().ProductsErr and leaves the order editable.
func (c *Composer) Mount(ctx context.Context) error {
	var (
		wg       sync.WaitGroup
		orderErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		orderErr = c.LoadOrder(ctx)
	}()
	go func() {
		defer wg.Done()
		_ = c.LoadProducts(ctx)
	}()
	wg.Wait()
	return orderErr
}

// LoadOrder fetches the order being edited. It is a no-op in create mode.
// On failure the composer moves to StateLoadFailed and stays there.
func (c *Composer) LoadOrder(ctx context.Context) error {
	if c.id == 0 {
		return nil
	}

	c.mu.Lock()
	if c.state == StateClosed {
		c.mu.Unlock()
		return domain.ErrClosed
	}
	if c.state != StateLoading {
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	callCtx, done := c.callContext(ctx)
	defer done()
	order, err := c.gateway.GetOrder(callCtx, c.id)
	if err == nil && order == nil {
		err = domain.ErrOrderNotFound
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateClosed {
		c.logger.Debug("discarding order load after close")
		return domain.ErrClosed
	}
	if err != nil {
		loadErr := &domain.LoadError{Resource: "order", ID: c.id, Err: err}
		c.state = StateLoadFailed
		c.err = loadErr
		c.logger.Warn("order load failed", zap.Error(err))
		return loadErr
	}

	c.order = order.Clone()
	c.order.ID = c.id
	if c.order.LineItems == nil {
		c.order.LineItems = domain.LineItems{}
	}
	// The fetched total stands until the first edit recomputes it.
	c.progress = c.settings.progress(c.order)
	c.state = StateReady
	c.logger.Debug("order loaded", zap.Int("line_items", len(c.order.LineItems)))
	return nil
}

// LoadProducts fetches the product catalog. Failure degrades the session to
// an empty catalog and is returned as a *domain.LoadError.
func (c *Composer) LoadProducts(ctx context.Context) error {
	c.mu.Lock()
	if c.state == StateClosed {
		c.mu.Unlock()
		return domain.ErrClosed
	}
	c.mu.Unlock()

	callCtx, done := c.callContext(ctx)
	defer done()
	products, err := fetchCatalog(callCtx, c.gateway, c.settings)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateClosed {
		c.logger.Debug("discarding catalog load after close")
		return domain.ErrClosed
	}
	c.productsLoaded = true
	if err != nil {
		c.catalog = domain.NewCatalog(nil)
		c.productsErr = err
		c.logger.Warn("catalog load failed", zap.Error(err))
		return err
	}
	c.catalog = domain.NewCatalog(products)
	c.productsErr = nil
	if c.edited {
		c.recompute()
	}
	return nil
}

// AddLineItem appends an empty line item.
func (c *Composer) AddLineItem() error {
	return c.edit(func(items *domain.LineItems) bool {
		items.Append()
		return true
	})
}

// UpdateLineItem changes one field of the line item at index. An index out
// of range is ignored.
func (c *Composer) UpdateLineItem(index int, field domain.Field, value string) error {
	return c.edit(func(items *domain.LineItems) bool {
		return items.Update(index, field, value)
	})
}

// RemoveLineItem deletes the line item at index. An index out of range is
// ignored.
func (c *Composer) RemoveLineItem(index int) error {
	return c.edit(func(items *domain.LineItems) bool {
		return items.Remove(index)
	})
}

func (c *Composer) edit(mutate func(*domain.LineItems) bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateClosed {
		return domain.ErrClosed
	}
	if !c.state.Editable() {
		return domain.ErrNotEditable
	}
	if !mutate(&c.order.LineItems) {
		return nil
	}

	c.state = StateReady
	c.err = nil
	c.edited = true
	c.recompute()
	return nil
}

// recompute derives the total and progress from the line items and the
// current catalog. Callers hold c.mu.
func (c *Composer) recompute() {
	c.order.TotalValue = domain.TotalValue(c.order.LineItems, c.catalog)
	c.progress = c.settings.progress(c.order)
}

// Submit validates the order and creates or updates it through the gateway.
// On success the composer is Saved, the order is released and the saved ID
// is returned; it is zero when the gateway did not echo one for a create.
// A validation failure leaves the composer Ready without touching the
// network. A gateway failure moves it to StateSubmitError with the order
// kept for a retry.
func (c *Composer) Submit(ctx context.Context) (domain.OrderID, error) {
	c.mu.Lock()
	switch {
	case c.state == StateSubmitting:
		c.mu.Unlock()
		return 0, domain.ErrSubmitInFlight
	case c.state == StateClosed:
		c.mu.Unlock()
		return 0, domain.ErrClosed
	case !c.state.Editable():
		c.mu.Unlock()
		return 0, domain.ErrNotEditable
	}

	if err := domain.ValidateLineItems(c.order.LineItems); err != nil {
		c.state = StateReady
		c.err = err
		c.mu.Unlock()
		return 0, err
	}

	order := c.order.Clone()
	c.state = StateSubmitting
	c.err = nil
	c.mu.Unlock()

	callCtx, done := c.callContext(ctx)
	defer done()

	op := "update"
	id := order.ID
	var err error
	if order.IsNew() {
		op = "create"
		id, err = c.gateway.CreateOrder(callCtx, order)
	} else {
		err = c.gateway.UpdateOrder(callCtx, order)
	}
	if err == nil {
		// A saved order changes stock, so the next session refetches.
		invalidateCatalog(c.settings)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateClosed {
		c.logger.Debug("discarding submit result after close", zap.Error(err))
		return 0, domain.ErrClosed
	}
	if err != nil {
		submitErr := &domain.SubmitError{Op: op, ID: order.ID, Err: err}
		c.state = StateSubmitError
		c.err = submitErr
		c.logger.Warn("order submit failed", zap.String("op", op), zap.Error(err))
		return 0, submitErr
	}

	c.state = StateSaved
	c.savedID = id
	c.order = domain.Order{LineItems: domain.LineItems{}}
	c.edited = false
	c.progress = 0
	c.logger.Info("order saved",
		zap.String("op", op),
		zap.Int64("saved_id", int64(id)),
		zap.Stringer("total_value", order.TotalValue),
	)
	return id, nil
}

// Close tears the session down. Pending gateway calls are cancelled and any
// result that still arrives is dropped. Close is idempotent.
func (c *Composer) Close() {
	c.mu.Lock()
	if c.state == StateClosed {
		c.mu.Unlock()
		return
	}
	c.state = StateClosed
	c.mu.Unlock()
	c.cancel()
}

// Snapshot returns the current read-only view.
func (c *Composer) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		State:          c.state,
		Mode:           c.mode,
		Order:          c.order.Clone(),
		Progress:       c.progress,
		Products:       c.catalog.Products(),
		ProductsLoaded: c.productsLoaded,
		SavedID:        c.savedID,
		Err:            c.err,
		ProductsErr:    c.productsErr,
	}
}

// Preview reports what Submit would send and whether it would pass
// validation, without submitting.
func (c *Composer) Preview() *Preview {
	c.mu.Lock()
	defer c.mu.Unlock()
	return buildPreview(c.order.Clone(), c.progress, c.catalog)
}

// callContext derives a context for one gateway call that is also cancelled
// when the composer closes.
func (c *Composer) callContext(ctx context.Context) (context.Context, func()) {
	callCtx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(c.lifetime, cancel)
	return callCtx, func() {
		stop()
		cancel()
	}
}
