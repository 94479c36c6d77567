package inventory

import (
	"errors"
	"strconv"
	"sync"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"stock-sync/core/logger"
	"stock-sync/feature/inventory/models"
)

// Handler exposes the inventory service over HTTP.
//
// The batch jobs (drain, refresh, import, backfill) share one non-blocking
// lock: the engines assume exclusive access to their tables, so a second job
// request while one is running is answered with 409 instead of queueing.
type Handler struct {
	service *Service
	origin  string
	jobMu   sync.Mutex
}

// NewHandler creates a new HTTP handler. The origin tags ledger rows created
// through the API.
func NewHandler(service *Service, origin string) *Handler {
	if origin == "" {
		origin = "api"
	}
	return &Handler{service: service, origin: origin}
}

// RegisterRoutes registers the inventory routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/inventory")
	group.Post("/tx", h.HandleCreateTransaction)
	group.Get("/products/:sku", h.HandleGetProduct)
	group.Post("/sync/drain", h.HandleDrain)
	group.Post("/catalog/refresh", h.HandleRefresh)
	group.Post("/catalog/import/:id", h.HandleImport)
	group.Post("/backfill", h.HandleBackfill)
}

// HandleCreateTransaction records a stock movement and enqueues its sync record.
func (h *Handler) HandleCreateTransaction(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req models.TxRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	if req.SKU == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "missing sku",
		})
	}

	result, err := h.service.CreateTransaction(c.Context(), req, h.origin)
	if err != nil {
		l.Error("Transaction failed", zap.String("sku", req.SKU), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(result)
}

// HandleGetProduct returns one product row keyed by its table header.
func (h *Handler) HandleGetProduct(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	sku := c.Params("sku")

	product, err := h.service.GetProductBySKU(c.Context(), sku)
	if err != nil {
		if errors.Is(err, ErrSKUNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		l.Error("Product lookup failed", zap.String("sku", sku), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(product)
}

// HandleDrain runs one drain pass over the sync queue.
func (h *Handler) HandleDrain(c *fiber.Ctx) error {
	return h.runJob(c, "drain", func(c *fiber.Ctx) (any, error) {
		return h.service.DrainQueue(c.Context())
	})
}

// HandleRefresh rebuilds the product table from the full remote catalog.
func (h *Handler) HandleRefresh(c *fiber.Ctx) error {
	return h.runJob(c, "refresh", func(c *fiber.Ctx) (any, error) {
		return h.service.RefreshCatalog(c.Context())
	})
}

// HandleImport merges a single remote product into the product table.
func (h *Handler) HandleImport(c *fiber.Ctx) error {
	productID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || productID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid product id",
		})
	}
	return h.runJob(c, "import", func(c *fiber.Ctx) (any, error) {
		return h.service.ImportProduct(c.Context(), productID)
	})
}

// HandleBackfill resolves remote identities for rows missing a product_id.
func (h *Handler) HandleBackfill(c *fiber.Ctx) error {
	return h.runJob(c, "backfill", func(c *fiber.Ctx) (any, error) {
		return h.service.BackfillIdentities(c.Context())
	})
}

func (h *Handler) runJob(c *fiber.Ctx, name string, job func(*fiber.Ctx) (any, error)) error {
	l := logger.WithRayID(h.service.logger, c)

	if !h.jobMu.TryLock() {
		l.Warn("Job rejected, another job is running", zap.String("job", name))
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "another job is running",
		})
	}
	defer h.jobMu.Unlock()

	result, err := job(c)
	if err != nil {
		l.Error("Job failed", zap.String("job", name), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(result)
}
