package inventory

import "github.com/gofiber/fiber/v2"

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature wraps an inventory service as a loadable feature.
func NewFeature(service *Service, origin string) *Feature {
	return &Feature{service: service, handler: NewHandler(service, origin)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "inventory"
}

// Register mounts the feature's routes.
func (f *Feature) Register(router fiber.Router) error {
	f.handler.RegisterRoutes(router)
	return nil
}
