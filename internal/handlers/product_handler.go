package handlers

import (
	"beautyshop/internal/middleware"
	"beautyshop/internal/models"
	"beautyshop/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, validate *validator.Validate) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validate,
	}
}

// RegisterRoutes registers the product routes. router must already enforce
// authentication.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Post("/", middleware.ValidateBody[models.ProductInput](h.validate), h.HandleCreateProduct)
	productRoutes.Patch("/:id", middleware.ValidateBody[models.ProductInput](h.validate), h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// HandleListProducts returns one page of the caller's products.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	query := services.ListQuery{
		Page:     c.QueryInt("page", services.DefaultPage),
		PageSize: c.QueryInt("pageSize", services.DefaultPageSize),
		Category: c.Query("category"),
		Gender:   c.Query("gender"),
		Name:     c.Query("name"),
		Sort:     c.Query("sort"),
		Order:    c.Query("order"),
	}

	page, err := h.service.List(c.UserContext(), middleware.UserID(c), query)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(page)
}

// HandleGetProductByID returns one of the caller's products.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	product, err := h.service.GetProductByID(c.UserContext(), middleware.UserID(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(product)
}

// HandleCreateProduct creates a product owned by the caller.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	input, ok := middleware.Payload[models.ProductInput](c)
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if _, err := h.service.CreateProduct(c.UserContext(), middleware.UserID(c), input); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Product added successfully",
	})
}

// HandleUpdateProduct replaces the fields of one of the caller's products.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	input, ok := middleware.Payload[models.ProductInput](c)
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if _, err := h.service.UpdateProduct(c.UserContext(), middleware.UserID(c), c.Params("id"), input); err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Product updated successfully",
	})
}

// HandleDeleteProduct deletes one of the caller's products.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	if err := h.service.DeleteProduct(c.UserContext(), middleware.UserID(c), c.Params("id")); err != nil {
		return err
	}
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"message": "Product deleted successfully",
	})
}
