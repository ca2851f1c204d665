package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"strings"

	"tokoadmin/internal/media"
	"tokoadmin/internal/models"
	"tokoadmin/internal/repositories"
	"tokoadmin/internal/services"
	"tokoadmin/pkg/logging"
	"tokoadmin/pkg/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Inline messages shown by the product views.
const (
	MsgLoadProductFailed   = "Failed to load product"
	MsgSaveProductFailed   = "Failed to save product"
	MsgDeleteProductFailed = "Failed to delete product"
)

// Multipart field names of the product form.
const (
	fieldMainImage         = "mainImage"
	fieldAdditionalImages  = "additionalImages"
	fieldExistingImages    = "existingImages"
	fieldExistingMainImage = "existingMainImage"
)

// ProductRow is a product list entry with its row actions.
type ProductRow struct {
	models.Product
	EditURL  string `json:"edit_url"`
	Deleting bool   `json:"deleting"`
}

// productRequest is the JSON body of a create or update. Price may be a
// number or a string; both are coerced.
type productRequest struct {
	Name             string          `json:"name"`
	Price            json.RawMessage `json:"price"`
	Description      string          `json:"description"`
	CategoryID       string          `json:"category_id"`
	MainImage        string          `json:"main_image"`
	AdditionalImages []string        `json:"additional_images"`
}

type deleteRequest struct {
	Products []models.Product `json:"products"`
}

// ProductHandler handles the product list and the product form.
type ProductHandler struct {
	productService *services.ProductService
	categories     *CategoryHandler
	encoder        media.Encoder
	log            *zap.SugaredLogger
}

// NewProductHandler creates a new ProductHandler. A nil encoder keeps
// uploads inline as data URLs.
func NewProductHandler(productService *services.ProductService, categoryService *services.CategoryService, encoder media.Encoder, log *zap.SugaredLogger) *ProductHandler {
	if encoder == nil {
		encoder = media.DataURLEncoder{}
	}
	return &ProductHandler{
		productService: productService,
		categories:     NewCategoryHandler(categoryService),
		encoder:        encoder,
		log:            logging.OrNop(log),
	}
}

// RegisterRoutes registers the product routes.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleList)
	productRoutes.Get("/form", h.HandleCreateForm)
	productRoutes.Post("/", h.HandleCreate)
	productRoutes.Get("/:id", h.HandleGet)
	productRoutes.Get("/:id/form", h.HandleEditForm)
	productRoutes.Put("/:id", h.HandleUpdate)
	productRoutes.Delete("/:id", h.HandleDelete)
}

// HandleList returns the product list filtered by ?search.
func (h *ProductHandler) HandleList(c *fiber.Ctx) error {
	state := services.AdminStateFromQuery(queryValues(c))
	return c.JSON(h.listState(c.UserContext(), c.Query("search"), state.Refresh))
}

// HandleGet returns a single product.
func (h *ProductHandler) HandleGet(c *fiber.Ctx) error {
	id := c.Params("id")
	product, err := h.productService.GetProductByID(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product not found",
				"error":   err.Error(),
			})
		}
		h.log.Errorf("Error fetching product %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": MsgLoadProductFailed,
			"error":   err.Error(),
		})
	}
	return c.JSON(product)
}

// HandleCreateForm returns a blank form and the category selector.
func (h *ProductHandler) HandleCreateForm(c *fiber.Ctx) error {
	state := services.AdminStateFromQuery(queryValues(c)).Navigate(services.ViewCreateProduct)
	return c.JSON(h.formState(c.UserContext(), state))
}

// HandleEditForm returns the stored product flattened into form fields.
// A load failure is reported inline with a blank form.
func (h *ProductHandler) HandleEditForm(c *fiber.Ctx) error {
	query := queryValues(c)
	state := services.AdminStateFromQuery(query).Edit(c.Params("id"), query.Get("name"))
	return c.JSON(h.formState(c.UserContext(), state))
}

// HandleCreate saves a new product.
func (h *ProductHandler) HandleCreate(c *fiber.Ctx) error {
	return h.save(c, "")
}

// HandleUpdate saves changes to an existing product.
func (h *ProductHandler) HandleUpdate(c *fiber.Ctx) error {
	return h.save(c, c.Params("id"))
}

// HandleDelete deletes a product once the request is confirmed. The
// remaining list is computed from the snapshot held before the delete.
func (h *ProductHandler) HandleDelete(c *fiber.Ctx) error {
	id := c.Params("id")
	if c.Query("confirm") != "true" {
		return c.Status(fiber.StatusPreconditionRequired).JSON(fiber.Map{
			"message": "Are you sure you want to delete this product?",
			"confirm": c.Path() + "?confirm=true",
		})
	}

	var req deleteRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid request body",
				"error":   err.Error(),
			})
		}
	}
	snapshot := req.Products
	if snapshot == nil {
		snapshot = h.productService.ListProducts(c.UserContext(), c.Query("search"))
	}

	if err := h.productService.DeleteProduct(c.UserContext(), id); err != nil {
		if errors.Is(err, services.ErrDeleteInProgress) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Delete already in progress",
				"error":   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message":  MsgDeleteProductFailed,
			"error":    err.Error(),
			"products": snapshot,
		})
	}

	return c.JSON(fiber.Map{
		"message":  "Product deleted successfully",
		"id":       id,
		"products": services.RemoveFromList(snapshot, id),
	})
}

func (h *ProductHandler) save(c *fiber.Ctx, id string) error {
	form, ferr := h.readForm(c)
	if ferr != nil {
		return c.Status(ferr.status).JSON(ferr.body)
	}
	form.ID = id

	product, err := h.productService.SaveProduct(c.UserContext(), form)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": services.RequiredFieldsMessage,
				"error":   err.Error(),
				"form":    form,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": MsgSaveProductFailed,
			"error":   err.Error(),
			"form":    form,
		})
	}

	next := services.AdminStateFromQuery(queryValues(c)).Complete()
	status := fiber.StatusOK
	if id == "" {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{
		"message": "Product saved successfully",
		"product": product,
		"next":    next.URL(AdminBasePath),
		"refresh": next.Refresh,
	})
}

// formError is a rejected submission and the response describing it.
type formError struct {
	status int
	body   fiber.Map
}

func badRequest(message string, err error) *formError {
	return &formError{status: fiber.StatusBadRequest, body: fiber.Map{
		"message": message,
		"error":   err.Error(),
	}}
}

// readForm decodes a multipart or JSON submission.
func (h *ProductHandler) readForm(c *fiber.Ctx) (models.ProductForm, *formError) {
	if strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm) {
		return h.readMultipart(c)
	}

	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return models.ProductForm{}, badRequest("Invalid request body", err)
	}
	form := models.ProductForm{
		Name:             req.Name,
		Price:            coercePrice(req.Price),
		Description:      req.Description,
		CategoryID:       req.CategoryID,
		MainImage:        req.MainImage,
		AdditionalImages: req.AdditionalImages,
	}
	if form.AdditionalImages == nil {
		form.AdditionalImages = []string{}
	}
	return form, nil
}

func (h *ProductHandler) readMultipart(c *fiber.Ctx) (models.ProductForm, *formError) {
	mf, err := c.MultipartForm()
	if err != nil {
		return models.ProductForm{}, badRequest("Invalid multipart form", err)
	}

	form := models.ProductForm{
		Name:             firstValue(mf, "name"),
		Price:            services.ParsePrice(firstValue(mf, "price")),
		Description:      firstValue(mf, "description"),
		CategoryID:       firstValue(mf, "category_id"),
		MainImage:        firstValue(mf, fieldExistingMainImage),
		AdditionalImages: []string{},
	}
	for _, key := range []string{fieldExistingImages, fieldExistingImages + "[]"} {
		for _, img := range mf.Value[key] {
			if img != "" {
				form.AdditionalImages = append(form.AdditionalImages, img)
			}
		}
	}

	ctx := c.UserContext()
	if files := mf.File[fieldMainImage]; len(files) > 0 {
		ref, err := h.encode(ctx, files[0])
		if err != nil {
			return form, h.imageFailed(err, form)
		}
		form.MainImage = ref
	}
	for _, fh := range mf.File[fieldAdditionalImages] {
		ref, err := h.encode(ctx, fh)
		if err != nil {
			return form, h.imageFailed(err, form)
		}
		form.AdditionalImages = append(form.AdditionalImages, ref)
	}
	return form, nil
}

func (h *ProductHandler) encode(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	return h.encoder.Encode(ctx, f, storage.PutInput{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Size:        fh.Size,
	})
}

func (h *ProductHandler) imageFailed(err error, form models.ProductForm) *formError {
	h.log.Errorf("Error encoding product image: %v", err)
	ferr := badRequest("Failed to process image", err)
	ferr.body["form"] = form
	return ferr
}

func (h *ProductHandler) listState(ctx context.Context, search string, refresh int) fiber.Map {
	products := h.productService.ListProducts(ctx, search)
	rows := make([]ProductRow, 0, len(products))
	for _, p := range products {
		rows = append(rows, ProductRow{
			Product:  p,
			EditURL:  services.AdminState{Refresh: refresh}.Edit(p.ID, p.Name).URL(AdminBasePath),
			Deleting: h.productService.IsDeleting(p.ID),
		})
	}
	return fiber.Map{
		"search":   search,
		"refresh":  refresh,
		"total":    len(rows),
		"products": rows,
	}
}

func (h *ProductHandler) formState(ctx context.Context, state services.AdminState) fiber.Map {
	out := fiber.Map{
		"categories": h.categories.options(ctx),
		"cancel":     state.Cancel().URL(AdminBasePath),
	}

	if state.View != services.ViewEditProduct {
		out["mode"] = "create"
		out["form"] = models.ProductForm{AdditionalImages: []string{}}
		out["submit"] = fiber.Map{"method": fiber.MethodPost, "action": AdminBasePath + "/products"}
		return out
	}

	out["mode"] = "edit"
	out["submit"] = fiber.Map{"method": fiber.MethodPut, "action": AdminBasePath + "/products/" + state.EditingID}
	form, err := h.productService.LoadForm(ctx, state.EditingID)
	if err != nil {
		out["error"] = MsgLoadProductFailed
	}
	out["form"] = form
	return out
}

func firstValue(mf *multipart.Form, key string) string {
	if values := mf.Value[key]; len(values) > 0 {
		return values[0]
	}
	return ""
}

// coercePrice accepts a JSON number, a numeric string or anything else,
// which becomes 0.
func coercePrice(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return services.ParsePrice(s)
	}
	return services.ParsePrice(string(raw))
}
