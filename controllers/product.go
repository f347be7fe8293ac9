package controllers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"vlady-store/models"
	"vlady-store/store"
)

// ProductController serves the catalog. Reads are public; mutation is
// behind the admin gate.
type ProductController struct {
	products *store.ProductStore
	validate *validator.Validate
	log      *slog.Logger
}

// NewProductController creates a ProductController.
func NewProductController(products *store.ProductStore, validate *validator.Validate, log *slog.Logger) *ProductController {
	return &ProductController{products: products, validate: validate, log: log}
}

// GetProducts returns all products, optionally filtered by category.
func (pc *ProductController) GetProducts(w http.ResponseWriter, r *http.Request) {
	products, err := pc.products.Find(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		respondError(w, pc.log, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

// GetProductByID returns a single product.
func (pc *ProductController) GetProductByID(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		respondErrorMsg(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	product, err := pc.products.FindByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		respondErrorMsg(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		respondError(w, pc.log, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

type productRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Price       float64  `json:"price" validate:"required,gt=0"`
	Category    string   `json:"category" validate:"required"`
	Images      []string `json:"images"`
	Videos      []string `json:"videos"`
	Stock       int      `json:"stock" validate:"gte=0"`
	Featured    bool     `json:"featured"`
}

// CreateProduct adds a catalog item. Admin only.
func (pc *ProductController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	req, ok := pc.decode(w, r)
	if !ok {
		return
	}

	product := pc.toModel(req)
	if err := pc.products.Create(r.Context(), product); err != nil {
		respondError(w, pc.log, err)
		return
	}
	respondJSON(w, http.StatusCreated, product)
}

// UpdateProduct rewrites a catalog item. Admin only.
func (pc *ProductController) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		respondErrorMsg(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	req, ok := pc.decode(w, r)
	if !ok {
		return
	}

	product := pc.toModel(req)
	product.ID = id
	if err := pc.products.Update(r.Context(), product); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondErrorMsg(w, http.StatusNotFound, "Product not found")
			return
		}
		respondError(w, pc.log, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

// DeleteProduct removes a catalog item. Admin only.
func (pc *ProductController) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		respondErrorMsg(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	if err := pc.products.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondErrorMsg(w, http.StatusNotFound, "Product not found")
			return
		}
		respondError(w, pc.log, err)
		return
	}
	respondMessage(w, http.StatusOK, "Product deleted")
}

func (pc *ProductController) decode(w http.ResponseWriter, r *http.Request) (productRequest, bool) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErrorMsg(w, http.StatusBadRequest, "Invalid input")
		return req, false
	}
	if err := pc.validate.Struct(req); err != nil {
		respondErrorMsg(w, http.StatusBadRequest, "Invalid input")
		return req, false
	}
	return req, true
}

func (pc *ProductController) toModel(req productRequest) *models.Product {
	return &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Images:      req.Images,
		Videos:      req.Videos,
		Stock:       req.Stock,
		Featured:    req.Featured,
	}
}
