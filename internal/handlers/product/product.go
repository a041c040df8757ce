package product

import (
	"log"
	"net/http"
	"time"

	"wellnexus_back_end/internal/database"
	"wellnexus_back_end/internal/models"
	"wellnexus_back_end/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

const productColumns = `product_id, name, description, category, price, stock, image_urls, is_active, created_at, updated_at`

// GET /api/products
func GetProducts(c *gin.Context) {
	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection failed"})
		return
	}

	iter := session.Query(`SELECT ` + productColumns + ` FROM products`).Iter()
	products := scanProducts(iter)
	if err := iter.Close(); err != nil {
		log.Println("❌ Product list failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Product lookup failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

// GET /api/products/:id
func GetProductByID(c *gin.Context) {
	id, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection failed"})
		return
	}

	var p models.Product
	if err := session.Query(`SELECT `+productColumns+` FROM products WHERE product_id = ?`, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.Category, &p.Price, &p.Stock,
		&p.ImageURLs, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, p)
}

// GET /api/products/category/:category
func GetProductsByCategory(c *gin.Context) {
	category := c.Param("category")

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection failed"})
		return
	}

	iter := session.Query(`SELECT `+productColumns+` FROM products
	                       WHERE category = ? ALLOW FILTERING`, category).Iter()
	products := scanProducts(iter)
	if err := iter.Close(); err != nil {
		log.Println("❌ Category lookup failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Product lookup failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products, "category": category})
}

// GET /api/products/available
//
// Storefront view: active products with stock on hand.
func GetAvailableProducts(c *gin.Context) {
	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection failed"})
		return
	}

	iter := session.Query(`SELECT ` + productColumns + ` FROM products`).Iter()
	all := scanProducts(iter)
	if err := iter.Close(); err != nil {
		log.Println("❌ Product list failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Product lookup failed"})
		return
	}

	available := []models.Product{}
	for _, p := range all {
		if p.IsActive && p.Stock > 0 {
			available = append(available, p)
		}
	}

	c.JSON(http.StatusOK, gin.H{"products": available})
}

// 🟢 POST /api/products  (admin)
func CreateProduct(c *gin.Context) {
	var input struct {
		Name        string   `json:"name" binding:"required"`
		Description string   `json:"description"`
		Category    string   `json:"category" binding:"required"`
		Price       float64  `json:"price" binding:"required"`
		Stock       int      `json:"stock"`
		ImageURLs   []string `json:"image_urls"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}
	if input.Price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be positive"})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection failed"})
		return
	}

	now := time.Now()
	p := models.Product{
		ID:          gocql.TimeUUID(),
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
		Price:       input.Price,
		Stock:       input.Stock,
		ImageURLs:   input.ImageURLs,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := session.Query(`INSERT INTO products (`+productColumns+`)
	                         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Description, p.Category, p.Price, p.Stock,
		p.ImageURLs, p.IsActive, p.CreatedAt, p.UpdatedAt,
	).Exec(); err != nil {
		log.Println("❌ Product insert failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Product creation failed"})
		return
	}

	go service.IndexProduct(p)

	log.Println("✅ Product created:", p.Name)
	c.JSON(http.StatusCreated, p)
}

// 🔍 GET /api/products/search?q=...
func SearchProducts(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing search query"})
		return
	}

	results, err := service.SearchProducts(query)
	if err != nil {
		log.Println("❌ Product search failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results, "count": len(results)})
}

func scanProducts(iter *gocql.Iter) []models.Product {
	products := []models.Product{}
	var p models.Product
	for iter.Scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.Price, &p.Stock,
		&p.ImageURLs, &p.IsActive, &p.CreatedAt, &p.UpdatedAt) {
		products = append(products, p)
		p = models.Product{}
	}
	return products
}
