package adminController

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/silluthedon/Zerotreat/backend"
	catalogController "github.com/silluthedon/Zerotreat/controllers/catalog"
	"github.com/silluthedon/Zerotreat/models"
)

// BucketProductImages is the public bucket product photos are uploaded to.
const BucketProductImages = "product-images"

// resolveImage picks the image URL for a product edit. A file upload wins
// over the URL field: the file is pushed to blob storage and its public URL
// substituted. Without a file the URL field is used as-is.
func resolveImage(c *gin.Context, blobs backend.BlobStore) (string, error) {
	file, header, err := c.Request.FormFile("image_file")
	if err != nil {
		// No file selected, fall back to the direct URL field.
		return strings.TrimSpace(c.PostForm("image")), nil
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	filename := fmt.Sprintf("%d_%s%s", time.Now().UnixMilli(), uuid.NewString(), ext)
	contentType := header.Header.Get("Content-Type")

	if err := blobs.Upload(c.Request.Context(), BucketProductImages, filename, contentType, file); err != nil {
		return "", err
	}
	return blobs.PublicURL(BucketProductImages, filename), nil
}

func parsePrice(raw string) (int, bool) {
	price, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || price <= 0 {
		return 0, false
	}
	return price, true
}

// CreateProduct adds a new product from the multipart admin form.
func CreateProduct(store backend.RowStore, blobs backend.BlobStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := strings.TrimSpace(c.PostForm("name"))
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "পণ্যের নাম লিখুন।"})
			return
		}
		price, ok := parsePrice(c.PostForm("price"))
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "মূল্য একটি ধনাত্মক সংখ্যা হতে হবে।"})
			return
		}

		image, err := resolveImage(c, blobs)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "ছবি আপলোড করতে ত্রুটি হয়েছে।"})
			return
		}

		product := models.Product{
			Name:        name,
			Features:    strings.TrimSpace(c.PostForm("features")),
			Calories:    strings.TrimSpace(c.PostForm("calories")),
			Price:       price,
			Image:       image,
			Description: strings.TrimSpace(c.PostForm("description")),
			Status:      models.ProductAvailable,
		}
		if err := store.Insert(c.Request.Context(), catalogController.TableProducts, []models.Product{product}); err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "পণ্য যোগ করতে ত্রুটি হয়েছে।"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "পণ্য সফলভাবে যোগ করা হয়েছে!"})
	}
}

// UpdateProduct edits the full field set of one product, with the same image
// rule as CreateProduct.
func UpdateProduct(store backend.RowStore, blobs backend.BlobStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID := c.Param("id")
		name := strings.TrimSpace(c.PostForm("name"))
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "পণ্যের নাম লিখুন।"})
			return
		}
		price, ok := parsePrice(c.PostForm("price"))
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "মূল্য একটি ধনাত্মক সংখ্যা হতে হবে।"})
			return
		}

		image, err := resolveImage(c, blobs)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "ছবি আপলোড করতে ত্রুটি হয়েছে।"})
			return
		}

		patch := map[string]any{
			"name":        name,
			"features":    strings.TrimSpace(c.PostForm("features")),
			"calories":    strings.TrimSpace(c.PostForm("calories")),
			"price":       price,
			"description": strings.TrimSpace(c.PostForm("description")),
		}
		if image != "" {
			patch["image"] = image
		}

		err = store.Update(c.Request.Context(), catalogController.TableProducts, patch,
			backend.Filter{Column: "id", Value: productID})
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "পণ্য আপডেট করতে ত্রুটি হয়েছে।"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "পণ্য সফলভাবে আপডেট করা হয়েছে!"})
	}
}

type UpdateProductStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateProductStatus flips one product between available, out_of_stock and
// buy_one_get_one.
func UpdateProductStatus(store backend.RowStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID := c.Param("id")
		var req UpdateProductStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "অনুরোধটি বোঝা যায়নি।"})
			return
		}
		status, err := models.MapProductStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "অবৈধ পণ্যের স্ট্যাটাস।"})
			return
		}

		err = store.Update(c.Request.Context(), catalogController.TableProducts,
			map[string]any{"status": string(status)},
			backend.Filter{Column: "id", Value: productID},
		)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "স্ট্যাটাস আপডেট করতে ত্রুটি হয়েছে।"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "পণ্যের স্ট্যাটাস সফলভাবে আপডেট করা হয়েছে!", "id": productID, "status": status})
	}
}
