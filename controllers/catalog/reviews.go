package catalogController

import (
	"math"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/silluthedon/Zerotreat/backend"
	"github.com/silluthedon/Zerotreat/models"
)

type SubmitReviewRequest struct {
	Name   string `json:"name"`
	Review string `json:"review"`
	Rating int    `json:"rating"`
}

// AverageRating is the running average over all reviews, one decimal.
func AverageRating(reviews []models.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	avg := float64(sum) / float64(len(reviews))
	return math.Round(avg*10) / 10
}

// ValidateReview checks a testimonial before any network call.
func ValidateReview(req SubmitReviewRequest) string {
	if req.Name == "" {
		return "আপনার নাম লিখুন।"
	}
	if req.Review == "" {
		return "আপনার মতামত লিখুন।"
	}
	if utf8.RuneCountInString(req.Review) > models.MaxReviewLength {
		return "মতামত ৫০০ অক্ষরের মধ্যে লিখুন।"
	}
	if req.Rating < 1 || req.Rating > 5 {
		return "রেটিং ১ থেকে ৫ এর মধ্যে দিন।"
	}
	return ""
}

// GetReviews serves the testimonials section: newest first plus the average.
func GetReviews(store backend.RowStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var reviews []models.Review
		err := backend.From(store, TableReviews).
			Select("id", "name", "review", "rating", "created_at").
			Order("created_at", false).
			Get(c.Request.Context(), &reviews)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "রিভিউ লোড করতে ত্রুটি হয়েছে।"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"reviews": reviews,
			"average": AverageRating(reviews),
			"count":   len(reviews),
		})
	}
}

// SubmitReview handles the public review form.
func SubmitReview(store backend.RowStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SubmitReviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "অনুরোধটি বোঝা যায়নি।"})
			return
		}
		if msg := ValidateReview(req); msg != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": msg})
			return
		}
		row := models.Review{
			Name:      req.Name,
			Review:    req.Review,
			Rating:    req.Rating,
			CreatedAt: time.Now().UTC(),
		}
		if err := store.Insert(c.Request.Context(), TableReviews, []models.Review{row}); err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "রিভিউ জমা দিতে ত্রুটি হয়েছে।"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "আপনার মতামতের জন্য ধন্যবাদ!"})
	}
}
