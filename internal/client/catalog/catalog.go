// Package catalog contains the stateless projections the storefront views
// run over server-fetched product collections: filtering and the featured
// carousel windowing.
package catalog

import (
	"strings"

	"github.com/gamestore/storefront/internal/models"
)

const (
	featuredCount    = 5
	carouselPageSize = 2
)

// Filter selects products by console, category, and search term. A console
// filter takes priority over a category filter; the search term composes
// with either.
type Filter struct {
	Console  string
	Category string
	Search   string
}

// Apply returns the products matching the filter, preserving order.
func (f Filter) Apply(products []models.Product) []models.Product {
	out := products

	if f.Console != "" {
		matched := make([]models.Product, 0, len(out))
		needle := strings.ToLower(f.Console)
		for _, p := range out {
			if strings.Contains(strings.ToLower(p.Console), needle) {
				matched = append(matched, p)
			}
		}
		out = matched
	} else if f.Category != "" {
		matched := make([]models.Product, 0, len(out))
		for _, p := range out {
			if strings.EqualFold(p.Category, f.Category) {
				matched = append(matched, p)
			}
		}
		out = matched
	}

	if f.Search != "" {
		matched := make([]models.Product, 0, len(out))
		needle := strings.ToLower(f.Search)
		for _, p := range out {
			if strings.Contains(strings.ToLower(p.Name), needle) {
				matched = append(matched, p)
			}
		}
		out = matched
	}

	return out
}

// Featured returns the first five products with relative image URLs
// resolved against the API host (the base URL minus its /api suffix).
func Featured(products []models.Product, apiBaseURL string) []models.Product {
	n := len(products)
	if n > featuredCount {
		n = featuredCount
	}

	host := strings.TrimSuffix(strings.TrimRight(apiBaseURL, "/"), "/api")
	out := make([]models.Product, n)
	for i, p := range products[:n] {
		if p.ImageURL != "" && !strings.HasPrefix(p.ImageURL, "http") {
			p.ImageURL = host + p.ImageURL
		}
		out[i] = p
	}
	return out
}

// Pages returns how many carousel pages n products occupy.
func Pages(n int) int {
	return (n + carouselPageSize - 1) / carouselPageSize
}

// VisiblePage returns the products shown on the given carousel page.
func VisiblePage(products []models.Product, page int) []models.Product {
	start := page * carouselPageSize
	if start < 0 || start >= len(products) {
		return nil
	}
	end := start + carouselPageSize
	if end > len(products) {
		end = len(products)
	}
	return products[start:end]
}

// CanGoPrev reports whether the carousel can move back from page.
func CanGoPrev(page int) bool {
	return page > 0
}

// CanGoNext reports whether the carousel can advance from page given the
// number of featured products.
func CanGoNext(page, total int) bool {
	return page < Pages(total)-1
}
