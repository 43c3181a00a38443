package catalog

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// fallbackName is shown when a row carries no name at all.
	fallbackName = "Unbekannt"

	statusInStock = "instock"
)

var colorSuffixRe = regexp.MustCompile(`\s+-\s+([A-Za-zäöüÄÖÜß0-9\s]+)$`)

// MapRowToProduct maps a raw product row onto the storefront view model.
// It never fails: malformed or absent fields degrade to empty values so a
// bad row renders as "data not available" instead of breaking the catalog.
func MapRowToProduct(row ProductRow) Product {
	parsed := parseImages(strValue(row.Images))

	mainImage := strValue(row.MainImage)
	if mainImage == "" && len(parsed) > 0 {
		mainImage = parsed[0]
	}
	images := composeImages(mainImage, parsed)

	price := float64(0)
	switch {
	case row.UVP != nil:
		price = *row.UVP
	case row.PriceB2B != nil:
		price = *row.PriceB2B
	}

	qty := 0
	if row.Quantity != nil {
		qty = *row.Quantity
	}
	inStock := qty > 0 || strings.ToLower(strValue(row.Status)) == statusInStock

	name := fallbackName
	if row.Name != nil {
		name = *row.Name
	}

	var shippingCost *float64
	if row.ShippingCost != nil {
		rounded := roundCurrency(*row.ShippingCost)
		shippingCost = &rounded
	}

	return Product{
		ID:           row.SKU,
		Name:         name,
		Description:  repairDoubledQuotes(strValue(row.Description)),
		Price:        roundCurrency(price),
		Image:        mainImage,
		Images:       images,
		Category:     strValue(row.Category),
		Manufacturer: strValue(row.Manufacturer),
		InStock:      inStock,
		ShippingTime: strValue(row.ShippingTime),
		ShippingCost: shippingCost,
		Color:        ParseColorFromName(name),
	}
}

// ParseColorFromName reads a trailing color phrase from a product name,
// e.g. "Elektro Kinderauto Mercedes - Grau" yields "Grau". Purely numeric
// suffixes and left/right orientation codes are not colors.
func ParseColorFromName(name string) string {
	match := colorSuffixRe.FindStringSubmatch(name)
	if match == nil {
		return ""
	}
	part := strings.TrimSpace(match[1])
	if part == "" {
		return ""
	}
	switch strings.ToLower(part) {
	case "l/r", "l", "r":
		return ""
	}
	if isDigitsOnly(part) {
		return ""
	}
	return part
}

// parseImages decodes the images column as a JSON array of strings. On a
// parse failure it retries once with doubled double-quotes collapsed, an
// artifact of CSV/spreadsheet export escaping. Anything still invalid is
// treated as no images.
func parseImages(raw string) []string {
	str := strings.TrimSpace(raw)
	if str == "" {
		return nil
	}
	if urls, ok := decodeImageArray(str); ok {
		return urls
	}
	if strings.Contains(str, `""`) {
		if urls, ok := decodeImageArray(strings.ReplaceAll(str, `""`, `"`)); ok {
			return urls
		}
	}
	return nil
}

func decodeImageArray(str string) ([]string, bool) {
	var entries []any
	if err := json.Unmarshal([]byte(str), &entries); err != nil {
		return nil, false
	}
	urls := make([]string, 0, len(entries))
	for _, entry := range entries {
		if url, ok := entry.(string); ok {
			urls = append(urls, url)
		}
	}
	return urls, true
}

// composeImages puts the primary image first and drops later duplicates
// of it, so images[0] always matches the primary when one exists.
func composeImages(mainImage string, parsed []string) []string {
	if mainImage == "" {
		if len(parsed) == 0 {
			return nil
		}
		return parsed
	}
	images := make([]string, 0, len(parsed)+1)
	images = append(images, mainImage)
	for _, url := range parsed {
		if url != mainImage {
			images = append(images, url)
		}
	}
	return images
}

// repairDoubledQuotes collapses "" into " so HTML attributes in
// descriptions survive the upstream export escaping.
func repairDoubledQuotes(html string) string {
	if html == "" {
		return ""
	}
	return strings.ReplaceAll(html, `""`, `"`)
}

// roundCurrency rounds to the nearest cent, ties away from zero.
func roundCurrency(value float64) float64 {
	rounded, _ := decimal.NewFromFloat(value).Round(2).Float64()
	return rounded
}

func isDigitsOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func strValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
