package catalog

import "strings"

// ProductURL builds the detail-page path with the name in the slug,
// e.g. /produkt/porsche-911-ruf--ET5810. Falls back to the bare SKU path
// when the name yields no usable slug.
func ProductURL(p Product) string {
	nameSlug := CategoryToSlug(StripLicenseMarker(p.Name))
	if nameSlug == "" {
		return "/produkt/" + p.ID
	}
	return "/produkt/" + nameSlug + "--" + p.ID
}

// ExtractProductIDFromSlug reads the SKU out of a detail-page slug.
// New-style slugs are <name>--<sku>; old-style slugs are the bare SKU and
// still resolve.
func ExtractProductIDFromSlug(slug string) string {
	if !strings.Contains(slug, "--") {
		return slug
	}
	parts := strings.Split(slug, "--")
	if id := parts[len(parts)-1]; id != "" {
		return id
	}
	return slug
}
