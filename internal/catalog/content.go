package catalog

import (
	"regexp"
	"strings"
)

// Category is a named storefront category with its URL slug.
type Category struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// CategoryOrder fixes the display order of categories for the homepage
// tiles and the sidebar.
var CategoryOrder = []Category{
	{Name: "Kinderfahrzeuge", Slug: "kinderfahrzeuge"},
	{Name: "RC Panzer und Militär", Slug: "rc-panzer-und-militaer"},
	{Name: "Baufahrzeuge", Slug: "baufahrzeuge"},
	{Name: "Elektro Kinderfahrzeuge (Oldtimer)", Slug: "elektro-kinderfahrzeuge-oldtimer"},
	{Name: "Elektro Kinderfahrzeuge (mit Lizenz)", Slug: "elektro-kinderfahrzeuge-mit-lizenz"},
	{Name: "Polizei/Feuerwehr", Slug: "polizei-feuerwehr"},
	{Name: "Ersatzteile-Zubehör", Slug: "ersatzteile-zubehoer"},
	{Name: "Ersatzteile", Slug: "ersatzteile"},
	{Name: "XXL Fahrzeuge", Slug: "xxl-fahrzeuge"},
	{Name: "Elektro Kindermotorräder", Slug: "elektro-kindermotorraeder"},
	{Name: "E-Scooters und Quads", Slug: "e-scooters-und-quads"},
	{Name: "2 Sitzer Coco", Slug: "2-sitzer-coco"},
	{Name: "Outdoor Spielzeuge", Slug: "outdoor-spielzeuge"},
	{Name: "RC Modellbau", Slug: "rc-modellbau"},
	{Name: "Elektronik", Slug: "elektronik"},
	{Name: "Tierzubehör", Slug: "tierzubehoer"},
	{Name: "Kleine E-Scooter", Slug: "kleine-e-scooter"},
	{Name: "E-Scooters und E-Bikes", Slug: "e-scooters-und-e-bikes"},
	{Name: "Coco Bikes - Chopper", Slug: "coco-bikes-chopper"},
	{Name: "E-Scooter Dezent", Slug: "e-scooter-dezent"},
}

var slugStripRe = regexp.MustCompile(`[^a-z0-9-]`)

var slugReplacer = strings.NewReplacer(
	"/", "-",
	"ä", "ae",
	"ö", "oe",
	"ü", "ue",
	"ß", "ss",
)

// CategoryToSlug derives the URL slug for a category name, transliterating
// German umlauts the way the shop URLs expect.
func CategoryToSlug(name string) string {
	slug := strings.ToLower(name)
	slug = strings.Join(strings.Fields(slug), "-")
	slug = slugReplacer.Replace(slug)
	return slugStripRe.ReplaceAllString(slug, "")
}
