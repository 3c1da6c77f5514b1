package koreafood

import "errors"

// ErrParse is wrapped by every error caused by markup that doesn't look
// like what the scraper expects.
var ErrParse = errors.New("koreafood: unexpected markup")

// Categories is the two level category a food is listed under.
type Categories struct {
	Big   string
	Small string
}

// ListingItem is a single food on a listing page.
type ListingItem struct {
	Categories
	Name string
	// Code is the opaque item code the detail page is requested with.
	Code string
}

// Ingredient is a row of a detail table, Values holds the weight followed
// by every nutrient column, as raw cell text.
type Ingredient struct {
	Name   string
	Values []string
}

// Ingredients keeps ingredient rows in the order they were first seen.
type Ingredients []Ingredient

// Values returns the raw values of the ingredient with the given name.
func (ing Ingredients) Values(name string) ([]string, bool) {
	for _, i := range ing {
		if i.Name == name {
			return i.Values, true
		}
	}
	return nil, false
}

// FoodRecord is a fully scraped food.
type FoodRecord struct {
	Categories
	Name    string
	Code    string
	Aliment Ingredients
}
