package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"seektam-backend/internal/scrapers/koreafood"
	"seektam-backend/lib/textutil"
)

// ErrValues is wrapped by errors about the raw values of an ingredient.
var ErrValues = errors.New("catalog: malformed ingredient values")

// Policy decides what happens to an aliment that is already stored.
type Policy string

const (
	// PolicyReuse keeps the nutrients of the first food that brought the
	// aliment in.
	PolicyReuse Policy = "reuse"
	// PolicyOverwrite replaces stored nutrients with the latest scraped ones.
	PolicyOverwrite Policy = "overwrite"
)

func ParsePolicy(text string) (Policy, error) {
	switch Policy(text) {
	case "", PolicyReuse:
		return PolicyReuse, nil
	case PolicyOverwrite:
		return PolicyOverwrite, nil
	}
	return "", fmt.Errorf("unknown aliment policy '%s', expected '%s' or '%s'", text, PolicyReuse, PolicyOverwrite)
}

// AlimentLookup finds a stored aliment by its exact name.
type AlimentLookup func(ctx context.Context, name string) (Aliment, bool, error)

type Normalizer struct {
	Policy Policy
}

// ToPersistable turns a scraped record into a food and its aliments, in
// ingredient order.
func (n Normalizer) ToPersistable(ctx context.Context, rec koreafood.FoodRecord, lookup AlimentLookup) (Food, []Aliment, error) {
	food := Food{
		Name:          rec.Name,
		CategoryBig:   rec.Big,
		CategorySmall: rec.Small,
	}

	aliments := make([]Aliment, 0, len(rec.Aliment))
	for _, ingredient := range rec.Aliment {
		if n.Policy != PolicyOverwrite && lookup != nil {
			existing, found, err := lookup(ctx, ingredient.Name)
			if err != nil {
				return Food{}, nil, fmt.Errorf("lookup aliment '%s': %w", ingredient.Name, err)
			}
			if found {
				aliments = append(aliments, existing)
				continue
			}
		}

		aliment, err := NewAliment(ingredient.Name, ingredient.Values)
		if err != nil {
			return Food{}, nil, fmt.Errorf("food '%s': %w", rec.Name, err)
		}
		aliments = append(aliments, aliment)
	}

	return food, aliments, nil
}

func parseValue(text string) (float64, error) {
	return strconv.ParseFloat(textutil.CleanNumber(text), 64)
}

// columnsFor picks the nutrient layout of a row holding count values. Rows
// wide enough for every column use NutrientColumns and trailing cells are
// ignored, a row of exactly 1+16 values uses ShortNutrientColumns.
func columnsFor(count int) ([]NutrientColumn, bool) {
	switch {
	case count >= 1+len(NutrientColumns):
		return NutrientColumns, true
	case count == 1+len(ShortNutrientColumns):
		return ShortNutrientColumns, true
	}
	return nil, false
}

// NewAliment builds an aliment from the raw values of a detail table row,
// the weight followed by the nutrient columns. Nutrients are divided by
// the weight, a blank or zero weight counts as 1 gram.
func NewAliment(name string, values []string) (Aliment, error) {
	columns, ok := columnsFor(len(values))
	if !ok {
		return Aliment{}, fmt.Errorf(
			"%w: aliment '%s' has %d values, expected %d or at least %d",
			ErrValues, name, len(values),
			1+len(ShortNutrientColumns), 1+len(NutrientColumns),
		)
	}

	weight := 1.0
	if textutil.CleanNumber(values[0]) != "" {
		parsed, err := parseValue(values[0])
		if err != nil {
			return Aliment{}, fmt.Errorf("%w: aliment '%s' weight: %w", ErrValues, name, err)
		}
		if parsed != 0 {
			weight = parsed
		}
	}

	aliment := Aliment{Name: name}
	for i, column := range columns {
		value, err := parseValue(values[i+1])
		if err != nil {
			return Aliment{}, fmt.Errorf("%w: aliment '%s' %s: %w", ErrValues, name, column.Name, err)
		}
		*column.Field(&aliment.Nutrients) = value / weight
	}
	return aliment, nil
}
