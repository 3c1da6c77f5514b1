package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"seektam-backend/internal/components/assert"
	"seektam-backend/internal/components/telemetry"
	"seektam-backend/internal/db"
	"seektam-backend/lib/textutil"

	"github.com/antzucaro/matchr"
)

// ErrNotFound is returned by the read queries when nothing has the
// requested name.
var ErrNotFound = errors.New("catalog: not found")

const (
	report_store_food    = "store.food"
	report_store_aliment = "store.aliment"
	report_store_link    = "store.link"
)

// Store writes foods, aliments and their links to the database. Statements
// are not grouped in transactions so whatever was written before a failure
// stays written.
type Store struct {
	db     *sql.DB
	qry    *db.Queries
	tel    telemetry.API
	policy Policy
}

func NewStore(database *sql.DB, policy Policy, tel telemetry.API) Store {
	assert.NotNil(database)
	assert.NotNil(tel)

	return Store{
		db:     database,
		qry:    db.New(database),
		tel:    telemetry.NewScopedAPI("catalog_store", tel),
		policy: policy,
	}
}

// Policy is what the store does with aliments that are already stored.
func (s Store) Policy() Policy {
	return s.policy
}

// EnsureSchema creates the tables that don't exist yet.
func (s Store) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, db.Schema)
	return err
}

// Lookup is an AlimentLookup backed by the database.
func (s Store) Lookup(ctx context.Context, name string) (Aliment, bool, error) {
	row, err := s.qry.GetAlimentByName(ctx, name)
	if errors.Is(err, sql.ErrNoRows) {
		return Aliment{}, false, nil
	}
	if err != nil {
		return Aliment{}, false, err
	}
	return alimentFromRow(row), true, nil
}

// Persist writes the food and its aliments if they aren't stored yet and
// links them, added tells if the food itself was new.
func (s Store) Persist(ctx context.Context, food Food, aliments []Aliment) (added bool, err error) {
	foodID, added, err := s.persistFood(ctx, food)
	if err != nil {
		return false, err
	}

	for _, aliment := range aliments {
		alimentID, err := s.persistAliment(ctx, aliment)
		if err != nil {
			return added, err
		}
		s.link(ctx, foodID, food.Name, alimentID, aliment.Name)
	}

	return added, nil
}

func (s Store) persistFood(ctx context.Context, food Food) (int64, bool, error) {
	existing, err := s.qry.GetFoodByName(ctx, food.Name)
	if err == nil {
		s.tel.ReportDebug("food already in database", food.Name)
		return existing.ID, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, false, fmt.Errorf("get food '%s': %w", food.Name, err)
	}

	id, err := s.qry.CreateFood(ctx, db.CreateFoodParams{
		Name:          food.Name,
		CategoryBig:   food.CategoryBig,
		CategorySmall: food.CategorySmall,
	})
	if err != nil {
		s.tel.ReportBroken(report_store_food, err, food.Name)
		return 0, false, fmt.Errorf("create food '%s': %w", food.Name, err)
	}
	s.tel.ReportInfo("food added", food.Name)
	return id, true, nil
}

func (s Store) persistAliment(ctx context.Context, aliment Aliment) (int64, error) {
	existing, err := s.qry.GetAlimentByName(ctx, aliment.Name)
	if err == nil {
		if s.policy != PolicyOverwrite {
			s.tel.ReportDebug("aliment already in database", aliment.Name)
			return existing.ID, nil
		}
		err = s.qry.UpdateAlimentNutrients(ctx, updateAlimentParams(existing.ID, aliment.Nutrients))
		if err != nil {
			s.tel.ReportBroken(report_store_aliment, err, aliment.Name)
			return 0, fmt.Errorf("update aliment '%s': %w", aliment.Name, err)
		}
		s.tel.ReportInfo("aliment updated", aliment.Name)
		return existing.ID, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("get aliment '%s': %w", aliment.Name, err)
	}

	id, err := s.qry.CreateAliment(ctx, createAlimentParams(aliment))
	if err != nil {
		s.tel.ReportBroken(report_store_aliment, err, aliment.Name)
		return 0, fmt.Errorf("create aliment '%s': %w", aliment.Name, err)
	}
	s.tel.ReportInfo("aliment added", aliment.Name)
	return id, nil
}

// link failures are reported and otherwise ignored, the rest of the food
// is still worth keeping.
func (s Store) link(ctx context.Context, foodID int64, food string, alimentID int64, aliment string) {
	params := db.HasFoodAlimentParams{FoodID: foodID, AlimentID: alimentID}
	exists, err := s.qry.HasFoodAliment(ctx, params)
	if err != nil {
		s.tel.ReportBroken(report_store_link, err, food, aliment)
		return
	}
	if exists {
		s.tel.ReportDebug("food aliment link already in database", food, aliment)
		return
	}

	err = s.qry.CreateFoodAliment(ctx, db.CreateFoodAlimentParams{
		FoodID:    foodID,
		AlimentID: alimentID,
	})
	if err != nil {
		s.tel.ReportBroken(report_store_link, err, food, aliment)
		return
	}
	s.tel.ReportInfo("food aliment link added", food, aliment)
}

type ListFoodsParams struct {
	CategoryBig   string
	CategorySmall string
	// Limit of 0 lists everything.
	Limit  int
	Offset int
}

func (s Store) Foods(ctx context.Context, params ListFoodsParams) ([]Food, error) {
	limit := int64(params.Limit)
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.qry.ListFoods(ctx, db.ListFoodsParams{
		CategoryBig:   params.CategoryBig,
		CategorySmall: params.CategorySmall,
		Limit:         limit,
		Offset:        int64(params.Offset),
	})
	if err != nil {
		return nil, err
	}
	foods := make([]Food, len(rows))
	for i, row := range rows {
		foods[i] = foodFromRow(row)
	}
	return foods, nil
}

// Food returns the food with the given name along with its aliments.
func (s Store) Food(ctx context.Context, name string) (Food, error) {
	row, err := s.qry.GetFoodByName(ctx, name)
	if errors.Is(err, sql.ErrNoRows) {
		return Food{}, fmt.Errorf("%w: food '%s'", ErrNotFound, name)
	}
	if err != nil {
		return Food{}, err
	}
	food := foodFromRow(row)

	aliments, err := s.qry.GetFoodAliments(ctx, row.ID)
	if err != nil {
		return Food{}, err
	}
	food.Aliments = make([]Aliment, len(aliments))
	for i, a := range aliments {
		food.Aliments[i] = alimentFromRow(a)
	}
	return food, nil
}

func (s Store) Aliment(ctx context.Context, name string) (Aliment, error) {
	aliment, found, err := s.Lookup(ctx, name)
	if err != nil {
		return Aliment{}, err
	}
	if !found {
		return Aliment{}, fmt.Errorf("%w: aliment '%s'", ErrNotFound, name)
	}
	return aliment, nil
}

type SearchResult struct {
	Name       string  `json:"name"`
	Similarity float64 `json:"similarity"`
}

// Search ranks food names by their similarity to the query, ignoring case
// and whitespace.
func (s Store) Search(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	names, err := s.qry.ListFoodNames(ctx)
	if err != nil {
		return nil, err
	}

	target := textutil.NormalizeName(query)
	var results []SearchResult
	for _, name := range names {
		similarity := matchr.JaroWinkler(target, textutil.NormalizeName(name), false)
		if similarity <= 0 {
			continue
		}
		results = append(results, SearchResult{
			Name:       name,
			Similarity: similarity,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

type Stats struct {
	Foods    int64 `json:"foods"`
	Aliments int64 `json:"aliments"`
	Links    int64 `json:"links"`
}

// Stats counts the rows of every table.
func (s Store) Stats(ctx context.Context) (Stats, error) {
	foods, err := s.qry.CountFoods(ctx)
	if err != nil {
		return Stats{}, err
	}
	aliments, err := s.qry.CountAliments(ctx)
	if err != nil {
		return Stats{}, err
	}
	links, err := s.qry.CountFoodAliments(ctx)
	if err != nil {
		return Stats{}, err
	}
	return Stats{Foods: foods, Aliments: aliments, Links: links}, nil
}
