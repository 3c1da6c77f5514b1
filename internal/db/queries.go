package db

import (
	"context"
	"database/sql"
)

type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	PrepareContext(context.Context, string) (*sql.Stmt, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

const alimentColumns = `id, name, energy, moisture, protein, fat, nonfibrous, fiber, ash,
calcium, phosphorus, iron, sodium, potassium, retinol_equivalent, retinol,
betacarotene, thiamin, riboflavin, niacin, ascorbic_acid`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAliment(row rowScanner) (KoreafoodAliment, error) {
	var i KoreafoodAliment
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Energy,
		&i.Moisture,
		&i.Protein,
		&i.Fat,
		&i.Nonfibrous,
		&i.Fiber,
		&i.Ash,
		&i.Calcium,
		&i.Phosphorus,
		&i.Iron,
		&i.Sodium,
		&i.Potassium,
		&i.RetinolEquivalent,
		&i.Retinol,
		&i.Betacarotene,
		&i.Thiamin,
		&i.Riboflavin,
		&i.Niacin,
		&i.AscorbicAcid,
	)
	return i, err
}

const getFoodByName = `-- name: GetFoodByName :one
select id, name, category_big, category_small from koreafood_foods
where name = ?
`

func (q *Queries) GetFoodByName(ctx context.Context, name string) (KoreafoodFood, error) {
	row := q.db.QueryRowContext(ctx, getFoodByName, name)
	var i KoreafoodFood
	err := row.Scan(&i.ID, &i.Name, &i.CategoryBig, &i.CategorySmall)
	return i, err
}

const createFood = `-- name: CreateFood :one
insert into koreafood_foods(name, category_big, category_small)
values (?, ?, ?)
returning id
`

type CreateFoodParams struct {
	Name          string
	CategoryBig   string
	CategorySmall string
}

func (q *Queries) CreateFood(ctx context.Context, arg CreateFoodParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, createFood, arg.Name, arg.CategoryBig, arg.CategorySmall)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const listFoods = `-- name: ListFoods :many
select id, name, category_big, category_small from koreafood_foods
where (?1 = '' or category_big = ?1)
and (?2 = '' or category_small = ?2)
order by id
limit ?3 offset ?4
`

type ListFoodsParams struct {
	CategoryBig   string
	CategorySmall string
	Limit         int64
	Offset        int64
}

func (q *Queries) ListFoods(ctx context.Context, arg ListFoodsParams) ([]KoreafoodFood, error) {
	rows, err := q.db.QueryContext(ctx, listFoods,
		arg.CategoryBig,
		arg.CategorySmall,
		arg.Limit,
		arg.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []KoreafoodFood
	for rows.Next() {
		var i KoreafoodFood
		if err := rows.Scan(&i.ID, &i.Name, &i.CategoryBig, &i.CategorySmall); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listFoodNames = `-- name: ListFoodNames :many
select name from koreafood_foods
order by id
`

func (q *Queries) ListFoodNames(ctx context.Context) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, listFoodNames)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		items = append(items, name)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const countFoods = `-- name: CountFoods :one
select count(*) from koreafood_foods
`

func (q *Queries) CountFoods(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countFoods)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const getAlimentByName = `-- name: GetAlimentByName :one
select ` + alimentColumns + ` from koreafood_aliments
where name = ?
`

func (q *Queries) GetAlimentByName(ctx context.Context, name string) (KoreafoodAliment, error) {
	row := q.db.QueryRowContext(ctx, getAlimentByName, name)
	return scanAliment(row)
}

const countAliments = `-- name: CountAliments :one
select count(*) from koreafood_aliments
`

func (q *Queries) CountAliments(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countAliments)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const createAliment = `-- name: CreateAliment :one
insert into koreafood_aliments(
    name, energy, moisture, protein, fat, nonfibrous, fiber, ash,
    calcium, phosphorus, iron, sodium, potassium, retinol_equivalent, retinol,
    betacarotene, thiamin, riboflavin, niacin, ascorbic_acid
) values (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
returning id
`

type CreateAlimentParams struct {
	Name              string
	Energy            float64
	Moisture          float64
	Protein           float64
	Fat               float64
	Nonfibrous        float64
	Fiber             float64
	Ash               float64
	Calcium           float64
	Phosphorus        float64
	Iron              float64
	Sodium            float64
	Potassium         float64
	RetinolEquivalent float64
	Retinol           float64
	Betacarotene      float64
	Thiamin           float64
	Riboflavin        float64
	Niacin            float64
	AscorbicAcid      float64
}

func (q *Queries) CreateAliment(ctx context.Context, arg CreateAlimentParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, createAliment,
		arg.Name,
		arg.Energy,
		arg.Moisture,
		arg.Protein,
		arg.Fat,
		arg.Nonfibrous,
		arg.Fiber,
		arg.Ash,
		arg.Calcium,
		arg.Phosphorus,
		arg.Iron,
		arg.Sodium,
		arg.Potassium,
		arg.RetinolEquivalent,
		arg.Retinol,
		arg.Betacarotene,
		arg.Thiamin,
		arg.Riboflavin,
		arg.Niacin,
		arg.AscorbicAcid,
	)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const updateAlimentNutrients = `-- name: UpdateAlimentNutrients :exec
update koreafood_aliments set
    energy = ?, moisture = ?, protein = ?, fat = ?, nonfibrous = ?, fiber = ?, ash = ?,
    calcium = ?, phosphorus = ?, iron = ?, sodium = ?, potassium = ?,
    retinol_equivalent = ?, retinol = ?, betacarotene = ?, thiamin = ?,
    riboflavin = ?, niacin = ?, ascorbic_acid = ?
where id = ?
`

type UpdateAlimentNutrientsParams struct {
	ID                int64
	Energy            float64
	Moisture          float64
	Protein           float64
	Fat               float64
	Nonfibrous        float64
	Fiber             float64
	Ash               float64
	Calcium           float64
	Phosphorus        float64
	Iron              float64
	Sodium            float64
	Potassium         float64
	RetinolEquivalent float64
	Retinol           float64
	Betacarotene      float64
	Thiamin           float64
	Riboflavin        float64
	Niacin            float64
	AscorbicAcid      float64
}

func (q *Queries) UpdateAlimentNutrients(ctx context.Context, arg UpdateAlimentNutrientsParams) error {
	_, err := q.db.ExecContext(ctx, updateAlimentNutrients,
		arg.Energy,
		arg.Moisture,
		arg.Protein,
		arg.Fat,
		arg.Nonfibrous,
		arg.Fiber,
		arg.Ash,
		arg.Calcium,
		arg.Phosphorus,
		arg.Iron,
		arg.Sodium,
		arg.Potassium,
		arg.RetinolEquivalent,
		arg.Retinol,
		arg.Betacarotene,
		arg.Thiamin,
		arg.Riboflavin,
		arg.Niacin,
		arg.AscorbicAcid,
		arg.ID,
	)
	return err
}

const hasFoodAliment = `-- name: HasFoodAliment :one
select exists(
    select 1 from koreafood_food_aliment_rels
    where food_id = ? and aliment_id = ?
)
`

type HasFoodAlimentParams struct {
	FoodID    int64
	AlimentID int64
}

func (q *Queries) HasFoodAliment(ctx context.Context, arg HasFoodAlimentParams) (bool, error) {
	row := q.db.QueryRowContext(ctx, hasFoodAliment, arg.FoodID, arg.AlimentID)
	var exists bool
	err := row.Scan(&exists)
	return exists, err
}

const createFoodAliment = `-- name: CreateFoodAliment :exec
insert into koreafood_food_aliment_rels(food_id, aliment_id)
values (?, ?)
`

type CreateFoodAlimentParams struct {
	FoodID    int64
	AlimentID int64
}

func (q *Queries) CreateFoodAliment(ctx context.Context, arg CreateFoodAlimentParams) error {
	_, err := q.db.ExecContext(ctx, createFoodAliment, arg.FoodID, arg.AlimentID)
	return err
}

const countFoodAliments = `-- name: CountFoodAliments :one
select count(*) from koreafood_food_aliment_rels
`

func (q *Queries) CountFoodAliments(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countFoodAliments)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const getFoodAliments = `-- name: GetFoodAliments :many
select a.id, a.name, a.energy, a.moisture, a.protein, a.fat, a.nonfibrous, a.fiber, a.ash,
    a.calcium, a.phosphorus, a.iron, a.sodium, a.potassium, a.retinol_equivalent, a.retinol,
    a.betacarotene, a.thiamin, a.riboflavin, a.niacin, a.ascorbic_acid
from koreafood_aliments a
inner join koreafood_food_aliment_rels r on r.aliment_id = a.id
where r.food_id = ?
order by a.id
`

func (q *Queries) GetFoodAliments(ctx context.Context, foodID int64) ([]KoreafoodAliment, error) {
	rows, err := q.db.QueryContext(ctx, getFoodAliments, foodID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []KoreafoodAliment
	for rows.Next() {
		i, err := scanAliment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
