package catalog

import "seektam-backend/internal/db"

// Nutrients holds the nutrient content of an aliment per gram.
type Nutrients struct {
	Energy            float64 `json:"energy"`
	Moisture          float64 `json:"moisture"`
	Protein           float64 `json:"protein"`
	Fat               float64 `json:"fat"`
	Nonfibrous        float64 `json:"nonfibrous"`
	Fiber             float64 `json:"fiber"`
	Ash               float64 `json:"ash"`
	Calcium           float64 `json:"calcium"`
	Phosphorus        float64 `json:"phosphorus"`
	Iron              float64 `json:"iron"`
	Sodium            float64 `json:"sodium"`
	Potassium         float64 `json:"potassium"`
	RetinolEquivalent float64 `json:"retinol_equivalent"`
	Retinol           float64 `json:"retinol"`
	Betacarotene      float64 `json:"betacarotene"`
	Thiamin           float64 `json:"thiamin"`
	Riboflavin        float64 `json:"riboflavin"`
	Niacin            float64 `json:"niacin"`
	AscorbicAcid      float64 `json:"ascorbic_acid"`
}

// NutrientColumn binds a nutrient column of the detail table to its field.
type NutrientColumn struct {
	Name  string
	Field func(n *Nutrients) *float64
}

// NutrientColumns lists the nutrient columns in the order the detail table
// has them, right after the weight column.
var NutrientColumns = []NutrientColumn{
	{"energy", func(n *Nutrients) *float64 { return &n.Energy }},
	{"moisture", func(n *Nutrients) *float64 { return &n.Moisture }},
	{"protein", func(n *Nutrients) *float64 { return &n.Protein }},
	{"fat", func(n *Nutrients) *float64 { return &n.Fat }},
	{"nonfibrous", func(n *Nutrients) *float64 { return &n.Nonfibrous }},
	{"fiber", func(n *Nutrients) *float64 { return &n.Fiber }},
	{"ash", func(n *Nutrients) *float64 { return &n.Ash }},
	{"calcium", func(n *Nutrients) *float64 { return &n.Calcium }},
	{"phosphorus", func(n *Nutrients) *float64 { return &n.Phosphorus }},
	{"iron", func(n *Nutrients) *float64 { return &n.Iron }},
	{"sodium", func(n *Nutrients) *float64 { return &n.Sodium }},
	{"potassium", func(n *Nutrients) *float64 { return &n.Potassium }},
	{"retinol_equivalent", func(n *Nutrients) *float64 { return &n.RetinolEquivalent }},
	{"retinol", func(n *Nutrients) *float64 { return &n.Retinol }},
	{"betacarotene", func(n *Nutrients) *float64 { return &n.Betacarotene }},
	{"thiamin", func(n *Nutrients) *float64 { return &n.Thiamin }},
	{"riboflavin", func(n *Nutrients) *float64 { return &n.Riboflavin }},
	{"niacin", func(n *Nutrients) *float64 { return &n.Niacin }},
	{"ascorbic_acid", func(n *Nutrients) *float64 { return &n.AscorbicAcid }},
}

// ShortNutrientColumns is the older sixteen column layout of the detail
// table, which has no phosphorus, iron or sodium.
var ShortNutrientColumns = shortColumns(NutrientColumns, "phosphorus", "iron", "sodium")

func shortColumns(columns []NutrientColumn, without ...string) []NutrientColumn {
	var out []NutrientColumn
outer:
	for _, column := range columns {
		for _, name := range without {
			if column.Name == name {
				continue outer
			}
		}
		out = append(out, column)
	}
	return out
}

// Food is a dish of the catalog, Aliments is only filled by Store.Food.
type Food struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	CategoryBig   string    `json:"category_big"`
	CategorySmall string    `json:"category_small"`
	Aliments      []Aliment `json:"aliments,omitempty"`
}

// Aliment is an ingredient with its nutrients per gram. ID is 0 until it
// has been persisted.
type Aliment struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Nutrients
}

func foodFromRow(row db.KoreafoodFood) Food {
	return Food{
		ID:            row.ID,
		Name:          row.Name,
		CategoryBig:   row.CategoryBig,
		CategorySmall: row.CategorySmall,
	}
}

func alimentFromRow(row db.KoreafoodAliment) Aliment {
	return Aliment{
		ID:   row.ID,
		Name: row.Name,
		Nutrients: Nutrients{
			Energy:            row.Energy,
			Moisture:          row.Moisture,
			Protein:           row.Protein,
			Fat:               row.Fat,
			Nonfibrous:        row.Nonfibrous,
			Fiber:             row.Fiber,
			Ash:               row.Ash,
			Calcium:           row.Calcium,
			Phosphorus:        row.Phosphorus,
			Iron:              row.Iron,
			Sodium:            row.Sodium,
			Potassium:         row.Potassium,
			RetinolEquivalent: row.RetinolEquivalent,
			Retinol:           row.Retinol,
			Betacarotene:      row.Betacarotene,
			Thiamin:           row.Thiamin,
			Riboflavin:        row.Riboflavin,
			Niacin:            row.Niacin,
			AscorbicAcid:      row.AscorbicAcid,
		},
	}
}

func createAlimentParams(a Aliment) db.CreateAlimentParams {
	n := a.Nutrients
	return db.CreateAlimentParams{
		Name:              a.Name,
		Energy:            n.Energy,
		Moisture:          n.Moisture,
		Protein:           n.Protein,
		Fat:               n.Fat,
		Nonfibrous:        n.Nonfibrous,
		Fiber:             n.Fiber,
		Ash:               n.Ash,
		Calcium:           n.Calcium,
		Phosphorus:        n.Phosphorus,
		Iron:              n.Iron,
		Sodium:            n.Sodium,
		Potassium:         n.Potassium,
		RetinolEquivalent: n.RetinolEquivalent,
		Retinol:           n.Retinol,
		Betacarotene:      n.Betacarotene,
		Thiamin:           n.Thiamin,
		Riboflavin:        n.Riboflavin,
		Niacin:            n.Niacin,
		AscorbicAcid:      n.AscorbicAcid,
	}
}

func updateAlimentParams(id int64, n Nutrients) db.UpdateAlimentNutrientsParams {
	return db.UpdateAlimentNutrientsParams{
		ID:                id,
		Energy:            n.Energy,
		Moisture:          n.Moisture,
		Protein:           n.Protein,
		Fat:               n.Fat,
		Nonfibrous:        n.Nonfibrous,
		Fiber:             n.Fiber,
		Ash:               n.Ash,
		Calcium:           n.Calcium,
		Phosphorus:        n.Phosphorus,
		Iron:              n.Iron,
		Sodium:            n.Sodium,
		Potassium:         n.Potassium,
		RetinolEquivalent: n.RetinolEquivalent,
		Retinol:           n.Retinol,
		Betacarotene:      n.Betacarotene,
		Thiamin:           n.Thiamin,
		Riboflavin:        n.Riboflavin,
		Niacin:            n.Niacin,
		AscorbicAcid:      n.AscorbicAcid,
	}
}
