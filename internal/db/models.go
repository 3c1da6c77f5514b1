package db

type KoreafoodFood struct {
	ID            int64
	Name          string
	CategoryBig   string
	CategorySmall string
}

type KoreafoodAliment struct {
	ID                int64
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

type KoreafoodFoodAlimentRel struct {
	FoodID    int64
	AlimentID int64
}
