package models

// Test represents a purchasable lab test in the catalog
type Test struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Catalog is the static list of purchasable tests. It is read-only after
// process start; the chat engine only ever looks items up by ID.
var Catalog = []Test{
	{ID: "total-testosterone", Name: "Total Testosterone", Price: 49.00},
	{ID: "free-testosterone", Name: "Free Testosterone", Price: 59.00},
	{ID: "estradiol", Name: "Estradiol (E2)", Price: 45.00},
	{ID: "female-hormone-panel", Name: "Female Hormone Panel", Price: 129.00},
	{ID: "thyroid-panel", Name: "Thyroid Panel (TSH, T3, T4)", Price: 89.00},
	{ID: "vitamin-d", Name: "Vitamin D, 25-Hydroxy", Price: 39.00},
	{ID: "lipid-panel", Name: "Lipid Panel", Price: 42.00},
	{ID: "hba1c", Name: "Hemoglobin A1c", Price: 35.00},
	{ID: "psa", Name: "PSA (Prostate Screening)", Price: 44.00},
	{ID: "cortisol", Name: "Cortisol, AM", Price: 55.00},
}

var catalogByID = func() map[string]Test {
	m := make(map[string]Test, len(Catalog))
	for _, t := range Catalog {
		m[t.ID] = t
	}
	return m
}()

// TestByID looks up a catalog test by its identifier
func TestByID(id string) (Test, bool) {
	t, ok := catalogByID[id]
	return t, ok
}
