package nutrition

import "strings"

// Food is a reference item with nutrition values per 100g.
type Food struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Per100g     Macros  `json:"per_100g"`
	ServingSize float64 `json:"serving_size"`
}

// AllCategories matches every food in SearchFoods.
const AllCategories = "All"

// Categories lists the filter values, starting with AllCategories.
var Categories = []string{
	AllCategories,
	"Protein",
	"Grains",
	"Vegetables",
	"Fruits",
	"Dairy",
	"Legumes",
	"Nuts",
	"Beverages",
	"Indian",
	"Fast Food",
}

var foods = []Food{
	// Protein
	{ID: "chicken-breast", Name: "Chicken Breast (Grilled)", Category: "Protein", Per100g: Macros{Calories: 165, ProteinG: 31, CarbsG: 0, FatsG: 3.6, FiberG: 0}, ServingSize: 150},
	{ID: "chicken-thigh", Name: "Chicken Thigh", Category: "Protein", Per100g: Macros{Calories: 209, ProteinG: 26, CarbsG: 0, FatsG: 11, FiberG: 0}, ServingSize: 100},
	{ID: "salmon", Name: "Salmon (Baked)", Category: "Protein", Per100g: Macros{Calories: 208, ProteinG: 20, CarbsG: 0, FatsG: 13, FiberG: 0}, ServingSize: 150},
	{ID: "tuna", Name: "Tuna (Canned)", Category: "Protein", Per100g: Macros{Calories: 116, ProteinG: 26, CarbsG: 0, FatsG: 1, FiberG: 0}, ServingSize: 100},
	{ID: "eggs", Name: "Eggs (Boiled)", Category: "Protein", Per100g: Macros{Calories: 155, ProteinG: 13, CarbsG: 1.1, FatsG: 11, FiberG: 0}, ServingSize: 50},
	{ID: "egg-white", Name: "Egg White", Category: "Protein", Per100g: Macros{Calories: 52, ProteinG: 11, CarbsG: 0.7, FatsG: 0.2, FiberG: 0}, ServingSize: 33},
	{ID: "beef", Name: "Beef (Lean)", Category: "Protein", Per100g: Macros{Calories: 250, ProteinG: 26, CarbsG: 0, FatsG: 15, FiberG: 0}, ServingSize: 100},
	{ID: "paneer", Name: "Paneer", Category: "Protein", Per100g: Macros{Calories: 265, ProteinG: 18, CarbsG: 1.2, FatsG: 21, FiberG: 0}, ServingSize: 100},
	{ID: "tofu", Name: "Tofu", Category: "Protein", Per100g: Macros{Calories: 76, ProteinG: 8, CarbsG: 1.9, FatsG: 4.8, FiberG: 0.3}, ServingSize: 100},
	{ID: "greek-yogurt", Name: "Greek Yogurt", Category: "Protein", Per100g: Macros{Calories: 97, ProteinG: 9, CarbsG: 3.6, FatsG: 5, FiberG: 0}, ServingSize: 150},

	// Grains
	{ID: "rice-white", Name: "White Rice (Cooked)", Category: "Grains", Per100g: Macros{Calories: 130, ProteinG: 2.7, CarbsG: 28, FatsG: 0.3, FiberG: 0.4}, ServingSize: 150},
	{ID: "rice-brown", Name: "Brown Rice (Cooked)", Category: "Grains", Per100g: Macros{Calories: 111, ProteinG: 2.6, CarbsG: 23, FatsG: 0.9, FiberG: 1.8}, ServingSize: 150},
	{ID: "oats", Name: "Oatmeal (Cooked)", Category: "Grains", Per100g: Macros{Calories: 68, ProteinG: 2.4, CarbsG: 12, FatsG: 1.4, FiberG: 1.7}, ServingSize: 250},
	{ID: "bread-wheat", Name: "Whole Wheat Bread", Category: "Grains", Per100g: Macros{Calories: 247, ProteinG: 13, CarbsG: 41, FatsG: 3.4, FiberG: 7}, ServingSize: 30},
	{ID: "bread-white", Name: "White Bread", Category: "Grains", Per100g: Macros{Calories: 265, ProteinG: 9, CarbsG: 49, FatsG: 3.2, FiberG: 2.7}, ServingSize: 30},
	{ID: "pasta", Name: "Pasta (Cooked)", Category: "Grains", Per100g: Macros{Calories: 131, ProteinG: 5, CarbsG: 25, FatsG: 1.1, FiberG: 1.8}, ServingSize: 200},
	{ID: "quinoa", Name: "Quinoa (Cooked)", Category: "Grains", Per100g: Macros{Calories: 120, ProteinG: 4.4, CarbsG: 21, FatsG: 1.9, FiberG: 2.8}, ServingSize: 150},
	{ID: "roti", Name: "Roti/Chapati", Category: "Grains", Per100g: Macros{Calories: 297, ProteinG: 9, CarbsG: 50, FatsG: 7.5, FiberG: 4}, ServingSize: 40},

	// Vegetables
	{ID: "broccoli", Name: "Broccoli", Category: "Vegetables", Per100g: Macros{Calories: 34, ProteinG: 2.8, CarbsG: 7, FatsG: 0.4, FiberG: 2.6}, ServingSize: 100},
	{ID: "spinach", Name: "Spinach", Category: "Vegetables", Per100g: Macros{Calories: 23, ProteinG: 2.9, CarbsG: 3.6, FatsG: 0.4, FiberG: 2.2}, ServingSize: 100},
	{ID: "carrots", Name: "Carrots", Category: "Vegetables", Per100g: Macros{Calories: 41, ProteinG: 0.9, CarbsG: 10, FatsG: 0.2, FiberG: 2.8}, ServingSize: 100},
	{ID: "tomatoes", Name: "Tomatoes", Category: "Vegetables", Per100g: Macros{Calories: 18, ProteinG: 0.9, CarbsG: 3.9, FatsG: 0.2, FiberG: 1.2}, ServingSize: 100},
	{ID: "cucumber", Name: "Cucumber", Category: "Vegetables", Per100g: Macros{Calories: 16, ProteinG: 0.7, CarbsG: 3.6, FatsG: 0.1, FiberG: 0.5}, ServingSize: 100},
	{ID: "onion", Name: "Onion", Category: "Vegetables", Per100g: Macros{Calories: 40, ProteinG: 1.1, CarbsG: 9, FatsG: 0.1, FiberG: 1.7}, ServingSize: 100},
	{ID: "potato", Name: "Potato (Boiled)", Category: "Vegetables", Per100g: Macros{Calories: 87, ProteinG: 1.9, CarbsG: 20, FatsG: 0.1, FiberG: 1.8}, ServingSize: 150},
	{ID: "sweet-potato", Name: "Sweet Potato", Category: "Vegetables", Per100g: Macros{Calories: 86, ProteinG: 1.6, CarbsG: 20, FatsG: 0.1, FiberG: 3}, ServingSize: 150},

	// Fruits
	{ID: "apple", Name: "Apple", Category: "Fruits", Per100g: Macros{Calories: 52, ProteinG: 0.3, CarbsG: 14, FatsG: 0.2, FiberG: 2.4}, ServingSize: 180},
	{ID: "banana", Name: "Banana", Category: "Fruits", Per100g: Macros{Calories: 89, ProteinG: 1.1, CarbsG: 23, FatsG: 0.3, FiberG: 2.6}, ServingSize: 120},
	{ID: "orange", Name: "Orange", Category: "Fruits", Per100g: Macros{Calories: 47, ProteinG: 0.9, CarbsG: 12, FatsG: 0.1, FiberG: 2.4}, ServingSize: 150},
	{ID: "mango", Name: "Mango", Category: "Fruits", Per100g: Macros{Calories: 60, ProteinG: 0.8, CarbsG: 15, FatsG: 0.4, FiberG: 1.6}, ServingSize: 150},
	{ID: "grapes", Name: "Grapes", Category: "Fruits", Per100g: Macros{Calories: 69, ProteinG: 0.7, CarbsG: 18, FatsG: 0.2, FiberG: 0.9}, ServingSize: 100},
	{ID: "watermelon", Name: "Watermelon", Category: "Fruits", Per100g: Macros{Calories: 30, ProteinG: 0.6, CarbsG: 8, FatsG: 0.2, FiberG: 0.4}, ServingSize: 200},

	// Dairy
	{ID: "milk-whole", Name: "Milk (Whole)", Category: "Dairy", Per100g: Macros{Calories: 61, ProteinG: 3.2, CarbsG: 4.8, FatsG: 3.3, FiberG: 0}, ServingSize: 250},
	{ID: "milk-skim", Name: "Milk (Skim)", Category: "Dairy", Per100g: Macros{Calories: 34, ProteinG: 3.4, CarbsG: 5, FatsG: 0.1, FiberG: 0}, ServingSize: 250},
	{ID: "cheese", Name: "Cheese (Cheddar)", Category: "Dairy", Per100g: Macros{Calories: 403, ProteinG: 25, CarbsG: 1.3, FatsG: 33, FiberG: 0}, ServingSize: 30},
	{ID: "butter", Name: "Butter", Category: "Dairy", Per100g: Macros{Calories: 717, ProteinG: 0.9, CarbsG: 0.1, FatsG: 81, FiberG: 0}, ServingSize: 10},

	// Legumes
	{ID: "lentils", Name: "Lentils (Cooked)", Category: "Legumes", Per100g: Macros{Calories: 116, ProteinG: 9, CarbsG: 20, FatsG: 0.4, FiberG: 7.9}, ServingSize: 150},
	{ID: "chickpeas", Name: "Chickpeas (Cooked)", Category: "Legumes", Per100g: Macros{Calories: 164, ProteinG: 8.9, CarbsG: 27, FatsG: 2.6, FiberG: 7.6}, ServingSize: 150},
	{ID: "kidney-beans", Name: "Kidney Beans", Category: "Legumes", Per100g: Macros{Calories: 127, ProteinG: 8.7, CarbsG: 23, FatsG: 0.5, FiberG: 6.4}, ServingSize: 150},
	{ID: "dal", Name: "Dal (Cooked)", Category: "Legumes", Per100g: Macros{Calories: 104, ProteinG: 7, CarbsG: 18, FatsG: 0.4, FiberG: 5}, ServingSize: 200},

	// Nuts
	{ID: "almonds", Name: "Almonds", Category: "Nuts", Per100g: Macros{Calories: 579, ProteinG: 21, CarbsG: 22, FatsG: 50, FiberG: 12}, ServingSize: 30},
	{ID: "peanuts", Name: "Peanuts", Category: "Nuts", Per100g: Macros{Calories: 567, ProteinG: 26, CarbsG: 16, FatsG: 49, FiberG: 8.5}, ServingSize: 30},
	{ID: "walnuts", Name: "Walnuts", Category: "Nuts", Per100g: Macros{Calories: 654, ProteinG: 15, CarbsG: 14, FatsG: 65, FiberG: 6.7}, ServingSize: 30},
	{ID: "cashews", Name: "Cashews", Category: "Nuts", Per100g: Macros{Calories: 553, ProteinG: 18, CarbsG: 30, FatsG: 44, FiberG: 3.3}, ServingSize: 30},

	// Beverages
	{ID: "coffee", Name: "Coffee (Black)", Category: "Beverages", Per100g: Macros{Calories: 2, ProteinG: 0.3, CarbsG: 0, FatsG: 0, FiberG: 0}, ServingSize: 250},
	{ID: "tea", Name: "Tea (No Sugar)", Category: "Beverages", Per100g: Macros{Calories: 1, ProteinG: 0, CarbsG: 0.3, FatsG: 0, FiberG: 0}, ServingSize: 250},
	{ID: "orange-juice", Name: "Orange Juice", Category: "Beverages", Per100g: Macros{Calories: 45, ProteinG: 0.7, CarbsG: 10, FatsG: 0.2, FiberG: 0.2}, ServingSize: 250},

	// Indian
	{ID: "biryani", Name: "Chicken Biryani", Category: "Indian", Per100g: Macros{Calories: 180, ProteinG: 8, CarbsG: 25, FatsG: 6, FiberG: 1}, ServingSize: 250},
	{ID: "butter-chicken", Name: "Butter Chicken", Category: "Indian", Per100g: Macros{Calories: 180, ProteinG: 14, CarbsG: 8, FatsG: 11, FiberG: 1}, ServingSize: 200},
	{ID: "palak-paneer", Name: "Palak Paneer", Category: "Indian", Per100g: Macros{Calories: 150, ProteinG: 8, CarbsG: 7, FatsG: 11, FiberG: 2}, ServingSize: 200},
	{ID: "samosa", Name: "Samosa", Category: "Indian", Per100g: Macros{Calories: 262, ProteinG: 4, CarbsG: 24, FatsG: 17, FiberG: 2}, ServingSize: 60},
	{ID: "idli", Name: "Idli", Category: "Indian", Per100g: Macros{Calories: 39, ProteinG: 2, CarbsG: 8, FatsG: 0.1, FiberG: 0.4}, ServingSize: 40},
	{ID: "dosa", Name: "Dosa", Category: "Indian", Per100g: Macros{Calories: 120, ProteinG: 3, CarbsG: 18, FatsG: 4, FiberG: 1}, ServingSize: 100},

	// Fast Food
	{ID: "pizza", Name: "Pizza (1 slice)", Category: "Fast Food", Per100g: Macros{Calories: 285, ProteinG: 12, CarbsG: 36, FatsG: 10, FiberG: 2.5}, ServingSize: 107},
	{ID: "burger", Name: "Hamburger", Category: "Fast Food", Per100g: Macros{Calories: 295, ProteinG: 17, CarbsG: 24, FatsG: 14, FiberG: 1}, ServingSize: 150},
	{ID: "french-fries", Name: "French Fries", Category: "Fast Food", Per100g: Macros{Calories: 312, ProteinG: 3.4, CarbsG: 41, FatsG: 15, FiberG: 3.8}, ServingSize: 100},
	{ID: "fried-chicken", Name: "Fried Chicken", Category: "Fast Food", Per100g: Macros{Calories: 246, ProteinG: 19, CarbsG: 10, FatsG: 15, FiberG: 0.5}, ServingSize: 100},
}

var foodsByID = func() map[string]Food {
	m := make(map[string]Food, len(foods))
	for _, f := range foods {
		m[f.ID] = f
	}
	return m
}()

// Foods returns a copy of the bundled reference table.
func Foods() []Food {
	out := make([]Food, len(foods))
	copy(out, foods)
	return out
}

// LookupFood returns the reference item with the given id.
func LookupFood(id string) (Food, bool) {
	f, ok := foodsByID[id]
	return f, ok
}

// SearchFoods filters the reference table by category and a case-insensitive
// substring of the name. An empty category or AllCategories skips the
// category filter; an empty query skips the name filter.
func SearchFoods(query, category string) []Food {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]Food, 0, len(foods))
	for _, f := range foods {
		if category != "" && category != AllCategories && f.Category != category {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(f.Name), q) {
			continue
		}
		out = append(out, f)
	}
	return out
}

// Portion scales the food to the given weight.
func (f Food) Portion(weightGrams float64) Scaled {
	return Scale(f.Per100g, weightGrams)
}
