package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pgvector/pgvector-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/vitaltrack/backend/internal/chat"
	"github.com/pageza/vitaltrack/backend/internal/embedding"
	"github.com/pageza/vitaltrack/backend/internal/gateway"
	"github.com/pageza/vitaltrack/backend/internal/logger"
	"github.com/pageza/vitaltrack/backend/internal/models"
	"github.com/pageza/vitaltrack/backend/internal/nutrition"
	"github.com/pageza/vitaltrack/backend/internal/types"
)

const (
	analysisCacheTTL = 24 * time.Hour
	catalogLimit     = 20
	// Catalog entries farther than this from the query are not similar.
	maxNameDistance = 1.2
)

const analyzeSystemPrompt = `You are a nutrition expert AI. Analyze foods and provide accurate nutritional information.

IMPORTANT: Always respond with ONLY valid JSON in this exact format, no other text:
{
  "calories": number,
  "protein_g": number,
  "carbs_g": number,
  "fats_g": number,
  "fiber_g": number,
  "confidence": "high" | "medium" | "low",
  "notes": "optional brief note about the food"
}

All values should be for the specified weight. Round to 1 decimal place.
If you're uncertain about a food, use your best estimate and set confidence to "low" or "medium".`

// FoodResult is a search hit from the bundled table or the shared catalog.
type FoodResult struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Calories    float64 `json:"calories"`
	ProteinG    float64 `json:"protein_g"`
	CarbsG      float64 `json:"carbs_g"`
	FatsG       float64 `json:"fats_g"`
	FiberG      float64 `json:"fiber_g"`
	ServingSize float64 `json:"serving_size"`
	Source      string  `json:"source"`
}

// FoodPortion is a food's nutrition scaled to a weight.
type FoodPortion struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	WeightGrams float64          `json:"weight_grams"`
	Nutrition   nutrition.Scaled `json:"nutrition"`
}

// FoodAnalysis is the AI estimate for a free-text food.
type FoodAnalysis struct {
	FoodName    string  `json:"food_name"`
	WeightGrams float64 `json:"weight_grams"`
	Calories    int     `json:"calories"`
	ProteinG    float64 `json:"protein_g"`
	CarbsG      float64 `json:"carbs_g"`
	FatsG       float64 `json:"fats_g"`
	FiberG      float64 `json:"fiber_g"`
	Confidence  string  `json:"confidence"`
	Notes       *string `json:"notes"`
}

// FoodService searches foods and estimates nutrition of unknown ones.
type FoodService struct {
	db    *gorm.DB
	ai    Completer
	cache *redis.Client
	model string
}

var _ IFoodService = (*FoodService)(nil)

// NewFoodService wires the catalog, the gateway and an optional analysis cache.
func NewFoodService(db *gorm.DB, ai Completer, cache *redis.Client, model string) *FoodService {
	return &FoodService{db: db, ai: ai, cache: cache, model: model}
}

func staticResult(f nutrition.Food) FoodResult {
	return FoodResult{
		ID:          f.ID,
		Name:        f.Name,
		Category:    f.Category,
		Calories:    f.Per100g.Calories,
		ProteinG:    f.Per100g.ProteinG,
		CarbsG:      f.Per100g.CarbsG,
		FatsG:       f.Per100g.FatsG,
		FiberG:      f.Per100g.FiberG,
		ServingSize: f.ServingSize,
		Source:      "static",
	}
}

func catalogResult(f models.Food) FoodResult {
	return FoodResult{
		ID:          f.ID.String(),
		Name:        f.Name,
		Category:    f.Category,
		Calories:    f.Calories,
		ProteinG:    f.ProteinG,
		CarbsG:      f.CarbsG,
		FatsG:       f.FatsG,
		FiberG:      f.FiberG,
		ServingSize: f.ServingSize,
		Source:      "catalog",
	}
}

// Search returns the bundled foods matching query and category followed by
// matching catalog entries. Catalog names already in the bundled results are skipped.
func (s *FoodService) Search(ctx context.Context, query, category string) ([]FoodResult, error) {
	query = strings.TrimSpace(query)
	static := nutrition.SearchFoods(query, category)
	results := make([]FoodResult, 0, len(static))
	seen := make(map[string]bool, len(static))
	for _, f := range static {
		results = append(results, staticResult(f))
		seen[models.FoodNameKey(f.Name)] = true
	}

	if s.db == nil {
		return results, nil
	}

	q := s.db.WithContext(ctx).Model(&models.Food{}).Limit(catalogLimit)
	if category != "" && category != nutrition.AllCategories {
		q = q.Where("category = ?", category)
	}
	postgres := s.db.Dialector.Name() == "postgres"
	var vec pgvector.Vector
	if query != "" {
		like := "%" + strings.ToLower(query) + "%"
		vec = embedding.Text(query, models.EmbeddingDimensions)
		if postgres {
			q = q.Where("LOWER(name) LIKE ? OR embedding <-> ? < ?", like, vec, maxNameDistance).
				Clauses(clause.OrderBy{
					Expression: clause.Expr{SQL: "embedding <-> ?", Vars: []interface{}{vec}},
				})
		} else {
			q = q.Where("LOWER(name) LIKE ?", like).Order("name")
		}
	} else {
		q = q.Order("name")
	}

	var catalog []models.Food
	if err := q.Find(&catalog).Error; err != nil {
		return nil, fmt.Errorf("failed to search catalog: %w", err)
	}
	if query != "" && !postgres {
		// Same closest-name-first order that <-> gives on Postgres.
		sort.SliceStable(catalog, func(i, j int) bool {
			return embedding.Distance(vec, catalog[i].Embedding) < embedding.Distance(vec, catalog[j].Embedding)
		})
	}
	for _, f := range catalog {
		if seen[f.NameKey] {
			continue
		}
		results = append(results, catalogResult(f))
	}
	return results, nil
}

// Nutrition scales a bundled or catalog food to weightGrams.
func (s *FoodService) Nutrition(ctx context.Context, id string, weightGrams float64) (*FoodPortion, error) {
	name, per100g, err := referenceFood(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	return &FoodPortion{
		ID:          id,
		Name:        name,
		WeightGrams: weightGrams,
		Nutrition:   nutrition.Scale(per100g, weightGrams),
	}, nil
}

// Contribute adds a catalog entry. When the normalized name already exists
// the existing row is returned and created is false.
func (s *FoodService) Contribute(ctx context.Context, sess *types.Session, req *types.ContributeFoodRequest) (*models.Food, bool, error) {
	if err := requireSession(sess); err != nil {
		return nil, false, err
	}
	name := strings.Join(strings.Fields(req.Name), " ")
	if name == "" {
		return nil, false, ErrFoodNameRequired
	}
	serving := req.ServingSize
	if serving <= 0 {
		serving = 100
	}
	userID := sess.UserID
	food := &models.Food{
		Name:        name,
		Category:    strings.TrimSpace(req.Category),
		Calories:    nutrition.Round1(req.Calories),
		ProteinG:    nutrition.Round1(req.ProteinG),
		CarbsG:      nutrition.Round1(req.CarbsG),
		FatsG:       nutrition.Round1(req.FatsG),
		FiberG:      nutrition.Round1(req.FiberG),
		ServingSize: serving,
		CreatedBy:   &userID,
	}

	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name_key"}}, DoNothing: true}).
		Create(food)
	if res.Error != nil {
		return nil, false, fmt.Errorf("failed to add food: %w", res.Error)
	}

	var winner models.Food
	if err := s.db.WithContext(ctx).Where("name_key = ?", models.FoodNameKey(name)).First(&winner).Error; err != nil {
		return nil, false, fmt.Errorf("failed to load food: %w", err)
	}
	return &winner, res.RowsAffected == 1, nil
}

// SeedStatic copies the bundled table into the catalog. Existing names are
// left alone. It returns the number of rows inserted.
func (s *FoodService) SeedStatic(ctx context.Context) (int64, error) {
	rows := make([]models.Food, 0, len(nutrition.Foods()))
	for _, f := range nutrition.Foods() {
		rows = append(rows, models.Food{
			Name:        f.Name,
			Category:    f.Category,
			Calories:    f.Per100g.Calories,
			ProteinG:    f.Per100g.ProteinG,
			CarbsG:      f.Per100g.CarbsG,
			FatsG:       f.Per100g.FatsG,
			FiberG:      f.Per100g.FiberG,
			ServingSize: f.ServingSize,
		})
	}
	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name_key"}}, DoNothing: true}).
		CreateInBatches(rows, 50)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to seed foods: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// Analyze asks the AI for the nutrition of a free-text food. A weight of
// zero or less means 100g.
func (s *FoodService) Analyze(ctx context.Context, req *types.AnalyzeFoodRequest) (*FoodAnalysis, error) {
	name := strings.TrimSpace(req.FoodName)
	if name == "" {
		return nil, ErrFoodNameRequired
	}
	weight := req.WeightGrams
	if weight <= 0 {
		weight = 100
	}

	key := analysisCacheKey(name, weight)
	if cached := s.cachedAnalysis(ctx, key); cached != nil {
		cached.FoodName = name
		return cached, nil
	}

	temp := 0.3
	content, err := s.ai.Complete(ctx, gateway.Request{
		Model: s.model,
		Messages: []chat.Message{
			{Role: chat.RoleSystem, Content: analyzeSystemPrompt},
			{Role: chat.RoleUser, Content: fmt.Sprintf(
				"Analyze the nutritional content of %q for %s grams. Provide calories, protein, carbs, fats, and fiber.",
				name, strconv.FormatFloat(weight, 'f', -1, 64))},
		},
		Temperature: &temp,
		MaxTokens:   500,
	})
	if err != nil {
		return nil, err
	}

	analysis, err := parseAnalysis(content)
	if err != nil {
		logger.Warn("unparseable food analysis", "food", name, "content", content)
		return nil, err
	}
	analysis.FoodName = name
	analysis.WeightGrams = weight
	s.storeAnalysis(ctx, key, analysis)
	return analysis, nil
}

func parseAnalysis(content string) (*FoodAnalysis, error) {
	var raw struct {
		Calories   float64 `json:"calories"`
		ProteinG   float64 `json:"protein_g"`
		CarbsG     float64 `json:"carbs_g"`
		FatsG      float64 `json:"fats_g"`
		FiberG     float64 `json:"fiber_g"`
		Confidence string  `json:"confidence"`
		Notes      string  `json:"notes"`
	}
	if err := json.Unmarshal([]byte(gateway.StripCodeFence(content)), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAnalysisFailed, err)
	}
	out := &FoodAnalysis{
		Calories:   int(math.Round(raw.Calories)),
		ProteinG:   nutrition.Round1(raw.ProteinG),
		CarbsG:     nutrition.Round1(raw.CarbsG),
		FatsG:      nutrition.Round1(raw.FatsG),
		FiberG:     nutrition.Round1(raw.FiberG),
		Confidence: raw.Confidence,
	}
	if out.Confidence == "" {
		out.Confidence = "medium"
	}
	if raw.Notes != "" {
		notes := raw.Notes
		out.Notes = &notes
	}
	return out, nil
}

func analysisCacheKey(name string, weight float64) string {
	return fmt.Sprintf("food:analysis:%s:%s", models.FoodNameKey(name), strconv.FormatFloat(weight, 'f', -1, 64))
}

func (s *FoodService) cachedAnalysis(ctx context.Context, key string) *FoodAnalysis {
	if s.cache == nil {
		return nil
	}
	data, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Warn("food analysis cache read failed", "err", err)
		}
		return nil
	}
	var out FoodAnalysis
	if err := json.Unmarshal(data, &out); err != nil {
		return nil
	}
	return &out
}

func (s *FoodService) storeAnalysis(ctx context.Context, key string, a *FoodAnalysis) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(a)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, analysisCacheTTL).Err(); err != nil {
		logger.Warn("food analysis cache write failed", "err", err)
	}
}
