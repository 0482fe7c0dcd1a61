package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/windoze95/mealquest-api/internal/config"
	"github.com/windoze95/mealquest-api/internal/mealdb"
	"github.com/windoze95/mealquest-api/internal/models"
	"github.com/windoze95/mealquest-api/internal/testutil"
)

func newTestSearchService(source mealdb.RecipeSource) *SearchService {
	return NewSearchService(&config.Config{}, source, testutil.FallbackRecipes())
}

func emptyMeals(ctx context.Context, _ string) ([]mealdb.RawMeal, error) {
	return []mealdb.RawMeal{}, nil
}

func TestTotalPages(t *testing.T) {
	cases := map[int]int{0: 1, 1: 1, 9: 1, 10: 1, 11: 2, 20: 2, 21: 3, 100: 10, 101: 11}
	for total, want := range cases {
		if got := TotalPages(total); got != want {
			t.Errorf("TotalPages(%d) = %d, want %d", total, got, want)
		}
	}
}

func recipes(n int) []models.Recipe {
	out := make([]models.Recipe, n)
	for i := range out {
		out[i] = models.Recipe{ID: fmt.Sprintf("%d", i+1)}
	}
	return out
}

func TestPaginate_Slices(t *testing.T) {
	res := Paginate(recipes(25), 2)

	if res.Page != 2 || res.PageSize != 10 || res.Total != 25 || res.TotalPages != 3 {
		t.Errorf("result = %+v", res)
	}
	if len(res.Items) != 10 || res.Items[0].ID != "11" || res.Items[9].ID != "20" {
		t.Errorf("items = %v", res.Items)
	}
}

func TestPaginate_PastLastPageClampsToLastPage(t *testing.T) {
	res := Paginate(recipes(25), 99)

	if res.Page != 3 {
		t.Errorf("Page = %d, want 3", res.Page)
	}
	if len(res.Items) != 5 || res.Items[0].ID != "21" {
		t.Errorf("items = %v, want last five", res.Items)
	}
}

func TestPaginate_NonPositivePageIsFirstPage(t *testing.T) {
	for _, page := range []int{0, -5} {
		res := Paginate(recipes(15), page)
		if res.Page != 1 || len(res.Items) != 10 || res.Items[0].ID != "1" {
			t.Errorf("page %d: result = %+v", page, res)
		}
	}
}

func TestPaginate_Empty(t *testing.T) {
	res := Paginate(nil, 3)

	if res.Page != 1 || res.Total != 0 || res.TotalPages != 1 || res.PageSize != 10 {
		t.Errorf("result = %+v", res)
	}
	if res.Items == nil || len(res.Items) != 0 {
		t.Errorf("Items = %v, want empty non-nil slice", res.Items)
	}
}

func TestFilterRecipes(t *testing.T) {
	data := testutil.FallbackRecipes()

	if got := FilterRecipes(data, "", ""); len(got) != len(data) {
		t.Errorf("no filter kept %d, want %d", len(got), len(data))
	}
	if got := FilterRecipes(data, "italian", ""); len(got) != 2 {
		t.Errorf("area=italian kept %d, want 2", len(got))
	}
	if got := FilterRecipes(data, " ITALIAN ", "pasta"); len(got) != 2 {
		t.Errorf("area+category kept %d, want 2", len(got))
	}
	if got := FilterRecipes(data, "Italian", "Chicken"); len(got) != 0 {
		t.Errorf("mismatched filters kept %d, want 0", len(got))
	}
	for _, r := range FilterRecipes(data, "", "Chicken") {
		if r.ID == "f4" {
			t.Error("recipe without category must not match a category filter")
		}
	}
}

func TestSearch_PrimaryResults(t *testing.T) {
	source := &testutil.MockRecipeSource{
		SearchByNameFunc: func(ctx context.Context, term string) ([]mealdb.RawMeal, error) {
			if term != "chicken" {
				t.Errorf("term = %q, want chicken", term)
			}
			return testutil.DetailMeals(14, "Japanese", "Chicken"), nil
		},
	}
	svc := newTestSearchService(source)

	res := svc.Search(context.Background(), SearchQuery{Term: " chicken ", Page: 1})

	if res.Page != 1 || res.Total != 14 || res.TotalPages != 2 || len(res.Items) != 10 {
		t.Errorf("result = %+v", res)
	}
	if res.Items[0].ID != "1" {
		t.Errorf("first item = %q, want upstream order", res.Items[0].ID)
	}
	if n := source.CallCount("FilterByIngredient"); n != 0 {
		t.Errorf("FilterByIngredient called %d times, want 0", n)
	}
}

func TestSearch_EmptyTermDoesNotFallBackToIngredients(t *testing.T) {
	source := &testutil.MockRecipeSource{SearchByNameFunc: emptyMeals}
	svc := newTestSearchService(source)

	res := svc.Search(context.Background(), SearchQuery{})

	if res.Total != 0 || res.TotalPages != 1 {
		t.Errorf("result = %+v", res)
	}
	if n := source.CallCount("FilterByIngredient"); n != 0 {
		t.Errorf("FilterByIngredient called %d times, want 0", n)
	}
}

func TestSearch_IngredientFallback(t *testing.T) {
	source := &testutil.MockRecipeSource{
		SearchByNameFunc: emptyMeals,
		FilterByIngredientFunc: func(ctx context.Context, ingredient string) ([]mealdb.RawMeal, error) {
			return []mealdb.RawMeal{testutil.SummaryMeal("3"), testutil.SummaryMeal("1"), testutil.SummaryMeal("2")}, nil
		},
		LookupByIDFunc: func(ctx context.Context, id string) ([]mealdb.RawMeal, error) {
			// Finish out of order to check that the filter order is kept.
			if id == "3" {
				time.Sleep(20 * time.Millisecond)
			}
			return []mealdb.RawMeal{testutil.DetailMeal(id, "British", "Beef")}, nil
		},
	}
	svc := newTestSearchService(source)

	res := svc.Search(context.Background(), SearchQuery{Term: "beef", Page: 1})

	if res.Total != 3 || len(res.Items) != 3 {
		t.Fatalf("result = %+v", res)
	}
	ids := []string{res.Items[0].ID, res.Items[1].ID, res.Items[2].ID}
	if strings.Join(ids, ",") != "3,1,2" {
		t.Errorf("ids = %v, want filter order 3,1,2", ids)
	}
	if res.Items[0].Area == nil || *res.Items[0].Area != "British" {
		t.Error("fallback items should carry detail fields")
	}
}

func TestSearch_IngredientFallbackCapsLookups(t *testing.T) {
	var inFlight, peak atomic.Int32
	source := &testutil.MockRecipeSource{
		SearchByNameFunc: emptyMeals,
		FilterByIngredientFunc: func(ctx context.Context, ingredient string) ([]mealdb.RawMeal, error) {
			matches := make([]mealdb.RawMeal, 0, 45)
			for i := 1; i <= 45; i++ {
				matches = append(matches, testutil.SummaryMeal(fmt.Sprintf("%d", i)))
			}
			return matches, nil
		},
		LookupByIDFunc: func(ctx context.Context, id string) ([]mealdb.RawMeal, error) {
			n := inFlight.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			inFlight.Add(-1)
			return []mealdb.RawMeal{testutil.DetailMeal(id, "", "")}, nil
		},
	}
	svc := newTestSearchService(source)

	res := svc.Search(context.Background(), SearchQuery{Term: "salt", Page: 4})

	if got := source.CallCount("LookupByID"); got != DefaultIngredientFallbackLimit {
		t.Errorf("LookupByID calls = %d, want %d", got, DefaultIngredientFallbackLimit)
	}
	if res.Total != DefaultIngredientFallbackLimit || res.TotalPages != 3 || res.Page != 3 {
		t.Errorf("result = %+v", res)
	}
	if peak.Load() < 2 {
		t.Errorf("peak concurrent lookups = %d, want lookups to run concurrently", peak.Load())
	}
}

func TestSearch_IngredientFallbackConfiguredLimit(t *testing.T) {
	source := &testutil.MockRecipeSource{
		SearchByNameFunc: emptyMeals,
		FilterByIngredientFunc: func(ctx context.Context, ingredient string) ([]mealdb.RawMeal, error) {
			return []mealdb.RawMeal{testutil.SummaryMeal("1"), testutil.SummaryMeal("2"), testutil.SummaryMeal("3")}, nil
		},
		LookupByIDFunc: func(ctx context.Context, id string) ([]mealdb.RawMeal, error) {
			return []mealdb.RawMeal{testutil.DetailMeal(id, "", "")}, nil
		},
	}
	svc := NewSearchService(&config.Config{EnvVars: config.EnvVars{IngredientFallbackLimit: 2}}, source, nil)

	res := svc.Search(context.Background(), SearchQuery{Term: "salt"})

	if res.Total != 2 {
		t.Errorf("Total = %d, want 2", res.Total)
	}
}

func TestSearch_IngredientFallbackDropsFailedLookups(t *testing.T) {
	source := &testutil.MockRecipeSource{
		SearchByNameFunc: emptyMeals,
		FilterByIngredientFunc: func(ctx context.Context, ingredient string) ([]mealdb.RawMeal, error) {
			return []mealdb.RawMeal{testutil.SummaryMeal("1"), testutil.SummaryMeal("2"), testutil.SummaryMeal("3"), testutil.SummaryMeal("4")}, nil
		},
		LookupByIDFunc: func(ctx context.Context, id string) ([]mealdb.RawMeal, error) {
			switch id {
			case "2":
				return nil, errors.New("connection reset")
			case "3":
				return []mealdb.RawMeal{}, nil
			}
			return []mealdb.RawMeal{testutil.DetailMeal(id, "", "")}, nil
		},
	}
	svc := newTestSearchService(source)

	res := svc.Search(context.Background(), SearchQuery{Term: "egg"})

	if res.Total != 2 || res.Items[0].ID != "1" || res.Items[1].ID != "4" {
		t.Errorf("result = %+v, want ids 1 and 4", res)
	}
}

func TestSearch_BothStagesEmpty(t *testing.T) {
	source := &testutil.MockRecipeSource{
		SearchByNameFunc:       emptyMeals,
		FilterByIngredientFunc: emptyMeals,
	}
	svc := newTestSearchService(source)

	res := svc.Search(context.Background(), SearchQuery{Term: "nonexistentfood123", Page: 1})

	want := models.PageResult{Items: []models.RecipeSummary{}, Page: 1, PageSize: 10, Total: 0, TotalPages: 1}
	if res.Page != want.Page || res.PageSize != want.PageSize || res.Total != want.Total ||
		res.TotalPages != want.TotalPages || len(res.Items) != 0 {
		t.Errorf("result = %+v, want %+v", res, want)
	}
	if n := source.CallCount("FilterByIngredient"); n != 1 {
		t.Errorf("FilterByIngredient called %d times, want 1", n)
	}
	if n := source.CallCount("LookupByID"); n != 0 {
		t.Errorf("LookupByID called %d times, want 0", n)
	}
}

func TestSearch_IngredientFilterFailureYieldsEmpty(t *testing.T) {
	source := &testutil.MockRecipeSource{
		SearchByNameFunc: emptyMeals,
		FilterByIngredientFunc: func(ctx context.Context, ingredient string) ([]mealdb.RawMeal, error) {
			return nil, mealdb.ErrUpstreamStatus
		},
	}
	svc := newTestSearchService(source)

	res := svc.Search(context.Background(), SearchQuery{Term: "x"})

	if res.Total != 0 {
		t.Errorf("Total = %d, want 0 (no local fallback after a secondary failure)", res.Total)
	}
}

func TestSearch_PrimaryFailureServesLocalFallback(t *testing.T) {
	source := &testutil.MockRecipeSource{
		SearchByNameFunc: func(ctx context.Context, term string) ([]mealdb.RawMeal, error) {
			return nil, errors.New("dial tcp: connection refused")
		},
	}
	svc := newTestSearchService(source)

	res := svc.Search(context.Background(), SearchQuery{Term: "anything", Area: "italian"})

	if res.Total != 2 {
		t.Fatalf("Total = %d, want 2 Italian fallback recipes", res.Total)
	}
	for _, item := range res.Items {
		if item.Area == nil || !strings.EqualFold(*item.Area, "Italian") {
			t.Errorf("item %s area = %v, want Italian", item.ID, item.Area)
		}
	}
	if len(source.Calls()) != 1 {
		t.Errorf("calls = %v, want only the failed name search", source.Calls())
	}
}

func TestSearch_AreaFilterOnPrimaryResults(t *testing.T) {
	meals := append(testutil.DetailMeals(3, "Italian", "Pasta"), testutil.DetailMeal("9", "italian", "Beef"), testutil.DetailMeal("10", "French", "Beef"))
	meals = append(meals, mealdb.RawMeal{"idMeal": "11", "strMeal": "No area"})
	source := &testutil.MockRecipeSource{
		SearchByNameFunc: func(ctx context.Context, term string) ([]mealdb.RawMeal, error) {
			return meals, nil
		},
	}
	svc := newTestSearchService(source)

	res := svc.Search(context.Background(), SearchQuery{Area: "Italian"})

	if res.Total != 4 {
		t.Errorf("Total = %d, want 4", res.Total)
	}
	for _, item := range res.Items {
		if item.Area == nil || !strings.EqualFold(*item.Area, "Italian") {
			t.Errorf("item %s area = %v", item.ID, item.Area)
		}
	}
}

func TestSearch_IngredientFallbackUsesSecondarySource(t *testing.T) {
	primary := &testutil.MockRecipeSource{SearchByNameFunc: emptyMeals}
	secondary := &testutil.MockRecipeSource{
		FilterByIngredientFunc: func(ctx context.Context, ingredient string) ([]mealdb.RawMeal, error) {
			return []mealdb.RawMeal{testutil.SummaryMeal("1")}, nil
		},
		LookupByIDFunc: func(ctx context.Context, id string) ([]mealdb.RawMeal, error) {
			return []mealdb.RawMeal{testutil.DetailMeal(id, "", "")}, nil
		},
	}
	svc := newTestSearchService(primary)
	svc.Secondary = secondary

	res := svc.Search(context.Background(), SearchQuery{Term: "garlic"})

	if res.Total != 1 {
		t.Errorf("Total = %d, want 1", res.Total)
	}
	if calls := primary.Calls(); len(calls) != 1 || calls[0] != "SearchByName:garlic" {
		t.Errorf("primary calls = %v, want only the name search", calls)
	}
	if n := secondary.CallCount("LookupByID"); n != 1 {
		t.Errorf("secondary LookupByID calls = %d, want 1", n)
	}
}
