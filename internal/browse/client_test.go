package browse

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/recipes", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("search") == "boom" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprintf(w, `{"items":[{"id":"1","name":"%s","image":"","category":null,"area":%q,"tags":[]}],"page":%s,"pageSize":10,"total":1,"totalPages":1}`,
			q.Get("search"), q.Get("area"), q.Get("page"))
	})
	mux.HandleFunc("/v1/recipes/52772", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"recipe":{"id":"52772","name":"Teriyaki Chicken Casserole","tags":["Meat"],"ingredients":[{"ingredient":"soy sauce","measure":"3/4 cup"}]}}`)
	})
	mux.HandleFunc("/v1/recipes/0", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error":"Recipe not found"}`)
	})
	mux.HandleFunc("/v1/filters", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"areas":["Italian"],"categories":["Pasta","Beef"]}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPFetcher_FetchRecipes(t *testing.T) {
	f := NewHTTPFetcher(newTestServer(t).URL+"/", nil)

	page, err := f.FetchRecipes(context.Background(), Params{Search: "pie", Area: "British", Page: 2})

	require.NoError(t, err)
	assert.Equal(t, 2, page.Page)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "pie", page.Items[0].Name)
	require.NotNil(t, page.Items[0].Area)
	assert.Equal(t, "British", *page.Items[0].Area)
	assert.Nil(t, page.Items[0].Category)
}

func TestHTTPFetcher_FetchRecipesStatusError(t *testing.T) {
	f := NewHTTPFetcher(newTestServer(t).URL, nil)

	_, err := f.FetchRecipes(context.Background(), Params{Search: "boom", Page: 1})

	assert.ErrorIs(t, err, ErrStatus)
	assert.Equal(t, "Failed to fetch", errorMessage(err))
}

func TestHTTPFetcher_FetchRecipe(t *testing.T) {
	f := NewHTTPFetcher(newTestServer(t).URL, nil)

	recipe, err := f.FetchRecipe(context.Background(), "52772")

	require.NoError(t, err)
	assert.Equal(t, "Teriyaki Chicken Casserole", recipe.Name)
	require.Len(t, recipe.Ingredients, 1)
	assert.Equal(t, "3/4 cup", recipe.Ingredients[0].Measure)
}

func TestHTTPFetcher_FetchRecipeNotFound(t *testing.T) {
	f := NewHTTPFetcher(newTestServer(t).URL, nil)

	_, err := f.FetchRecipe(context.Background(), "0")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHTTPFetcher_FetchFilters(t *testing.T) {
	f := NewHTTPFetcher(newTestServer(t).URL, nil)

	opts, err := f.FetchFilters(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"Italian"}, opts.Areas)
	assert.Equal(t, []string{"Pasta", "Beef"}, opts.Categories)
}

func TestHTTPFetcher_Unreachable(t *testing.T) {
	f := NewHTTPFetcher("http://127.0.0.1:1", nil)

	_, err := f.FetchFilters(context.Background())

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrStatus)
}

func TestController_WithHTTPFetcher(t *testing.T) {
	c := NewController(NewHTTPFetcher(newTestServer(t).URL, nil), WithParams(Params{Area: "Thai"}))

	c.Start(context.Background())
	c.Wait()

	state := c.State()
	require.Equal(t, StatusSuccess, state.Status)
	assert.Equal(t, 1, state.Data.Page)
	assert.Equal(t, "Thai", *state.Data.Items[0].Area)
}
