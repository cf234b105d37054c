package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/desidelights/tiffin/internal/model"
)

func sampleRestaurants() []model.Restaurant {
	return []model.Restaurant{
		{
			ID: 1, Name: "Paradise Biryani", Cuisine: model.CuisineHyderabadi,
			Menu: []model.MenuItem{
				{ID: 1, Name: "Chicken Biryani", Price: 250, Veg: false},
				{ID: 2, Name: "Veg Biryani", Price: 180, Veg: true},
			},
		},
		{
			ID: 2, Name: "Udupi Grand", Cuisine: model.CuisineSouthIndian,
			Menu: []model.MenuItem{
				{ID: 3, Name: "Masala Dosa", Price: 80, Veg: true},
				{ID: 4, Name: "Idli Sambar", Price: 60, Veg: true},
			},
		},
		{
			ID: 3, Name: "Chaiwala Corner", Cuisine: model.CuisineBeverages,
			Menu: []model.MenuItem{
				{ID: 5, Name: "Cutting Chai", Price: 20, Veg: true},
			},
		},
		{
			ID: 4, Name: "Empty Kitchen", Cuisine: model.CuisineStreetFood,
			Menu: nil,
		},
	}
}

func ids(rs []model.Restaurant) []int {
	var out []int
	for _, r := range rs {
		out = append(out, r.ID)
	}
	return out
}

func TestVisible_EmptyQueryAllReturnsEverythingInOrder(t *testing.T) {
	rs := sampleRestaurants()
	got := Visible(rs, "", CategoryAll)
	assert.Equal(t, []int{1, 2, 3, 4}, ids(got))
}

func TestVisible_QueryMatchesNameOrCuisine(t *testing.T) {
	rs := sampleRestaurants()

	tests := []struct {
		name  string
		query string
		want  []int
	}{
		{"name substring, case-insensitive", "chai", []int{3}},
		{"cuisine substring", "south", []int{2}},
		{"query is trimmed", "  paradise  ", []int{1}},
		{"matches name and cuisine across restaurants", "indian", []int{2}},
		{"zero matches is a valid result", "sushi", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Visible(rs, tt.query, CategoryAll)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestVisible_VegOnlyExcludesNonVegMenus(t *testing.T) {
	rs := sampleRestaurants()
	got := Visible(rs, "", CategoryVegOnly)
	// Paradise has a non-veg item; the empty menu is vacuously veg.
	assert.Equal(t, []int{2, 3, 4}, ids(got))
}

func TestVisible_CuisineCategoryIsExactMatch(t *testing.T) {
	rs := sampleRestaurants()
	got := Visible(rs, "", Category(model.CuisineHyderabadi))
	assert.Equal(t, []int{1}, ids(got))
}

func TestVisible_SearchAndCategoryCombine(t *testing.T) {
	rs := sampleRestaurants()
	got := Visible(rs, "biryani", CategoryVegOnly)
	assert.Empty(t, got, "Paradise matches the query but fails Veg Only")
}

func TestVisible_UnknownCategoryMatchesNothing(t *testing.T) {
	rs := sampleRestaurants()
	got := Visible(rs, "", Category("Continental"))
	assert.Empty(t, got)
}

func TestVisible_NoRestaurantsLoaded(t *testing.T) {
	got := Visible(nil, "", CategoryAll)
	assert.Empty(t, got)
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory("Veg Only")
	require.NoError(t, err)
	assert.Equal(t, CategoryVegOnly, c)

	c, err = ParseCategory(" South Indian ")
	require.NoError(t, err)
	assert.Equal(t, Category("South Indian"), c)

	_, err = ParseCategory("Fusion")
	assert.Error(t, err)
}

func TestCategories_FixedOrder(t *testing.T) {
	got := Categories()
	require.Equal(t, CategoryAll, got[0])
	require.Equal(t, CategoryVegOnly, got[len(got)-1])
	assert.Len(t, got, 2+len(model.Cuisines()))
}
