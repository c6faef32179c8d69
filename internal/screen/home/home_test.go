package home_test

import (
	"context"
	"errors"
	"testing"

	"foodhub/internal/api"
	"foodhub/internal/domain"
	"foodhub/internal/mocks"
	"foodhub/internal/screen/home"
	"foodhub/internal/state/statetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestScreen_Load(t *testing.T) {
	categories := api.Success(domain.CategoriesResponse{Data: []domain.Category{{ID: "c1", Name: "Pizza"}}})
	restaurants := api.Success(domain.RestaurantResponse{Data: []domain.Restaurant{{ID: "r1", Name: "Luigi"}}})

	tests := []struct {
		name        string
		categories  api.Result[domain.CategoriesResponse]
		restaurants api.Result[domain.RestaurantResponse]
		want        home.Status
	}{
		{name: "both lists", categories: categories, restaurants: restaurants, want: home.StatusSuccess},
		{name: "no categories", categories: api.Success(domain.CategoriesResponse{}), restaurants: restaurants, want: home.StatusEmpty},
		{name: "restaurants failed", categories: categories, restaurants: api.Error[domain.RestaurantResponse](500, "boom"), want: home.StatusEmpty},
		{name: "offline", categories: api.Exception[domain.CategoriesResponse](errors.New("offline")), restaurants: restaurants, want: home.StatusEmpty},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			client := mocks.NewFoodAPI(t)
			client.On("Categories", mock.Anything).Return(testCase.categories).Once()
			client.On("Restaurants", mock.Anything, home.DefaultLatitude, home.DefaultLongitude).Return(testCase.restaurants).Once()

			screen := home.New(client, nil)
			defer screen.Close()
			screen.Sync()

			assert.Equal(t, testCase.want, screen.Current().Status)
		})
	}
}

func TestScreen_UsesLocator(t *testing.T) {
	client := mocks.NewFoodAPI(t)
	locator := mocks.NewLocator(t)
	locator.On("Location", mock.Anything).Return(51.5, -0.12, nil).Once()
	client.On("Categories", mock.Anything).Return(api.Success(domain.CategoriesResponse{})).Once()
	client.On("Restaurants", mock.Anything, 51.5, -0.12).Return(api.Success(domain.RestaurantResponse{})).Once()

	screen := home.New(client, locator)
	defer screen.Close()
	screen.Sync()
}

func TestScreen_SelectRestaurant(t *testing.T) {
	client := mocks.NewFoodAPI(t)
	client.On("Categories", mock.Anything).Return(api.Success(domain.CategoriesResponse{})).Once()
	client.On("Restaurants", mock.Anything, mock.Anything, mock.Anything).Return(api.Success(domain.RestaurantResponse{})).Once()

	screen := home.New(client, nil)
	defer screen.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events := screen.Subscribe(ctx, 4)

	screen.SelectRestaurant(domain.Restaurant{ID: "r1", Name: "Luigi", ImageURL: "http://img/1.png"})
	screen.Sync()

	assert.Equal(t, []home.Event{{Kind: home.NavigateToDetail, RestaurantID: "r1", Name: "Luigi", ImageURL: "http://img/1.png"}}, statetest.Drain(events))
}
