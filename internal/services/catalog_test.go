package services

import (
	"context"
	"errors"
	"testing"

	"holocron/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogService(t *testing.T) {
	db := setupTestDB(t)
	service := NewCatalogService(db)
	ctx := context.Background()

	t.Run("Empty lists are not nil", func(t *testing.T) {
		characters, err := service.ListCharacters(ctx)
		require.NoError(t, err)
		assert.NotNil(t, characters)
		assert.Empty(t, characters)
	})

	character, planet, vehicle := seedCatalog(t, db)

	t.Run("List", func(t *testing.T) {
		characters, err := service.ListCharacters(ctx)
		require.NoError(t, err)
		assert.Len(t, characters, 1)

		planets, err := service.ListPlanets(ctx)
		require.NoError(t, err)
		assert.Len(t, planets, 1)

		vehicles, err := service.ListVehicles(ctx)
		require.NoError(t, err)
		assert.Len(t, vehicles, 1)
	})

	t.Run("Get", func(t *testing.T) {
		c, err := service.GetCharacter(ctx, character.ID)
		require.NoError(t, err)
		assert.Equal(t, "Luke Skywalker", c.Name)

		p, err := service.GetPlanet(ctx, planet.ID)
		require.NoError(t, err)
		assert.Equal(t, "Tatooine", p.Name)

		v, err := service.GetVehicle(ctx, vehicle.ID)
		require.NoError(t, err)
		assert.Equal(t, "Sand Crawler", v.Name)
	})

	t.Run("Not found", func(t *testing.T) {
		cases := map[string]func() error{
			"Character not found": func() error { _, err := service.GetCharacter(ctx, 404); return err },
			"Planet not found":    func() error { _, err := service.GetPlanet(ctx, 404); return err },
			"Vehicle not found":   func() error { _, err := service.GetVehicle(ctx, 404); return err },
		}
		for msg, call := range cases {
			err := call()
			var nf *NotFoundError
			require.True(t, errors.As(err, &nf), msg)
			assert.Equal(t, msg, err.Error())
		}
	})

	t.Run("Exists", func(t *testing.T) {
		ok, err := service.Exists(ctx, models.FavoriteTarget{Kind: models.KindVehicle, ID: vehicle.ID})
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = service.Exists(ctx, models.FavoriteTarget{Kind: models.KindPlanet, ID: 404})
		require.NoError(t, err)
		assert.False(t, ok)

		_, err = service.Exists(ctx, models.FavoriteTarget{Kind: "starship", ID: 1})
		assert.ErrorIs(t, err, models.ErrInvalidFavoriteTarget)
	})
}
