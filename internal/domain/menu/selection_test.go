package menu_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/menu-sites/internal/domain/menu"
	"github.com/BruksfildServices01/menu-sites/internal/domain/menu/menutest"
)

func TestSelectActiveMenu_LunchDinnerScenario(t *testing.T) {
	agg, err := menu.Build(menutest.Restaurant(), bobsKey)
	require.NoError(t, err)

	active, explicit, err := menu.SelectActiveMenu(agg, "")
	require.NoError(t, err)
	assert.Equal(t, "Lunch", *active.Title)
	assert.False(t, explicit)
	assert.True(t, agg.IsDefault(active))

	active, explicit, err = menu.SelectActiveMenu(agg, "dinner")
	require.NoError(t, err)
	assert.Equal(t, "Dinner", *active.Title)
	assert.True(t, explicit)
	assert.False(t, agg.IsDefault(active))

	active, _, err = menu.SelectActiveMenu(agg, "brunch")
	assert.ErrorIs(t, err, menu.ErrMenuNotFound)
	assert.Nil(t, active)
}

func TestSelectActiveMenu_SlugIsCaseSensitive(t *testing.T) {
	agg, err := menu.Build(menutest.Restaurant(), bobsKey)
	require.NoError(t, err)

	_, _, err = menu.SelectActiveMenu(agg, "Dinner")
	assert.ErrorIs(t, err, menu.ErrMenuNotFound)
}

func TestSelectActiveMenu_DefaultIsMinimumPosition(t *testing.T) {
	rec := menutest.Restaurant()
	rec.Menus[0].Position = -5

	agg, err := menu.Build(rec, bobsKey)
	require.NoError(t, err)

	active, _, err := menu.SelectActiveMenu(agg, "")
	require.NoError(t, err)
	assert.Equal(t, "dinner", active.SlugValue())
}

func TestSelectActiveMenu_TiesKeepPersistenceOrder(t *testing.T) {
	rec := menutest.Restaurant()
	rec.Menus[0].Position = 0
	rec.Menus[1].Position = 0

	agg, err := menu.Build(rec, bobsKey)
	require.NoError(t, err)

	active, _, err := menu.SelectActiveMenu(agg, "")
	require.NoError(t, err)
	assert.Equal(t, "dinner", active.SlugValue())
}

func TestSelectActiveMenu_NoMenus(t *testing.T) {
	_, _, err := menu.SelectActiveMenu(&menu.Aggregate{}, "")
	assert.ErrorIs(t, err, menu.ErrOnboardingIncomplete)
}
