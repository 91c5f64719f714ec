package loan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultLocation() Location {
	return Location{
		City:         "서울특별시",
		District:     "강남구",
		Neighborhood: "역삼동",
		Village:      "",
	}
}

func TestSetCity(t *testing.T) {
	t.Run("cascades district, neighborhood and village", func(t *testing.T) {
		loc := defaultLocation()
		loc.Village = "stale"

		require.NoError(t, loc.SetCity("경기도"))

		assert.Equal(t, "경기도", loc.City)
		assert.Equal(t, "성남시 분당구", loc.District)
		assert.Equal(t, "정자동", loc.Neighborhood)
		assert.Equal(t, "", loc.Village)
	})

	t.Run("unknown city is rejected", func(t *testing.T) {
		loc := defaultLocation()
		err := loc.SetCity("부산광역시")
		assert.Error(t, err)
		assert.Equal(t, "서울특별시", loc.City)
	})
}

func TestSetDistrict(t *testing.T) {
	t.Run("cascades neighborhood and village", func(t *testing.T) {
		loc := defaultLocation()

		require.NoError(t, loc.SetDistrict("서초구"))

		assert.Equal(t, "서초구", loc.District)
		assert.Equal(t, "서초동", loc.Neighborhood)
		assert.Equal(t, "", loc.Village)
	})

	t.Run("district from another city is rejected", func(t *testing.T) {
		loc := defaultLocation()
		assert.Error(t, loc.SetDistrict("연수구"))
		assert.Equal(t, "강남구", loc.District)
	})
}

func TestSetNeighborhood(t *testing.T) {
	t.Run("resets village", func(t *testing.T) {
		loc := Location{City: "경기도", District: "이천시", Neighborhood: "부발읍", Village: "아미리"}

		require.NoError(t, loc.SetNeighborhood("마장면"))

		assert.Equal(t, "마장면", loc.Neighborhood)
		assert.Equal(t, "", loc.Village)
	})

	t.Run("unknown neighborhood is rejected", func(t *testing.T) {
		loc := defaultLocation()
		assert.Error(t, loc.SetNeighborhood("판교동"))
	})
}

func TestSetVillage(t *testing.T) {
	t.Run("sets village on neighborhood with village level", func(t *testing.T) {
		loc := Location{City: "경기도", District: "이천시", Neighborhood: "마장면"}

		require.NoError(t, loc.SetVillage("오천리"))
		assert.Equal(t, "오천리", loc.Village)
	})

	t.Run("no-op when neighborhood has no villages", func(t *testing.T) {
		loc := defaultLocation()

		require.NoError(t, loc.SetVillage("아무리"))
		assert.Equal(t, "", loc.Village)
	})

	t.Run("village from another neighborhood is rejected", func(t *testing.T) {
		loc := Location{City: "경기도", District: "이천시", Neighborhood: "마장면"}
		assert.Error(t, loc.SetVillage("아미리"))
	})

	t.Run("clearing with empty string is allowed", func(t *testing.T) {
		loc := Location{City: "경기도", District: "이천시", Neighborhood: "마장면", Village: "오천리"}
		require.NoError(t, loc.SetVillage(""))
		assert.Equal(t, "", loc.Village)
	})
}
