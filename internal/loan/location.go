package loan

import (
	"loandesk/internal/catalog"
	stderrors "loandesk/internal/common/errors"
)

// Location is the 4-level administrative selection. Village is the empty
// string when unselected or when the neighborhood has no village level.
type Location struct {
	City         string `json:"city"`
	District     string `json:"district"`
	Neighborhood string `json:"neighborhood"`
	Village      string `json:"village"`
}

// SetCity replaces the city and cascades: district and neighborhood reset to
// the first catalog entries, village resets to empty.
func (l *Location) SetCity(city string) error {
	districts := catalog.DistrictsOf(city)
	if len(districts) == 0 {
		return stderrors.NewValidationFailedError("unknown city: " + city)
	}

	l.City = city
	l.District = districts[0]

	neighborhoods := catalog.NeighborhoodsOf(city, l.District)
	if len(neighborhoods) > 0 {
		l.Neighborhood = neighborhoods[0]
	} else {
		l.Neighborhood = ""
	}
	l.Village = ""
	return nil
}

// SetDistrict replaces the district within the current city and cascades the
// neighborhood and village resets.
func (l *Location) SetDistrict(district string) error {
	if !contains(catalog.DistrictsOf(l.City), district) {
		return stderrors.NewValidationFailedError("district does not belong to city: " + district)
	}

	l.District = district

	neighborhoods := catalog.NeighborhoodsOf(l.City, district)
	if len(neighborhoods) > 0 {
		l.Neighborhood = neighborhoods[0]
	} else {
		l.Neighborhood = ""
	}
	l.Village = ""
	return nil
}

// SetNeighborhood replaces the neighborhood and resets the village.
func (l *Location) SetNeighborhood(neighborhood string) error {
	if !contains(catalog.NeighborhoodsOf(l.City, l.District), neighborhood) {
		return stderrors.NewValidationFailedError("neighborhood does not belong to district: " + neighborhood)
	}

	l.Neighborhood = neighborhood
	l.Village = ""
	return nil
}

// SetVillage sets the village. A set on a neighborhood without a village
// level is a silent no-op; the selection stays empty.
func (l *Location) SetVillage(village string) error {
	villages := catalog.VillagesOf(l.Neighborhood)
	if len(villages) == 0 {
		return nil
	}

	if village != "" && !contains(villages, village) {
		return stderrors.NewValidationFailedError("village does not belong to neighborhood: " + village)
	}

	l.Village = village
	return nil
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
