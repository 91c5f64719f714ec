package loan

import (
	"github.com/google/uuid"

	"loandesk/internal/common/config"
	stderrors "loandesk/internal/common/errors"
)

// State is the per-session loan aggregate: the location selection, the
// collateral registry, the selection pointer and the reserved rate inputs.
// It is not safe for concurrent use; the session manager serializes access.
type State struct {
	Location           Location     `json:"location"`
	Properties         []Property   `json:"properties"`
	Rentals            []RentalUnit `json:"rentals"`
	SelectedPropertyID *string      `json:"selectedPropertyId"`
	InterestRate       float64      `json:"interestRate"`
	AnnualIncome       float64      `json:"annualIncome"`
}

// NewDefaultState returns the aggregate a fresh session starts with: the
// configured default location, one seed collateral item and the standard
// rate. Empty config fields fall back to the stock defaults so a zero value
// behaves like an unconfigured deployment.
func NewDefaultState(cfg config.LoanConfig) *State {
	if cfg.DefaultCity == "" {
		cfg.DefaultCity = "서울특별시"
	}
	if cfg.DefaultDistrict == "" {
		cfg.DefaultDistrict = "강남구"
	}
	if cfg.DefaultNeighborhood == "" {
		cfg.DefaultNeighborhood = "역삼동"
	}
	if cfg.DefaultInterestRate == 0 {
		cfg.DefaultInterestRate = 4.5
	}

	return &State{
		Location: Location{
			City:         cfg.DefaultCity,
			District:     cfg.DefaultDistrict,
			Neighborhood: cfg.DefaultNeighborhood,
			Village:      "",
		},
		Properties:   []Property{NewProperty("대지", cfg.DefaultLTV)},
		Rentals:      []RentalUnit{},
		InterestRate: cfg.DefaultInterestRate,
	}
}

// SetLocationField routes a single location edit to the state machine.
func (s *State) SetLocationField(field, value string) error {
	switch field {
	case "city":
		return s.Location.SetCity(value)
	case "district":
		return s.Location.SetDistrict(value)
	case "neighborhood":
		return s.Location.SetNeighborhood(value)
	case "village":
		return s.Location.SetVillage(value)
	default:
		return stderrors.NewInvalidLocationFieldError(field)
	}
}

// AddProperty appends a fresh collateral item and selects it. Unlike the
// seed property, added rows start with an empty usage.
func (s *State) AddProperty() Property {
	p := NewProperty("", 0)
	s.Properties = append(s.Properties, p)
	id := p.ID
	s.SelectedPropertyID = &id
	return p
}

// UpdateProperty applies a field patch to the matching collateral item.
func (s *State) UpdateProperty(id string, patch map[string]interface{}) error {
	for i := range s.Properties {
		if s.Properties[i].ID == id {
			applyPatch(&s.Properties[i], patch)
			return nil
		}
	}
	return stderrors.NewPropertyNotFoundError(id)
}

// RemoveProperty deletes the matching collateral item. Removing the selected
// property clears the selection pointer.
func (s *State) RemoveProperty(id string) error {
	for i := range s.Properties {
		if s.Properties[i].ID == id {
			s.Properties = append(s.Properties[:i], s.Properties[i+1:]...)
			if s.SelectedPropertyID != nil && *s.SelectedPropertyID == id {
				s.SelectedPropertyID = nil
			}
			return nil
		}
	}
	return stderrors.NewPropertyNotFoundError(id)
}

// Select opens the detail view for an existing collateral item.
func (s *State) Select(id string) error {
	for _, p := range s.Properties {
		if p.ID == id {
			selected := id
			s.SelectedPropertyID = &selected
			return nil
		}
	}
	return stderrors.NewPropertyNotFoundError(id)
}

// ClearSelection closes the detail view. Always succeeds.
func (s *State) ClearSelection() {
	s.SelectedPropertyID = nil
}

// SetRates updates the reserved interest-rate and annual-income inputs.
// Neither feeds any limit derivation.
func (s *State) SetRates(interestRate, annualIncome float64) {
	s.InterestRate = interestRate
	s.AnnualIncome = annualIncome
}

// AddRental appends a rental unit with a fresh id.
func (s *State) AddRental(unit RentalUnit) RentalUnit {
	unit.ID = uuid.NewString()
	s.Rentals = append(s.Rentals, unit)
	return unit
}

// RemoveRental deletes the matching rental unit.
func (s *State) RemoveRental(id string) error {
	for i := range s.Rentals {
		if s.Rentals[i].ID == id {
			s.Rentals = append(s.Rentals[:i], s.Rentals[i+1:]...)
			return nil
		}
	}
	return stderrors.NewRentalNotFoundError(id)
}

// DecoratedProperty is a collateral item plus its freshly derived amounts.
type DecoratedProperty struct {
	Property
	CalculatedAmt float64 `json:"calculatedAmt"`
	FinalAmt      float64 `json:"finalAmt"`
}

// View is the read model returned to clients. Derived amounts are recomputed
// on every call from the current registry.
type View struct {
	Location           Location            `json:"location"`
	Properties         []DecoratedProperty `json:"properties"`
	Rentals            []RentalUnit        `json:"rentals"`
	SelectedPropertyID *string             `json:"selectedPropertyId"`
	InterestRate       float64             `json:"interestRate"`
	AnnualIncome       float64             `json:"annualIncome"`
	TotalLimit         float64             `json:"totalLimit"`
	TotalLimitDisplay  string              `json:"totalLimitDisplay"`
}

// Snapshot returns the decorated read model of the aggregate.
func (s *State) Snapshot() View {
	decorated := make([]DecoratedProperty, len(s.Properties))
	for i, p := range s.Properties {
		decorated[i] = DecoratedProperty{
			Property:      p,
			CalculatedAmt: CalculatedAmount(p),
			FinalAmt:      FinalAmount(p),
		}
	}

	total := TotalLimit(s.Properties)

	rentals := s.Rentals
	if rentals == nil {
		rentals = []RentalUnit{}
	}

	return View{
		Location:           s.Location,
		Properties:         decorated,
		Rentals:            rentals,
		SelectedPropertyID: s.SelectedPropertyID,
		InterestRate:       s.InterestRate,
		AnnualIncome:       s.AnnualIncome,
		TotalLimit:         total,
		TotalLimitDisplay:  FormatAmount(total),
	}
}
