package domain

import "time"

// ComponentType classifies a bundled package inclusion.
type ComponentType string

const (
	ComponentMeal    ComponentType = "MEAL"
	ComponentService ComponentType = "SERVICE"
	ComponentAmenity ComponentType = "AMENITY"
	ComponentOther   ComponentType = "OTHER"
)

// PricingMode selects how a component is priced.
type PricingMode string

const (
	// PricePerUnit charges quantity x unitPrice regardless of who stays.
	PricePerUnit PricingMode = "PER_UNIT"
	// PricePerAudience charges quantity x the price for the guest audience.
	PricePerAudience PricingMode = "PER_AUDIENCE"
)

// GuestType is the audience dimension for per-audience component pricing.
type GuestType string

const (
	GuestAdult  GuestType = "ADULT"
	GuestChild  GuestType = "CHILD"
	GuestInfant GuestType = "INFANT"
)

// RatePackageComponent is an add-on inclusion bundled with a package-type
// rate plan (breakfast, airport transfer, spa credit). Component totals are
// additive alongside, not instead of, the resolved room rate.
type RatePackageComponent struct {
	id            string
	ratePlanID    string
	name          string
	componentType ComponentType
	included      bool
	quantity      int64
	pricingMode   PricingMode
	unitPrice     *Money
	adultPrice    *Money
	childPrice    *Money
	infantPrice   *Money
	createdAt     time.Time
	updatedAt     time.Time
}

// NewRatePackageComponent creates a validated component.
func NewRatePackageComponent(
	id, ratePlanID, name string,
	componentType ComponentType,
	included bool,
	quantity int64,
	pricingMode PricingMode,
	unitPrice, adultPrice, childPrice, infantPrice *Money,
	now time.Time,
) (*RatePackageComponent, error) {
	if name == "" {
		return nil, ErrEmptyComponentName
	}
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	switch pricingMode {
	case PricePerUnit:
		if unitPrice == nil {
			return nil, ErrMissingComponentRate
		}
	case PricePerAudience:
		if adultPrice == nil {
			return nil, ErrMissingComponentRate
		}
	default:
		return nil, ErrMissingComponentRate
	}

	return &RatePackageComponent{
		id:            id,
		ratePlanID:    ratePlanID,
		name:          name,
		componentType: componentType,
		included:      included,
		quantity:      quantity,
		pricingMode:   pricingMode,
		unitPrice:     unitPrice,
		adultPrice:    adultPrice,
		childPrice:    childPrice,
		infantPrice:   infantPrice,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

// ReconstructRatePackageComponent reconstitutes a component from the database.
func ReconstructRatePackageComponent(
	id, ratePlanID, name string,
	componentType ComponentType,
	included bool,
	quantity int64,
	pricingMode PricingMode,
	unitPrice, adultPrice, childPrice, infantPrice *Money,
	createdAt, updatedAt time.Time,
) *RatePackageComponent {
	return &RatePackageComponent{
		id:            id,
		ratePlanID:    ratePlanID,
		name:          name,
		componentType: componentType,
		included:      included,
		quantity:      quantity,
		pricingMode:   pricingMode,
		unitPrice:     unitPrice,
		adultPrice:    adultPrice,
		childPrice:    childPrice,
		infantPrice:   infantPrice,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// Getters
func (c *RatePackageComponent) ID() string                   { return c.id }
func (c *RatePackageComponent) RatePlanID() string           { return c.ratePlanID }
func (c *RatePackageComponent) Name() string                 { return c.name }
func (c *RatePackageComponent) ComponentType() ComponentType { return c.componentType }
func (c *RatePackageComponent) Included() bool               { return c.included }
func (c *RatePackageComponent) Quantity() int64              { return c.quantity }
func (c *RatePackageComponent) PricingMode() PricingMode     { return c.pricingMode }
func (c *RatePackageComponent) UnitPrice() *Money            { return c.unitPrice }
func (c *RatePackageComponent) AdultPrice() *Money           { return c.adultPrice }
func (c *RatePackageComponent) ChildPrice() *Money           { return c.childPrice }
func (c *RatePackageComponent) InfantPrice() *Money          { return c.infantPrice }
func (c *RatePackageComponent) CreatedAt() time.Time         { return c.createdAt }
func (c *RatePackageComponent) UpdatedAt() time.Time         { return c.updatedAt }

// Total returns the component's contribution for one guest of the given type.
// Audience prices fall back to the adult price when the specific audience
// price is unset.
func (c *RatePackageComponent) Total(guestType GuestType) *Money {
	switch c.pricingMode {
	case PricePerUnit:
		return c.unitPrice.MultiplyByInt(c.quantity)
	case PricePerAudience:
		price := c.adultPrice
		switch guestType {
		case GuestChild:
			if c.childPrice != nil {
				price = c.childPrice
			}
		case GuestInfant:
			if c.infantPrice != nil {
				price = c.infantPrice
			}
		}
		return price.MultiplyByInt(c.quantity)
	default:
		return Zero()
	}
}

// ComponentTotal sums the totals of all components for a guest type.
func ComponentTotal(components []*RatePackageComponent, guestType GuestType) *Money {
	sum := Zero()
	for _, c := range components {
		sum = sum.Add(c.Total(guestType))
	}
	return sum
}
