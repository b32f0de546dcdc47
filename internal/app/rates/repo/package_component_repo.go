package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/rategrid-service/internal/app/rates/contracts"
	"github.com/light-bringer/rategrid-service/internal/app/rates/domain"
	"github.com/light-bringer/rategrid-service/internal/models/m_package_component"
	"github.com/light-bringer/rategrid-service/internal/pkg/query"
)

// PackageComponentRepo implements PackageComponentRepository for Spanner.
type PackageComponentRepo struct {
	client *spanner.Client
	model  *m_package_component.Model
}

// NewPackageComponentRepo creates a new PackageComponentRepo.
func NewPackageComponentRepo(client *spanner.Client) contracts.PackageComponentRepository {
	return &PackageComponentRepo{
		client: client,
		model:  m_package_component.NewModel(),
	}
}

// InsertMut creates a mutation for inserting a new component.
func (r *PackageComponentRepo) InsertMut(component *domain.RatePackageComponent) (*spanner.Mutation, error) {
	unitNum, unitDen, err := nullPairFromMoney(component.UnitPrice())
	if err != nil {
		return nil, fmt.Errorf("unit price: %w", err)
	}
	adultNum, adultDen, err := nullPairFromMoney(component.AdultPrice())
	if err != nil {
		return nil, fmt.Errorf("adult price: %w", err)
	}
	childNum, childDen, err := nullPairFromMoney(component.ChildPrice())
	if err != nil {
		return nil, fmt.Errorf("child price: %w", err)
	}
	infantNum, infantDen, err := nullPairFromMoney(component.InfantPrice())
	if err != nil {
		return nil, fmt.Errorf("infant price: %w", err)
	}

	data := &m_package_component.Data{
		ComponentID:            component.ID(),
		RatePlanID:             component.RatePlanID(),
		Name:                   component.Name(),
		ComponentType:          string(component.ComponentType()),
		Included:               component.Included(),
		Quantity:               component.Quantity(),
		PricingMode:            string(component.PricingMode()),
		UnitPriceNumerator:     unitNum,
		UnitPriceDenominator:   unitDen,
		AdultPriceNumerator:    adultNum,
		AdultPriceDenominator:  adultDen,
		ChildPriceNumerator:    childNum,
		ChildPriceDenominator:  childDen,
		InfantPriceNumerator:   infantNum,
		InfantPriceDenominator: infantDen,
	}

	return r.model.InsertMut(data), nil
}

// DeleteMut creates a mutation for removing a component.
func (r *PackageComponentRepo) DeleteMut(componentID string) *spanner.Mutation {
	return r.model.DeleteMut(componentID)
}

// ListByRatePlans retrieves components for the given package plans.
func (r *PackageComponentRepo) ListByRatePlans(ctx context.Context, ratePlanIDs []string) ([]*domain.RatePackageComponent, error) {
	if len(ratePlanIDs) == 0 {
		return nil, nil
	}

	stmt := query.From(m_package_component.TableName).
		Select(componentColumns()...).
		Where(query.In(m_package_component.RatePlanID, ratePlanIDs)).
		OrderBy(m_package_component.Name, query.Asc).
		Build()

	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	components := make([]*domain.RatePackageComponent, 0)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list package components: %w", err)
		}

		var data m_package_component.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse package component: %w", err)
		}

		component, err := r.dataToDomain(&data)
		if err != nil {
			return nil, err
		}
		components = append(components, component)
	}

	return components, nil
}

func componentColumns() []string {
	return []string{
		m_package_component.ComponentID,
		m_package_component.RatePlanID,
		m_package_component.Name,
		m_package_component.ComponentType,
		m_package_component.Included,
		m_package_component.Quantity,
		m_package_component.PricingMode,
		m_package_component.UnitPriceNumerator,
		m_package_component.UnitPriceDenominator,
		m_package_component.AdultPriceNumerator,
		m_package_component.AdultPriceDenominator,
		m_package_component.ChildPriceNumerator,
		m_package_component.ChildPriceDenominator,
		m_package_component.InfantPriceNumerator,
		m_package_component.InfantPriceDenominator,
		m_package_component.CreatedAt,
		m_package_component.UpdatedAt,
	}
}

// dataToDomain converts database Data to a domain RatePackageComponent.
func (r *PackageComponentRepo) dataToDomain(data *m_package_component.Data) (*domain.RatePackageComponent, error) {
	unitPrice, err := moneyFromNullPair(data.UnitPriceNumerator, data.UnitPriceDenominator)
	if err != nil {
		return nil, fmt.Errorf("invalid unit price: %w", err)
	}
	adultPrice, err := moneyFromNullPair(data.AdultPriceNumerator, data.AdultPriceDenominator)
	if err != nil {
		return nil, fmt.Errorf("invalid adult price: %w", err)
	}
	childPrice, err := moneyFromNullPair(data.ChildPriceNumerator, data.ChildPriceDenominator)
	if err != nil {
		return nil, fmt.Errorf("invalid child price: %w", err)
	}
	infantPrice, err := moneyFromNullPair(data.InfantPriceNumerator, data.InfantPriceDenominator)
	if err != nil {
		return nil, fmt.Errorf("invalid infant price: %w", err)
	}

	return domain.ReconstructRatePackageComponent(
		data.ComponentID,
		data.RatePlanID,
		data.Name,
		domain.ComponentType(data.ComponentType),
		data.Included,
		data.Quantity,
		domain.PricingMode(data.PricingMode),
		unitPrice,
		adultPrice,
		childPrice,
		infantPrice,
		data.CreatedAt,
		data.UpdatedAt,
	), nil
}
