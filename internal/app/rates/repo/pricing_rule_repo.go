package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/civil"
	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/rategrid-service/internal/app/rates/contracts"
	"github.com/light-bringer/rategrid-service/internal/app/rates/domain"
	"github.com/light-bringer/rategrid-service/internal/models/m_pricing_rule"
	"github.com/light-bringer/rategrid-service/internal/pkg/query"
)

// PricingRuleRepo implements PricingRuleRepository for Spanner.
type PricingRuleRepo struct {
	client *spanner.Client
	model  *m_pricing_rule.Model
}

// NewPricingRuleRepo creates a new PricingRuleRepo.
func NewPricingRuleRepo(client *spanner.Client) contracts.PricingRuleRepository {
	return &PricingRuleRepo{
		client: client,
		model:  m_pricing_rule.NewModel(),
	}
}

// InsertMut creates a mutation for inserting a new rule.
func (r *PricingRuleRepo) InsertMut(rule *domain.PricingRule) (*spanner.Mutation, error) {
	data, err := r.domainToData(rule)
	if err != nil {
		return nil, err
	}
	return r.model.InsertMut(data), nil
}

// UpdateMut creates a mutation rewriting the rule's mutable columns.
// Pricing rules have no field-level change tracking; the whole row is
// rewritten from the aggregate.
func (r *PricingRuleRepo) UpdateMut(rule *domain.PricingRule) (*spanner.Mutation, error) {
	data, err := r.domainToData(rule)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		m_pricing_rule.Name:                          data.Name,
		m_pricing_rule.Active:                        data.Active,
		m_pricing_rule.Priority:                      data.Priority,
		m_pricing_rule.StartDate:                     data.StartDate,
		m_pricing_rule.EndDate:                       data.EndDate,
		m_pricing_rule.MinNights:                     data.MinNights,
		m_pricing_rule.MaxNights:                     data.MaxNights,
		m_pricing_rule.AdvanceBookingDays:            data.AdvanceBookingDays,
		m_pricing_rule.DiscountPercentageNumerator:   data.DiscountPercentageNumerator,
		m_pricing_rule.DiscountPercentageDenominator: data.DiscountPercentageDenominator,
		m_pricing_rule.DiscountAmountNumerator:       data.DiscountAmountNumerator,
		m_pricing_rule.DiscountAmountDenominator:     data.DiscountAmountDenominator,
		m_pricing_rule.PriceAdjustmentNumerator:      data.PriceAdjustmentNumerator,
		m_pricing_rule.PriceAdjustmentDenominator:    data.PriceAdjustmentDenominator,
	}

	return r.model.UpdateMut(rule.ID(), updates), nil
}

// GetByID retrieves a rule by ID.
func (r *PricingRuleRepo) GetByID(ctx context.Context, ruleID string) (*domain.PricingRule, error) {
	row, err := r.client.Single().ReadRow(ctx, m_pricing_rule.TableName, spanner.Key{ruleID}, ruleColumns())
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrRuleNotFound
		}
		return nil, fmt.Errorf("failed to read pricing rule: %w", err)
	}

	var data m_pricing_rule.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse pricing rule: %w", err)
	}

	return r.dataToDomain(&data)
}

// ListActiveByHotel retrieves a hotel's active rules, priority descending.
func (r *PricingRuleRepo) ListActiveByHotel(ctx context.Context, hotelID string) ([]*domain.PricingRule, error) {
	stmt := query.From(m_pricing_rule.TableName).
		Select(ruleColumns()...).
		Where(query.Eq(m_pricing_rule.HotelID, hotelID)).
		Where(query.Eq(m_pricing_rule.Active, true)).
		OrderBy(m_pricing_rule.Priority, query.Desc).
		Build()

	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	rules := make([]*domain.PricingRule, 0)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list pricing rules: %w", err)
		}

		var data m_pricing_rule.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse pricing rule: %w", err)
		}

		rule, err := r.dataToDomain(&data)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}

	return rules, nil
}

func ruleColumns() []string {
	return []string{
		m_pricing_rule.RuleID,
		m_pricing_rule.HotelID,
		m_pricing_rule.Name,
		m_pricing_rule.Active,
		m_pricing_rule.Priority,
		m_pricing_rule.StartDate,
		m_pricing_rule.EndDate,
		m_pricing_rule.MinNights,
		m_pricing_rule.MaxNights,
		m_pricing_rule.AdvanceBookingDays,
		m_pricing_rule.DiscountPercentageNumerator,
		m_pricing_rule.DiscountPercentageDenominator,
		m_pricing_rule.DiscountAmountNumerator,
		m_pricing_rule.DiscountAmountDenominator,
		m_pricing_rule.PriceAdjustmentNumerator,
		m_pricing_rule.PriceAdjustmentDenominator,
		m_pricing_rule.CreatedAt,
		m_pricing_rule.UpdatedAt,
	}
}

// domainToData converts a domain PricingRule to database Data.
func (r *PricingRuleRepo) domainToData(rule *domain.PricingRule) (*m_pricing_rule.Data, error) {
	pctNum, pctDen, err := nullPairFromMoney(rule.DiscountPercentage())
	if err != nil {
		return nil, fmt.Errorf("discount percentage: %w", err)
	}
	amtNum, amtDen, err := nullPairFromMoney(rule.DiscountAmount())
	if err != nil {
		return nil, fmt.Errorf("discount amount: %w", err)
	}
	adjNum, adjDen, err := nullPairFromMoney(rule.PriceAdjustment())
	if err != nil {
		return nil, fmt.Errorf("price adjustment: %w", err)
	}

	return &m_pricing_rule.Data{
		RuleID:                        rule.ID(),
		HotelID:                       rule.HotelID(),
		Name:                          rule.Name(),
		Active:                        rule.Active(),
		Priority:                      rule.Priority(),
		StartDate:                     nullDatePtr(rule.StartDate()),
		EndDate:                       nullDatePtr(rule.EndDate()),
		MinNights:                     nullInt64Ptr(rule.MinNights()),
		MaxNights:                     nullInt64Ptr(rule.MaxNights()),
		AdvanceBookingDays:            nullInt64Ptr(rule.AdvanceBookingDays()),
		DiscountPercentageNumerator:   pctNum,
		DiscountPercentageDenominator: pctDen,
		DiscountAmountNumerator:       amtNum,
		DiscountAmountDenominator:     amtDen,
		PriceAdjustmentNumerator:      adjNum,
		PriceAdjustmentDenominator:    adjDen,
	}, nil
}

// dataToDomain converts database Data to a domain PricingRule.
func (r *PricingRuleRepo) dataToDomain(data *m_pricing_rule.Data) (*domain.PricingRule, error) {
	discountPercentage, err := moneyFromNullPair(data.DiscountPercentageNumerator, data.DiscountPercentageDenominator)
	if err != nil {
		return nil, fmt.Errorf("invalid discount percentage: %w", err)
	}
	discountAmount, err := moneyFromNullPair(data.DiscountAmountNumerator, data.DiscountAmountDenominator)
	if err != nil {
		return nil, fmt.Errorf("invalid discount amount: %w", err)
	}
	priceAdjustment, err := moneyFromNullPair(data.PriceAdjustmentNumerator, data.PriceAdjustmentDenominator)
	if err != nil {
		return nil, fmt.Errorf("invalid price adjustment: %w", err)
	}

	var startDate, endDate *civil.Date
	if data.StartDate.Valid {
		d := data.StartDate.Date
		startDate = &d
	}
	if data.EndDate.Valid {
		d := data.EndDate.Date
		endDate = &d
	}

	return domain.ReconstructPricingRule(
		data.RuleID,
		data.HotelID,
		data.Name,
		data.Active,
		data.Priority,
		startDate,
		endDate,
		int64PtrFromNull(data.MinNights),
		int64PtrFromNull(data.MaxNights),
		int64PtrFromNull(data.AdvanceBookingDays),
		discountPercentage,
		discountAmount,
		priceAdjustment,
		data.CreatedAt,
		data.UpdatedAt,
	), nil
}

func nullPairFromMoney(m *domain.Money) (spanner.NullInt64, spanner.NullInt64, error) {
	if m == nil {
		return spanner.NullInt64{}, spanner.NullInt64{}, nil
	}
	normalized := m.Normalize()
	if !normalized.IsSafeForStorage() {
		return spanner.NullInt64{}, spanner.NullInt64{}, domain.ErrMoneyOverflow
	}
	return spanner.NullInt64{Int64: normalized.Numerator(), Valid: true},
		spanner.NullInt64{Int64: normalized.Denominator(), Valid: true},
		nil
}

func moneyFromNullPair(num, den spanner.NullInt64) (*domain.Money, error) {
	if !num.Valid {
		return nil, nil
	}
	denominator := int64(1)
	if den.Valid {
		denominator = den.Int64
	}
	return domain.NewMoney(num.Int64, denominator)
}

func int64PtrFromNull(n spanner.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}
