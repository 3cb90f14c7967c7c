package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainpricing "tarifario/internal/domain/pricing"
	"tarifario/internal/domain/shared/money"
	domainunits "tarifario/internal/domain/units"
)

type RuleRepository struct {
	col *mongo.Collection
}

func NewRuleRepository(db *mongo.Database) *RuleRepository {
	return &RuleRepository{col: db.Collection("pricing_rules")}
}

// EnsureIndexes creates the unit lookup index used by ListByUnit.
func (r *RuleRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "unit_id", Value: 1}},
	})
	return err
}

func (r *RuleRepository) ByID(ctx context.Context, id domainpricing.RuleID) (*domainpricing.Rule, error) {
	var doc ruleDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainpricing.ErrRuleNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *RuleRepository) ListByUnit(ctx context.Context, unitID domainunits.UnitID) ([]*domainpricing.Rule, error) {
	cursor, err := r.col.Find(ctx, bson.M{"unit_id": string(unitID)})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []*domainpricing.Rule
	for cursor.Next(ctx) {
		var doc ruleDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cursor.Err()
}

func (r *RuleRepository) Create(ctx context.Context, rule *domainpricing.Rule) error {
	_, err := r.col.InsertOne(ctx, newRuleDocument(rule))
	return err
}

func (r *RuleRepository) Save(ctx context.Context, rule *domainpricing.Rule) error {
	doc := newRuleDocument(rule)
	opts := options.Replace().SetUpsert(false)
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, opts)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domainpricing.ErrRuleNotFound
	}
	return nil
}

func (r *RuleRepository) Delete(ctx context.Context, id domainpricing.RuleID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": string(id)})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domainpricing.ErrRuleNotFound
	}
	return nil
}

type ruleDocument struct {
	ID         string `bson:"_id"`
	UnitID     string `bson:"unit_id"`
	Name       string `bson:"name"`
	Type       string `bson:"type"`
	Priority   int    `bson:"priority"`
	PriceCents int64  `bson:"price_cents"`
	Currency   string `bson:"currency"`
	MinNights  int    `bson:"min_nights"`
	StartDate  *int64 `bson:"start_date,omitempty"`
	EndDate    *int64 `bson:"end_date,omitempty"`
	DaysOfWeek []int  `bson:"days_of_week,omitempty"`
	Active     bool   `bson:"active"`
	CreatedAt  int64  `bson:"created_at"`
	UpdatedAt  int64  `bson:"updated_at"`
}

func newRuleDocument(rule *domainpricing.Rule) ruleDocument {
	doc := ruleDocument{
		ID:         string(rule.ID),
		UnitID:     string(rule.UnitID),
		Name:       rule.Name,
		Type:       string(rule.Type),
		Priority:   rule.Priority,
		PriceCents: rule.BasePrice.Amount,
		Currency:   rule.BasePrice.Currency,
		MinNights:  rule.MinNights,
		Active:     rule.Active,
		CreatedAt:  rule.CreatedAt.UnixMilli(),
		UpdatedAt:  rule.UpdatedAt.UnixMilli(),
	}
	if rule.StartDate != nil {
		ms := rule.StartDate.UnixMilli()
		doc.StartDate = &ms
	}
	if rule.EndDate != nil {
		ms := rule.EndDate.UnixMilli()
		doc.EndDate = &ms
	}
	for _, day := range rule.DaysOfWeek {
		doc.DaysOfWeek = append(doc.DaysOfWeek, int(day))
	}
	return doc
}

func (d ruleDocument) toAggregate() *domainpricing.Rule {
	rule := &domainpricing.Rule{
		ID:        domainpricing.RuleID(d.ID),
		UnitID:    domainunits.UnitID(d.UnitID),
		Name:      d.Name,
		Type:      domainpricing.RuleType(d.Type),
		Priority:  d.Priority,
		BasePrice: money.Money{Amount: d.PriceCents, Currency: d.Currency},
		MinNights: d.MinNights,
		Active:    d.Active,
		CreatedAt: timestampToTime(d.CreatedAt),
		UpdatedAt: timestampToTime(d.UpdatedAt),
	}
	if d.StartDate != nil {
		t := timestampToTime(*d.StartDate)
		rule.StartDate = &t
	}
	if d.EndDate != nil {
		t := timestampToTime(*d.EndDate)
		rule.EndDate = &t
	}
	for _, day := range d.DaysOfWeek {
		rule.DaysOfWeek = append(rule.DaysOfWeek, time.Weekday(day))
	}
	return rule
}

func timestampToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

var _ domainpricing.Repository = (*RuleRepository)(nil)
