package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainunits "tarifario/internal/domain/units"
)

type UnitRepository struct {
	col *mongo.Collection
}

func NewUnitRepository(db *mongo.Database) *UnitRepository {
	return &UnitRepository{col: db.Collection("units")}
}

func (r *UnitRepository) ByID(ctx context.Context, id domainunits.UnitID) (*domainunits.Unit, error) {
	var doc unitDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainunits.ErrUnitNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *UnitRepository) Save(ctx context.Context, unit *domainunits.Unit) error {
	doc := newUnitDocument(unit)
	opts := options.Replace().SetUpsert(true)
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, opts)
	return err
}

func (r *UnitRepository) List(ctx context.Context) ([]*domainunits.Unit, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []*domainunits.Unit
	for cursor.Next(ctx) {
		var doc unitDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cursor.Err()
}

type unitDocument struct {
	ID        string `bson:"_id"`
	Name      string `bson:"name"`
	Currency  string `bson:"currency"`
	Active    bool   `bson:"active"`
	CreatedAt int64  `bson:"created_at"`
	UpdatedAt int64  `bson:"updated_at"`
}

func newUnitDocument(unit *domainunits.Unit) unitDocument {
	return unitDocument{
		ID:        string(unit.ID),
		Name:      unit.Name,
		Currency:  unit.Currency,
		Active:    unit.Active,
		CreatedAt: unit.CreatedAt.UnixMilli(),
		UpdatedAt: unit.UpdatedAt.UnixMilli(),
	}
}

func (d unitDocument) toAggregate() *domainunits.Unit {
	return &domainunits.Unit{
		ID:        domainunits.UnitID(d.ID),
		Name:      d.Name,
		Currency:  d.Currency,
		Active:    d.Active,
		CreatedAt: timestampToTime(d.CreatedAt),
		UpdatedAt: timestampToTime(d.UpdatedAt),
	}
}

var _ domainunits.Repository = (*UnitRepository)(nil)
