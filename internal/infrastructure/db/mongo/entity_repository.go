package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/asklynk/qa-platform/internal/core/domain"
	"github.com/asklynk/qa-platform/internal/core/ports"
)

const (
	entityCollection   = "entities"
	categoryCollection = "categories"
)

type MongoEntityRepository struct {
	coll *mongo.Collection
}

func NewEntityRepository(db *mongo.Database) *MongoEntityRepository {
	return &MongoEntityRepository{coll: db.Collection(entityCollection)}
}

var _ ports.EntityRepository = (*MongoEntityRepository)(nil)

type mongoEntity struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Name          string             `bson:"name"`
	Description   string             `bson:"description,omitempty"`
	Slug          string             `bson:"slug"`
	Bio           string             `bson:"bio,omitempty"`
	Categories    []string           `bson:"categories,omitempty"`
	IsVerified    bool               `bson:"is_verified"`
	IsAvailable   bool               `bson:"is_available"`
	QuestionCount int                `bson:"question_count"`
	CreatedAt     int64              `bson:"created_at"`
	UpdatedAt     int64              `bson:"updated_at"`
}

func (r *MongoEntityRepository) Create(ctx context.Context, e *domain.Entity) (*domain.Entity, error) {
	doc := mongoEntity{
		Name:        e.Name,
		Description: e.Description,
		Slug:        e.Slug,
		Bio:         e.Bio,
		Categories:  e.Categories,
		IsVerified:  e.IsVerified,
		IsAvailable: e.IsAvailable,
		CreatedAt:   e.CreatedAt.Unix(),
		UpdatedAt:   e.UpdatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateEntity
		}
		return nil, fmt.Errorf("insert entity: %w", err)
	}

	out := *e
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		out.ID = oid.Hex()
	}
	return &out, nil
}

func (r *MongoEntityRepository) FindByID(ctx context.Context, id string) (*domain.Entity, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrEntityNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *MongoEntityRepository) FindBySlug(ctx context.Context, slug string) (*domain.Entity, error) {
	return r.findOne(ctx, bson.M{"slug": slug})
}

func (r *MongoEntityRepository) List(ctx context.Context, filter ports.ListEntitiesFilter) ([]*domain.Entity, int64, error) {
	query := bson.M{}
	if filter.Category != "" {
		query["categories"] = filter.Category
	}
	if filter.VerifiedOnly {
		query["is_verified"] = true
	}
	if filter.AvailableOnly {
		query["is_available"] = true
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count entities: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list entities: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Entity
	for cur.Next(ctx) {
		var me mongoEntity
		if err := cur.Decode(&me); err != nil {
			return nil, 0, fmt.Errorf("decode entity: %w", err)
		}
		out = append(out, me.toDomain())
	}
	return out, total, cur.Err()
}

func (r *MongoEntityRepository) Update(ctx context.Context, e *domain.Entity) error {
	oid, err := primitive.ObjectIDFromHex(e.ID)
	if err != nil {
		return domain.ErrEntityNotFound
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"description": e.Description,
		"bio":         e.Bio,
		"categories":  e.Categories,
		"updated_at":  e.UpdatedAt.Unix(),
	}})
	if err != nil {
		return fmt.Errorf("update entity: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrEntityNotFound
	}
	return nil
}

func (r *MongoEntityRepository) SetFlags(ctx context.Context, id string, verified, available *bool) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrEntityNotFound
	}

	set := bson.M{"updated_at": time.Now().UTC().Unix()}
	if verified != nil {
		set["is_verified"] = *verified
	}
	if available != nil {
		set["is_available"] = *available
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("set entity flags: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrEntityNotFound
	}
	return nil
}

func (r *MongoEntityRepository) IncrementQuestionCount(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrEntityNotFound
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$inc": bson.M{"question_count": 1}})
	if err != nil {
		return fmt.Errorf("increment question count: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrEntityNotFound
	}
	return nil
}

func (r *MongoEntityRepository) Top(ctx context.Context, limit int) ([]*domain.Entity, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "question_count", Value: -1}, {Key: "name", Value: 1}}).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, bson.M{"is_available": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("top entities: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Entity
	for cur.Next(ctx) {
		var me mongoEntity
		if err := cur.Decode(&me); err != nil {
			return nil, fmt.Errorf("decode entity: %w", err)
		}
		out = append(out, me.toDomain())
	}
	return out, cur.Err()
}

func (r *MongoEntityRepository) findOne(ctx context.Context, filter bson.M) (*domain.Entity, error) {
	var me mongoEntity
	if err := r.coll.FindOne(ctx, filter).Decode(&me); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrEntityNotFound
		}
		return nil, fmt.Errorf("find entity: %w", err)
	}
	return me.toDomain(), nil
}

func (me *mongoEntity) toDomain() *domain.Entity {
	return &domain.Entity{
		ID:            me.ID.Hex(),
		Name:          me.Name,
		Description:   me.Description,
		Slug:          me.Slug,
		Bio:           me.Bio,
		Categories:    me.Categories,
		IsVerified:    me.IsVerified,
		IsAvailable:   me.IsAvailable,
		QuestionCount: me.QuestionCount,
		CreatedAt:     unixToTime(me.CreatedAt),
		UpdatedAt:     unixToTime(me.UpdatedAt),
	}
}

// MongoCategoryRepository persists categories.
type MongoCategoryRepository struct {
	coll *mongo.Collection
}

func NewCategoryRepository(db *mongo.Database) *MongoCategoryRepository {
	return &MongoCategoryRepository{coll: db.Collection(categoryCollection)}
}

var _ ports.CategoryRepository = (*MongoCategoryRepository)(nil)

type mongoCategory struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description,omitempty"`
	Slug        string             `bson:"slug"`
	CreatedAt   int64              `bson:"created_at"`
	UpdatedAt   int64              `bson:"updated_at"`
}

func (r *MongoCategoryRepository) Create(ctx context.Context, c *domain.Category) (*domain.Category, error) {
	doc := mongoCategory{
		Name:        c.Name,
		Description: c.Description,
		Slug:        c.Slug,
		CreatedAt:   c.CreatedAt.Unix(),
		UpdatedAt:   c.UpdatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateEntity
		}
		return nil, fmt.Errorf("insert category: %w", err)
	}

	out := *c
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		out.ID = oid.Hex()
	}
	return &out, nil
}

func (r *MongoCategoryRepository) FindBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	var mc mongoCategory
	if err := r.coll.FindOne(ctx, bson.M{"slug": slug}).Decode(&mc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("find category: %w", err)
	}
	return mc.toDomain(), nil
}

func (r *MongoCategoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Category
	for cur.Next(ctx) {
		var mc mongoCategory
		if err := cur.Decode(&mc); err != nil {
			return nil, fmt.Errorf("decode category: %w", err)
		}
		out = append(out, mc.toDomain())
	}
	return out, cur.Err()
}

func (mc *mongoCategory) toDomain() *domain.Category {
	return &domain.Category{
		ID:          mc.ID.Hex(),
		Name:        mc.Name,
		Description: mc.Description,
		Slug:        mc.Slug,
		CreatedAt:   unixToTime(mc.CreatedAt),
		UpdatedAt:   unixToTime(mc.UpdatedAt),
	}
}
