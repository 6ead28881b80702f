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

const questionCollection = "questions"

type MongoQuestionRepository struct {
	coll *mongo.Collection
}

func NewQuestionRepository(db *mongo.Database) *MongoQuestionRepository {
	return &MongoQuestionRepository{coll: db.Collection(questionCollection)}
}

var _ ports.QuestionRepository = (*MongoQuestionRepository)(nil)

type mongoTag struct {
	Name string `bson:"name"`
	Slug string `bson:"slug"`
}

type mongoQuestion struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	Content   string             `bson:"content"`
	EntityID  string             `bson:"entity_id"`
	AskedByID string             `bson:"asked_by_id"`
	Tags      []mongoTag         `bson:"tags,omitempty"`
	Upvotes   int                `bson:"upvotes"`
	Downvotes int                `bson:"downvotes"`
	ViewCount int                `bson:"view_count"`
	Status    string             `bson:"status"`
	CreatedAt int64              `bson:"created_at"`
	UpdatedAt int64              `bson:"updated_at"`
}

func (r *MongoQuestionRepository) Create(ctx context.Context, q *domain.Question) (*domain.Question, error) {
	tags := make([]mongoTag, 0, len(q.Tags))
	for _, t := range q.Tags {
		tags = append(tags, mongoTag{Name: t.Name, Slug: t.Slug})
	}

	doc := mongoQuestion{
		Title:     q.Title,
		Content:   q.Content,
		EntityID:  q.EntityID,
		AskedByID: q.AskedByID,
		Tags:      tags,
		Status:    string(q.Status),
		CreatedAt: q.CreatedAt.Unix(),
		UpdatedAt: q.UpdatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert question: %w", err)
	}

	out := *q
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		out.ID = oid.Hex()
	}
	return &out, nil
}

func (r *MongoQuestionRepository) FindByID(ctx context.Context, id string) (*domain.Question, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrQuestionNotFound
	}

	var mq mongoQuestion
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mq); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrQuestionNotFound
		}
		return nil, fmt.Errorf("find question: %w", err)
	}
	return mq.toDomain(), nil
}

func (r *MongoQuestionRepository) List(ctx context.Context, filter ports.ListQuestionsFilter) ([]*domain.Question, int64, error) {
	query := bson.M{}
	if filter.EntityID != "" {
		query["entity_id"] = filter.EntityID
	}
	if filter.AskedBy != "" {
		query["asked_by_id"] = filter.AskedBy
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Tag != "" {
		query["tags.slug"] = filter.Tag
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count questions: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list questions: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Question
	for cur.Next(ctx) {
		var mq mongoQuestion
		if err := cur.Decode(&mq); err != nil {
			return nil, 0, fmt.Errorf("decode question: %w", err)
		}
		out = append(out, mq.toDomain())
	}
	return out, total, cur.Err()
}

func (r *MongoQuestionRepository) UpdateStatus(ctx context.Context, id string, status domain.ModerationStatus) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrQuestionNotFound
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"status":     string(status),
		"updated_at": time.Now().UTC().Unix(),
	}})
	if err != nil {
		return fmt.Errorf("update question status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrQuestionNotFound
	}
	return nil
}

func (r *MongoQuestionRepository) AddVote(ctx context.Context, id string, dir domain.VoteDirection) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrQuestionNotFound
	}

	field := "upvotes"
	if dir == domain.VoteDown {
		field = "downvotes"
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$inc": bson.M{field: 1}})
	if err != nil {
		return fmt.Errorf("vote question: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrQuestionNotFound
	}
	return nil
}

func (r *MongoQuestionRepository) IncrementViews(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrQuestionNotFound
	}
	return r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$inc": bson.M{"view_count": 1}}).Err()
}

func (r *MongoQuestionRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrQuestionNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete question: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrQuestionNotFound
	}
	return nil
}

func (mq *mongoQuestion) toDomain() *domain.Question {
	tags := make([]domain.Tag, 0, len(mq.Tags))
	for _, t := range mq.Tags {
		tags = append(tags, domain.Tag{Name: t.Name, Slug: t.Slug})
	}
	return &domain.Question{
		ID:        mq.ID.Hex(),
		Title:     mq.Title,
		Content:   mq.Content,
		EntityID:  mq.EntityID,
		AskedByID: mq.AskedByID,
		Tags:      tags,
		Upvotes:   mq.Upvotes,
		Downvotes: mq.Downvotes,
		ViewCount: mq.ViewCount,
		Status:    domain.ModerationStatus(mq.Status),
		CreatedAt: unixToTime(mq.CreatedAt),
		UpdatedAt: unixToTime(mq.UpdatedAt),
	}
}
