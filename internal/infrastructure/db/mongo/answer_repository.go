package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/asklynk/qa-platform/internal/core/domain"
	"github.com/asklynk/qa-platform/internal/core/ports"
)

const answerCollection = "answers"

type MongoAnswerRepository struct {
	coll *mongo.Collection
}

func NewAnswerRepository(db *mongo.Database) *MongoAnswerRepository {
	return &MongoAnswerRepository{coll: db.Collection(answerCollection)}
}

var _ ports.AnswerRepository = (*MongoAnswerRepository)(nil)

type mongoAnswer struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	QuestionID   string             `bson:"question_id"`
	Content      string             `bson:"content"`
	AnsweredByID string             `bson:"answered_by_id"`
	Upvotes      int                `bson:"upvotes"`
	Downvotes    int                `bson:"downvotes"`
	CreatedAt    int64              `bson:"created_at"`
	UpdatedAt    int64              `bson:"updated_at"`
}

func (r *MongoAnswerRepository) Create(ctx context.Context, a *domain.Answer) (*domain.Answer, error) {
	doc := mongoAnswer{
		QuestionID:   a.QuestionID,
		Content:      a.Content,
		AnsweredByID: a.AnsweredByID,
		CreatedAt:    a.CreatedAt.Unix(),
		UpdatedAt:    a.UpdatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert answer: %w", err)
	}

	out := *a
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		out.ID = oid.Hex()
	}
	return &out, nil
}

func (r *MongoAnswerRepository) FindByID(ctx context.Context, id string) (*domain.Answer, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAnswerNotFound
	}

	var ma mongoAnswer
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&ma); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrAnswerNotFound
		}
		return nil, fmt.Errorf("find answer: %w", err)
	}
	return ma.toDomain(), nil
}

func (r *MongoAnswerRepository) ListByQuestion(ctx context.Context, questionID string) ([]*domain.Answer, error) {
	opts := options.Find().SetSort(bson.D{{Key: "upvotes", Value: -1}, {Key: "created_at", Value: 1}})

	cur, err := r.coll.Find(ctx, bson.M{"question_id": questionID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Answer
	for cur.Next(ctx) {
		var ma mongoAnswer
		if err := cur.Decode(&ma); err != nil {
			return nil, fmt.Errorf("decode answer: %w", err)
		}
		out = append(out, ma.toDomain())
	}
	return out, cur.Err()
}

func (r *MongoAnswerRepository) AddVote(ctx context.Context, id string, dir domain.VoteDirection) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrAnswerNotFound
	}

	field := "upvotes"
	if dir == domain.VoteDown {
		field = "downvotes"
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$inc": bson.M{field: 1}})
	if err != nil {
		return fmt.Errorf("vote answer: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAnswerNotFound
	}
	return nil
}

func (r *MongoAnswerRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrAnswerNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete answer: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrAnswerNotFound
	}
	return nil
}

func (ma *mongoAnswer) toDomain() *domain.Answer {
	return &domain.Answer{
		ID:           ma.ID.Hex(),
		QuestionID:   ma.QuestionID,
		Content:      ma.Content,
		AnsweredByID: ma.AnsweredByID,
		Upvotes:      ma.Upvotes,
		Downvotes:    ma.Downvotes,
		CreatedAt:    unixToTime(ma.CreatedAt),
		UpdatedAt:    unixToTime(ma.UpdatedAt),
	}
}
