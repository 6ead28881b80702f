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

const reportCollection = "reports"

type MongoReportRepository struct {
	coll *mongo.Collection
}

func NewReportRepository(db *mongo.Database) *MongoReportRepository {
	return &MongoReportRepository{coll: db.Collection(reportCollection)}
}

var _ ports.ReportRepository = (*MongoReportRepository)(nil)

type mongoReport struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	ContentType  string             `bson:"content_type"`
	ContentID    string             `bson:"content_id"`
	ReportedByID string             `bson:"reported_by_id"`
	Reason       string             `bson:"reason"`
	Status       string             `bson:"status"`
	CreatedAt    int64              `bson:"created_at"`
	UpdatedAt    int64              `bson:"updated_at"`
}

func (r *MongoReportRepository) Create(ctx context.Context, report *domain.Report) (*domain.Report, error) {
	doc := mongoReport{
		ContentType:  string(report.ContentType),
		ContentID:    report.ContentID,
		ReportedByID: report.ReportedByID,
		Reason:       report.Reason,
		Status:       string(report.Status),
		CreatedAt:    report.CreatedAt.Unix(),
		UpdatedAt:    report.UpdatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert report: %w", err)
	}

	out := *report
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		out.ID = oid.Hex()
	}
	return &out, nil
}

func (r *MongoReportRepository) FindByID(ctx context.Context, id string) (*domain.Report, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrReportNotFound
	}

	var mr mongoReport
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mr); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrReportNotFound
		}
		return nil, fmt.Errorf("find report: %w", err)
	}
	return mr.toDomain(), nil
}

func (r *MongoReportRepository) ListByStatus(ctx context.Context, status domain.ReportStatus) ([]*domain.Report, error) {
	cur, err := r.coll.Find(ctx,
		bson.M{"status": string(status)},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Report
	for cur.Next(ctx) {
		var mr mongoReport
		if err := cur.Decode(&mr); err != nil {
			return nil, fmt.Errorf("decode report: %w", err)
		}
		out = append(out, mr.toDomain())
	}
	return out, cur.Err()
}

func (r *MongoReportRepository) UpdateStatus(ctx context.Context, id string, status domain.ReportStatus) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrReportNotFound
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"status":     string(status),
		"updated_at": time.Now().UTC().Unix(),
	}})
	if err != nil {
		return fmt.Errorf("update report status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrReportNotFound
	}
	return nil
}

func (mr *mongoReport) toDomain() *domain.Report {
	return &domain.Report{
		ID:           mr.ID.Hex(),
		ContentType:  domain.ContentType(mr.ContentType),
		ContentID:    mr.ContentID,
		ReportedByID: mr.ReportedByID,
		Reason:       mr.Reason,
		Status:       domain.ReportStatus(mr.Status),
		CreatedAt:    unixToTime(mr.CreatedAt),
		UpdatedAt:    unixToTime(mr.UpdatedAt),
	}
}
