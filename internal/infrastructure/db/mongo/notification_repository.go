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

const notificationCollection = "notifications"

type MongoNotificationRepository struct {
	coll *mongo.Collection
}

func NewNotificationRepository(db *mongo.Database) *MongoNotificationRepository {
	return &MongoNotificationRepository{coll: db.Collection(notificationCollection)}
}

var _ ports.NotificationRepository = (*MongoNotificationRepository)(nil)

type mongoNotification struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	UserID      string             `bson:"user_id"`
	Type        string             `bson:"type"`
	Content     string             `bson:"content"`
	RelatedID   string             `bson:"related_id,omitempty"`
	RelatedType string             `bson:"related_type,omitempty"`
	IsRead      bool               `bson:"is_read"`
	CreatedAt   int64              `bson:"created_at"`
}

func (r *MongoNotificationRepository) Insert(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	doc := mongoNotification{
		UserID:      n.UserID,
		Type:        string(n.Type),
		Content:     n.Content,
		RelatedID:   n.RelatedID,
		RelatedType: n.RelatedType,
		IsRead:      n.IsRead,
		CreatedAt:   n.CreatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert notification: %w", err)
	}

	out := *n
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		out.ID = oid.Hex()
	}
	return &out, nil
}

func (r *MongoNotificationRepository) ListByUser(ctx context.Context, userID string, unreadOnly bool) ([]*domain.Notification, error) {
	query := bson.M{"user_id": userID}
	if unreadOnly {
		query["is_read"] = false
	}

	cur, err := r.coll.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Notification
	for cur.Next(ctx) {
		var mn mongoNotification
		if err := cur.Decode(&mn); err != nil {
			return nil, fmt.Errorf("decode notification: %w", err)
		}
		out = append(out, mn.toDomain())
	}
	return out, cur.Err()
}

func (r *MongoNotificationRepository) MarkRead(ctx context.Context, id, userID string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotificationNotFound
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "user_id": userID},
		bson.M{"$set": bson.M{"is_read": true}},
	)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotificationNotFound
	}
	return nil
}

func (r *MongoNotificationRepository) MarkAllRead(ctx context.Context, userID string) error {
	_, err := r.coll.UpdateMany(ctx,
		bson.M{"user_id": userID, "is_read": false},
		bson.M{"$set": bson.M{"is_read": true}},
	)
	if err != nil {
		return fmt.Errorf("mark all read: %w", err)
	}
	return nil
}

func (r *MongoNotificationRepository) Delete(ctx context.Context, id, userID string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotificationNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid, "user_id": userID})
	if err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotificationNotFound
	}
	return nil
}

func (mn *mongoNotification) toDomain() *domain.Notification {
	return &domain.Notification{
		ID:          mn.ID.Hex(),
		UserID:      mn.UserID,
		Type:        domain.NotificationType(mn.Type),
		Content:     mn.Content,
		RelatedID:   mn.RelatedID,
		RelatedType: mn.RelatedType,
		IsRead:      mn.IsRead,
		CreatedAt:   unixToTime(mn.CreatedAt),
	}
}
