package reminderRepo

import (
	"context"
	"fmt"
	"time"

	"taskly/database"
	"taskly/models"

	"go.mongodb.org/mongo-driver/bson"
)

func (r *mongoReminderRepo) Claim(ctx context.Context, id string, now time.Time) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id, "status": models.ReminderPending}
	update := bson.M{"$set": bson.M{
		"status":    models.ReminderProcessing,
		"claimedAt": now,
		"updatedAt": now,
	}}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to claim reminder %s: %w", id, err)
	}
	return res.ModifiedCount == 1, nil
}

func (r *mongoReminderRepo) ReleaseStaleClaims(ctx context.Context, before time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"status":    models.ReminderProcessing,
		"claimedAt": bson.M{"$lt": before},
	}
	update := bson.M{
		"$set":   bson.M{"status": models.ReminderPending, "updatedAt": time.Now()},
		"$unset": bson.M{"claimedAt": ""},
	}

	res, err := r.coll.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("failed to release stale reminder claims: %w", err)
	}
	return res.ModifiedCount, nil
}

func (r *mongoReminderRepo) MarkSent(ctx context.Context, id string, sentAt time.Time) error {
	return r.setStatus(ctx, id, bson.M{
		"status": models.ReminderSent,
		"sentAt": sentAt,
	})
}

func (r *mongoReminderRepo) MarkFailed(ctx context.Context, id string, failure models.ReminderFailure) error {
	return r.setStatus(ctx, id, bson.M{
		"status":       models.ReminderFailed,
		"errorKind":    failure.Kind,
		"errorMessage": failure.Message,
	})
}

func (r *mongoReminderRepo) setStatus(ctx context.Context, id string, set bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set["updatedAt"] = time.Now()
	update := bson.M{
		"$set":   set,
		"$unset": bson.M{"claimedAt": ""},
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update reminder %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("reminder %s: %w", id, database.ErrNotFound)
	}
	return nil
}
