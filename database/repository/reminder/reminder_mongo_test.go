package reminderRepo

import (
	"context"
	"errors"
	"testing"
	"time"

	"taskly/database"
	"taskly/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

var dueAt = time.Date(2030, time.June, 1, 12, 0, 0, 0, time.UTC)

func newMockRepo(mt *mtest.T) *mongoReminderRepo {
	return &mongoReminderRepo{coll: mt.Coll, tasksCollName: "tasks", usersCollName: "users"}
}

func namespace(mt *mtest.T) string {
	return mt.Coll.Database().Name() + "." + mt.Coll.Name()
}

func reminderDoc(id string) bson.D {
	return bson.D{
		{Key: "id", Value: id},
		{Key: "taskId", Value: "task-" + id},
		{Key: "userId", Value: "user-" + id},
		{Key: "scheduledAt", Value: dueAt.Add(-time.Minute)},
		{Key: "status", Value: string(models.ReminderPending)},
	}
}

func TestFindDuePendingDecodesJoinedDocuments(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("missing references decode as nil", func(mt *mtest.T) {
		task := bson.D{
			{Key: "id", Value: "task-r1"},
			{Key: "userId", Value: "user-r1"},
			{Key: "title", Value: "Write report"},
			{Key: "deadline", Value: dueAt.Add(time.Hour)},
		}
		user := bson.D{
			{Key: "id", Value: "user-r1"},
			{Key: "name", Value: "Ada"},
			{Key: "email", Value: "ada@example.com"},
		}

		full := append(reminderDoc("r1"), bson.E{Key: "task", Value: task}, bson.E{Key: "user", Value: user})
		noTask := append(reminderDoc("r2"), bson.E{Key: "user", Value: user})
		noUser := append(reminderDoc("r3"), bson.E{Key: "task", Value: task})
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch, full, noTask, noUser))

		due, err := newMockRepo(mt).FindDuePending(context.Background(), dueAt)
		require.NoError(mt, err)
		require.Len(mt, due, 3)

		assert.Equal(mt, "r1", due[0].Reminder.ID)
		require.NotNil(mt, due[0].Task)
		require.NotNil(mt, due[0].User)
		assert.Equal(mt, "Write report", due[0].Task.Title)
		assert.Equal(mt, "ada@example.com", due[0].User.Email)

		assert.Equal(mt, "r2", due[1].Reminder.ID)
		assert.Nil(mt, due[1].Task)
		assert.NotNil(mt, due[1].User)

		assert.Equal(mt, "r3", due[2].Reminder.ID)
		assert.NotNil(mt, due[2].Task)
		assert.Nil(mt, due[2].User)
	})

	mt.Run("aggregate error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code: 11600, Message: "interrupted at shutdown", Name: "InterruptedAtShutdown",
		}))

		_, err := newMockRepo(mt).FindDuePending(context.Background(), dueAt)
		assert.Error(mt, err)
	})
}

func TestClaimReportsWhetherItWon(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("claimed", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}))

		ok, err := newMockRepo(mt).Claim(context.Background(), "r1", dueAt)
		require.NoError(mt, err)
		assert.True(mt, ok)
	})

	mt.Run("already taken", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))

		ok, err := newMockRepo(mt).Claim(context.Background(), "r1", dueAt)
		require.NoError(mt, err)
		assert.False(mt, ok)
	})
}

func TestMarkSentUnknownReminder(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))

		err := newMockRepo(mt).MarkSent(context.Background(), "missing", dueAt)
		assert.True(mt, errors.Is(err, database.ErrNotFound))
	})
}

func TestDeletePendingForTaskMatchesClaimedReminders(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("pending and processing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 2}))

		n, err := newMockRepo(mt).DeletePendingForTask(context.Background(), "t1")
		require.NoError(mt, err)
		assert.Equal(mt, int64(2), n)

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		require.Equal(mt, "delete", evt.CommandName)
		statuses, err := evt.Command.LookupErr("deletes", "0", "q", "status", "$in")
		require.NoError(mt, err)
		values, err := statuses.Array().Values()
		require.NoError(mt, err)

		got := make([]string, 0, len(values))
		for _, v := range values {
			got = append(got, v.StringValue())
		}
		assert.ElementsMatch(mt, []string{string(models.ReminderPending), string(models.ReminderProcessing)}, got)
	})
}
