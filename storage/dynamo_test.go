package storage

import (
	"context"
	"errors"
	"github.com/alex-pricope/hackathon-scoring/logging"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"testing"
	"time"
)

// localstackClient returns a client for LOCALSTACK_ENDPOINT, or skips the
// test when it is not set.
func localstackClient(t *testing.T) *dynamodb.Client {
	t.Helper()
	endpoint := os.Getenv("LOCALSTACK_ENDPOINT")
	if endpoint == "" {
		t.Skip("LOCALSTACK_ENDPOINT is not set")
	}
	logging.Log = logrus.New()

	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion("us-east-1"))
	if err != nil {
		t.Fatalf("failed to load AWS config: %v", err)
	}
	return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		o.BaseEndpoint = aws.String(endpoint)
	})
}

// createTable creates a PK/SK table with an ID-index and drops it when the
// test ends.
func createTable(t *testing.T, client *dynamodb.Client, name string) {
	t.Helper()
	ctx := context.TODO()

	_, err := client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName:   aws.String(name),
		BillingMode: types.BillingModePayPerRequest,
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("PK"), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String("SK"), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String("ID"), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("PK"), KeyType: types.KeyTypeHash},
			{AttributeName: aws.String("SK"), KeyType: types.KeyTypeRange},
		},
		GlobalSecondaryIndexes: []types.GlobalSecondaryIndex{{
			IndexName:  aws.String(IndexID),
			KeySchema:  []types.KeySchemaElement{{AttributeName: aws.String("ID"), KeyType: types.KeyTypeHash}},
			Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
		}},
	})
	var inUse *types.ResourceInUseException
	if err != nil && !errors.As(err, &inUse) {
		t.Fatalf("failed to create table %s: %v", name, err)
	}

	t.Cleanup(func() {
		if _, err := client.DeleteTable(context.TODO(), &dynamodb.DeleteTableInput{TableName: aws.String(name)}); err != nil {
			t.Logf("cleanup failed to delete table %s: %v", name, err)
		}
	})
}

func TestDynamoResultStorage(t *testing.T) {
	client := localstackClient(t)
	createTable(t, client, "ResultsTest")
	s := &DynamoResultStorage{Client: client, TableName: "ResultsTest"}
	ctx := context.TODO()

	t.Run("Happy path - upsert keeps publication and award", func(t *testing.T) {
		first, err := s.UpsertScores(ctx, &Result{
			ID: "res1", HackathonID: "h1", RoundID: "r1", TeamID: "A",
			TotalScore: 18, AverageScore: 18, WeightedScore: 92, Rank: 1,
			ResultType:   ResultTypeRound,
			CalculatedAt: time.Now().UTC(),
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), first.Version)
		assert.False(t, first.IsPublished)

		at := time.Now().UTC().Truncate(time.Second)
		require.NoError(t, s.SetPublished(ctx, first, true, &at))
		prize := "Gold"
		first.Prize = &prize
		require.NoError(t, s.UpdateAward(ctx, first))

		second, err := s.UpsertScores(ctx, &Result{
			ID: "other", HackathonID: "h1", RoundID: "r1", TeamID: "A",
			AverageScore: 20, Rank: 1, ResultType: ResultTypeRound,
			CalculatedAt: time.Now().UTC(),
		})
		require.NoError(t, err)
		assert.Equal(t, "res1", second.ID)
		assert.Equal(t, 20.0, second.AverageScore)
		assert.True(t, second.IsPublished)
		require.NotNil(t, second.Prize)
		assert.Equal(t, "Gold", *second.Prize)

		byID, err := s.GetByID(ctx, "res1")
		require.NoError(t, err)
		assert.Equal(t, second.Version, byID.Version)
	})

	t.Run("Unhappy path - stale version", func(t *testing.T) {
		row, err := s.Get(ctx, "h1", "r1", "A")
		require.NoError(t, err)
		stale := *row
		require.NoError(t, s.SetPublished(ctx, row, false, nil))

		assert.ErrorIs(t, s.SetPublished(ctx, &stale, true, nil), ErrVersionConflict)
	})

	t.Run("Happy path - scope listing and deletion", func(t *testing.T) {
		_, err := s.UpsertScores(ctx, &Result{ID: "res2", HackathonID: "h1", TeamID: "A", ResultType: ResultTypeOverall})
		require.NoError(t, err)

		rows, err := s.ListByScope(ctx, "h1", "r1")
		require.NoError(t, err)
		assert.Len(t, rows, 1)

		deleted, err := s.DeleteByScope(ctx, "h1", "r1")
		require.NoError(t, err)
		assert.Equal(t, 1, deleted)

		rows, err = s.ListByHackathon(ctx, "h1")
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, ResultTypeOverall, rows[0].ResultType)
	})
}

func TestPartitionQueryInput(t *testing.T) {
	t.Run("Happy path - base table partition reads are consistent", func(t *testing.T) {
		input := pkQueryInput("Evaluations", "s1")
		require.NotNil(t, input.ConsistentRead)
		assert.True(t, *input.ConsistentRead)
		assert.Nil(t, input.IndexName, "Consistent reads are only valid on the base table")
		assert.Equal(t, "s1", input.ExpressionAttributeValues[":pk"].(*types.AttributeValueMemberS).Value)
	})
}

func TestDynamoEvaluationStorage(t *testing.T) {
	client := localstackClient(t)
	createTable(t, client, "EvaluationsTest")
	s := &DynamoEvaluationStorage{Client: client, TableName: "EvaluationsTest"}
	ctx := context.TODO()

	t.Run("Happy path - a new record is listed right after it is written", func(t *testing.T) {
		require.NoError(t, s.Create(ctx, &Evaluation{ID: "e1", SubmissionID: "s1", JudgeID: "j1", Status: EvaluationSubmitted}))

		records, err := s.ListBySubmission(ctx, "s1")
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, EvaluationSubmitted, records[0].Status)
	})

	t.Run("Unhappy path - second record for the same judge", func(t *testing.T) {
		err := s.Create(ctx, &Evaluation{ID: "e2", SubmissionID: "s1", JudgeID: "j1"})
		assert.ErrorIs(t, err, ErrItemWithIDAlreadyExists)
	})
}
