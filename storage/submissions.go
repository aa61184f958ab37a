package storage

import (
	"context"
	"errors"
	"github.com/alex-pricope/hackathon-scoring/logging"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"slices"
	"sort"
)

type SubmissionStorage interface {
	Get(ctx context.Context, id string) (*Submission, error)
	ListByRound(ctx context.Context, roundID string) ([]*Submission, error)
	// AddEvaluation appends the reference once and marks the submission in
	// progress. Adding a reference that is already present is a no-op.
	AddEvaluation(ctx context.Context, id, evaluationID string) error
	RemoveEvaluation(ctx context.Context, id, evaluationID string) error
	// UpdateAggregate writes TotalScore, AverageScore and EvaluationStatus
	// if the stored version still equals submission.Version, then bumps it.
	UpdateAggregate(ctx context.Context, submission *Submission) error
	DeleteByRound(ctx context.Context, roundID string) (int, error)
}

type DynamoSubmissionStorage struct {
	Client    *dynamodb.Client
	TableName string
}

func (s *DynamoSubmissionStorage) Get(ctx context.Context, id string) (*Submission, error) {
	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      &s.TableName,
		Key:            pkKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		logging.Log.Errorf("SUBMISSION: GetItem for ID %s failed: %v", id, err)
		return nil, err
	}
	if out.Item == nil {
		logging.Log.Warnf("SUBMISSION: no submission found with ID %s", id)
		return nil, ErrNotFound
	}

	var submission Submission
	if err := attributevalue.UnmarshalMap(out.Item, &submission); err != nil {
		logging.Log.Errorf("SUBMISSION: failed to unmarshal submission: %v", err)
		return nil, err
	}
	return &submission, nil
}

func (s *DynamoSubmissionStorage) ListByRound(ctx context.Context, roundID string) ([]*Submission, error) {
	items, err := queryByIndex(ctx, s.Client, s.TableName, IndexRoundID, "RoundID", roundID)
	if err != nil {
		logging.Log.Errorf("SUBMISSION: query for round %s failed: %v", roundID, err)
		return nil, err
	}

	var submissions []*Submission
	if err := attributevalue.UnmarshalListOfMaps(items, &submissions); err != nil {
		logging.Log.Errorf("SUBMISSION: failed to unmarshal submission list: %v", err)
		return nil, err
	}
	SortSubmissions(submissions)
	return submissions, nil
}

func (s *DynamoSubmissionStorage) AddEvaluation(ctx context.Context, id, evaluationID string) error {
	_, err := s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(s.TableName),
		Key:                 pkKey(id),
		ConditionExpression: aws.String("attribute_exists(PK) AND NOT contains(Evaluations, :id)"),
		UpdateExpression: aws.String("SET Evaluations = list_append(if_not_exists(Evaluations, :empty), :ids), " +
			"EvaluationStatus = :status, Version = if_not_exists(Version, :zero) + :one"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":id":     &types.AttributeValueMemberS{Value: evaluationID},
			":empty":  &types.AttributeValueMemberL{Value: []types.AttributeValue{}},
			":ids":    &types.AttributeValueMemberL{Value: []types.AttributeValue{&types.AttributeValueMemberS{Value: evaluationID}}},
			":status": &types.AttributeValueMemberS{Value: string(SubmissionInProgress)},
			":zero":   &types.AttributeValueMemberN{Value: "0"},
			":one":    &types.AttributeValueMemberN{Value: "1"},
		},
	})
	if err != nil {
		var cce *types.ConditionalCheckFailedException
		if errors.As(err, &cce) {
			// Either the submission is gone or the reference is already there.
			submission, getErr := s.Get(ctx, id)
			if getErr != nil {
				return getErr
			}
			if slices.Contains(submission.Evaluations, evaluationID) {
				return nil
			}
			return ErrVersionConflict
		}
		logging.Log.Errorf("SUBMISSION: failed to add evaluation %s to %s: %v", evaluationID, id, err)
		return err
	}
	return nil
}

func (s *DynamoSubmissionStorage) RemoveEvaluation(ctx context.Context, id, evaluationID string) error {
	submission, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	remaining := make([]string, 0, len(submission.Evaluations))
	for _, ref := range submission.Evaluations {
		if ref != evaluationID {
			remaining = append(remaining, ref)
		}
	}
	refs, err := attributevalue.Marshal(remaining)
	if err != nil {
		logging.Log.Errorf("SUBMISSION: failed to marshal evaluation refs: %v", err)
		return err
	}

	cond, values := versionCondition(submission.Version)
	values[":refs"] = refs
	_, err = s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.TableName),
		Key:                       pkKey(id),
		ConditionExpression:       aws.String(cond),
		UpdateExpression:          aws.String("SET Evaluations = :refs, Version = :next"),
		ExpressionAttributeValues: values,
	})
	return translateConditionErr(err, "SUBMISSION: failed to remove evaluation")
}

func (s *DynamoSubmissionStorage) UpdateAggregate(ctx context.Context, submission *Submission) error {
	total, err := attributevalue.Marshal(submission.TotalScore)
	if err != nil {
		return err
	}
	avg, err := attributevalue.Marshal(submission.AverageScore)
	if err != nil {
		return err
	}

	cond, values := versionCondition(submission.Version)
	values[":total"] = total
	values[":avg"] = avg
	values[":status"] = &types.AttributeValueMemberS{Value: string(submission.EvaluationStatus)}
	_, err = s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.TableName),
		Key:                       pkKey(submission.ID),
		ConditionExpression:       aws.String(cond),
		UpdateExpression:          aws.String("SET TotalScore = :total, AverageScore = :avg, EvaluationStatus = :status, Version = :next"),
		ExpressionAttributeValues: values,
	})
	if err := translateConditionErr(err, "SUBMISSION: failed to update aggregate"); err != nil {
		return err
	}
	submission.Version++
	return nil
}

func (s *DynamoSubmissionStorage) DeleteByRound(ctx context.Context, roundID string) (int, error) {
	submissions, err := s.ListByRound(ctx, roundID)
	if err != nil {
		return 0, err
	}
	keys := make([]map[string]types.AttributeValue, 0, len(submissions))
	for _, sub := range submissions {
		keys = append(keys, pkKey(sub.ID))
	}
	if err := batchDelete(ctx, s.Client, s.TableName, keys); err != nil {
		return 0, err
	}
	return len(keys), nil
}

// SortSubmissions orders submissions by SubmittedAt, then ID. This is the
// input order the round ranking relies on for ties.
func SortSubmissions(submissions []*Submission) {
	sort.SliceStable(submissions, func(i, j int) bool {
		if !submissions[i].SubmittedAt.Equal(submissions[j].SubmittedAt) {
			return submissions[i].SubmittedAt.Before(submissions[j].SubmittedAt)
		}
		return submissions[i].ID < submissions[j].ID
	})
}

// versionCondition returns a condition expression matching the given stored
// version along with the :cur and :next values. Items written before
// versioning have no Version attribute and count as version 0.
func versionCondition(current int64) (string, map[string]types.AttributeValue) {
	values := map[string]types.AttributeValue{
		":cur":  &types.AttributeValueMemberN{Value: itoa(current)},
		":next": &types.AttributeValueMemberN{Value: itoa(current + 1)},
	}
	if current == 0 {
		return "attribute_exists(PK) AND (attribute_not_exists(Version) OR Version = :cur)", values
	}
	return "attribute_exists(PK) AND Version = :cur", values
}

func translateConditionErr(err error, msg string) error {
	if err == nil {
		return nil
	}
	var cce *types.ConditionalCheckFailedException
	if errors.As(err, &cce) {
		logging.Log.Warnf("%s: %v", msg, ErrVersionConflict)
		return ErrVersionConflict
	}
	logging.Log.Errorf("%s: %v", msg, err)
	return err
}
