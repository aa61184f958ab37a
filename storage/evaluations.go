package storage

import (
	"context"
	"errors"
	"github.com/alex-pricope/hackathon-scoring/logging"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// EvaluationStorage holds one record per (submission, judge). The pair is the
// table key, so uniqueness is enforced by the store itself.
type EvaluationStorage interface {
	Get(ctx context.Context, submissionID, judgeID string) (*Evaluation, error)
	GetByID(ctx context.Context, id string) (*Evaluation, error)
	ListBySubmission(ctx context.Context, submissionID string) ([]*Evaluation, error)
	ListByJudge(ctx context.Context, judgeID string) ([]*Evaluation, error)
	Create(ctx context.Context, evaluation *Evaluation) error
	Update(ctx context.Context, evaluation *Evaluation) error
	Delete(ctx context.Context, submissionID, judgeID string) error
	DeleteByRound(ctx context.Context, roundID string) (int, error)
}

type DynamoEvaluationStorage struct {
	Client    *dynamodb.Client
	TableName string
}

func (s *DynamoEvaluationStorage) Get(ctx context.Context, submissionID, judgeID string) (*Evaluation, error) {
	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      &s.TableName,
		Key:            pkSkKey(submissionID, judgeID),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		logging.Log.Errorf("EVALUATION: GetItem for %s/%s failed: %v", submissionID, judgeID, err)
		return nil, err
	}
	if out.Item == nil {
		return nil, ErrNotFound
	}

	var evaluation Evaluation
	if err := attributevalue.UnmarshalMap(out.Item, &evaluation); err != nil {
		logging.Log.Errorf("EVALUATION: failed to unmarshal evaluation: %v", err)
		return nil, err
	}
	return &evaluation, nil
}

func (s *DynamoEvaluationStorage) GetByID(ctx context.Context, id string) (*Evaluation, error) {
	items, err := queryByIndex(ctx, s.Client, s.TableName, IndexID, "ID", id)
	if err != nil {
		logging.Log.Errorf("EVALUATION: query for ID %s failed: %v", id, err)
		return nil, err
	}
	if len(items) == 0 {
		logging.Log.Warnf("EVALUATION: no evaluation found with ID %s", id)
		return nil, ErrNotFound
	}

	var evaluation Evaluation
	if err := attributevalue.UnmarshalMap(items[0], &evaluation); err != nil {
		logging.Log.Errorf("EVALUATION: failed to unmarshal evaluation: %v", err)
		return nil, err
	}
	return &evaluation, nil
}

func (s *DynamoEvaluationStorage) ListBySubmission(ctx context.Context, submissionID string) ([]*Evaluation, error) {
	items, err := queryByPK(ctx, s.Client, s.TableName, submissionID)
	if err != nil {
		logging.Log.Errorf("EVALUATION: query for submission %s failed: %v", submissionID, err)
		return nil, err
	}
	return unmarshalEvaluations(items)
}

func (s *DynamoEvaluationStorage) ListByJudge(ctx context.Context, judgeID string) ([]*Evaluation, error) {
	items, err := queryByIndex(ctx, s.Client, s.TableName, IndexJudge, "SK", judgeID)
	if err != nil {
		logging.Log.Errorf("EVALUATION: query for judge %s failed: %v", judgeID, err)
		return nil, err
	}
	return unmarshalEvaluations(items)
}

func (s *DynamoEvaluationStorage) Create(ctx context.Context, evaluation *Evaluation) error {
	item, err := attributevalue.MarshalMap(evaluation)
	if err != nil {
		logging.Log.Errorf("EVALUATION: failed to marshal evaluation: %v", err)
		return err
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           &s.TableName,
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(PK) AND attribute_not_exists(SK)"),
	})
	if err != nil {
		var cce *types.ConditionalCheckFailedException
		if errors.As(err, &cce) {
			logging.Log.Warnf("EVALUATION: judge %s already evaluated submission %s", evaluation.JudgeID, evaluation.SubmissionID)
			return ErrItemWithIDAlreadyExists
		}
		logging.Log.Errorf("EVALUATION: failed to create evaluation: %v", err)
		return err
	}
	return nil
}

func (s *DynamoEvaluationStorage) Update(ctx context.Context, evaluation *Evaluation) error {
	item, err := attributevalue.MarshalMap(evaluation)
	if err != nil {
		logging.Log.Errorf("EVALUATION: failed to marshal updated evaluation: %v", err)
		return err
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &s.TableName,
		Item:      item,
	})
	if err != nil {
		logging.Log.Errorf("EVALUATION: failed to update evaluation: %v", err)
		return err
	}
	return nil
}

func (s *DynamoEvaluationStorage) Delete(ctx context.Context, submissionID, judgeID string) error {
	_, err := s.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: &s.TableName,
		Key:       pkSkKey(submissionID, judgeID),
	})
	if err != nil {
		logging.Log.Errorf("EVALUATION: failed to delete evaluation %s/%s: %v", submissionID, judgeID, err)
		return err
	}
	logging.Log.Infof("EVALUATION: deleted evaluation %s/%s", submissionID, judgeID)
	return nil
}

func (s *DynamoEvaluationStorage) DeleteByRound(ctx context.Context, roundID string) (int, error) {
	items, err := queryByIndex(ctx, s.Client, s.TableName, IndexRoundID, "RoundID", roundID)
	if err != nil {
		logging.Log.Errorf("EVALUATION: query for round %s failed: %v", roundID, err)
		return 0, err
	}

	keys := make([]map[string]types.AttributeValue, 0, len(items))
	for _, item := range items {
		keys = append(keys, map[string]types.AttributeValue{
			"PK": item["PK"],
			"SK": item["SK"],
		})
	}
	if err := batchDelete(ctx, s.Client, s.TableName, keys); err != nil {
		return 0, err
	}
	return len(keys), nil
}

func unmarshalEvaluations(items []map[string]types.AttributeValue) ([]*Evaluation, error) {
	var evaluations []*Evaluation
	if err := attributevalue.UnmarshalListOfMaps(items, &evaluations); err != nil {
		logging.Log.Errorf("EVALUATION: failed to unmarshal evaluation list: %v", err)
		return nil, err
	}
	return evaluations, nil
}
