package storage

import (
	"context"
	"github.com/alex-pricope/hackathon-scoring/logging"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"sort"
	"time"
)

// ResultStorage persists ranked rows keyed by (hackathon, round, team). An
// empty roundID addresses the overall scope everywhere in this interface.
type ResultStorage interface {
	Get(ctx context.Context, hackathonID, roundID, teamID string) (*Result, error)
	GetByID(ctx context.Context, id string) (*Result, error)
	ListByScope(ctx context.Context, hackathonID, roundID string) ([]*Result, error)
	ListByHackathon(ctx context.Context, hackathonID string) ([]*Result, error)
	// UpsertScores writes score, rank and breakdown fields only. Publication
	// state, prize and remarks of an existing row are left as they are.
	UpsertScores(ctx context.Context, result *Result) (*Result, error)
	SetPublished(ctx context.Context, result *Result, published bool, at *time.Time) error
	UpdateAward(ctx context.Context, result *Result) error
	DeleteByScope(ctx context.Context, hackathonID, roundID string) (int, error)
}

type DynamoResultStorage struct {
	Client    *dynamodb.Client
	TableName string
}

func (s *DynamoResultStorage) Get(ctx context.Context, hackathonID, roundID, teamID string) (*Result, error) {
	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      &s.TableName,
		Key:            pkSkKey(hackathonID, ResultSortKey(roundID, teamID)),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		logging.Log.Errorf("RESULT: GetItem for %s/%s/%s failed: %v", hackathonID, roundID, teamID, err)
		return nil, err
	}
	if out.Item == nil {
		return nil, ErrNotFound
	}

	var result Result
	if err := attributevalue.UnmarshalMap(out.Item, &result); err != nil {
		logging.Log.Errorf("RESULT: failed to unmarshal result: %v", err)
		return nil, err
	}
	return &result, nil
}

func (s *DynamoResultStorage) GetByID(ctx context.Context, id string) (*Result, error) {
	items, err := queryByIndex(ctx, s.Client, s.TableName, IndexID, "ID", id)
	if err != nil {
		logging.Log.Errorf("RESULT: query for ID %s failed: %v", id, err)
		return nil, err
	}
	if len(items) == 0 {
		logging.Log.Warnf("RESULT: no result found with ID %s", id)
		return nil, ErrNotFound
	}

	// The index projection may lag; read the base item for the current version.
	var keyed Result
	if err := attributevalue.UnmarshalMap(items[0], &keyed); err != nil {
		logging.Log.Errorf("RESULT: failed to unmarshal result: %v", err)
		return nil, err
	}
	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      &s.TableName,
		Key:            pkSkKey(keyed.HackathonID, keyed.SortKey),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		logging.Log.Errorf("RESULT: GetItem for ID %s failed: %v", id, err)
		return nil, err
	}
	if out.Item == nil {
		return nil, ErrNotFound
	}
	var result Result
	if err := attributevalue.UnmarshalMap(out.Item, &result); err != nil {
		logging.Log.Errorf("RESULT: failed to unmarshal result: %v", err)
		return nil, err
	}
	return &result, nil
}

func (s *DynamoResultStorage) ListByScope(ctx context.Context, hackathonID, roundID string) ([]*Result, error) {
	items, err := queryAll(ctx, s.Client, &dynamodb.QueryInput{
		TableName:              aws.String(s.TableName),
		ConsistentRead:         aws.Bool(true),
		KeyConditionExpression: aws.String("PK = :pk AND begins_with(SK, :prefix)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk":     &types.AttributeValueMemberS{Value: hackathonID},
			":prefix": &types.AttributeValueMemberS{Value: ResultScopePrefix(roundID)},
		},
	})
	if err != nil {
		logging.Log.Errorf("RESULT: scope query for %s/%s failed: %v", hackathonID, roundID, err)
		return nil, err
	}
	return unmarshalResults(items)
}

func (s *DynamoResultStorage) ListByHackathon(ctx context.Context, hackathonID string) ([]*Result, error) {
	items, err := queryByPK(ctx, s.Client, s.TableName, hackathonID)
	if err != nil {
		logging.Log.Errorf("RESULT: query for hackathon %s failed: %v", hackathonID, err)
		return nil, err
	}
	return unmarshalResults(items)
}

func (s *DynamoResultStorage) UpsertScores(ctx context.Context, result *Result) (*Result, error) {
	fields := map[string]interface{}{
		"TeamID":              result.TeamID,
		"TotalScore":          result.TotalScore,
		"AverageScore":        result.AverageScore,
		"WeightedScore":       result.WeightedScore,
		"Rank":                result.Rank,
		"RoundScores":         result.RoundScores,
		"EvaluationBreakdown": result.EvaluationBreakdown,
		"CriteriaBreakdown":   result.CriteriaBreakdown,
		"ResultType":          result.ResultType,
		"CalculatedAt":        result.CalculatedAt,
	}
	if result.RoundID != "" {
		fields["RoundID"] = result.RoundID
	}
	if result.SubmissionID != "" {
		fields["SubmissionID"] = result.SubmissionID
	}

	names := map[string]string{
		"#ID":          "ID",
		"#IsPublished": "IsPublished",
		"#Version":     "Version",
	}
	values := map[string]types.AttributeValue{
		":ID":    &types.AttributeValueMemberS{Value: result.ID},
		":false": &types.AttributeValueMemberBOOL{Value: false},
		":zero":  &types.AttributeValueMemberN{Value: "0"},
		":one":   &types.AttributeValueMemberN{Value: "1"},
	}
	expr := "SET #ID = if_not_exists(#ID, :ID), #IsPublished = if_not_exists(#IsPublished, :false), " +
		"#Version = if_not_exists(#Version, :zero) + :one"
	for name, value := range fields {
		av, err := attributevalue.Marshal(value)
		if err != nil {
			logging.Log.Errorf("RESULT: failed to marshal field %s: %v", name, err)
			return nil, err
		}
		names["#"+name] = name
		values[":"+name] = av
		expr += ", #" + name + " = :" + name
	}

	out, err := s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.TableName),
		Key:                       pkSkKey(result.HackathonID, ResultSortKey(result.RoundID, result.TeamID)),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		logging.Log.Errorf("RESULT: failed to upsert result for team %s: %v", result.TeamID, err)
		return nil, err
	}

	var stored Result
	if err := attributevalue.UnmarshalMap(out.Attributes, &stored); err != nil {
		logging.Log.Errorf("RESULT: failed to unmarshal upserted result: %v", err)
		return nil, err
	}
	return &stored, nil
}

func (s *DynamoResultStorage) SetPublished(ctx context.Context, result *Result, published bool, at *time.Time) error {
	publishedAt, err := attributevalue.Marshal(at)
	if err != nil {
		return err
	}

	cond, values := versionCondition(result.Version)
	values[":published"] = &types.AttributeValueMemberBOOL{Value: published}
	values[":at"] = publishedAt
	_, err = s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.TableName),
		Key:                       pkSkKey(result.HackathonID, result.SortKey),
		ConditionExpression:       aws.String(cond),
		UpdateExpression:          aws.String("SET IsPublished = :published, PublishedAt = :at, Version = :next"),
		ExpressionAttributeValues: values,
	})
	if err := translateConditionErr(err, "RESULT: failed to set publication state"); err != nil {
		return err
	}
	result.IsPublished = published
	result.PublishedAt = at
	result.Version++
	return nil
}

func (s *DynamoResultStorage) UpdateAward(ctx context.Context, result *Result) error {
	prize, err := attributevalue.Marshal(result.Prize)
	if err != nil {
		return err
	}

	cond, values := versionCondition(result.Version)
	values[":prize"] = prize
	values[":remarks"] = &types.AttributeValueMemberS{Value: result.Remarks}
	_, err = s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.TableName),
		Key:                       pkSkKey(result.HackathonID, result.SortKey),
		ConditionExpression:       aws.String(cond),
		UpdateExpression:          aws.String("SET Prize = :prize, Remarks = :remarks, Version = :next"),
		ExpressionAttributeValues: values,
	})
	if err := translateConditionErr(err, "RESULT: failed to update award"); err != nil {
		return err
	}
	result.Version++
	return nil
}

func (s *DynamoResultStorage) DeleteByScope(ctx context.Context, hackathonID, roundID string) (int, error) {
	results, err := s.ListByScope(ctx, hackathonID, roundID)
	if err != nil {
		return 0, err
	}
	keys := make([]map[string]types.AttributeValue, 0, len(results))
	for _, r := range results {
		keys = append(keys, pkSkKey(r.HackathonID, r.SortKey))
	}
	if err := batchDelete(ctx, s.Client, s.TableName, keys); err != nil {
		return 0, err
	}
	return len(keys), nil
}

func unmarshalResults(items []map[string]types.AttributeValue) ([]*Result, error) {
	var results []*Result
	if err := attributevalue.UnmarshalListOfMaps(items, &results); err != nil {
		logging.Log.Errorf("RESULT: failed to unmarshal result list: %v", err)
		return nil, err
	}
	SortResults(results)
	return results, nil
}

// SortResults orders rows by rank, then sort key.
func SortResults(results []*Result) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Rank != results[j].Rank {
			return results[i].Rank < results[j].Rank
		}
		return results[i].SortKey < results[j].SortKey
	})
}
