package storage

import (
	"context"
	"github.com/alex-pricope/hackathon-scoring/logging"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"sort"
)

// The registry tables are owned by the hackathon management service. This
// service only reads them.

type HackathonStorage interface {
	Get(ctx context.Context, id string) (*Hackathon, error)
}

type RoundStorage interface {
	Get(ctx context.Context, id string) (*Round, error)
	ListByHackathon(ctx context.Context, hackathonID string) ([]*Round, error)
}

type CriteriaStorage interface {
	ListByRound(ctx context.Context, roundID string) ([]*Criterion, error)
}

type DynamoHackathonStorage struct {
	Client    *dynamodb.Client
	TableName string
}

func (s *DynamoHackathonStorage) Get(ctx context.Context, id string) (*Hackathon, error) {
	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &s.TableName,
		Key:       pkKey(id),
	})
	if err != nil {
		logging.Log.Errorf("HACKATHON: GetItem for ID %s failed: %v", id, err)
		return nil, err
	}
	if out.Item == nil {
		logging.Log.Warnf("HACKATHON: no hackathon found with ID %s", id)
		return nil, ErrNotFound
	}

	var hackathon Hackathon
	if err := attributevalue.UnmarshalMap(out.Item, &hackathon); err != nil {
		logging.Log.Errorf("HACKATHON: failed to unmarshal hackathon: %v", err)
		return nil, err
	}
	return &hackathon, nil
}

type DynamoRoundStorage struct {
	Client    *dynamodb.Client
	TableName string
}

func (s *DynamoRoundStorage) Get(ctx context.Context, id string) (*Round, error) {
	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.TableName),
		Key:       pkKey(id),
	})
	if err != nil {
		logging.Log.Errorf("ROUND: GetItem for ID %s failed: %v", id, err)
		return nil, err
	}
	if out.Item == nil {
		logging.Log.Warnf("ROUND: no round found with ID %s", id)
		return nil, ErrNotFound
	}

	var round Round
	if err := attributevalue.UnmarshalMap(out.Item, &round); err != nil {
		logging.Log.Errorf("ROUND: failed to unmarshal round: %v", err)
		return nil, err
	}
	return &round, nil
}

func (s *DynamoRoundStorage) ListByHackathon(ctx context.Context, hackathonID string) ([]*Round, error) {
	items, err := queryByIndex(ctx, s.Client, s.TableName, IndexHackathonID, "HackathonID", hackathonID)
	if err != nil {
		logging.Log.Errorf("ROUND: query for hackathon %s failed: %v", hackathonID, err)
		return nil, err
	}

	var rounds []*Round
	if err := attributevalue.UnmarshalListOfMaps(items, &rounds); err != nil {
		logging.Log.Errorf("ROUND: failed to unmarshal round list: %v", err)
		return nil, err
	}
	SortRounds(rounds)
	return rounds, nil
}

type DynamoCriteriaStorage struct {
	Client    *dynamodb.Client
	TableName string
}

func (s *DynamoCriteriaStorage) ListByRound(ctx context.Context, roundID string) ([]*Criterion, error) {
	items, err := queryByPK(ctx, s.Client, s.TableName, roundID)
	if err != nil {
		logging.Log.Errorf("CRITERIA: query for round %s failed: %v", roundID, err)
		return nil, err
	}

	var criteria []*Criterion
	if err := attributevalue.UnmarshalListOfMaps(items, &criteria); err != nil {
		logging.Log.Errorf("CRITERIA: failed to unmarshal criteria list: %v", err)
		return nil, err
	}
	SortCriteria(criteria)
	return criteria, nil
}

// SortRounds orders rounds by Order, then ID.
func SortRounds(rounds []*Round) {
	sort.SliceStable(rounds, func(i, j int) bool {
		if rounds[i].Order != rounds[j].Order {
			return rounds[i].Order < rounds[j].Order
		}
		return rounds[i].ID < rounds[j].ID
	})
}

// SortCriteria orders criteria by Order, then ID.
func SortCriteria(criteria []*Criterion) {
	sort.SliceStable(criteria, func(i, j int) bool {
		if criteria[i].Order != criteria[j].Order {
			return criteria[i].Order < criteria[j].Order
		}
		return criteria[i].ID < criteria[j].ID
	})
}
