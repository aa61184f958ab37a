package storage

import (
	"context"
	"github.com/alex-pricope/hackathon-scoring/logging"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

type TeamStorage interface {
	Get(ctx context.Context, id string) (*Team, error)
	ListByHackathon(ctx context.Context, hackathonID string) ([]*Team, error)
}

type DynamoTeamStorage struct {
	Client    *dynamodb.Client
	TableName string
}

func (s *DynamoTeamStorage) ListByHackathon(ctx context.Context, hackathonID string) ([]*Team, error) {
	items, err := queryByIndex(ctx, s.Client, s.TableName, IndexHackathonID, "HackathonID", hackathonID)
	if err != nil {
		logging.Log.Errorf("TEAM: query for hackathon %s failed: %v", hackathonID, err)
		return nil, err
	}

	var teams []*Team
	if err := attributevalue.UnmarshalListOfMaps(items, &teams); err != nil {
		logging.Log.Errorf("TEAM: failed to unmarshal team list: %v", err)
		return nil, err
	}
	return teams, nil
}

func (s *DynamoTeamStorage) Get(ctx context.Context, id string) (*Team, error) {
	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &s.TableName,
		Key:       pkKey(id),
	})
	if err != nil {
		logging.Log.Errorf("TEAM: GetItem for ID %s failed: %v", id, err)
		return nil, err
	}
	if out.Item == nil {
		logging.Log.Warnf("TEAM: no team found with ID %s", id)
		return nil, ErrNotFound
	}

	var team Team
	if err := attributevalue.UnmarshalMap(out.Item, &team); err != nil {
		logging.Log.Errorf("TEAM: failed to unmarshal team: %v", err)
		return nil, err
	}
	return &team, nil
}
