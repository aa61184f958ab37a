package storage

import (
	"context"
	"github.com/alex-pricope/hackathon-scoring/logging"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"strconv"
)

// Secondary index names expected on the tables.
const (
	IndexHackathonID = "HackathonID-index"
	IndexRoundID     = "RoundID-index"
	IndexID          = "ID-index"
	IndexJudge       = "SK-index"
)

const batchWriteLimit = 25

func queryAll(ctx context.Context, client *dynamodb.Client, input *dynamodb.QueryInput) ([]map[string]types.AttributeValue, error) {
	var items []map[string]types.AttributeValue
	p := dynamodb.NewQueryPaginator(client, input)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		items = append(items, page.Items...)
	}
	return items, nil
}

func queryByIndex(ctx context.Context, client *dynamodb.Client, table, index, attr, value string) ([]map[string]types.AttributeValue, error) {
	return queryAll(ctx, client, &dynamodb.QueryInput{
		TableName:                aws.String(table),
		IndexName:                aws.String(index),
		KeyConditionExpression:   aws.String("#k = :v"),
		ExpressionAttributeNames: map[string]string{"#k": attr},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":v": &types.AttributeValueMemberS{Value: value},
		},
	})
}

func queryByPK(ctx context.Context, client *dynamodb.Client, table, pk string) ([]map[string]types.AttributeValue, error) {
	return queryAll(ctx, client, pkQueryInput(table, pk))
}

// pkQueryInput reads a whole partition of the base table. The read is strongly
// consistent: the aggregation trigger counts records right after writing one.
func pkQueryInput(table, pk string) *dynamodb.QueryInput {
	return &dynamodb.QueryInput{
		TableName:              aws.String(table),
		KeyConditionExpression: aws.String("PK = :pk"),
		ConsistentRead:         aws.Bool(true),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: pk},
		},
	}
}

// batchDelete removes the given keys in chunks of 25, the BatchWriteItem limit.
func batchDelete(ctx context.Context, client *dynamodb.Client, table string, keys []map[string]types.AttributeValue) error {
	writeRequests := make([]types.WriteRequest, 0, len(keys))
	for _, key := range keys {
		writeRequests = append(writeRequests, types.WriteRequest{
			DeleteRequest: &types.DeleteRequest{Key: key},
		})
	}

	for i := 0; i < len(writeRequests); i += batchWriteLimit {
		end := i + batchWriteLimit
		if end > len(writeRequests) {
			end = len(writeRequests)
		}
		_, err := client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{
				table: writeRequests[i:end],
			},
		})
		if err != nil {
			logging.Log.Errorf("DYNAMO: batch delete on %s failed: %v", table, err)
			return err
		}
		logging.Log.Infof("DYNAMO: deleted batch of %d items from %s", end-i, table)
	}
	return nil
}

func pkKey(pk string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: pk},
	}
}

func pkSkKey(pk, sk string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: pk},
		"SK": &types.AttributeValueMemberS{Value: sk},
	}
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
