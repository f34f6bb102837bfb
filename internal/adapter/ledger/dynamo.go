package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/polkiloo/gigmarket/internal/config"
)

type dynamoAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

type eventItem struct {
	ID          string `dynamodbav:"id"`
	ProcessedAt string `dynamodbav:"processed_at"`
	ExpiresAt   int64  `dynamodbav:"expires_at"`
}

// DynamoLedger stores event ids in a DynamoDB table keyed by "id". The
// "expires_at" attribute is meant for the table's TTL setting.
type DynamoLedger struct {
	db    dynamoAPI
	table string
	ttl   time.Duration
	now   func() time.Time
}

// NewDynamoLedger wraps a DynamoDB client.
func NewDynamoLedger(db dynamoAPI, table string, ttl time.Duration) *DynamoLedger {
	return &DynamoLedger{db: db, table: table, ttl: ttl, now: time.Now}
}

// Seen reads the event item with a consistent read.
func (l *DynamoLedger) Seen(ctx context.Context, eventID string) (bool, error) {
	out, err := l.db.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(l.table),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: eventID},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return false, fmt.Errorf("dynamodb get item: %w", err)
	}
	if len(out.Item) == 0 {
		return false, nil
	}

	var item eventItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return false, fmt.Errorf("decode ledger item: %w", err)
	}
	// TTL deletion lags, so expired items may still be returned.
	return item.ExpiresAt == 0 || l.now().Unix() < item.ExpiresAt, nil
}

// Mark writes the event item unless it already exists.
func (l *DynamoLedger) Mark(ctx context.Context, eventID string) error {
	now := l.now().UTC()
	av, err := attributevalue.MarshalMap(eventItem{
		ID:          eventID,
		ProcessedAt: now.Format(time.RFC3339),
		ExpiresAt:   now.Add(l.ttl).Unix(),
	})
	if err != nil {
		return err
	}

	_, err = l.db.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(l.table),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		var exists *types.ConditionalCheckFailedException
		if errors.As(err, &exists) {
			return nil
		}
		return fmt.Errorf("dynamodb put item: %w", err)
	}
	return nil
}

// NewDynamoClient builds a DynamoDB client. Static credentials and a custom
// endpoint are used when configured, which suits DynamoDB Local.
func NewDynamoClient(ctx context.Context, cfg config.DynamoDBConfig) (*dynamodb.Client, error) {
	opts := []func(*awsConfig.LoadOptions) error{
		awsConfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" || cfg.SecretAccessKey != "" {
		opts = append(opts, awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsConfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	}), nil
}
