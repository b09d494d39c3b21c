package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"

	"github.com/TheACJ/ShopWCandy/internal/aws"
)

// ReferenceIndex is the GSI keyed on payment_reference, used by the order
// confirmation lookup.
const ReferenceIndex = "payment_reference-index"

// ErrAlreadyExists indicates a conditional create collided with an existing
// order id.
var ErrAlreadyExists = errors.New("order already exists")

// ErrReferenceConflict indicates an attempt to mark an order paid with a
// reference different from the one already recorded. The existing record is
// left untouched.
var ErrReferenceConflict = errors.New("order already paid with a different reference")

// ErrOrderNotFound indicates a conditional update targeted an order id that
// does not exist. Nothing is written.
var ErrOrderNotFound = errors.New("order not found")

// ErrStatusMismatch indicates a conditional status transition found the
// order in an unexpected state.
var ErrStatusMismatch = errors.New("status mismatch/conditional failed")

// Store encapsulates operations on the orders table.
type Store struct {
	client    aws.DynamoDBAPI
	tableName string
	nowFunc   func() time.Time
}

// NewStore creates a new orders Store.
func NewStore(client aws.DynamoDBAPI, tableName string) *Store {
	return &Store{
		client:    client,
		tableName: tableName,
		nowFunc:   time.Now,
	}
}

// Create persists a new order. The put is conditional on the order id not
// existing yet, so a retried create cannot clobber an order that has already
// been paid.
func (s *Store) Create(ctx context.Context, order Order) error {
	now := s.nowFunc()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	order.UpdatedAt = now

	item, err := attributevalue.MarshalMap(order)
	if err != nil {
		return fmt.Errorf("marshal order: %w", err)
	}

	input := &dyn.PutItemInput{
		TableName:           &s.tableName,
		Item:                item,
		ConditionExpression: awsString("attribute_not_exists(order_id)"),
	}

	_, err = s.client.PutItem(ctx, input)
	if err != nil {
		var ae smithy.APIError
		if errors.As(err, &ae) && ae.ErrorCode() == "ConditionalCheckFailedException" {
			return ErrAlreadyExists
		}
		return fmt.Errorf("put order: %w", err)
	}
	return nil
}

// Get fetches an order by order_id. Returns (nil, nil) if not found.
func (s *Store) Get(ctx context.Context, orderID string) (*Order, error) {
	out, err := s.client.GetItem(ctx, &dyn.GetItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"order_id": &types.AttributeValueMemberS{Value: orderID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	var o Order
	if err := attributevalue.UnmarshalMap(out.Item, &o); err != nil {
		return nil, fmt.Errorf("unmarshal order: %w", err)
	}
	return &o, nil
}

// GetByReference looks an order up by its payment reference via the
// reference GSI. Returns (nil, nil) if no order carries that reference.
func (s *Store) GetByReference(ctx context.Context, reference string) (*Order, error) {
	out, err := s.client.Query(ctx, &dyn.QueryInput{
		TableName:              &s.tableName,
		IndexName:              awsString(ReferenceIndex),
		KeyConditionExpression: awsString("payment_reference = :ref"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":ref": &types.AttributeValueMemberS{Value: reference},
		},
		Limit: awsInt32(1),
	})
	if err != nil {
		return nil, fmt.Errorf("query by reference: %w", err)
	}
	if len(out.Items) == 0 {
		return nil, nil
	}
	var o Order
	if err := attributevalue.UnmarshalMap(out.Items[0], &o); err != nil {
		return nil, fmt.Errorf("unmarshal order: %w", err)
	}
	return &o, nil
}

// MarkPaid records a verified payment on an order. The write is a pure
// idempotent set: SET paid, payment_reference, payment_method guarded by
//
//	attribute_exists(order_id) AND
//	(attribute_not_exists(payment_reference) OR payment_reference = :ref)
//
// so redelivering the same webhook any number of times converges to the same
// record, while a different reference for an already-paid order fails the
// condition and returns ErrReferenceConflict. The attribute_exists guard
// keeps UpdateItem from upserting: this store only ever updates orders the
// checkout created, and a verified transaction whose metadata names an
// unknown order id returns ErrOrderNotFound with nothing written. No
// counter, no append, no read-modify-write.
func (s *Store) MarkPaid(ctx context.Context, orderID, reference, method string) error {
	now := s.nowFunc()
	input := &dyn.UpdateItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"order_id": &types.AttributeValueMemberS{Value: orderID},
		},
		UpdateExpression: awsString("SET paid = :paid, payment_reference = :ref, payment_method = :pm, updated_at = :ua"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":paid": &types.AttributeValueMemberBOOL{Value: true},
			":ref":  &types.AttributeValueMemberS{Value: reference},
			":pm":   &types.AttributeValueMemberS{Value: method},
			":ua":   &types.AttributeValueMemberS{Value: now.Format(time.RFC3339)},
		},
		ConditionExpression: awsString("attribute_exists(order_id) AND (attribute_not_exists(payment_reference) OR payment_reference = :ref)"),
	}

	_, err := s.client.UpdateItem(ctx, input)
	if err != nil {
		var cf *types.ConditionalCheckFailedException
		if errors.As(err, &cf) {
			// the exception covers both clauses; a re-read tells them apart
			o, gerr := s.Get(ctx, orderID)
			if gerr != nil {
				return fmt.Errorf("mark paid conflict re-read: %w", gerr)
			}
			if o == nil {
				return ErrOrderNotFound
			}
			return ErrReferenceConflict
		}
		return fmt.Errorf("mark paid: %w", err)
	}
	return nil
}

// UpdateStatus conditionally transitions the order status from expected to
// next. Returns ErrStatusMismatch if the order is not in the expected state.
func (s *Store) UpdateStatus(ctx context.Context, orderID, expected, next string) error {
	now := s.nowFunc()
	input := &dyn.UpdateItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"order_id": &types.AttributeValueMemberS{Value: orderID},
		},
		UpdateExpression:         awsString("SET #s = :next, updated_at = :ua"),
		ExpressionAttributeNames: map[string]string{"#s": "status"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":next":     &types.AttributeValueMemberS{Value: next},
			":expected": &types.AttributeValueMemberS{Value: expected},
			":ua":       &types.AttributeValueMemberS{Value: now.Format(time.RFC3339)},
		},
		ConditionExpression: awsString("#s = :expected"),
	}

	_, err := s.client.UpdateItem(ctx, input)
	if err != nil {
		var cf *types.ConditionalCheckFailedException
		if errors.As(err, &cf) {
			return ErrStatusMismatch
		}
		return fmt.Errorf("update status: %w", err)
	}
	return nil
}

func awsString(s string) *string { return &s }
func awsInt32(i int32) *int32    { return &i }
