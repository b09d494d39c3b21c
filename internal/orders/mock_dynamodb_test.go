package orders

import (
	"context"
	"errors"
	"strings"
	"sync"

	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// mockDynamo is a small in-memory stand-in for the orders table. It
// implements just enough of the DynamoDB contract for the store's
// conditional writes: attribute_not_exists puts, the payment-reference
// guard, the status-transition guard, and the reference GSI query.
type mockDynamo struct {
	mu          sync.Mutex
	items       map[string]map[string]types.AttributeValue
	putCalls    int
	updateCalls int
}

func newMockDynamo() *mockDynamo {
	return &mockDynamo{items: map[string]map[string]types.AttributeValue{}}
}

func (m *mockDynamo) keyOf(attrs map[string]types.AttributeValue) string {
	if v, ok := attrs["order_id"].(*types.AttributeValueMemberS); ok {
		return v.Value
	}
	return ""
}

func (m *mockDynamo) PutItem(ctx context.Context, params *dyn.PutItemInput, optFns ...func(*dyn.Options)) (*dyn.PutItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.putCalls++

	k := m.keyOf(params.Item)
	if k == "" {
		return nil, errors.New("missing order_id")
	}
	if params.ConditionExpression != nil && *params.ConditionExpression == "attribute_not_exists(order_id)" {
		if _, ok := m.items[k]; ok {
			return nil, &types.ConditionalCheckFailedException{}
		}
	}
	m.items[k] = params.Item
	return &dyn.PutItemOutput{}, nil
}

func (m *mockDynamo) GetItem(ctx context.Context, params *dyn.GetItemInput, optFns ...func(*dyn.Options)) (*dyn.GetItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.items[m.keyOf(params.Key)]
	if !ok {
		return &dyn.GetItemOutput{}, nil
	}
	return &dyn.GetItemOutput{Item: item}, nil
}

func (m *mockDynamo) UpdateItem(ctx context.Context, params *dyn.UpdateItemInput, optFns ...func(*dyn.Options)) (*dyn.UpdateItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updateCalls++

	k := m.keyOf(params.Key)
	item, exists := m.items[k]

	if params.ConditionExpression != nil {
		cond := *params.ConditionExpression
		switch {
		case strings.Contains(cond, "attribute_not_exists(payment_reference)"):
			if strings.Contains(cond, "attribute_exists(order_id)") && !exists {
				return nil, &types.ConditionalCheckFailedException{}
			}
			if exists {
				if cur, ok := item["payment_reference"].(*types.AttributeValueMemberS); ok {
					want := params.ExpressionAttributeValues[":ref"].(*types.AttributeValueMemberS).Value
					if cur.Value != want {
						return nil, &types.ConditionalCheckFailedException{}
					}
				}
			}
		case strings.Contains(cond, "#s = :expected"):
			if !exists {
				return nil, &types.ConditionalCheckFailedException{}
			}
			cur, ok := item["status"].(*types.AttributeValueMemberS)
			expected := params.ExpressionAttributeValues[":expected"].(*types.AttributeValueMemberS).Value
			if !ok || cur.Value != expected {
				return nil, &types.ConditionalCheckFailedException{}
			}
		}
	}

	// UpdateItem upserts, same as DynamoDB
	if !exists {
		item = map[string]types.AttributeValue{"order_id": &types.AttributeValueMemberS{Value: k}}
		m.items[k] = item
	}

	for name, val := range map[string]string{
		"paid":              ":paid",
		"payment_reference": ":ref",
		"payment_method":    ":pm",
		"status":            ":next",
		"updated_at":        ":ua",
	} {
		if v, ok := params.ExpressionAttributeValues[val]; ok {
			item[name] = v
		}
	}
	return &dyn.UpdateItemOutput{}, nil
}

func (m *mockDynamo) Query(ctx context.Context, params *dyn.QueryInput, optFns ...func(*dyn.Options)) (*dyn.QueryOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	want := params.ExpressionAttributeValues[":ref"].(*types.AttributeValueMemberS).Value
	var out []map[string]types.AttributeValue
	for _, item := range m.items {
		if v, ok := item["payment_reference"].(*types.AttributeValueMemberS); ok && v.Value == want {
			out = append(out, item)
		}
	}
	return &dyn.QueryOutput{Items: out}, nil
}
