package repository

import (
	"context"
	"encoding/json"
	"sort"

	"ebd_gestao/internal/domain/entities"
	"ebd_gestao/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultPaymentsTableName = "pagamentos"
	paymentsProposalIDIndex  = "proposal_id-index"
)

type billingPaymentItem struct {
	ID           string                 `dynamodbav:"id"`
	ProposalID   string                 `dynamodbav:"proposal_id"`
	Date         string                 `dynamodbav:"date"`
	Status       string                 `dynamodbav:"status"`
	RawStatus    string                 `dynamodbav:"raw_status,omitempty"`
	Amount       float64                `dynamodbav:"amount"`
	MPPayload    map[string]interface{} `dynamodbav:"mp_payload,omitempty"`
	MPPayloadRaw string                 `dynamodbav:"mp_payload_raw,omitempty"`
}

// BillingPaymentDynamoRepository persists BillingPayment entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string, provider payment id)
//   - GSI: proposal_id-index (PK: proposal_id)
type BillingPaymentDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IBillingPaymentRepository = (*BillingPaymentDynamoRepository)(nil)

func NewBillingPaymentDynamoRepository(ddb *dynamodb.Client, tableName string) *BillingPaymentDynamoRepository {
	return &BillingPaymentDynamoRepository{
		ddb:       ddb,
		tableName: tableOrDefault(tableName, defaultPaymentsTableName),
	}
}

// Save replaces any previous record of the same provider payment.
func (r *BillingPaymentDynamoRepository) Save(ctx context.Context, p entities.BillingPayment) (entities.BillingPayment, error) {
	av, err := attributevalue.MarshalMap(toBillingPaymentItem(p))
	if err != nil {
		return entities.BillingPayment{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		return entities.BillingPayment{}, err
	}
	return p, nil
}

func (r *BillingPaymentDynamoRepository) GetByID(ctx context.Context, id string) (entities.BillingPayment, error) {
	var it billingPaymentItem
	found, err := getItem(ctx, r.ddb, r.tableName, stringKey("id", id), &it)
	if err != nil || !found {
		return entities.BillingPayment{}, err
	}
	return fromBillingPaymentItem(it), nil
}

func (r *BillingPaymentDynamoRepository) ListByProposalID(ctx context.Context, proposalID string) ([]entities.BillingPayment, error) {
	raw, err := queryAll(ctx, r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(paymentsProposalIDIndex),
		KeyConditionExpression: aws.String("proposal_id = :pid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pid": &types.AttributeValueMemberS{Value: proposalID},
		},
	})
	if err != nil {
		return nil, err
	}

	items := make([]entities.BillingPayment, 0, len(raw))
	for _, m := range raw {
		var it billingPaymentItem
		if err := attributevalue.UnmarshalMap(m, &it); err != nil {
			return nil, err
		}
		items = append(items, fromBillingPaymentItem(it))
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Date.Before(items[j].Date) })
	return items, nil
}

func toBillingPaymentItem(p entities.BillingPayment) billingPaymentItem {
	return billingPaymentItem{
		ID:           p.ID,
		ProposalID:   p.ProposalID,
		Date:         formatTime(p.Date),
		Status:       string(p.Status),
		RawStatus:    p.RawStatus,
		Amount:       p.Amount,
		MPPayload:    p.MPPayload,
		MPPayloadRaw: string(p.MPPayloadRaw),
	}
}

func fromBillingPaymentItem(it billingPaymentItem) entities.BillingPayment {
	var raw json.RawMessage
	if it.MPPayloadRaw != "" {
		raw = json.RawMessage(it.MPPayloadRaw)
	}
	return entities.BillingPayment{
		ID:           it.ID,
		ProposalID:   it.ProposalID,
		Date:         parseTime(it.Date),
		Status:       entities.PaymentStatus(it.Status),
		RawStatus:    it.RawStatus,
		Amount:       it.Amount,
		MPPayload:    it.MPPayload,
		MPPayloadRaw: raw,
	}
}
