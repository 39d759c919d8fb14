package repository

import (
	"context"
	"time"

	"ebd_gestao/internal/domain/entities"
	"ebd_gestao/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultOrdersTableName   = "pedidos"
	defaultParcelasTableName = "comissao_parcelas"
	ordersClientIndex        = "cliente_id-index"
	parcelasOrderIndex       = "pedido_id-index"
	parcelasSellerIndex      = "vendedor_id-index"
)

type orderItem struct {
	ID                   string  `dynamodbav:"id"`
	ClientID             string  `dynamodbav:"cliente_id"`
	SellerID             string  `dynamodbav:"vendedor_id,omitempty"`
	Value                float64 `dynamodbav:"valor_total"`
	StatusPagamento      string  `dynamodbav:"status_pagamento"`
	Origin               string  `dynamodbav:"origem,omitempty"`
	OrderDate            string  `dynamodbav:"data_pedido"`
	CommissionApproved   bool    `dynamodbav:"comissao_aprovada"`
	CommissionApprovedAt string  `dynamodbav:"comissao_aprovada_em,omitempty"`
	InvoiceURL           string  `dynamodbav:"nota_fiscal_url,omitempty"`
}

// OrderDynamoRepository reads orders written by the storefront and ERP sync.
//
// Table requirements:
//   - PK: id (string)
//   - GSI cliente_id-index (PK: cliente_id, SK: data_pedido)
type OrderDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IOrderRepository = (*OrderDynamoRepository)(nil)

func NewOrderDynamoRepository(ddb *dynamodb.Client, tableName string) *OrderDynamoRepository {
	return &OrderDynamoRepository{
		ddb:       ddb,
		tableName: tableOrDefault(tableName, defaultOrdersTableName),
	}
}

func (r *OrderDynamoRepository) GetByID(ctx context.Context, id string) (entities.Order, error) {
	var it orderItem
	found, err := getItem(ctx, r.ddb, r.tableName, stringKey("id", id), &it)
	if err != nil || !found {
		return entities.Order{}, err
	}
	return fromOrderItem(it), nil
}

func (r *OrderDynamoRepository) LatestByClient(ctx context.Context, clientID string) (entities.Order, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(ordersClientIndex),
		KeyConditionExpression: aws.String("cliente_id = :cid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":cid": &types.AttributeValueMemberS{Value: clientID},
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(1),
	})
	if err != nil {
		return entities.Order{}, err
	}
	if len(out.Items) == 0 {
		return entities.Order{}, nil
	}
	var it orderItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &it); err != nil {
		return entities.Order{}, err
	}
	return fromOrderItem(it), nil
}

func (r *OrderDynamoRepository) MarkCommissionApproved(ctx context.Context, id string, at time.Time) error {
	_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 stringKey("id", id),
		ConditionExpression: aws.String("attribute_exists(#id) AND (attribute_not_exists(#approved) OR #approved = :false)"),
		UpdateExpression:    aws.String("SET #approved = :true, #approved_at = :at"),
		ExpressionAttributeNames: map[string]string{
			"#id":          "id",
			"#approved":    "comissao_aprovada",
			"#approved_at": "comissao_aprovada_em",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":true":  &types.AttributeValueMemberBOOL{Value: true},
			":false": &types.AttributeValueMemberBOOL{Value: false},
			":at":    &types.AttributeValueMemberS{Value: formatTime(at)},
		},
	})
	if err != nil {
		if isConditionFailed(err) {
			return interfaces.ErrConditionFailed
		}
		return err
	}
	return nil
}

func fromOrderItem(it orderItem) entities.Order {
	return entities.Order{
		ID:                   it.ID,
		ClientID:             it.ClientID,
		SellerID:             it.SellerID,
		Value:                it.Value,
		StatusPagamento:      it.StatusPagamento,
		Origin:               it.Origin,
		OrderDate:            parseTime(it.OrderDate),
		CommissionApproved:   it.CommissionApproved,
		CommissionApprovedAt: parseTimePtr(it.CommissionApprovedAt),
		InvoiceURL:           it.InvoiceURL,
	}
}

type parcelaItem struct {
	ID                string  `dynamodbav:"id"`
	OrderID           string  `dynamodbav:"pedido_id"`
	SellerID          string  `dynamodbav:"vendedor_id"`
	ClientID          string  `dynamodbav:"cliente_id"`
	Origin            string  `dynamodbav:"origem"`
	NumeroParcela     int     `dynamodbav:"numero_parcela"`
	TotalParcelas     int     `dynamodbav:"total_parcelas"`
	Value             float64 `dynamodbav:"valor"`
	CommissionPercent float64 `dynamodbav:"comissao_percentual"`
	CommissionValue   float64 `dynamodbav:"valor_comissao"`
	DueDate           string  `dynamodbav:"data_vencimento"`
	Status            string  `dynamodbav:"status"`
	CommissionStatus  string  `dynamodbav:"comissao_status"`
	InvoiceURL        string  `dynamodbav:"nota_fiscal_url,omitempty"`
	CreatedAt         string  `dynamodbav:"created_at"`
}

// CommissionDynamoRepository persists commission parcelas.
//
// Table requirements:
//   - PK: id (string, "{pedido_id}#{numero_parcela}")
//   - GSI pedido_id-index (PK: pedido_id)
//   - GSI vendedor_id-index (PK: vendedor_id, SK: data_vencimento)
type CommissionDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.ICommissionRepository = (*CommissionDynamoRepository)(nil)

func NewCommissionDynamoRepository(ddb *dynamodb.Client, tableName string) *CommissionDynamoRepository {
	return &CommissionDynamoRepository{
		ddb:       ddb,
		tableName: tableOrDefault(tableName, defaultParcelasTableName),
	}
}

func (r *CommissionDynamoRepository) Create(ctx context.Context, p entities.CommissionParcela) (entities.CommissionParcela, error) {
	av, err := attributevalue.MarshalMap(toParcelaItem(p))
	if err != nil {
		return entities.CommissionParcela{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		if isConditionFailed(err) {
			return entities.CommissionParcela{}, interfaces.ErrAlreadyExists
		}
		return entities.CommissionParcela{}, err
	}
	return p, nil
}

func (r *CommissionDynamoRepository) ListByOrderID(ctx context.Context, orderID string) ([]entities.CommissionParcela, error) {
	return r.listByIndex(ctx, parcelasOrderIndex, "pedido_id", orderID)
}

func (r *CommissionDynamoRepository) ListBySellerID(ctx context.Context, sellerID string) ([]entities.CommissionParcela, error) {
	return r.listByIndex(ctx, parcelasSellerIndex, "vendedor_id", sellerID)
}

func (r *CommissionDynamoRepository) listByIndex(ctx context.Context, index, attr, value string) ([]entities.CommissionParcela, error) {
	raw, err := queryAll(ctx, r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(index),
		KeyConditionExpression: aws.String("#pk = :pk"),
		ExpressionAttributeNames: map[string]string{
			"#pk": attr,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: value},
		},
	})
	if err != nil {
		return nil, err
	}

	out := make([]entities.CommissionParcela, 0, len(raw))
	for _, m := range raw {
		var it parcelaItem
		if err := attributevalue.UnmarshalMap(m, &it); err != nil {
			return nil, err
		}
		out = append(out, fromParcelaItem(it))
	}
	return out, nil
}

func toParcelaItem(p entities.CommissionParcela) parcelaItem {
	return parcelaItem{
		ID:                p.ID,
		OrderID:           p.OrderID,
		SellerID:          p.SellerID,
		ClientID:          p.ClientID,
		Origin:            p.Origin,
		NumeroParcela:     p.NumeroParcela,
		TotalParcelas:     p.TotalParcelas,
		Value:             p.Value,
		CommissionPercent: p.CommissionPercent,
		CommissionValue:   p.CommissionValue,
		DueDate:           formatTime(p.DueDate),
		Status:            p.Status,
		CommissionStatus:  p.CommissionStatus,
		InvoiceURL:        p.InvoiceURL,
		CreatedAt:         formatTime(p.CreatedAt),
	}
}

func fromParcelaItem(it parcelaItem) entities.CommissionParcela {
	return entities.CommissionParcela{
		ID:                it.ID,
		OrderID:           it.OrderID,
		SellerID:          it.SellerID,
		ClientID:          it.ClientID,
		Origin:            it.Origin,
		NumeroParcela:     it.NumeroParcela,
		TotalParcelas:     it.TotalParcelas,
		Value:             it.Value,
		CommissionPercent: it.CommissionPercent,
		CommissionValue:   it.CommissionValue,
		DueDate:           parseTime(it.DueDate),
		Status:            it.Status,
		CommissionStatus:  it.CommissionStatus,
		InvoiceURL:        it.InvoiceURL,
		CreatedAt:         parseTime(it.CreatedAt),
	}
}
