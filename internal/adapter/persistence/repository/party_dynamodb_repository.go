package repository

import (
	"context"

	"ebd_gestao/internal/domain/entities"
	"ebd_gestao/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultSellersTableName           = "vendedores"
	defaultCategoryDiscountsTableName = "vendedor_descontos_categoria"
	defaultClientsTableName           = "ebd_clientes"
)

type sellerItem struct {
	ID                string   `dynamodbav:"id"`
	Name              string   `dynamodbav:"nome"`
	Email             string   `dynamodbav:"email,omitempty"`
	Tier              string   `dynamodbav:"tipo"`
	CommissionPercent *float64 `dynamodbav:"comissao_percentual,omitempty"`
}

type categoryDiscountItem struct {
	SellerID string  `dynamodbav:"vendedor_id"`
	Category string  `dynamodbav:"categoria"`
	Percent  float64 `dynamodbav:"desconto_percentual"`
}

// SellerDynamoRepository reads sellers and manages representante discounts.
//
// Table requirements:
//   - sellers: PK id
//   - category discounts: PK vendedor_id, SK categoria
type SellerDynamoRepository struct {
	ddb            *dynamodb.Client
	sellersTable   string
	discountsTable string
}

var _ interfaces.ISellerRepository = (*SellerDynamoRepository)(nil)

func NewSellerDynamoRepository(ddb *dynamodb.Client, sellersTable, discountsTable string) *SellerDynamoRepository {
	return &SellerDynamoRepository{
		ddb:            ddb,
		sellersTable:   tableOrDefault(sellersTable, defaultSellersTableName),
		discountsTable: tableOrDefault(discountsTable, defaultCategoryDiscountsTableName),
	}
}

func (r *SellerDynamoRepository) GetByID(ctx context.Context, id string) (entities.Seller, error) {
	var it sellerItem
	found, err := getItem(ctx, r.ddb, r.sellersTable, stringKey("id", id), &it)
	if err != nil || !found {
		return entities.Seller{}, err
	}
	return entities.Seller{
		ID:                it.ID,
		Name:              it.Name,
		Email:             it.Email,
		Tier:              it.Tier,
		CommissionPercent: it.CommissionPercent,
	}, nil
}

func (r *SellerDynamoRepository) ListCategoryDiscounts(ctx context.Context, sellerID string) ([]entities.CategoryDiscount, error) {
	raw, err := queryAll(ctx, r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.discountsTable),
		KeyConditionExpression: aws.String("vendedor_id = :sid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":sid": &types.AttributeValueMemberS{Value: sellerID},
		},
	})
	if err != nil {
		return nil, err
	}

	out := make([]entities.CategoryDiscount, 0, len(raw))
	for _, m := range raw {
		var it categoryDiscountItem
		if err := attributevalue.UnmarshalMap(m, &it); err != nil {
			return nil, err
		}
		out = append(out, entities.CategoryDiscount{SellerID: it.SellerID, Category: it.Category, Percent: it.Percent})
	}
	return out, nil
}

// UpsertCategoryDiscount keeps one row per seller and category.
func (r *SellerDynamoRepository) UpsertCategoryDiscount(ctx context.Context, d entities.CategoryDiscount) error {
	av, err := attributevalue.MarshalMap(categoryDiscountItem{SellerID: d.SellerID, Category: d.Category, Percent: d.Percent})
	if err != nil {
		return err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.discountsTable),
		Item:      av,
	})
	return err
}

type clientItem struct {
	ID         string `dynamodbav:"id"`
	Name       string `dynamodbav:"nome"`
	Document   string `dynamodbav:"documento,omitempty"`
	CEP        string `dynamodbav:"cep,omitempty"`
	Phone      string `dynamodbav:"telefone,omitempty"`
	Email      string `dynamodbav:"email,omitempty"`
	CanInvoice bool   `dynamodbav:"pode_faturar"`
}

// ClientDynamoRepository reads registered churches.
//
// Table requirements:
//   - PK: id (string)
type ClientDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IClientRepository = (*ClientDynamoRepository)(nil)

func NewClientDynamoRepository(ddb *dynamodb.Client, tableName string) *ClientDynamoRepository {
	return &ClientDynamoRepository{
		ddb:       ddb,
		tableName: tableOrDefault(tableName, defaultClientsTableName),
	}
}

func (r *ClientDynamoRepository) GetByID(ctx context.Context, id string) (entities.Client, error) {
	var it clientItem
	found, err := getItem(ctx, r.ddb, r.tableName, stringKey("id", id), &it)
	if err != nil || !found {
		return entities.Client{}, err
	}
	return entities.Client{
		ID:         it.ID,
		Name:       it.Name,
		Document:   it.Document,
		CEP:        it.CEP,
		Phone:      it.Phone,
		Email:      it.Email,
		CanInvoice: it.CanInvoice,
	}, nil
}
