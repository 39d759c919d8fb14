package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"ebd_gestao/internal/config"
	"ebd_gestao/internal/domain/entities"
	"ebd_gestao/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

var errUnprocessedItems = errors.New("dynamodb batch write left unprocessed items")

type purchasedItemItem struct {
	ID          string `dynamodbav:"id"`
	ChurchID    string `dynamodbav:"church_id"`
	Title       string `dynamodbav:"titulo"`
	Category    string `dynamodbav:"categoria"`
	Applied     bool   `dynamodbav:"aplicada"`
	AppliedAt   string `dynamodbav:"aplicada_em,omitempty"`
	PurchasedAt string `dynamodbav:"comprada_em"`
}

// ChurchActivityDynamoRepository counts the church records that complete
// onboarding phases. Every table is keyed by church_id (PK) and id (SK) and
// carries created_at; classes and instructors also carry an "ativo" flag.
type ChurchActivityDynamoRepository struct {
	ddb    *dynamodb.Client
	tables config.TablesConfig
}

var _ interfaces.IChurchActivityRepository = (*ChurchActivityDynamoRepository)(nil)

func NewChurchActivityDynamoRepository(ddb *dynamodb.Client, tables config.TablesConfig) *ChurchActivityDynamoRepository {
	tables.PurchasedItems = tableOrDefault(tables.PurchasedItems, "ebd_revistas_compradas")
	tables.Classes = tableOrDefault(tables.Classes, "ebd_turmas")
	tables.Instructors = tableOrDefault(tables.Instructors, "ebd_professores")
	tables.Plannings = tableOrDefault(tables.Plannings, "ebd_planejamentos")
	tables.Rosters = tableOrDefault(tables.Rosters, "ebd_escalas")
	return &ChurchActivityDynamoRepository{ddb: ddb, tables: tables}
}

func (r *ChurchActivityDynamoRepository) ListPurchasedItems(ctx context.Context, churchID string) ([]entities.PurchasedItem, error) {
	raw, err := queryAll(ctx, r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tables.PurchasedItems),
		KeyConditionExpression: aws.String("church_id = :cid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":cid": &types.AttributeValueMemberS{Value: churchID},
		},
	})
	if err != nil {
		return nil, err
	}

	out := make([]entities.PurchasedItem, 0, len(raw))
	for _, m := range raw {
		var it purchasedItemItem
		if err := attributevalue.UnmarshalMap(m, &it); err != nil {
			return nil, err
		}
		out = append(out, entities.PurchasedItem{
			ID:          it.ID,
			ChurchID:    it.ChurchID,
			Title:       it.Title,
			Category:    it.Category,
			Applied:     it.Applied,
			AppliedAt:   parseTimePtr(it.AppliedAt),
			PurchasedAt: parseTime(it.PurchasedAt),
		})
	}
	return out, nil
}

func (r *ChurchActivityDynamoRepository) CountActiveClasses(ctx context.Context, churchID string, since *time.Time) (int, error) {
	return r.count(ctx, r.tables.Classes, churchID, since, true)
}

func (r *ChurchActivityDynamoRepository) CountActiveInstructors(ctx context.Context, churchID string, since *time.Time) (int, error) {
	return r.count(ctx, r.tables.Instructors, churchID, since, true)
}

func (r *ChurchActivityDynamoRepository) CountPlannings(ctx context.Context, churchID string, since *time.Time) (int, error) {
	return r.count(ctx, r.tables.Plannings, churchID, since, false)
}

func (r *ChurchActivityDynamoRepository) CountRosters(ctx context.Context, churchID string, since *time.Time) (int, error) {
	return r.count(ctx, r.tables.Rosters, churchID, since, false)
}

func (r *ChurchActivityDynamoRepository) count(ctx context.Context, table, churchID string, since *time.Time, activeOnly bool) (int, error) {
	in := &dynamodb.QueryInput{
		TableName:              aws.String(table),
		KeyConditionExpression: aws.String("church_id = :cid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":cid": &types.AttributeValueMemberS{Value: churchID},
		},
		Select: types.SelectCount,
	}

	var filters []string
	names := map[string]string{}
	if activeOnly {
		filters = append(filters, "#ativo = :true")
		names["#ativo"] = "ativo"
		in.ExpressionAttributeValues[":true"] = &types.AttributeValueMemberBOOL{Value: true}
	}
	if since != nil {
		filters = append(filters, "#created_at > :since")
		names["#created_at"] = "created_at"
		in.ExpressionAttributeValues[":since"] = &types.AttributeValueMemberS{Value: formatTime(*since)}
	}
	if len(filters) > 0 {
		in.FilterExpression = aws.String(strings.Join(filters, " AND "))
		in.ExpressionAttributeNames = names
	}

	total := 0
	p := dynamodb.NewQueryPaginator(r.ddb, in)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return 0, err
		}
		total += int(page.Count)
	}
	return total, nil
}
