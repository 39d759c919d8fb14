package repository

import (
	"context"
	"sort"
	"strings"
	"time"

	"ebd_gestao/internal/domain/entities"
	"ebd_gestao/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultProposalsTableName = "propostas"
	proposalsTokenIndex       = "token-index"
	proposalsSellerIndex      = "seller_id-index"
	proposalsStatusIndex      = "status-index"
)

type proposalItemLine struct {
	VariantID string  `dynamodbav:"variant_id"`
	Title     string  `dynamodbav:"title"`
	SKU       string  `dynamodbav:"sku,omitempty"`
	Category  string  `dynamodbav:"category,omitempty"`
	Quantity  int     `dynamodbav:"quantity"`
	UnitPrice float64 `dynamodbav:"unit_price"`
}

type proposalItem struct {
	ID               string             `dynamodbav:"id"`
	Token            string             `dynamodbav:"token"`
	ClientID         string             `dynamodbav:"client_id,omitempty"`
	ClientName       string             `dynamodbav:"client_name"`
	ClientDocument   string             `dynamodbav:"client_document,omitempty"`
	ClientCEP        string             `dynamodbav:"client_cep,omitempty"`
	ClientPhone      string             `dynamodbav:"client_phone,omitempty"`
	Items            []proposalItemLine `dynamodbav:"items"`
	Subtotal         float64            `dynamodbav:"subtotal"`
	DiscountPercent  float64            `dynamodbav:"discount_percent"`
	ShippingMethod   string             `dynamodbav:"shipping_method"`
	ShippingCarrier  string             `dynamodbav:"shipping_carrier,omitempty"`
	ShippingCost     float64            `dynamodbav:"shipping_cost"`
	ShippingLeadTime string             `dynamodbav:"shipping_lead_time,omitempty"`
	Total            float64            `dynamodbav:"total"`
	SellerID         string             `dynamodbav:"seller_id"`
	SellerName       string             `dynamodbav:"seller_name"`
	Status           string             `dynamodbav:"status"`
	InvoicingTerm    *int               `dynamodbav:"invoicing_term,omitempty"`
	PaymentMethod    string             `dynamodbav:"payment_method,omitempty"`
	PaymentURL       string             `dynamodbav:"payment_url,omitempty"`
	ExternalOrderID  string             `dynamodbav:"external_order_id,omitempty"`
	CreatedAt        string             `dynamodbav:"created_at"`
	AcceptedAt       string             `dynamodbav:"accepted_at,omitempty"`
	UpdatedAt        string             `dynamodbav:"updated_at"`
}

// ProposalDynamoRepository persists Proposal entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI token-index (PK: token)
//   - GSI seller_id-index (PK: seller_id, SK: created_at)
//   - GSI status-index (PK: status, SK: created_at)
//
// Status writes are conditioned on the stored status, which serialises
// concurrent transitions of the same proposal.
type ProposalDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IProposalRepository = (*ProposalDynamoRepository)(nil)

func NewProposalDynamoRepository(ddb *dynamodb.Client, tableName string) *ProposalDynamoRepository {
	return &ProposalDynamoRepository{
		ddb:       ddb,
		tableName: tableOrDefault(tableName, defaultProposalsTableName),
	}
}

func (r *ProposalDynamoRepository) Create(ctx context.Context, p entities.Proposal) (entities.Proposal, error) {
	av, err := attributevalue.MarshalMap(toProposalItem(p))
	if err != nil {
		return entities.Proposal{}, err
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
			return entities.Proposal{}, interfaces.ErrAlreadyExists
		}
		return entities.Proposal{}, err
	}
	return p, nil
}

func (r *ProposalDynamoRepository) GetByID(ctx context.Context, id string) (entities.Proposal, error) {
	var it proposalItem
	found, err := getItem(ctx, r.ddb, r.tableName, stringKey("id", id), &it)
	if err != nil || !found {
		return entities.Proposal{}, err
	}
	return fromProposalItem(it), nil
}

func (r *ProposalDynamoRepository) GetByToken(ctx context.Context, token string) (entities.Proposal, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(proposalsTokenIndex),
		KeyConditionExpression: aws.String("#token = :token"),
		ExpressionAttributeNames: map[string]string{
			"#token": "token",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":token": &types.AttributeValueMemberS{Value: token},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return entities.Proposal{}, err
	}
	if len(out.Items) == 0 {
		return entities.Proposal{}, nil
	}

	// The index is eventually consistent; re-read the base item so a rotated
	// token is never served from a stale projection.
	var it proposalItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &it); err != nil {
		return entities.Proposal{}, err
	}
	p, err := r.GetByID(ctx, it.ID)
	if err != nil {
		return entities.Proposal{}, err
	}
	if p.Token != token {
		return entities.Proposal{}, nil
	}
	return p, nil
}

func (r *ProposalDynamoRepository) List(ctx context.Context, filter entities.ProposalFilter) ([]entities.Proposal, error) {
	var (
		raw []map[string]types.AttributeValue
		err error
	)
	switch {
	case filter.Status != "":
		raw, err = queryAll(ctx, r.ddb, r.indexQuery(proposalsStatusIndex, "status", string(filter.Status), filter.CreatedBefore))
	case filter.SellerID != "":
		raw, err = queryAll(ctx, r.ddb, r.indexQuery(proposalsSellerIndex, "seller_id", filter.SellerID, filter.CreatedBefore))
	default:
		raw, err = scanAll(ctx, r.ddb, &dynamodb.ScanInput{TableName: aws.String(r.tableName)})
	}
	if err != nil {
		return nil, err
	}

	out := make([]entities.Proposal, 0, len(raw))
	for _, m := range raw {
		var it proposalItem
		if err := attributevalue.UnmarshalMap(m, &it); err != nil {
			return nil, err
		}
		p := fromProposalItem(it)
		if !matchesProposalFilter(p, filter) {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *ProposalDynamoRepository) indexQuery(index, attr, value string, before *time.Time) *dynamodb.QueryInput {
	in := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(index),
		KeyConditionExpression: aws.String("#pk = :pk"),
		ExpressionAttributeNames: map[string]string{
			"#pk": attr,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: value},
		},
		ScanIndexForward: aws.Bool(false),
	}
	if before != nil {
		in.KeyConditionExpression = aws.String("#pk = :pk AND #created_at < :before")
		in.ExpressionAttributeNames["#created_at"] = "created_at"
		in.ExpressionAttributeValues[":before"] = &types.AttributeValueMemberS{Value: formatTime(*before)}
	}
	return in
}

// UpdateContent overwrites the content fields while the stored proposal is
// still pending.
func (r *ProposalDynamoRepository) UpdateContent(ctx context.Context, p entities.Proposal) (entities.Proposal, error) {
	it := toProposalItem(p)
	items, err := attributevalue.Marshal(it.Items)
	if err != nil {
		return entities.Proposal{}, err
	}

	names := map[string]string{
		"#id":             "id",
		"#status":         "status",
		"#token":          "token",
		"#client_id":      "client_id",
		"#client_name":    "client_name",
		"#client_doc":     "client_document",
		"#client_cep":     "client_cep",
		"#client_phone":   "client_phone",
		"#items":          "items",
		"#subtotal":       "subtotal",
		"#discount":       "discount_percent",
		"#ship_method":    "shipping_method",
		"#ship_carrier":   "shipping_carrier",
		"#ship_cost":      "shipping_cost",
		"#ship_lead_time": "shipping_lead_time",
		"#total":          "total",
		"#seller_id":      "seller_id",
		"#seller_name":    "seller_name",
		"#updated_at":     "updated_at",
	}
	values := map[string]types.AttributeValue{
		":pending":        &types.AttributeValueMemberS{Value: string(entities.ProposalStatusPendente)},
		":token":          &types.AttributeValueMemberS{Value: it.Token},
		":client_id":      &types.AttributeValueMemberS{Value: it.ClientID},
		":client_name":    &types.AttributeValueMemberS{Value: it.ClientName},
		":client_doc":     &types.AttributeValueMemberS{Value: it.ClientDocument},
		":client_cep":     &types.AttributeValueMemberS{Value: it.ClientCEP},
		":client_phone":   &types.AttributeValueMemberS{Value: it.ClientPhone},
		":items":          items,
		":subtotal":       &types.AttributeValueMemberN{Value: floatToString(it.Subtotal)},
		":discount":       &types.AttributeValueMemberN{Value: floatToString(it.DiscountPercent)},
		":ship_method":    &types.AttributeValueMemberS{Value: it.ShippingMethod},
		":ship_carrier":   &types.AttributeValueMemberS{Value: it.ShippingCarrier},
		":ship_cost":      &types.AttributeValueMemberN{Value: floatToString(it.ShippingCost)},
		":ship_lead_time": &types.AttributeValueMemberS{Value: it.ShippingLeadTime},
		":total":          &types.AttributeValueMemberN{Value: floatToString(it.Total)},
		":seller_id":      &types.AttributeValueMemberS{Value: it.SellerID},
		":seller_name":    &types.AttributeValueMemberS{Value: it.SellerName},
		":updated_at":     &types.AttributeValueMemberS{Value: it.UpdatedAt},
	}
	expr := "SET #token = :token, #client_id = :client_id, #client_name = :client_name, #client_doc = :client_doc, " +
		"#client_cep = :client_cep, #client_phone = :client_phone, #items = :items, #subtotal = :subtotal, " +
		"#discount = :discount, #ship_method = :ship_method, #ship_carrier = :ship_carrier, #ship_cost = :ship_cost, " +
		"#ship_lead_time = :ship_lead_time, #total = :total, #seller_id = :seller_id, #seller_name = :seller_name, " +
		"#updated_at = :updated_at"

	return r.update(ctx, p.ID, expr, "attribute_exists(#id) AND #status = :pending", names, values)
}

func (r *ProposalDynamoRepository) UpdateStatus(ctx context.Context, id string, change entities.ProposalStatusChange) (entities.Proposal, error) {
	now := formatTime(time.Now())
	expr := "SET #status = :to, #updated_at = :updated_at"
	names := map[string]string{
		"#id":         "id",
		"#status":     "status",
		"#updated_at": "updated_at",
	}
	values := map[string]types.AttributeValue{
		":from":       &types.AttributeValueMemberS{Value: string(change.From)},
		":to":         &types.AttributeValueMemberS{Value: string(change.To)},
		":updated_at": &types.AttributeValueMemberS{Value: now},
	}
	set := func(attr, placeholder string, v types.AttributeValue) {
		names["#"+attr] = attr
		values[placeholder] = v
		expr += ", #" + attr + " = " + placeholder
	}
	if change.AcceptedAt != nil {
		set("accepted_at", ":accepted_at", &types.AttributeValueMemberS{Value: formatTime(*change.AcceptedAt)})
	}
	if change.InvoicingTerm != nil {
		set("invoicing_term", ":invoicing_term", &types.AttributeValueMemberN{Value: floatToString(float64(*change.InvoicingTerm))})
	}
	if change.PaymentMethod != "" {
		set("payment_method", ":payment_method", &types.AttributeValueMemberS{Value: change.PaymentMethod})
	}
	if change.PaymentURL != "" {
		set("payment_url", ":payment_url", &types.AttributeValueMemberS{Value: change.PaymentURL})
	}
	if change.ExternalOrderID != "" {
		set("external_order_id", ":external_order_id", &types.AttributeValueMemberS{Value: change.ExternalOrderID})
	}
	if change.Token != "" {
		set("token", ":token", &types.AttributeValueMemberS{Value: change.Token})
	}
	if remove := clearedAcceptance(change); len(remove) > 0 {
		for _, attr := range remove {
			names["#"+attr] = attr
		}
		expr += " REMOVE #" + strings.Join(remove, ", #")
	}

	return r.update(ctx, id, expr, "attribute_exists(#id) AND #status = :from", names, values)
}

// clearedAcceptance lists the acceptance attributes to REMOVE, leaving out the
// ones the same change sets. DynamoDB rejects an update that sets and removes one path.
func clearedAcceptance(change entities.ProposalStatusChange) []string {
	if !change.ClearAcceptance {
		return nil
	}
	var attrs []string
	if change.AcceptedAt == nil {
		attrs = append(attrs, "accepted_at")
	}
	if change.InvoicingTerm == nil {
		attrs = append(attrs, "invoicing_term")
	}
	return attrs
}

func (r *ProposalDynamoRepository) Delete(ctx context.Context, id string) error {
	_, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       stringKey("id", id),
	})
	return err
}

// update reports ErrConditionFailed when the item exists but the condition did
// not hold, and a zero Proposal when the item does not exist.
func (r *ProposalDynamoRepository) update(
	ctx context.Context,
	id, updateExpr, condition string,
	names map[string]string,
	values map[string]types.AttributeValue,
) (entities.Proposal, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       stringKey("id", id),
		ConditionExpression:       aws.String(condition),
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionFailed(err) {
			current, getErr := r.GetByID(ctx, id)
			if getErr != nil {
				return entities.Proposal{}, getErr
			}
			if current.ID == "" {
				return entities.Proposal{}, nil
			}
			return entities.Proposal{}, interfaces.ErrConditionFailed
		}
		return entities.Proposal{}, err
	}
	var it proposalItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Proposal{}, err
	}
	return fromProposalItem(it), nil
}

func matchesProposalFilter(p entities.Proposal, f entities.ProposalFilter) bool {
	if f.SellerID != "" && p.SellerID != f.SellerID {
		return false
	}
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if f.CreatedBefore != nil && !p.CreatedAt.Before(*f.CreatedBefore) {
		return false
	}
	return true
}

func toProposalItem(p entities.Proposal) proposalItem {
	lines := make([]proposalItemLine, 0, len(p.Items))
	for _, i := range p.Items {
		lines = append(lines, proposalItemLine{
			VariantID: i.VariantID,
			Title:     i.Title,
			SKU:       i.SKU,
			Category:  i.Category,
			Quantity:  i.Quantity,
			UnitPrice: i.UnitPrice,
		})
	}
	return proposalItem{
		ID:               p.ID,
		Token:            p.Token,
		ClientID:         p.Client.ID,
		ClientName:       p.Client.Name,
		ClientDocument:   p.Client.Document,
		ClientCEP:        p.Client.CEP,
		ClientPhone:      p.Client.Phone,
		Items:            lines,
		Subtotal:         p.Subtotal,
		DiscountPercent:  p.DiscountPercent,
		ShippingMethod:   string(p.Shipping.Method),
		ShippingCarrier:  p.Shipping.Carrier,
		ShippingCost:     p.Shipping.Cost,
		ShippingLeadTime: p.Shipping.LeadTime,
		Total:            p.Total,
		SellerID:         p.SellerID,
		SellerName:       p.SellerName,
		Status:           string(p.Status),
		InvoicingTerm:    p.InvoicingTerm,
		PaymentMethod:    p.PaymentMethod,
		PaymentURL:       p.PaymentURL,
		ExternalOrderID:  p.ExternalOrderID,
		CreatedAt:        formatTime(p.CreatedAt),
		AcceptedAt:       formatTimePtr(p.AcceptedAt),
		UpdatedAt:        formatTime(p.UpdatedAt),
	}
}

func fromProposalItem(it proposalItem) entities.Proposal {
	items := make([]entities.ProposalItem, 0, len(it.Items))
	for _, l := range it.Items {
		items = append(items, entities.ProposalItem{
			VariantID: l.VariantID,
			Title:     l.Title,
			SKU:       l.SKU,
			Category:  l.Category,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		})
	}
	return entities.Proposal{
		ID:    it.ID,
		Token: it.Token,
		Client: entities.ProposalClient{
			ID:       it.ClientID,
			Name:     it.ClientName,
			Document: it.ClientDocument,
			CEP:      it.ClientCEP,
			Phone:    it.ClientPhone,
		},
		Items:           items,
		Subtotal:        it.Subtotal,
		DiscountPercent: it.DiscountPercent,
		Shipping: entities.ProposalShipping{
			Method:   entities.ShippingMethod(it.ShippingMethod),
			Carrier:  it.ShippingCarrier,
			Cost:     it.ShippingCost,
			LeadTime: it.ShippingLeadTime,
		},
		Total:           it.Total,
		SellerID:        it.SellerID,
		SellerName:      it.SellerName,
		Status:          entities.ProposalStatus(it.Status),
		InvoicingTerm:   it.InvoicingTerm,
		PaymentMethod:   it.PaymentMethod,
		PaymentURL:      it.PaymentURL,
		ExternalOrderID: it.ExternalOrderID,
		CreatedAt:       parseTime(it.CreatedAt),
		AcceptedAt:      parseTimePtr(it.AcceptedAt),
		UpdatedAt:       parseTime(it.UpdatedAt),
	}
}
