package repository

import (
	"context"
	"sort"
	"strconv"
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
	defaultOnboardingStateTableName  = "ebd_onboarding"
	defaultOnboardingPhasesTableName = "ebd_onboarding_fases"
)

type onboardingStateItem struct {
	ChurchID         string   `dynamodbav:"church_id"`
	Mode             string   `dynamodbav:"mode"`
	CycleStartedAt   string   `dynamodbav:"cycle_started_at,omitempty"`
	BirthdayDate     string   `dynamodbav:"birthday_date,omitempty"`
	Concluded        bool     `dynamodbav:"concluded"`
	ConcludedAt      string   `dynamodbav:"concluded_at,omitempty"`
	DiscountPercent  float64  `dynamodbav:"discount_percent,omitempty"`
	DiscountCapValue *float64 `dynamodbav:"discount_cap_value,omitempty"`
	CouponUsedYear   int      `dynamodbav:"coupon_used_year,omitempty"`
	UpdatedAt        string   `dynamodbav:"updated_at"`
}

type phaseRecordItem struct {
	ChurchID    string `dynamodbav:"church_id"`
	PhaseID     int    `dynamodbav:"phase_id"`
	Completed   bool   `dynamodbav:"completed"`
	CompletedAt string `dynamodbav:"completed_at,omitempty"`
	ItemRef     string `dynamodbav:"item_ref,omitempty"`
	UpdatedAt   string `dynamodbav:"updated_at"`
}

// OnboardingDynamoRepository persists the onboarding summary and phase rows.
//
// Table requirements:
//   - state: PK church_id
//   - phases: PK church_id, SK phase_id (number)
type OnboardingDynamoRepository struct {
	ddb         *dynamodb.Client
	stateTable  string
	phasesTable string
}

var _ interfaces.IOnboardingRepository = (*OnboardingDynamoRepository)(nil)

func NewOnboardingDynamoRepository(ddb *dynamodb.Client, stateTable, phasesTable string) *OnboardingDynamoRepository {
	return &OnboardingDynamoRepository{
		ddb:         ddb,
		stateTable:  tableOrDefault(stateTable, defaultOnboardingStateTableName),
		phasesTable: tableOrDefault(phasesTable, defaultOnboardingPhasesTableName),
	}
}

func (r *OnboardingDynamoRepository) GetState(ctx context.Context, churchID string) (entities.OnboardingState, error) {
	var it onboardingStateItem
	found, err := getItem(ctx, r.ddb, r.stateTable, stringKey("church_id", churchID), &it)
	if err != nil || !found {
		return entities.OnboardingState{}, err
	}
	return entities.OnboardingState{
		ChurchID:         it.ChurchID,
		Mode:             entities.OnboardingMode(it.Mode),
		CycleStartedAt:   parseTimePtr(it.CycleStartedAt),
		BirthdayDate:     parseTimePtr(it.BirthdayDate),
		Concluded:        it.Concluded,
		ConcludedAt:      parseTimePtr(it.ConcludedAt),
		DiscountPercent:  it.DiscountPercent,
		DiscountCapValue: it.DiscountCapValue,
		CouponUsedYear:   it.CouponUsedYear,
		UpdatedAt:        parseTime(it.UpdatedAt),
	}, nil
}

// SaveState writes every field except the conclusion, which only
// MarkConcluded sets.
func (r *OnboardingDynamoRepository) SaveState(ctx context.Context, s entities.OnboardingState) error {
	names := map[string]string{
		"#mode":       "mode",
		"#coupon":     "coupon_used_year",
		"#updated_at": "updated_at",
		"#cycle":      "cycle_started_at",
		"#birthday":   "birthday_date",
	}
	values := map[string]types.AttributeValue{
		":mode":       &types.AttributeValueMemberS{Value: string(s.Mode)},
		":coupon":     &types.AttributeValueMemberN{Value: strconv.Itoa(s.CouponUsedYear)},
		":updated_at": &types.AttributeValueMemberS{Value: formatTime(s.UpdatedAt)},
	}
	set := "SET #mode = :mode, #coupon = :coupon, #updated_at = :updated_at"
	var remove []string
	if s.CycleStartedAt != nil {
		set += ", #cycle = :cycle"
		values[":cycle"] = &types.AttributeValueMemberS{Value: formatTime(*s.CycleStartedAt)}
	} else {
		remove = append(remove, "#cycle")
	}
	if s.BirthdayDate != nil {
		set += ", #birthday = :birthday"
		values[":birthday"] = &types.AttributeValueMemberS{Value: formatTime(*s.BirthdayDate)}
	} else {
		remove = append(remove, "#birthday")
	}
	expr := set
	if len(remove) > 0 {
		expr += " REMOVE " + strings.Join(remove, ", ")
	}

	_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.stateTable),
		Key:                       stringKey("church_id", s.ChurchID),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	})
	return err
}

func (r *OnboardingDynamoRepository) MarkConcluded(ctx context.Context, churchID string, reward entities.OnboardingReward, at time.Time) error {
	names := map[string]string{
		"#concluded":    "concluded",
		"#concluded_at": "concluded_at",
		"#discount":     "discount_percent",
		"#updated_at":   "updated_at",
	}
	values := map[string]types.AttributeValue{
		":true":     &types.AttributeValueMemberBOOL{Value: true},
		":false":    &types.AttributeValueMemberBOOL{Value: false},
		":at":       &types.AttributeValueMemberS{Value: formatTime(at)},
		":discount": &types.AttributeValueMemberN{Value: floatToString(reward.Percent)},
	}
	expr := "SET #concluded = :true, #concluded_at = :at, #discount = :discount, #updated_at = :at"
	names["#cap"] = "discount_cap_value"
	if reward.CapValue != nil {
		expr += ", #cap = :cap"
		values[":cap"] = &types.AttributeValueMemberN{Value: floatToString(*reward.CapValue)}
	} else {
		expr += " REMOVE #cap"
	}

	_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.stateTable),
		Key:                       stringKey("church_id", churchID),
		ConditionExpression:       aws.String("attribute_not_exists(#concluded) OR #concluded = :false"),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	})
	if err != nil {
		if isConditionFailed(err) {
			return interfaces.ErrConditionFailed
		}
		return err
	}
	return nil
}

func (r *OnboardingDynamoRepository) ListPhases(ctx context.Context, churchID string) ([]entities.PhaseRecord, error) {
	raw, err := queryAll(ctx, r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.phasesTable),
		KeyConditionExpression: aws.String("church_id = :cid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":cid": &types.AttributeValueMemberS{Value: churchID},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}

	out := make([]entities.PhaseRecord, 0, len(raw))
	for _, m := range raw {
		var it phaseRecordItem
		if err := attributevalue.UnmarshalMap(m, &it); err != nil {
			return nil, err
		}
		out = append(out, entities.PhaseRecord{
			ChurchID:    it.ChurchID,
			PhaseID:     it.PhaseID,
			Completed:   it.Completed,
			CompletedAt: parseTimePtr(it.CompletedAt),
			ItemRef:     it.ItemRef,
			UpdatedAt:   parseTime(it.UpdatedAt),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PhaseID < out[j].PhaseID })
	return out, nil
}

func (r *OnboardingDynamoRepository) UpsertPhase(ctx context.Context, rec entities.PhaseRecord) error {
	av, err := attributevalue.MarshalMap(phaseRecordItem{
		ChurchID:    rec.ChurchID,
		PhaseID:     rec.PhaseID,
		Completed:   rec.Completed,
		CompletedAt: formatTimePtr(rec.CompletedAt),
		ItemRef:     rec.ItemRef,
		UpdatedAt:   formatTime(rec.UpdatedAt),
	})
	if err != nil {
		return err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.phasesTable),
		Item:      av,
	})
	return err
}

// ResetPhases clears completion of the given phases in one batch.
func (r *OnboardingDynamoRepository) ResetPhases(ctx context.Context, churchID string, phaseIDs []int, at time.Time) error {
	if len(phaseIDs) == 0 {
		return nil
	}
	requests := make([]types.WriteRequest, 0, len(phaseIDs))
	for _, id := range phaseIDs {
		av, err := attributevalue.MarshalMap(phaseRecordItem{
			ChurchID:  churchID,
			PhaseID:   id,
			Completed: false,
			UpdatedAt: formatTime(at),
		})
		if err != nil {
			return err
		}
		requests = append(requests, types.WriteRequest{PutRequest: &types.PutRequest{Item: av}})
	}

	pending := map[string][]types.WriteRequest{r.phasesTable: requests}
	for attempt := 0; len(pending) > 0 && attempt < 5; attempt++ {
		out, err := r.ddb.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{RequestItems: pending})
		if err != nil {
			return err
		}
		pending = out.UnprocessedItems
	}
	if len(pending) > 0 {
		return errUnprocessedItems
	}
	return nil
}
