package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"glow_server/models"
	"glow_server/utils"
)

// ErrDailyLimitReached is returned when a sender has used up today's
// compliment quota.
var ErrDailyLimitReached = errors.New("daily compliment limit reached")

// UserProfileService manages per-user records and the daily send quota.
type UserProfileService struct {
	Dynamo     *DynamoService
	Table      string
	DailyLimit int
}

// EnsureUser creates the user record on first load. The write is
// conditional on the key not existing, so repeat calls are no-ops.
// Returns the stored record and whether it was created by this call.
func (us *UserProfileService) EnsureUser(ctx context.Context, fid, username string) (*models.User, bool, error) {
	user := models.User{
		FID:       fid,
		Username:  username,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}

	err := us.Dynamo.PutItemIfAbsent(ctx, us.Table, user, "fid")
	if err == nil {
		log.Printf("✅ Created user record for fid %s (@%s)", fid, username)
		return &user, true, nil
	}
	if !errors.Is(err, ErrConditionFailed) {
		return nil, false, fmt.Errorf("failed to create user %s: %w", fid, err)
	}

	item, err := us.Dynamo.GetItem(ctx, us.Table, map[string]types.AttributeValue{
		"fid": &types.AttributeValueMemberS{Value: fid},
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to load existing user %s: %w", fid, err)
	}

	var existing models.User
	if err := attributevalue.UnmarshalMap(item, &existing); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal user %s: %w", fid, err)
	}
	return &existing, false, nil
}

// ConsumeDailyQuota reserves one send from the caller's quota for the
// given calendar day, atomically. Two conditional updates cover the two
// states: the counter is already on today's date and below the cap, or
// the counter is on a previous day (or absent) and rolls over to 1.
// When both conditions fail the quota is exhausted.
func (us *UserProfileService) ConsumeDailyQuota(ctx context.Context, fid, day string) error {
	key := map[string]types.AttributeValue{
		"fid": &types.AttributeValueMemberS{Value: fid},
	}

	attrs, err := us.Dynamo.UpdateItemConditional(ctx, us.Table, key,
		"SET dailyCount = dailyCount + :one",
		"dailyDate = :today AND dailyCount < :cap",
		nil,
		map[string]types.AttributeValue{
			":one":   &types.AttributeValueMemberN{Value: "1"},
			":today": &types.AttributeValueMemberS{Value: day},
			":cap":   &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", us.DailyLimit)},
		},
	)
	if err == nil {
		log.Printf("Quota consumed for fid %s: %d/%d today", fid, utils.ExtractInt(attrs, "dailyCount"), us.DailyLimit)
		return nil
	}
	if !errors.Is(err, ErrConditionFailed) {
		return err
	}

	// Not on today's counter yet: roll the counter over to a fresh day.
	attrs, err = us.Dynamo.UpdateItemConditional(ctx, us.Table, key,
		"SET dailyDate = :today, dailyCount = :one",
		"attribute_not_exists(dailyDate) OR dailyDate <> :today",
		nil,
		map[string]types.AttributeValue{
			":one":   &types.AttributeValueMemberN{Value: "1"},
			":today": &types.AttributeValueMemberS{Value: day},
		},
	)
	if err == nil {
		log.Printf("Quota counter rolled over for fid %s on %s", fid, utils.ExtractString(attrs, "dailyDate"))
		return nil
	}
	if errors.Is(err, ErrConditionFailed) {
		return ErrDailyLimitReached
	}
	return err
}

// IncrementSent bumps the sender's lifetime sent counter.
func (us *UserProfileService) IncrementSent(ctx context.Context, fid string) error {
	return us.addToCounter(ctx, fid, "complimentsSent")
}

// IncrementReceived bumps the receiver's lifetime received counter.
func (us *UserProfileService) IncrementReceived(ctx context.Context, fid string) error {
	return us.addToCounter(ctx, fid, "complimentsReceived")
}

func (us *UserProfileService) addToCounter(ctx context.Context, fid, attr string) error {
	_, err := us.Dynamo.UpdateItemConditional(ctx, us.Table,
		map[string]types.AttributeValue{
			"fid": &types.AttributeValueMemberS{Value: fid},
		},
		"ADD #c :one",
		"",
		map[string]string{"#c": attr},
		map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to increment %s for fid %s: %w", attr, fid, err)
	}
	return nil
}
