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
)

// UnlockService persists payment entitlements. Recording the payment in
// the store is what keeps a paid unlock across reloads and sessions.
type UnlockService struct {
	Dynamo *DynamoService
	Table  string
}

// RecordUnlock stores a payment entitlement for the user. A second
// payment confirmation for the same user is treated as idempotent: the
// original record is kept and returned.
func (s *UnlockService) RecordUnlock(ctx context.Context, fid, paymentID, amount string) (*models.Unlock, error) {
	unlock := models.Unlock{
		FID:        fid,
		PaymentID:  paymentID,
		Amount:     amount,
		UnlockedAt: time.Now().UTC().Format(time.RFC3339),
	}

	err := s.Dynamo.PutItemIfAbsent(ctx, s.Table, unlock, "fid")
	if err == nil {
		log.Printf("✅ Recorded unlock for fid %s (payment %s)", fid, paymentID)
		return &unlock, nil
	}
	if !errors.Is(err, ErrConditionFailed) {
		return nil, fmt.Errorf("failed to record unlock for fid %s: %w", fid, err)
	}

	item, err := s.Dynamo.GetItem(ctx, s.Table, map[string]types.AttributeValue{
		"fid": &types.AttributeValueMemberS{Value: fid},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load existing unlock for fid %s: %w", fid, err)
	}

	var existing models.Unlock
	if err := attributevalue.UnmarshalMap(item, &existing); err != nil {
		return nil, fmt.Errorf("failed to unmarshal unlock for fid %s: %w", fid, err)
	}
	log.Printf("Unlock already recorded for fid %s, keeping payment %s", fid, existing.PaymentID)
	return &existing, nil
}

// HasUnlock reports whether the user holds a payment entitlement.
func (s *UnlockService) HasUnlock(ctx context.Context, fid string) (bool, error) {
	_, err := s.Dynamo.GetItem(ctx, s.Table, map[string]types.AttributeValue{
		"fid": &types.AttributeValueMemberS{Value: fid},
	})
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
