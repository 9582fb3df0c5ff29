package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"glow_server/models"
	"glow_server/utils"
)

// Validation errors surfaced to the client as 4xx responses.
var (
	ErrMissingFields     = errors.New("recipient and compliment are required")
	ErrComplimentTooLong = fmt.Errorf("compliment must be at most %d characters", models.MaxComplimentLength)
	ErrSelfCompliment    = errors.New("you cannot send a compliment to yourself")
	ErrProfanity         = errors.New("please keep your compliment appropriate and kind")
	ErrInvalidRating     = errors.New("rating must be between 1 and 5")
)

// CastPublisher posts the public mention after a send. Satisfied by
// NeynarService.
type CastPublisher interface {
	PublishCast(ctx context.Context, recipient string) (*models.CastResponse, error)
}

// ComplimentService implements the send/read/rate workflow over the
// compliments table.
type ComplimentService struct {
	Dynamo          *DynamoService
	Users           *UserProfileService
	Unlocks         *UnlockService
	Caster          CastPublisher
	Table           string
	UnlockThreshold int
}

// SendInput is the caller-supplied part of a send. Sender identity
// comes from the session, never from the request body.
type SendInput struct {
	Receiver    string `json:"receiver"`
	ReceiverFID string `json:"receiverFID"`
	Compliment  string `json:"compliment"`
}

// QuotaStatus reports today's send usage.
type QuotaStatus struct {
	Count     int `json:"count"`
	Limit     int `json:"limit"`
	Remaining int `json:"remaining"`
}

// UnlockState reports whether received compliments are viewable and how
// far the caller is from the send threshold.
type UnlockState struct {
	Unlocked    bool `json:"unlocked"`
	SentLast24h int  `json:"sentLast24h"`
	Required    int  `json:"required"`
}

// Send validates, consumes quota atomically, persists the compliment,
// and fires the public mention. Validation happens strictly before any
// write; the cast is fire-and-forget after the write.
func (cs *ComplimentService) Send(ctx context.Context, senderFID, senderUsername string, in SendInput) (*models.Compliment, error) {
	receiver := strings.ToLower(strings.TrimSpace(in.Receiver))
	body := strings.TrimSpace(in.Compliment)

	if receiver == "" || body == "" {
		return nil, ErrMissingFields
	}
	if utf8.RuneCountInString(body) > models.MaxComplimentLength {
		return nil, ErrComplimentTooLong
	}
	if strings.EqualFold(receiver, senderUsername) {
		return nil, ErrSelfCompliment
	}
	if result := utils.ContainsProfanity(body); result.HasProfanity {
		log.Printf("Blocked compliment from fid %s, matched terms: %v", senderFID, result.Matched)
		return nil, ErrProfanity
	}

	if err := cs.Users.ConsumeDailyQuota(ctx, senderFID, startOfToday().Format("2006-01-02")); err != nil {
		return nil, err
	}

	compliment := models.Compliment{
		ComplimentID: generateComplimentID(),
		Sender:       senderUsername,
		SenderFID:    senderFID,
		Receiver:     receiver,
		ReceiverFID:  strings.TrimSpace(in.ReceiverFID),
		Compliment:   body,
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
		IsRead:       false,
	}

	if err := cs.Dynamo.PutItemIfAbsent(ctx, cs.Table, compliment, "complimentId"); err != nil {
		return nil, fmt.Errorf("failed to store compliment: %w", err)
	}

	if err := cs.Users.IncrementSent(ctx, senderFID); err != nil {
		log.Printf("⚠️ %v", err)
	}
	if compliment.ReceiverFID != "" {
		if err := cs.Users.IncrementReceived(ctx, compliment.ReceiverFID); err != nil {
			log.Printf("⚠️ %v", err)
		}
	}

	// The compliment is already persisted; a failed mention is logged
	// and never rolls it back.
	if _, err := cs.Caster.PublishCast(ctx, receiver); err != nil {
		log.Printf("⚠️ Failed to publish cast for %s: %v", receiver, err)
	}

	return &compliment, nil
}

// ListSent returns the caller's sent compliments, newest first.
func (cs *ComplimentService) ListSent(ctx context.Context, username string) ([]models.Compliment, error) {
	items, err := cs.Dynamo.QueryItemsWithIndex(ctx, cs.Table, models.SenderIndex,
		"sender = :u",
		map[string]types.AttributeValue{
			":u": &types.AttributeValueMemberS{Value: username},
		},
		nil,
		true,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list sent compliments: %w", err)
	}

	var compliments []models.Compliment
	if err := attributevalue.UnmarshalListOfMaps(items, &compliments); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sent compliments: %w", err)
	}
	sortNewestFirst(compliments)
	return compliments, nil
}

// ListReceived returns the caller's received compliments, newest first,
// with the unlock gate applied: while locked, an unread compliment's
// body is redacted. Already-read compliments are never locked.
func (cs *ComplimentService) ListReceived(ctx context.Context, fid, username string) ([]models.ReceivedCompliment, UnlockState, error) {
	state, err := cs.GetUnlockState(ctx, fid)
	if err != nil {
		return nil, UnlockState{}, err
	}

	items, err := cs.Dynamo.QueryItemsWithIndex(ctx, cs.Table, models.ReceiverIndex,
		"receiver = :u",
		map[string]types.AttributeValue{
			":u": &types.AttributeValueMemberS{Value: username},
		},
		nil,
		true,
	)
	if err != nil {
		return nil, UnlockState{}, fmt.Errorf("failed to list received compliments: %w", err)
	}

	var compliments []models.Compliment
	if err := attributevalue.UnmarshalListOfMaps(items, &compliments); err != nil {
		return nil, UnlockState{}, fmt.Errorf("failed to unmarshal received compliments: %w", err)
	}
	sortNewestFirst(compliments)

	received := make([]models.ReceivedCompliment, 0, len(compliments))
	for _, c := range compliments {
		// The receiver never learns who sent it.
		c.Sender = ""
		c.SenderFID = ""

		locked := !c.IsRead && !state.Unlocked
		if locked {
			c.Compliment = ""
		}
		received = append(received, models.ReceivedCompliment{Compliment: c, Locked: locked})
	}
	return received, state, nil
}

// GetDailyQuota counts the caller's sends since the start of the
// current day and compares against the cap.
func (cs *ComplimentService) GetDailyQuota(ctx context.Context, fid string) (QuotaStatus, error) {
	start := startOfToday().UTC().Format(time.RFC3339)
	count, err := cs.Dynamo.CountItemsWithIndex(ctx, cs.Table, models.SenderFIDIndex,
		"senderFID = :fid AND createdAt >= :start",
		map[string]types.AttributeValue{
			":fid":   &types.AttributeValueMemberS{Value: fid},
			":start": &types.AttributeValueMemberS{Value: start},
		},
	)
	if err != nil {
		return QuotaStatus{}, fmt.Errorf("failed to count today's compliments: %w", err)
	}

	limit := cs.Users.DailyLimit
	remaining := limit - count
	if remaining < 0 {
		remaining = 0
	}
	return QuotaStatus{Count: count, Limit: limit, Remaining: remaining}, nil
}

// GetUnlockState evaluates the unlock gate: all received compliments
// are viewable once the caller has sent enough in the trailing 24
// hours, or holds a payment entitlement. It is a step function, not a
// per-item unlock.
func (cs *ComplimentService) GetUnlockState(ctx context.Context, fid string) (UnlockState, error) {
	since := time.Now().Add(-24 * time.Hour).UTC().Format(time.RFC3339)
	sent, err := cs.Dynamo.CountItemsWithIndex(ctx, cs.Table, models.SenderFIDIndex,
		"senderFID = :fid AND createdAt > :since",
		map[string]types.AttributeValue{
			":fid":   &types.AttributeValueMemberS{Value: fid},
			":since": &types.AttributeValueMemberS{Value: since},
		},
	)
	if err != nil {
		return UnlockState{}, fmt.Errorf("failed to count recent compliments: %w", err)
	}

	state := UnlockState{SentLast24h: sent, Required: cs.UnlockThreshold}
	if sent >= cs.UnlockThreshold {
		state.Unlocked = true
		return state, nil
	}

	paid, err := cs.Unlocks.HasUnlock(ctx, fid)
	if err != nil {
		return UnlockState{}, err
	}
	state.Unlocked = paid
	return state, nil
}

// MarkRead flips isRead to true, once, and only when the caller is the
// record's receiver. The guard and the write are a single conditional
// update. A rejected guard (wrong receiver, already read, or missing
// record) is logged and treated as a no-op, matching the client's
// fire-and-forget open.
func (cs *ComplimentService) MarkRead(ctx context.Context, complimentID, callerUsername string) error {
	attrs, err := cs.Dynamo.UpdateItemConditional(ctx, cs.Table,
		map[string]types.AttributeValue{
			"complimentId": &types.AttributeValueMemberS{Value: complimentID},
		},
		"SET #read = :yes",
		"#recv = :caller AND #read = :no",
		map[string]string{"#read": "isRead", "#recv": "receiver"},
		map[string]types.AttributeValue{
			":yes":    &types.AttributeValueMemberBOOL{Value: true},
			":no":     &types.AttributeValueMemberBOOL{Value: false},
			":caller": &types.AttributeValueMemberS{Value: callerUsername},
		},
	)
	if err != nil {
		if errors.Is(err, ErrConditionFailed) {
			log.Printf("Skipping markRead for %s: caller %s is not the receiver or already read", complimentID, callerUsername)
			return nil
		}
		return err
	}

	log.Printf("Compliment %s marked read by %s", complimentID, utils.ExtractString(attrs, "receiver"))
	return nil
}

// Rate sets the receiver's 1-5 rating on a compliment. The receiver
// guard is the same conditional update as MarkRead; re-rating
// overwrites the previous value.
func (cs *ComplimentService) Rate(ctx context.Context, complimentID, callerUsername string, rating int) (*models.Compliment, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	attrs, err := cs.Dynamo.UpdateItemConditional(ctx, cs.Table,
		map[string]types.AttributeValue{
			"complimentId": &types.AttributeValueMemberS{Value: complimentID},
		},
		"SET #rating = :r",
		"#recv = :caller",
		map[string]string{"#rating": "rating", "#recv": "receiver"},
		map[string]types.AttributeValue{
			":r":      &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", rating)},
			":caller": &types.AttributeValueMemberS{Value: callerUsername},
		},
	)
	if err != nil {
		if errors.Is(err, ErrConditionFailed) {
			log.Printf("Skipping rating for %s: caller %s is not the receiver", complimentID, callerUsername)
			return nil, nil
		}
		return nil, err
	}

	var updated models.Compliment
	if err := attributevalue.UnmarshalMap(attrs, &updated); err != nil {
		return nil, fmt.Errorf("failed to unmarshal rated compliment: %w", err)
	}
	return &updated, nil
}

// generateComplimentID builds the record key from the send time plus a
// random suffix.
func generateComplimentID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), suffix)
}

func startOfToday() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func sortNewestFirst(compliments []models.Compliment) {
	sort.SliceStable(compliments, func(i, j int) bool {
		return compliments[i].CreatedAt > compliments[j].CreatedAt
	})
}
