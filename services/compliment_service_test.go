package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glow_server/models"
)

type fakeCaster struct {
	recipients []string
	err        error
}

func (f *fakeCaster) PublishCast(ctx context.Context, recipient string) (*models.CastResponse, error) {
	f.recipients = append(f.recipients, recipient)
	if f.err != nil {
		return nil, f.err
	}
	return &models.CastResponse{Success: true, Hash: "0xabc"}, nil
}

func newComplimentService(fake *fakeDynamo, caster *fakeCaster) *ComplimentService {
	dynamo := &DynamoService{Client: fake}
	return &ComplimentService{
		Dynamo:          dynamo,
		Users:           &UserProfileService{Dynamo: dynamo, Table: "Users", DailyLimit: 10},
		Unlocks:         &UnlockService{Dynamo: dynamo, Table: "Unlocks"},
		Caster:          caster,
		Table:           "Compliments",
		UnlockThreshold: 2,
	}
}

func marshalCompliment(t *testing.T, c models.Compliment) map[string]types.AttributeValue {
	t.Helper()
	item, err := attributevalue.MarshalMap(c)
	require.NoError(t, err)
	return item
}

func TestSendRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		input   SendInput
		wantErr error
	}{
		{
			name:    "missing receiver",
			input:   SendInput{Compliment: "You're awesome!"},
			wantErr: ErrMissingFields,
		},
		{
			name:    "missing compliment",
			input:   SendInput{Receiver: "bob"},
			wantErr: ErrMissingFields,
		},
		{
			name:    "whitespace only compliment",
			input:   SendInput{Receiver: "bob", Compliment: "   "},
			wantErr: ErrMissingFields,
		},
		{
			name:    "too long",
			input:   SendInput{Receiver: "bob", Compliment: strings.Repeat("a", 151)},
			wantErr: ErrComplimentTooLong,
		},
		{
			name:    "self send",
			input:   SendInput{Receiver: "alice", Compliment: "You're awesome!"},
			wantErr: ErrSelfCompliment,
		},
		{
			name:    "self send different case",
			input:   SendInput{Receiver: "Alice", Compliment: "You're awesome!"},
			wantErr: ErrSelfCompliment,
		},
		{
			name:    "profanity",
			input:   SendInput{Receiver: "bob", Compliment: "you are such a LOSER"},
			wantErr: ErrProfanity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeDynamo{}
			cs := newComplimentService(fake, &fakeCaster{})

			_, err := cs.Send(context.Background(), "1", "alice", tt.input)

			assert.ErrorIs(t, err, tt.wantErr)
			// Validation failures must never reach the store.
			assert.Empty(t, fake.putInputs)
			assert.Empty(t, fake.updateInputs)
		})
	}
}

func TestSendRejectsWhenQuotaExhausted(t *testing.T) {
	fake := &fakeDynamo{
		// Both quota branches fail: counter is on today and at cap.
		updateErrs: []error{condFailedErr(), condFailedErr()},
	}
	caster := &fakeCaster{}
	cs := newComplimentService(fake, caster)

	_, err := cs.Send(context.Background(), "1", "alice", SendInput{Receiver: "bob", Compliment: "You're awesome!"})

	assert.ErrorIs(t, err, ErrDailyLimitReached)
	assert.Empty(t, fake.putInputs)
	assert.Empty(t, caster.recipients)
}

func TestSendSucceedsUnderQuota(t *testing.T) {
	fake := &fakeDynamo{
		updateAttrs: []map[string]types.AttributeValue{
			{"dailyCount": &types.AttributeValueMemberN{Value: "9"}},
		},
	}
	caster := &fakeCaster{}
	cs := newComplimentService(fake, caster)

	compliment, err := cs.Send(context.Background(), "1", "alice", SendInput{
		Receiver:    "Bob",
		ReceiverFID: "2",
		Compliment:  "  You're awesome!  ",
	})
	require.NoError(t, err)

	assert.Equal(t, "bob", compliment.Receiver)
	assert.Equal(t, "alice", compliment.Sender)
	assert.Equal(t, "1", compliment.SenderFID)
	assert.Equal(t, "2", compliment.ReceiverFID)
	assert.Equal(t, "You're awesome!", compliment.Compliment)
	assert.False(t, compliment.IsRead)
	assert.Nil(t, compliment.Rating)
	assert.Contains(t, compliment.ComplimentID, "-")
	_, err = time.Parse(time.RFC3339, compliment.CreatedAt)
	assert.NoError(t, err)

	// One conditional put into the compliments table.
	require.Len(t, fake.putInputs, 1)
	put := fake.putInputs[0]
	assert.Equal(t, "Compliments", *put.TableName)
	assert.Equal(t, "attribute_not_exists(#pk)", *put.ConditionExpression)

	// Quota consume plus the two lifetime counters.
	require.Len(t, fake.updateInputs, 3)
	assert.Equal(t, "Users", *fake.updateInputs[0].TableName)
	assert.Contains(t, *fake.updateInputs[0].ConditionExpression, "dailyCount < :cap")

	// The public mention fires after the write.
	assert.Equal(t, []string{"bob"}, caster.recipients)
}

func TestSendRollsQuotaCounterOverToNewDay(t *testing.T) {
	fake := &fakeDynamo{
		// First branch fails (counter on a previous day), second succeeds.
		updateErrs: []error{condFailedErr(), nil},
	}
	cs := newComplimentService(fake, &fakeCaster{})

	_, err := cs.Send(context.Background(), "1", "alice", SendInput{Receiver: "bob", Compliment: "You're awesome!"})
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(fake.updateInputs), 2)
	assert.Contains(t, *fake.updateInputs[1].ConditionExpression, "attribute_not_exists(dailyDate)")
	require.Len(t, fake.putInputs, 1)
}

func TestSendSurvivesCastFailure(t *testing.T) {
	fake := &fakeDynamo{}
	caster := &fakeCaster{err: assert.AnError}
	cs := newComplimentService(fake, caster)

	compliment, err := cs.Send(context.Background(), "1", "alice", SendInput{Receiver: "bob", Compliment: "You're awesome!"})

	// The stored compliment is never rolled back on a failed mention.
	require.NoError(t, err)
	assert.NotNil(t, compliment)
	assert.Len(t, fake.putInputs, 1)
}

func TestMarkReadIsNoOpForNonReceiver(t *testing.T) {
	fake := &fakeDynamo{
		updateErrs: []error{condFailedErr()},
	}
	cs := newComplimentService(fake, &fakeCaster{})

	err := cs.MarkRead(context.Background(), "123-abc", "mallory")

	require.NoError(t, err)
	require.Len(t, fake.updateInputs, 1)
	update := fake.updateInputs[0]
	assert.Equal(t, "Compliments", *update.TableName)
	assert.Contains(t, *update.ConditionExpression, "#recv = :caller")
	assert.Contains(t, *update.ConditionExpression, "#read = :no")
}

func TestMarkReadByReceiver(t *testing.T) {
	fake := &fakeDynamo{
		updateAttrs: []map[string]types.AttributeValue{
			{
				"receiver": &types.AttributeValueMemberS{Value: "bob"},
				"isRead":   &types.AttributeValueMemberBOOL{Value: true},
			},
		},
	}
	cs := newComplimentService(fake, &fakeCaster{})

	err := cs.MarkRead(context.Background(), "123-abc", "bob")

	require.NoError(t, err)
	require.Len(t, fake.updateInputs, 1)
	assert.Equal(t, "SET #read = :yes", *fake.updateInputs[0].UpdateExpression)
}

func TestRateRejectsOutOfRangeValues(t *testing.T) {
	for _, rating := range []int{-1, 0, 6, 100} {
		fake := &fakeDynamo{}
		cs := newComplimentService(fake, &fakeCaster{})

		_, err := cs.Rate(context.Background(), "123-abc", "bob", rating)

		assert.ErrorIs(t, err, ErrInvalidRating)
		assert.Empty(t, fake.updateInputs)
	}
}

func TestRateByReceiver(t *testing.T) {
	rated := models.Compliment{
		ComplimentID: "123-abc",
		Receiver:     "bob",
		Compliment:   "You're awesome!",
		IsRead:       true,
	}
	five := 5
	rated.Rating = &five

	fake := &fakeDynamo{
		updateAttrs: []map[string]types.AttributeValue{marshalCompliment(t, rated)},
	}
	cs := newComplimentService(fake, &fakeCaster{})

	updated, err := cs.Rate(context.Background(), "123-abc", "bob", 5)

	require.NoError(t, err)
	require.NotNil(t, updated)
	require.NotNil(t, updated.Rating)
	assert.Equal(t, 5, *updated.Rating)
	require.Len(t, fake.updateInputs, 1)
	assert.Contains(t, *fake.updateInputs[0].ConditionExpression, "#recv = :caller")
}

func TestRateIsNoOpForNonReceiver(t *testing.T) {
	fake := &fakeDynamo{
		updateErrs: []error{condFailedErr()},
	}
	cs := newComplimentService(fake, &fakeCaster{})

	updated, err := cs.Rate(context.Background(), "123-abc", "mallory", 3)

	require.NoError(t, err)
	assert.Nil(t, updated)
}

func TestGetDailyQuota(t *testing.T) {
	fake := &fakeDynamo{
		queryOutputs: []*dynamodb.QueryOutput{{Count: 3}},
	}
	cs := newComplimentService(fake, &fakeCaster{})

	quota, err := cs.GetDailyQuota(context.Background(), "1")

	require.NoError(t, err)
	assert.Equal(t, QuotaStatus{Count: 3, Limit: 10, Remaining: 7}, quota)
	require.Len(t, fake.queryInputs, 1)
	assert.Equal(t, models.SenderFIDIndex, *fake.queryInputs[0].IndexName)
	assert.Equal(t, types.SelectCount, fake.queryInputs[0].Select)
}

func TestUnlockGateStepFunction(t *testing.T) {
	tests := []struct {
		name         string
		sentLast24h  int32
		hasPaid      bool
		wantUnlocked bool
	}{
		{name: "zero sends locked", sentLast24h: 0, wantUnlocked: false},
		{name: "one send locked", sentLast24h: 1, wantUnlocked: false},
		{name: "two sends unlocked", sentLast24h: 2, wantUnlocked: true},
		{name: "many sends unlocked", sentLast24h: 7, wantUnlocked: true},
		{name: "paid unlock overrides", sentLast24h: 0, hasPaid: true, wantUnlocked: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeDynamo{
				queryOutputs: []*dynamodb.QueryOutput{{Count: tt.sentLast24h}},
			}
			if tt.hasPaid {
				unlockItem, err := attributevalue.MarshalMap(models.Unlock{FID: "1", PaymentID: "pay-1"})
				require.NoError(t, err)
				fake.getOutputs = []*dynamodb.GetItemOutput{{Item: unlockItem}}
			}
			cs := newComplimentService(fake, &fakeCaster{})

			state, err := cs.GetUnlockState(context.Background(), "1")

			require.NoError(t, err)
			assert.Equal(t, tt.wantUnlocked, state.Unlocked)
			assert.Equal(t, int(tt.sentLast24h), state.SentLast24h)
			assert.Equal(t, 2, state.Required)
		})
	}
}

func TestListReceivedLocksUnreadWhileGateClosed(t *testing.T) {
	unread := models.Compliment{
		ComplimentID: "2-b",
		Sender:       "alice",
		SenderFID:    "1",
		Receiver:     "bob",
		Compliment:   "Secret praise",
		CreatedAt:    "2026-08-28T10:00:00Z",
	}
	read := models.Compliment{
		ComplimentID: "1-a",
		Sender:       "carol",
		SenderFID:    "3",
		Receiver:     "bob",
		Compliment:   "Older praise",
		CreatedAt:    "2026-08-27T10:00:00Z",
		IsRead:       true,
	}

	fake := &fakeDynamo{
		queryOutputs: []*dynamodb.QueryOutput{
			{Count: 0}, // no sends in the trailing 24h
			{Items: []map[string]types.AttributeValue{marshalCompliment(t, read), marshalCompliment(t, unread)}},
		},
	}
	cs := newComplimentService(fake, &fakeCaster{})

	received, state, err := cs.ListReceived(context.Background(), "2", "bob")

	require.NoError(t, err)
	assert.False(t, state.Unlocked)
	require.Len(t, received, 2)

	// Newest first.
	assert.Equal(t, "2-b", received[0].ComplimentID)
	assert.True(t, received[0].Locked)
	assert.Empty(t, received[0].Compliment.Compliment)

	// Already-read compliments are never locked.
	assert.Equal(t, "1-a", received[1].ComplimentID)
	assert.False(t, received[1].Locked)
	assert.Equal(t, "Older praise", received[1].Compliment.Compliment)

	// The receiver never learns the sender.
	for _, rc := range received {
		assert.Empty(t, rc.Sender)
		assert.Empty(t, rc.SenderFID)
	}
}

func TestListReceivedRevealsAllWhenGateOpen(t *testing.T) {
	unread := models.Compliment{
		ComplimentID: "2-b",
		Receiver:     "bob",
		Compliment:   "Secret praise",
		CreatedAt:    "2026-08-28T10:00:00Z",
	}

	fake := &fakeDynamo{
		queryOutputs: []*dynamodb.QueryOutput{
			{Count: 2},
			{Items: []map[string]types.AttributeValue{marshalCompliment(t, unread)}},
		},
	}
	cs := newComplimentService(fake, &fakeCaster{})

	received, state, err := cs.ListReceived(context.Background(), "2", "bob")

	require.NoError(t, err)
	assert.True(t, state.Unlocked)
	require.Len(t, received, 1)
	assert.False(t, received[0].Locked)
	assert.Equal(t, "Secret praise", received[0].Compliment.Compliment)
}

func TestListSentSortsNewestFirst(t *testing.T) {
	older := models.Compliment{ComplimentID: "1-a", Sender: "alice", Receiver: "bob", CreatedAt: "2026-08-27T10:00:00Z"}
	newer := models.Compliment{ComplimentID: "2-b", Sender: "alice", Receiver: "carol", CreatedAt: "2026-08-28T10:00:00Z"}

	fake := &fakeDynamo{
		queryOutputs: []*dynamodb.QueryOutput{
			{Items: []map[string]types.AttributeValue{marshalCompliment(t, older), marshalCompliment(t, newer)}},
		},
	}
	cs := newComplimentService(fake, &fakeCaster{})

	sent, err := cs.ListSent(context.Background(), "alice")

	require.NoError(t, err)
	require.Len(t, sent, 2)
	assert.Equal(t, "2-b", sent[0].ComplimentID)
	assert.Equal(t, "1-a", sent[1].ComplimentID)
	require.Len(t, fake.queryInputs, 1)
	assert.Equal(t, models.SenderIndex, *fake.queryInputs[0].IndexName)
}

// TestSendReadRateScenario walks the full workflow: alice sends to bob,
// bob opens it, bob rates it 5, and both lists reflect the result.
func TestSendReadRateScenario(t *testing.T) {
	fake := &fakeDynamo{}
	caster := &fakeCaster{}
	cs := newComplimentService(fake, caster)

	sent, err := cs.Send(context.Background(), "1", "alice", SendInput{
		Receiver:    "bob",
		ReceiverFID: "2",
		Compliment:  "You're awesome!",
	})
	require.NoError(t, err)
	assert.False(t, sent.IsRead)
	assert.Equal(t, []string{"bob"}, caster.recipients)

	// Bob opens it.
	fake.updateErrs = nil
	fake.updateAttrs = []map[string]types.AttributeValue{
		{
			"receiver": &types.AttributeValueMemberS{Value: "bob"},
			"isRead":   &types.AttributeValueMemberBOOL{Value: true},
		},
	}
	require.NoError(t, cs.MarkRead(context.Background(), sent.ComplimentID, "bob"))

	// Bob rates it 5.
	rated := *sent
	rated.IsRead = true
	five := 5
	rated.Rating = &five
	fake.updateAttrs = []map[string]types.AttributeValue{marshalCompliment(t, rated)}

	updated, err := cs.Rate(context.Background(), sent.ComplimentID, "bob", 5)
	require.NoError(t, err)
	require.NotNil(t, updated.Rating)
	assert.Equal(t, 5, *updated.Rating)

	// Alice's sent list shows the entry dated today.
	fake.queryOutputs = []*dynamodb.QueryOutput{
		{Items: []map[string]types.AttributeValue{marshalCompliment(t, rated)}},
	}
	sentList, err := cs.ListSent(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, sentList, 1)
	createdAt, err := time.Parse(time.RFC3339, sentList[0].CreatedAt)
	require.NoError(t, err)
	assert.Equal(t, time.Now().UTC().Format("2006-01-02"), createdAt.Format("2006-01-02"))

	// Bob's received list shows the rating; read items are never locked.
	fake.queryOutputs = []*dynamodb.QueryOutput{
		{Count: 0},
		{Items: []map[string]types.AttributeValue{marshalCompliment(t, rated)}},
	}
	receivedList, _, err := cs.ListReceived(context.Background(), "2", "bob")
	require.NoError(t, err)
	require.Len(t, receivedList, 1)
	assert.False(t, receivedList[0].Locked)
	require.NotNil(t, receivedList[0].Rating)
	assert.Equal(t, 5, *receivedList[0].Rating)
}
