package handler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v3"

	"kapitalbot/internal/domain"
	"kapitalbot/internal/service"
	"kapitalbot/internal/state"
	"kapitalbot/internal/testutil"
)

var testAdminIDs = []int64{111, 222}

type handlerFixture struct {
	handler  *Handler
	userRepo *testutil.MockUserRepository
	catRepo  *testutil.MockCatalogRepository
	sink     *testutil.MockRecordSink
	sender   *testutil.FakeSender
	states   *state.Store
}

func newFixture(t *testing.T) *handlerFixture {
	t.Helper()

	userRepo := new(testutil.MockUserRepository)
	catRepo := new(testutil.MockCatalogRepository)
	recordSink := new(testutil.MockRecordSink)
	sender := testutil.NewFakeSender()

	states, err := state.NewStore(state.DefaultCapacity)
	require.NoError(t, err)

	h := &Handler{
		sender:  sender,
		access:  service.NewAccessService(userRepo, testAdminIDs),
		catalog: service.NewCatalogService(catRepo),
		entry:   service.NewEntryService(recordSink, time.Second),
		states:  states,
		logger:  testutil.NewTestLogger(),
	}

	return &handlerFixture{
		handler:  h,
		userRepo: userRepo,
		catRepo:  catRepo,
		sink:     recordSink,
		sender:   sender,
		states:   states,
	}
}

// walkToConfirmation drives an approved actor through every form step up
// to the confirmation screen.
func (f *handlerFixture) walkToConfirmation(t *testing.T, userID int64) {
	t.Helper()

	f.userRepo.On("GetStatus", mock.Anything, userID).Return(domain.StatusApproved, true, nil)
	f.catRepo.On("ListCategories", mock.Anything).
		Return([]domain.CatalogItem{{ID: 1, Name: "Fuel"}}, nil)
	f.catRepo.On("ListPayTypes", mock.Anything).
		Return([]domain.CatalogItem{{ID: 1, Name: "Bank"}}, nil)

	require.NoError(t, f.handler.handleStart(testutil.NewFakeContext(userID, "/start")))
	require.NoError(t, f.handler.handleTypeSelect(testutil.NewFakeCallback(userID, ""), domain.FlowOutflow))
	require.NoError(t, f.handler.handleCategorySelect(testutil.NewFakeCallback(userID, "Fuel")))
	require.NoError(t, f.handler.handleOtherProject(testutil.NewFakeCallback(userID, "")))
	require.NoError(t, f.handler.handleText(testutil.NewFakeContext(userID, "Site7")))
	require.NoError(t, f.handler.handleCurrencySelect(testutil.NewFakeCallback(userID, ""), domain.CurrencyDollar))
	require.NoError(t, f.handler.handleText(testutil.NewFakeContext(userID, "250")))
	require.NoError(t, f.handler.handlePayTypeSelect(testutil.NewFakeCallback(userID, "Bank")))
	require.NoError(t, f.handler.handleSkipComment(testutil.NewFakeCallback(userID, "")))

	require.Equal(t, domain.StepConfirm, f.states.Snapshot(userID).Step)
}

func TestFullHappyPath(t *testing.T) {
	f := newFixture(t)
	userID := int64(777)

	f.walkToConfirmation(t, userID)

	f.userRepo.On("GetName", mock.Anything, userID).Return("Alisher", nil)
	f.sink.On("Append", mock.Anything, mock.MatchedBy(func(rec domain.Record) bool {
		return rec.Type == domain.FlowOutflow &&
			rec.Category == "Fuel" &&
			rec.Project == "Site7" &&
			rec.Currency == domain.CurrencyDollar &&
			rec.Amount == "250" &&
			rec.PayType == "Bank" &&
			rec.Comment == domain.CommentPlaceholder
	}), "Alisher").Return(nil)

	c := testutil.NewFakeCallback(userID, "")
	require.NoError(t, f.handler.handleConfirm(c))

	f.sink.AssertNumberOfCalls(t, "Append", 1)

	// Every configured admin got the summary with the actor's resolved
	// display name.
	for _, adminID := range []string{"111", "222"} {
		msgs := f.sender.Messages[adminID]
		require.Len(t, msgs, 1)
		assert.Contains(t, msgs[0], "Alisher")
		assert.Contains(t, msgs[0], "250")
	}

	// The flow restarts immediately for the next entry.
	assert.Equal(t, domain.StepType, f.states.Snapshot(userID).Step)
	assert.Contains(t, c.Sent, msgRecorded)
}

func TestCancellation(t *testing.T) {
	f := newFixture(t)
	userID := int64(777)

	f.walkToConfirmation(t, userID)

	c := testutil.NewFakeCallback(userID, "")
	require.NoError(t, f.handler.handleCancelEntry(c))

	f.sink.AssertNotCalled(t, "Append")
	assert.Empty(t, f.sender.Messages, "no admin notifications on cancel")
	assert.Equal(t, domain.StepType, f.states.Snapshot(userID).Step)
	assert.Contains(t, c.Sent, msgCancelled)
}

func TestSinkFailureSurfacedAndStateCleared(t *testing.T) {
	f := newFixture(t)
	userID := int64(777)

	f.walkToConfirmation(t, userID)

	f.userRepo.On("GetName", mock.Anything, userID).Return("Alisher", nil)
	f.sink.On("Append", mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

	c := testutil.NewFakeCallback(userID, "")
	require.NoError(t, f.handler.handleConfirm(c))

	// The failure is surfaced to the actor, no admin fan-out happens,
	// and the conversation still restarts.
	require.NotEmpty(t, c.Sent)
	assert.Contains(t, c.Sent[0], "⚠️")
	assert.Empty(t, f.sender.Messages)
	assert.Equal(t, domain.StepType, f.states.Snapshot(userID).Step)
}

func TestInvalidAmountLeavesStepUnchanged(t *testing.T) {
	f := newFixture(t)
	userID := int64(777)

	f.userRepo.On("GetStatus", mock.Anything, userID).Return(domain.StatusApproved, true, nil)
	f.catRepo.On("ListCategories", mock.Anything).
		Return([]domain.CatalogItem{{ID: 1, Name: "Fuel"}}, nil)

	require.NoError(t, f.handler.handleStart(testutil.NewFakeContext(userID, "/start")))
	require.NoError(t, f.handler.handleTypeSelect(testutil.NewFakeCallback(userID, ""), domain.FlowOutflow))
	require.NoError(t, f.handler.handleCategorySelect(testutil.NewFakeCallback(userID, "Fuel")))
	require.NoError(t, f.handler.handleProjectSelect(testutil.NewFakeCallback(userID, "Bodomzor")))
	require.NoError(t, f.handler.handleCurrencySelect(testutil.NewFakeCallback(userID, ""), domain.CurrencySum))

	for _, bad := range []string{"abc", "-5", "1.2.3"} {
		c := testutil.NewFakeContext(userID, bad)
		require.NoError(t, f.handler.handleText(c))
		assert.Empty(t, c.Sent, "invalid amount gets no reply")
		assert.Equal(t, domain.StepAmount, f.states.Snapshot(userID).Step)
	}
}

// A category deleted after its keyboard was rendered can still be
// selected; the stale name is recorded verbatim. Accepted behavior, not
// a defect: selections are taken at face value without re-validation.
func TestStaleCategorySelectionAccepted(t *testing.T) {
	f := newFixture(t)
	userID := int64(777)

	f.userRepo.On("GetStatus", mock.Anything, userID).Return(domain.StatusApproved, true, nil)
	f.catRepo.On("ListCategories", mock.Anything).
		Return([]domain.CatalogItem{{ID: 1, Name: "Fuel"}}, nil)

	require.NoError(t, f.handler.handleStart(testutil.NewFakeContext(userID, "/start")))
	require.NoError(t, f.handler.handleTypeSelect(testutil.NewFakeCallback(userID, ""), domain.FlowOutflow))

	// "Fuel" was deleted between render and click; the selection still
	// lands in the draft.
	require.NoError(t, f.handler.handleCategorySelect(testutil.NewFakeCallback(userID, "Fuel")))

	conv := f.states.Snapshot(userID)
	assert.Equal(t, "Fuel", conv.Draft.Category)
	assert.Equal(t, domain.StepProject, conv.Step)
}

func TestOutOfOrderCallbackIgnored(t *testing.T) {
	f := newFixture(t)
	userID := int64(777)

	f.userRepo.On("GetStatus", mock.Anything, userID).Return(domain.StatusApproved, true, nil)

	require.NoError(t, f.handler.handleStart(testutil.NewFakeContext(userID, "/start")))

	// Waiting for a type choice; a pay-type callback must not move
	// anything.
	c := testutil.NewFakeCallback(userID, "Bank")
	require.NoError(t, f.handler.handlePayTypeSelect(c))

	conv := f.states.Snapshot(userID)
	assert.Equal(t, domain.StepType, conv.Step)
	assert.Empty(t, conv.Draft.PayType)
	assert.Equal(t, 1, c.Responded, "callback still acknowledged")
}

func TestRegistrationFlow(t *testing.T) {
	f := newFixture(t)
	userID := int64(555)

	f.userRepo.On("GetStatus", mock.Anything, userID).Return(domain.Status(""), false, nil)
	f.userRepo.On("Register", mock.Anything, userID, "Alisher", "+998901234567").Return(nil)

	require.NoError(t, f.handler.handleStart(testutil.NewFakeContext(userID, "/start")))
	assert.Equal(t, domain.StepRegisterName, f.states.Snapshot(userID).Step)

	// Empty name silently re-prompts.
	c := testutil.NewFakeContext(userID, "   ")
	require.NoError(t, f.handler.handleText(c))
	assert.Equal(t, domain.StepRegisterName, f.states.Snapshot(userID).Step)
	assert.Contains(t, c.Sent, msgAskName)

	require.NoError(t, f.handler.handleText(testutil.NewFakeContext(userID, "Alisher")))
	assert.Equal(t, domain.StepRegisterPhone, f.states.Snapshot(userID).Step)

	contactCtx := testutil.NewFakeContext(userID, "")
	contactCtx.Msg.Contact = &tele.Contact{UserID: userID, PhoneNumber: "+998901234567"}
	require.NoError(t, f.handler.handleContact(contactCtx))

	f.userRepo.AssertCalled(t, "Register", mock.Anything, userID, "Alisher", "+998901234567")

	// Every admin got the approve/deny notification.
	for _, adminID := range []string{"111", "222"} {
		msgs := f.sender.Messages[adminID]
		require.Len(t, msgs, 1)
		assert.Contains(t, msgs[0], "Alisher")
		assert.Contains(t, msgs[0], "+998901234567")
	}

	assert.Equal(t, domain.StepNone, f.states.Snapshot(userID).Step)
}
