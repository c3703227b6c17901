package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v3"

	"kapitalbot/internal/domain"
	"kapitalbot/internal/service"
	"kapitalbot/internal/state"
	"kapitalbot/internal/testutil"
)

const gateAdminID = int64(111)

type gateFixture struct {
	userRepo *testutil.MockUserRepository
	states   *state.Store
	next     tele.HandlerFunc
	called   int
	wrapped  tele.MiddlewareFunc
}

func newGateFixture(t *testing.T) *gateFixture {
	t.Helper()

	userRepo := new(testutil.MockUserRepository)
	states, err := state.NewStore(state.DefaultCapacity)
	require.NoError(t, err)

	f := &gateFixture{
		userRepo: userRepo,
		states:   states,
		wrapped:  AccessGate(service.NewAccessService(userRepo, []int64{gateAdminID}), states, testutil.NewTestLogger()),
	}
	f.next = func(c tele.Context) error {
		f.called++
		return nil
	}
	return f
}

func TestAccessGate_AdminBypasses(t *testing.T) {
	f := newGateFixture(t)

	// No GetStatus expectation: the gate must not hit the directory for
	// an admin at all.
	err := f.wrapped(f.next)(testutil.NewFakeContext(gateAdminID, "/userslist"))

	require.NoError(t, err)
	assert.Equal(t, 1, f.called)
	f.userRepo.AssertNotCalled(t, "GetStatus")
}

func TestAccessGate_ApprovedPasses(t *testing.T) {
	f := newGateFixture(t)
	f.userRepo.On("GetStatus", mock.Anything, int64(777)).
		Return(domain.StatusApproved, true, nil)

	err := f.wrapped(f.next)(testutil.NewFakeContext(777, "hello"))

	require.NoError(t, err)
	assert.Equal(t, 1, f.called)
}

func TestAccessGate_PendingRejectedAndReset(t *testing.T) {
	f := newGateFixture(t)
	f.userRepo.On("GetStatus", mock.Anything, int64(777)).
		Return(domain.StatusPending, true, nil)

	// Any state the actor accumulated before going pending is discarded.
	f.states.Update(777, func(conv *domain.Conversation) {
		conv.Begin()
		conv.SetType(domain.FlowOutflow)
	})

	c := testutil.NewFakeContext(777, "100")
	err := f.wrapped(f.next)(c)

	require.NoError(t, err)
	assert.Zero(t, f.called)
	assert.Equal(t, []string{msgPending}, c.Sent)
	assert.Equal(t, domain.StepNone, f.states.Snapshot(777).Step)
}

func TestAccessGate_PendingCallbackAnswered(t *testing.T) {
	f := newGateFixture(t)
	f.userRepo.On("GetStatus", mock.Anything, int64(777)).
		Return(domain.StatusPending, true, nil)

	c := testutil.NewFakeCallback(777, "Fuel")
	err := f.wrapped(f.next)(c)

	require.NoError(t, err)
	assert.Zero(t, f.called)
	assert.Equal(t, 1, c.Responded, "callback answered, not left spinning")
	assert.Empty(t, c.Sent)
}

func TestAccessGate_DeniedRejected(t *testing.T) {
	f := newGateFixture(t)
	f.userRepo.On("GetStatus", mock.Anything, int64(777)).
		Return(domain.StatusDenied, true, nil)

	c := testutil.NewFakeContext(777, "hello")
	err := f.wrapped(f.next)(c)

	require.NoError(t, err)
	assert.Zero(t, f.called)
	assert.Equal(t, []string{msgDenied}, c.Sent)
}

func TestAccessGate_Unregistered(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		step       domain.Step
		wantPassed bool
	}{
		{
			name:       "start command passes",
			text:       "/start",
			wantPassed: true,
		},
		{
			name:       "mid registration name step passes",
			text:       "Alisher",
			step:       domain.StepRegisterName,
			wantPassed: true,
		},
		{
			name:       "mid registration phone step passes",
			text:       "anything",
			step:       domain.StepRegisterPhone,
			wantPassed: true,
		},
		{
			name:       "anything else is rejected",
			text:       "hello",
			wantPassed: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newGateFixture(t)
			f.userRepo.On("GetStatus", mock.Anything, int64(777)).
				Return(domain.Status(""), false, nil)

			if tt.step != domain.StepNone {
				f.states.Update(777, func(conv *domain.Conversation) {
					conv.Step = tt.step
				})
			}

			c := testutil.NewFakeContext(777, tt.text)
			err := f.wrapped(f.next)(c)

			require.NoError(t, err)
			if tt.wantPassed {
				assert.Equal(t, 1, f.called)
				assert.Empty(t, c.Sent)
			} else {
				assert.Zero(t, f.called)
				assert.Equal(t, []string{msgPressStart}, c.Sent)
			}
		})
	}
}

func TestAccessGate_DirectoryErrorRejects(t *testing.T) {
	f := newGateFixture(t)
	f.userRepo.On("GetStatus", mock.Anything, int64(777)).
		Return(domain.Status(""), false, assert.AnError)

	c := testutil.NewFakeContext(777, "hello")
	err := f.wrapped(f.next)(c)

	require.NoError(t, err)
	assert.Zero(t, f.called)
	assert.Equal(t, []string{msgInternalErr}, c.Sent)
}
