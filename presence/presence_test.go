package presence

import (
	"errors"
	"testing"
	"time"

	"github.com/hugolgst/rich-go/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	loginErr    error
	activityErr error

	logins     []string
	activities []client.Activity
	logouts    int
}

func (f *fakeClient) Login(appID string) error {
	f.logins = append(f.logins, appID)
	return f.loginErr
}

func (f *fakeClient) SetActivity(activity client.Activity) error {
	if f.activityErr != nil {
		return f.activityErr
	}

	f.activities = append(f.activities, activity)
	return nil
}

func (f *fakeClient) Logout() {
	f.logouts++
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func newTestPresence(appID string) (*Presence, *fakeClient, *fakeClock) {
	fake := &fakeClient{}
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}

	p := NewWithClient(appID, fake)
	p.now = clock.Now

	return p, fake, clock
}

func TestPresenceDisabledWithoutAppID(t *testing.T) {
	for _, appID := range []string{"", "0"} {
		p, fake, _ := newTestPresence(appID)

		require.ErrorIs(t, p.Start("In World", "Exploring"), ErrDisabled)
		assert.False(t, p.Enabled())
		assert.Empty(t, fake.logins)

		// all operations are no-ops
		p.Update("a", "b")
		assert.False(t, p.Tick())
		p.Stop()
		assert.Zero(t, fake.logouts)
	}
}

func TestPresenceStart(t *testing.T) {
	p, fake, clock := newTestPresence("1234")

	require.NoError(t, p.Start("In World", "Playing"))
	assert.True(t, p.Enabled())
	assert.Equal(t, []string{"1234"}, fake.logins)

	require.Len(t, fake.activities, 1)

	activity := fake.activities[0]
	assert.Equal(t, "In World", activity.State)
	assert.Equal(t, "Playing", activity.Details)
	assert.Equal(t, "logo", activity.LargeImage)
	assert.Equal(t, "XyloGame Engine", activity.LargeText)
	require.NotNil(t, activity.Timestamps)
	assert.Equal(t, clock.now, *activity.Timestamps.Start)
}

func TestPresenceLoginFailure(t *testing.T) {
	p, fake, _ := newTestPresence("1234")
	fake.loginErr = errors.New("no discord running")

	err := p.Start("In World", "Playing")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDisabled)
	assert.False(t, p.Enabled())
}

func TestPresenceInitialActivityFailure(t *testing.T) {
	p, fake, _ := newTestPresence("1234")
	fake.activityErr = errors.New("broken pipe")

	require.Error(t, p.Start("In World", "Playing"))
	assert.False(t, p.Enabled())
	assert.Equal(t, 1, fake.logouts)
}

func TestPresenceTickIsRateLimited(t *testing.T) {
	p, fake, clock := newTestPresence("1234")
	require.NoError(t, p.Start("In World", "Plains"))

	// an unchanged activity is never sent
	p.Update("In World", "Plains")
	clock.now = clock.now.Add(time.Minute)
	assert.False(t, p.Tick())

	p.Update("In World", "Forest")
	assert.True(t, p.Tick())
	require.Len(t, fake.activities, 2)
	assert.Equal(t, "Forest", fake.activities[1].Details)

	// the next change has to wait for the interval
	p.Update("In World", "Desert")
	clock.now = clock.now.Add(MinUpdateInterval / 2)
	assert.False(t, p.Tick())

	// only the latest pending change is sent
	p.Update("In World", "Ocean")
	clock.now = clock.now.Add(MinUpdateInterval / 2)
	assert.True(t, p.Tick())
	require.Len(t, fake.activities, 3)
	assert.Equal(t, "Ocean", fake.activities[2].Details)

	assert.False(t, p.Tick())
}

func TestPresenceTickFailureDisables(t *testing.T) {
	p, fake, clock := newTestPresence("1234")
	require.NoError(t, p.Start("In World", "Plains"))

	fake.activityErr = errors.New("discord closed")

	p.Update("In World", "Forest")
	clock.now = clock.now.Add(time.Minute)

	assert.False(t, p.Tick())
	assert.False(t, p.Enabled())
	assert.Equal(t, 1, fake.logouts)
}

func TestPresenceStop(t *testing.T) {
	p, fake, _ := newTestPresence("1234")
	require.NoError(t, p.Start("In World", "Plains"))

	p.Stop()
	p.Stop()

	assert.False(t, p.Enabled())
	assert.Equal(t, 1, fake.logouts)
}
