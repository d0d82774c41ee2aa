package token

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGenerator(window time.Duration, at time.Time) *Generator {
	g := NewGenerator("test-secret", window)
	g.now = func() time.Time { return at }
	return g
}

func TestIssue_DeterministicWithinWindow(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	snapshot := AccountSnapshot{ID: uuid.New(), Active: false}

	g1 := newTestGenerator(time.Hour, base)
	g2 := newTestGenerator(time.Hour, base.Add(10*time.Minute))

	code := g1.Issue(snapshot)
	require.Len(t, code, codeLength)
	assert.Equal(t, code, g2.Issue(snapshot), "same state and window must yield the same code")
}

func TestIssue_DiffersPerAccount(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	g := newTestGenerator(time.Hour, base)

	a := g.Issue(AccountSnapshot{ID: uuid.New(), Active: false})
	b := g.Issue(AccountSnapshot{ID: uuid.New(), Active: false})
	assert.NotEqual(t, a, b)
}

func TestVerify_RoundTrip(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	g := newTestGenerator(time.Hour, base)
	snapshot := AccountSnapshot{ID: uuid.New(), Active: false}

	code := g.Issue(snapshot)
	assert.True(t, g.Verify(snapshot, code))
}

func TestVerify_RejectsAfterActivation(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	g := newTestGenerator(time.Hour, base)
	id := uuid.New()

	code := g.Issue(AccountSnapshot{ID: id, Active: false})

	// Activation changes the state the code was derived from.
	assert.False(t, g.Verify(AccountSnapshot{ID: id, Active: true}, code))
}

func TestVerify_RejectsOtherAccount(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	g := newTestGenerator(time.Hour, base)

	code := g.Issue(AccountSnapshot{ID: uuid.New(), Active: false})
	assert.False(t, g.Verify(AccountSnapshot{ID: uuid.New(), Active: false}, code))
}

func TestVerify_PreviousWindowGrace(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	snapshot := AccountSnapshot{ID: uuid.New(), Active: false}

	code := newTestGenerator(time.Hour, base).Issue(snapshot)

	// One window later the code still verifies...
	assert.True(t, newTestGenerator(time.Hour, base.Add(time.Hour)).Verify(snapshot, code))

	// ...two windows later it has expired.
	assert.False(t, newTestGenerator(time.Hour, base.Add(2*time.Hour)).Verify(snapshot, code))
}

func TestVerify_RejectsMalformedCode(t *testing.T) {
	t.Parallel()

	g := newTestGenerator(time.Hour, time.Now())
	snapshot := AccountSnapshot{ID: uuid.New(), Active: false}

	assert.False(t, g.Verify(snapshot, ""))
	assert.False(t, g.Verify(snapshot, "short"))
	assert.False(t, g.Verify(snapshot, g.Issue(snapshot)+"x"))
}
