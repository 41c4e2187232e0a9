package application

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intersify/internal/common"
)

// allowedPairs is the complete set of legal edges. Everything else must be
// denied.
var allowedPairs = map[Status][]Status{
	StatusApplied:            {StatusShortlisted, StatusAccepted, StatusRejected, StatusWithdrawn},
	StatusShortlisted:        {StatusInterviewScheduled, StatusAccepted, StatusRejected, StatusWithdrawn},
	StatusInterviewScheduled: {StatusInterviewCompleted, StatusAccepted, StatusRejected, StatusWithdrawn},
	StatusInterviewCompleted: {StatusOfferMade, StatusAccepted, StatusRejected, StatusWithdrawn},
	StatusOfferMade:          {StatusAccepted, StatusRejected, StatusWithdrawn},
	StatusAccepted:           {StatusCompleted, StatusRejected, StatusWithdrawn},
	StatusRejected:           {StatusShortlisted, StatusInterviewScheduled, StatusInterviewCompleted, StatusOfferMade, StatusAccepted, StatusCompleted, StatusRejected, StatusWithdrawn},
	StatusWithdrawn:          {StatusShortlisted, StatusInterviewScheduled, StatusInterviewCompleted, StatusOfferMade, StatusAccepted, StatusCompleted, StatusRejected, StatusWithdrawn},
	StatusCompleted:          {},
}

func isAllowed(from, to Status) bool {
	for _, allowed := range allowedPairs[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func TestValidateTransitionFullGraph(t *testing.T) {
	for _, from := range AllStatuses {
		for _, to := range AllStatuses {
			err := ValidateTransition(from, to)
			if isAllowed(from, to) {
				assert.NoError(t, err, "%s -> %s should be allowed", from, to)
			} else {
				require.Error(t, err, "%s -> %s should be denied", from, to)
				assert.True(t, common.Is(err, common.CodeInvalidTransition), "%s -> %s should be an invalid transition", from, to)
				assert.Contains(t, err.Error(), string(from), "denial must name the current state")
				assert.Contains(t, err.Error(), string(to), "denial must name the requested state")
			}
		}
	}
}

func TestRejectedAndWithdrawnReachableFromEveryNonTerminalState(t *testing.T) {
	for _, from := range AllStatuses {
		if from == StatusCompleted {
			continue
		}
		assert.NoError(t, ValidateTransition(from, StatusRejected), "from %s", from)
		assert.NoError(t, ValidateTransition(from, StatusWithdrawn), "from %s", from)
	}
}

func TestCompletedIsTerminal(t *testing.T) {
	require.True(t, IsTerminal(StatusCompleted))
	for _, to := range AllStatuses {
		err := ValidateTransition(StatusCompleted, to)
		require.Error(t, err, "COMPLETED -> %s must be denied", to)
	}
	for _, status := range AllStatuses {
		if status != StatusCompleted {
			assert.False(t, IsTerminal(status), "%s is not terminal", status)
		}
	}
}

func TestReactivationCannotReturnToApplied(t *testing.T) {
	for _, from := range []Status{StatusRejected, StatusWithdrawn} {
		err := ValidateTransition(from, StatusApplied)
		require.Error(t, err)
		assert.True(t, common.Is(err, common.CodeInvalidTransition))
	}
}

func TestDenialMessageFormat(t *testing.T) {
	err := ValidateTransition(StatusInterviewScheduled, StatusOfferMade)
	require.Error(t, err)
	assert.Equal(t,
		fmt.Sprintf("invalid transition from %s to %s", StatusInterviewScheduled, StatusOfferMade),
		err.Error())
}

func TestParseStatus(t *testing.T) {
	cases := []struct {
		in      string
		want    Status
		wantErr bool
	}{
		{"APPLIED", StatusApplied, false},
		{"shortlisted", StatusShortlisted, false},
		{"  interview_scheduled  ", StatusInterviewScheduled, false},
		{"Offer_Made", StatusOfferMade, false},
		{"completed", StatusCompleted, false},
		{"", "", true},
		{"bogus", "", true},
		{"IN_REVIEW", "", true},
	}
	for _, tc := range cases {
		got, err := ParseStatus(tc.in)
		if tc.wantErr {
			require.Error(t, err, "input %q", tc.in)
			assert.True(t, common.Is(err, common.CodeValidation), "input %q", tc.in)
			continue
		}
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}
