package verdict

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		v    Verdict
		want Category
	}{
		{"pass", Verdict{Outcome: OutcomePass}, CategoryPass},
		{"fail", Verdict{Outcome: OutcomeFail}, CategoryFail},
		{"review with issue", Verdict{Outcome: OutcomeReview, SubmissionIssue: "別課題のリンクです"}, CategoryReviewWithIssue},
		{"review without issue", Verdict{Outcome: OutcomeReview}, CategoryReviewBlocked},
		{"pass ignores issue", Verdict{Outcome: OutcomePass, SubmissionIssue: "x"}, CategoryPass},
		{"unknown outcome is blocked", Verdict{Outcome: "Maybe"}, CategoryReviewBlocked},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.v))
		})
	}
}

func TestPredicates(t *testing.T) {
	blocked := Verdict{Outcome: OutcomeReview}
	withIssue := Verdict{Outcome: OutcomeReview, SubmissionIssue: "提出ファイルが空です"}
	pass := Verdict{Outcome: OutcomePass}

	assert.True(t, IsReviewState(blocked))
	assert.True(t, IsReviewState(withIssue))
	assert.False(t, IsReviewState(pass))

	assert.False(t, CanCopyToSlack(blocked))
	assert.True(t, CanCopyToSlack(withIssue))
	assert.True(t, CanCopyToSlack(pass))
	assert.True(t, CanCopyToSlack(Verdict{Outcome: OutcomeFail}))
}

func TestAdvisories(t *testing.T) {
	assert.Empty(t, Advisories(Verdict{Outcome: OutcomePass, Improvements: []string{"a"}}))
	assert.Equal(t, []string{"pass verdict carries fail reasons"},
		Advisories(Verdict{Outcome: OutcomePass, FailReasons: []string{"x"}}))
	assert.Equal(t, []string{"fail verdict carries improvements"},
		Advisories(Verdict{Outcome: OutcomeFail, Improvements: []string{"x"}}))
}

func TestCategoryString(t *testing.T) {
	assert.Equal(t, "review_blocked", CategoryReviewBlocked.String())
	b, err := CategoryReviewWithIssue.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "review_with_issue", string(b))
}
