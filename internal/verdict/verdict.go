package verdict

import "fmt"

type Outcome string

const (
	OutcomePass   Outcome = "Pass"
	OutcomeFail   Outcome = "Fail"
	OutcomeReview Outcome = "Review"
)

func (o Outcome) Valid() bool {
	switch o {
	case OutcomePass, OutcomeFail, OutcomeReview:
		return true
	}
	return false
}

// Verdict is the structured evaluation result of a submission, produced by
// the AI drafter or edited by a mentor.
type Verdict struct {
	Outcome         Outcome  `json:"result"`
	TaskName        string   `json:"task_name"`
	GoodPoints      []string `json:"good_points"`
	Improvements    []string `json:"improvements"`
	FailReasons     []string `json:"fail_reasons"`
	SubmissionIssue string   `json:"submission_issue,omitempty"`
}

type Category int

const (
	CategoryPass Category = iota
	CategoryFail
	CategoryReviewWithIssue
	CategoryReviewBlocked
)

func (c Category) String() string {
	switch c {
	case CategoryPass:
		return "pass"
	case CategoryFail:
		return "fail"
	case CategoryReviewWithIssue:
		return "review_with_issue"
	case CategoryReviewBlocked:
		return "review_blocked"
	}
	return fmt.Sprintf("category(%d)", int(c))
}

func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Classify labels a verdict. Any outcome other than Pass or Fail is handled
// as Review, so an unknown outcome can never slip through to Slack.
func Classify(v Verdict) Category {
	switch v.Outcome {
	case OutcomePass:
		return CategoryPass
	case OutcomeFail:
		return CategoryFail
	}
	if v.SubmissionIssue != "" {
		return CategoryReviewWithIssue
	}
	return CategoryReviewBlocked
}

func IsReviewState(v Verdict) bool {
	return v.Outcome == OutcomeReview
}

// CanCopyToSlack reports whether a Slack message may be shown or copied.
// A Review without a submission issue never can.
func CanCopyToSlack(v Verdict) bool {
	return Classify(v) != CategoryReviewBlocked
}

// Advisories lists violations of the drafting contract (Pass carries no
// fail reasons, Fail carries no improvements). They are informational only.
func Advisories(v Verdict) []string {
	var out []string
	if v.Outcome == OutcomePass && len(v.FailReasons) > 0 {
		out = append(out, "pass verdict carries fail reasons")
	}
	if v.Outcome == OutcomeFail && len(v.Improvements) > 0 {
		out = append(out, "fail verdict carries improvements")
	}
	return out
}
