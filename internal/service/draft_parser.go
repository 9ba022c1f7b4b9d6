package service

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/fadilmartias/review-composer/internal/verdict"
	"github.com/tidwall/gjson"
)

const (
	maxPoints         = 4
	maxPointLength    = 200
	maxIssueLength    = 300
	maxTaskNameLength = 200
)

var ErrInvalidDraft = errors.New("invalid draft verdict")

// ParseDraft decodes the JSON object returned by a drafter into a Verdict,
// rejecting anything that does not fit the drafting contract.
func ParseDraft(raw string) (verdict.Verdict, error) {
	text := stripCodeFence(raw)
	if !gjson.Valid(text) {
		return verdict.Verdict{}, fmt.Errorf("%w: response is not valid JSON", ErrInvalidDraft)
	}
	doc := gjson.Parse(text)
	if !doc.IsObject() {
		return verdict.Verdict{}, fmt.Errorf("%w: response is not a JSON object", ErrInvalidDraft)
	}

	result := doc.Get("result")
	if result.Type != gjson.String {
		return verdict.Verdict{}, fmt.Errorf("%w: result must be a string", ErrInvalidDraft)
	}

	v := verdict.Verdict{
		Outcome:         verdict.Outcome(result.String()),
		TaskName:        doc.Get("task_name").String(),
		SubmissionIssue: doc.Get("submission_issue").String(),
	}

	var err error
	if v.GoodPoints, err = stringList(doc, "good_points"); err != nil {
		return verdict.Verdict{}, err
	}
	if v.Improvements, err = stringList(doc, "improvements"); err != nil {
		return verdict.Verdict{}, err
	}
	if v.FailReasons, err = stringList(doc, "fail_reasons"); err != nil {
		return verdict.Verdict{}, err
	}

	v = NormalizeVerdict(v)
	if err := ValidateVerdict(v); err != nil {
		return verdict.Verdict{}, err
	}
	return v, nil
}

// NormalizeVerdict trims surrounding whitespace from every text field and
// replaces nil lists with empty ones. A whitespace-only submission issue
// becomes empty, which keeps such a Review blocked.
func NormalizeVerdict(v verdict.Verdict) verdict.Verdict {
	v.TaskName = strings.TrimSpace(v.TaskName)
	v.SubmissionIssue = strings.TrimSpace(v.SubmissionIssue)
	v.GoodPoints = trimAll(v.GoodPoints)
	v.Improvements = trimAll(v.Improvements)
	v.FailReasons = trimAll(v.FailReasons)
	return v
}

func trimAll(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, strings.TrimSpace(item))
	}
	return out
}

// ValidateVerdict applies the drafting contract limits to an already typed
// verdict, e.g. one edited by hand.
func ValidateVerdict(v verdict.Verdict) error {
	if !v.Outcome.Valid() {
		return fmt.Errorf("%w: result %q is not one of Pass, Fail, Review", ErrInvalidDraft, v.Outcome)
	}
	if utf8.RuneCountInString(v.TaskName) > maxTaskNameLength {
		return fmt.Errorf("%w: task_name exceeds %d characters", ErrInvalidDraft, maxTaskNameLength)
	}
	if utf8.RuneCountInString(v.SubmissionIssue) > maxIssueLength {
		return fmt.Errorf("%w: submission_issue exceeds %d characters", ErrInvalidDraft, maxIssueLength)
	}
	lists := []struct {
		name   string
		values []string
	}{
		{"good_points", v.GoodPoints},
		{"improvements", v.Improvements},
		{"fail_reasons", v.FailReasons},
	}
	for _, l := range lists {
		if len(l.values) > maxPoints {
			return fmt.Errorf("%w: %s has more than %d items", ErrInvalidDraft, l.name, maxPoints)
		}
		for i, p := range l.values {
			if strings.TrimSpace(p) == "" {
				return fmt.Errorf("%w: %s[%d] is empty", ErrInvalidDraft, l.name, i)
			}
			if utf8.RuneCountInString(p) > maxPointLength {
				return fmt.Errorf("%w: %s[%d] exceeds %d characters", ErrInvalidDraft, l.name, i, maxPointLength)
			}
		}
	}
	return nil
}

func stringList(doc gjson.Result, key string) ([]string, error) {
	field := doc.Get(key)
	if !field.Exists() || field.Type == gjson.Null {
		return []string{}, nil
	}
	if !field.IsArray() {
		return nil, fmt.Errorf("%w: %s must be an array", ErrInvalidDraft, key)
	}
	out := []string{}
	for i, item := range field.Array() {
		if item.Type != gjson.String {
			return nil, fmt.Errorf("%w: %s[%d] must be a string", ErrInvalidDraft, key, i)
		}
		out = append(out, item.String())
	}
	return out, nil
}

// stripCodeFence removes a ```json ... ``` wrapper some models add.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
