package verdict

import "strings"

const (
	bulletPrefix = "・"
	emptyBullet  = "・特になし"
)

const passTemplate = `@受講生

課題のご提出ありがとうございます！
採点の結果、「合格」となりました！おめでとうございます🎉

*[課題名]*
{task_name}

*[具体的なフィードバック]*

■良かった点
{good_points}

■改善点
{improvements}

以上です！
今回の課題で学んだ内容を活かし、次の課題も頑張ってください！💪`

const failTemplate = `@受講生

課題のご提出ありがとうございます！
採点の結果、残念ながら合格基準を満たさず「不合格」となりました、再提出をお願いします。

*[課題名]*
{task_name}

*[不合格の理由・修正点]*
{fail_reasons}

*[その他フィードバック/良かった点]*
{good_points}

上記の点を修正し、「課題提出フォーム」から再度提出をお願いします！
不明点があれば、質問フォーム、もしくはメンタリングで解消していきましょう💪`

const submissionIssueHeader = "@受講生\n課題のご提出、ありがとうございました！\n"

// Render builds the Slack message for a verdict. ok is false when the
// verdict is an unresolved Review; callers must not display or copy anything
// in that case.
func Render(v Verdict) (msg string, ok bool) {
	switch Classify(v) {
	case CategoryPass:
		return strings.NewReplacer(
			"{task_name}", v.TaskName,
			"{good_points}", FormatPoints(v.GoodPoints),
			"{improvements}", FormatPoints(v.Improvements),
		).Replace(passTemplate), true
	case CategoryFail:
		return strings.NewReplacer(
			"{task_name}", v.TaskName,
			"{fail_reasons}", FormatPoints(v.FailReasons),
			"{good_points}", FormatPoints(v.GoodPoints),
		).Replace(failTemplate), true
	case CategoryReviewWithIssue:
		return submissionIssueHeader + v.SubmissionIssue, true
	}
	return "", false
}

// FormatPoints renders a Slack bullet list, one "・item" per line.
func FormatPoints(points []string) string {
	if len(points) == 0 {
		return emptyBullet
	}
	var b strings.Builder
	for i, p := range points {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(bulletPrefix)
		b.WriteString(p)
	}
	return b.String()
}
