package service

import (
	"fmt"
	"strings"
)

// DraftRequest is everything a drafter needs to judge one submission.
type DraftRequest struct {
	AssignmentTitle       string
	AssignmentDescription string
	PolicyText            string
	InputSnapshot         string
}

const draftSystemPrompt = `あなたはプログラミング学習課題の採点アシスタントです。
受講生が提出した課題を評価し、以下のJSON形式で結果を返してください。

【出力JSON形式（厳守）】
{
  "result": "Pass" | "Fail" | "Review",
  "task_name": "課題名（提出内容から推測）",
  "good_points": ["良かった点（最大4つ）"],
  "improvements": ["改善点（最大4つ）"],
  "fail_reasons": ["不合格理由（Failの場合のみ、最大4つ）"],
  "submission_issue": "提出不備があれば記載（任意）"
}

【判定ルール】
- 要件を満たしていれば "Pass"
- 必須要件が未実装なら "Fail"
- 判断に迷う場合は必ず "Review"
- submission_issue がある場合は必ず "Review"
- Pass の場合: fail_reasons = []
- Fail の場合: improvements = []

【重要】
- 最終判断は人間が行います。迷ったら Review にしてください。
- JSON形式のみを出力してください。説明文は不要です。`

func buildDraftUserPrompt(req DraftRequest) string {
	var b strings.Builder
	b.WriteString("以下のプログラミング課題について、提出物を評価してください。\n\n")
	if req.AssignmentTitle != "" {
		fmt.Fprintf(&b, "【課題名】\n%s\n\n", req.AssignmentTitle)
	}
	if req.AssignmentDescription != "" {
		fmt.Fprintf(&b, "【課題文】\n%s\n\n", req.AssignmentDescription)
	}
	if req.PolicyText != "" {
		fmt.Fprintf(&b, "【評価ポリシー】\n%s\n\n", req.PolicyText)
	}
	fmt.Fprintf(&b, "【提出内容】\n%s\n\n", req.InputSnapshot)
	b.WriteString(`注意：
- 課題文は評価対象ではありません
- 提出物が課題文の要件を満たしているかを評価してください
- 判断に迷う場合は必ず Review にしてください`)
	return b.String()
}
