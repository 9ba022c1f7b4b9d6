package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildDraftUserPrompt(t *testing.T) {
	p := buildDraftUserPrompt(DraftRequest{
		AssignmentTitle:       "【提出課題①】LengthBasedExampleSelector",
		AssignmentDescription: "要件1〜3",
		PolicyText:            "コメントは不要",
		InputSnapshot:         "print('hello')",
	})
	assert.Contains(t, p, "【課題名】\n【提出課題①】LengthBasedExampleSelector\n\n")
	assert.Contains(t, p, "【課題文】\n要件1〜3\n\n")
	assert.Contains(t, p, "【評価ポリシー】\nコメントは不要\n\n")
	assert.Contains(t, p, "【提出内容】\nprint('hello')\n\n")
}

func TestBuildDraftUserPrompt_OmitsEmptySections(t *testing.T) {
	p := buildDraftUserPrompt(DraftRequest{InputSnapshot: "x"})
	assert.NotContains(t, p, "【課題名】")
	assert.NotContains(t, p, "【評価ポリシー】")
	assert.Contains(t, p, "【提出内容】\nx")
}
