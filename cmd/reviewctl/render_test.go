package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fadilmartias/review-composer/internal/service"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func TestRenderVerdict_Pass(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := renderVerdict(&stdout, &stderr, `{"result":"Pass","task_name":"9-6","good_points":["読みやすい"],"improvements":[]}`)
	require.NoError(t, err)
	assert.Equal(t, "category: pass\n", stderr.String())
	assert.Contains(t, stdout.String(), "■良かった点\n・読みやすい\n\n■改善点\n・特になし")
}

func TestRenderVerdict_Blocked(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := renderVerdict(&stdout, &stderr, `{"result":"Review"}`)
	assert.ErrorIs(t, err, errBlocked)
	assert.Empty(t, stdout.String())
}

func TestRenderVerdict_Advisory(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := renderVerdict(&stdout, &stderr, `{"result":"Fail","task_name":"9-6","improvements":["命名"],"fail_reasons":["未実装"]}`)
	require.NoError(t, err)
	assert.Equal(t, "category: fail\nwarning: fail verdict carries improvements\n", stderr.String())
}

func TestRenderVerdict_Invalid(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := renderVerdict(&stdout, &stderr, `not json`)
	assert.ErrorIs(t, err, service.ErrInvalidDraft)
}

func TestRenderCmd_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "verdict.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"result":"Review","submission_issue":"リンクが開けません"}`), 0o644))

	var stdout bytes.Buffer
	cmd := newRenderCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{path})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "@受講生\n課題のご提出、ありがとうございました！\nリンクが開けません\n", stdout.String())
}

func TestRenderCmd_Stdin(t *testing.T) {
	var stdout bytes.Buffer
	cmd := newRenderCmd()
	cmd.SetIn(strings.NewReader(`{"result":"Fail","task_name":"9-6","fail_reasons":["要件2"]}`))
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"-"})
	require.NoError(t, cmd.Execute())
	assert.True(t, strings.HasPrefix(stdout.String(), "@受講生\n\n課題のご提出ありがとうございます！"))
}

func TestLoadAssignments(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.json")
	require.NoError(t, os.WriteFile(good, []byte(`[{"code":"9-7","title":"課題②"}]`), 0o644))
	items, err := loadAssignments(good)
	require.NoError(t, err)
	assert.Equal(t, "9-7", items[0].Code)

	catalog := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(catalog, []byte("- code: \"9-8\"\n  title: 課題③\n  description: |\n    要件1\n    要件2\n"), 0o644))
	items, err = loadAssignments(catalog)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "9-8", items[0].Code)
	assert.Equal(t, "要件1\n要件2\n", items[0].Description)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`[{"code":""}]`), 0o644))
	_, err = loadAssignments(bad)
	assert.Error(t, err)
}
