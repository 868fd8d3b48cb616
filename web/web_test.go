// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package web

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateLabel(t *testing.T) {
	kst := time.FixedZone("KST", 9*60*60)
	assert.Equal(t, "2026년 04월 05일", DateLabel(time.Date(2026, time.April, 5, 23, 0, 0, 0, kst)))
}

func TestRenderMarkdown(t *testing.T) {
	out, err := RenderMarkdown([]byte("## 제목\n\n**굵게** 쓰기\n"))
	require.NoError(t, err)
	assert.Contains(t, string(out), "<h2>제목</h2>")
	assert.Contains(t, string(out), "<strong>굵게</strong>")
}

func TestRenderMarkdown_DropsRawHTML(t *testing.T) {
	out, err := RenderMarkdown([]byte("<script>alert(1)</script>\n"))
	require.NoError(t, err)
	assert.NotContains(t, string(out), "<script>")
}

func TestPages_Index(t *testing.T) {
	p, err := Load()
	require.NoError(t, err)
	assert.Contains(t, string(p.Guide()), "삼행시 쓰는 법")

	var buf bytes.Buffer
	require.NoError(t, p.Index(&buf, IndexData{Date: "2026년 04월 05일", Category: "봄"}))
	html := buf.String()

	assert.Contains(t, html, "2026년 04월 05일")
	assert.Contains(t, html, "<table>", "guide table rendered")
	assert.Contains(t, html, "/api/poems/live")
	assert.Contains(t, html, `href="/admin"`)
	assert.Regexp(t, `const maxLength =\s*6\s*;`, html)
	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
}

func TestPages_IndexScript(t *testing.T) {
	p, err := Load()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, p.Index(&buf, IndexData{Date: "2026년 04월 05일", Category: "봄"}))
	html := buf.String()

	// stale validation replies are dropped
	assert.Contains(t, html, "const seq = ++validateSeq;")
	assert.Contains(t, html, "if (seq !== validateSeq) return;")
	// reroll shows a loading state while the request runs
	assert.Contains(t, html, `btn.textContent = "로딩 중...";`)
	assert.Contains(t, html, `btn.textContent = "다른 주제 고르기";`)
}

func TestPages_Admin(t *testing.T) {
	p, err := Load()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, p.Admin(&buf, AdminData{
		Categories:  []string{"봄", "여름"},
		Featured:    "봄",
		Suggestions: []string{"봄바람", "새싹"},
	}))
	html := buf.String()

	assert.Contains(t, html, "<title>삼행시 관리자</title>")
	assert.Contains(t, html, `<option value="봄" selected>`)
	assert.Contains(t, html, `<option value="여름">`)
	assert.Contains(t, html, `data-word="새싹"`)
	assert.Contains(t, html, `maxlength="6"`)
	assert.Contains(t, html, "X-Admin-Password")
}
