package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/hafljin/inquiry-automation/internal/models"
	"github.com/hafljin/inquiry-automation/internal/validator"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestValidateCmd(t *testing.T) {
	out, err := run(t, "validate", "ああ")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var res models.ValidationResult
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("Failed to decode %q: %v", out, err)
	}
	if res.IsValid || res.ErrorMessage != validator.MsgTooShort {
		t.Errorf("Expected too-short rejection, got %+v", res)
	}
}

func TestAnalyzeCmd(t *testing.T) {
	out, err := run(t, "analyze", "送料は全国一律でしょうか、教えていただけますか")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var resp models.DiagnosticResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("Failed to decode %q: %v", out, err)
	}
	if resp.TopTier() != models.TierBasic {
		t.Errorf("Expected basic, got %s", resp.TopTier())
	}

	if _, err := run(t, "analyze", "abc"); err == nil || !strings.Contains(err.Error(), "invalid inquiry") {
		t.Errorf("Expected invalid inquiry error, got %v", err)
	}
}

func TestSelectCmd(t *testing.T) {
	out, err := run(t, "select", "--type", "estimate", "--channel", "line,mail")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var resp models.DiagnosticResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("Failed to decode %q: %v", out, err)
	}
	if resp.TopTier() != models.TierStandard {
		t.Errorf("Expected standard, got %s", resp.TopTier())
	}
}

func TestChatCmd(t *testing.T) {
	out, err := run(t, "chat", "営業時間を教えて")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(out, "営業時間は以下の通りです。") {
		t.Errorf("Expected hours reply, got %s", out)
	}
}

func TestCatalogCheckCmd(t *testing.T) {
	out, err := run(t, "catalog", "check")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.HasPrefix(out, "ok:") {
		t.Errorf("Expected ok line, got %s", out)
	}
}

func TestUnknownEngine(t *testing.T) {
	if _, err := run(t, "--engine", "magic", "chat", "hi"); err == nil {
		t.Error("Expected unknown engine error")
	}
}
