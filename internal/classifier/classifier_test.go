package classifier

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/hafljin/inquiry-automation/internal/catalog"
	apperrors "github.com/hafljin/inquiry-automation/internal/errors"
	"github.com/hafljin/inquiry-automation/internal/models"
	"github.com/hafljin/inquiry-automation/internal/validator"
)

func tierIDs(tiers []models.Tier) []models.TierID {
	ids := make([]models.TierID, len(tiers))
	for i, t := range tiers {
		ids[i] = t.ID
	}
	return ids
}

func suitabilities(tiers []models.Tier) []int {
	out := make([]int, len(tiers))
	for i, t := range tiers {
		out[i] = t.Suitability
	}
	return out
}

func TestClassifier_Analyze(t *testing.T) {
	c := New()

	tests := []struct {
		name               string
		text               string
		expectedTemplate   string
		expectedComplexity models.Complexity
		expectedChannels   int
	}{
		{
			name:               "Shipping template",
			text:               "送料は全国一律でしょうか、教えていただけますか",
			expectedTemplate:   "shipping",
			expectedComplexity: models.ComplexityMedium,
			expectedChannels:   1,
		},
		{
			name:               "Tie keeps first template",
			text:               "予約のキャンセルはできますか？当日でも大丈夫でしょうか",
			expectedTemplate:   "reservation",
			expectedComplexity: models.ComplexityMedium,
			expectedChannels:   1,
		},
		{
			name:               "All channel groups",
			text:               "LINEとメールとフォームからそれぞれ届くのをまとめたい",
			expectedTemplate:   "line",
			expectedComplexity: models.ComplexityMedium,
			expectedChannels:   3,
		},
		{
			name:               "Channel variants count once",
			text:               "ラインとline@の両方で届きます",
			expectedTemplate:   "line",
			expectedComplexity: models.ComplexityMedium,
			expectedChannels:   1,
		},
		{
			name:               "Simple heuristic",
			text:               "お店の場所と住所、それから駐車場の料金を教えてください",
			expectedTemplate:   "",
			expectedComplexity: models.ComplexitySimple,
			expectedChannels:   1,
		},
		{
			name:               "Complex keyword",
			text:               "独自のワークフローに合わせたいのですが、料金の目安を知りたいです",
			expectedTemplate:   "",
			expectedComplexity: models.ComplexityComplex,
			expectedChannels:   1,
		},
		{
			name:               "Long text is complex",
			text:               strings.Repeat("駐車場の料金を知りたいです。", 40),
			expectedTemplate:   "",
			expectedComplexity: models.ComplexityComplex,
			expectedChannels:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := c.Analyze(tt.text)

			if a.TemplateID() != tt.expectedTemplate {
				t.Errorf("Expected template %q, got %q", tt.expectedTemplate, a.TemplateID())
			}
			if a.Complexity != tt.expectedComplexity {
				t.Errorf("Expected complexity %s, got %s", tt.expectedComplexity, a.Complexity)
			}
			if a.ChannelCount != tt.expectedChannels {
				t.Errorf("Expected %d channels, got %d", tt.expectedChannels, a.ChannelCount)
			}
		})
	}
}

func TestClassifier_Classify(t *testing.T) {
	c := New()

	tests := []struct {
		name                  string
		text                  string
		expectedTiers         []models.TierID
		expectedSuitabilities []int
		expectedMessage       string
	}{
		{
			name:                  "Shipping inquiry",
			text:                  "送料は全国一律でしょうか、教えていただけますか",
			expectedTiers:         []models.TierID{models.TierBasic, models.TierStandard},
			expectedSuitabilities: []int{100, 80},
			expectedMessage:       templates[0].Message,
		},
		{
			name:                  "Simple keywords without template",
			text:                  "お店の場所と住所、それから駐車場の料金を教えてください",
			expectedTiers:         []models.TierID{models.TierBasic, models.TierStandard},
			expectedSuitabilities: []int{100, 80},
			expectedMessage:       "分析が完了しました！シンプルな自動返信で対応できる内容が多いですね。基本自動化パックが最適です。",
		},
		{
			name:                  "Complex requirements",
			text:                  "独自のワークフローに合わせたいのですが、料金の目安を知りたいです",
			expectedTiers:         []models.TierID{models.TierPremium, models.TierStandard, models.TierBasic},
			expectedSuitabilities: []int{100, 80, 60},
			expectedMessage:       "分析が完了しました！複数のチャネルや高度な機能が必要な内容ですね。プレミアム自動化パックで完全対応できます。",
		},
		{
			name:                  "Medium inquiry",
			text:                  "駐車場の料金について詳しく知りたいのですがよろしいですか",
			expectedTiers:         []models.TierID{models.TierStandard, models.TierBasic, models.TierPremium},
			expectedSuitabilities: []int{100, 80, 60},
			expectedMessage:       "分析が完了しました！バランスの取れた自動化で効率化できそうです。標準自動化パックがおすすめです。",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := c.Classify(tt.text)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			if !reflect.DeepEqual(tierIDs(resp.Patterns), tt.expectedTiers) {
				t.Errorf("Expected tiers %v, got %v", tt.expectedTiers, tierIDs(resp.Patterns))
			}
			if !reflect.DeepEqual(suitabilities(resp.Patterns), tt.expectedSuitabilities) {
				t.Errorf("Expected suitabilities %v, got %v", tt.expectedSuitabilities, suitabilities(resp.Patterns))
			}
			if resp.AIMessage != tt.expectedMessage {
				t.Errorf("Expected message %s, got %s", tt.expectedMessage, resp.AIMessage)
			}
		})
	}
}

func TestClassifier_ShippingAnalysisVerbatim(t *testing.T) {
	resp, err := New().Classify("送料は全国一律でしょうか、教えていただけますか")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if resp.Analysis != templates[0].Analysis {
		t.Errorf("Expected analysis %s, got %s", templates[0].Analysis, resp.Analysis)
	}
}

func TestClassifier_ClassifyRejectsInvalid(t *testing.T) {
	_, err := New().Classify("送料は？")
	if err == nil {
		t.Fatal("Expected validation error")
	}

	var verr *apperrors.InquiryValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Expected InquiryValidationError, got %T", err)
	}
	if verr.Message != validator.MsgTooShort {
		t.Errorf("Expected message %s, got %s", validator.MsgTooShort, verr.Message)
	}
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Error("Expected error to wrap ErrInvalidInput")
	}
}

func TestAnalysisText(t *testing.T) {
	a := models.InquiryAnalysis{Complexity: models.ComplexityMedium, ChannelCount: 2}
	expected := "問い合わせ内容を分析した結果、" +
		"複数のチャネル（LINE/メール/フォーム）からの問い合わせがあることが分かりました。" +
		"標準的な自動化機能で対応できる内容です。" +
		"自動化により、対応時間の短縮と品質の向上が期待できます。"

	if got := AnalysisText(a); got != expected {
		t.Errorf("Expected %s, got %s", expected, got)
	}
}

func TestRecommend_ChannelHeavyIsPremium(t *testing.T) {
	a := models.InquiryAnalysis{Complexity: models.ComplexitySimple, ChannelCount: 3}
	ids := Recommend(a)

	if ids[0] != models.TierPremium {
		t.Errorf("Expected premium first, got %s", ids[0])
	}
}

func TestClassifySelection(t *testing.T) {
	tests := []struct {
		name                  string
		selection             models.DiagnosticSelection
		expectedBranch        Branch
		expectedTiers         []models.TierID
		expectedSuitabilities []int
	}{
		{
			name:                  "Empty selection",
			selection:             models.DiagnosticSelection{InquiryTypes: []string{}, Channels: []string{}},
			expectedBranch:        BranchEmpty,
			expectedTiers:         []models.TierID{models.TierStandard},
			expectedSuitabilities: []int{100},
		},
		{
			name:                  "Cancel via LINE",
			selection:             models.DiagnosticSelection{InquiryTypes: []string{"cancel"}, Channels: []string{"line"}},
			expectedBranch:        BranchBooking,
			expectedTiers:         []models.TierID{models.TierStandard, models.TierBasic, models.TierPremium},
			expectedSuitabilities: []int{100, 80, 60},
		},
		{
			name:                  "Diverse multi-channel",
			selection:             models.DiagnosticSelection{InquiryTypes: []string{"hours", "shipping", "cancel"}, Channels: []string{"multiple"}},
			expectedBranch:        BranchMultiChannelDiverse,
			expectedTiers:         []models.TierID{models.TierPremium, models.TierStandard, models.TierBasic},
			expectedSuitabilities: []int{100, 80, 60},
		},
		{
			name:                  "Estimate",
			selection:             models.DiagnosticSelection{InquiryTypes: []string{"estimate"}},
			expectedBranch:        BranchQuoteOrMultiChannel,
			expectedTiers:         []models.TierID{models.TierStandard, models.TierPremium, models.TierBasic},
			expectedSuitabilities: []int{100, 80, 60},
		},
		{
			name:                  "Two channels",
			selection:             models.DiagnosticSelection{InquiryTypes: []string{"hours"}, Channels: []string{"line", "mail"}},
			expectedBranch:        BranchQuoteOrMultiChannel,
			expectedTiers:         []models.TierID{models.TierStandard, models.TierPremium, models.TierBasic},
			expectedSuitabilities: []int{100, 80, 60},
		},
		{
			name:                  "Fixed answers",
			selection:             models.DiagnosticSelection{InquiryTypes: []string{"hours", "shipping"}, Channels: []string{"line"}},
			expectedBranch:        BranchFixedAnswers,
			expectedTiers:         []models.TierID{models.TierBasic, models.TierStandard},
			expectedSuitabilities: []int{100, 80},
		},
		{
			name:                  "Reservation with hours",
			selection:             models.DiagnosticSelection{InquiryTypes: []string{"hours", "reservation"}},
			expectedBranch:        BranchBooking,
			expectedTiers:         []models.TierID{models.TierStandard, models.TierBasic, models.TierPremium},
			expectedSuitabilities: []int{100, 80, 60},
		},
		{
			name:                  "Channel only",
			selection:             models.DiagnosticSelection{Channels: []string{"form"}},
			expectedBranch:        BranchBalanced,
			expectedTiers:         []models.TierID{models.TierStandard, models.TierBasic, models.TierPremium},
			expectedSuitabilities: []int{100, 80, 60},
		},
		{
			name:                  "Unknown tags are ignored",
			selection:             models.DiagnosticSelection{InquiryTypes: []string{"bogus"}, Channels: []string{"fax"}},
			expectedBranch:        BranchEmpty,
			expectedTiers:         []models.TierID{models.TierStandard},
			expectedSuitabilities: []int{100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, branch := ClassifyBySelection(tt.selection)

			if branch != tt.expectedBranch {
				t.Errorf("Expected branch %s, got %s", tt.expectedBranch, branch)
			}
			if !reflect.DeepEqual(tierIDs(resp.Patterns), tt.expectedTiers) {
				t.Errorf("Expected tiers %v, got %v", tt.expectedTiers, tierIDs(resp.Patterns))
			}
			if !reflect.DeepEqual(suitabilities(resp.Patterns), tt.expectedSuitabilities) {
				t.Errorf("Expected suitabilities %v, got %v", tt.expectedSuitabilities, suitabilities(resp.Patterns))
			}
			if resp.AIMessage == "" || resp.Analysis == "" {
				t.Error("Expected canned message and analysis")
			}
		})
	}
}

func TestClassifySelection_EmptyMessage(t *testing.T) {
	resp, _ := ClassifyBySelection(models.DiagnosticSelection{})
	if !strings.Contains(resp.AIMessage, "標準自動化パックから始める") {
		t.Errorf("Expected start-with-standard message, got %s", resp.AIMessage)
	}
}

func TestClassifySelection_CancelMessage(t *testing.T) {
	resp, _ := ClassifyBySelection(models.DiagnosticSelection{InquiryTypes: []string{"cancel"}, Channels: []string{"line"}})
	if !strings.Contains(resp.AIMessage, "キャンセル") {
		t.Errorf("Expected cancellation message, got %s", resp.AIMessage)
	}
}

func TestEvaluate_RecoversPanics(t *testing.T) {
	rules := []selectionRule{
		{
			name:  "broken",
			match: func(models.DiagnosticSelection) bool { panic("boom") },
		},
	}

	resp, branch := evaluate(models.DiagnosticSelection{}, rules)

	if branch != BranchFailed {
		t.Errorf("Expected branch %s, got %s", BranchFailed, branch)
	}
	if resp.AIMessage != ApologyMessage {
		t.Errorf("Expected apology, got %s", resp.AIMessage)
	}
	if resp.Patterns == nil || len(resp.Patterns) != 0 {
		t.Errorf("Expected empty non-nil patterns, got %v", resp.Patterns)
	}
}

func TestIdempotence(t *testing.T) {
	c := New()
	text := "予約の変更はいつまでにお願いすればよいでしょうか"

	first, err1 := c.Classify(text)
	second, err2 := c.Classify(text)
	if err1 != nil || err2 != nil {
		t.Fatalf("Unexpected errors: %v, %v", err1, err2)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("Expected identical free-text responses")
	}

	sel := models.DiagnosticSelection{InquiryTypes: []string{"stock", "product"}, Channels: []string{"mail"}}
	r1, b1 := ClassifyBySelection(sel)
	r2, b2 := ClassifyBySelection(sel)
	if b1 != b2 || !reflect.DeepEqual(r1, r2) {
		t.Error("Expected identical selection responses")
	}
}

func TestTierReferencesResolve(t *testing.T) {
	if err := catalog.Verify(TierReferences()); err != nil {
		t.Errorf("Expected every referenced tier to exist, got %v", err)
	}
}

func TestTierReferences_CoverAllRules(t *testing.T) {
	refs := TierReferences()
	if len(refs) != len(templates)+len(selectionRules)+3 {
		t.Errorf("Expected %d sources, got %d", len(templates)+len(selectionRules)+3, len(refs))
	}
	for _, r := range selectionRules {
		if _, ok := refs["selection "+string(r.name)]; !ok {
			t.Errorf("Expected selection rule %s in references", r.name)
		}
	}
	if got := refs["selection "+string(BranchEmpty)]; !reflect.DeepEqual(got, []models.TierID{models.TierStandard}) {
		t.Errorf("Expected empty branch to reference standard only, got %v", got)
	}
}
