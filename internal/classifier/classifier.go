// Package classifier maps inquiry text and checked tags to ranked service tiers.
package classifier

import (
	"strings"

	"github.com/hafljin/inquiry-automation/internal/catalog"
	apperrors "github.com/hafljin/inquiry-automation/internal/errors"
	"github.com/hafljin/inquiry-automation/internal/logger"
	"github.com/hafljin/inquiry-automation/internal/models"
	"github.com/hafljin/inquiry-automation/internal/validator"
	"github.com/hafljin/inquiry-automation/pkg/utils"
)

// complexLength is the raw length above which an inquiry counts as complex
const complexLength = 500

// OutcomeFailed labels a classification that degraded to the apology response
const OutcomeFailed = "failed"

// Apology texts returned when classification fails after validation
const (
	ApologyMessage  = "申し訳ございませんが、分析中にエラーが発生しました。直接ご相談いただけますと幸いです。"
	ApologyAnalysis = "分析中にエラーが発生しました。直接ご相談ください。"
)

// channelGroups are disjoint; each contributes at most one to the channel count
var channelGroups = [][]string{
	{"line", "ライン", "line@"},
	{"mail", "メール", "email", "e-mail"},
	{"form", "フォーム", "お問い合わせフォーム", "問い合わせフォーム"},
}

var simpleKeywords = []string{
	"送料", "価格", "料金", "いくら", "値段", "営業時間", "時間",
	"場所", "住所", "アクセス", "キャンセル", "返金", "返品", "交換",
}

var complexKeywords = []string{
	"カスタマイズ", "連携", "api", "システム", "統合", "ワークフロー",
	"crm", "複雑", "特殊", "独自",
}

// Classifier provides rule-based inquiry classification
type Classifier struct {
	templates []models.Template
}

// New creates a classifier over the built-in template table
func New() *Classifier {
	return &Classifier{templates: templates}
}

// NewWithTemplates creates a classifier over a custom template table
func NewWithTemplates(ts []models.Template) *Classifier {
	return &Classifier{templates: ts}
}

// Classify validates and classifies free text.
// Invalid text yields *errors.InquiryValidationError and no response.
func (c *Classifier) Classify(text string) (models.DiagnosticResponse, error) {
	resp, _, err := c.Evaluate(text)
	return resp, err
}

// Evaluate is Classify that also returns the outcome label:
// the template id, heuristic:<top tier>, or failed when classification panicked.
func (c *Classifier) Evaluate(text string) (resp models.DiagnosticResponse, outcome string, err error) {
	if v := validator.Validate(text); !v.IsValid {
		return models.DiagnosticResponse{}, "", &apperrors.InquiryValidationError{Message: v.ErrorMessage}
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Error("Inquiry classification panicked", "panic", r, "input_hash", utils.ShortHash(text))
			resp = TextApology()
			outcome = OutcomeFailed
			err = nil
		}
	}()

	a := c.Analyze(text)
	resp = c.Respond(a)
	if id := a.TemplateID(); id != "" {
		return resp, id, nil
	}
	return resp, "heuristic:" + string(resp.TopTier()), nil
}

// Respond assembles the response for an analysis
func (c *Classifier) Respond(a models.InquiryAnalysis) models.DiagnosticResponse {
	ids := Recommend(a)
	return models.DiagnosticResponse{
		AIMessage: Message(a, ids),
		Patterns:  catalog.Rank(ids),
		Analysis:  AnalysisText(a),
	}
}

// Analyze scans text for channel mentions, the best template and the complexity heuristic
func (c *Classifier) Analyze(text string) models.InquiryAnalysis {
	lower := strings.ToLower(text)

	return models.InquiryAnalysis{
		Complexity:      complexity(text, lower),
		ChannelCount:    channelCount(lower),
		MatchedTemplate: c.bestTemplate(lower),
	}
}

// bestTemplate returns the template with the strictly highest keyword count; ties keep the earlier one
func (c *Classifier) bestTemplate(lower string) *models.Template {
	var best *models.Template
	maxMatches := 0

	for i := range c.templates {
		matches := utils.CountContainsFold(lower, c.templates[i].Keywords)
		if matches > maxMatches {
			maxMatches = matches
			best = &c.templates[i]
		}
	}

	return best
}

func channelCount(lower string) int {
	count := 0
	for _, group := range channelGroups {
		if utils.ContainsAny(lower, group) {
			count++
		}
	}
	if count == 0 {
		return 1
	}
	return count
}

func complexity(raw, lower string) models.Complexity {
	if utils.CountContains(lower, complexKeywords) > 0 || utils.RuneLen(raw) > complexLength {
		return models.ComplexityComplex
	}
	if utils.CountContains(lower, simpleKeywords) >= 2 {
		return models.ComplexitySimple
	}
	return models.ComplexityMedium
}

// Recommend returns the ordered tier ids for an analysis
func Recommend(a models.InquiryAnalysis) []models.TierID {
	if a.MatchedTemplate != nil {
		return a.MatchedTemplate.RecommendedTierIDs
	}

	switch {
	case a.Complexity == models.ComplexitySimple && a.ChannelCount == 1:
		return []models.TierID{basic, standard}
	case a.Complexity == models.ComplexityComplex || a.ChannelCount >= 3:
		return []models.TierID{premium, standard, basic}
	default:
		return []models.TierID{standard, basic, premium}
	}
}

// Message returns the headline shown above the recommendation
func Message(a models.InquiryAnalysis, ids []models.TierID) string {
	if a.MatchedTemplate != nil {
		return a.MatchedTemplate.Message
	}

	var top models.TierID
	if len(ids) > 0 {
		top = ids[0]
	}

	switch top {
	case basic:
		return "分析が完了しました！シンプルな自動返信で対応できる内容が多いですね。基本自動化パックが最適です。"
	case premium:
		return "分析が完了しました！複数のチャネルや高度な機能が必要な内容ですね。プレミアム自動化パックで完全対応できます。"
	default:
		return "分析が完了しました！バランスの取れた自動化で効率化できそうです。標準自動化パックがおすすめです。"
	}
}

// AnalysisText returns the detailed explanation for an analysis
func AnalysisText(a models.InquiryAnalysis) string {
	if a.MatchedTemplate != nil {
		return a.MatchedTemplate.Analysis
	}

	var sb strings.Builder
	sb.WriteString("問い合わせ内容を分析した結果、")

	if a.ChannelCount >= 2 {
		sb.WriteString("複数のチャネル（LINE/メール/フォーム）からの問い合わせがあることが分かりました。")
	} else {
		sb.WriteString("主に1つのチャネルからの問い合わせが多いことが分かりました。")
	}

	switch a.Complexity {
	case models.ComplexitySimple:
		sb.WriteString("よくある質問が多く、シンプルな自動返信で対応できる内容です。")
	case models.ComplexityComplex:
		sb.WriteString("複雑な要件やカスタマイズが必要な内容が含まれています。")
	default:
		sb.WriteString("標準的な自動化機能で対応できる内容です。")
	}

	sb.WriteString("自動化により、対応時間の短縮と品質の向上が期待できます。")
	return sb.String()
}

// TextApology is the degraded response of the free-text path
func TextApology() models.DiagnosticResponse {
	return models.DiagnosticResponse{
		AIMessage: ApologyMessage,
		Patterns:  []models.Tier{},
		Analysis:  ApologyAnalysis,
	}
}

// TierReferences lists every tier id used by templates and selection rules, keyed by rule source
func TierReferences() map[string][]models.TierID {
	refs := make(map[string][]models.TierID, len(templates)+len(selectionRules)+3)
	for _, t := range templates {
		refs["template "+t.ID] = t.RecommendedTierIDs
	}
	for _, r := range selectionRules {
		refs["selection "+string(r.name)] = r.tiers
	}
	refs["heuristic simple"] = []models.TierID{basic, standard}
	refs["heuristic complex"] = []models.TierID{premium, standard, basic}
	refs["heuristic balanced"] = []models.TierID{standard, basic, premium}
	return refs
}
