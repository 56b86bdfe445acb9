package classifier

import (
	"github.com/hafljin/inquiry-automation/internal/catalog"
	"github.com/hafljin/inquiry-automation/internal/logger"
	"github.com/hafljin/inquiry-automation/internal/models"
)

// Branch names the selection rule that produced a response
type Branch string

const (
	BranchMultiChannelDiverse Branch = "multi_channel_diverse"
	BranchQuoteOrMultiChannel Branch = "quote_or_multi_channel"
	BranchFixedAnswers        Branch = "fixed_answers"
	BranchBooking             Branch = "booking"
	BranchEmpty               Branch = "empty"
	BranchBalanced            Branch = "balanced"
	BranchFailed              Branch = "failed"
)

type selectionRule struct {
	name     Branch
	match    func(models.DiagnosticSelection) bool
	tiers    []models.TierID
	message  string
	analysis string
}

// selectionRules is an ordered if/else-if chain; the first matching rule wins
var selectionRules = []selectionRule{
	{
		name: BranchMultiChannelDiverse,
		match: func(s models.DiagnosticSelection) bool {
			return isMultiChannel(s) && len(s.InquiryTypes) >= 3
		},
		tiers:    []models.TierID{premium, standard, basic},
		message:  "診断が完了しました！複数のチャネルから多様な問い合わせが届いているようですね。プレミアム自動化パックで一元的に自動化できます。",
		analysis: "複数チャネルかつ多岐にわたる問い合わせは、チャネルごとの個別対応では負担が大きくなります。全チャネル対応と文脈理解による柔軟な応答で、対応品質を保ちながら工数を大幅に削減できます。",
	},
	{
		name: BranchQuoteOrMultiChannel,
		match: func(s models.DiagnosticSelection) bool {
			return isMultiChannel(s) || s.HasType(catalog.TypeEstimate) || s.HasType(catalog.TypeDelivery)
		},
		tiers:    []models.TierID{standard, premium, basic},
		message:  "診断が完了しました！見積もりや納期、複数チャネルの問い合わせには、標準自動化パックがおすすめです。",
		analysis: "見積もり・納期に関する問い合わせは、基本情報の自動返信と担当者への通知を組み合わせることで効率化できます。複数チャネルからの問い合わせもまとめて管理でき、対応漏れを防げます。",
	},
	{
		name: BranchFixedAnswers,
		match: func(s models.DiagnosticSelection) bool {
			if len(s.InquiryTypes) == 0 || len(s.InquiryTypes) > 2 || isMultiChannel(s) {
				return false
			}
			for _, t := range s.InquiryTypes {
				if t != catalog.TypeHours && t != catalog.TypeShipping {
					return false
				}
			}
			return true
		},
		tiers:    []models.TierID{basic, standard},
		message:  "診断が完了しました！営業時間や送料などの決まった回答で済む問い合わせが中心ですね。基本自動化パックで十分に対応できます。",
		analysis: "営業時間や送料は回答が固定された情報のため、自動返信に最適です。よくある質問として登録しておくだけで、24時間いつでも正確な情報を提供できます。",
	},
	{
		name: BranchBooking,
		match: func(s models.DiagnosticSelection) bool {
			return s.HasType(catalog.TypeCancel) || s.HasType(catalog.TypeReservation)
		},
		tiers:    []models.TierID{standard, basic, premium},
		message:  "診断が完了しました！予約やキャンセルに関する問い合わせは、自動返信と担当者への通知の組み合わせで効率化できます。標準自動化パックがおすすめです。",
		analysis: "予約・キャンセルの問い合わせは、ポリシーや手続きを自動返信で案内しつつ、個別の判断が必要なものは重要度に応じて担当者に通知する仕組みが効果的です。",
	},
	{
		name: BranchEmpty,
		match: func(s models.DiagnosticSelection) bool {
			return s.IsEmpty()
		},
		tiers:    []models.TierID{standard},
		message:  "まずは標準自動化パックから始めることをおすすめします。お問い合わせの状況をお聞かせいただければ、最適なプランをご提案します。",
		analysis: "問い合わせの種類やチャネルが選択されていないため、多くの事業者に適したバランス型の標準自動化パックをご案内しています。詳しい内容は直接ご相談ください。",
	},
	{
		name: BranchBalanced,
		match: func(models.DiagnosticSelection) bool {
			return true
		},
		tiers:    []models.TierID{standard, basic, premium},
		message:  "診断が完了しました！バランスの取れた自動化で効率化できそうです。標準自動化パックがおすすめです。",
		analysis: "選択された問い合わせ内容は、標準的な自動化機能で対応できる範囲です。よくある質問の自動返信と通知機能を組み合わせることで、対応時間の短縮が期待できます。",
	},
}

func isMultiChannel(s models.DiagnosticSelection) bool {
	return s.HasChannel(catalog.ChannelMultiple) || len(s.Channels) >= 2
}

// ClassifyBySelection maps checked tags to a recommendation.
// It never fails; internal errors degrade to the apology response.
func ClassifyBySelection(sel models.DiagnosticSelection) (models.DiagnosticResponse, Branch) {
	return evaluate(sel, selectionRules)
}

func evaluate(sel models.DiagnosticSelection, rules []selectionRule) (resp models.DiagnosticResponse, branch Branch) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Selection classification panicked", "panic", r)
			resp = TextApology()
			branch = BranchFailed
		}
	}()

	sel = catalog.NormalizeSelection(sel)
	for _, rule := range rules {
		if !rule.match(sel) {
			continue
		}
		return models.DiagnosticResponse{
			AIMessage: rule.message,
			Patterns:  catalog.Rank(rule.tiers),
			Analysis:  rule.analysis,
		}, rule.name
	}

	return TextApology(), BranchFailed
}
