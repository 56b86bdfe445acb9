package classifier

import "github.com/hafljin/inquiry-automation/internal/models"

var (
	basic    = models.TierBasic
	standard = models.TierStandard
	premium  = models.TierPremium
)

// templates is scanned in order; the first template with the highest keyword count wins
var templates = []models.Template{
	{
		ID:                 "shipping",
		Keywords:           []string{"送料", "配送料", "送料は", "配送費"},
		Message:            "分析が完了しました！送料に関する問い合わせは自動返信で対応できる典型的なパターンですね。基本自動化パックで効率的に対応できます。",
		Analysis:           "送料に関する問い合わせは、よくある質問として自動化に最適です。事前に設定した回答を自動返信することで、対応時間を大幅に短縮できます。",
		RecommendedTierIDs: []models.TierID{basic, standard},
	},
	{
		ID:                 "reservation",
		Keywords:           []string{"予約", "予約は", "予約したい", "予約できますか"},
		Message:            "分析が完了しました！予約に関する問い合わせは、自動返信と通知機能の組み合わせで効率化できます。標準自動化パックがおすすめです。",
		Analysis:           "予約に関する問い合わせは、自動返信で基本情報を提供しつつ、実際の予約処理が必要な場合は担当者に通知する仕組みが効果的です。",
		RecommendedTierIDs: []models.TierID{standard, basic},
	},
	{
		ID:                 "cancellation",
		Keywords:           []string{"キャンセル", "返金", "返品", "交換"},
		Message:            "分析が完了しました！キャンセル・返金に関する問い合わせは、自動返信でポリシーを伝え、重要度に応じて担当者に通知する仕組みが最適です。",
		Analysis:           "キャンセルや返金に関する問い合わせは、まず自動返信で対応ポリシーを伝え、複雑なケースは担当者に通知する二段階の対応が効果的です。",
		RecommendedTierIDs: []models.TierID{standard, premium},
	},
	{
		ID:                 "hours",
		Keywords:           []string{"営業時間", "時間", "何時", "開店", "閉店"},
		Message:            "分析が完了しました！営業時間に関する問い合わせは、最も自動化しやすいパターンです。基本自動化パックで十分に対応できます。",
		Analysis:           "営業時間に関する問い合わせは、固定情報のため自動返信に最適です。24時間いつでも正確な情報を提供できるため、顧客満足度も向上します。",
		RecommendedTierIDs: []models.TierID{basic, standard},
	},
	{
		ID:                 "stock",
		Keywords:           []string{"在庫", "在庫は", "在庫ありますか", "ありますか"},
		Message:            "分析が完了しました！在庫確認の問い合わせは、自動返信で基本情報を提供し、リアルタイム確認が必要な場合は担当者に通知する仕組みが効果的です。",
		Analysis:           "在庫に関する問い合わせは、自動返信で在庫確認方法を案内し、リアルタイム確認が必要な場合は担当者に通知する二段階の対応が最適です。",
		RecommendedTierIDs: []models.TierID{standard, premium},
	},
	{
		ID:                 "line",
		Keywords:           []string{"LINE", "ライン", "line@"},
		Message:            "分析が完了しました！LINEからの問い合わせが多い場合、LINE専用の自動返信機能が効果的です。標準自動化パックでLINE対応を自動化できます。",
		Analysis:           "LINEからの問い合わせは、チャット形式で迅速な対応が求められます。自動返信機能により、営業時間外でも即座に回答でき、顧客満足度が向上します。",
		RecommendedTierIDs: []models.TierID{standard, premium},
	},
	{
		ID:                 "mail",
		Keywords:           []string{"メール", "email", "e-mail"},
		Message:            "分析が完了しました！メールでの問い合わせが多い場合、自動返信と重要度判定機能の組み合わせで効率化できます。標準自動化パックがおすすめです。",
		Analysis:           "メールでの問い合わせは、自動返信で基本情報を提供し、重要度の高いメールのみ担当者に通知する仕組みにより、対応漏れを防ぎつつ効率化できます。",
		RecommendedTierIDs: []models.TierID{standard, basic},
	},
	{
		ID:                 "form",
		Keywords:           []string{"フォーム", "お問い合わせフォーム", "問い合わせフォーム"},
		Message:            "分析が完了しました！フォームからの問い合わせは、自動返信と分類機能の組み合わせで効率化できます。標準自動化パックで対応可能です。",
		Analysis:           "フォームからの問い合わせは、自動返信で受付完了を通知し、内容に応じて分類して担当者に通知する仕組みが効果的です。",
		RecommendedTierIDs: []models.TierID{standard, premium},
	},
	{
		ID:                 "multi_channel",
		Keywords:           []string{"複数", "複数の", "いろいろ", "様々", "色々"},
		Message:            "分析が完了しました！複数のチャネルや多様な問い合わせがある場合、全チャネル対応と高度な自動化機能が必要です。プレミアム自動化パックが最適です。",
		Analysis:           "複数のチャネルや多様な問い合わせがある場合、統一的な自動化システムにより、対応品質を一定に保ちながら効率化できます。",
		RecommendedTierIDs: []models.TierID{premium, standard},
	},
	{
		ID:                 "integration",
		Keywords:           []string{"カスタマイズ", "連携", "api", "システム", "統合"},
		Message:            "分析が完了しました！既存システムとの連携やカスタマイズが必要な場合、プレミアム自動化パックで完全対応できます。",
		Analysis:           "既存システムとの連携やカスタマイズが必要な場合、柔軟な設定とAPI連携機能により、既存の業務フローに最適化した自動化が可能です。",
		RecommendedTierIDs: []models.TierID{premium, standard},
	},
	{
		ID:                 "usage",
		Keywords:           []string{"使い方", "使用方法", "使い方は", "方法", "どうやって"},
		Message:            "分析が完了しました！使い方に関する問い合わせは、自動返信でFAQを提供することで効率化できます。基本自動化パックで対応可能です。",
		Analysis:           "使い方に関する問い合わせは、よくある質問として自動返信でFAQを提供することで、対応時間を短縮しつつ顧客サポートを向上できます。",
		RecommendedTierIDs: []models.TierID{basic, standard},
	},
	{
		ID:                 "product",
		Keywords:           []string{"商品", "商品について", "商品は", "製品"},
		Message:            "分析が完了しました！商品に関する問い合わせは、自動返信で基本情報を提供し、詳細な質問は担当者に通知する仕組みが効果的です。",
		Analysis:           "商品に関する問い合わせは、自動返信で基本情報を提供し、複雑な質問やカスタマイズの相談は担当者に通知する二段階の対応が最適です。",
		RecommendedTierIDs: []models.TierID{standard, premium},
	},
	{
		ID:                 "deadline",
		Keywords:           []string{"期限", "期間", "いつまで", "期限は", "有効期限"},
		Message:            "分析が完了しました！期限に関する問い合わせは、自動返信で正確な情報を提供できます。基本自動化パックで十分に対応できます。",
		Analysis:           "期限に関する問い合わせは、固定情報のため自動返信に最適です。24時間いつでも正確な情報を提供できるため、顧客の不安を解消できます。",
		RecommendedTierIDs: []models.TierID{basic, standard},
	},
	{
		ID:                 "support",
		Keywords:           []string{"対応", "対応は", "対応できますか", "対応して"},
		Message:            "分析が完了しました！対応に関する問い合わせは、自動返信で対応可能な内容を案内し、必要に応じて担当者に通知する仕組みが効果的です。",
		Analysis:           "対応に関する問い合わせは、自動返信で対応可能な内容を案内し、複雑なケースは担当者に通知する仕組みにより、効率的に対応できます。",
		RecommendedTierIDs: []models.TierID{standard, premium},
	},
	{
		ID:                 "busy",
		Keywords:           []string{"忙しい", "時間がない", "人手不足", "対応できない"},
		Message:            "分析が完了しました！対応に追われている状況こそ、自動化の効果が最も発揮されます。標準自動化パックで業務負荷を大幅に軽減できます。",
		Analysis:           "対応に追われている状況では、自動返信により基本的な問い合わせを自動化し、重要な問い合わせのみに集中できるようになります。",
		RecommendedTierIDs: []models.TierID{standard, premium},
	},
	{
		ID:                 "after_hours",
		Keywords:           []string{"24時間", "営業時間外", "夜間", "休日"},
		Message:            "分析が完了しました！営業時間外の問い合わせ対応は、自動返信機能により24時間対応が可能になります。標準自動化パックがおすすめです。",
		Analysis:           "営業時間外の問い合わせは、自動返信により即座に回答でき、顧客満足度が向上します。翌営業日に担当者がフォローアップする仕組みが効果的です。",
		RecommendedTierIDs: []models.TierID{standard, premium},
	},
	{
		ID:                 "repetition",
		Keywords:           []string{"同じ", "繰り返し", "何度も", "毎回"},
		Message:            "分析が完了しました！同じ質問が繰り返される場合、自動返信で対応することで大幅な時間短縮が可能です。基本自動化パックから始めるのがおすすめです。",
		Analysis:           "同じ質問が繰り返される場合、自動返信により対応時間を大幅に短縮できます。よくある質問を自動化することで、本業に集中できるようになります。",
		RecommendedTierIDs: []models.TierID{basic, standard},
	},
	{
		ID:                 "missed_reply",
		Keywords:           []string{"対応漏れ", "返信遅れ", "忘れる", "見落とし"},
		Message:            "分析が完了しました！対応漏れや返信遅れを防ぐため、自動返信と通知機能の組み合わせが効果的です。標準自動化パックで対応漏れを防止できます。",
		Analysis:           "対応漏れや返信遅れを防ぐため、自動返信で基本対応を確実に行い、重要な問い合わせは通知機能で担当者に確実に伝える仕組みが効果的です。",
		RecommendedTierIDs: []models.TierID{standard, premium},
	},
	{
		ID:                 "efficiency",
		Keywords:           []string{"効率化", "自動化", "楽に", "簡単に"},
		Message:            "分析が完了しました！効率化を目指す場合、段階的な自動化が効果的です。まずは基本自動化パックから始めて、必要に応じて拡張することをおすすめします。",
		Analysis:           "効率化を目指す場合、まずはよくある質問を自動化し、徐々に範囲を広げていく段階的なアプローチが効果的です。",
		RecommendedTierIDs: []models.TierID{basic, standard, premium},
	},
	{
		ID:                 "small_business",
		Keywords:           []string{"小規模", "個人", "少人数", "一人"},
		Message:            "分析が完了しました！小規模事業者向けに、無理のない範囲で自動化を進めることが重要です。基本自動化パックから始めるのがおすすめです。",
		Analysis:           "小規模事業者では、まずは基本的な自動返信から始め、徐々に機能を拡張していく段階的なアプローチが効果的です。",
		RecommendedTierIDs: []models.TierID{basic, standard},
	},
}

// Templates returns the free-text template table
func Templates() []models.Template {
	return append([]models.Template(nil), templates...)
}
