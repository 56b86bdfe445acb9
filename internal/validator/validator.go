// Package validator rejects free-text inquiries that are empty, too short or meaningless.
package validator

import (
	"regexp"
	"strings"

	"github.com/hafljin/inquiry-automation/internal/models"
	"github.com/hafljin/inquiry-automation/pkg/utils"
)

const (
	// MinLength is the minimum number of characters after trimming
	MinLength = 20
	// SpecificLength is the length from which text without any domain keyword is still accepted
	SpecificLength = 50
)

const examples = "\n例：「送料はいくらですか？」「予約のキャンセルはできますか？」など"

// Visitor-facing messages
const (
	MsgEmpty       = "問い合わせ内容を入力してください。"
	MsgTooShort    = "問い合わせ内容は20文字以上で入力してください。" + examples
	MsgMeaningless = "問い合わせ内容を具体的に入力してください。" + examples
	MsgUnspecific  = "問い合わせ内容をより具体的に入力してください。" + examples
)

var meaninglessPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^[あいうえお]{1,5}$`),
	regexp.MustCompile(`(?i)^[a-z]{1,5}$`),
	regexp.MustCompile(`^[0-9]{1,5}$`),
	regexp.MustCompile(`^[あ-ん]{1,3}$`),
	regexp.MustCompile(`^(あ+|い+|う+|え+|お+)$`),
}

var inquiryKeywords = []string{
	// questions
	"送料", "価格", "料金", "いくら", "値段", "費用", "お値段", "値段は",
	"営業時間", "時間", "何時", "いつ", "開店", "閉店", "定休日",
	"場所", "住所", "アクセス", "どこ", "場所は", "所在地",
	"キャンセル", "返金", "返品", "交換", "変更", "修正",
	"予約", "予約は", "予約できますか", "予約したい",
	"在庫", "在庫は", "在庫ありますか", "ありますか",
	"対応", "問い合わせ", "お問い合わせ", "質問", "聞きたい",
	"LINE", "メール", "フォーム", "連絡", "連絡先",
	"サービス", "商品", "商品について", "商品は",
	"使い方", "使用方法", "使い方は", "方法",
	"期限", "期間", "いつまで", "期限は",
	"条件", "要件", "必要", "必要です",
	// politeness
	"お願い", "お願いします", "よろしく", "お願いいたします",
	"教えて", "教えてください", "知りたい", "知りたいです",
}

// Validate checks free text before it is classified
func Validate(text string) models.ValidationResult {
	trimmed := strings.TrimSpace(text)

	if trimmed == "" {
		return invalid(MsgEmpty)
	}

	if utils.RuneLen(trimmed) < MinLength {
		return invalid(MsgTooShort)
	}

	if IsMeaningless(trimmed) {
		return invalid(MsgMeaningless)
	}

	if !HasInquiryKeyword(trimmed) && utils.RuneLen(trimmed) < SpecificLength {
		return invalid(MsgUnspecific)
	}

	return models.ValidationResult{IsValid: true}
}

// IsMeaningless reports whether text matches one of the placeholder-input patterns
func IsMeaningless(text string) bool {
	for _, p := range meaninglessPatterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

// HasInquiryKeyword reports whether text mentions at least one domain keyword (case-sensitive)
func HasInquiryKeyword(text string) bool {
	return utils.ContainsAny(text, inquiryKeywords)
}

func invalid(msg string) models.ValidationResult {
	return models.ValidationResult{IsValid: false, ErrorMessage: msg}
}
