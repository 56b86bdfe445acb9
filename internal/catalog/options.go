package catalog

import "github.com/hafljin/inquiry-automation/internal/models"

// Inquiry type tags
const (
	TypeHours       = "hours"
	TypeShipping    = "shipping"
	TypeEstimate    = "estimate"
	TypeDelivery    = "delivery"
	TypeCancel      = "cancel"
	TypeReservation = "reservation"
	TypeStock       = "stock"
	TypeProduct     = "product"
	TypeOther       = "other"
)

// Channel tags
const (
	ChannelLINE     = "line"
	ChannelMail     = "mail"
	ChannelForm     = "form"
	ChannelMultiple = "multiple"
)

var inquiryTypes = []models.Option{
	{ID: TypeHours, Label: "営業時間・定休日"},
	{ID: TypeShipping, Label: "送料・配送方法"},
	{ID: TypeEstimate, Label: "見積もり・料金"},
	{ID: TypeDelivery, Label: "納期・お届け日"},
	{ID: TypeCancel, Label: "キャンセル・返品"},
	{ID: TypeReservation, Label: "予約・日程調整"},
	{ID: TypeStock, Label: "在庫確認"},
	{ID: TypeProduct, Label: "商品・サービス内容"},
	{ID: TypeOther, Label: "その他"},
}

var channels = []models.Option{
	{ID: ChannelLINE, Label: "LINE"},
	{ID: ChannelMail, Label: "メール"},
	{ID: ChannelForm, Label: "問い合わせフォーム"},
	{ID: ChannelMultiple, Label: "複数チャネル"},
}

var (
	knownInquiryTypes = optionSet(inquiryTypes)
	knownChannels     = optionSet(channels)
)

// InquiryTypeOptions returns the selectable inquiry type tags
func InquiryTypeOptions() []models.Option {
	return append([]models.Option(nil), inquiryTypes...)
}

// ChannelOptions returns the selectable channel tags
func ChannelOptions() []models.Option {
	return append([]models.Option(nil), channels...)
}

// NormalizeSelection drops tags that are not part of the option lists
func NormalizeSelection(sel models.DiagnosticSelection) models.DiagnosticSelection {
	return sel.Normalize(knownInquiryTypes, knownChannels)
}

func optionSet(opts []models.Option) map[string]bool {
	m := make(map[string]bool, len(opts))
	for _, o := range opts {
		m[o.ID] = true
	}
	return m
}
