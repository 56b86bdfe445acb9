// Package catalog holds the static service tiers and the selectable option tags.
package catalog

import (
	apperrors "github.com/hafljin/inquiry-automation/internal/errors"
	"github.com/hafljin/inquiry-automation/internal/models"
)

const (
	maxSuitability  = 100
	suitabilityStep = 20
)

var tiers = []models.Tier{
	{
		ID:          models.TierBasic,
		Name:        "基本自動化パック",
		Description: "よくある質問の自動返信を実現。シンプルで導入しやすいパターンです。",
		Features: []string{
			"よくある質問の自動返信（最大10パターン）",
			"LINEまたはメールのいずれか1系統",
			"基本的なFAQ管理",
			"導入サポート（3日間）",
		},
		PriceRange: "〜10万円",
	},
	{
		ID:          models.TierStandard,
		Name:        "標準自動化パック",
		Description: "複数チャネル対応と高度な自動化機能。多くの事業者に最適なバランス型です。",
		Features: []string{
			"複数チャネル対応（LINE/メール/フォームから2系統）",
			"よくある質問の自動返信（最大30パターン）",
			"営業時間外の自動対応",
			"重要度判定による通知機能",
			"導入サポート（5日間）",
		},
		PriceRange: "10万円〜20万円",
	},
	{
		ID:          models.TierPremium,
		Name:        "プレミアム自動化パック",
		Description: "完全自動化とカスタマイズ対応。本格的な業務効率化を実現します。",
		Features: []string{
			"全チャネル対応（LINE/メール/フォーム）",
			"無制限の自動返信パターン",
			"AIによる文脈理解と柔軟な応答",
			"CRM連携機能",
			"カスタムワークフロー構築",
			"導入サポート（10日間）+ 運用サポート（3ヶ月）",
		},
		PriceRange: "20万円〜",
	},
}

var byID = func() map[models.TierID]models.Tier {
	m := make(map[models.TierID]models.Tier, len(tiers))
	for _, t := range tiers {
		m[t.ID] = t
	}
	return m
}()

// Get returns a copy of the tier with the given id
func Get(id models.TierID) (models.Tier, bool) {
	t, ok := byID[id]
	if !ok {
		return models.Tier{}, false
	}
	return t.Clone(), true
}

// All returns copies of every tier in catalog order
func All() []models.Tier {
	out := make([]models.Tier, len(tiers))
	for i, t := range tiers {
		out[i] = t.Clone()
	}
	return out
}

// Default is the tier shown when a recommendation resolves to nothing
func Default() models.Tier {
	t, _ := Get(models.TierStandard)
	return t
}

// Suitability converts a rank position into the display score
func Suitability(rank int) int {
	s := maxSuitability - suitabilityStep*rank
	if s < 0 {
		return 0
	}
	return s
}

// Rank materializes recommended ids into tiers with rank-based suitability.
// Unknown ids are dropped but keep their position, so the following tier is scored by its index.
func Rank(ids []models.TierID) []models.Tier {
	out := make([]models.Tier, 0, len(ids))
	for i, id := range ids {
		t, ok := Get(id)
		if !ok {
			continue
		}
		t.Suitability = Suitability(i)
		out = append(out, t)
	}
	if len(out) == 0 {
		t := Default()
		t.Suitability = maxSuitability
		out = append(out, t)
	}
	return out
}

// Verify checks that every tier referenced by a rule source exists
func Verify(refs map[string][]models.TierID) error {
	var errs apperrors.MultiError
	for source, ids := range refs {
		for _, id := range ids {
			if _, ok := byID[id]; !ok {
				errs.Add(apperrors.CatalogError{TierID: string(id), Source: source})
			}
		}
	}
	return errs.ErrOrNil()
}
