package llm

import (
	"fmt"
	"strings"

	"github.com/hafljin/inquiry-automation/internal/models"
)

// Role selects the assistant persona
type Role string

const (
	RoleDiagnostic Role = "diagnostic"
	RoleChat       Role = "chat"
)

// BusinessContext is the static knowledge handed to the model
type BusinessContext struct {
	BusinessName string
	Tiers        []models.Tier
	Schedule     []models.BusinessHours
}

// BuildSystemPrompt renders the system prompt for a role
func BuildSystemPrompt(role Role, bc BusinessContext) string {
	var sb strings.Builder

	switch role {
	case RoleChat:
		sb.WriteString(fmt.Sprintf("あなたは%sの問い合わせ対応アシスタントです。\n", bc.BusinessName))
		sb.WriteString("お客様からの質問に、丁寧かつ簡潔に日本語で回答してください。\n\n")
	default:
		sb.WriteString(fmt.Sprintf("あなたは%sの業務自動化コンサルタントです。\n", bc.BusinessName))
		sb.WriteString("事業者の問い合わせ内容を読み、最適な自動化パックを1つ推薦し、その理由を2〜3文の日本語で説明してください。\n\n")
	}

	if len(bc.Tiers) > 0 {
		sb.WriteString("=== 自動化パック ===\n")
		for _, t := range bc.Tiers {
			sb.WriteString(fmt.Sprintf("- %s（%s）: %s\n", t.Name, t.PriceRange, t.Description))
			for _, f := range t.Features {
				sb.WriteString(fmt.Sprintf("  ・%s\n", f))
			}
		}
		sb.WriteString("\n")
	}

	if len(bc.Schedule) > 0 {
		sb.WriteString("=== 営業時間 ===\n")
		for _, h := range bc.Schedule {
			if h.IsHoliday {
				sb.WriteString(fmt.Sprintf("- %s: 定休日\n", h.DayOfWeek))
				continue
			}
			sb.WriteString(fmt.Sprintf("- %s: %s - %s\n", h.DayOfWeek, h.Open, h.Close))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("指示:\n")
	sb.WriteString("- 上記の情報だけを使って回答してください\n")
	sb.WriteString("- 分からないことは正直に分からないと伝えてください\n")
	sb.WriteString("- 存在しない情報を作らないでください\n")

	return sb.String()
}
