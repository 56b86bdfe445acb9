package diagnostic

import (
	"context"

	"github.com/hafljin/inquiry-automation/internal/catalog"
	"github.com/hafljin/inquiry-automation/internal/chat"
	"github.com/hafljin/inquiry-automation/internal/classifier"
	"github.com/hafljin/inquiry-automation/internal/llm"
	"github.com/hafljin/inquiry-automation/internal/models"
)

// Result is an engine response with the outcome label used for counting
type Result struct {
	Response models.DiagnosticResponse
	Outcome  string
}

// Reply is a chat reply with its topic
type Reply struct {
	Bot   models.BotReply
	Topic string
}

// Engine produces recommendations and chat replies
type Engine interface {
	AnalyzeInquiry(ctx context.Context, text string) (Result, error)
	AnalyzeBySelection(ctx context.Context, sel models.DiagnosticSelection) Result
	Reply(ctx context.Context, message string) Reply
	Name() string
}

// RuleEngine is the deterministic keyword engine
type RuleEngine struct {
	classifier *classifier.Classifier
	responder  *chat.Responder
}

// NewRuleEngine creates a rule engine
func NewRuleEngine(c *classifier.Classifier, r *chat.Responder) *RuleEngine {
	return &RuleEngine{classifier: c, responder: r}
}

// Name identifies the engine in logs and usage events
func (e *RuleEngine) Name() string { return "rules" }

// AnalyzeInquiry classifies free text against the keyword templates
func (e *RuleEngine) AnalyzeInquiry(ctx context.Context, text string) (Result, error) {
	resp, outcome, err := e.classifier.Evaluate(text)
	if err != nil {
		return Result{}, err
	}
	return Result{Response: resp, Outcome: outcome}, nil
}

// AnalyzeBySelection ranks tiers from the checked inquiry kinds and channels
func (e *RuleEngine) AnalyzeBySelection(ctx context.Context, sel models.DiagnosticSelection) Result {
	resp, branch := classifier.ClassifyBySelection(sel)
	return Result{Response: resp, Outcome: string(branch)}
}

// Reply answers a chat message from the keyword topics and shop schedule
func (e *RuleEngine) Reply(ctx context.Context, message string) Reply {
	return Reply{Bot: e.responder.Respond(message), Topic: e.responder.Topic(message)}
}

// LLMEngine keeps the rule ranking but lets a hosted model write the headline and chat replies
type LLMEngine struct {
	rules      *RuleEngine
	generator  *llm.Generator
	diagPrompt string
	chatPrompt string
}

// NewLLMEngine creates an LLM-backed engine
func NewLLMEngine(rules *RuleEngine, generator *llm.Generator, businessName string) *LLMEngine {
	bc := llm.BusinessContext{
		BusinessName: businessName,
		Tiers:        catalog.All(),
		Schedule:     rules.responder.Schedule(),
	}
	return &LLMEngine{
		rules:      rules,
		generator:  generator,
		diagPrompt: llm.BuildSystemPrompt(llm.RoleDiagnostic, bc),
		chatPrompt: llm.BuildSystemPrompt(llm.RoleChat, bc),
	}
}

// Name identifies the engine in logs and usage events
func (e *LLMEngine) Name() string { return "llm" }

// AnalyzeInquiry ranks with rules, then asks the model for the headline message
func (e *LLMEngine) AnalyzeInquiry(ctx context.Context, text string) (Result, error) {
	res, err := e.rules.AnalyzeInquiry(ctx, text)
	if err != nil {
		return Result{}, err
	}
	if res.Outcome == classifier.OutcomeFailed {
		return res, nil
	}
	res.Response.AIMessage = e.generator.Generate(ctx, e.diagPrompt, text)
	return res, nil
}

// AnalyzeBySelection stays on rules; selections carry no text for a model to read
func (e *LLMEngine) AnalyzeBySelection(ctx context.Context, sel models.DiagnosticSelection) Result {
	return e.rules.AnalyzeBySelection(ctx, sel)
}

// Reply hands the chat message to the model, falling back to its apology text
func (e *LLMEngine) Reply(ctx context.Context, message string) Reply {
	text := e.generator.Generate(ctx, e.chatPrompt, message)
	return Reply{
		Bot:   models.BotReply{Message: text, Timestamp: e.rules.responder.Now()},
		Topic: "llm",
	}
}
