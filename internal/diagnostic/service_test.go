package diagnostic

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hafljin/inquiry-automation/internal/catalog"
	"github.com/hafljin/inquiry-automation/internal/chat"
	"github.com/hafljin/inquiry-automation/internal/classifier"
	apperrors "github.com/hafljin/inquiry-automation/internal/errors"
	"github.com/hafljin/inquiry-automation/internal/llm"
	"github.com/hafljin/inquiry-automation/internal/models"
	"github.com/hafljin/inquiry-automation/internal/usage"
	"github.com/hafljin/inquiry-automation/internal/validator"
)

var fixedNow = time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)

const shippingText = "送料は全国一律でしょうか、教えていただけますか"

func newRuleEngine() *RuleEngine {
	return NewRuleEngine(classifier.New(), chat.NewResponderWithClock(chat.DefaultSchedule, func() time.Time { return fixedNow }))
}

func noSleep(context.Context, time.Duration) {}

type panicEngine struct{}

func (panicEngine) Name() string { return "panic" }
func (panicEngine) AnalyzeInquiry(context.Context, string) (Result, error) {
	panic("boom")
}
func (panicEngine) AnalyzeBySelection(context.Context, models.DiagnosticSelection) Result {
	panic("boom")
}
func (panicEngine) Reply(context.Context, string) Reply {
	panic("boom")
}

type stubProvider struct {
	reply string
	err   error
	calls int32
}

func (p *stubProvider) Name() string { return "stub" }
func (p *stubProvider) GenerateResponse(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	atomic.AddInt32(&p.calls, 1)
	return p.reply, p.err
}

func TestService_AnalyzeInquiry(t *testing.T) {
	rec := usage.NewMemoryRecorder()
	svc := NewService(newRuleEngine(), WithUsage(rec), WithSleeper(noSleep), WithClock(func() time.Time { return fixedNow }))

	resp, err := svc.AnalyzeInquiry(context.Background(), shippingText)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if resp.TopTier() != models.TierBasic {
		t.Errorf("Expected top tier %s, got %s", models.TierBasic, resp.TopTier())
	}

	snap, _ := rec.Snapshot(context.Background(), fixedNow)
	if snap["text:shipping"] != 1 {
		t.Errorf("Expected text:shipping counted once, got %v", snap)
	}
}

func TestService_AnalyzeInquiryInvalid(t *testing.T) {
	rec := usage.NewMemoryRecorder()
	svc := NewService(newRuleEngine(), WithUsage(rec), WithSleeper(noSleep), WithClock(func() time.Time { return fixedNow }))

	_, err := svc.AnalyzeInquiry(context.Background(), "短い")
	var verr *apperrors.InquiryValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Expected validation error, got %v", err)
	}
	if verr.Message != validator.MsgTooShort {
		t.Errorf("Expected %s, got %s", validator.MsgTooShort, verr.Message)
	}

	snap, _ := rec.Snapshot(context.Background(), fixedNow)
	if snap["text:invalid"] != 1 {
		t.Errorf("Expected text:invalid counted once, got %v", snap)
	}
}

func TestService_ValidateInquiry(t *testing.T) {
	svc := NewService(newRuleEngine())

	if r := svc.ValidateInquiry(""); r.IsValid || r.ErrorMessage != validator.MsgEmpty {
		t.Errorf("Expected empty rejection, got %+v", r)
	}
	if r := svc.ValidateInquiry(shippingText); !r.IsValid {
		t.Errorf("Expected valid, got %+v", r)
	}
}

func TestService_AnalyzeBySelection(t *testing.T) {
	rec := usage.NewMemoryRecorder()
	svc := NewService(newRuleEngine(), WithUsage(rec), WithSleeper(noSleep), WithClock(func() time.Time { return fixedNow }))

	resp := svc.AnalyzeBySelection(context.Background(), models.DiagnosticSelection{
		InquiryTypes: []string{catalog.TypeHours},
		Channels:     []string{catalog.ChannelLINE},
	})
	if resp.TopTier() != models.TierBasic {
		t.Errorf("Expected top tier %s, got %s", models.TierBasic, resp.TopTier())
	}

	snap, _ := rec.Snapshot(context.Background(), fixedNow)
	if snap["selection:"+string(classifier.BranchFixedAnswers)] != 1 {
		t.Errorf("Expected fixed answers branch counted, got %v", snap)
	}
}

func TestService_GetBotResponse(t *testing.T) {
	rec := usage.NewMemoryRecorder()
	svc := NewService(newRuleEngine(), WithUsage(rec), WithSleeper(noSleep), WithClock(func() time.Time { return fixedNow }))

	reply := svc.GetBotResponse(context.Background(), "今日はやっていますか")
	if reply.Message != "本日（水曜日）は定休日です。" {
		t.Errorf("Expected holiday reply, got %s", reply.Message)
	}
	if !reply.Timestamp.Equal(fixedNow) {
		t.Errorf("Expected timestamp %v, got %v", fixedNow, reply.Timestamp)
	}

	snap, _ := rec.Snapshot(context.Background(), fixedNow)
	if snap["chat:"+chat.TopicToday] != 1 {
		t.Errorf("Expected chat:today counted, got %v", snap)
	}
}

func TestService_PanicsDegrade(t *testing.T) {
	svc := NewService(panicEngine{}, WithSleeper(noSleep), WithClock(func() time.Time { return fixedNow }))
	ctx := context.Background()

	resp, err := svc.AnalyzeInquiry(ctx, shippingText)
	if err != nil {
		t.Fatalf("Expected apology without error, got %v", err)
	}
	if resp.AIMessage != classifier.ApologyMessage {
		t.Errorf("Expected apology, got %s", resp.AIMessage)
	}

	sel := svc.AnalyzeBySelection(ctx, models.DiagnosticSelection{InquiryTypes: []string{catalog.TypeHours}})
	if sel.AIMessage != classifier.ApologyMessage || sel.Patterns == nil || len(sel.Patterns) != 0 {
		t.Errorf("Expected selection apology with empty patterns, got %+v", sel)
	}

	reply := svc.GetBotResponse(ctx, "営業時間は？")
	if reply.Message != ChatUnavailableMessage {
		t.Errorf("Expected %s, got %s", ChatUnavailableMessage, reply.Message)
	}
	if !reply.Timestamp.Equal(fixedNow) {
		t.Errorf("Expected timestamp %v, got %v", fixedNow, reply.Timestamp)
	}
}

func TestService_DelayHonorsCancellation(t *testing.T) {
	svc := NewService(newRuleEngine(), WithDelays(Delays{Text: time.Hour}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		resp, err := svc.AnalyzeInquiry(ctx, shippingText)
		if err != nil {
			t.Errorf("Unexpected error: %v", err)
		}
		if resp.TopTier() != models.TierBasic {
			t.Errorf("Expected top tier %s, got %s", models.TierBasic, resp.TopTier())
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Expected cancelled context to skip the delay")
	}
}

func TestService_ConcurrentCallsShareOneEvaluation(t *testing.T) {
	provider := &stubProvider{reply: "AIからのご提案です"}
	gen := llm.NewGenerator(provider, llm.DefaultGeneratorConfig())
	engine := NewLLMEngine(newRuleEngine(), gen, "テスト店舗")

	release := make(chan struct{})
	sleeper := func(ctx context.Context, d time.Duration) { <-release }
	svc := NewService(engine, WithSleeper(sleeper))

	var wg sync.WaitGroup
	results := make([]string, 5)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp, _ := svc.AnalyzeInquiry(context.Background(), shippingText)
			results[i] = resp.AIMessage
		}(i)
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	for i, msg := range results {
		if msg != "AIからのご提案です" {
			t.Errorf("Result %d: expected model output, got %s", i, msg)
		}
	}
	if n := atomic.LoadInt32(&provider.calls); n < 1 || n > 5 {
		t.Errorf("Expected between 1 and 5 model calls, got %d", n)
	}
}

// ctxProvider blocks until released or until the context it was given is done
type ctxProvider struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (p *ctxProvider) Name() string { return "ctx" }
func (p *ctxProvider) GenerateResponse(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	p.once.Do(func() { close(p.started) })
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-p.release:
		return "いらっしゃいませ", nil
	}
}

func TestService_CancelledCallerDoesNotFailOthers(t *testing.T) {
	provider := &ctxProvider{started: make(chan struct{}), release: make(chan struct{})}
	engine := NewLLMEngine(newRuleEngine(), llm.NewGenerator(provider, llm.DefaultGeneratorConfig()), "テスト店舗")
	svc := NewService(engine, WithSleeper(noSleep))

	ctxA, cancelA := context.WithCancel(context.Background())
	defer cancelA()

	var wg sync.WaitGroup
	var replyB models.BotReply
	wg.Add(2)
	go func() {
		defer wg.Done()
		svc.GetBotResponse(ctxA, "こんにちは")
	}()

	<-provider.started
	go func() {
		defer wg.Done()
		replyB = svc.GetBotResponse(context.Background(), "こんにちは")
	}()

	time.Sleep(50 * time.Millisecond)
	cancelA()
	time.Sleep(20 * time.Millisecond)
	close(provider.release)
	wg.Wait()

	if replyB.Message != "いらっしゃいませ" {
		t.Errorf("Expected model reply for the live caller, got %s", replyB.Message)
	}
}

func TestService_InvalidTextSkipsDelay(t *testing.T) {
	var slept int32
	sleeper := func(ctx context.Context, d time.Duration) { atomic.AddInt32(&slept, 1) }
	svc := NewService(newRuleEngine(), WithDelays(Delays{Text: time.Hour}), WithSleeper(sleeper))

	if _, err := svc.AnalyzeInquiry(context.Background(), "短い"); err == nil {
		t.Fatal("Expected validation error")
	}
	if n := atomic.LoadInt32(&slept); n != 0 {
		t.Errorf("Expected no delay for rejected text, slept %d times", n)
	}

	if _, err := svc.AnalyzeInquiry(context.Background(), shippingText); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if n := atomic.LoadInt32(&slept); n != 1 {
		t.Errorf("Expected one delay for valid text, slept %d times", n)
	}
}

func TestLLMEngine(t *testing.T) {
	ctx := context.Background()

	t.Run("Model writes the headline, rules rank", func(t *testing.T) {
		gen := llm.NewGenerator(&stubProvider{reply: "LINE対応ならベーシックで十分です"}, llm.DefaultGeneratorConfig())
		engine := NewLLMEngine(newRuleEngine(), gen, "テスト店舗")

		res, err := engine.AnalyzeInquiry(ctx, shippingText)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if res.Response.AIMessage != "LINE対応ならベーシックで十分です" {
			t.Errorf("Expected model headline, got %s", res.Response.AIMessage)
		}
		if res.Outcome != "shipping" {
			t.Errorf("Expected outcome shipping, got %s", res.Outcome)
		}
		if res.Response.TopTier() != models.TierBasic {
			t.Errorf("Expected rule ranking, got %s", res.Response.TopTier())
		}
	})

	t.Run("Upstream failure uses fallback text", func(t *testing.T) {
		gen := llm.NewGenerator(&stubProvider{err: errors.New("down")}, llm.DefaultGeneratorConfig())
		engine := NewLLMEngine(newRuleEngine(), gen, "テスト店舗")

		reply := engine.Reply(ctx, "こんにちは")
		if reply.Bot.Message != llm.FailureMessage {
			t.Errorf("Expected %s, got %s", llm.FailureMessage, reply.Bot.Message)
		}
		if reply.Topic != "llm" {
			t.Errorf("Expected topic llm, got %s", reply.Topic)
		}
		if !reply.Bot.Timestamp.Equal(fixedNow) {
			t.Errorf("Expected timestamp %v, got %v", fixedNow, reply.Bot.Timestamp)
		}
	})

	t.Run("Invalid text never reaches the model", func(t *testing.T) {
		provider := &stubProvider{reply: "x"}
		engine := NewLLMEngine(newRuleEngine(), llm.NewGenerator(provider, llm.DefaultGeneratorConfig()), "テスト店舗")

		if _, err := engine.AnalyzeInquiry(ctx, ""); err == nil {
			t.Error("Expected validation error")
		}
		if provider.calls != 0 {
			t.Errorf("Expected no model calls, got %d", provider.calls)
		}
	})

	t.Run("Selection stays on rules", func(t *testing.T) {
		provider := &stubProvider{reply: "x"}
		engine := NewLLMEngine(newRuleEngine(), llm.NewGenerator(provider, llm.DefaultGeneratorConfig()), "テスト店舗")

		res := engine.AnalyzeBySelection(ctx, models.DiagnosticSelection{})
		if res.Outcome != string(classifier.BranchEmpty) {
			t.Errorf("Expected empty branch, got %s", res.Outcome)
		}
		if provider.calls != 0 {
			t.Errorf("Expected no model calls, got %d", provider.calls)
		}
	})
}
