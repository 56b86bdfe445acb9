// Package diagnostic exposes the four inquiry entry points over a pluggable engine.
package diagnostic

import (
	"context"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/hafljin/inquiry-automation/internal/catalog"
	"github.com/hafljin/inquiry-automation/internal/classifier"
	"github.com/hafljin/inquiry-automation/internal/logger"
	"github.com/hafljin/inquiry-automation/internal/metrics"
	"github.com/hafljin/inquiry-automation/internal/models"
	"github.com/hafljin/inquiry-automation/internal/usage"
	"github.com/hafljin/inquiry-automation/internal/validator"
	"github.com/hafljin/inquiry-automation/pkg/utils"
)

// ChatUnavailableMessage is the reply when the chat path fails internally
const ChatUnavailableMessage = "申し訳ございません。ただいま応答できません。しばらくしてから再度お試しください。"

// Delays are the simulated processing times of each entry point
type Delays struct {
	Text      time.Duration
	Selection time.Duration
	Chat      time.Duration
}

// Sleeper waits for d or until ctx is done
type Sleeper func(ctx context.Context, d time.Duration)

// ContextSleep is the default Sleeper
func ContextSleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

// Service wraps an engine with delays, in-flight dedupe, usage counting and panic recovery.
// Each caller waits out its own delay; the shared evaluation runs detached from any one
// caller's cancellation and is bounded by the engine's own timeouts.
type Service struct {
	engine Engine
	usage  usage.Recorder
	delays Delays
	sleep  Sleeper
	now    func() time.Time
	group  singleflight.Group
}

// Option configures a Service
type Option func(*Service)

// WithUsage counts outcomes in r
func WithUsage(r usage.Recorder) Option {
	return func(s *Service) { s.usage = r }
}

// WithDelays sets the simulated delays
func WithDelays(d Delays) Option {
	return func(s *Service) { s.delays = d }
}

// WithSleeper replaces the sleeper
func WithSleeper(fn Sleeper) Option {
	return func(s *Service) { s.sleep = fn }
}

// WithClock replaces the clock used for usage events
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a service. Without options it has no delays and counts nothing.
func NewService(engine Engine, opts ...Option) *Service {
	s := &Service{
		engine: engine,
		sleep:  ContextSleep,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// EngineName returns the active engine
func (s *Service) EngineName() string {
	return s.engine.Name()
}

// Usage returns the recorder, or nil
func (s *Service) Usage() usage.Recorder {
	return s.usage
}

// ValidateInquiry checks free text without classifying it
func (s *Service) ValidateInquiry(text string) models.ValidationResult {
	return validator.Validate(text)
}

// AnalyzeInquiry validates and classifies free text; invalid text returns *errors.InquiryValidationError
func (s *Service) AnalyzeInquiry(ctx context.Context, text string) (models.DiagnosticResponse, error) {
	start := time.Now()
	log := logger.WithContext(ctx)

	// rejected text answers immediately
	if validator.Validate(text).IsValid {
		s.sleep(ctx, s.delays.Text)
	}

	v, err, _ := s.group.Do("text:"+utils.HashString(text), func() (any, error) {
		return s.analyzeText(context.WithoutCancel(ctx), text)
	})

	if err != nil {
		s.record(ctx, usage.KindText, "invalid", start)
		log.Info("Inquiry rejected", "input_hash", utils.ShortHash(text), "length", utils.RuneLen(text))
		return models.DiagnosticResponse{}, err
	}

	res := v.(Result)
	s.record(ctx, usage.KindText, res.Outcome, start)
	log.Info("Inquiry analyzed",
		"engine", s.engine.Name(),
		"outcome", res.Outcome,
		"top_tier", res.Response.TopTier(),
		"input_hash", utils.ShortHash(text),
		"length", utils.RuneLen(text),
	)
	return res.Response, nil
}

func (s *Service) analyzeText(ctx context.Context, text string) (res Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.WithContext(ctx).Error("Text engine panicked", "panic", r, "input_hash", utils.ShortHash(text))
			res = Result{Response: classifier.TextApology(), Outcome: classifier.OutcomeFailed}
			err = nil
		}
	}()
	return s.engine.AnalyzeInquiry(ctx, text)
}

// AnalyzeBySelection maps checked tags to a recommendation and never fails
func (s *Service) AnalyzeBySelection(ctx context.Context, sel models.DiagnosticSelection) models.DiagnosticResponse {
	start := time.Now()

	s.sleep(ctx, s.delays.Selection)
	v, _, _ := s.group.Do("selection:"+selectionKey(sel), func() (any, error) {
		return s.analyzeSelection(context.WithoutCancel(ctx), sel), nil
	})

	res := v.(Result)
	s.record(ctx, usage.KindSelection, res.Outcome, start)
	logger.WithContext(ctx).Info("Selection analyzed",
		"outcome", res.Outcome,
		"inquiry_types", len(sel.InquiryTypes),
		"channels", len(sel.Channels),
	)
	return res.Response
}

func (s *Service) analyzeSelection(ctx context.Context, sel models.DiagnosticSelection) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			logger.WithContext(ctx).Error("Selection engine panicked", "panic", r)
			res = Result{Response: classifier.TextApology(), Outcome: string(classifier.BranchFailed)}
		}
	}()
	return s.engine.AnalyzeBySelection(ctx, sel)
}

// GetBotResponse answers a chat message and never fails
func (s *Service) GetBotResponse(ctx context.Context, message string) models.BotReply {
	start := time.Now()

	s.sleep(ctx, s.delays.Chat)
	v, _, _ := s.group.Do("chat:"+utils.HashString(message), func() (any, error) {
		return s.reply(context.WithoutCancel(ctx), message), nil
	})

	r := v.(Reply)
	s.record(ctx, usage.KindChat, r.Topic, start)
	logger.WithContext(ctx).Info("Chat answered",
		"topic", r.Topic,
		"input_hash", utils.ShortHash(message),
		"length", utils.RuneLen(message),
	)
	return r.Bot
}

func (s *Service) reply(ctx context.Context, message string) (r Reply) {
	defer func() {
		if p := recover(); p != nil {
			logger.WithContext(ctx).Error("Chat engine panicked", "panic", p, "input_hash", utils.ShortHash(message))
			r = Reply{
				Bot:   models.BotReply{Message: ChatUnavailableMessage, Timestamp: s.now()},
				Topic: "failed",
			}
		}
	}()
	return s.engine.Reply(ctx, message)
}

func (s *Service) record(ctx context.Context, kind usage.Kind, outcome string, start time.Time) {
	metrics.RecordDiagnostic(string(kind), outcome)
	metrics.RecordDiagnosticDuration(string(kind), time.Since(start))

	if s.usage == nil {
		return
	}
	if err := s.usage.Record(ctx, usage.Event{Kind: kind, Outcome: outcome, At: s.now()}); err != nil {
		logger.WithContext(ctx).Warn("usage record failed", "kind", kind, "error", err)
	}
}

// selectionKey is order-insensitive over the known tags
func selectionKey(sel models.DiagnosticSelection) string {
	n := catalog.NormalizeSelection(sel)
	types := append([]string(nil), n.InquiryTypes...)
	channels := append([]string(nil), n.Channels...)
	sort.Strings(types)
	sort.Strings(channels)
	return strings.Join(types, ",") + "|" + strings.Join(channels, ",")
}
