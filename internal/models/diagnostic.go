package models

// Template is a static free-text rule mapping trigger keywords to a canned recommendation
type Template struct {
	ID                 string
	Keywords           []string
	Message            string
	Analysis           string
	RecommendedTierIDs []TierID
}

// Complexity is the heuristic difficulty of an inquiry that matched no template
type Complexity string

const (
	ComplexitySimple  Complexity = "simple"
	ComplexityMedium  Complexity = "medium"
	ComplexityComplex Complexity = "complex"
)

// InquiryAnalysis is the intermediate result of scanning free text
type InquiryAnalysis struct {
	Complexity      Complexity `json:"complexity"`
	ChannelCount    int        `json:"channelCount"`
	MatchedTemplate *Template  `json:"-"`
}

// TemplateID returns the matched template id or "" when no template matched
func (a InquiryAnalysis) TemplateID() string {
	if a.MatchedTemplate == nil {
		return ""
	}
	return a.MatchedTemplate.ID
}

// DiagnosticSelection is the set of checked tags submitted by the selection UI
type DiagnosticSelection struct {
	InquiryTypes []string `json:"inquiryTypes"`
	Channels     []string `json:"channels"`
}

// Normalize drops unknown tags and duplicates, keeping first-seen order
func (s DiagnosticSelection) Normalize(knownTypes, knownChannels map[string]bool) DiagnosticSelection {
	return DiagnosticSelection{
		InquiryTypes: filterKnown(s.InquiryTypes, knownTypes),
		Channels:     filterKnown(s.Channels, knownChannels),
	}
}

// HasType reports whether id is among the inquiry types
func (s DiagnosticSelection) HasType(id string) bool {
	return contains(s.InquiryTypes, id)
}

// HasChannel reports whether id is among the channels
func (s DiagnosticSelection) HasChannel(id string) bool {
	return contains(s.Channels, id)
}

// IsEmpty reports whether nothing was selected
func (s DiagnosticSelection) IsEmpty() bool {
	return len(s.InquiryTypes) == 0 && len(s.Channels) == 0
}

// DiagnosticResponse is the classifier output consumed by the page
type DiagnosticResponse struct {
	AIMessage string `json:"aiMessage"`
	Patterns  []Tier `json:"patterns"`
	Analysis  string `json:"analysis"`
}

// TopTier returns the id of the first recommended tier or "" when there is none
func (r DiagnosticResponse) TopTier() TierID {
	if len(r.Patterns) == 0 {
		return ""
	}
	return r.Patterns[0].ID
}

// ValidationResult is the outcome of checking free text before classification
type ValidationResult struct {
	IsValid      bool   `json:"isValid"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

func filterKnown(ids []string, known map[string]bool) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if !known[id] || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
