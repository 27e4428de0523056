// Package prompt maps a requested (mode, depth) pair to the system
// instruction governing a model call and to the tag recorded with each
// log row. Pure lookup, no I/O.
package prompt

const (
	ModeTranslate = "translate"
	ModeExplain   = "explain"
)

// Explanation depths as the user types them.
const (
	DepthBrief    = "摘要"
	DepthStandard = "詳解"
	DepthExtended = "延伸"
)

const translateInstruction = "你是一位專業譯者。請將使用者提供的內容翻譯成正式書面的繁體中文," +
	"遇到專業術語時保留原文並附上譯名,不要加入翻譯以外的說明。"

const explainBriefInstruction = "你是一位知識講解助手。請用一句話給出該概念的定義,不要展開、不要舉例。"

const explainStandardInstruction = "你是一位知識講解助手。請清楚說明該概念的定義、背景與運作方式," +
	"以條列或短段落呈現,長度控制在三段以內。"

const explainExtendedInstruction = "你是一位知識講解助手。請深入講解該概念:先給定義與背景," +
	"再提供至少兩個具體例子,最後列出三個相關概念並各用一句話說明其關聯。"

// InstructionFor selects the system instruction for a model call. An
// unknown explain depth falls back to the standard instruction; an
// unknown mode yields no instruction at all.
func InstructionFor(mode, depth string) string {
	switch mode {
	case ModeTranslate:
		return translateInstruction
	case ModeExplain:
		switch depth {
		case DepthBrief:
			return explainBriefInstruction
		case DepthExtended:
			return explainExtendedInstruction
		default:
			return explainStandardInstruction
		}
	}
	return ""
}

const DefaultTag = "note"

var tagTable = map[string]string{
	ModeTranslate: "vocab",
	"question":    "question",
	"idea":        "idea",
	"note":        "note",
}

var explainTags = map[string]string{
	DepthBrief:    "explain_brief",
	DepthStandard: "explain_std",
	DepthExtended: "explain_ext",
}

// TagFor classifies a request category; unrecognized categories get the
// default tag rather than an error.
func TagFor(category string) string {
	if t, ok := tagTable[category]; ok {
		return t
	}
	return DefaultTag
}

// ExplainTag maps an explanation depth to its tag, falling back to the
// standard depth like InstructionFor does.
func ExplainTag(depth string) string {
	if t, ok := explainTags[depth]; ok {
		return t
	}
	return explainTags[DepthStandard]
}
