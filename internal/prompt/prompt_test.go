package prompt

import (
	"strings"
	"testing"
)

func TestInstructionForExplainDepths(t *testing.T) {
	brief := InstructionFor(ModeExplain, DepthBrief)
	if !strings.Contains(brief, "一句話") {
		t.Fatalf("brief depth must ask for a one-sentence definition: %q", brief)
	}

	standard := InstructionFor(ModeExplain, DepthStandard)
	extended := InstructionFor(ModeExplain, DepthExtended)
	if brief == standard || standard == extended || brief == extended {
		t.Fatalf("the three depths must produce distinct instructions")
	}

	// Unknown and absent depths fall back to the standard instruction.
	if InstructionFor(ModeExplain, "unknown") != standard {
		t.Fatalf("unknown depth must fall back to standard")
	}
	if InstructionFor(ModeExplain, "") != standard {
		t.Fatalf("absent depth must fall back to standard")
	}
}

func TestInstructionForTranslateAndUnknownMode(t *testing.T) {
	if InstructionFor(ModeTranslate, "") == "" {
		t.Fatalf("translate mode must have a fixed instruction")
	}
	// Depth is irrelevant to translation.
	if InstructionFor(ModeTranslate, DepthBrief) != InstructionFor(ModeTranslate, "") {
		t.Fatalf("translate instruction must not vary by depth")
	}
	if InstructionFor("chitchat", "") != "" {
		t.Fatalf("unknown mode must yield an empty instruction")
	}
}

func TestTagLookups(t *testing.T) {
	if TagFor(ModeTranslate) != "vocab" {
		t.Fatalf("translation requests tag as vocab")
	}
	if TagFor("question") != "question" || TagFor("idea") != "idea" {
		t.Fatalf("note categories map to themselves")
	}
	if TagFor("whatever") != DefaultTag {
		t.Fatalf("unrecognized category must use the default tag")
	}

	if ExplainTag(DepthBrief) != "explain_brief" {
		t.Fatalf("unexpected brief tag")
	}
	if ExplainTag("unknown") != ExplainTag(DepthStandard) {
		t.Fatalf("unknown depth tags as standard")
	}
}
