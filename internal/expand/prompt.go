package expand

import (
	"fmt"
	"strings"

	"slidestudy-ai/internal/deck"
	"slidestudy-ai/internal/knowledge"
)

// BuildPrompt renders the fixed expansion instruction template for one
// slide. It is a pure function: identical inputs always produce identical
// prompt text, with no randomness anywhere.
func BuildPrompt(slide deck.Slide, internalContext string, snippets []knowledge.Snippet) string {
	bullets := emptyMarker
	if len(slide.Bullets) > 0 {
		bullets = "- " + strings.Join(slide.Bullets, "\n- ")
	}
	notes := slide.Notes
	if notes == "" {
		notes = emptyMarker
	}

	var b strings.Builder

	b.WriteString(`You are a study assistant helping a student review for an exam. Expand one
page of a lecture deck into a structured study note, combining the page with
related pages from the same deck and with external knowledge snippets.

Hard rules:
1. Reason only from the evidence below: the current slide, the related
   slides retrieved from the deck, and the external knowledge snippets.
2. If the evidence does not support a conclusion, number or definition,
   write "uncertain / needs checking" instead of asserting it. Never invent.
3. Tag key claims with their origin at the end of the sentence: [slide],
   [retrieval], or [source: <label>], e.g. [source: arxiv].

Before writing the final note, run a two-stage review:
1. Consistency check: review your draft for contradictions, broken logic and
   repeated passages, and fix them.
2. Context check: compare each key claim against the related slides and the
   external snippets; where a claim conflicts with them or is highly
   uncertain, mark it "uncertain / needs checking" rather than asserting it.

`)

	b.WriteString("Current slide\n")
	fmt.Fprintf(&b, "Index: %d\n", slide.Index)
	fmt.Fprintf(&b, "Title: %s\n", slide.Title)
	fmt.Fprintf(&b, "Bullets:\n%s\n", bullets)
	fmt.Fprintf(&b, "Notes: %s\n\n", notes)

	b.WriteString(AssembleContext(internalContext, snippets))

	b.WriteString(`

Write the expanded note in Markdown with exactly these sections, each as a
level-one heading:
1. Background
2. Key Concepts
3. Example
4. Further Reading
5. Self-Assessment
6. Review Notes

Requirements:
- Stay on the topic of the slide title and bullets; do not drift.
- Give at most one example (code or analogy), kept short, never repeated.
- Prefer the retrieved slides and external snippets over general knowledge;
  avoid anything that plainly contradicts them.
- In Self-Assessment, give two scores from 1 to 5, each with a one-sentence
  justification: first structural clarity of this note, then topical
  relevance to the original slide.
- In Review Notes, summarize what the two-stage review changed or flagged.
`)

	return b.String()
}
