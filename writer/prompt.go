package writer

import (
	"fmt"
	"strings"

	"paper_writing_agents/memory"
)

// Prompts mirror the memory file layout: the same "===== Title =====" section
// framing, so a prompt is readable next to the files that produced it.

func promptSection(b *strings.Builder, title string, items []string, bullet bool) {
	var kept []string
	for _, it := range items {
		if s := strings.TrimSpace(it); s != "" {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		return
	}
	fmt.Fprintf(b, "===== %s =====\n", title)
	for _, it := range kept {
		if bullet && !strings.HasPrefix(it, "-") && !strings.HasPrefix(it, "•") {
			it = "- " + it
		}
		b.WriteString(it)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
}

func head(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func newParagraphPrompt(temp, proj memory.Sections) string {
	var b strings.Builder
	b.WriteString("You are an expert academic writer. Write exactly one cohesive paragraph ")
	b.WriteString("for a research paper using only the material below.\n\n")

	promptSection(&b, "Writing Context", temp["Writing Context"], false)
	promptSection(&b, "Project Key Ideas", head(proj["Key Ideas"], 5), true)
	promptSection(&b, "Topic Sentence", head(temp["Topic Sentence"], 1), false)
	promptSection(&b, "Bullet Points", temp["Bullet Points"], true)
	promptSection(&b, "Template Flow", temp["Template Flow"], false)
	promptSection(&b, "Recent Project Content", head(proj["Previous Content"], 3), true)

	b.WriteString("Requirements:\n")
	b.WriteString("- Open with the topic sentence if one is given, otherwise derive one from the bullet points.\n")
	b.WriteString("- Cover every bullet point; add nothing that is not supported by the material.\n")
	b.WriteString("- Follow the template flow when present.\n")
	b.WriteString("- Formal academic tone; no headings, no lists, no commentary.\n")
	b.WriteString("- Return only the paragraph text.\n")
	return b.String()
}

func reviseParagraphPrompt(paragraph, feedback string, comments []InlineComment) string {
	var b strings.Builder
	b.WriteString("You are an expert academic editor. Revise the paragraph below according ")
	b.WriteString("to the feedback, changing no more than the feedback requires.\n\n")

	promptSection(&b, "Current Paragraph", []string{paragraph}, false)
	promptSection(&b, "Revision Feedback", []string{feedback}, false)
	if len(comments) > 0 {
		promptSection(&b, "Inline Comments", []string{FormatInlineFeedback(comments)}, false)
	}

	b.WriteString("Requirements:\n")
	b.WriteString("- Address every feedback item and every inline comment.\n")
	b.WriteString("- Preserve the paragraph's claims and citations unless the feedback says otherwise.\n")
	b.WriteString("- Return only the revised paragraph text.\n")
	return b.String()
}

func writeFromTemplatePrompt(ideas, template, correction string) string {
	var b strings.Builder
	b.WriteString("You are an expert academic writer. Write paper text that expresses the ")
	b.WriteString("ideas below, organized to follow the template.\n\n")

	promptSection(&b, "Ideas", []string{ideas}, false)
	promptSection(&b, "Template", []string{template}, false)
	if correction != "" {
		promptSection(&b, "Correction", []string{correction}, false)
	}

	b.WriteString("Requirements:\n")
	b.WriteString("- Use the ideas as the only source of content; the template controls structure only.\n")
	b.WriteString("- Keep the key terms of the ideas; do not rename concepts.\n")
	b.WriteString("- Return only the written text.\n")
	return b.String()
}

func reviseFromTodoPrompt(previous, todo string) string {
	var b strings.Builder
	b.WriteString("You are an expert academic writer revising your own draft. Apply every ")
	b.WriteString("item of the todo list to the previous revision below.\n\n")

	promptSection(&b, "Previous Revision", []string{previous}, false)
	promptSection(&b, "Todo List", []string{todo}, false)

	b.WriteString("Requirements:\n")
	b.WriteString("- Address each todo item; keep everything the list does not question.\n")
	b.WriteString("- Return only the revised text.\n")
	return b.String()
}

func latexPrompt(text string) string {
	var b strings.Builder
	b.WriteString("Convert the following paragraph to LaTeX body text. Escape special ")
	b.WriteString("characters, render emphasis with \\emph, and keep the wording unchanged. ")
	b.WriteString("Return only the LaTeX, with no preamble and no code fences.\n\n")
	b.WriteString(text)
	b.WriteByte('\n')
	return b.String()
}
