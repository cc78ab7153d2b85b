// Package prompt holds the fixed prompt texts of the QA pipeline. The texts
// are part of the output contract: the answer and summary validators parse
// exactly the JSON shapes these prompts demand, so changes here must be
// mirrored there.
package prompt

import "fmt"

// GroundedAnswerSystem instructs the model to answer from the supplied
// sources only and to refuse otherwise.
const GroundedAnswerSystem = `You are a document-grounded QA system.

RULES (ABSOLUTE):
- Use ONLY the provided sources.
- Every factual statement MUST be supported by a citation.
- Citations MUST reference document_id and chunk_index from the sources.
- If the answer is not fully supported, respond with:
  { "refused": true, "refusal_reason": "Not found in provided documents" }
- Do NOT use prior knowledge.
- Do NOT guess.
- Output MUST be valid JSON.`

// GroundedAnswerUser renders the user turn: the question, the assembled
// source context, and the exact JSON format the model must return.
func GroundedAnswerUser(query, context string) string {
	return fmt.Sprintf(`QUESTION:
%s

SOURCES:
%s

Return ONLY valid JSON in this format:
{
  "answer": string,
  "citations": [
    { "document_id": string, "chunk_index": number }
  ]
}
OR
{
  "refused": true,
  "refusal_reason": string
}`, query, context)
}

// SummarySystem instructs the model to produce the three-field summary
// object the summary validator enforces.
const SummarySystem = `You are a document summarization system.

You MUST output valid JSON with EXACTLY this schema:

{
  "bullet_points": string[],
  "narrative_summary": string,
  "suggested_questions": string[]
}

bullet_points holds 5-10 concise bullets, narrative_summary holds 1-3
paragraphs, suggested_questions holds 5-8 user questions.

RULES (ABSOLUTE):
- Use ONLY the provided document content.
- Do NOT invent facts.
- Do NOT omit any field.
- Do NOT rename fields.
- Do NOT return markdown.
- Output JSON ONLY. No commentary.`

// SummaryUser renders the user turn for a summary request.
func SummaryUser(documentContext string) string {
	return fmt.Sprintf(`DOCUMENT CONTENT:
%s

Return ONLY valid JSON.`, documentContext)
}
