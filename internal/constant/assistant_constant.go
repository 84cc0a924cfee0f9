package constant

const (
	ChatMessageRoleUser  = "user"
	ChatMessageRoleModel = "model"
)

const (
	// AnalyzeImagePromptV1 asks for a structured read of a store camera
	// frame. %s is the caller's task description.
	AnalyzeImagePromptV1 = `You are a retail store vision analyst reviewing a single camera frame.

TASK: %s

Respond with ONLY a JSON object in this exact shape, no other text:
{
  "objects": ["list", "of", "detected", "objects"],
  "summary": "one short paragraph in Brazilian Portuguese describing what the frame shows relative to the task",
  "charts": [{"type": "bar", "title": "...", "labels": ["..."], "data": [1, 2]}]
}

Rules:
- "objects" lists concrete items/people visible in the frame
- "charts" may be empty ([]) when nothing is countable
- Never wrap the JSON in markdown fences`

	// StoreInsightsPromptV1 answers a free-form question grounded on the
	// current store state. First %s is the state as JSON, second the query.
	StoreInsightsPromptV1 = `You are an assistant for a Brazilian retail store manager.

<store_state>
%s
</store_state>

Answer the question below using ONLY the store state above. Answer in Brazilian Portuguese.

Question: %s

Respond with ONLY a JSON object, no other text:
{
  "text": "direct answer for the manager",
  "charts": [{"type": "line", "title": "...", "labels": ["..."], "data": [1, 2]}]
}
"charts" may be empty ([]). Never wrap the JSON in markdown fences.`

	// SustainabilityReportPromptV1 turns operational data into a markdown
	// report. %s is the input data as JSON.
	SustainabilityReportPromptV1 = `You are a sustainability consultant for Brazilian retail stores.

<input_data>
%s
</input_data>

Write a sustainability report in Brazilian Portuguese based on the input data.

Respond with ONLY a JSON object, no other text:
{
  "report": "the full report as markdown",
  "charts": [{"type": "bar", "title": "...", "labels": ["..."], "data": [1, 2]}]
}
"charts" may be empty ([]). Never wrap the JSON in markdown fences.`

	// DashboardInsightsPromptV1 produces headline insights from aggregate
	// stats. %s is the stats object as JSON.
	DashboardInsightsPromptV1 = `You are an analytics assistant for a Brazilian retail store dashboard.

<stats>
%s
</stats>

Produce headline insights from the stats above, in Brazilian Portuguese.

Respond with ONLY a JSON object, no other text:
{
  "insights": [{"type": "positive|warning|neutral", "title": "...", "description": "..."}],
  "charts": [{"type": "pie", "title": "...", "labels": ["..."], "data": [1, 2]}],
  "text": "one-paragraph overall reading of the store"
}
"insights" and "charts" may be empty ([]). Never wrap the JSON in markdown fences.`
)
