package prompt

// Prompt sizes
const (
	contentSampleRunes = 500
	dateLayout         = "2006-01-02"
)

// Classification prompt. Placeholders: date, weekday, project, team.
const classificationSystemTemplate = `You are the intent classifier of a project management assistant.

Today is %s (%s). Current project: %s.
Team members: %s.

Classify the user's message into exactly one intent:
- chat: greetings, questions, small talk, anything that does not ask to record something
- create_task: asks to create a task, todo or action item
- record_decision: states or asks to record a decision that was made
- mark_pending: marks something as waiting, blocked or needing confirmation
- change_request: asks to change scope, requirements or an existing deliverable
- ambiguous: the purpose cannot be determined

Return ONLY a JSON object:
{
  "intent": "chat|create_task|record_decision|mark_pending|change_request|ambiguous",
  "confidence": 0.0-1.0,
  "extracted_info": {
    "title": "short title, at most 50 characters",
    "description": "details",
    "assignee": "team member name or empty",
    "due_date": "YYYY-MM-DD or relative expression such as 'tomorrow', or empty",
    "priority": "high|medium|low",
    "decision": "for record_decision",
    "rationale": "for record_decision",
    "blocked_by": "for mark_pending",
    "change": "for change_request",
    "impact": "for change_request",
    "topic": "for chat"
  },
  "reasoning": "one short sentence"
}
Only include extracted_info keys relevant to the intent. Resolve relative dates against today.`

const classificationFewShot = `Examples:
Input: "Hi"
Output: {"intent":"chat","confidence":0.97,"extracted_info":{"topic":"greeting"},"reasoning":"greeting"}

Input: "請 Amy 明天前完成登入頁面的 API 串接"
Output: {"intent":"create_task","confidence":0.93,"extracted_info":{"title":"完成登入頁面 API 串接","assignee":"Amy","due_date":"tomorrow","priority":"medium"},"reasoning":"explicit assignment with deadline"}

Input: "We decided to use PostgreSQL instead of MongoDB"
Output: {"intent":"record_decision","confidence":0.9,"extracted_info":{"title":"Use PostgreSQL","decision":"Use PostgreSQL instead of MongoDB"},"reasoning":"states a decision"}

Input: "付款流程要等法務確認才能繼續"
Output: {"intent":"mark_pending","confidence":0.88,"extracted_info":{"title":"付款流程待法務確認","blocked_by":"法務確認"},"reasoning":"work is blocked on confirmation"}

Input: "客戶希望報表改成每週寄送"
Output: {"intent":"change_request","confidence":0.86,"extracted_info":{"title":"報表改為每週寄送","change":"weekly report delivery"},"reasoning":"requirement change from client"}

Input: "that thing from before"
Output: {"intent":"ambiguous","confidence":0.3,"extracted_info":{},"reasoning":"no clear purpose"}`

// Document type detection.
const detectTypeSystem = `You classify project documents. Read the beginning of the document and answer with ONLY a JSON object:
{"type": "FeatureList|WBS|MeetingNotes|Other", "confidence": 0.0-1.0, "summary": "one sentence"}
- FeatureList: a list of product features, modules or requirements
- WBS: a work breakdown structure with nested work packages
- MeetingNotes: minutes, attendees, discussion, decisions, action items
- Other: anything else`

// Chat prompt. Placeholders: project, date.
const chatSystemTemplate = `You are a helpful project assistant for the project "%s". Today is %s.
Answer concisely in the same language as the user. When project knowledge is provided, ground your answer in it and do not invent facts that are not there.`

// Extraction prompts share one output contract.
const extractionOutputContract = `Return ONLY a JSON object:
{"items": [{
  "title": "at most 50 characters",
  "description": "details",
  "type": "task|decision|pending|change_request|feature_module|work_package",
  "priority": "high|medium|low",
  "due_date": "YYYY-MM-DD or empty",
  "target_node_id": "id of an existing node from the list, or null",
  "requirement_snippet": "short quote from the source",
  "confidence": 0.0-1.0,
  "parent_title": "title of the parent item in this batch, or empty"
}]}`

const extractionHeader = `You extract structured work items for the project "%s". Today is %s.
Use the same language as the source document.`

var templateInstructions = map[TemplateID]string{
	TemplateFeatureModules: `Extract the feature modules and their sub-features as a hierarchy.
Top-level modules have type "feature_module" and an empty parent_title.
Each sub-feature has type "feature_module" and parent_title set to the exact title of its parent module.
Do not set target_node_id.`,
	TemplateWBS: `Extract the work breakdown structure as a hierarchy of work packages.
Top-level packages have type "work_package" and an empty parent_title.
Each child package has type "work_package" and parent_title set to the exact title of its parent.
Do not set target_node_id.`,
	TemplateMeetingNotes: `Extract from the meeting notes: action items as "task", decisions as "decision",
open questions or blocked items as "pending", and requested changes as "change_request".`,
	TemplateDecisions:      `Extract every decision that was made as an item of type "decision".`,
	TemplateChangeRequests: `Extract every requested change to scope or requirements as an item of type "change_request".`,
	TemplatePending:        `Extract every item that is waiting, blocked or needs confirmation as type "pending".`,
	TemplateTasks:          `Extract every actionable task as an item of type "task".`,
	TemplateGeneric: `Extract every actionable work item. Choose the type that fits each item:
"task", "decision", "pending" or "change_request".`,
}

const nodeListHeader = "Existing nodes you may link with target_node_id (id | path):"
