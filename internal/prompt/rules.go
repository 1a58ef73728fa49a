package prompt

import "project-assistant/internal/model"

// DocumentRules is scanned top to bottom; the first match wins. The order
// is policy: module and WBS structure outrank meeting content, which
// outranks single-kind extraction.
var DocumentRules = []Rule{
	{TemplateFeatureModules, []string{"功能模組", "功能模块", "feature module", "feature list", "功能清單", "功能列表"}},
	{TemplateWBS, []string{"wbs", "work breakdown", "工作分解", "工作包", "work package"}},
	{TemplateMeetingNotes, []string{"會議", "会议", "meeting", "minutes", "attendees", "出席"}},
	{TemplateDecisions, []string{"決議", "决议", "決策", "决策", "decision"}},
	{TemplateChangeRequests, []string{"變更", "变更", "change request", "scope change"}},
	{TemplatePending, []string{"待確認", "待确认", "pending", "blocked", "卡關", "等待"}},
	{TemplateTasks, []string{"任務", "任务", "待辦", "待办", "task", "todo", "action item"}},
}

// FollowUpRules route an instruction given for a pending document.
// Feature-module keywords are checked before smart-analysis keywords;
// anything else falls back to chat.
var FollowUpRules = []FollowUpRule{
	{FollowUpFeatureModules, []string{"功能模組", "功能模块", "feature module", "建立模組", "建立模块", "create modules"}},
	{FollowUpSmartAnalysis, []string{
		"分析", "整理", "擷取", "提取", "拆解", "建立", "生成", "產生",
		"analy", "extract", "create", "generate", "break down",
		"任務", "task", "決議", "decision", "待辦", "todo", "wbs", "工作包",
	}},
}

// TypeRules is the keyword fallback used when type detection by the model
// fails. Filename and content are both searched.
var TypeRules = []TypeRule{
	{model.DocMeetingNotes, []string{"meeting", "會議", "会议", "minutes", "attendees", "出席", "agenda", "議程"}},
	{model.DocWBS, []string{"wbs", "work breakdown", "工作分解", "work package", "工作包"}},
	{model.DocFeatureList, []string{"feature", "功能", "模組", "模块", "module", "requirement", "需求"}},
}

// smartAnalysisKeywords are explicit requests to analyze pasted content.
var smartAnalysisKeywords = []string{
	"幫我分析", "帮我分析", "幫我整理", "帮我整理", "整理成任務", "拆成任務",
	"analyze this", "analyse this", "extract tasks", "extract action items", "break this down",
}

// contentShapeMarkers suggest the text is a document rather than a message.
var contentShapeMarkers = []string{
	"會議記錄", "会议记录", "meeting notes", "minutes", "action items", "決議事項", "决议事项",
	"待辦事項", "待办事项", "attendees", "出席",
}
