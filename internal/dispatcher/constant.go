package dispatcher

import "project-assistant/internal/classifier"

// Greetings is the fixed set of replies to a confident greeting.
var Greetings = []string{
	"嗨！我是專案助理，可以幫你建立任務、記錄決議或分析文件。",
	"你好！今天想處理哪個專案項目？",
	"哈囉！需要我幫你整理任務或上傳文件分析嗎？",
}

var greetingMarkers = []string{"greet", "hello", "問候", "打招呼", "寒暄"}

var intentLabels = map[classifier.Intent]string{
	classifier.IntentChat:           "一般對話",
	classifier.IntentCreateTask:     "建立任務",
	classifier.IntentRecordDecision: "記錄決議",
	classifier.IntentMarkPending:    "標記待確認",
	classifier.IntentChangeRequest:  "提出變更需求",
	classifier.IntentAmbiguous:      "不確定",
}

// clarifyOptions is the fixed three-way choice for low confidence.
var clarifyOptions = []Option{
	{Label: "建立任務", Intent: classifier.IntentCreateTask},
	{Label: "標記待確認", Intent: classifier.IntentMarkPending},
	{Label: "一般對話", Intent: classifier.IntentChat},
}

const (
	msgClarify       = "我不太確定你的意思，你想要："
	msgConfirmFormat = "你是想要%s嗎？"
	msgConfirmTitle  = "你是想要%s「%s」嗎？"
	msgAutoTitle     = "好的，已準備%s「%s」。"
	msgAutoNoTitle   = "好的，已準備%s。"
)
