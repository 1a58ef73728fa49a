package orchestrator

const (
	LogPrefixHandle   = "orchestrator.Handle"
	LogPrefixUpload   = "orchestrator.handleUpload"
	LogPrefixFollowUp = "orchestrator.handleFollowUp"
	LogPrefixDirect   = "orchestrator.handleDirect"
	LogPrefixChat     = "orchestrator.handleChat"
	LogPrefixCommit   = "orchestrator.Commit"
)

const (
	chatTemperature = 0.7
	chatMaxTokens   = 1024

	// pendingExcerptRunes bounds the pending document shown to chat.
	pendingExcerptRunes = 2000

	DefaultRetrievalThreshold = 0.5
	DefaultTimezone           = "Asia/Taipei"
)

// Replies. The assistant answers in Traditional Chinese.
const (
	msgUploaded        = "已收到「%s」，看起來是%s。"
	msgUploadSummary   = "摘要：%s"
	msgParseFailed     = "（無法讀取檔案內容，之後只會依檔名判斷。）"
	msgAskInstruction  = "想要我怎麼處理這份文件？"
	msgCandidates      = "從%s整理出 %d 個項目，請確認後建立。"
	msgCreated         = "已建立 %d 個項目。"
	msgCreatedFailures = "已建立 %d 個項目，%d 個建立失敗。"
	msgUnlinked        = "有 %d 個項目找不到上層項目，已建立為獨立項目。"
	msgNoItems         = "沒有從內容中找到可以建立的項目，可以換個說法再試一次。"
	msgAutoCreated     = "%s 已建立。"
	msgAutoFailed      = "抱歉，項目暫時無法建立，請稍後再試。"
	msgSourceDocument  = "文件"
	msgSourceMessage   = "訊息"
	msgPendingContext  = "使用者剛上傳的文件「%s」（%s），內容節錄："

	msgNotConfigured = "助理尚未設定語言模型，請聯絡管理員設定 API 金鑰。"
	msgNetwork       = "抱歉，目前無法連線到語言模型服務，請稍後再試。"
	msgTruncated     = "回覆超過長度上限，請縮短輸入內容，或提高輸出長度設定。"
	msgRefused       = "語言模型拒絕處理這個請求。"
	msgFiltered      = "回覆被內容安全機制攔截，請調整內容後再試。"
)

var documentTypeLabels = map[string]string{
	"FeatureList":  "功能清單",
	"WBS":          "工作分解結構（WBS）",
	"MeetingNotes": "會議記錄",
	"Other":        "一般文件",
}

// Time context appended to the chat system prompt. Placeholders: today,
// weekday, week start, week end, tomorrow.
const timeContextTemplate = `

[時間資訊]
- 今天：%s（%s）
- 本週：%s 至 %s
- 明天：%s
日期一律使用 YYYY-MM-DD 格式，相對日期請自行換算，不要反問使用者。`

const dateLayout = "2006-01-02"
