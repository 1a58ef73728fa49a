package telegram

import "time"

const (
	conversationPrefix = "telegram_"

	chatStateCapacity = 1000
	chatStateTTL      = 24 * time.Hour
	processTimeout    = 3 * time.Minute

	cmdStart   = "/start"
	cmdHelp    = "/help"
	cmdCancel  = "/cancel"
	cmdConfirm = "/confirm"
	cmdProject = "/project"
)

const (
	msgHelp = "我可以協助整理專案資訊：\n" +
		"• 直接傳訊息，我會判斷是要建立任務、記錄決策或只是聊天\n" +
		"• 上傳文件（PDF、Word、Markdown、CSV、HTML、純文字），之後告訴我要怎麼處理\n\n" +
		"指令：\n" +
		"/project <id> [名稱] 設定目前專案\n" +
		"/confirm 建立上一批候選項目\n" +
		"/cancel 放棄待處理的文件"
	msgProcessing       = "⏳ 處理中..."
	msgProjectUsage     = "用法：/project <id> [名稱]"
	msgProjectSet       = "目前專案已設定為 %s。"
	msgCancelled        = "已放棄待處理的文件。"
	msgNothingToCancel  = "目前沒有待處理的文件。"
	msgNothingToConfirm = "沒有待確認的候選項目。"
	msgConfirmed        = "已建立 %d 個項目。"
	msgConfirmFailures  = "另有 %d 個項目建立失敗。"
	msgFileTooLarge     = "檔案太大，請上傳 %d MB 以內的文件。"
	msgUnsupportedFile  = "不支援這種檔案格式。"
	msgFailed           = "處理時發生錯誤，請稍後再試。"
	msgConfirmHint      = "輸入 /confirm 建立以上項目。"
	msgSuggestions      = "你可以接著說："
)
