package retrieval

import "time"

const (
	LogPrefixRetrieve = "internal.retrieval.Retrieve"
	LogPrefixIndex    = "internal.retrieval.Index"
)

const (
	DefaultTopK     = 3
	DefaultMaxChars = 500
	DefaultTimeout  = 5 * time.Second
)

const (
	contextHeader  = "相關專案知識（僅供參考，請勿捏造未列出的內容）："
	truncateSuffix = "…"
)
