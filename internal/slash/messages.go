package slash

import "strings"

// Messages holds the user-facing strings of the slash commands.
type Messages struct {
	DateLabel      string
	TodayLabel     string
	TomorrowLabel  string
	YesterdayLabel string

	NotNotebook        string
	StorageUnavailable string
	CreationFailed     string
	InsertFailed       string
	NoPicker           string
}

var catalog = map[string]Messages{
	"en": {
		DateLabel:          "Pick a date",
		TodayLabel:         "Today",
		TomorrowLabel:      "Tomorrow",
		YesterdayLabel:     "Yesterday",
		NotNotebook:        "Please select a daily note notebook in the settings first",
		StorageUnavailable: "Could not read the daily note settings",
		CreationFailed:     "Could not create the daily note",
		InsertFailed:       "Could not insert the daily note link",
		NoPicker:           "Date picker is not available here",
	},
	"zh_CN": {
		DateLabel:          "日期选择",
		TodayLabel:         "今天",
		TomorrowLabel:      "明天",
		YesterdayLabel:     "昨天",
		NotNotebook:        "请先在设置中选择日记笔记本",
		StorageUnavailable: "无法读取日记设置",
		CreationFailed:     "无法创建日记",
		InsertFailed:       "无法插入日记链接",
		NoPicker:           "此处无法使用日期选择",
	},
}

// MessagesFor returns the messages for lang, falling back to English.
// Both "zh_CN" and "zh-CN" spellings are accepted.
func MessagesFor(lang string) Messages {
	if m, ok := catalog[strings.ReplaceAll(lang, "-", "_")]; ok {
		return m
	}
	return catalog["en"]
}
