package models

// Article новость из внешнего RSS-источника.
type Article struct {
	Title      string   `json:"title"`
	Link       string   `json:"link"`
	PubDate    string   `json:"pub_date"`
	Creator    string   `json:"creator"`
	Content    string   `json:"content"`
	Source     string   `json:"source"`
	SourceName string   `json:"source_name"`
	Categories []string `json:"categories"`
}

// NewsSource описание RSS-источника.
type NewsSource struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
}
