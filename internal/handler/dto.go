package handler

// Response field names match what the PWA frontend consumes.

type QuoteResponse struct {
	Price            float64 `json:"price"`
	Change24h        float64 `json:"change24h"`
	ChangePercent24h float64 `json:"changePercent24h"`
	High24h          float64 `json:"high24h"`
	Low24h           float64 `json:"low24h"`
	Timestamp        string  `json:"timestamp"`
	Source           string  `json:"source"`
}

type PricePointResponse struct {
	Timestamp string  `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    int64   `json:"volume,omitempty"`
}

type HistoryResponse struct {
	Data     []PricePointResponse `json:"data"`
	Range    string               `json:"range"`
	Interval string               `json:"interval"`
}

type ArticleResponse struct {
	ID                int64   `json:"id"`
	Title             string  `json:"title"`
	OriginalLanguage  string  `json:"originalLanguage"`
	Content           string  `json:"content"`
	TranslatedContent *string `json:"translatedContent"`
	Source            string  `json:"source"`
	SourceURL         string  `json:"sourceUrl"`
	Category          string  `json:"category"`
	PublishedAt       string  `json:"publishedAt"`
	ImageURL          *string `json:"imageUrl"`
	IsTranslated      bool    `json:"isTranslated"`
}

type NewsFeedResponse struct {
	Articles []ArticleResponse `json:"articles"`
	Total    int               `json:"total"`
	Page     int               `json:"page"`
	Limit    int               `json:"limit"`
}

type TranslateResponse struct {
	TranslatedContent string `json:"translatedContent"`
	Cached            bool   `json:"cached"`
}

type ArticlePreview struct {
	Title       string `json:"title"`
	Source      string `json:"source"`
	Language    string `json:"language"`
	PublishedAt string `json:"publishedAt"`
}

type FetchResponse struct {
	Success           bool     `json:"success"`
	Message           string   `json:"message"`
	ArticlesProcessed int      `json:"articlesProcessed"`
	ArticlesSaved     int      `json:"articlesSaved"`
	ArticlesSkipped   int      `json:"articlesSkipped"`
	SavedArticles     []string `json:"savedArticles,omitempty"`
	Errors            []string `json:"errors,omitempty"`
	Duration          int64    `json:"duration"`
}
