package news

import "sugartrack/internal/model"

// ToNewsArticle converts a fetched article into the persisted shape. Chinese
// sources need no translation pass, so their content is mirrored into the
// translated column and marked done up front.
func ToNewsArticle(a Article) model.NewsArticle {
	article := model.NewsArticle{
		Title:            a.Title,
		OriginalLanguage: a.Language,
		Content:          a.Content,
		Source:           a.Source,
		SourceURL:        a.SourceURL,
		Category:         a.Category,
		PublishedAt:      a.PublishedAt,
	}

	if a.Language == model.LanguageChinese {
		article.TranslatedContent = a.Content
		article.IsTranslated = true
	}

	return article
}
