package handlers

import (
	"strings"
	"unicode/utf8"
)

// Validation limits for post form fields.
const (
	maxTitleLen    = 300
	maxSlugLen     = 300
	maxContentLen  = 100_000
	maxExcerptLen  = 1_000
	maxCategoryLen = 100
	maxImageURLLen = 2_000
)

// validatePost checks post form inputs and returns the first error found.
func validatePost(title, slug, excerpt, content, category, imageURL string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return "Título é obrigatório."
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "Título muito longo (máx. 300 caracteres)."
	}
	if utf8.RuneCountInString(slug) > maxSlugLen {
		return "Slug muito longo (máx. 300 caracteres)."
	}
	if utf8.RuneCountInString(excerpt) > maxExcerptLen {
		return "Resumo muito longo (máx. 1.000 caracteres)."
	}
	if utf8.RuneCountInString(content) > maxContentLen {
		return "Conteúdo muito longo (máx. 100.000 caracteres)."
	}
	if utf8.RuneCountInString(category) > maxCategoryLen {
		return "Categoria muito longa (máx. 100 caracteres)."
	}
	if utf8.RuneCountInString(imageURL) > maxImageURLLen {
		return "URL da imagem muito longa (máx. 2.000 caracteres)."
	}
	return ""
}
